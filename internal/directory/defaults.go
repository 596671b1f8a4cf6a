package directory

import "github.com/bft-labs/shiprelay/internal/domain"

// CredentialEnvPrefix prefixes the environment variable holding a store's
// API key, e.g. STORE_21633.
const CredentialEnvPrefix = "STORE_"

// builtinStores is the store table of the production deployment.
var builtinStores = []struct {
	id   string
	name string
}{
	{"21633", "Amentum Inventory"},
	{"40348", "Amentum Safety"},
	{"12803", "ASE"},
	{"9672", "Bon Appetit"},
	{"47219", "Bon Appetit Nudge"},
	{"8366", "BPA Store"},
	{"16152", "Chartwells K12 Nudge"},
	{"8466", "Compass Catalog"},
	{"15521", "Cuilinart Nudge"},
	{"24121", "EDTA Inventory"},
	{"14077", "Eurest Hero"},
	{"12339", "Eurest Nudge"},
	{"43379", "FBLA"},
	{"9369", "FCCLA"},
	{"9805", "Flik"},
	{"67865", "Flik PSR"},
	{"48371", "Forbes Brand Store"},
	{"48551", "Forbes Redemption"},
	{"110641", "Keystone Redemption"},
	{"41778", "Marriot Store"},
	{"8267", "NRA Competitive Shooting"},
	{"75092", "Phi Kappa Phi"},
	{"8402", "Ryder FMS"},
	{"68125", "Ryder SCS"},
	{"8729", "SkillsUSA"},
	{"47257", "Springs Living"},
	{"8636", "TSA"},
	{"118741", "Store AB"},
}

// Builtin returns the built-in store table with credentials read through
// getenv. Stores whose variable is unset keep an empty credential.
func Builtin(getenv func(string) string) *Static {
	accounts := make([]domain.Account, 0, len(builtinStores))
	for _, s := range builtinStores {
		accounts = append(accounts, domain.Account{
			ID:          s.id,
			DisplayName: s.name,
			Credential:  getenv(CredentialEnvPrefix + s.id),
		})
	}
	d, err := NewStatic(accounts)
	if err != nil {
		panic("directory: invalid built-in store table: " + err.Error())
	}
	return d
}
