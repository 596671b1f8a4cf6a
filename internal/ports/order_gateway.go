package ports

import (
	"context"
	"encoding/json"

	"github.com/bft-labs/shiprelay/internal/domain"
)

// OrderGateway is the remote order-management API.
type OrderGateway interface {
	// ResolveOrder returns the upstream order id for an external reference
	// scoped to the account. Returns an error wrapping
	// domain.ErrOrderNotFound when no order matches and domain.ErrUpstream
	// on non-success status or malformed response.
	ResolveOrder(ctx context.Context, account domain.Account, externalRef string) (string, error)

	// SubmitShipments posts all shipments for the account as one request.
	// The gateway response is returned unmodified. Returns an error
	// wrapping domain.ErrUpstream on non-success status.
	SubmitShipments(ctx context.Context, account domain.Account, shipments []domain.ResolvedShipment) (json.RawMessage, error)
}
