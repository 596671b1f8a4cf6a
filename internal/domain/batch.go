package domain

// AccountBatch is the set of resolved shipments submitted to the gateway in
// a single call for one account.
type AccountBatch struct {
	Account   Account
	Shipments []ResolvedShipment
}

// NewAccountBatch creates an empty batch for the account.
func NewAccountBatch(account Account) *AccountBatch {
	return &AccountBatch{
		Account:   account,
		Shipments: make([]ResolvedShipment, 0),
	}
}

// Add appends a shipment to the batch.
func (b *AccountBatch) Add(s ResolvedShipment) {
	b.Shipments = append(b.Shipments, s)
}

// Size returns the number of shipments in the batch.
func (b *AccountBatch) Size() int {
	return len(b.Shipments)
}

// Empty returns true if the batch has no shipments.
func (b *AccountBatch) Empty() bool {
	return len(b.Shipments) == 0
}
