package domain

// ShipmentEvent is a shipment-tracking notification waiting to be relayed.
// Events carry no identity of their own; two events with identical fields
// are processed as two distinct shipments.
type ShipmentEvent struct {
	// ExternalReference encodes the account id and an order token,
	// e.g. "21633-100045".
	ExternalReference string `json:"source_id"`
	TrackingNumber    string `json:"tracking_number"`
	CarrierCode       string `json:"carrier_code"`
	ShipmentMethod    string `json:"shipment_method"`
}

// ResolvedShipment is the upstream representation of a shipment once its
// external reference has been resolved to an order id.
type ResolvedShipment struct {
	OrderID        string `json:"order_id"`
	TrackingNumber string `json:"tracking_number"`
	CarrierCode    string `json:"carrier_code"`
	ShipmentMethod string `json:"shipment_method"`
}

// Resolve builds the ResolvedShipment for the given order id.
func (e ShipmentEvent) Resolve(orderID string) ResolvedShipment {
	return ResolvedShipment{
		OrderID:        orderID,
		TrackingNumber: e.TrackingNumber,
		CarrierCode:    e.CarrierCode,
		ShipmentMethod: e.ShipmentMethod,
	}
}
