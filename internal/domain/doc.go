// Package domain contains the core entities and value objects for shiprelay.
//
// This package is the innermost layer. It has no dependencies on
// infrastructure concerns (HTTP, file system, logging) and contains only the
// shipment model and the rules that apply to it.
//
// # Entities
//
//   - [ShipmentEvent]: a tracking notification as received from a caller
//   - [Account]: a destination store and its gateway credential
//   - [ResolvedShipment]: a ShipmentEvent whose external reference has been
//     resolved to an upstream order id
//   - [AccountBatch]: resolved shipments grouped for one submit call
//   - [CycleResult]: the outcome record of one dispatch cycle
package domain
