// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// # Port Interfaces
//
//   - [OrderGateway]: resolves external references and submits shipment batches
//   - [AccountDirectory]: looks up destination accounts by id
//   - [Logger]: structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters, internal/directory) implement
// them with concrete implementations (OrderDesk over HTTP, static tables,
// zerolog, etc.).
package ports
