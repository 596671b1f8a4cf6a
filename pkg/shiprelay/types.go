package shiprelay

import (
	"github.com/bft-labs/shiprelay/internal/domain"
	"github.com/bft-labs/shiprelay/internal/ports"
)

// Domain types re-exported for library users.
type (
	ShipmentEvent    = domain.ShipmentEvent
	ResolvedShipment = domain.ResolvedShipment
	Account          = domain.Account
	CycleResult      = domain.CycleResult
	Outcome          = domain.Outcome
	FailureKind      = domain.FailureKind
)

// Failure kinds recorded on cycle outcomes.
const (
	FailureNone              = domain.FailureNone
	FailureInvalidAccount    = domain.FailureInvalidAccount
	FailureMissingCredential = domain.FailureMissingCredential
	FailureResolution        = domain.FailureResolution
	FailureSubmission        = domain.FailureSubmission
)

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Logger is the interface for structured logging.
type Logger = ports.Logger

// LogField represents a structured log field.
type LogField = ports.Field

// OrderGateway resolves orders and submits shipment batches.
type OrderGateway = ports.OrderGateway

// Errors returned by the relay.
var (
	ErrAlreadyRunning  = domain.ErrAlreadyRunning
	ErrNotRunning      = domain.ErrNotRunning
	ErrShutdownTimeout = domain.ErrShutdownTimeout
	ErrInvalidConfig   = domain.ErrInvalidConfig
)
