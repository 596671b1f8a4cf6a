package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// FailureKind classifies a failed outcome.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureInvalidAccount
	FailureMissingCredential
	FailureResolution
	FailureSubmission
)

// String returns the label used in logs and metrics.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureInvalidAccount:
		return "invalid_account"
	case FailureMissingCredential:
		return "missing_credential"
	case FailureResolution:
		return "resolution_failure"
	case FailureSubmission:
		return "submission_failure"
	default:
		return "unknown"
	}
}

// ClassifyItemError maps an error raised while handling a single shipment
// to its failure kind. Errors that are neither account nor credential
// problems are resolution failures.
func ClassifyItemError(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrInvalidAccount):
		return FailureInvalidAccount
	case errors.Is(err, ErrMissingCredential):
		return FailureMissingCredential
	default:
		return FailureResolution
	}
}

// Scope tells whether an outcome belongs to a single shipment or to an
// account batch.
type Scope int

const (
	ScopeItem Scope = iota
	ScopeBatch
)

// String returns a human-readable representation of the scope.
func (s Scope) String() string {
	if s == ScopeBatch {
		return "batch"
	}
	return "item"
}

// Outcome records what happened to one shipment or one account batch.
type Outcome struct {
	Scope Scope

	// Event is set for item outcomes.
	Event *ShipmentEvent

	// AccountID is the derived account, when one could be derived.
	AccountID string

	// Shipments is the batch size for batch outcomes.
	Shipments int

	Kind   FailureKind
	Reason string

	// Response is the gateway's submit response, passed through unmodified.
	Response json.RawMessage
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool {
	return o.Kind != FailureNone
}

// CycleResult is the observability record of one dispatch cycle.
type CycleResult struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration

	// Drained is the number of events taken from the queue.
	Drained int

	// Resolved is the number of events that were resolved to an order.
	Resolved int

	Outcomes []Outcome
}

// Empty reports whether the cycle found nothing to do.
func (r CycleResult) Empty() bool {
	return r.Drained == 0
}

// Failures returns all failed outcomes in recording order.
func (r CycleResult) Failures() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Failed() {
			out = append(out, o)
		}
	}
	return out
}

// FailuresOf returns the failed outcomes of the given kind.
func (r CycleResult) FailuresOf(kind FailureKind) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}

// Batches returns the batch outcomes, successful or not.
func (r CycleResult) Batches() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Scope == ScopeBatch {
			out = append(out, o)
		}
	}
	return out
}
