package shiprelay

import "github.com/bft-labs/shiprelay/internal/app"

// State represents the lifecycle state of a Relay.
type State int

const (
	// StateStopped means the relay is not running.
	StateStopped State = iota
	// StateStarting means Start() was called and plugins are initializing.
	StateStarting
	// StateRunning means the scheduler is dispatching cycles.
	StateRunning
	// StateStopping means Stop() was called and the final cycle is running.
	StateStopping
	// StateCrashed means startup or shutdown failed.
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

func convertState(s app.State) State {
	switch s {
	case app.StateStopped:
		return StateStopped
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}
