package ports

import "github.com/bft-labs/shiprelay/pkg/log"

// Logger is the structured logger used by the internal layers.
type Logger = log.Logger

// Field is a structured log field.
type Field = log.Field

// Field constructors re-exported for the internal layers.
var (
	String   = log.String
	Strings  = log.Strings
	Int      = log.Int
	Int64    = log.Int64
	Bool     = log.Bool
	Duration = log.Duration
	Err      = log.Err
	Any      = log.Any
)
