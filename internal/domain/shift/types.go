package shift

import "errors"

var (
	ErrAlreadyClosed  = errors.New("shift is already closed")
	ErrEndBeforeStart = errors.New("shift end cannot precede its start")
	ErrNegativeCash   = errors.New("cash amount cannot be negative")
)

// Severity is a presentation hint for the shift board; it never blocks a
// mutation.
type Severity string

const (
	SeverityNormal   Severity = "NORMAL"
	SeverityWarning  Severity = "ADVERTENCIA"
	SeverityCritical Severity = "CRITICA"
)

func (s Severity) String() string {
	return string(s)
}
