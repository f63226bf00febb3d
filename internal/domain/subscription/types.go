package subscription

import "errors"

var (
	ErrAlreadyFinalized = errors.New("subscription already finalized")
	ErrEndBeforeStart   = errors.New("end date cannot precede start date")
	ErrNegativeAmount   = errors.New("monthly amount cannot be negative")
	ErrEmptyPlate       = errors.New("vehicle plate cannot be empty")
	ErrNoVehicles       = errors.New("subscription needs at least one vehicle")
	ErrInvalidState     = errors.New("invalid subscription state")
)

type State string

const (
	StateActive    State = "ACTIVO"
	StateFinalized State = "FINALIZADO"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateActive, StateFinalized:
		return true
	default:
		return false
	}
}

func NewState(v string) (State, error) {
	s := State(v)
	if !s.IsValid() {
		return "", ErrInvalidState
	}
	return s, nil
}

// BillStatus tracks whether a monthly bill has been settled.
type BillStatus string

const (
	BillPending BillStatus = "PENDIENTE"
	BillPaid    BillStatus = "PAGADA"
)

func (b BillStatus) String() string {
	return string(b)
}
