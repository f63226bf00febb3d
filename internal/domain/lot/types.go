package lot

import "errors"

var (
	ErrEmptyName       = errors.New("lot name cannot be empty")
	ErrInvalidState    = errors.New("invalid lot state")
	ErrInvalidSchedule = errors.New("invalid opening-hours schedule")
)

type State string

const (
	StateDraft     State = "DRAFT"
	StateActive    State = "ACTIVE"
	StateSuspended State = "SUSPENDED"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateDraft, StateActive, StateSuspended:
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
