package space

import "errors"

var (
	ErrEmptyLabel     = errors.New("space label cannot be empty")
	ErrEmptyTypeName  = errors.New("space type name cannot be empty")
	ErrAlreadyRemoved = errors.New("space type already removed")
	ErrInvalidState   = errors.New("invalid space state")
)

type State string

const (
	StateActive    State = "ACTIVE"
	StateSuspended State = "SUSPENDED"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateActive, StateSuspended:
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
