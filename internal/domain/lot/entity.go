package lot

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lot is one parking-lot business ("playa"), owned by a single owner user.
type Lot struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	name      string
	address   string
	hours     string
	schedule  Schedule
	state     State
	createdAt time.Time
	updatedAt time.Time
}

// NewLot validates the opening-hours string strictly: a lot created through
// the admin panel must not carry a schedule the shift checks cannot read.
func NewLot(ownerID uuid.UUID, name, address, hours string) (*Lot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	schedule, err := ParseSchedule(hours)
	if err != nil {
		return nil, err
	}

	return &Lot{
		id:       uuid.New(),
		ownerID:  ownerID,
		name:     name,
		address:  strings.TrimSpace(address),
		hours:    strings.TrimSpace(hours),
		schedule: schedule,
		state:    StateDraft,
	}, nil
}

func Reconstruct(
	id, ownerID uuid.UUID,
	name, address, hours string,
	state State,
	createdAt, updatedAt time.Time,
) *Lot {
	return &Lot{
		id:        id,
		ownerID:   ownerID,
		name:      name,
		address:   address,
		hours:     hours,
		schedule:  ParseScheduleLenient(hours),
		state:     state,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (l *Lot) Activate() error {
	if !l.state.IsValid() {
		return ErrInvalidState
	}
	l.state = StateActive
	return nil
}

func (l *Lot) Suspend() {
	l.state = StateSuspended
}

func (l *Lot) IsActive() bool {
	return l.state == StateActive
}

func (l *Lot) OwnedBy(userID uuid.UUID) bool {
	return l.ownerID == userID
}

func (l *Lot) ID() uuid.UUID        { return l.id }
func (l *Lot) OwnerID() uuid.UUID   { return l.ownerID }
func (l *Lot) Name() string         { return l.name }
func (l *Lot) Address() string      { return l.address }
func (l *Lot) Hours() string        { return l.hours }
func (l *Lot) Schedule() Schedule   { return l.schedule }
func (l *Lot) State() State         { return l.state }
func (l *Lot) CreatedAt() time.Time { return l.createdAt }
func (l *Lot) UpdatedAt() time.Time { return l.updatedAt }
