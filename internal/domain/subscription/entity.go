package subscription

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Vehicle is one plate allowed to use the subscribed space.
type Vehicle struct {
	Plate       string
	VehicleType string
}

func NewVehicle(plate, vehicleType string) (Vehicle, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return Vehicle{}, ErrEmptyPlate
	}
	return Vehicle{Plate: plate, VehicleType: vehicleType}, nil
}

// Subscription ("abono") reserves one space for one subscriber on a monthly
// price. The state machine is one-directional: ACTIVO -> FINALIZADO, and the
// end date, once set, never changes.
type Subscription struct {
	id            uuid.UUID
	lotID         uuid.UUID
	spaceID       uuid.UUID
	subscriberID  uuid.UUID
	monthlyAmount int64
	startDate     time.Time
	endDate       *time.Time
	state         State
	vehicles      []Vehicle
	createdAt     time.Time
	updatedAt     time.Time
}

func New(lotID, spaceID, subscriberID uuid.UUID, monthlyAmount int64, startDate time.Time, vehicles []Vehicle) (*Subscription, error) {
	if monthlyAmount < 0 {
		return nil, ErrNegativeAmount
	}
	if len(vehicles) == 0 {
		return nil, ErrNoVehicles
	}

	return &Subscription{
		id:            uuid.New(),
		lotID:         lotID,
		spaceID:       spaceID,
		subscriberID:  subscriberID,
		monthlyAmount: monthlyAmount,
		startDate:     startDate,
		state:         StateActive,
		vehicles:      vehicles,
	}, nil
}

func Reconstruct(
	id, lotID, spaceID, subscriberID uuid.UUID,
	monthlyAmount int64,
	startDate time.Time,
	endDate *time.Time,
	state State,
	vehicles []Vehicle,
	createdAt, updatedAt time.Time,
) *Subscription {
	return &Subscription{
		id:            id,
		lotID:         lotID,
		spaceID:       spaceID,
		subscriberID:  subscriberID,
		monthlyAmount: monthlyAmount,
		startDate:     startDate,
		endDate:       endDate,
		state:         state,
		vehicles:      vehicles,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Finalize is terminal. Re-finalizing is an error, never a silent success.
func (s *Subscription) Finalize(at time.Time) error {
	if s.state == StateFinalized {
		return ErrAlreadyFinalized
	}
	if at.Before(s.startDate) {
		return ErrEndBeforeStart
	}
	s.state = StateFinalized
	s.endDate = &at
	return nil
}

// Reassign moves the subscription to another space. The caller is
// responsible for recomputing the monthly amount against the new space's
// rate table and surfacing the change before committing.
func (s *Subscription) Reassign(spaceID uuid.UUID, monthlyAmount int64) error {
	if s.state == StateFinalized {
		return ErrAlreadyFinalized
	}
	if monthlyAmount < 0 {
		return ErrNegativeAmount
	}
	s.spaceID = spaceID
	s.monthlyAmount = monthlyAmount
	return nil
}

func (s *Subscription) ReplaceVehicles(vehicles []Vehicle) error {
	if s.state == StateFinalized {
		return ErrAlreadyFinalized
	}
	if len(vehicles) == 0 {
		return ErrNoVehicles
	}
	s.vehicles = vehicles
	return nil
}

func (s *Subscription) IsActive() bool {
	return s.state == StateActive
}

func (s *Subscription) FirstCharge() int64 {
	return ProrateFirstMonth(s.monthlyAmount, s.startDate)
}

func (s *Subscription) ID() uuid.UUID           { return s.id }
func (s *Subscription) LotID() uuid.UUID        { return s.lotID }
func (s *Subscription) SpaceID() uuid.UUID      { return s.spaceID }
func (s *Subscription) SubscriberID() uuid.UUID { return s.subscriberID }
func (s *Subscription) MonthlyAmount() int64    { return s.monthlyAmount }
func (s *Subscription) StartDate() time.Time    { return s.startDate }
func (s *Subscription) EndDate() *time.Time     { return s.endDate }
func (s *Subscription) State() State            { return s.state }
func (s *Subscription) Vehicles() []Vehicle     { return s.vehicles }
func (s *Subscription) CreatedAt() time.Time    { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time    { return s.updatedAt }
