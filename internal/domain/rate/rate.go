package rate

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativePrice      = errors.New("rate price cannot be negative")
	ErrInvalidMode        = errors.New("invalid occupancy mode")
	ErrInvalidVehicleType = errors.New("invalid vehicle type")
)

// Mode is the occupancy modality a price applies to. ABONO is the monthly
// subscription mode; the rest are sporadic pay-per-use modes.
type Mode string

const (
	ModeHourly       Mode = "POR_HORA"
	ModeDaily        Mode = "POR_DIA"
	ModeWeekly       Mode = "POR_SEMANA"
	ModeSubscription Mode = "ABONO"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeHourly, ModeDaily, ModeWeekly, ModeSubscription:
		return true
	default:
		return false
	}
}

func (m Mode) String() string {
	return string(m)
}

func NewMode(v string) (Mode, error) {
	m := Mode(v)
	if !m.IsValid() {
		return "", ErrInvalidMode
	}
	return m, nil
}

type VehicleType string

const (
	VehicleCar        VehicleType = "AUTO"
	VehicleMotorcycle VehicleType = "MOTO"
	VehiclePickup     VehicleType = "CAMIONETA"
)

func (v VehicleType) IsValid() bool {
	switch v {
	case VehicleCar, VehicleMotorcycle, VehiclePickup:
		return true
	default:
		return false
	}
}

func (v VehicleType) String() string {
	return string(v)
}

func NewVehicleType(s string) (VehicleType, error) {
	v := VehicleType(s)
	if !v.IsValid() {
		return "", ErrInvalidVehicleType
	}
	return v, nil
}

// Key identifies a rate inside a lot. The storage layer holds a unique
// index on (lot, space type, mode, vehicle type); duplicates are rejected.
type Key struct {
	SpaceTypeID uuid.UUID
	Mode        Mode
	VehicleType VehicleType
}

type Rate struct {
	id        uuid.UUID
	lotID     uuid.UUID
	key       Key
	price     int64
	createdAt time.Time
	updatedAt time.Time
}

func New(lotID uuid.UUID, key Key, price int64) (*Rate, error) {
	if !key.Mode.IsValid() {
		return nil, ErrInvalidMode
	}
	if !key.VehicleType.IsValid() {
		return nil, ErrInvalidVehicleType
	}
	if price < 0 {
		return nil, ErrNegativePrice
	}
	return &Rate{
		id:    uuid.New(),
		lotID: lotID,
		key:   key,
		price: price,
	}, nil
}

func Reconstruct(id, lotID uuid.UUID, key Key, price int64, createdAt, updatedAt time.Time) *Rate {
	return &Rate{
		id:        id,
		lotID:     lotID,
		key:       key,
		price:     price,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Rate) Reprice(price int64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	r.price = price
	return nil
}

func (r *Rate) ID() uuid.UUID        { return r.id }
func (r *Rate) LotID() uuid.UUID     { return r.lotID }
func (r *Rate) Key() Key             { return r.key }
func (r *Rate) Price() int64         { return r.price }
func (r *Rate) CreatedAt() time.Time { return r.createdAt }
func (r *Rate) UpdatedAt() time.Time { return r.updatedAt }
