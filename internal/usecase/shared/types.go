package shared

import (
	"time"

	"playa-admin/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller, passed explicitly into every command
// and query; there is no ambient "selected lot" state.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsOwner() bool {
	return a.Role == user.RoleOwner
}

// Write-side snapshots keep the command layer off the read-side view types.
type LotSnapshot struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Name    string
	Address string
	Hours   string
	State   string
}

type SpaceSnapshot struct {
	ID     uuid.UUID
	LotID  uuid.UUID
	TypeID uuid.UUID
	Label  string
	State  string
}

// SpaceUsage is the instantaneous occupancy situation of one space.
type SpaceUsage struct {
	HasOpenOccupation     bool
	HasActiveSubscription bool
}

func (u SpaceUsage) IsFree() bool {
	return !u.HasOpenOccupation && !u.HasActiveSubscription
}

type SpaceTypeSnapshot struct {
	ID              uuid.UUID
	LotID           uuid.UUID
	Name            string
	Description     string
	Characteristics []string
	RemovedAt       *time.Time
}

type RateSnapshot struct {
	ID          uuid.UUID
	LotID       uuid.UUID
	SpaceTypeID uuid.UUID
	Mode        string
	VehicleType string
	Price       int64
}

type ShiftSnapshot struct {
	ID          uuid.UUID
	LotID       uuid.UUID
	AttendantID uuid.UUID
	Start       time.Time
	End         *time.Time
	OpeningCash int64
}

type SubscriptionSnapshot struct {
	ID            uuid.UUID
	LotID         uuid.UUID
	SpaceID       uuid.UUID
	SubscriberID  uuid.UUID
	MonthlyAmount int64
	StartDate     time.Time
	EndDate       *time.Time
	State         string
	Vehicles      []VehicleSnapshot
}

type VehicleSnapshot struct {
	Plate       string
	VehicleType string
}

type BillSnapshot struct {
	ID             uuid.UUID
	SubscriptionID uuid.UUID
	IssuedAt       time.Time
	Amount         int64
	Status         string
	PaidAt         *time.Time
}

type OccupationSnapshot struct {
	ID          uuid.UUID
	SpaceID     uuid.UUID
	LotID       uuid.UUID
	Plate       string
	VehicleType string
	Entry       time.Time
	Exit        *time.Time
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         string
	IsActive     bool
}

type InvitationSnapshot struct {
	Token     uuid.UUID
	Email     string
	InviterID uuid.UUID
	UserID    uuid.UUID
	LotIDs    []uuid.UUID
	ExpiresAt time.Time
	Accepted  bool
}
