package shared

import (
	"context"
	"time"

	"playa-admin/internal/domain/lot"
	"playa-admin/internal/domain/payment"
	"playa-admin/internal/domain/rate"
	"playa-admin/internal/domain/shift"
	"playa-admin/internal/domain/space"
	"playa-admin/internal/domain/subscription"
	"playa-admin/internal/domain/user"

	"github.com/google/uuid"
)

// UnitOfWork brackets multi-step mutations in a single database transaction.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: command-side validation reads outside any transaction
	Reads() CommandReads
}

type Tx interface {
	Lots() LotRepository
	Spaces() SpaceRepository
	SpaceTypes() SpaceTypeRepository
	Rates() RateRepository
	Subscribers() SubscriberRepository
	Subscriptions() SubscriptionRepository
	Bills() BillRepository
	Payments() PaymentRepository
	Shifts() ShiftRepository
	Occupations() OccupationRepository
	Users() UserRepository
	Invitations() InvitationRepository
	Reads() CommandReads
}

// CommandReads are the minimal lookups commands need before writing.
type CommandReads interface {
	LotByID(ctx context.Context, id uuid.UUID) (*LotSnapshot, error)
	SpaceByID(ctx context.Context, id uuid.UUID) (*SpaceSnapshot, error)
	SpaceUsage(ctx context.Context, spaceID uuid.UUID) (SpaceUsage, error)
	SpaceTypeByID(ctx context.Context, id uuid.UUID) (*SpaceTypeSnapshot, error)
	SpaceTypeReferenced(ctx context.Context, id uuid.UUID) (bool, error)
	RateByKey(ctx context.Context, lotID, spaceTypeID uuid.UUID, mode, vehicleType string) (*RateSnapshot, error)
	OpenShift(ctx context.Context, attendantID uuid.UUID) (*ShiftSnapshot, error)
	SubscriptionByID(ctx context.Context, id uuid.UUID) (*SubscriptionSnapshot, error)
	UnpaidBillCount(ctx context.Context, subscriptionID uuid.UUID) (int64, error)
	BillByID(ctx context.Context, id uuid.UUID) (*BillSnapshot, error)
	OpenOccupationBySpace(ctx context.Context, spaceID uuid.UUID) (*OccupationSnapshot, error)
	OccupationByID(ctx context.Context, id uuid.UUID) (*OccupationSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	InvitationByToken(ctx context.Context, token uuid.UUID) (*InvitationSnapshot, error)
}

type LotRepository interface {
	Create(ctx context.Context, l *lot.Lot) (uuid.UUID, error)
	Update(ctx context.Context, l *lot.Lot) error
}

type SpaceRepository interface {
	Create(ctx context.Context, s *space.Space) (uuid.UUID, error)
	UpdateState(ctx context.Context, id uuid.UUID, state space.State) error
}

type SpaceTypeRepository interface {
	Create(ctx context.Context, t *space.SpaceType) (uuid.UUID, error)
	Update(ctx context.Context, t *space.SpaceType) error
	Tombstone(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RateRepository interface {
	Create(ctx context.Context, r *rate.Rate) (uuid.UUID, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, price int64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubscriberRepository persists the holder ("abonado") of a subscription.
type SubscriberRepository interface {
	Create(ctx context.Context, name, document, phone string) (uuid.UUID, error)
}

type SubscriptionRepository interface {
	Create(ctx context.Context, s *subscription.Subscription) (uuid.UUID, error)
	Update(ctx context.Context, s *subscription.Subscription) error
	ReplaceVehicles(ctx context.Context, subscriptionID uuid.UUID, vehicles []subscription.Vehicle) error
}

type BillRepository interface {
	Create(ctx context.Context, subscriptionID uuid.UUID, issuedAt time.Time, amount int64, status subscription.BillStatus) (uuid.UUID, error)
	MarkPaid(ctx context.Context, billID uuid.UUID, paidAt time.Time) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment) (uuid.UUID, error)
}

type ShiftRepository interface {
	Create(ctx context.Context, s *shift.Shift) (uuid.UUID, error)
	Close(ctx context.Context, id uuid.UUID, end time.Time, closingCash int64) error
}

type OccupationRepository interface {
	Create(ctx context.Context, spaceID, lotID uuid.UUID, plate, vehicleType string, entry time.Time) (uuid.UUID, error)
	CloseOut(ctx context.Context, id uuid.UUID, exit time.Time) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Activate(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type InvitationRepository interface {
	Create(ctx context.Context, inv InvitationSnapshot) error
	MarkAccepted(ctx context.Context, token uuid.UUID, at time.Time) error
}
