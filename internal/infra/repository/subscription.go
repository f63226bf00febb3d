package repository

import (
	"context"
	"time"

	"playa-admin/internal/domain/payment"
	"playa-admin/internal/domain/subscription"
	"playa-admin/internal/infra"
	"playa-admin/internal/pkg/pgconv"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type subscriberRepository struct {
	db infra.DBTX
}

func NewSubscriberRepository(db infra.DBTX) shared.SubscriberRepository {
	return &subscriberRepository{db: db}
}

func (r *subscriberRepository) Create(ctx context.Context, name, document, phone string) (uuid.UUID, error) {
	id := uuid.New()
	const query = `
		INSERT INTO subscribers (id, name, document, phone, created_at)
		VALUES ($1, $2, $3, $4, now())`

	if _, err := r.db.Exec(ctx, query, id, name, document, phone); err != nil {
		return uuid.Nil, wrapWriteErr("failed to insert subscriber", err)
	}
	return id, nil
}

type subscriptionRepository struct {
	db infra.DBTX
}

func NewSubscriptionRepository(db infra.DBTX) shared.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) (uuid.UUID, error) {
	const query = `
		INSERT INTO subscriptions (id, lot_id, space_id, subscriber_id, monthly_amount, start_date, end_date, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`

	_, err := r.db.Exec(ctx, query,
		s.ID(), s.LotID(), s.SpaceID(), s.SubscriberID(),
		s.MonthlyAmount(), s.StartDate(), pgconv.TimePtrToPgtype(s.EndDate()), s.State().String(),
	)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to insert subscription", err)
	}

	if err := r.insertVehicles(ctx, s.ID(), s.Vehicles()); err != nil {
		return uuid.Nil, err
	}
	return s.ID(), nil
}

func (r *subscriptionRepository) Update(ctx context.Context, s *subscription.Subscription) error {
	const query = `
		UPDATE subscriptions
		SET space_id = $2, monthly_amount = $3, end_date = $4, state = $5, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		s.ID(), s.SpaceID(), s.MonthlyAmount(), pgconv.TimePtrToPgtype(s.EndDate()), s.State().String(),
	)
	if err != nil {
		return wrapWriteErr("failed to update subscription", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *subscriptionRepository) ReplaceVehicles(ctx context.Context, subscriptionID uuid.UUID, vehicles []subscription.Vehicle) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM subscription_vehicles WHERE subscription_id = $1`, subscriptionID); err != nil {
		return wrapWriteErr("failed to clear subscription vehicles", err)
	}
	return r.insertVehicles(ctx, subscriptionID, vehicles)
}

func (r *subscriptionRepository) insertVehicles(ctx context.Context, subscriptionID uuid.UUID, vehicles []subscription.Vehicle) error {
	const query = `
		INSERT INTO subscription_vehicles (subscription_id, plate, vehicle_type)
		VALUES ($1, $2, $3)`

	for _, v := range vehicles {
		if _, err := r.db.Exec(ctx, query, subscriptionID, v.Plate, v.VehicleType); err != nil {
			return wrapWriteErr("failed to insert subscription vehicle", err)
		}
	}
	return nil
}

type billRepository struct {
	db infra.DBTX
}

func NewBillRepository(db infra.DBTX) shared.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, subscriptionID uuid.UUID, issuedAt time.Time, amount int64, status subscription.BillStatus) (uuid.UUID, error) {
	id := uuid.New()
	const query = `
		INSERT INTO bills (id, subscription_id, issued_at, amount, status)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.Exec(ctx, query, id, subscriptionID, issuedAt, amount, status.String()); err != nil {
		return uuid.Nil, wrapWriteErr("failed to insert bill", err)
	}
	return id, nil
}

func (r *billRepository) MarkPaid(ctx context.Context, billID uuid.UUID, paidAt time.Time) error {
	const query = `UPDATE bills SET status = 'PAGADA', paid_at = $2 WHERE id = $1 AND status = 'PENDIENTE'`

	tag, err := r.db.Exec(ctx, query, billID, paidAt)
	if err != nil {
		return wrapWriteErr("failed to mark bill paid", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("pending bill not found", nil, infra.KindNotFound)
	}
	return nil
}

type paymentRepository struct {
	db infra.DBTX
}

func NewPaymentRepository(db infra.DBTX) shared.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *payment.Payment) (uuid.UUID, error) {
	const query = `
		INSERT INTO payments (id, lot_id, attendant_id, amount, paid_at, occupation_id, bill_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		p.ID(), p.LotID(), p.AttendantID(), p.Amount(), p.PaidAt(),
		pgconv.UUIDPtrToPgtype(p.OccupationID()), pgconv.UUIDPtrToPgtype(p.BillID()),
	)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to insert payment", err)
	}
	return p.ID(), nil
}
