package readstore

import (
	"context"

	"playa-admin/internal/infra"
	"playa-admin/internal/pkg/pgconv"
	"playa-admin/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type SubscriptionReadStore struct {
	db infra.DBTX
}

func NewSubscriptionReadStore(db infra.DBTX) *SubscriptionReadStore {
	return &SubscriptionReadStore{db: db}
}

const subscriptionViewQuery = `
	SELECT s.id, s.lot_id, s.space_id, sp.label, sub.name, s.monthly_amount,
	       s.start_date, s.end_date, s.state
	FROM subscriptions s
	JOIN spaces sp ON sp.id = s.space_id
	JOIN subscribers sub ON sub.id = s.subscriber_id`

func (r *SubscriptionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SubscriptionView, error) {
	row := r.db.QueryRow(ctx, subscriptionViewQuery+` WHERE s.id = $1`, id)
	view, err := scanSubscriptionView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("subscription not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find subscription", err)
	}

	if err := r.attachVehicles(ctx, []*queries.SubscriptionView{view}); err != nil {
		return nil, err
	}
	if err := r.attachBills(ctx, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (r *SubscriptionReadStore) FindByLot(ctx context.Context, lotID uuid.UUID, state *string) ([]*queries.SubscriptionView, error) {
	query := subscriptionViewQuery + ` WHERE s.lot_id = $1 AND ($2::text IS NULL OR s.state = $2) ORDER BY s.start_date DESC`

	rows, err := r.db.Query(ctx, query, lotID, pgconv.StringPtrToPgtype(state))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list subscriptions", err)
	}
	defer rows.Close()

	var views []*queries.SubscriptionView
	for rows.Next() {
		view, err := scanSubscriptionView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan subscription row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate subscription rows", err)
	}

	if err := r.attachVehicles(ctx, views); err != nil {
		return nil, err
	}
	return views, nil
}

func scanSubscriptionView(row pgx.Row) (*queries.SubscriptionView, error) {
	view := new(queries.SubscriptionView)
	var (
		startDate pgtype.Timestamptz
		endDate   pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.LotID, &view.SpaceID, &view.SpaceLabel, &view.SubscriberName,
		&view.MonthlyAmount, &startDate, &endDate, &view.State,
	)
	if err != nil {
		return nil, err
	}
	view.StartDate = pgconv.TimeFromPgtype(startDate)
	view.EndDate = pgconv.TimePtrFromPgtype(endDate)
	return view, nil
}

func (r *SubscriptionReadStore) attachVehicles(ctx context.Context, views []*queries.SubscriptionView) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(views))
	byID := make(map[uuid.UUID]*queries.SubscriptionView, len(views))
	for i, v := range views {
		ids[i] = v.ID
		byID[v.ID] = v
	}

	rows, err := r.db.Query(ctx,
		`SELECT subscription_id, plate, vehicle_type FROM subscription_vehicles WHERE subscription_id = ANY($1) ORDER BY plate`,
		ids,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to list subscription vehicles", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			subID   uuid.UUID
			vehicle queries.VehicleView
		)
		if err := rows.Scan(&subID, &vehicle.Plate, &vehicle.VehicleType); err != nil {
			return infra.WrapRepoErr("failed to scan vehicle row", err)
		}
		if view, ok := byID[subID]; ok {
			view.Vehicles = append(view.Vehicles, vehicle)
		}
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to iterate vehicle rows", err)
	}
	return nil
}

func (r *SubscriptionReadStore) attachBills(ctx context.Context, view *queries.SubscriptionView) error {
	rows, err := r.db.Query(ctx,
		`SELECT id, issued_at, amount, status FROM bills WHERE subscription_id = $1 ORDER BY issued_at DESC`,
		view.ID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to list bills", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bill     queries.BillView
			issuedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&bill.ID, &issuedAt, &bill.Amount, &bill.Status); err != nil {
			return infra.WrapRepoErr("failed to scan bill row", err)
		}
		bill.IssuedAt = pgconv.TimeFromPgtype(issuedAt)
		if bill.Status == "PENDIENTE" {
			bill.Debt = bill.Amount
		}
		view.Bills = append(view.Bills, bill)
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to iterate bill rows", err)
	}
	return nil
}
