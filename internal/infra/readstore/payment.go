package readstore

import (
	"context"

	"playa-admin/internal/infra"
	"playa-admin/internal/pkg/pgconv"
	"playa-admin/internal/usecase/queries"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PaymentReadStore struct {
	db infra.DBTX
}

func NewPaymentReadStore(db infra.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: db}
}

func (r *PaymentReadStore) FindByFilter(ctx context.Context, actor shared.Actor, filter queries.RevenueFilter) ([]*queries.PaymentRecord, error) {
	query := `
		SELECT p.id, p.lot_id, p.attendant_id, p.amount, p.paid_at, p.occupation_id, p.bill_id
		FROM payments p
		JOIN lots l ON l.id = p.lot_id
		WHERE p.paid_at >= $1 AND p.paid_at < $2
		  AND ($3::uuid IS NULL OR p.lot_id = $3)
		  AND ($4::uuid IS NULL OR p.attendant_id = $4)
		  AND ` + visibleLotExpr("$5") + `
		ORDER BY p.paid_at DESC`

	rows, err := r.db.Query(ctx, query,
		filter.From, filter.To,
		pgconv.UUIDPtrToPgtype(filter.LotID),
		pgconv.UUIDPtrToPgtype(filter.AttendantID),
		actor.ID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query payment ledger", err)
	}
	defer rows.Close()

	var records []*queries.PaymentRecord
	for rows.Next() {
		rec := new(queries.PaymentRecord)
		var (
			paidAt       pgtype.Timestamptz
			occupationID pgtype.UUID
			billID       pgtype.UUID
		)
		if err := rows.Scan(&rec.ID, &rec.LotID, &rec.AttendantID, &rec.Amount, &paidAt, &occupationID, &billID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment row", err)
		}
		rec.PaidAt = pgconv.TimeFromPgtype(paidAt)
		rec.OccupationID = pgconv.UUIDPtrFromPgtype(occupationID)
		rec.BillID = pgconv.UUIDPtrFromPgtype(billID)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payment rows", err)
	}
	return records, nil
}

func (r *PaymentReadStore) LotNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return r.names(ctx, `SELECT id, name FROM lots WHERE id = ANY($1)`, ids, "failed to resolve lot names")
}

func (r *PaymentReadStore) AttendantNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return r.names(ctx, `SELECT id, name FROM users WHERE id = ANY($1)`, ids, "failed to resolve attendant names")
}

func (r *PaymentReadStore) names(ctx context.Context, query string, ids []uuid.UUID, msg string) (map[uuid.UUID]string, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]string, len(ids))
	for rows.Next() {
		var (
			id   uuid.UUID
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, infra.WrapRepoErr(msg, err)
		}
		out[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(msg, err)
	}
	return out, nil
}
