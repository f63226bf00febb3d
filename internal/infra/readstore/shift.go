package readstore

import (
	"context"
	"time"

	"playa-admin/internal/infra"
	"playa-admin/internal/pkg/pgconv"
	"playa-admin/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ShiftReadStore struct {
	db infra.DBTX
}

func NewShiftReadStore(db infra.DBTX) *ShiftReadStore {
	return &ShiftReadStore{db: db}
}

func (r *ShiftReadStore) FindByLot(ctx context.Context, lotID uuid.UUID, attendantID *uuid.UUID, from, to time.Time) ([]*queries.ShiftRow, error) {
	const query = `
		SELECT s.id, s.lot_id, s.attendant_id, u.name, s.start_at, s.end_at,
		       s.opening_cash, s.closing_cash, s.created_at, s.updated_at
		FROM shifts s
		JOIN users u ON u.id = s.attendant_id
		WHERE s.lot_id = $1
		  AND ($2::uuid IS NULL OR s.attendant_id = $2)
		  AND s.start_at >= $3 AND s.start_at < $4
		ORDER BY s.start_at DESC`

	rows, err := r.db.Query(ctx, query, lotID, pgconv.UUIDPtrToPgtype(attendantID), from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list shifts", err)
	}
	defer rows.Close()

	var out []*queries.ShiftRow
	for rows.Next() {
		row := new(queries.ShiftRow)
		var (
			startAt     pgtype.Timestamptz
			endAt       pgtype.Timestamptz
			closingCash pgtype.Int8
			createdAt   pgtype.Timestamptz
			updatedAt   pgtype.Timestamptz
		)
		err := rows.Scan(
			&row.ID, &row.LotID, &row.AttendantID, &row.AttendantName,
			&startAt, &endAt, &row.OpeningCash, &closingCash, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan shift row", err)
		}
		row.Start = pgconv.TimeFromPgtype(startAt)
		row.End = pgconv.TimePtrFromPgtype(endAt)
		row.ClosingCash = pgconv.Int64PtrFromPgtype(closingCash)
		row.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		row.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate shift rows", err)
	}
	return out, nil
}

func (r *ShiftReadStore) LotHours(ctx context.Context, lotID uuid.UUID) (string, error) {
	var hours string
	err := r.db.QueryRow(ctx, `SELECT hours FROM lots WHERE id = $1`, lotID).Scan(&hours)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return "", infra.WrapRepoErr("lot not found", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to read lot hours", err)
	}
	return hours, nil
}
