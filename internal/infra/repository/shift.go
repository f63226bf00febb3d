package repository

import (
	"context"
	"time"

	"playa-admin/internal/domain/shift"
	"playa-admin/internal/infra"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type shiftRepository struct {
	db infra.DBTX
}

func NewShiftRepository(db infra.DBTX) shared.ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Create(ctx context.Context, s *shift.Shift) (uuid.UUID, error) {
	const query = `
		INSERT INTO shifts (id, lot_id, attendant_id, start_at, opening_cash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`

	_, err := r.db.Exec(ctx, query, s.ID(), s.LotID(), s.AttendantID(), s.Start(), s.OpeningCash())
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to insert shift", err)
	}
	return s.ID(), nil
}

func (r *shiftRepository) Close(ctx context.Context, id uuid.UUID, end time.Time, closingCash int64) error {
	const query = `
		UPDATE shifts
		SET end_at = $2, closing_cash = $3, updated_at = now()
		WHERE id = $1 AND end_at IS NULL`

	tag, err := r.db.Exec(ctx, query, id, end, closingCash)
	if err != nil {
		return wrapWriteErr("failed to close shift", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("open shift not found", nil, infra.KindNotFound)
	}
	return nil
}
