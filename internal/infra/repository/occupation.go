package repository

import (
	"context"
	"time"

	"playa-admin/internal/infra"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type occupationRepository struct {
	db infra.DBTX
}

func NewOccupationRepository(db infra.DBTX) shared.OccupationRepository {
	return &occupationRepository{db: db}
}

func (r *occupationRepository) Create(ctx context.Context, spaceID, lotID uuid.UUID, plate, vehicleType string, entry time.Time) (uuid.UUID, error) {
	id := uuid.New()
	const query = `
		INSERT INTO occupations (id, space_id, lot_id, plate, vehicle_type, entry_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.db.Exec(ctx, query, id, spaceID, lotID, plate, vehicleType, entry); err != nil {
		return uuid.Nil, wrapWriteErr("failed to insert occupation", err)
	}
	return id, nil
}

func (r *occupationRepository) CloseOut(ctx context.Context, id uuid.UUID, exit time.Time) error {
	const query = `UPDATE occupations SET exit_at = $2 WHERE id = $1 AND exit_at IS NULL`

	tag, err := r.db.Exec(ctx, query, id, exit)
	if err != nil {
		return wrapWriteErr("failed to close occupation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("open occupation not found", nil, infra.KindNotFound)
	}
	return nil
}
