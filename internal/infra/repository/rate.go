package repository

import (
	"context"

	"playa-admin/internal/domain/rate"
	"playa-admin/internal/infra"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type rateRepository struct {
	db infra.DBTX
}

func NewRateRepository(db infra.DBTX) shared.RateRepository {
	return &rateRepository{db: db}
}

func (r *rateRepository) Create(ctx context.Context, rt *rate.Rate) (uuid.UUID, error) {
	const query = `
		INSERT INTO rates (id, lot_id, space_type_id, mode, vehicle_type, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`

	key := rt.Key()
	_, err := r.db.Exec(ctx, query, rt.ID(), rt.LotID(), key.SpaceTypeID, key.Mode.String(), key.VehicleType.String(), rt.Price())
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to insert rate", err)
	}
	return rt.ID(), nil
}

func (r *rateRepository) UpdatePrice(ctx context.Context, id uuid.UUID, price int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE rates SET price = $2, updated_at = now() WHERE id = $1`, id, price)
	if err != nil {
		return wrapWriteErr("failed to update rate price", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("rate not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *rateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM rates WHERE id = $1`, id)
	if err != nil {
		return wrapWriteErr("failed to delete rate", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("rate not found", nil, infra.KindNotFound)
	}
	return nil
}
