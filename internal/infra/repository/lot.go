package repository

import (
	"context"

	"playa-admin/internal/domain/lot"
	"playa-admin/internal/infra"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type lotRepository struct {
	db infra.DBTX
}

func NewLotRepository(db infra.DBTX) shared.LotRepository {
	return &lotRepository{db: db}
}

func (r *lotRepository) Create(ctx context.Context, l *lot.Lot) (uuid.UUID, error) {
	const query = `
		INSERT INTO lots (id, owner_id, name, address, hours, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`

	_, err := r.db.Exec(ctx, query, l.ID(), l.OwnerID(), l.Name(), l.Address(), l.Hours(), l.State().String())
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to insert lot", err)
	}
	return l.ID(), nil
}

func (r *lotRepository) Update(ctx context.Context, l *lot.Lot) error {
	const query = `
		UPDATE lots
		SET name = $2, address = $3, hours = $4, state = $5, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, l.ID(), l.Name(), l.Address(), l.Hours(), l.State().String())
	if err != nil {
		return wrapWriteErr("failed to update lot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("lot not found", nil, infra.KindNotFound)
	}
	return nil
}
