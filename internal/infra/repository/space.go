package repository

import (
	"context"
	"time"

	"playa-admin/internal/domain/space"
	"playa-admin/internal/infra"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type spaceRepository struct {
	db infra.DBTX
}

func NewSpaceRepository(db infra.DBTX) shared.SpaceRepository {
	return &spaceRepository{db: db}
}

func (r *spaceRepository) Create(ctx context.Context, s *space.Space) (uuid.UUID, error) {
	const query = `
		INSERT INTO spaces (id, lot_id, type_id, label, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`

	_, err := r.db.Exec(ctx, query, s.ID(), s.LotID(), s.TypeID(), s.Label(), s.State().String())
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to insert space", err)
	}
	return s.ID(), nil
}

func (r *spaceRepository) UpdateState(ctx context.Context, id uuid.UUID, state space.State) error {
	tag, err := r.db.Exec(ctx, `UPDATE spaces SET state = $2, updated_at = now() WHERE id = $1`, id, state.String())
	if err != nil {
		return wrapWriteErr("failed to update space state", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("space not found", nil, infra.KindNotFound)
	}
	return nil
}

type spaceTypeRepository struct {
	db infra.DBTX
}

func NewSpaceTypeRepository(db infra.DBTX) shared.SpaceTypeRepository {
	return &spaceTypeRepository{db: db}
}

func (r *spaceTypeRepository) Create(ctx context.Context, t *space.SpaceType) (uuid.UUID, error) {
	const query = `
		INSERT INTO space_types (id, lot_id, name, description, characteristics, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`

	_, err := r.db.Exec(ctx, query, t.ID(), t.LotID(), t.Name(), t.Description(), t.Characteristics())
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to insert space type", err)
	}
	return t.ID(), nil
}

func (r *spaceTypeRepository) Update(ctx context.Context, t *space.SpaceType) error {
	const query = `
		UPDATE space_types
		SET name = $2, description = $3, characteristics = $4, updated_at = now()
		WHERE id = $1 AND removed_at IS NULL`

	tag, err := r.db.Exec(ctx, query, t.ID(), t.Name(), t.Description(), t.Characteristics())
	if err != nil {
		return wrapWriteErr("failed to update space type", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("space type not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *spaceTypeRepository) Tombstone(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE space_types SET removed_at = $2, updated_at = now() WHERE id = $1 AND removed_at IS NULL`,
		id, at,
	)
	if err != nil {
		return wrapWriteErr("failed to tombstone space type", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("space type not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *spaceTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM space_types WHERE id = $1`, id)
	if err != nil {
		return wrapWriteErr("failed to delete space type", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("space type not found", nil, infra.KindNotFound)
	}
	return nil
}
