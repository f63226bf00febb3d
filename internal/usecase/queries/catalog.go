package queries

import (
	"context"

	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type SpaceTypeViewRepo interface {
	FindByLot(ctx context.Context, lotID uuid.UUID, includeRemoved bool) ([]*SpaceTypeView, error)
}

type RateViewRepo interface {
	FindByLot(ctx context.Context, lotID uuid.UUID) ([]*RateView, error)
}

type CatalogQueries interface {
	SpaceTypes(ctx context.Context, actor shared.Actor, lotID uuid.UUID, includeRemoved bool) ([]*SpaceTypeView, error)
	Rates(ctx context.Context, actor shared.Actor, lotID uuid.UUID) ([]*RateView, error)
}

type catalogQueriesImpl struct {
	types SpaceTypeViewRepo
	rates RateViewRepo
	guard LotGuard
}

func NewCatalogQueries(types SpaceTypeViewRepo, rates RateViewRepo, guard LotGuard) CatalogQueries {
	return &catalogQueriesImpl{types: types, rates: rates, guard: guard}
}

func (q *catalogQueriesImpl) SpaceTypes(ctx context.Context, actor shared.Actor, lotID uuid.UUID, includeRemoved bool) ([]*SpaceTypeView, error) {
	if err := guardLot(ctx, q.guard, actor, lotID); err != nil {
		return nil, err
	}
	return q.types.FindByLot(ctx, lotID, includeRemoved)
}

func (q *catalogQueriesImpl) Rates(ctx context.Context, actor shared.Actor, lotID uuid.UUID) ([]*RateView, error) {
	if err := guardLot(ctx, q.guard, actor, lotID); err != nil {
		return nil, err
	}
	return q.rates.FindByLot(ctx, lotID)
}
