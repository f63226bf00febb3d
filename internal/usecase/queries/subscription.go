package queries

import (
	"context"
	"errors"

	"playa-admin/internal/infra"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type SubscriptionViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SubscriptionView, error)
	FindByLot(ctx context.Context, lotID uuid.UUID, state *string) ([]*SubscriptionView, error)
}

type SubscriptionQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*SubscriptionView, error)
	ListByLot(ctx context.Context, actor shared.Actor, lotID uuid.UUID, state *string) ([]*SubscriptionView, error)
}

type subscriptionQueriesImpl struct {
	repo  SubscriptionViewRepo
	guard LotGuard
}

func NewSubscriptionQueries(repo SubscriptionViewRepo, guard LotGuard) SubscriptionQueries {
	return &subscriptionQueriesImpl{repo: repo, guard: guard}
}

func (q *subscriptionQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*SubscriptionView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrSubscriptionNotFound)
		}
		return nil, errs.Wrap(err, "failed to read subscription")
	}
	// a subscription on a lot outside the actor's scope is indistinguishable
	// from a missing one
	if err := guardLot(ctx, q.guard, actor, view.LotID); err != nil {
		if errors.Is(err, errs.ErrLotNotFound) {
			return nil, errs.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *subscriptionQueriesImpl) ListByLot(ctx context.Context, actor shared.Actor, lotID uuid.UUID, state *string) ([]*SubscriptionView, error) {
	if err := guardLot(ctx, q.guard, actor, lotID); err != nil {
		return nil, err
	}
	return q.repo.FindByLot(ctx, lotID, state)
}
