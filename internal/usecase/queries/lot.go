package queries

import (
	"context"

	"playa-admin/internal/infra"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type LotViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LotView, error)
	FindVisible(ctx context.Context, userID uuid.UUID) ([]*LotView, error)
}

// LotGuard gates every lot-scoped read. Owners see the lots they own,
// attendants the lots named in an invitation they accepted. A lot outside
// the actor's scope is reported as not found so the response does not
// reveal it exists.
type LotGuard interface {
	VisibleLot(ctx context.Context, actor shared.Actor, lotID uuid.UUID) error
}

type LotQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*LotView, error)
	List(ctx context.Context, actor shared.Actor) ([]*LotView, error)
}

type lotQueriesImpl struct {
	repo  LotViewRepo
	guard LotGuard
}

func NewLotQueries(repo LotViewRepo, guard LotGuard) LotQueries {
	return &lotQueriesImpl{repo: repo, guard: guard}
}

func (q *lotQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*LotView, error) {
	if err := guardLot(ctx, q.guard, actor, id); err != nil {
		return nil, err
	}
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrLotNotFound)
		}
		return nil, errs.Wrap(err, "failed to read lot")
	}
	return view, nil
}

func (q *lotQueriesImpl) List(ctx context.Context, actor shared.Actor) ([]*LotView, error) {
	views, err := q.repo.FindVisible(ctx, actor.ID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list lots")
	}
	return views, nil
}

func guardLot(ctx context.Context, g LotGuard, actor shared.Actor, lotID uuid.UUID) error {
	if err := g.VisibleLot(ctx, actor, lotID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrLotNotFound)
		}
		return errs.Wrap(err, "failed to resolve lot visibility")
	}
	return nil
}
