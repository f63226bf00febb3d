package queries

import (
	"context"

	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

// SpaceViewRepo is the read-side port for spaces and their occupancy.
type SpaceViewRepo interface {
	FindByLot(ctx context.Context, lotID uuid.UUID, typeID *uuid.UUID) ([]*SpaceView, error)
	OccupiedSpaceIDs(ctx context.Context, lotID uuid.UUID) ([]uuid.UUID, error)
	SubscribedSpaceIDs(ctx context.Context, lotID uuid.UUID) ([]uuid.UUID, error)
}

type SpaceQueries interface {
	// List resolves availability for a lot. With onlyAvailable, spaces
	// covered by an open occupation or an active subscription are
	// excluded. Any occupancy lookup failure fails the whole call: a
	// space must never be offered as free on stale or partial data.
	List(ctx context.Context, actor shared.Actor, lotID uuid.UUID, typeID *uuid.UUID, onlyAvailable bool) ([]*SpaceView, error)
}

type spaceQueriesImpl struct {
	repo  SpaceViewRepo
	guard LotGuard
}

func NewSpaceQueries(repo SpaceViewRepo, guard LotGuard) SpaceQueries {
	return &spaceQueriesImpl{repo: repo, guard: guard}
}

func (q *spaceQueriesImpl) List(ctx context.Context, actor shared.Actor, lotID uuid.UUID, typeID *uuid.UUID, onlyAvailable bool) ([]*SpaceView, error) {
	if err := guardLot(ctx, q.guard, actor, lotID); err != nil {
		return nil, err
	}

	spaces, err := q.repo.FindByLot(ctx, lotID, typeID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list spaces")
	}

	occupied, err := q.repo.OccupiedSpaceIDs(ctx, lotID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to resolve open occupations")
	}
	subscribed, err := q.repo.SubscribedSpaceIDs(ctx, lotID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to resolve active subscriptions")
	}

	taken := make(map[uuid.UUID]string, len(occupied)+len(subscribed))
	for _, id := range occupied {
		taken[id] = SituationOccupied
	}
	for _, id := range subscribed {
		// an occupation and a subscription on the same space would break
		// the storage invariant; occupation wins for display
		if _, ok := taken[id]; !ok {
			taken[id] = SituationSubscribed
		}
	}

	out := make([]*SpaceView, 0, len(spaces))
	for _, s := range spaces {
		situation, isTaken := taken[s.ID]
		if !isTaken {
			situation = SituationFree
		}
		if onlyAvailable && (isTaken || s.State != "ACTIVE") {
			continue
		}
		s.Situation = situation
		out = append(out, s)
	}
	return out, nil
}
