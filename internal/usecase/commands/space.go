package commands

import (
	"context"

	"playa-admin/internal/domain/space"
	"playa-admin/internal/pkg/clock"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateSpaceParams struct {
	LotID  uuid.UUID
	TypeID uuid.UUID
	Label  string
}

type CreateSpaceTypeParams struct {
	LotID           uuid.UUID
	Name            string
	Description     string
	Characteristics []string
}

type UpdateSpaceTypeParams struct {
	Name            *string
	Description     *string
	Characteristics []string
}

type SpaceCommands interface {
	Create(ctx context.Context, actor shared.Actor, params CreateSpaceParams) (uuid.UUID, error)
	Suspend(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	Restore(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type SpaceTypeCommands interface {
	Create(ctx context.Context, actor shared.Actor, params CreateSpaceTypeParams) (uuid.UUID, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, params UpdateSpaceTypeParams) error
	Remove(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type spaceCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewSpaceCommands(uow shared.UnitOfWork) SpaceCommands {
	return &spaceCommandsImpl{uow: uow}
}

func (c *spaceCommandsImpl) Create(ctx context.Context, actor shared.Actor, params CreateSpaceParams) (uuid.UUID, error) {
	if err := requireOwnedLot(ctx, c.uow.Reads(), actor, params.LotID); err != nil {
		return uuid.Nil, err
	}

	typeSnap, err := c.uow.Reads().SpaceTypeByID(ctx, params.TypeID)
	if err != nil {
		return uuid.Nil, markNotFound(err, errs.ErrSpaceTypeNotFound)
	}
	if typeSnap.LotID != params.LotID || typeSnap.RemovedAt != nil {
		return uuid.Nil, errs.ErrSpaceTypeNotFound
	}

	s, err := space.NewSpace(params.LotID, params.TypeID, params.Label)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err = tx.Spaces().Create(ctx, s)
		if err != nil {
			return markDuplicate(err, errs.ErrDuplicateSpaceLabel)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (c *spaceCommandsImpl) Suspend(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	return c.setState(ctx, actor, id, space.StateSuspended)
}

func (c *spaceCommandsImpl) Restore(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	return c.setState(ctx, actor, id, space.StateActive)
}

func (c *spaceCommandsImpl) setState(ctx context.Context, actor shared.Actor, id uuid.UUID, state space.State) error {
	snap, err := c.uow.Reads().SpaceByID(ctx, id)
	if err != nil {
		return markNotFound(err, errs.ErrSpaceNotFound)
	}
	if err := requireOwnedLot(ctx, c.uow.Reads(), actor, snap.LotID); err != nil {
		return err
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Spaces().UpdateState(ctx, id, state); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

type spaceTypeCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSpaceTypeCommands(uow shared.UnitOfWork, clk clock.Clock) SpaceTypeCommands {
	return &spaceTypeCommandsImpl{uow: uow, clock: clk}
}

func (c *spaceTypeCommandsImpl) Create(ctx context.Context, actor shared.Actor, params CreateSpaceTypeParams) (uuid.UUID, error) {
	if err := requireOwnedLot(ctx, c.uow.Reads(), actor, params.LotID); err != nil {
		return uuid.Nil, err
	}

	t, err := space.NewSpaceType(params.LotID, params.Name, params.Description, params.Characteristics)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err = tx.SpaceTypes().Create(ctx, t)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (c *spaceTypeCommandsImpl) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, params UpdateSpaceTypeParams) error {
	snap, err := c.loadOwned(ctx, actor, id)
	if err != nil {
		return err
	}

	name := snap.Name
	if params.Name != nil {
		name = *params.Name
	}
	description := snap.Description
	if params.Description != nil {
		description = *params.Description
	}
	characteristics := snap.Characteristics
	if params.Characteristics != nil {
		characteristics = params.Characteristics
	}

	t, err := space.NewSpaceType(snap.LotID, name, description, characteristics)
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}
	t = space.ReconstructSpaceType(
		snap.ID, snap.LotID, t.Name(), t.Description(), t.Characteristics(),
		space.LiveLifecycle(), c.clock.Now(), c.clock.Now(),
	)

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.SpaceTypes().Update(ctx, t); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// Remove tombstones the type when live spaces or rates still reference it,
// and hard-deletes it otherwise.
func (c *spaceTypeCommandsImpl) Remove(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	snap, err := c.loadOwned(ctx, actor, id)
	if err != nil {
		return err
	}
	if snap.RemovedAt != nil {
		return errs.ErrSpaceTypeNotFound
	}

	referenced, err := c.uow.Reads().SpaceTypeReferenced(ctx, id)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if referenced {
			if err := tx.SpaceTypes().Tombstone(ctx, id, c.clock.Now()); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			return nil
		}
		if err := tx.SpaceTypes().Delete(ctx, id); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *spaceTypeCommandsImpl) loadOwned(ctx context.Context, actor shared.Actor, id uuid.UUID) (*shared.SpaceTypeSnapshot, error) {
	snap, err := c.uow.Reads().SpaceTypeByID(ctx, id)
	if err != nil {
		return nil, markNotFound(err, errs.ErrSpaceTypeNotFound)
	}
	if err := requireOwnedLot(ctx, c.uow.Reads(), actor, snap.LotID); err != nil {
		return nil, err
	}
	return snap, nil
}

// requireOwnedLot gates owner-facing mutations: the lot must exist and
// belong to the acting owner.
func requireOwnedLot(ctx context.Context, reads shared.CommandReads, actor shared.Actor, lotID uuid.UUID) error {
	lotSnap, err := reads.LotByID(ctx, lotID)
	if err != nil {
		return markNotFound(err, errs.ErrLotNotFound)
	}
	if lotSnap.OwnerID != actor.ID {
		return errs.ErrLotNotOwned
	}
	return nil
}
