package commands

import (
	"context"
	"time"

	"playa-admin/internal/domain/lot"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/pkg/patch"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateLotParams struct {
	Name    string
	Address string
	Hours   string
}

type UpdateLotParams struct {
	Name    *string
	Address *string
	Hours   *string
}

type LotCommands interface {
	Create(ctx context.Context, actor shared.Actor, params CreateLotParams) (uuid.UUID, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, params UpdateLotParams) error
	Activate(ctx context.Context, actor shared.Actor, id uuid.UUID) error
	Suspend(ctx context.Context, actor shared.Actor, id uuid.UUID) error
}

type lotCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewLotCommands(uow shared.UnitOfWork) LotCommands {
	return &lotCommandsImpl{uow: uow}
}

func (c *lotCommandsImpl) Create(ctx context.Context, actor shared.Actor, params CreateLotParams) (uuid.UUID, error) {
	if !actor.IsOwner() {
		return uuid.Nil, errs.ErrLotNotOwned
	}

	l, err := lot.NewLot(actor.ID, params.Name, params.Address, params.Hours)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidSchedule)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err = tx.Lots().Create(ctx, l)
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

func (c *lotCommandsImpl) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, params UpdateLotParams) error {
	snap, err := c.loadOwned(ctx, actor, id)
	if err != nil {
		return err
	}

	name := patch.Coalesce(params.Name, snap.Name)
	address := patch.Coalesce(params.Address, snap.Address)
	hours := patch.Coalesce(params.Hours, snap.Hours)

	// NewLot re-validates the (possibly unchanged) schedule string strictly
	l, err := lot.NewLot(snap.OwnerID, name, address, hours)
	if err != nil {
		return errs.Mark(err, errs.ErrInvalidSchedule)
	}
	l = lot.Reconstruct(snap.ID, snap.OwnerID, l.Name(), l.Address(), l.Hours(), lot.State(snap.State), l.CreatedAt(), l.UpdatedAt())

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Lots().Update(ctx, l); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *lotCommandsImpl) Activate(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	return c.transition(ctx, actor, id, func(l *lot.Lot) error { return l.Activate() })
}

func (c *lotCommandsImpl) Suspend(ctx context.Context, actor shared.Actor, id uuid.UUID) error {
	return c.transition(ctx, actor, id, func(l *lot.Lot) error {
		l.Suspend()
		return nil
	})
}

func (c *lotCommandsImpl) transition(ctx context.Context, actor shared.Actor, id uuid.UUID, apply func(*lot.Lot) error) error {
	snap, err := c.loadOwned(ctx, actor, id)
	if err != nil {
		return err
	}

	l := lot.Reconstruct(snap.ID, snap.OwnerID, snap.Name, snap.Address, snap.Hours, lot.State(snap.State), time.Time{}, time.Time{})
	if err := apply(l); err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Lots().Update(ctx, l); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *lotCommandsImpl) loadOwned(ctx context.Context, actor shared.Actor, id uuid.UUID) (*shared.LotSnapshot, error) {
	snap, err := c.uow.Reads().LotByID(ctx, id)
	if err != nil {
		return nil, markNotFound(err, errs.ErrLotNotFound)
	}
	if snap.OwnerID != actor.ID {
		return nil, errs.ErrLotNotOwned
	}
	return snap, nil
}
