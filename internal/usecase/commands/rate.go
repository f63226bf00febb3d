package commands

import (
	"context"

	"playa-admin/internal/domain/rate"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateRateParams struct {
	LotID       uuid.UUID
	SpaceTypeID uuid.UUID
	Mode        string
	VehicleType string
	Price       int64
}

type RateCommands interface {
	Create(ctx context.Context, actor shared.Actor, params CreateRateParams) (uuid.UUID, error)
	UpdatePrice(ctx context.Context, actor shared.Actor, id uuid.UUID, lotID uuid.UUID, price int64) error
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID, lotID uuid.UUID) error
}

type rateCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewRateCommands(uow shared.UnitOfWork) RateCommands {
	return &rateCommandsImpl{uow: uow}
}

func (c *rateCommandsImpl) Create(ctx context.Context, actor shared.Actor, params CreateRateParams) (uuid.UUID, error) {
	if err := requireOwnedLot(ctx, c.uow.Reads(), actor, params.LotID); err != nil {
		return uuid.Nil, err
	}

	typeSnap, err := c.uow.Reads().SpaceTypeByID(ctx, params.SpaceTypeID)
	if err != nil {
		return uuid.Nil, markNotFound(err, errs.ErrSpaceTypeNotFound)
	}
	if typeSnap.LotID != params.LotID {
		return uuid.Nil, errs.ErrSpaceTypeNotFound
	}

	mode, err := rate.NewMode(params.Mode)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	vehicleType, err := rate.NewVehicleType(params.VehicleType)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	r, err := rate.New(params.LotID, rate.Key{
		SpaceTypeID: params.SpaceTypeID,
		Mode:        mode,
		VehicleType: vehicleType,
	}, params.Price)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// the unique index on (lot, type, mode, vehicle type) rejects
		// a second price for the same tuple
		id, err = tx.Rates().Create(ctx, r)
		if err != nil {
			return markDuplicate(err, errs.ErrDuplicateRate)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (c *rateCommandsImpl) UpdatePrice(ctx context.Context, actor shared.Actor, id uuid.UUID, lotID uuid.UUID, price int64) error {
	if err := requireOwnedLot(ctx, c.uow.Reads(), actor, lotID); err != nil {
		return err
	}
	if price < 0 {
		return errs.Mark(rate.ErrNegativePrice, errs.ErrDomainValidation)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Rates().UpdatePrice(ctx, id, price); err != nil {
			return markNotFound(err, errs.ErrRateNotFound)
		}
		return nil
	})
}

func (c *rateCommandsImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID, lotID uuid.UUID) error {
	if err := requireOwnedLot(ctx, c.uow.Reads(), actor, lotID); err != nil {
		return err
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Rates().Delete(ctx, id); err != nil {
			return markNotFound(err, errs.ErrRateNotFound)
		}
		return nil
	})
}
