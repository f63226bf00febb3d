package commands

import (
	"context"
	"time"

	"playa-admin/internal/domain/payment"
	"playa-admin/internal/domain/rate"
	"playa-admin/internal/pkg/clock"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type RegisterEntryParams struct {
	LotID       uuid.UUID
	SpaceID     uuid.UUID
	Plate       string
	VehicleType string
}

type RegisterExitResult struct {
	OccupationID uuid.UUID
	Amount       int64
	Minutes      int64
}

type OccupationCommands interface {
	RegisterEntry(ctx context.Context, actor shared.Actor, params RegisterEntryParams) (uuid.UUID, error)
	RegisterExit(ctx context.Context, actor shared.Actor, occupationID uuid.UUID) (*RegisterExitResult, error)
}

type occupationCommandsImpl struct {
	uow         shared.UnitOfWork
	invalidator ReportInvalidator
	clock       clock.Clock
}

func NewOccupationCommands(uow shared.UnitOfWork, invalidator ReportInvalidator, clk clock.Clock) OccupationCommands {
	return &occupationCommandsImpl{uow: uow, invalidator: invalidator, clock: clk}
}

// RegisterEntry parks a vehicle on a free space. The free check runs inside
// the transaction so two attendants cannot race the same space.
func (c *occupationCommandsImpl) RegisterEntry(ctx context.Context, actor shared.Actor, params RegisterEntryParams) (uuid.UUID, error) {
	if _, err := requireOpenShift(ctx, c.uow.Reads(), actor.ID, params.LotID); err != nil {
		return uuid.Nil, err
	}

	spaceSnap, err := c.uow.Reads().SpaceByID(ctx, params.SpaceID)
	if err != nil {
		return uuid.Nil, markNotFound(err, errs.ErrSpaceNotFound)
	}
	if spaceSnap.LotID != params.LotID {
		return uuid.Nil, errs.ErrSpaceNotFound
	}

	if _, err := rate.NewVehicleType(params.VehicleType); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		open, err := tx.Reads().OpenOccupationBySpace(ctx, params.SpaceID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if open != nil {
			return errs.ErrSpaceOccupied
		}
		usage, err := tx.Reads().SpaceUsage(ctx, params.SpaceID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if usage.HasActiveSubscription {
			return errs.ErrSpaceSubscribed
		}

		id, err = tx.Occupations().Create(ctx, params.SpaceID, params.LotID, params.Plate, params.VehicleType, c.clock.Now())
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

// RegisterExit closes the stay, prices it against the lot's hourly rate for
// the vehicle type and records the settling payment in the same transaction.
func (c *occupationCommandsImpl) RegisterExit(ctx context.Context, actor shared.Actor, occupationID uuid.UUID) (*RegisterExitResult, error) {
	occ, err := c.findOccupation(ctx, occupationID)
	if err != nil {
		return nil, err
	}
	if occ.Exit != nil {
		return nil, errs.ErrOccupationClosed
	}

	openShift, err := requireOpenShift(ctx, c.uow.Reads(), actor.ID, occ.LotID)
	if err != nil {
		return nil, err
	}

	spaceSnap, err := c.uow.Reads().SpaceByID(ctx, occ.SpaceID)
	if err != nil {
		return nil, markNotFound(err, errs.ErrSpaceNotFound)
	}

	rateSnap, err := c.uow.Reads().RateByKey(ctx, occ.LotID, spaceSnap.TypeID, rate.ModeHourly.String(), occ.VehicleType)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if rateSnap == nil {
		return nil, errs.ErrRateNotFound
	}

	exit := c.clock.Now()
	minutes, amount := priceStay(occ.Entry, exit, rateSnap.Price)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Occupations().CloseOut(ctx, occupationID, exit); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		pay, err := payment.New(occ.LotID, openShift.AttendantID, amount, exit, &occupationID, nil)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		if _, err := tx.Payments().Create(ctx, pay); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if c.invalidator != nil {
		c.invalidator.InvalidateReports(ctx, occ.LotID)
	}
	return &RegisterExitResult{OccupationID: occupationID, Amount: amount, Minutes: minutes}, nil
}

// priceStay charges per started hour with a one hour minimum.
func priceStay(entry, exit time.Time, hourlyPrice int64) (minutes, amount int64) {
	d := exit.Sub(entry)
	if d < 0 {
		d = 0
	}
	minutes = int64(d / time.Minute)
	hours := (minutes + 59) / 60
	if hours < 1 {
		hours = 1
	}
	return minutes, hours * hourlyPrice
}

func (c *occupationCommandsImpl) findOccupation(ctx context.Context, id uuid.UUID) (*shared.OccupationSnapshot, error) {
	occ, err := c.uow.Reads().OccupationByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if occ == nil {
		return nil, errs.ErrOccupationNotFound
	}
	return occ, nil
}
