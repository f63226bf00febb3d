package commands

import (
	"context"

	"playa-admin/internal/domain/lot"
	"playa-admin/internal/domain/shift"
	"playa-admin/internal/pkg/clock"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type OpenShiftParams struct {
	LotID       uuid.UUID
	OpeningCash int64
}

type CloseShiftParams struct {
	ClosingCash int64
}

type ShiftCommands interface {
	Open(ctx context.Context, actor shared.Actor, params OpenShiftParams) (uuid.UUID, error)
	Close(ctx context.Context, actor shared.Actor, params CloseShiftParams) error
}

type shiftCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewShiftCommands(uow shared.UnitOfWork, clk clock.Clock) ShiftCommands {
	return &shiftCommandsImpl{uow: uow, clock: clk}
}

// Open starts a work session for the acting attendant. An attendant holds
// at most one open shift across all lots.
func (c *shiftCommandsImpl) Open(ctx context.Context, actor shared.Actor, params OpenShiftParams) (uuid.UUID, error) {
	lotSnap, err := c.uow.Reads().LotByID(ctx, params.LotID)
	if err != nil {
		return uuid.Nil, markNotFound(err, errs.ErrLotNotFound)
	}
	if lot.State(lotSnap.State) != lot.StateActive {
		return uuid.Nil, errs.ErrLotNotActive
	}

	existing, err := c.uow.Reads().OpenShift(ctx, actor.ID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if existing != nil {
		return uuid.Nil, errs.ErrShiftAlreadyOpen
	}

	s, err := shift.Open(params.LotID, actor.ID, c.clock.Now(), params.OpeningCash)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err = tx.Shifts().Create(ctx, s)
		if err != nil {
			// the partial unique index catches a shift opened concurrently
			return markDuplicate(err, errs.ErrShiftAlreadyOpen)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Close ends the acting attendant's open shift, recording the closing cash
// count.
func (c *shiftCommandsImpl) Close(ctx context.Context, actor shared.Actor, params CloseShiftParams) error {
	snap, err := c.uow.Reads().OpenShift(ctx, actor.ID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if snap == nil {
		return errs.ErrNoActiveShift
	}

	s := shift.Reconstruct(
		snap.ID, snap.LotID, snap.AttendantID,
		snap.Start, snap.End, snap.OpeningCash, nil,
		snap.Start, snap.Start,
	)
	end := c.clock.Now()
	if err := s.Close(end, params.ClosingCash); err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Shifts().Close(ctx, snap.ID, end, params.ClosingCash); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}
