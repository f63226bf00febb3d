package commands

import (
	"context"
	"time"

	"playa-admin/internal/domain/payment"
	"playa-admin/internal/domain/rate"
	"playa-admin/internal/domain/subscription"
	"playa-admin/internal/pkg/clock"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type VehicleParams struct {
	Plate       string
	VehicleType string
}

type CreateSubscriptionParams struct {
	LotID          uuid.UUID
	SpaceID        uuid.UUID
	SubscriberName string
	Document       string
	Phone          string
	Vehicles       []VehicleParams
	StartDate      *time.Time
}

type CreateSubscriptionResult struct {
	SubscriptionID uuid.UUID
	MonthlyAmount  int64
	FirstCharge    int64
}

type EditSubscriptionParams struct {
	SpaceID  *uuid.UUID
	Vehicles []VehicleParams
}

// EditSubscriptionResult reports the recomputed monthly amount when the
// vehicle or space change touched the rate table, so the caller can surface
// it before the next billing cycle.
type EditSubscriptionResult struct {
	MonthlyAmount int64
	RateChanged   bool
}

type SubscriptionCommands interface {
	Create(ctx context.Context, actor shared.Actor, params CreateSubscriptionParams) (*CreateSubscriptionResult, error)
	Edit(ctx context.Context, actor shared.Actor, id uuid.UUID, params EditSubscriptionParams) (*EditSubscriptionResult, error)
	Finalize(ctx context.Context, actor shared.Actor, id uuid.UUID, force bool) error
	PayBill(ctx context.Context, actor shared.Actor, billID uuid.UUID) error
}

type subscriptionCommandsImpl struct {
	uow         shared.UnitOfWork
	invalidator ReportInvalidator
	clock       clock.Clock
}

func NewSubscriptionCommands(uow shared.UnitOfWork, invalidator ReportInvalidator, clk clock.Clock) SubscriptionCommands {
	return &subscriptionCommandsImpl{uow: uow, invalidator: invalidator, clock: clk}
}

// Create validates the acting attendant's shift, prices the subscription
// from the lot's rate table and persists subscriber, subscription, vehicles
// and the prorated first bill+payment in one transaction.
func (c *subscriptionCommandsImpl) Create(ctx context.Context, actor shared.Actor, params CreateSubscriptionParams) (*CreateSubscriptionResult, error) {
	openShift, err := requireOpenShift(ctx, c.uow.Reads(), actor.ID, params.LotID)
	if err != nil {
		return nil, err
	}

	spaceSnap, err := c.uow.Reads().SpaceByID(ctx, params.SpaceID)
	if err != nil {
		return nil, markNotFound(err, errs.ErrSpaceNotFound)
	}
	if spaceSnap.LotID != params.LotID {
		return nil, errs.ErrSpaceNotFound
	}

	vehicles, err := buildVehicles(params.Vehicles)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	monthly, err := c.monthlyRate(ctx, params.LotID, spaceSnap.TypeID, vehicles[0].VehicleType)
	if err != nil {
		return nil, err
	}

	start := c.clock.Now()
	if params.StartDate != nil {
		start = *params.StartDate
	}

	var result CreateSubscriptionResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// occupancy is re-checked inside the transaction; the unique
		// partial index at the storage layer is the final arbiter
		usage, err := tx.Reads().SpaceUsage(ctx, params.SpaceID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if usage.HasOpenOccupation {
			return errs.ErrSpaceOccupied
		}
		if usage.HasActiveSubscription {
			return errs.ErrSpaceSubscribed
		}

		subscriberID, err := tx.Subscribers().Create(ctx, params.SubscriberName, params.Document, params.Phone)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		sub, err := subscription.New(params.LotID, params.SpaceID, subscriberID, monthly, start, vehicles)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		subID, err := tx.Subscriptions().Create(ctx, sub)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		firstCharge := sub.FirstCharge()
		billID, err := tx.Bills().Create(ctx, subID, start, firstCharge, subscription.BillPaid)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		pay, err := payment.New(params.LotID, openShift.AttendantID, firstCharge, c.clock.Now(), nil, &billID)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		if _, err := tx.Payments().Create(ctx, pay); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = CreateSubscriptionResult{
			SubscriptionID: subID,
			MonthlyAmount:  monthly,
			FirstCharge:    firstCharge,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if c.invalidator != nil {
		c.invalidator.InvalidateReports(ctx, params.LotID)
	}
	return &result, nil
}

// Edit changes vehicles and/or reassigns the space. A change to either
// recomputes the monthly amount against the current ABONO rate for the
// (new) space-type/vehicle-type tuple.
func (c *subscriptionCommandsImpl) Edit(ctx context.Context, actor shared.Actor, id uuid.UUID, params EditSubscriptionParams) (*EditSubscriptionResult, error) {
	snap, err := c.uow.Reads().SubscriptionByID(ctx, id)
	if err != nil {
		return nil, markNotFound(err, errs.ErrSubscriptionNotFound)
	}
	if snap.State == subscription.StateFinalized.String() {
		return nil, errs.ErrAlreadyFinalized
	}

	targetSpaceID := snap.SpaceID
	spaceChanged := false
	if params.SpaceID != nil && *params.SpaceID != snap.SpaceID {
		spaceChanged = true
		targetSpaceID = *params.SpaceID
	}

	vehicles := snapshotVehicles(snap.Vehicles)
	vehiclesChanged := false
	if params.Vehicles != nil {
		vehicles, err = buildVehicles(params.Vehicles)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		vehiclesChanged = true
	}

	monthly := snap.MonthlyAmount
	rateChanged := false
	if spaceChanged || vehiclesChanged {
		targetSpace, err := c.uow.Reads().SpaceByID(ctx, targetSpaceID)
		if err != nil {
			return nil, markNotFound(err, errs.ErrSpaceNotFound)
		}
		if targetSpace.LotID != snap.LotID {
			return nil, errs.ErrSpaceNotFound
		}

		monthly, err = c.monthlyRate(ctx, snap.LotID, targetSpace.TypeID, vehicles[0].VehicleType)
		if err != nil {
			return nil, err
		}
		rateChanged = monthly != snap.MonthlyAmount
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if spaceChanged {
			usage, err := tx.Reads().SpaceUsage(ctx, targetSpaceID)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if !usage.IsFree() {
				if usage.HasOpenOccupation {
					return errs.ErrSpaceOccupied
				}
				return errs.ErrSpaceSubscribed
			}
		}

		sub := reconstructSubscription(snap)
		if spaceChanged || rateChanged {
			if err := sub.Reassign(targetSpaceID, monthly); err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
		}
		if vehiclesChanged {
			if err := sub.ReplaceVehicles(vehicles); err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
			if err := tx.Subscriptions().ReplaceVehicles(ctx, id, vehicles); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		if err := tx.Subscriptions().Update(ctx, sub); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &EditSubscriptionResult{MonthlyAmount: monthly, RateChanged: rateChanged}, nil
}

// Finalize is one-directional: the space is released and the subscription
// can never return to ACTIVO. Outstanding unpaid bills block the
// transition unless an owner forces it.
func (c *subscriptionCommandsImpl) Finalize(ctx context.Context, actor shared.Actor, id uuid.UUID, force bool) error {
	snap, err := c.uow.Reads().SubscriptionByID(ctx, id)
	if err != nil {
		return markNotFound(err, errs.ErrSubscriptionNotFound)
	}
	if snap.State == subscription.StateFinalized.String() {
		return errs.ErrAlreadyFinalized
	}

	unpaid, err := c.uow.Reads().UnpaidBillCount(ctx, id)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if unpaid > 0 && !(force && actor.IsOwner()) {
		return errs.ErrUnpaidBills
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sub := reconstructSubscription(snap)
		if err := sub.Finalize(c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrAlreadyFinalized)
		}
		if err := tx.Subscriptions().Update(ctx, sub); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// PayBill settles a pending monthly bill at the register: the bill is
// marked PAGADA and a payment is recorded against the acting attendant's
// open shift in the same transaction.
func (c *subscriptionCommandsImpl) PayBill(ctx context.Context, actor shared.Actor, billID uuid.UUID) error {
	bill, err := c.uow.Reads().BillByID(ctx, billID)
	if err != nil {
		return markNotFound(err, errs.ErrBillNotFound)
	}
	if bill.Status == subscription.BillPaid.String() {
		return errs.ErrBillAlreadyPaid
	}

	snap, err := c.uow.Reads().SubscriptionByID(ctx, bill.SubscriptionID)
	if err != nil {
		return markNotFound(err, errs.ErrSubscriptionNotFound)
	}

	openShift, err := requireOpenShift(ctx, c.uow.Reads(), actor.ID, snap.LotID)
	if err != nil {
		return err
	}

	paidAt := c.clock.Now()
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// MarkPaid only touches PENDIENTE rows, so a concurrent payment
		// of the same bill loses here
		if err := tx.Bills().MarkPaid(ctx, billID, paidAt); err != nil {
			return markNotFound(err, errs.ErrBillAlreadyPaid)
		}
		pay, err := payment.New(snap.LotID, openShift.AttendantID, bill.Amount, paidAt, nil, &billID)
		if err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		if _, err := tx.Payments().Create(ctx, pay); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if c.invalidator != nil {
		c.invalidator.InvalidateReports(ctx, snap.LotID)
	}
	return nil
}

// requireOpenShift is the gate on register-facing mutations: the acting
// attendant must have an open shift, and it must be at the target lot.
func requireOpenShift(ctx context.Context, reads shared.CommandReads, attendantID, lotID uuid.UUID) (*shared.ShiftSnapshot, error) {
	openShift, err := reads.OpenShift(ctx, attendantID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if openShift == nil {
		return nil, errs.ErrNoActiveShift
	}
	if openShift.LotID != lotID {
		return nil, errs.ErrShiftWrongLot
	}
	return openShift, nil
}

func (c *subscriptionCommandsImpl) monthlyRate(ctx context.Context, lotID, spaceTypeID uuid.UUID, vehicleType string) (int64, error) {
	rateSnap, err := c.uow.Reads().RateByKey(ctx, lotID, spaceTypeID, rate.ModeSubscription.String(), vehicleType)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if rateSnap == nil {
		return 0, errs.ErrRateNotFound
	}
	return rateSnap.Price, nil
}

func buildVehicles(params []VehicleParams) ([]subscription.Vehicle, error) {
	if len(params) == 0 {
		return nil, subscription.ErrNoVehicles
	}
	out := make([]subscription.Vehicle, len(params))
	for i, p := range params {
		if _, err := rate.NewVehicleType(p.VehicleType); err != nil {
			return nil, err
		}
		v, err := subscription.NewVehicle(p.Plate, p.VehicleType)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func snapshotVehicles(snaps []shared.VehicleSnapshot) []subscription.Vehicle {
	out := make([]subscription.Vehicle, len(snaps))
	for i, s := range snaps {
		out[i] = subscription.Vehicle{Plate: s.Plate, VehicleType: s.VehicleType}
	}
	return out
}

func reconstructSubscription(snap *shared.SubscriptionSnapshot) *subscription.Subscription {
	state := subscription.State(snap.State)
	return subscription.Reconstruct(
		snap.ID, snap.LotID, snap.SpaceID, snap.SubscriberID,
		snap.MonthlyAmount, snap.StartDate, snap.EndDate, state,
		snapshotVehicles(snap.Vehicles),
		snap.StartDate, snap.StartDate,
	)
}
