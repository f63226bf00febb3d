//go:build unit

package commands

import (
	"context"
	"testing"
	"time"

	"playa-admin/internal/pkg/clock"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type occupationFixture struct {
	lotID       uuid.UUID
	spaceID     uuid.UUID
	typeID      uuid.UUID
	attendantID uuid.UUID
	reads       *stubReads
}

func newOccupationFixture() *occupationFixture {
	f := &occupationFixture{
		lotID:       uuid.New(),
		spaceID:     uuid.New(),
		typeID:      uuid.New(),
		attendantID: uuid.New(),
	}
	f.reads = &stubReads{
		spaces: map[uuid.UUID]*shared.SpaceSnapshot{
			f.spaceID: {ID: f.spaceID, LotID: f.lotID, TypeID: f.typeID, Label: "B-07", State: "ACTIVE"},
		},
		usage: map[uuid.UUID]shared.SpaceUsage{},
		rates: map[string]*shared.RateSnapshot{
			rateKey(f.lotID, f.typeID, "POR_HORA", "AUTO"): {Price: 2500},
		},
		openShifts: map[uuid.UUID]*shared.ShiftSnapshot{
			f.attendantID: {ID: uuid.New(), LotID: f.lotID, AttendantID: f.attendantID},
		},
		occupations: map[uuid.UUID]*shared.OccupationSnapshot{},
	}
	return f
}

func TestOccupationCommands_RegisterEntry(t *testing.T) {
	now := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

	t.Run("parks a vehicle on a free space", func(t *testing.T) {
		f := newOccupationFixture()
		uow := newStubUow(f.reads)
		cmd := NewOccupationCommands(uow, &stubInvalidator{}, clock.NewMockClock(now))

		id, err := cmd.RegisterEntry(context.Background(), shared.Actor{ID: f.attendantID}, RegisterEntryParams{
			LotID:       f.lotID,
			SpaceID:     f.spaceID,
			Plate:       "AB123CD",
			VehicleType: "AUTO",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		require.Len(t, uow.tx.createdOccupations, 1)
		assert.Equal(t, now, uow.tx.createdOccupations[0].Entry)
	})

	t.Run("rejects a space with an open occupation", func(t *testing.T) {
		f := newOccupationFixture()
		f.reads.occupations[uuid.New()] = &shared.OccupationSnapshot{
			SpaceID: f.spaceID, LotID: f.lotID, Plate: "XY987ZW", VehicleType: "AUTO", Entry: now.Add(-time.Hour),
		}
		cmd := NewOccupationCommands(newStubUow(f.reads), &stubInvalidator{}, clock.NewMockClock(now))

		_, err := cmd.RegisterEntry(context.Background(), shared.Actor{ID: f.attendantID}, RegisterEntryParams{
			LotID:       f.lotID,
			SpaceID:     f.spaceID,
			Plate:       "AB123CD",
			VehicleType: "AUTO",
		})
		assert.ErrorIs(t, err, errs.ErrSpaceOccupied)
	})

	t.Run("rejects a subscribed space", func(t *testing.T) {
		f := newOccupationFixture()
		f.reads.usage[f.spaceID] = shared.SpaceUsage{HasActiveSubscription: true}
		cmd := NewOccupationCommands(newStubUow(f.reads), &stubInvalidator{}, clock.NewMockClock(now))

		_, err := cmd.RegisterEntry(context.Background(), shared.Actor{ID: f.attendantID}, RegisterEntryParams{
			LotID:       f.lotID,
			SpaceID:     f.spaceID,
			Plate:       "AB123CD",
			VehicleType: "AUTO",
		})
		assert.ErrorIs(t, err, errs.ErrSpaceSubscribed)
	})

	t.Run("rejects an unknown vehicle type", func(t *testing.T) {
		f := newOccupationFixture()
		cmd := NewOccupationCommands(newStubUow(f.reads), &stubInvalidator{}, clock.NewMockClock(now))

		_, err := cmd.RegisterEntry(context.Background(), shared.Actor{ID: f.attendantID}, RegisterEntryParams{
			LotID:       f.lotID,
			SpaceID:     f.spaceID,
			Plate:       "AB123CD",
			VehicleType: "BICICLETA",
		})
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}

func TestOccupationCommands_RegisterExit(t *testing.T) {
	entry := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

	openOccupation := func(f *occupationFixture) uuid.UUID {
		occID := uuid.New()
		f.reads.occupations[occID] = &shared.OccupationSnapshot{
			ID:          occID,
			SpaceID:     f.spaceID,
			LotID:       f.lotID,
			Plate:       "AB123CD",
			VehicleType: "AUTO",
			Entry:       entry,
		}
		return occID
	}

	t.Run("prices the stay per started hour and records the payment", func(t *testing.T) {
		f := newOccupationFixture()
		occID := openOccupation(f)
		uow := newStubUow(f.reads)
		invalidator := &stubInvalidator{}
		exit := entry.Add(2*time.Hour + 30*time.Minute)
		cmd := NewOccupationCommands(uow, invalidator, clock.NewMockClock(exit))

		result, err := cmd.RegisterExit(context.Background(), shared.Actor{ID: f.attendantID}, occID)
		require.NoError(t, err)

		assert.Equal(t, int64(150), result.Minutes)
		assert.Equal(t, int64(7500), result.Amount)

		assert.Equal(t, exit, uow.tx.closedOccupations[occID])
		require.Len(t, uow.tx.createdPayments, 1)
		assert.Equal(t, "OCUPACION", uow.tx.createdPayments[0].Kind().String())
		assert.Equal(t, int64(7500), uow.tx.createdPayments[0].Amount())
		assert.Equal(t, []uuid.UUID{f.lotID}, invalidator.lots)
	})

	t.Run("charges a one hour minimum", func(t *testing.T) {
		f := newOccupationFixture()
		occID := openOccupation(f)
		cmd := NewOccupationCommands(newStubUow(f.reads), &stubInvalidator{}, clock.NewMockClock(entry.Add(10*time.Minute)))

		result, err := cmd.RegisterExit(context.Background(), shared.Actor{ID: f.attendantID}, occID)
		require.NoError(t, err)
		assert.Equal(t, int64(2500), result.Amount)
	})

	t.Run("rejects an already closed occupation", func(t *testing.T) {
		f := newOccupationFixture()
		occID := openOccupation(f)
		exit := entry.Add(time.Hour)
		f.reads.occupations[occID].Exit = &exit
		cmd := NewOccupationCommands(newStubUow(f.reads), &stubInvalidator{}, clock.NewMockClock(exit))

		_, err := cmd.RegisterExit(context.Background(), shared.Actor{ID: f.attendantID}, occID)
		assert.ErrorIs(t, err, errs.ErrOccupationClosed)
	})

	t.Run("fails without an hourly rate", func(t *testing.T) {
		f := newOccupationFixture()
		occID := openOccupation(f)
		f.reads.occupations[occID].VehicleType = "CAMIONETA"
		cmd := NewOccupationCommands(newStubUow(f.reads), &stubInvalidator{}, clock.NewMockClock(entry.Add(time.Hour)))

		_, err := cmd.RegisterExit(context.Background(), shared.Actor{ID: f.attendantID}, occID)
		assert.ErrorIs(t, err, errs.ErrRateNotFound)
	})
}
