//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"playa-admin/internal/domain/shift"
	"playa-admin/internal/infra"
	"playa-admin/internal/infra/readstore"
	"playa-admin/internal/infra/uow"
	"playa-admin/internal/usecase/queries"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// PersistenceSuite runs the storage layer against a real Postgres so the
// schema-level invariants (partial unique indexes, visibility predicates)
// are exercised where they actually live.
type PersistenceSuite struct {
	suite.Suite
	ctx  context.Context
	pool *pgxpool.Pool
	uow  shared.UnitOfWork
}

func (s *PersistenceSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pool = setupDatabase(s.T())
	s.uow = uow.NewPostgresUoW(s.pool)
}

func TestPersistenceSuite(t *testing.T) {
	suite.Run(t, new(PersistenceSuite))
}

func (s *PersistenceSuite) createShift(lotID, attendantID uuid.UUID, openingCash int64) error {
	sh, err := shift.Open(lotID, attendantID, time.Now().UTC(), openingCash)
	s.Require().NoError(err)
	return s.uow.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Shifts().Create(ctx, sh)
		return err
	})
}

func (s *PersistenceSuite) TestOneOpenShiftPerAttendant() {
	owner := insertUser(s.T(), s.pool, "OWNER")
	attendant := insertUser(s.T(), s.pool, "ATTENDANT")
	lotID := insertLot(s.T(), s.pool, owner, "Playa Turnos")

	s.Require().NoError(s.createShift(lotID, attendant, 1000))

	err := s.createShift(lotID, attendant, 500)
	s.Require().Error(err)
	s.True(infra.IsKind(err, infra.KindDuplicateKey))
}

func (s *PersistenceSuite) TestOneOpenOccupationPerSpace() {
	owner := insertUser(s.T(), s.pool, "OWNER")
	lotID := insertLot(s.T(), s.pool, owner, "Playa Ingresos")
	typeID := insertSpaceType(s.T(), s.pool, lotID)
	spaceID := insertSpace(s.T(), s.pool, lotID, typeID, "A-01")

	enter := func(plate string) error {
		return s.uow.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Occupations().Create(ctx, spaceID, lotID, plate, "AUTO", time.Now().UTC())
			return err
		})
	}

	s.Require().NoError(enter("AB123CD"))

	err := enter("XY987ZW")
	s.Require().Error(err)
	s.True(infra.IsKind(err, infra.KindDuplicateKey))
}

func (s *PersistenceSuite) TestOneActiveSubscriptionPerSpace() {
	owner := insertUser(s.T(), s.pool, "OWNER")
	lotID := insertLot(s.T(), s.pool, owner, "Playa Abonos")
	typeID := insertSpaceType(s.T(), s.pool, lotID)
	spaceID := insertSpace(s.T(), s.pool, lotID, typeID, "B-01")
	subscriber := insertSubscriber(s.T(), s.pool)

	insertSubscription(s.T(), s.pool, lotID, spaceID, subscriber, "ACTIVO")

	_, err := s.pool.Exec(s.ctx,
		`INSERT INTO subscriptions (id, lot_id, space_id, subscriber_id, monthly_amount, start_date, state)
		 VALUES ($1, $2, $3, $4, 25000, now(), 'ACTIVO')`,
		uuid.New(), lotID, spaceID, subscriber,
	)
	s.Require().Error(err)

	// A finished subscription on the same space is allowed.
	insertSubscription(s.T(), s.pool, lotID, spaceID, insertSubscriber(s.T(), s.pool), "FINALIZADO")
}

func (s *PersistenceSuite) TestWithinRollsBackOnError() {
	owner := insertUser(s.T(), s.pool, "OWNER")
	lotID := insertLot(s.T(), s.pool, owner, "Playa Rollback")
	typeID := insertSpaceType(s.T(), s.pool, lotID)
	spaceID := insertSpace(s.T(), s.pool, lotID, typeID, "R-01")
	boom := errors.New("boom")

	err := s.uow.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Occupations().Create(ctx, spaceID, lotID, "ZZ000ZZ", "AUTO", time.Now().UTC()); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	var count int
	s.Require().NoError(s.pool.QueryRow(s.ctx,
		`SELECT count(*) FROM occupations WHERE plate = 'ZZ000ZZ'`).Scan(&count))
	s.Equal(0, count)
}

func (s *PersistenceSuite) TestMarkPaidTouchesOnlyPendingBills() {
	owner := insertUser(s.T(), s.pool, "OWNER")
	lotID := insertLot(s.T(), s.pool, owner, "Playa Boletas")
	typeID := insertSpaceType(s.T(), s.pool, lotID)
	spaceID := insertSpace(s.T(), s.pool, lotID, typeID, "C-01")
	subID := insertSubscription(s.T(), s.pool, lotID, spaceID, insertSubscriber(s.T(), s.pool), "ACTIVO")
	billID := insertBill(s.T(), s.pool, subID, 30000, "PENDIENTE")

	markPaid := func() error {
		return s.uow.Within(s.ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Bills().MarkPaid(ctx, billID, time.Now().UTC())
		})
	}

	s.Require().NoError(markPaid())

	var status string
	s.Require().NoError(s.pool.QueryRow(s.ctx,
		`SELECT status FROM bills WHERE id = $1`, billID).Scan(&status))
	s.Equal("PAGADA", status)

	// Paying the same bill again hits zero PENDIENTE rows.
	err := markPaid()
	s.Require().Error(err)
	s.True(infra.IsKind(err, infra.KindNotFound))
}

func (s *PersistenceSuite) TestLotVisibility() {
	ownerA := insertUser(s.T(), s.pool, "OWNER")
	ownerB := insertUser(s.T(), s.pool, "OWNER")
	lotA := insertLot(s.T(), s.pool, ownerA, "Playa de A")

	store := readstore.NewLotReadStore(s.pool)

	actorA := shared.Actor{ID: ownerA, Role: "OWNER"}
	actorB := shared.Actor{ID: ownerB, Role: "OWNER"}

	s.Run("the owner sees their own lot", func() {
		s.NoError(store.VisibleLot(s.ctx, actorA, lotA))
	})

	s.Run("another owner's lot reads as not found", func() {
		err := store.VisibleLot(s.ctx, actorB, lotA)
		s.Require().Error(err)
		s.True(infra.IsKind(err, infra.KindNotFound))
	})

	s.Run("an accepted invitation grants visibility", func() {
		attendant := insertUser(s.T(), s.pool, "ATTENDANT")
		insertInvitation(s.T(), s.pool, ownerA, attendant, []uuid.UUID{lotA}, true)

		actor := shared.Actor{ID: attendant, Role: "ATTENDANT"}
		s.NoError(store.VisibleLot(s.ctx, actor, lotA))

		views, err := store.FindVisible(s.ctx, attendant)
		s.Require().NoError(err)
		s.Require().Len(views, 1)
		s.Equal(lotA, views[0].ID)
	})

	s.Run("a pending invitation grants nothing", func() {
		attendant := insertUser(s.T(), s.pool, "ATTENDANT")
		insertInvitation(s.T(), s.pool, ownerA, attendant, []uuid.UUID{lotA}, false)

		actor := shared.Actor{ID: attendant, Role: "ATTENDANT"}
		err := store.VisibleLot(s.ctx, actor, lotA)
		s.Require().Error(err)
		s.True(infra.IsKind(err, infra.KindNotFound))
	})
}

func (s *PersistenceSuite) TestRevenueRowsStayWithinVisibleLots() {
	ownerA := insertUser(s.T(), s.pool, "OWNER")
	ownerB := insertUser(s.T(), s.pool, "OWNER")
	lotA := insertLot(s.T(), s.pool, ownerA, "Playa Caja A")
	lotB := insertLot(s.T(), s.pool, ownerB, "Playa Caja B")

	paidAt := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	insertPayment(s.T(), s.pool, lotA, ownerA, 1500, paidAt)
	insertPayment(s.T(), s.pool, lotB, ownerB, 12345, paidAt)

	store := readstore.NewPaymentReadStore(s.pool)
	filter := queries.RevenueFilter{
		From: paidAt.Add(-time.Hour),
		To:   paidAt.Add(time.Hour),
	}

	records, err := store.FindByFilter(s.ctx, shared.Actor{ID: ownerA, Role: "OWNER"}, filter)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(lotA, records[0].LotID)
	s.Equal(int64(1500), records[0].Amount)

	// Filtering by the other owner's lot yields nothing rather than their rows.
	foreign := filter
	foreign.LotID = &lotB
	records, err = store.FindByFilter(s.ctx, shared.Actor{ID: ownerA, Role: "OWNER"}, foreign)
	s.Require().NoError(err)
	assert.Empty(s.T(), records)
}
