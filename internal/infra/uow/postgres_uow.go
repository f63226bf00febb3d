package uow

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"time"

	"playa-admin/internal/infra"
	"playa-admin/internal/infra/repository"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/pkg/pgconv"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) Reads() shared.CommandReads {
	return &commandReads{db: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeSerializationFailure || pgErr.Code == pgErrCodeDeadlockDetected
	}
	return false
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	v := int64(buf[0]) | int64(buf[1])<<8 | int64(buf[2])<<16 | int64(buf[3])<<24 |
		int64(buf[4])<<32 | int64(buf[5])<<40 | int64(buf[6])<<48 | int64(buf[7]&0x7f)<<56
	return v % n
}

type pgTx struct {
	dbtx infra.DBTX

	lotRepo          shared.LotRepository
	spaceRepo        shared.SpaceRepository
	spaceTypeRepo    shared.SpaceTypeRepository
	rateRepo         shared.RateRepository
	subscriberRepo   shared.SubscriberRepository
	subscriptionRepo shared.SubscriptionRepository
	billRepo         shared.BillRepository
	paymentRepo      shared.PaymentRepository
	shiftRepo        shared.ShiftRepository
	occupationRepo   shared.OccupationRepository
	userRepo         shared.UserRepository
	invitationRepo   shared.InvitationRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) Lots() shared.LotRepository {
	if t.lotRepo == nil {
		t.lotRepo = repository.NewLotRepository(t.dbtx)
	}
	return t.lotRepo
}

func (t *pgTx) Spaces() shared.SpaceRepository {
	if t.spaceRepo == nil {
		t.spaceRepo = repository.NewSpaceRepository(t.dbtx)
	}
	return t.spaceRepo
}

func (t *pgTx) SpaceTypes() shared.SpaceTypeRepository {
	if t.spaceTypeRepo == nil {
		t.spaceTypeRepo = repository.NewSpaceTypeRepository(t.dbtx)
	}
	return t.spaceTypeRepo
}

func (t *pgTx) Rates() shared.RateRepository {
	if t.rateRepo == nil {
		t.rateRepo = repository.NewRateRepository(t.dbtx)
	}
	return t.rateRepo
}

func (t *pgTx) Subscribers() shared.SubscriberRepository {
	if t.subscriberRepo == nil {
		t.subscriberRepo = repository.NewSubscriberRepository(t.dbtx)
	}
	return t.subscriberRepo
}

func (t *pgTx) Subscriptions() shared.SubscriptionRepository {
	if t.subscriptionRepo == nil {
		t.subscriptionRepo = repository.NewSubscriptionRepository(t.dbtx)
	}
	return t.subscriptionRepo
}

func (t *pgTx) Bills() shared.BillRepository {
	if t.billRepo == nil {
		t.billRepo = repository.NewBillRepository(t.dbtx)
	}
	return t.billRepo
}

func (t *pgTx) Payments() shared.PaymentRepository {
	if t.paymentRepo == nil {
		t.paymentRepo = repository.NewPaymentRepository(t.dbtx)
	}
	return t.paymentRepo
}

func (t *pgTx) Shifts() shared.ShiftRepository {
	if t.shiftRepo == nil {
		t.shiftRepo = repository.NewShiftRepository(t.dbtx)
	}
	return t.shiftRepo
}

func (t *pgTx) Occupations() shared.OccupationRepository {
	if t.occupationRepo == nil {
		t.occupationRepo = repository.NewOccupationRepository(t.dbtx)
	}
	return t.occupationRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.dbtx)
	}
	return t.userRepo
}

func (t *pgTx) Invitations() shared.InvitationRepository {
	if t.invitationRepo == nil {
		t.invitationRepo = repository.NewInvitationRepository(t.dbtx)
	}
	return t.invitationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{db: t.dbtx}
	}
	return t.commandReads
}

type commandReads struct {
	db infra.DBTX
}

func (r *commandReads) LotByID(ctx context.Context, id uuid.UUID) (*shared.LotSnapshot, error) {
	snap := &shared.LotSnapshot{}
	err := r.db.QueryRow(ctx,
		`SELECT id, owner_id, name, address, hours, state FROM lots WHERE id = $1`, id,
	).Scan(&snap.ID, &snap.OwnerID, &snap.Name, &snap.Address, &snap.Hours, &snap.State)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("lot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read lot", err)
	}
	return snap, nil
}

func (r *commandReads) SpaceByID(ctx context.Context, id uuid.UUID) (*shared.SpaceSnapshot, error) {
	snap := &shared.SpaceSnapshot{}
	err := r.db.QueryRow(ctx,
		`SELECT id, lot_id, type_id, label, state FROM spaces WHERE id = $1`, id,
	).Scan(&snap.ID, &snap.LotID, &snap.TypeID, &snap.Label, &snap.State)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("space not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read space", err)
	}
	return snap, nil
}

func (r *commandReads) SpaceUsage(ctx context.Context, spaceID uuid.UUID) (shared.SpaceUsage, error) {
	const query = `
		SELECT
			EXISTS (SELECT 1 FROM occupations WHERE space_id = $1 AND exit_at IS NULL),
			EXISTS (SELECT 1 FROM subscriptions WHERE space_id = $1 AND state = 'ACTIVO')`

	var usage shared.SpaceUsage
	err := r.db.QueryRow(ctx, query, spaceID).Scan(&usage.HasOpenOccupation, &usage.HasActiveSubscription)
	if err != nil {
		return shared.SpaceUsage{}, infra.WrapRepoErr("failed to read space usage", err)
	}
	return usage, nil
}

func (r *commandReads) SpaceTypeByID(ctx context.Context, id uuid.UUID) (*shared.SpaceTypeSnapshot, error) {
	snap := &shared.SpaceTypeSnapshot{}
	var removedAt pgtype.Timestamptz
	err := r.db.QueryRow(ctx,
		`SELECT id, lot_id, name, description, characteristics, removed_at FROM space_types WHERE id = $1`, id,
	).Scan(&snap.ID, &snap.LotID, &snap.Name, &snap.Description, &snap.Characteristics, &removedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("space type not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read space type", err)
	}
	snap.RemovedAt = pgconv.TimePtrFromPgtype(removedAt)
	return snap, nil
}

func (r *commandReads) SpaceTypeReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `
		SELECT
			EXISTS (SELECT 1 FROM spaces WHERE type_id = $1)
			OR EXISTS (SELECT 1 FROM rates WHERE space_type_id = $1)`

	var referenced bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&referenced); err != nil {
		return false, infra.WrapRepoErr("failed to check space type references", err)
	}
	return referenced, nil
}

func (r *commandReads) RateByKey(ctx context.Context, lotID, spaceTypeID uuid.UUID, mode, vehicleType string) (*shared.RateSnapshot, error) {
	snap := &shared.RateSnapshot{}
	err := r.db.QueryRow(ctx,
		`SELECT id, lot_id, space_type_id, mode, vehicle_type, price
		 FROM rates
		 WHERE lot_id = $1 AND space_type_id = $2 AND mode = $3 AND vehicle_type = $4`,
		lotID, spaceTypeID, mode, vehicleType,
	).Scan(&snap.ID, &snap.LotID, &snap.SpaceTypeID, &snap.Mode, &snap.VehicleType, &snap.Price)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to read rate", err)
	}
	return snap, nil
}

func (r *commandReads) OpenShift(ctx context.Context, attendantID uuid.UUID) (*shared.ShiftSnapshot, error) {
	snap := &shared.ShiftSnapshot{}
	var (
		start pgtype.Timestamptz
		end   pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, lot_id, attendant_id, start_at, end_at, opening_cash
		 FROM shifts WHERE attendant_id = $1 AND end_at IS NULL`,
		attendantID,
	).Scan(&snap.ID, &snap.LotID, &snap.AttendantID, &start, &end, &snap.OpeningCash)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to read open shift", err)
	}
	snap.Start = pgconv.TimeFromPgtype(start)
	snap.End = pgconv.TimePtrFromPgtype(end)
	return snap, nil
}

func (r *commandReads) SubscriptionByID(ctx context.Context, id uuid.UUID) (*shared.SubscriptionSnapshot, error) {
	snap := &shared.SubscriptionSnapshot{}
	var (
		startDate pgtype.Timestamptz
		endDate   pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, lot_id, space_id, subscriber_id, monthly_amount, start_date, end_date, state
		 FROM subscriptions WHERE id = $1`,
		id,
	).Scan(&snap.ID, &snap.LotID, &snap.SpaceID, &snap.SubscriberID, &snap.MonthlyAmount, &startDate, &endDate, &snap.State)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("subscription not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read subscription", err)
	}
	snap.StartDate = pgconv.TimeFromPgtype(startDate)
	snap.EndDate = pgconv.TimePtrFromPgtype(endDate)

	rows, err := r.db.Query(ctx,
		`SELECT plate, vehicle_type FROM subscription_vehicles WHERE subscription_id = $1 ORDER BY plate`, id,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read subscription vehicles", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v shared.VehicleSnapshot
		if err := rows.Scan(&v.Plate, &v.VehicleType); err != nil {
			return nil, infra.WrapRepoErr("failed to scan vehicle row", err)
		}
		snap.Vehicles = append(snap.Vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate vehicle rows", err)
	}
	return snap, nil
}

func (r *commandReads) UnpaidBillCount(ctx context.Context, subscriptionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM bills WHERE subscription_id = $1 AND status = 'PENDIENTE'`,
		subscriptionID,
	).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count unpaid bills", err)
	}
	return count, nil
}

func (r *commandReads) BillByID(ctx context.Context, id uuid.UUID) (*shared.BillSnapshot, error) {
	snap := &shared.BillSnapshot{}
	var (
		issuedAt pgtype.Timestamptz
		paidAt   pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, subscription_id, issued_at, amount, status, paid_at FROM bills WHERE id = $1`,
		id,
	).Scan(&snap.ID, &snap.SubscriptionID, &issuedAt, &snap.Amount, &snap.Status, &paidAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("bill not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read bill", err)
	}
	snap.IssuedAt = pgconv.TimeFromPgtype(issuedAt)
	snap.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
	return snap, nil
}

func (r *commandReads) OpenOccupationBySpace(ctx context.Context, spaceID uuid.UUID) (*shared.OccupationSnapshot, error) {
	return r.occupation(ctx, `WHERE space_id = $1 AND exit_at IS NULL`, spaceID)
}

func (r *commandReads) OccupationByID(ctx context.Context, id uuid.UUID) (*shared.OccupationSnapshot, error) {
	return r.occupation(ctx, `WHERE id = $1`, id)
}

func (r *commandReads) occupation(ctx context.Context, where string, arg any) (*shared.OccupationSnapshot, error) {
	snap := &shared.OccupationSnapshot{}
	var (
		entry pgtype.Timestamptz
		exit  pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, space_id, lot_id, plate, vehicle_type, entry_at, exit_at FROM occupations `+where,
		arg,
	).Scan(&snap.ID, &snap.SpaceID, &snap.LotID, &snap.Plate, &snap.VehicleType, &entry, &exit)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to read occupation", err)
	}
	snap.Entry = pgconv.TimeFromPgtype(entry)
	snap.Exit = pgconv.TimePtrFromPgtype(exit)
	return snap, nil
}

func (r *commandReads) UserByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	snap, err := r.user(ctx, `WHERE email = $1`, email)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *commandReads) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	snap, err := r.user(ctx, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return snap, nil
}

func (r *commandReads) user(ctx context.Context, where string, arg any) (*shared.UserSnapshot, error) {
	snap := &shared.UserSnapshot{}
	err := r.db.QueryRow(ctx,
		`SELECT id, email, name, password_hash, role, is_active FROM users `+where,
		arg,
	).Scan(&snap.ID, &snap.Email, &snap.Name, &snap.PasswordHash, &snap.Role, &snap.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to read user", err)
	}
	return snap, nil
}

func (r *commandReads) InvitationByToken(ctx context.Context, token uuid.UUID) (*shared.InvitationSnapshot, error) {
	snap := &shared.InvitationSnapshot{}
	var (
		expiresAt  pgtype.Timestamptz
		acceptedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx,
		`SELECT token, email, inviter_id, user_id, lot_ids, expires_at, accepted_at
		 FROM invitations WHERE token = $1`,
		token,
	).Scan(&snap.Token, &snap.Email, &snap.InviterID, &snap.UserID, &snap.LotIDs, &expiresAt, &acceptedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to read invitation", err)
	}
	snap.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)
	snap.Accepted = acceptedAt.Valid
	return snap, nil
}
