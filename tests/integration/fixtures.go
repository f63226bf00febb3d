//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Row-level seed helpers. They insert directly so tests can arrange state
// without going through the command layer under test.

func insertUser(t *testing.T, pool *pgxpool.Pool, role string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name, password_hash, role) VALUES ($1, $2, $3, 'x', $4)`,
		id, id.String()+"@test.local", "Usuario "+id.String()[:8], role,
	)
	require.NoError(t, err)
	return id
}

func insertLot(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO lots (id, owner_id, name, address, hours, state) VALUES ($1, $2, $3, 'Av. Test 100', 'L-D 0-24', 'ACTIVE')`,
		id, ownerID, name,
	)
	require.NoError(t, err)
	return id
}

func insertSpaceType(t *testing.T, pool *pgxpool.Pool, lotID uuid.UUID) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO space_types (id, lot_id, name) VALUES ($1, $2, 'Cubierta')`,
		id, lotID,
	)
	require.NoError(t, err)
	return id
}

func insertSpace(t *testing.T, pool *pgxpool.Pool, lotID, typeID uuid.UUID, label string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO spaces (id, lot_id, type_id, label, state) VALUES ($1, $2, $3, $4, 'ACTIVE')`,
		id, lotID, typeID, label,
	)
	require.NoError(t, err)
	return id
}

func insertSubscriber(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO subscribers (id, name, document, phone) VALUES ($1, 'Juan Pérez', '30111222', '+54 9 11 5555-0000')`,
		id,
	)
	require.NoError(t, err)
	return id
}

func insertSubscription(t *testing.T, pool *pgxpool.Pool, lotID, spaceID, subscriberID uuid.UUID, state string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO subscriptions (id, lot_id, space_id, subscriber_id, monthly_amount, start_date, state)
		 VALUES ($1, $2, $3, $4, 30000, now(), $5)`,
		id, lotID, spaceID, subscriberID, state,
	)
	require.NoError(t, err)
	return id
}

func insertBill(t *testing.T, pool *pgxpool.Pool, subscriptionID uuid.UUID, amount int64, status string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO bills (id, subscription_id, issued_at, amount, status) VALUES ($1, $2, now(), $3, $4)`,
		id, subscriptionID, amount, status,
	)
	require.NoError(t, err)
	return id
}

func insertPayment(t *testing.T, pool *pgxpool.Pool, lotID, attendantID uuid.UUID, amount int64, paidAt time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO payments (id, lot_id, attendant_id, amount, paid_at) VALUES ($1, $2, $3, $4, $5)`,
		id, lotID, attendantID, amount, paidAt,
	)
	require.NoError(t, err)
	return id
}

func insertInvitation(t *testing.T, pool *pgxpool.Pool, inviterID, userID uuid.UUID, lotIDs []uuid.UUID, accepted bool) {
	t.Helper()
	var acceptedAt *time.Time
	if accepted {
		now := time.Now().UTC()
		acceptedAt = &now
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO invitations (token, email, inviter_id, user_id, lot_ids, expires_at, accepted_at)
		 VALUES ($1, $2, $3, $4, $5, now() + interval '7 days', $6)`,
		uuid.New(), userID.String()+"@test.local", inviterID, userID, lotIDs, acceptedAt,
	)
	require.NoError(t, err)
}
