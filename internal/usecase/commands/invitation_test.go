//go:build unit

package commands

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"playa-admin/internal/pkg/clock"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvitationCommands_InviteAttendant(t *testing.T) {
	now := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)
	owner := shared.Actor{ID: uuid.New(), Role: "OWNER"}
	lotID := uuid.New()

	baseReads := func() *stubReads {
		return &stubReads{
			lots: map[uuid.UUID]*shared.LotSnapshot{
				lotID: {ID: lotID, OwnerID: owner.ID, Name: "Playa Centro", State: "ACTIVE"},
			},
			usersByID: map[uuid.UUID]*shared.UserSnapshot{
				owner.ID: {ID: owner.ID, Name: "Marta", Email: "marta@example.com", Role: "OWNER", IsActive: true},
			},
			usersByEmail: map[string]*shared.UserSnapshot{},
		}
	}

	params := InviteAttendantParams{
		Email:  "nuevo@example.com",
		Name:   "Nuevo Playero",
		LotIDs: []uuid.UUID{lotID},
	}

	t.Run("creates a deactivated account and queues the mail", func(t *testing.T) {
		uow := newStubUow(baseReads())
		publisher := &stubPublisher{}
		cmd := NewInvitationCommands(uow, publisher, "https://playa.example.com", clock.NewMockClock(now), slog.Default())

		result, err := cmd.InviteAttendant(context.Background(), owner, params)
		require.NoError(t, err)

		require.Len(t, uow.tx.createdUsers, 1)
		invitee := uow.tx.createdUsers[0]
		assert.False(t, invitee.IsActive())
		assert.Equal(t, "nuevo@example.com", invitee.Email().String())

		require.Len(t, uow.tx.createdInvitations, 1)
		inv := uow.tx.createdInvitations[0]
		assert.Equal(t, result.Token, inv.Token)
		assert.Equal(t, now.Add(7*24*time.Hour), inv.ExpiresAt)

		require.Len(t, publisher.messages, 1)
		msg := publisher.messages[0]
		assert.Equal(t, "nuevo@example.com", msg.Recipient)
		assert.Equal(t, "Marta", msg.InviterName)
		assert.Equal(t, []string{"Playa Centro"}, msg.LotNames)
		assert.Contains(t, msg.TokenURL, result.Token.String())
	})

	t.Run("rolls back the account when the mail cannot be queued", func(t *testing.T) {
		uow := newStubUow(baseReads())
		publisher := &stubPublisher{err: errors.New("broker down")}
		cmd := NewInvitationCommands(uow, publisher, "https://playa.example.com", clock.NewMockClock(now), slog.Default())

		_, err := cmd.InviteAttendant(context.Background(), owner, params)
		require.Error(t, err)

		require.Len(t, uow.tx.createdUsers, 1)
		assert.Equal(t, []uuid.UUID{uow.tx.createdUsers[0].ID()}, uow.tx.deletedUsers)
	})

	t.Run("failed cleanup is reported, not fatal", func(t *testing.T) {
		uow := newStubUow(baseReads())
		uow.tx.userDeleteErr = errors.New("db down")
		publisher := &stubPublisher{err: errors.New("broker down")}
		cmd := NewInvitationCommands(uow, publisher, "https://playa.example.com", clock.NewMockClock(now), slog.Default())

		_, err := cmd.InviteAttendant(context.Background(), owner, params)
		require.Error(t, err)
		assert.Empty(t, uow.tx.deletedUsers)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		reads := baseReads()
		reads.usersByEmail["nuevo@example.com"] = &shared.UserSnapshot{ID: uuid.New()}
		cmd := NewInvitationCommands(newStubUow(reads), &stubPublisher{}, "https://playa.example.com", clock.NewMockClock(now), slog.Default())

		_, err := cmd.InviteAttendant(context.Background(), owner, params)
		assert.ErrorIs(t, err, errs.ErrDuplicateEmail)
	})

	t.Run("rejects a lot the actor does not own", func(t *testing.T) {
		reads := baseReads()
		reads.lots[lotID].OwnerID = uuid.New()
		cmd := NewInvitationCommands(newStubUow(reads), &stubPublisher{}, "https://playa.example.com", clock.NewMockClock(now), slog.Default())

		_, err := cmd.InviteAttendant(context.Background(), owner, params)
		assert.ErrorIs(t, err, errs.ErrLotNotOwned)
	})

	t.Run("rejects non-owner actors", func(t *testing.T) {
		cmd := NewInvitationCommands(newStubUow(baseReads()), &stubPublisher{}, "https://playa.example.com", clock.NewMockClock(now), slog.Default())

		_, err := cmd.InviteAttendant(context.Background(), shared.Actor{ID: uuid.New(), Role: "ATTENDANT"}, params)
		assert.ErrorIs(t, err, errs.ErrLotNotOwned)
	})
}

func TestInvitationCommands_AcceptInvitation(t *testing.T) {
	now := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)
	token := uuid.New()
	userID := uuid.New()

	pending := func() *stubReads {
		return &stubReads{invitations: map[uuid.UUID]*shared.InvitationSnapshot{
			token: {Token: token, Email: "nuevo@example.com", UserID: userID, ExpiresAt: now.Add(time.Hour)},
		}}
	}

	t.Run("activates the account with the chosen password", func(t *testing.T) {
		uow := newStubUow(pending())
		cmd := NewInvitationCommands(uow, &stubPublisher{}, "https://playa.example.com", clock.NewMockClock(now), slog.Default())

		require.NoError(t, cmd.AcceptInvitation(context.Background(), AcceptInvitationParams{Token: token, Password: "s3creta!"}))

		assert.NotEmpty(t, uow.tx.activatedUsers[userID])
		assert.Equal(t, []uuid.UUID{token}, uow.tx.acceptedInvitations)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		reads := pending()
		reads.invitations[token].ExpiresAt = now.Add(-time.Minute)
		cmd := NewInvitationCommands(newStubUow(reads), &stubPublisher{}, "https://playa.example.com", clock.NewMockClock(now), slog.Default())

		err := cmd.AcceptInvitation(context.Background(), AcceptInvitationParams{Token: token, Password: "s3creta!"})
		assert.ErrorIs(t, err, errs.ErrInvitationNotFound)
	})

	t.Run("rejects an already accepted token", func(t *testing.T) {
		reads := pending()
		reads.invitations[token].Accepted = true
		cmd := NewInvitationCommands(newStubUow(reads), &stubPublisher{}, "https://playa.example.com", clock.NewMockClock(now), slog.Default())

		err := cmd.AcceptInvitation(context.Background(), AcceptInvitationParams{Token: token, Password: "s3creta!"})
		assert.ErrorIs(t, err, errs.ErrInvitationNotFound)
	})

	t.Run("rejects an unknown token", func(t *testing.T) {
		cmd := NewInvitationCommands(newStubUow(&stubReads{}), &stubPublisher{}, "https://playa.example.com", clock.NewMockClock(now), slog.Default())

		err := cmd.AcceptInvitation(context.Background(), AcceptInvitationParams{Token: uuid.New(), Password: "s3creta!"})
		assert.ErrorIs(t, err, errs.ErrInvitationNotFound)
	})
}
