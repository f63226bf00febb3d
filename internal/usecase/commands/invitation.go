package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"playa-admin/internal/domain/user"
	"playa-admin/internal/pkg/clock"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/pkg/password"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

const invitationTTL = 7 * 24 * time.Hour

type InviteAttendantParams struct {
	Email  string
	Name   string
	LotIDs []uuid.UUID
}

type InviteAttendantResult struct {
	UserID uuid.UUID
	Token  uuid.UUID
}

type AcceptInvitationParams struct {
	Token    uuid.UUID
	Password string
}

type InvitationCommands interface {
	InviteAttendant(ctx context.Context, actor shared.Actor, params InviteAttendantParams) (*InviteAttendantResult, error)
	AcceptInvitation(ctx context.Context, params AcceptInvitationParams) error
}

type invitationCommandsImpl struct {
	uow       shared.UnitOfWork
	publisher InvitationPublisher
	baseURL   string
	clock     clock.Clock
	logger    *slog.Logger
}

func NewInvitationCommands(uow shared.UnitOfWork, publisher InvitationPublisher, baseURL string, clk clock.Clock, logger *slog.Logger) InvitationCommands {
	return &invitationCommandsImpl{
		uow:       uow,
		publisher: publisher,
		baseURL:   baseURL,
		clock:     clk,
		logger:    logger,
	}
}

// InviteAttendant creates a deactivated attendant account plus a one-time
// token and queues the invitation mail. If the mail cannot be queued the
// account and token are rolled back so the email address stays free for a
// retry.
func (c *invitationCommandsImpl) InviteAttendant(ctx context.Context, actor shared.Actor, params InviteAttendantParams) (*InviteAttendantResult, error) {
	if !actor.IsOwner() {
		return nil, errs.ErrLotNotOwned
	}

	email, err := user.NewEmail(params.Email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	existing, err := c.uow.Reads().UserByEmail(ctx, email.String())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if existing != nil {
		return nil, errs.ErrDuplicateEmail
	}

	inviter, err := c.uow.Reads().UserByID(ctx, actor.ID)
	if err != nil {
		return nil, markNotFound(err, errs.ErrUserNotFound)
	}

	lotNames := make([]string, 0, len(params.LotIDs))
	for _, lotID := range params.LotIDs {
		if err := requireOwnedLot(ctx, c.uow.Reads(), actor, lotID); err != nil {
			return nil, err
		}
		lotSnap, err := c.uow.Reads().LotByID(ctx, lotID)
		if err != nil {
			return nil, markNotFound(err, errs.ErrLotNotFound)
		}
		lotNames = append(lotNames, lotSnap.Name)
	}

	// the account holds a placeholder hash until the invitee sets a real
	// password on acceptance
	placeholder, err := password.Hash(uuid.NewString())
	if err != nil {
		return nil, errs.Wrap(err, "hash placeholder password")
	}

	invitee := user.NewUser(email, params.Name, placeholder, user.RoleAttendant, false)
	token := uuid.New()

	var userID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		userID, err = tx.Users().Create(ctx, invitee)
		if err != nil {
			return markDuplicate(err, errs.ErrDuplicateEmail)
		}
		inv := shared.InvitationSnapshot{
			Token:     token,
			Email:     email.String(),
			InviterID: actor.ID,
			UserID:    userID,
			LotIDs:    params.LotIDs,
			ExpiresAt: c.clock.Now().Add(invitationTTL),
		}
		if err := tx.Invitations().Create(ctx, inv); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	msg := InvitationMessage{
		Recipient:   email.String(),
		InviterName: inviter.Name,
		LotNames:    lotNames,
		TokenURL:    fmt.Sprintf("%s/invitations/%s", c.baseURL, token),
		Token:       token,
	}
	if err := c.publisher.PublishInvitation(ctx, msg); err != nil {
		c.compensate(ctx, userID, token)
		return nil, errs.Wrap(err, "queue invitation mail")
	}

	return &InviteAttendantResult{UserID: userID, Token: token}, nil
}

// compensate undoes the account created for an invitation whose mail could
// not be queued. Failure here leaves an orphaned inactive account, which is
// harmless but worth a log line.
func (c *invitationCommandsImpl) compensate(ctx context.Context, userID, token uuid.UUID) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().Delete(ctx, userID)
	})
	if err != nil {
		c.logger.Error("invitation cleanup failed",
			slog.String("user_id", userID.String()),
			slog.String("token", token.String()),
			slog.String("error", err.Error()),
		)
	}
}

// AcceptInvitation sets the invitee's password and activates the account.
func (c *invitationCommandsImpl) AcceptInvitation(ctx context.Context, params AcceptInvitationParams) error {
	inv, err := c.uow.Reads().InvitationByToken(ctx, params.Token)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if inv == nil || inv.Accepted || c.clock.Now().After(inv.ExpiresAt) {
		return errs.ErrInvitationNotFound
	}

	hash, err := password.Hash(params.Password)
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Users().Activate(ctx, inv.UserID, hash); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Invitations().MarkAccepted(ctx, params.Token, c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}
