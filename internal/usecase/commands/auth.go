package commands

import (
	"context"

	"playa-admin/internal/domain/user"
	"playa-admin/internal/pkg/clock"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/pkg/jwt"
	"playa-admin/internal/pkg/password"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type LoginResult struct {
	Token  string
	UserID uuid.UUID
	Name   string
	Email  string
	Role   string
}

type MeResult struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Role   string
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
	// Refresh re-issues a token for an already-authenticated user after
	// re-checking the account is still active.
	Refresh(ctx context.Context, userID uuid.UUID) (*LoginResult, error)
	Me(ctx context.Context, userID uuid.UUID) (*MeResult, error)
}

type authCommandsImpl struct {
	uow   shared.UnitOfWork
	jwt   *jwt.Service
	clock clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{uow: uow, jwt: jwtService, clock: clk}
}

// Login verifies credentials and issues a signed token. A wrong email, a
// wrong password and a deactivated account are indistinguishable to the
// caller.
func (c *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	snap, err := c.uow.Reads().UserByEmail(ctx, email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}
	if snap == nil || !snap.IsActive {
		return nil, errs.ErrInvalidCredentials
	}
	if err := password.Compare(snap.PasswordHash, plainPassword); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	role, err := user.NewRole(snap.Role)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	token, err := c.jwt.GenerateToken(snap.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "generate token")
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, snap.ID, c.clock.Now())
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &LoginResult{
		Token:  token,
		UserID: snap.ID,
		Name:   snap.Name,
		Email:  snap.Email,
		Role:   snap.Role,
	}, nil
}

func (c *authCommandsImpl) Refresh(ctx context.Context, userID uuid.UUID) (*LoginResult, error) {
	snap, err := c.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(snap.Role)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	token, err := c.jwt.GenerateToken(snap.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "generate token")
	}

	return &LoginResult{
		Token:  token,
		UserID: snap.ID,
		Name:   snap.Name,
		Email:  snap.Email,
		Role:   snap.Role,
	}, nil
}

func (c *authCommandsImpl) Me(ctx context.Context, userID uuid.UUID) (*MeResult, error) {
	snap, err := c.activeUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &MeResult{
		UserID: snap.ID,
		Name:   snap.Name,
		Email:  snap.Email,
		Role:   snap.Role,
	}, nil
}

func (c *authCommandsImpl) activeUser(ctx context.Context, userID uuid.UUID) (*shared.UserSnapshot, error) {
	snap, err := c.uow.Reads().UserByID(ctx, userID)
	if err != nil {
		return nil, markNotFound(err, errs.ErrUserNotFound)
	}
	if !snap.IsActive {
		return nil, errs.ErrUserNotFound
	}
	return snap, nil
}
