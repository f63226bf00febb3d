package repository

import (
	"context"
	"time"

	"playa-admin/internal/domain/user"
	"playa-admin/internal/infra"
	"playa-admin/internal/pkg/pgconv"
	"playa-admin/internal/usecase/shared"

	"github.com/google/uuid"
)

type userRepository struct {
	db infra.DBTX
}

func NewUserRepository(db infra.DBTX) shared.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) (uuid.UUID, error) {
	const query = `
		INSERT INTO users (id, email, name, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`

	_, err := r.db.Exec(ctx, query,
		u.ID(), u.Email().String(), u.Name(), u.PasswordHash(), u.Role().String(), u.IsActive(),
	)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to insert user", err)
	}
	return u.ID(), nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrapWriteErr("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *userRepository) Activate(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $2, is_active = TRUE, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return wrapWriteErr("failed to activate user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		return wrapWriteErr("failed to update last login", err)
	}
	return nil
}

type invitationRepository struct {
	db infra.DBTX
}

func NewInvitationRepository(db infra.DBTX) shared.InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, inv shared.InvitationSnapshot) error {
	const query = `
		INSERT INTO invitations (token, email, inviter_id, user_id, lot_ids, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query, inv.Token, inv.Email, inv.InviterID, inv.UserID, inv.LotIDs, inv.ExpiresAt)
	if err != nil {
		return wrapWriteErr("failed to insert invitation", err)
	}
	return nil
}

func (r *invitationRepository) MarkAccepted(ctx context.Context, token uuid.UUID, at time.Time) error {
	const query = `UPDATE invitations SET accepted_at = $2 WHERE token = $1 AND accepted_at IS NULL`

	tag, err := r.db.Exec(ctx, query, token, pgconv.TimeToPgtype(at))
	if err != nil {
		return wrapWriteErr("failed to mark invitation accepted", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("pending invitation not found", nil, infra.KindNotFound)
	}
	return nil
}
