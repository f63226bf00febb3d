package request

import (
	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type InviteAttendantRequest struct {
	Email  string      `json:"email" binding:"required,email"`
	Name   string      `json:"name" binding:"required,max=120"`
	LotIDs []uuid.UUID `json:"lot_ids" binding:"required,min=1"`
}

type AcceptInvitationRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}
