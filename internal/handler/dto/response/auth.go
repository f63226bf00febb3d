package response

import (
	"playa-admin/internal/usecase/commands"
)

type LoginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

func FromLoginResult(r *commands.LoginResult) *LoginResponse {
	resp := &LoginResponse{Token: r.Token}
	resp.User.ID = r.UserID.String()
	resp.User.Name = r.Name
	resp.User.Email = r.Email
	resp.User.Role = r.Role
	return resp
}

type MeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func FromMeResult(r *commands.MeResult) *MeResponse {
	return &MeResponse{
		ID:    r.UserID.String(),
		Name:  r.Name,
		Email: r.Email,
		Role:  r.Role,
	}
}

type InvitationCreatedResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

func FromInviteResult(r *commands.InviteAttendantResult) *InvitationCreatedResponse {
	return &InvitationCreatedResponse{
		UserID: r.UserID.String(),
		Token:  r.Token.String(),
	}
}
