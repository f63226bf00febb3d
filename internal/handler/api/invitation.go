package api

import (
	"net/http"

	reqdto "playa-admin/internal/handler/dto/request"
	resdto "playa-admin/internal/handler/dto/response"
	"playa-admin/internal/handler/httperr"
	"playa-admin/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type InvitationHandler struct {
	cmds commands.InvitationCommands
}

func NewInvitationHandler(cmds commands.InvitationCommands) *InvitationHandler {
	return &InvitationHandler{cmds: cmds}
}

// @Summary Invite attendant
// @Description Creates a deactivated attendant account and mails a one-time invitation.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.InviteAttendantRequest true "Invite attendant request"
// @Success 201 {object} resdto.InvitationCreatedResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /invitations [post]
func (h *InvitationHandler) Invite(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req reqdto.InviteAttendantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Datos inválidos", nil)
		return
	}

	result, err := h.cmds.InviteAttendant(c.Request.Context(), actor, commands.InviteAttendantParams{
		Email:  req.Email,
		Name:   req.Name,
		LotIDs: req.LotIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromInviteResult(result))
}

// @Summary Accept invitation
// @Description Activates the invited account with the chosen password.
// @Tags invitations
// @Accept json
// @Param token path string true "Invitation token"
// @Param request body reqdto.AcceptInvitationRequest true "Accept invitation request"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /invitations/{token}/accept [post]
func (h *InvitationHandler) Accept(c *gin.Context) {
	token, ok := pathID(c, "token")
	if !ok {
		return
	}
	var req reqdto.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Datos inválidos", nil)
		return
	}

	if err := h.cmds.AcceptInvitation(c.Request.Context(), commands.AcceptInvitationParams{
		Token:    token,
		Password: req.Password,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
