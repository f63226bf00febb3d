package api

import (
	"context"
	"net/http"

	reqdto "playa-admin/internal/handler/dto/request"
	resdto "playa-admin/internal/handler/dto/response"
	"playa-admin/internal/handler/httperr"
	"playa-admin/internal/usecase/commands"
	"playa-admin/internal/usecase/queries"
	"playa-admin/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LotHandler struct {
	cmds commands.LotCommands
	q    queries.LotQueries
}

func NewLotHandler(cmds commands.LotCommands, q queries.LotQueries) *LotHandler {
	return &LotHandler{cmds: cmds, q: q}
}

// @Summary Create lot
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateLotRequest true "Create lot request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Router /lots [post]
func (h *LotHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req reqdto.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Datos inválidos", nil)
		return
	}

	id, err := h.cmds.Create(c.Request.Context(), actor, req.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.Created(id))
}

// @Summary List visible lots
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.LotView
// @Router /lots [get]
func (h *LotHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	lots, err := h.q.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lots)
}

// @Summary Get lot
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 200 {object} queries.LotView
// @Failure 404 {object} map[string]string
// @Router /lots/{id} [get]
func (h *LotHandler) Get(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Update lot
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param request body reqdto.UpdateLotRequest true "Update lot request"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lots/{id} [patch]
func (h *LotHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Datos inválidos", nil)
		return
	}

	if err := h.cmds.Update(c.Request.Context(), actor, id, req.ToParams()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Activate lot
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /lots/{id}/activate [post]
func (h *LotHandler) Activate(c *gin.Context) {
	h.transition(c, h.cmds.Activate)
}

// @Summary Suspend lot
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /lots/{id}/suspend [post]
func (h *LotHandler) Suspend(c *gin.Context) {
	h.transition(c, h.cmds.Suspend)
}

func (h *LotHandler) transition(c *gin.Context, op func(ctx context.Context, actor shared.Actor, id uuid.UUID) error) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := op(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
