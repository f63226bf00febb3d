package api

import (
	"net/http"
	"time"

	reqdto "playa-admin/internal/handler/dto/request"
	resdto "playa-admin/internal/handler/dto/response"
	"playa-admin/internal/handler/httperr"
	"playa-admin/internal/usecase/commands"
	"playa-admin/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OperationsHandler covers the attendant's day to day: shifts and
// per-vehicle occupations.
type OperationsHandler struct {
	shiftCmds      commands.ShiftCommands
	occupationCmds commands.OccupationCommands
	shifts         queries.ShiftQueries
}

func NewOperationsHandler(
	shiftCmds commands.ShiftCommands,
	occupationCmds commands.OccupationCommands,
	shifts queries.ShiftQueries,
) *OperationsHandler {
	return &OperationsHandler{
		shiftCmds:      shiftCmds,
		occupationCmds: occupationCmds,
		shifts:         shifts,
	}
}

// @Summary Open shift
// @Tags shifts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.OpenShiftRequest true "Open shift request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 409 {object} map[string]string
// @Router /shifts/open [post]
func (h *OperationsHandler) OpenShift(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req reqdto.OpenShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Datos inválidos", nil)
		return
	}

	id, err := h.shiftCmds.Open(c.Request.Context(), actor, req.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.Created(id))
}

// @Summary Close shift
// @Tags shifts
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.CloseShiftRequest true "Close shift request"
// @Success 204
// @Failure 422 {object} map[string]string
// @Router /shifts/close [post]
func (h *OperationsHandler) CloseShift(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req reqdto.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Datos inválidos", nil)
		return
	}

	if err := h.shiftCmds.Close(c.Request.Context(), actor, req.ToParams()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Shift board
// @Description Lists a lot's shifts in a date range with duration and irregularity hints.
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param from query string false "Range start (RFC3339)"
// @Param to query string false "Range end (RFC3339)"
// @Param attendant_id query string false "Filter by attendant"
// @Success 200 {array} queries.ShiftView
// @Router /lots/{id}/shifts [get]
func (h *OperationsHandler) ShiftBoard(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	lotID, ok := pathID(c, "id")
	if !ok {
		return
	}

	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	var attendantID *uuid.UUID
	if raw := c.Query("attendant_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Identificador inválido", nil)
			return
		}
		attendantID = &id
	}

	views, err := h.shifts.Board(c.Request.Context(), actor, lotID, attendantID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Register vehicle entry
// @Tags occupations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RegisterEntryRequest true "Register entry request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /occupations/entry [post]
func (h *OperationsHandler) RegisterEntry(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req reqdto.RegisterEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Datos inválidos", nil)
		return
	}

	id, err := h.occupationCmds.RegisterEntry(c.Request.Context(), actor, req.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.Created(id))
}

// @Summary Register vehicle exit
// @Description Closes the occupation and charges per started hour, one hour minimum.
// @Tags occupations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Occupation ID"
// @Success 200 {object} resdto.ExitResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /occupations/{id}/exit [post]
func (h *OperationsHandler) RegisterExit(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.occupationCmds.RegisterExit(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromExitResult(result))
}

// parseRange reads the from/to query params, defaulting to the last 30 days.
func parseRange(c *gin.Context) (from, to time.Time, ok bool) {
	now := time.Now().UTC()
	from, to = now.AddDate(0, 0, -30), now

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Fecha inválida", nil)
			return from, to, false
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Fecha inválida", nil)
			return from, to, false
		}
		to = t
	}
	return from, to, true
}
