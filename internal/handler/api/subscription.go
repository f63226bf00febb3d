package api

import (
	"net/http"
	"strconv"

	reqdto "playa-admin/internal/handler/dto/request"
	resdto "playa-admin/internal/handler/dto/response"
	"playa-admin/internal/handler/httperr"
	"playa-admin/internal/usecase/commands"
	"playa-admin/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	cmds commands.SubscriptionCommands
	q    queries.SubscriptionQueries
}

func NewSubscriptionHandler(cmds commands.SubscriptionCommands, q queries.SubscriptionQueries) *SubscriptionHandler {
	return &SubscriptionHandler{cmds: cmds, q: q}
}

// @Summary Create subscription
// @Description Creates a subscription on a free space and charges the prorated first month.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param request body reqdto.CreateSubscriptionRequest true "Create subscription request"
// @Success 201 {object} resdto.SubscriptionCreatedResponse
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /lots/{id}/subscriptions [post]
func (h *SubscriptionHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	lotID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Datos inválidos", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), actor, req.ToParams(lotID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromSubscriptionResult(result))
}

// @Summary List subscriptions
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param state query string false "Filter by state (ACTIVO, FINALIZADO)"
// @Success 200 {array} queries.SubscriptionView
// @Router /lots/{id}/subscriptions [get]
func (h *SubscriptionHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	lotID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var state *string
	if raw := c.Query("state"); raw != "" {
		state = &raw
	}

	views, err := h.q.ListByLot(c.Request.Context(), actor, lotID, state)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Get subscription
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Success 200 {object} queries.SubscriptionView
// @Failure 404 {object} map[string]string
// @Router /subscriptions/{id} [get]
func (h *SubscriptionHandler) Get(c *gin.Context) {
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

// @Summary Edit subscription
// @Description Reassigns the space or replaces the vehicle list, repricing when needed.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Param request body reqdto.EditSubscriptionRequest true "Edit subscription request"
// @Success 200 {object} resdto.SubscriptionEditedResponse
// @Failure 409 {object} map[string]string
// @Router /subscriptions/{id} [patch]
func (h *SubscriptionHandler) Edit(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.EditSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Datos inválidos", nil)
		return
	}

	result, err := h.cmds.Edit(c.Request.Context(), actor, id, req.ToParams())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromEditResult(result))
}

// @Summary Finalize subscription
// @Description Ends a subscription. Unpaid bills block it unless the owner forces.
// @Tags subscriptions
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Param force query bool false "Force despite unpaid bills (owner only)"
// @Success 204
// @Failure 409 {object} map[string]string
// @Router /subscriptions/{id}/finalize [post]
func (h *SubscriptionHandler) Finalize(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))

	if err := h.cmds.Finalize(c.Request.Context(), actor, id, force); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Pay bill
// @Description Settles a pending monthly bill and records the payment on the attendant's open shift.
// @Tags subscriptions
// @Security BearerAuth
// @Param billID path string true "Bill ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bills/{billID}/pay [post]
func (h *SubscriptionHandler) PayBill(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	billID, ok := pathID(c, "billID")
	if !ok {
		return
	}

	if err := h.cmds.PayBill(c.Request.Context(), actor, billID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
