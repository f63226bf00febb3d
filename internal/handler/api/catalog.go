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
	"github.com/google/uuid"
)

// CatalogHandler covers a lot's structural setup: spaces, space types and
// the rate table.
type CatalogHandler struct {
	spaceCmds commands.SpaceCommands
	typeCmds  commands.SpaceTypeCommands
	rateCmds  commands.RateCommands
	spaces    queries.SpaceQueries
	catalog   queries.CatalogQueries
}

func NewCatalogHandler(
	spaceCmds commands.SpaceCommands,
	typeCmds commands.SpaceTypeCommands,
	rateCmds commands.RateCommands,
	spaces queries.SpaceQueries,
	catalog queries.CatalogQueries,
) *CatalogHandler {
	return &CatalogHandler{
		spaceCmds: spaceCmds,
		typeCmds:  typeCmds,
		rateCmds:  rateCmds,
		spaces:    spaces,
		catalog:   catalog,
	}
}

// @Summary Create space
// @Tags spaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param request body reqdto.CreateSpaceRequest true "Create space request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /lots/{id}/spaces [post]
func (h *CatalogHandler) CreateSpace(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	lotID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Datos inválidos", nil)
		return
	}

	id, err := h.spaceCmds.Create(c.Request.Context(), actor, req.ToParams(lotID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.Created(id))
}

// @Summary List spaces with availability
// @Description Lists a lot's spaces with their live situation. only_available filters to free spaces.
// @Tags spaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param type_id query string false "Filter by space type"
// @Param only_available query bool false "Only free spaces"
// @Success 200 {array} queries.SpaceView
// @Router /lots/{id}/spaces [get]
func (h *CatalogHandler) ListSpaces(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	lotID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var typeID *uuid.UUID
	if raw := c.Query("type_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Identificador inválido", nil)
			return
		}
		typeID = &id
	}
	onlyAvailable, _ := strconv.ParseBool(c.DefaultQuery("only_available", "false"))

	views, err := h.spaces.List(c.Request.Context(), actor, lotID, typeID, onlyAvailable)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Suspend space
// @Tags spaces
// @Security BearerAuth
// @Param id path string true "Space ID"
// @Success 204
// @Router /spaces/{id}/suspend [post]
func (h *CatalogHandler) SuspendSpace(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.spaceCmds.Suspend(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Restore space
// @Tags spaces
// @Security BearerAuth
// @Param id path string true "Space ID"
// @Success 204
// @Router /spaces/{id}/restore [post]
func (h *CatalogHandler) RestoreSpace(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.spaceCmds.Restore(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Create space type
// @Tags space-types
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param request body reqdto.CreateSpaceTypeRequest true "Create space type request"
// @Success 201 {object} resdto.CreatedResponse
// @Router /lots/{id}/space-types [post]
func (h *CatalogHandler) CreateSpaceType(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	lotID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CreateSpaceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Datos inválidos", nil)
		return
	}

	id, err := h.typeCmds.Create(c.Request.Context(), actor, req.ToParams(lotID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.Created(id))
}

// @Summary List space types
// @Tags space-types
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param include_removed query bool false "Include tombstoned types"
// @Success 200 {array} queries.SpaceTypeView
// @Router /lots/{id}/space-types [get]
func (h *CatalogHandler) ListSpaceTypes(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	lotID, ok := pathID(c, "id")
	if !ok {
		return
	}
	includeRemoved, _ := strconv.ParseBool(c.DefaultQuery("include_removed", "false"))

	views, err := h.catalog.SpaceTypes(c.Request.Context(), actor, lotID, includeRemoved)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Update space type
// @Tags space-types
// @Accept json
// @Security BearerAuth
// @Param id path string true "Space type ID"
// @Param request body reqdto.UpdateSpaceTypeRequest true "Update space type request"
// @Success 204
// @Router /space-types/{id} [patch]
func (h *CatalogHandler) UpdateSpaceType(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateSpaceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Datos inválidos", nil)
		return
	}

	if err := h.typeCmds.Update(c.Request.Context(), actor, id, req.ToParams()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Remove space type
// @Description Hard-deletes an unreferenced type, tombstones a referenced one.
// @Tags space-types
// @Security BearerAuth
// @Param id path string true "Space type ID"
// @Success 204
// @Router /space-types/{id} [delete]
func (h *CatalogHandler) RemoveSpaceType(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.typeCmds.Remove(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Create rate
// @Tags rates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param request body reqdto.CreateRateRequest true "Create rate request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 409 {object} map[string]string
// @Router /lots/{id}/rates [post]
func (h *CatalogHandler) CreateRate(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	lotID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Datos inválidos", nil)
		return
	}

	id, err := h.rateCmds.Create(c.Request.Context(), actor, req.ToParams(lotID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.Created(id))
}

// @Summary List rates
// @Tags rates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 200 {array} queries.RateView
// @Router /lots/{id}/rates [get]
func (h *CatalogHandler) ListRates(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	lotID, ok := pathID(c, "id")
	if !ok {
		return
	}

	views, err := h.catalog.Rates(c.Request.Context(), actor, lotID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Update rate price
// @Tags rates
// @Accept json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param rateID path string true "Rate ID"
// @Param request body reqdto.UpdateRatePriceRequest true "New price"
// @Success 204
// @Router /lots/{id}/rates/{rateID} [patch]
func (h *CatalogHandler) UpdateRatePrice(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	lotID, ok := pathID(c, "id")
	if !ok {
		return
	}
	rateID, ok := pathID(c, "rateID")
	if !ok {
		return
	}
	var req reqdto.UpdateRatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Datos inválidos", nil)
		return
	}

	if err := h.rateCmds.UpdatePrice(c.Request.Context(), actor, rateID, lotID, req.Price); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete rate
// @Tags rates
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param rateID path string true "Rate ID"
// @Success 204
// @Router /lots/{id}/rates/{rateID} [delete]
func (h *CatalogHandler) DeleteRate(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	lotID, ok := pathID(c, "id")
	if !ok {
		return
	}
	rateID, ok := pathID(c, "rateID")
	if !ok {
		return
	}
	if err := h.rateCmds.Delete(c.Request.Context(), actor, rateID, lotID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
