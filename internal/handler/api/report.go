package api

import (
	"net/http"

	"playa-admin/internal/handler/httperr"
	"playa-admin/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportHandler struct {
	q queries.RevenueQueries
}

func NewReportHandler(q queries.RevenueQueries) *ReportHandler {
	return &ReportHandler{q: q}
}

// @Summary Revenue report
// @Description Monthly, daily and per-payment revenue over a date range.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param from query string false "Range start (RFC3339)"
// @Param to query string false "Range end (RFC3339)"
// @Param lot_id query string false "Filter by lot"
// @Param attendant_id query string false "Filter by attendant"
// @Param kind query string false "Filter by payment kind (ABONO, OCUPACION)"
// @Success 200 {object} queries.RevenueReport
// @Router /reports/revenue [get]
func (h *ReportHandler) Revenue(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	filter := queries.RevenueFilter{From: from, To: to}
	if raw := c.Query("lot_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Identificador inválido", nil)
			return
		}
		filter.LotID = &id
	}
	if raw := c.Query("attendant_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Identificador inválido", nil)
			return
		}
		filter.AttendantID = &id
	}
	if raw := c.Query("kind"); raw != "" {
		filter.Kind = &raw
	}

	report, err := h.q.Report(c.Request.Context(), actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
