package api

import (
	"errors"
	"net/http"

	"playa-admin/internal/handler/httperr"
	"playa-admin/internal/handler/middleware"
	"playa-admin/internal/pkg/errs"
	"playa-admin/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type errorMapping struct {
	sentinel error
	status   int
	message  string
}

var errorMappings = []errorMapping{
	{errs.ErrInvalidCredentials, http.StatusUnauthorized, "Credenciales inválidas"},
	{errs.ErrLotNotOwned, http.StatusForbidden, "La playa no pertenece al usuario"},

	{errs.ErrLotNotFound, http.StatusNotFound, "Playa no encontrada"},
	{errs.ErrSpaceNotFound, http.StatusNotFound, "Espacio no encontrado"},
	{errs.ErrSpaceTypeNotFound, http.StatusNotFound, "Tipo de espacio no encontrado"},
	{errs.ErrRateNotFound, http.StatusNotFound, "No hay tarifa definida para esa combinación"},
	{errs.ErrSubscriptionNotFound, http.StatusNotFound, "Abono no encontrado"},
	{errs.ErrBillNotFound, http.StatusNotFound, "Boleta no encontrada"},
	{errs.ErrOccupationNotFound, http.StatusNotFound, "Ocupación no encontrada"},
	{errs.ErrUserNotFound, http.StatusNotFound, "Usuario no encontrado"},
	{errs.ErrInvitationNotFound, http.StatusNotFound, "Invitación inválida o vencida"},
	{errs.ErrShiftNotFound, http.StatusNotFound, "Turno no encontrado"},

	{errs.ErrSpaceOccupied, http.StatusConflict, "El espacio tiene una ocupación abierta"},
	{errs.ErrSpaceSubscribed, http.StatusConflict, "El espacio tiene un abono activo"},
	{errs.ErrSpaceTypeInUse, http.StatusConflict, "El tipo de espacio está en uso"},
	{errs.ErrDuplicateSpaceLabel, http.StatusConflict, "Ya existe un espacio con esa etiqueta"},
	{errs.ErrDuplicateRate, http.StatusConflict, "Ya existe una tarifa para esa combinación"},
	{errs.ErrDuplicateEmail, http.StatusConflict, "El email ya está registrado"},
	{errs.ErrShiftAlreadyOpen, http.StatusConflict, "El playero ya tiene un turno abierto"},
	{errs.ErrAlreadyFinalized, http.StatusConflict, "El abono ya está finalizado"},
	{errs.ErrOccupationClosed, http.StatusConflict, "La ocupación ya está cerrada"},
	{errs.ErrUnpaidBills, http.StatusConflict, "El abono tiene boletas impagas"},
	{errs.ErrBillAlreadyPaid, http.StatusConflict, "La boleta ya está pagada"},

	{errs.ErrNoActiveShift, http.StatusUnprocessableEntity, "El playero no tiene un turno abierto"},
	{errs.ErrShiftWrongLot, http.StatusUnprocessableEntity, "El turno abierto pertenece a otra playa"},
	{errs.ErrLotNotActive, http.StatusUnprocessableEntity, "La playa no está activa"},

	{errs.ErrInvalidSchedule, http.StatusBadRequest, "Horario de apertura inválido"},
	{errs.ErrDomainValidation, http.StatusBadRequest, "Datos inválidos"},
}

// actorFrom aborts with 401 when no authenticated actor is on the context.
func actorFrom(c *gin.Context) (shared.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("missing actor"), "No autorizado", nil)
		return shared.Actor{}, false
	}
	return actor, true
}

// pathID aborts with 400 when the :id path segment is not a UUID.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Identificador inválido", nil)
		return uuid.Nil, false
	}
	return id, true
}

// respondError translates usecase sentinels into HTTP responses. Unmapped
// errors become a 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			httperr.AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Error interno del servidor", nil)
}
