package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classpoint/horarios-api/internal/api/metrics"
	"github.com/classpoint/horarios-api/internal/core/domain"
	"github.com/classpoint/horarios-api/internal/core/ports"
)

type ScheduleHandler struct {
	scheduleService ports.ScheduleService
}

func NewScheduleHandler(scheduleService ports.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// List returns every schedule entry.
//
// @Summary      List all schedule entries
// @Tags         horarios
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entryResponse
// @Router       /v1/horarios [get]
func (h *ScheduleHandler) List(c echo.Context) error {
	entries, err := h.scheduleService.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, toEntryResponses(entries))
}

// ListMine returns the caller's own schedule entries.
//
// @Summary      List my schedule entries
// @Tags         horarios
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entryResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/me/horarios [get]
func (h *ScheduleHandler) ListMine(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	entries, err := h.scheduleService.ListByOwner(c.Request().Context(), caller.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, toEntryResponses(entries))
}

// Get returns a single schedule entry by id.
//
// @Summary      Get a schedule entry
// @Tags         horarios
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Entry ID"
// @Success      200  {object}  entryResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/horarios/{id} [get]
func (h *ScheduleHandler) Get(c echo.Context) error {
	entry, err := h.scheduleService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "entry not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// Create adds a schedule entry after overlap validation.
//
// @Summary      Create a schedule entry
// @Tags         horarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEntryRequest  true  "Entry details"
// @Success      201   {object}  entryResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/horarios [post]
func (h *ScheduleHandler) Create(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	entry, err := h.scheduleService.Create(c.Request().Context(), caller, req.toInput())
	if err != nil {
		return h.renderScheduleError(c, err)
	}

	metrics.EntriesMutatedTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// Update applies a partial mutation to an existing entry.
//
// @Summary      Update a schedule entry
// @Tags         horarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Entry ID"
// @Param        body  body      updateEntryRequest  true  "Fields to change"
// @Success      200   {object}  entryResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/horarios/{id} [put]
func (h *ScheduleHandler) Update(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	entry, err := h.scheduleService.Update(c.Request().Context(), caller, c.Param("id"), req.toUpdate())
	if err != nil {
		return h.renderScheduleError(c, err)
	}

	metrics.EntriesMutatedTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// Delete removes a schedule entry.
//
// @Summary      Delete a schedule entry
// @Tags         horarios
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Entry ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/horarios/{id} [delete]
func (h *ScheduleHandler) Delete(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.scheduleService.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return h.renderScheduleError(c, err)
	}

	metrics.EntriesMutatedTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "entry deleted"})
}

// renderScheduleError maps schedule service failures onto HTTP responses. A
// conflict is a validation failure (400) and carries the offending entry so
// the client can show what collided.
func (h *ScheduleHandler) renderScheduleError(c echo.Context, err error) error {
	var conflict *domain.ConflictError
	switch {
	case errors.As(err, &conflict):
		metrics.OverlapConflictsTotal.Inc()
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": err.Error(),
			"conflict": map[string]string{
				"id":      conflict.EntryID,
				"subject": conflict.Subject,
				"day":     conflict.Day,
				"start":   conflict.Start.String(),
				"end":     conflict.End.String(),
			},
		})
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrInvalidTimeFormat),
		errors.Is(err, domain.ErrInvalidTimeRange):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNotOwner), errors.Is(err, domain.ErrInsufficientRole):
		return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.Is(err, domain.ErrEntryNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "entry not found"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
