package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movify/movify-server/internal/model"
	"github.com/movify/movify-server/internal/repository"
	"github.com/movify/movify-server/internal/service"
)

// StatusHandler serves the status mutation endpoints, the only write path
// into the store. Every response carries the notification for the attempt,
// also on failure.
type StatusHandler struct {
	Svc *service.StatusService
}

// toggleStatusRequest carries the status the client currently displays, so
// the toggle lands on the state the user saw when tapping.
type toggleStatusRequest struct {
	CurrentStatus model.Status `json:"current_status"`
}

// toggleFavoriteRequest mirrors toggleStatusRequest for the favorite flag.
type toggleFavoriteRequest struct {
	IsFavorite bool `json:"is_favorite"`
}

// scheduleRequest carries the calendar date to schedule, as YYYY-MM-DD.
type scheduleRequest struct {
	Date string `json:"date"`
}

// ToggleWatched flips the movie between watched and none.
func (h *StatusHandler) ToggleWatched(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req toggleStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res, err := h.Svc.ToggleWatched(c.Request().Context(), id, req.CurrentStatus)
	return writeMutation(c, res, err)
}

// ToggleWantToWatch flips the movie between want_to_watch and none.
func (h *StatusHandler) ToggleWantToWatch(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req toggleStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res, err := h.Svc.ToggleWantToWatch(c.Request().Context(), id, req.CurrentStatus)
	return writeMutation(c, res, err)
}

// ToggleFavorite flips the favorite flag.
func (h *StatusHandler) ToggleFavorite(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req toggleFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res, err := h.Svc.ToggleFavorite(c.Request().Context(), id, req.IsFavorite)
	return writeMutation(c, res, err)
}

// Schedule stores a future watch date for the movie.
func (h *StatusHandler) Schedule(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}
	res, err := h.Svc.ScheduleWatchDate(c.Request().Context(), id, date)
	return writeMutation(c, res, err)
}

// RemoveStatus deletes the movie's status row; removing an absent row
// succeeds.
func (h *StatusHandler) RemoveStatus(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	res, err := h.Svc.Remove(c.Request().Context(), id)
	return writeMutation(c, res, err)
}

// writeMutation maps a mutation outcome to an HTTP response. The
// notification always ships with the body so the client can show it.
func writeMutation(c echo.Context, res *service.MutationResult, err error) error {
	if err == nil {
		return c.JSON(http.StatusOK, res)
	}
	switch {
	case errors.Is(err, service.ErrPastDate):
		return c.JSON(http.StatusUnprocessableEntity, res)
	case errors.Is(err, repository.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, res)
	default:
		return c.JSON(http.StatusInternalServerError, res)
	}
}
