package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movify/movify-server/internal/service"
)

// MovieHandler serves per-movie and per-person detail endpoints.
type MovieHandler struct {
	Svc *service.CatalogService
}

// GetMovie returns the enriched detail record of one movie.
func (h *MovieHandler) GetMovie(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	details, err := h.Svc.Details(c.Request().Context(), id)
	if err != nil {
		return writeReadError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

// GetMovieExtras returns the detail record with cast, trailers and watch
// providers in one response.
func (h *MovieHandler) GetMovieExtras(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	extras, err := h.Svc.Extras(c.Request().Context(), id)
	if err != nil {
		return writeReadError(c, err)
	}
	return c.JSON(http.StatusOK, extras)
}

// GetMovieVideos returns the trailers of one movie.
func (h *MovieHandler) GetMovieVideos(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	videos, err := h.Svc.Videos(c.Request().Context(), id)
	if err != nil {
		return writeReadError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": videos})
}

// GetPerson returns the detail record of an actor or crew member.
func (h *MovieHandler) GetPerson(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	person, err := h.Svc.Person(c.Request().Context(), id)
	if err != nil {
		return writeReadError(c, err)
	}
	return c.JSON(http.StatusOK, person)
}

// GetPersonCredits returns the filmography of a person, enriched with
// status records.
func (h *MovieHandler) GetPersonCredits(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	movies, err := h.Svc.PersonCredits(c.Request().Context(), id)
	if err != nil {
		return writeReadError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": movies})
}
