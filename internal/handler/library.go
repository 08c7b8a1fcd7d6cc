package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movify/movify-server/internal/model"
	"github.com/movify/movify-server/internal/service"
)

// LibraryHandler serves the owner's library: every movie with a status row,
// joined with its remote detail record. These routes require the owner
// session.
type LibraryHandler struct {
	Svc *service.CatalogService
}

// GetLibrary lists every touched movie, most recently touched first.
func (h *LibraryHandler) GetLibrary(c echo.Context) error {
	movies, err := h.Svc.Library(c.Request().Context())
	if err != nil {
		return writeReadError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": movies})
}

// GetFavorites lists the favorited movies.
func (h *LibraryHandler) GetFavorites(c echo.Context) error {
	movies, err := h.Svc.Favorites(c.Request().Context())
	if err != nil {
		return writeReadError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": movies})
}

// GetByStatus lists the movies stored with the :status path value, which
// must be one of watched / want_to_watch / none.
func (h *LibraryHandler) GetByStatus(c echo.Context) error {
	status := model.Status(c.Param("status"))
	if !status.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	movies, err := h.Svc.ByStatus(c.Request().Context(), status)
	if err != nil {
		return writeReadError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": movies})
}
