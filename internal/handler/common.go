// Package handler exposes the HTTP handlers of the API: public catalog
// browsing, the owner's library, status mutations and authentication.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/movify/movify-server/internal/repository"
	"github.com/movify/movify-server/internal/tmdb"
)

// pageParam reads the ?page query parameter, defaulting to the first page.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// idParam parses the :id path parameter.
func idParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// writeReadError translates read-path failures into HTTP responses: a 404
// from the catalog passes through, any other upstream failure is a bad
// gateway, and store failures map to 503 (not yet initialized) or 500.
func writeReadError(c echo.Context, err error) error {
	var apiErr *tmdb.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found in catalog"})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "catalog error"})
	}
	if errors.Is(err, repository.ErrStoreUnavailable) {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store not ready"})
	}
	if errors.Is(err, repository.ErrStoreIO) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	// Transport failures reaching the catalog land here.
	return c.JSON(http.StatusBadGateway, echo.Map{"error": "catalog unreachable"})
}
