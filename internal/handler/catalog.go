package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/movify/movify-server/internal/service"
)

// CatalogHandler serves the public browse endpoints. Every response is
// already enriched with the local status record for each movie.
type CatalogHandler struct {
	Svc *service.CatalogService
}

// GetPopular returns one page of the popular listing.
func (h *CatalogHandler) GetPopular(c echo.Context) error {
	page, err := h.Svc.Popular(c.Request().Context(), pageParam(c))
	if err != nil {
		return writeReadError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// GetNowPlaying returns one page of the now-playing listing.
func (h *CatalogHandler) GetNowPlaying(c echo.Context) error {
	page, err := h.Svc.NowPlaying(c.Request().Context(), pageParam(c))
	if err != nil {
		return writeReadError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// GetTopRated returns one page of the top-rated listing.
func (h *CatalogHandler) GetTopRated(c echo.Context) error {
	page, err := h.Svc.TopRated(c.Request().Context(), pageParam(c))
	if err != nil {
		return writeReadError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// GetUpcoming returns one page of the upcoming listing.
func (h *CatalogHandler) GetUpcoming(c echo.Context) error {
	page, err := h.Svc.Upcoming(c.Request().Context(), pageParam(c))
	if err != nil {
		return writeReadError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Search returns one page of search results for the ?query parameter.
func (h *CatalogHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing query"})
	}
	page, err := h.Svc.Search(c.Request().Context(), query, pageParam(c))
	if err != nil {
		return writeReadError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// GetGenres returns the catalog genre list.
func (h *CatalogHandler) GetGenres(c echo.Context) error {
	genres, err := h.Svc.Genres(c.Request().Context())
	if err != nil {
		return writeReadError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": genres})
}

// Discover returns one page of movies matching the ?genres filter, a
// comma-separated list of genre ids.
func (h *CatalogHandler) Discover(c echo.Context) error {
	raw := strings.Split(c.QueryParam("genres"), ",")
	var genreIDs []int64
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid genre id"})
		}
		genreIDs = append(genreIDs, id)
	}
	if len(genreIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing genres"})
	}
	page, err := h.Svc.Discover(c.Request().Context(), genreIDs, pageParam(c))
	if err != nil {
		return writeReadError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}
