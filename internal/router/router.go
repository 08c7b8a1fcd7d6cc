package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/movify/movify-server/internal/config"
	"github.com/movify/movify-server/internal/handler"
	"github.com/movify/movify-server/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes under /v1/auth. Login
// verifies the owner credentials, refresh rotates the refresh token and
// logout revokes it; these take no access token. Logout-all ends every
// session and therefore requires one.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
	g.POST("/logout-all", a.LogoutAll, middleware.JWTAuth(jwtSecret))
}

// RegisterCatalog registers the public browse endpoints. List endpoints are
// cached under the lists namespace and wiped wholesale after a mutation,
// per-movie endpoints under the movies namespace so a single movie can be
// invalidated precisely. Both groups share the token-bucket rate limiter.
// With a nil Redis client the middleware constructors pass requests through
// unchanged.
func RegisterCatalog(e *echo.Echo, c *handler.CatalogHandler, m *handler.MovieHandler, rdb *redis.Client, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig) {
	limiter := middleware.NewTokenBucket(rlCfg, rdb)

	lists := e.Group("/v1", limiter, middleware.NewRedisCache(middleware.ListCacheConfig(cacheCfg), rdb))
	lists.GET("/movies/popular", c.GetPopular)
	lists.GET("/movies/now-playing", c.GetNowPlaying)
	lists.GET("/movies/top-rated", c.GetTopRated)
	lists.GET("/movies/upcoming", c.GetUpcoming)
	lists.GET("/movies/search", c.Search)
	lists.GET("/genres", c.GetGenres)
	lists.GET("/discover", c.Discover)

	movies := e.Group("/v1", limiter, middleware.NewRedisCache(middleware.MovieCacheConfig(cacheCfg), rdb))
	movies.GET("/movies/:id", m.GetMovie)
	movies.GET("/movies/:id/extras", m.GetMovieExtras)
	movies.GET("/movies/:id/videos", m.GetMovieVideos)
	movies.GET("/people/:id", m.GetPerson)
	movies.GET("/people/:id/credits", m.GetPersonCredits)
}

// RegisterLibrary registers the endpoints that read or mutate the status
// store. All of them require a valid access token. Mutations are never
// cached: every write must land in SQLite before the response is built.
func RegisterLibrary(e *echo.Echo, l *handler.LibraryHandler, s *handler.StatusHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.GET("/library", l.GetLibrary)
	g.GET("/library/favorites", l.GetFavorites)
	g.GET("/library/status/:status", l.GetByStatus)

	g.POST("/movies/:id/watched", s.ToggleWatched)
	g.POST("/movies/:id/want-to-watch", s.ToggleWantToWatch)
	g.POST("/movies/:id/favorite", s.ToggleFavorite)
	g.POST("/movies/:id/schedule", s.Schedule)
	g.DELETE("/movies/:id/status", s.RemoveStatus)
}
