package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DBPath         string // path to the SQLite database file
    TMDBAPIKey     string // API key for the TMDB catalog
    TMDBBaseURL    string // base URL of the TMDB API (overridable for tests)
    TMDBLanguage   string // default language for catalog responses
    WatchRegion    string // region used to look up watch providers
    JWTSecret      string // secret used to sign JWTs
    AccessTTLMin   int    // access token time‑to‑live in minutes
    RefreshTTLDays int    // refresh token time‑to‑live in days
    OwnerEmail     string // email of the single owner account
    OwnerPassHash  string // bcrypt hash of the owner password
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The catalog base URL,
// language and database path have defaults so a minimal .env works out of
// the box.
func Load() Config {
    return Config{
        Env:            must("APP_ENV"),  // environment (dev/test/prod)
        Port:           must("APP_PORT"), // port to bind the HTTP server
        DBPath:         getenv("DB_PATH", "movify.db"),
        TMDBAPIKey:     must("TMDB_API_KEY"),
        TMDBBaseURL:    getenv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
        TMDBLanguage:   getenv("TMDB_LANGUAGE", "en-US"),
        WatchRegion:    getenv("TMDB_WATCH_REGION", "US"),
        JWTSecret:      must("JWT_SECRET"),
        AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),   // TTL for access tokens in minutes
        RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"), // TTL for refresh tokens in days
        OwnerEmail:     must("OWNER_EMAIL"),
        OwnerPassHash:  must("OWNER_PASSWORD_HASH"),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
