package config

import (
    "os"
    "strconv"
    "time"
)

// RateLimitConfig shapes the Redis token bucket guarding the public catalog
// routes.  Every catalog read fans out to the remote movie API, so the
// bucket capacity should stay under the upstream request allowance or a
// burst of clients turns into upstream 429s.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int           // bucket size, also the permitted burst
    RefillTokens   int           // tokens added per refill interval
    RefillInterval time.Duration
    TTL            time.Duration // how long an idle bucket lives in Redis
    KeyStrategy    string        // ip, route, ip_route, ip_user_route, ...
    Prefix         string        // Redis key prefix for bucket state
    Debug          bool          // log limiter decisions, expose the key header
}

// LoadRateLimitConfig reads the limiter settings from the environment and
// clamps them to workable values.  RATE_LIMIT_BURST and
// RATE_LIMIT_REFILL_EVERY are shorthands overriding the capacity and the
// refill pair.  Browse endpoints are keyed per client IP and route by
// default; authenticated traffic folds the owner subject into the key via
// the ip_user_route strategy.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        envBool("RATE_LIMIT_ENABLED", true),
        Capacity:       envInt("RATE_LIMIT_CAPACITY", 50),
        RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:    envStr("RATE_LIMIT_KEY_STRATEGY", "ip_route"),
        Prefix:         envStr("RATE_LIMIT_PREFIX", "rl"),
        Debug:          envBool("RATE_LIMIT_DEBUG", false),
    }
    if b := envInt("RATE_LIMIT_BURST", -1); b > 0 {
        cfg.Capacity = b
    }
    if every := envDur("RATE_LIMIT_REFILL_EVERY", 0); every > 0 {
        cfg.RefillTokens = 1
        cfg.RefillInterval = every
    }
    if cfg.Capacity < 1 {
        cfg.Capacity = 1
    }
    if cfg.RefillTokens < 1 {
        cfg.RefillTokens = 1
    }
    if cfg.RefillInterval <= 0 {
        cfg.RefillInterval = time.Second
    }
    // A bucket expiring before a few refill intervals hands idle clients a
    // fresh budget early.
    if min := 5 * cfg.RefillInterval; cfg.TTL < min {
        cfg.TTL = min
    }
    return cfg
}

func envStr(k, d string) string {
    if v := os.Getenv(k); v != "" {
        return v
    }
    return d
}

func envBool(k string, d bool) bool {
    switch os.Getenv(k) {
    case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
        return true
    case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
        return false
    }
    return d
}

func envInt(k string, d int) int {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if n, err := strconv.Atoi(v); err == nil {
        return n
    }
    return d
}

func envDur(k string, d time.Duration) time.Duration {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if dur, err := time.ParseDuration(v); err == nil {
        return dur
    }
    return d
}
