package config // package config loads application configuration from environment variables

import (
    "fmt"
    "os"
    "strconv"
    "strings"
)

// Store drivers understood by the serve command.
const (
    StoreMySQL  = "mysql"
    StoreMemory = "memory"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Sub-configs for optional infrastructure (rate
// limiting, CORS, audit events) are loaded by their own helpers.
type Config struct {
    Env         string // application environment (e.g. "dev", "prod")
    Port        string // HTTP port to listen on
    StoreDriver string // "mysql" or "memory"
    DB          DBConfig
    BcryptCost  int    // bcrypt cost for password hashing
    LogLevel    string // debug | info | warn | error
    LogFormat   string // text | json

    CORS      CORSConfig
    RateLimit RateLimitConfig
    Redis     RedisConfig
    Audit     AuditConfig
}

// DBConfig groups MySQL connection settings.
type DBConfig struct {
    User string
    Pass string // empty allowed
    Host string
    Port string
    Name string
}

// Load reads configuration values from environment variables and returns a
// Config.  Unlike a fail-fast loader it reports every problem in one error so
// that the caller decides how to exit.
func Load() (Config, error) {
    var missing []string
    req := func(key string) string {
        v, ok := os.LookupEnv(key)
        if !ok || v == "" {
            missing = append(missing, key)
        }
        return v
    }

    level, format := LogSettings()
    cfg := Config{
        Env:         getenv("APP_ENV", "dev"),
        Port:        getenv("APP_PORT", "8000"),
        StoreDriver: strings.ToLower(getenv("STORE_DRIVER", StoreMySQL)),
        LogLevel:    level,
        LogFormat:   format,
        CORS:        LoadCORSConfig(),
        RateLimit:   LoadRateLimitConfig(),
        Redis:       LoadRedisConfig(),
        Audit:       LoadAuditConfig(),
    }

    switch cfg.StoreDriver {
    case StoreMySQL:
        cfg.DB = DBConfig{
            User: req("DB_USER"),
            Pass: os.Getenv("DB_PASS"),
            Host: getenv("DB_HOST", "localhost"),
            Port: getenv("DB_PORT", "3306"),
            Name: req("DB_NAME"),
        }
    case StoreMemory:
    default:
        return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
    }

    cost, err := strconv.Atoi(getenv("BCRYPT_COST", "10"))
    if err != nil {
        return Config{}, fmt.Errorf("invalid int for BCRYPT_COST: %w", err)
    }
    cfg.BcryptCost = cost

    if len(missing) > 0 {
        return Config{}, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
    }
    return cfg, nil
}

// LogSettings reads LOG_LEVEL and LOG_FORMAT.  Commands that do not need the
// full configuration use it directly.
func LogSettings() (level, format string) {
    return getenv("LOG_LEVEL", "info"), getenv("LOG_FORMAT", "text")
}

// getenv returns the value of key or def when the variable is unset or empty.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}
