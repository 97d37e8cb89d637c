package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	AppEnv          string
	LogLevel        string
	ShutdownTimeout time.Duration

	DBDriver   string
	MySQLDSN   string
	SQLitePath string
	ResetDB    bool

	RedisAddr    string
	RedisDB      int
	RedisPass    string
	CacheEnabled bool

	AdminJWTSecret string
	SwaggerHost    string

	SweepInterval     time.Duration
	SweepResetCheckIn bool
	StrictCheckIn     bool
}

// Load builds Config from environment with sensible defaults. A .env file in the
// working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		AppEnv:          getEnv("APP_ENV", "dev"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/parking?charset=utf8mb4&parseTime=True&loc=Local"),
		SQLitePath: getEnv("SQLITE_PATH", "/tmp/spots.db"),
		ResetDB:    getEnvBool("RESET_DB", false),

		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		CacheEnabled: getEnvBool("CACHE_ENABLED", true),

		AdminJWTSecret: os.Getenv("ADMIN_JWT_SECRET"),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),

		SweepInterval:     getEnvDuration("SWEEP_INTERVAL", 60*time.Second),
		SweepResetCheckIn: getEnvBool("SWEEP_RESET_CHECKIN", false),
		StrictCheckIn:     getEnvBool("STRICT_CHECKIN", false),
	}
}

// IsProduction reports whether the service runs with APP_ENV=prod.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "prod"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvDuration accepts Go duration strings ("90s", "2m") or a bare number of seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return def
}
