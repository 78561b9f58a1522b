package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	UpstreamBaseURL string
	UpstreamToken   string
	UpstreamTimeout time.Duration

	ServerPort string

	DBUrl         string
	RedisAddr     string
	RedisPassword string

	// Optional explicit default branch. Empty means sessions start
	// without a branch and the caller must pick one.
	DefaultBranchID string

	ClinicTimezone string

	SessionTTL time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", "http://localhost:5000/api"),
		UpstreamToken:   getEnv("UPSTREAM_API_TOKEN", ""),
		UpstreamTimeout: time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 10)) * time.Second,
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		DBUrl:           getEnv("DATABASE_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		DefaultBranchID: getEnv("DEFAULT_BRANCH_ID", ""),
		ClinicTimezone:  getEnv("CLINIC_TIMEZONE", "Asia/Kolkata"),
		SessionTTL:      time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
