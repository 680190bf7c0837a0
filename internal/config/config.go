package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	RedisAddr      string
	GatewayBaseURL string
	GatewayAPIKey  string
	SweepInterval  time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		DBHost:         getenv("DB_HOST", "localhost"),
		DBPort:         getenv("DB_PORT", "5432"),
		DBUser:         getenv("DB_USER", "postgres"),
		DBPassword:     getenv("DB_PASSWORD", ""),
		DBName:         getenv("DB_NAME", "dress_rental"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		GatewayBaseURL: getenv("GATEWAY_BASE_URL", "http://localhost:9090"),
		GatewayAPIKey:  getenv("GATEWAY_API_KEY", ""),
		SweepInterval:  time.Duration(getint("SWEEP_INTERVAL_SECONDS", 60)) * time.Second,
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
