package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. An optional
// .env file in the working directory is loaded first; a missing file is not
// an error.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	config.EndpointAddrHTTP = getEnv("HTTP_ADDR", config.EndpointAddrHTTP)
	config.DatabaseDSN = getEnv("DATABASE_DSN", config.DatabaseDSN)
	config.SessionSecret = getEnv("SESSION_SECRET", config.SessionSecret)
	config.SessionTTL = getEnvAsDuration("SESSION_TTL", config.SessionTTL)
	config.SessionCookieSecure = getEnvAsBool("SESSION_COOKIE_SECURE", config.SessionCookieSecure)
	config.SMTPHost = getEnv("SMTP_HOST", config.SMTPHost)
	config.SMTPPort = getEnvAsInt("SMTP_PORT", config.SMTPPort)
	config.SMTPUsername = getEnv("SMTP_USERNAME", config.SMTPUsername)
	config.SMTPPassword = getEnv("SMTP_PASSWORD", config.SMTPPassword)
	config.SMTPSender = getEnv("SMTP_SENDER", config.SMTPSender)
	config.AllowCodeReuse = getEnvAsBool("ALLOW_CODE_REUSE", config.AllowCodeReuse)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
