package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. An optional
// .env file is loaded first; a missing file is not an error, the process
// environment still applies.
//
// Supported variables:
//
//	LISTEN_ADDR            HTTP bind address
//	DATABASE_DSN           PostgreSQL DSN
//	REDIS_ADDR             Redis address for rate limiting
//	JWT_SECRET             HMAC signing secret
//	JWT_ISSUER             iss claim
//	JWT_AUDIENCE           aud claim
//	ACCESS_TOKEN_MINUTES   access token lifetime, minutes
//	REFRESH_TOKEN_DAYS     refresh token lifetime, days
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		config.RedisAddr = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("JWT_ISSUER"); v != "" {
		config.JWTIssuer = v
	}
	if v := os.Getenv("JWT_AUDIENCE"); v != "" {
		config.JWTAudience = v
	}
	if v := os.Getenv("ACCESS_TOKEN_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.AccessTokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v := os.Getenv("REFRESH_TOKEN_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			config.RefreshTokenValidityDuration = time.Duration(days) * 24 * time.Hour
		}
	}
}
