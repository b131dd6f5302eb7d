package config

import (
	"time"

	"github.com/spf13/viper"
)

// parseEnv overlays Config with values from the environment and an optional
// .env file (env vars win over the file). Defaults are seeded from the
// current Config so unset variables leave earlier overlay stages intact.
//
// Recognized variables:
//
//	ADDRESS       HTTP bind address (e.g. ":5000")
//	DATABASE_DSN  PostgreSQL DSN
//	JWT_SECRET    HMAC signing secret
//	TOKEN_TTL     token lifetime as a Go duration (e.g. "24h")
//	BCRYPT_COST   bcrypt cost factor
//	APP_ENV       "development" or "production"
func parseEnv(config *Config) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // missing .env is fine (e.g. in CI)

	v.AutomaticEnv()

	v.SetDefault("ADDRESS", config.EndpointAddr)
	v.SetDefault("DATABASE_DSN", config.DatabaseDSN)
	v.SetDefault("JWT_SECRET", config.SecretKey)
	v.SetDefault("TOKEN_TTL", config.TokenValidityDuration.String())
	v.SetDefault("BCRYPT_COST", config.BcryptCost)
	v.SetDefault("APP_ENV", config.Env)

	config.EndpointAddr = v.GetString("ADDRESS")
	config.DatabaseDSN = v.GetString("DATABASE_DSN")
	config.SecretKey = v.GetString("JWT_SECRET")
	config.BcryptCost = v.GetInt("BCRYPT_COST")
	config.Env = v.GetString("APP_ENV")

	if ttl, err := time.ParseDuration(v.GetString("TOKEN_TTL")); err == nil {
		config.TokenValidityDuration = ttl
	}
}
