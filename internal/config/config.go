package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration, loaded from environment
// variables with sensible development defaults.
type Config struct {
	AppPort     string
	DatabaseDSN string
	JWTSecret   string
	TokenTTL    time.Duration
	RabbitMQURL string
	RedisAddr   string
	FrontendURL string
	LogLevel    string
	LogFormat   string
}

// Load reads configuration from the environment via viper.
// RABBITMQ_URL and REDIS_ADDR are optional: leaving them empty disables the
// notification publisher and the listing cache respectively.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=elegantstore port=5432 sslmode=disable")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("FRONTEND_URL", "http://localhost:5173")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")
	viper.AutomaticEnv()

	return &Config{
		AppPort:     viper.GetString("APP_PORT"),
		DatabaseDSN: viper.GetString("DATABASE_DSN"),
		JWTSecret:   viper.GetString("JWT_SECRET"),
		TokenTTL:    viper.GetDuration("TOKEN_TTL"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
		RedisAddr:   viper.GetString("REDIS_ADDR"),
		FrontendURL: viper.GetString("FRONTEND_URL"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		LogFormat:   viper.GetString("LOG_FORMAT"),
	}
}
