package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	Env         string `mapstructure:"ENV"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	SeedPath    string `mapstructure:"SEED_PATH"`

	// Redis configuration; leave REDIS_ADDR empty to disable the Redis
	// distance cache.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// OpenRouteService. An empty key disables road routing; every plan is
	// then estimate-based.
	ORSAPIKey         string `mapstructure:"ORS_API_KEY"`
	ORSTimeoutSeconds int    `mapstructure:"ORS_TIMEOUT_SECONDS"`

	// Average speed assumed for great-circle drive-time estimates.
	FallbackSpeedKmh float64 `mapstructure:"FALLBACK_SPEED_KMH"`
}

// Load reads config.yaml (current dir or ./config) plus environment
// variables, with env taking precedence.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_URL", "postgres://localhost:5432/homecare?sslmode=disable")
	viper.SetDefault("SEED_PATH", "data/seeds/demo.json")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("ORS_API_KEY", "")
	viper.SetDefault("ORS_TIMEOUT_SECONDS", 5)
	viper.SetDefault("FALLBACK_SPEED_KMH", 48)

	// Missing config file is fine; env vars carry the load.
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &cfg, nil
}
