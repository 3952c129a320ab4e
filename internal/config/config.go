package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

// AppConfig holds configuration for the application server
type AppConfig struct {
	Environment            string `mapstructure:"APP_ENV"`
	HTTPPort               string `mapstructure:"HTTP_PORT" validate:"required,numeric"`
	ShutdownTimeoutSeconds int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS" validate:"gt=0"`
	SwaggerEnabled         bool   `mapstructure:"SWAGGER_ENABLED"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level          string `mapstructure:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn warning error dpanic panic fatal"`
	Format         string `mapstructure:"LOG_FORMAT" validate:"omitempty,oneof=json console"`
	OutputPath     string `mapstructure:"LOG_OUTPUT_PATH"`
	EnableSampling bool   `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName    string `mapstructure:"SERVICE_NAME" validate:"required"`
	ServiceVersion string `mapstructure:"SERVICE_VERSION"`
}

// RedisConfig holds configuration for the Redis backend of the rate limiter
type RedisConfig struct {
	Host        string `mapstructure:"REDIS_HOST"`
	Port        string `mapstructure:"REDIS_PORT" validate:"omitempty,numeric"`
	Password    string `mapstructure:"REDIS_PASSWORD"`
	DB          int    `mapstructure:"REDIS_DB" validate:"gte=0"`
	MaxRetries  int    `mapstructure:"REDIS_MAX_RETRIES"`
	PoolSize    int    `mapstructure:"REDIS_POOL_SIZE" validate:"gte=0"`
	MinIdleConn int    `mapstructure:"REDIS_MIN_IDLE_CONN" validate:"gte=0"`
}

// RateLimitConfig holds configuration for the token bucket rate limiter
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `mapstructure:"RATE_LIMIT_RPS" validate:"gte=0"`
	BurstCapacity     int     `mapstructure:"RATE_LIMIT_BURST" validate:"gte=0"`
}

// LoadConfig reads configuration from an optional app.env file in path and from
// environment variables. Environment variables take precedence.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app") // Look for app.env
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if we have env vars
	}

	var config Config

	config.App.Environment = v.GetString("APP_ENV")
	config.App.HTTPPort = v.GetString("HTTP_PORT")
	config.App.ShutdownTimeoutSeconds = v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")
	config.App.SwaggerEnabled = v.GetBool("SWAGGER_ENABLED")

	config.Logger.Level = v.GetString("LOG_LEVEL")
	config.Logger.Format = v.GetString("LOG_FORMAT")
	config.Logger.OutputPath = v.GetString("LOG_OUTPUT_PATH")
	config.Logger.EnableSampling = v.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = v.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = v.GetString("SERVICE_VERSION")

	config.Redis.Host = v.GetString("REDIS_HOST")
	config.Redis.Port = v.GetString("REDIS_PORT")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")
	config.Redis.MaxRetries = v.GetInt("REDIS_MAX_RETRIES")
	config.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")
	config.Redis.MinIdleConn = v.GetInt("REDIS_MIN_IDLE_CONN")

	config.RateLimit.Enabled = v.GetBool("RATE_LIMIT_ENABLED")
	config.RateLimit.RequestsPerSecond = v.GetFloat64("RATE_LIMIT_RPS")
	config.RateLimit.BurstCapacity = v.GetInt("RATE_LIMIT_BURST")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_PORT", "3333")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("SWAGGER_ENABLED", false)

	// Logger defaults
	if v.GetString("APP_ENV") == "production" {
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "json")
		v.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		v.SetDefault("LOG_LEVEL", "debug")
		v.SetDefault("LOG_FORMAT", "console")
		v.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	v.SetDefault("LOG_OUTPUT_PATH", "stdout")
	v.SetDefault("SERVICE_NAME", "user-table-service")
	v.SetDefault("SERVICE_VERSION", "1.0.0")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONN", 2)

	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_RPS", 10.0)
	v.SetDefault("RATE_LIMIT_BURST", 20)
}

// Validate checks struct-level constraints and the rules that span fields.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return errors.New("invalid config: RATE_LIMIT_RPS must be positive when rate limiting is enabled")
		}
		if c.RateLimit.BurstCapacity <= 0 {
			return errors.New("invalid config: RATE_LIMIT_BURST must be positive when rate limiting is enabled")
		}
		if c.Redis.Host == "" || c.Redis.Port == "" {
			return errors.New("invalid config: REDIS_HOST and REDIS_PORT are required when rate limiting is enabled")
		}
	}

	return nil
}
