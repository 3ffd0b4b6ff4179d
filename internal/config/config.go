// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the gateway
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Backend  BackendConfig
	Payment  PaymentConfig
	Session  SessionConfig
	Redis    RedisConfig
	Polling  PollingConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// BackendConfig contains the upstream commerce API configuration
type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	DefaultEmail   string
}

// PaymentConfig contains payment-return configuration
type PaymentConfig struct {
	// ReturnPath is the gateway route the payment provider redirects back to.
	ReturnPath string
	// LandingPath is where the browser is sent after verification, with the
	// verification markers stripped.
	LandingPath string
}

// SessionConfig contains durable session storage configuration
type SessionConfig struct {
	Provider string // "file" or "redis"
	FilePath string
}

// RedisConfig contains Redis configuration for the redis session provider
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// PollingConfig contains background polling configuration
type PollingConfig struct {
	NotificationInterval time.Duration
	SupportInterval      time.Duration
	// BackoffCap caps failure backoff at BackoffCap * base interval.
	BackoffCap int
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
	RequestTimeout     time.Duration
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront Gateway"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "3000"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "http://localhost:5000/api"),
			RequestTimeout: getEnvAsDuration("BACKEND_REQUEST_TIMEOUT", 15*time.Second),
			DefaultEmail:   getEnv("BACKEND_DEFAULT_EMAIL", "customer@example.com"),
		},
		Payment: PaymentConfig{
			ReturnPath:  getEnv("PAYMENT_RETURN_PATH", "/api/v1/payment/return"),
			LandingPath: getEnv("PAYMENT_LANDING_PATH", "/orders"),
		},
		Session: SessionConfig{
			Provider: getEnv("SESSION_PROVIDER", "file"),
			FilePath: getEnv("SESSION_FILE_PATH", ".storefront/session.json"),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Polling: PollingConfig{
			NotificationInterval: getEnvAsDuration("POLL_NOTIFICATION_INTERVAL", 10*time.Second),
			SupportInterval:      getEnvAsDuration("POLL_SUPPORT_INTERVAL", 5*time.Second),
			BackoffCap:           getEnvAsInt("POLL_BACKOFF_CAP", 4),
		},
		Security: SecurityConfig{
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:3001"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
			RequestTimeout:     getEnvAsDuration("SECURITY_REQUEST_TIMEOUT", 30*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return fmt.Errorf("BACKEND_BASE_URL must be an http(s) URL")
	}
	if c.Backend.RequestTimeout <= 0 {
		return fmt.Errorf("BACKEND_REQUEST_TIMEOUT must be positive")
	}

	switch c.Session.Provider {
	case "file":
		if c.Session.FilePath == "" {
			return fmt.Errorf("SESSION_FILE_PATH is required for the file session provider")
		}
	case "redis":
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis session provider")
		}
	default:
		return fmt.Errorf("SESSION_PROVIDER must be \"file\" or \"redis\", got %q", c.Session.Provider)
	}

	if c.Polling.NotificationInterval <= 0 || c.Polling.SupportInterval <= 0 {
		return fmt.Errorf("polling intervals must be positive")
	}
	if c.Polling.BackoffCap < 1 {
		return fmt.Errorf("POLL_BACKOFF_CAP must be at least 1")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
