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

// Config holds all configuration for our application
type Config struct {
	App          AppConfig
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Security     SecurityConfig
	Org          OrgConfig
	MobileMoney  MobileMoneyConfig
	PendingQueue PendingQueueConfig
	Logging      LoggingConfig
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

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// JWTConfig contains JWT token configuration
type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	BcryptCost         int
	RateLimitPerMinute int
	RateLimitBurst     int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
}

// OrgConfig contains organization settings consumed by pricing and
// receipt rendering
type OrgConfig struct {
	Name         string
	Address      string
	Phone        string
	Email        string
	Currency     string
	TaxRate      float64 // fraction, e.g. 0.025 for 2.5%
	TaxLabel     string
	BusinessType string // default business type for fresh terminals
}

// MobileMoneyConfig contains the phone country profile and push timing
// for mobile payments
type MobileMoneyConfig struct {
	CountryCode      string        // e.g. "+254"
	LocalPrefix      string        // leading digit(s) replaced by the country code, e.g. "0"
	SubscriberDigits int           // digits after the country code
	PushAckDelay     time.Duration // simulated provider: delay before the push is acknowledged
	PushConfirmDelay time.Duration // simulated provider: delay before the customer confirms
	PushFailureRate  float64       // simulated provider: fraction of pushes that fail
	PushTimeout      time.Duration // sent -> failed after this much silence
}

// PendingQueueConfig contains the durable pending-order queue settings
type PendingQueueConfig struct {
	Path string
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
			Name:        getEnv("APP_NAME", "POS Backend"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "pos_db"),
			User:         getEnv("DB_USER", "pos_user"),
			Password:     getEnv("DB_PASSWORD", "pos_password"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-in-production"),
			AccessTokenExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRE", 24*time.Hour),
			RefreshTokenExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRE", 7*24*time.Hour),
		},
		Security: SecurityConfig{
			BcryptCost:         getEnvAsInt("BCRYPT_COST", 12),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 50),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:3001"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Terminal-Id"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		Org: OrgConfig{
			Name:         getEnv("ORG_NAME", "Demo Store"),
			Address:      getEnv("ORG_ADDRESS", ""),
			Phone:        getEnv("ORG_PHONE", ""),
			Email:        getEnv("ORG_EMAIL", ""),
			Currency:     getEnv("ORG_CURRENCY", "USD"),
			TaxRate:      getEnvAsFloat("ORG_TAX_RATE", 0.025),
			TaxLabel:     getEnv("ORG_TAX_LABEL", "Tax"),
			BusinessType: getEnv("ORG_BUSINESS_TYPE", "restaurant"),
		},
		MobileMoney: MobileMoneyConfig{
			CountryCode:      getEnv("MOBILE_COUNTRY_CODE", "+254"),
			LocalPrefix:      getEnv("MOBILE_LOCAL_PREFIX", "0"),
			SubscriberDigits: getEnvAsInt("MOBILE_SUBSCRIBER_DIGITS", 9),
			PushAckDelay:     getEnvAsDuration("MOBILE_PUSH_ACK_DELAY", 500*time.Millisecond),
			PushConfirmDelay: getEnvAsDuration("MOBILE_PUSH_CONFIRM_DELAY", 3*time.Second),
			PushFailureRate:  getEnvAsFloat("MOBILE_PUSH_FAILURE_RATE", 0),
			PushTimeout:      getEnvAsDuration("MOBILE_PUSH_TIMEOUT", 90*time.Second),
		},
		PendingQueue: PendingQueueConfig{
			Path: getEnv("PENDING_QUEUE_PATH", "data/pending_orders.json"),
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
	// Validate JWT secret
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	// Validate database configuration
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("DB_USER is required")
	}

	// Validate Redis configuration
	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	// Validate server port
	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	// Validate org settings
	if c.Org.TaxRate < 0 || c.Org.TaxRate >= 1 {
		return fmt.Errorf("ORG_TAX_RATE must be in [0, 1)")
	}
	if len(c.Org.Currency) != 3 {
		return fmt.Errorf("ORG_CURRENCY must be a 3-letter code")
	}

	// Validate mobile money profile
	if !strings.HasPrefix(c.MobileMoney.CountryCode, "+") {
		return fmt.Errorf("MOBILE_COUNTRY_CODE must start with '+'")
	}
	if c.MobileMoney.SubscriberDigits <= 0 {
		return fmt.Errorf("MOBILE_SUBSCRIBER_DIGITS must be positive")
	}
	if c.MobileMoney.PushTimeout <= 0 {
		return fmt.Errorf("MOBILE_PUSH_TIMEOUT must be positive")
	}

	// Validate pending queue path
	if c.PendingQueue.Path == "" {
		return fmt.Errorf("PENDING_QUEUE_PATH is required")
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

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
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
