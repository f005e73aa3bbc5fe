package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	CinemaAPI CinemaAPIConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	Guest     GuestConfig
	AMQP      AMQPConfig
	Checkout  CheckoutConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

// CinemaAPIConfig configures the client for the remote cinema backend.
type CinemaAPIConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RetryDelay time.Duration
}

type DatabaseConfig struct {
	URL      string // Full database URL
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret string
}

// GuestConfig configures the signed guest-session tokens handed to
// unauthenticated browsers.
type GuestConfig struct {
	TokenSecret string
	TokenTTL    time.Duration
}

type AMQPConfig struct {
	URL      string // empty disables event publishing
	Exchange string
}

type CheckoutConfig struct {
	// RedirectDelay is how long the confirmation screen is shown before
	// the UI navigates away.
	RedirectDelay time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		CinemaAPI: CinemaAPIConfig{
			BaseURL:    getEnv("CINEMA_API_URL", "http://localhost:5000/api"),
			Timeout:    getEnvAsDuration("CINEMA_API_TIMEOUT", 30*time.Second),
			RetryDelay: getEnvAsDuration("CINEMA_API_RETRY_DELAY", time.Second),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "cinema_booking"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "change-me-in-production"),
		},
		Guest: GuestConfig{
			TokenSecret: getEnv("GUEST_TOKEN_SECRET", "change-me-too"),
			TokenTTL:    getEnvAsDuration("GUEST_TOKEN_TTL", 30*24*time.Hour),
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "cinema.bookings"),
		},
		Checkout: CheckoutConfig{
			RedirectDelay: getEnvAsDuration("CHECKOUT_REDIRECT_DELAY", 3*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a fallback default
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration gets an environment variable as a duration with a fallback default
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
