package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds general application-wide settings.
type AppConfig struct {
	Port           int
	Environment    string // e.g., "development", "production", "testing"
	BaseURL        string
	AllowedOrigins []string
	SecretKey      string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
}

// PostgresConfig holds Postgres connection settings.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string // Host:Port combination
	Password string
	DB       int // Redis DB number
}

// MailConfig holds SMTP settings for outgoing mail.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

// LoadAppConfig loads application configuration from environment variables.
func LoadAppConfig() AppConfig {
	port, err := strconv.Atoi(os.Getenv("APP_PORT"))
	if err != nil || port == 0 {
		port = 8000 // Default port
	}

	accessMinutes, err := strconv.Atoi(os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"))
	if err != nil || accessMinutes == 0 {
		accessMinutes = 30
	}
	refreshMinutes, err := strconv.Atoi(os.Getenv("REFRESH_TOKEN_EXPIRE_MINUTES"))
	if err != nil || refreshMinutes == 0 {
		refreshMinutes = 60 * 24 * 7
	}

	origins := []string{"*"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	return AppConfig{
		Port:           port,
		Environment:    getEnv("APP_ENV", "development"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:8000"),
		AllowedOrigins: origins,
		SecretKey:      getEnv("SECRET_KEY", "dev-secret"),
		AccessTTL:      time.Duration(accessMinutes) * time.Minute,
		RefreshTTL:     time.Duration(refreshMinutes) * time.Minute,
	}
}

// LoadPostgresConfig loads Postgres connection configuration from environment variables.
func LoadPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:     getEnv("DATABASE_HOST", "localhost"),
		Port:     getEnv("DATABASE_PORT", "5432"),
		User:     getEnv("DATABASE_USER", "postgres"),
		Password: getEnv("DATABASE_PASSWORD", "postgres"),
		Database: getEnv("DATABASE_NAME", "contacts_db"),
	}
}

// ConnString builds a pgx-compatible connection string.
func (c PostgresConfig) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// LoadRedisConfig loads Redis connection configuration from environment variables.
func LoadRedisConfig() RedisConfig {
	host := getEnv("REDIS_HOST", "localhost")
	port := getEnv("REDIS_PORT", "6379")

	db, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil {
		db = 0 // Default DB number
	}

	return RedisConfig{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: os.Getenv("REDIS_PASSWORD"), // Can be empty if no password
		DB:       db,
	}
}

// LoadMailConfig loads SMTP configuration from environment variables.
func LoadMailConfig() MailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 1025
	}
	return MailConfig{
		Host:     getEnv("SMTP_HOST", "localhost"),
		Port:     port,
		Username: getEnv("SMTP_USER", "user"),
		Password: getEnv("SMTP_PASSWORD", "password"),
		From:     getEnv("SMTP_FROM", "noreply@example.com"),
	}
}

// LoadCloudinaryURL returns the Cloudinary connection URL, empty when unset.
func LoadCloudinaryURL() string {
	return os.Getenv("CLOUDINARY_URL")
}

// LoadLoggerConfig returns the configured log level.
func LoadLoggerConfig() string {
	return getEnv("LOG_LEVEL", "info")
}

// InitConfig loads all configurations.
func InitConfig() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v. Proceeding without .env file.\n", err)
	}
}
