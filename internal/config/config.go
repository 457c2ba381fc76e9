package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/student-attendance/internal/pkg/validator"
	"github.com/joho/godotenv"
)

type Config struct {
	App  AppConfig
	CORS CORSConfig
	SSE  SSEConfig
	Cron CronConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Name     string
	Version  string
	Port     int
	Env      string
	LogLevel string
	Timezone string
}

// CORSConfig holds the origins allowed to call the JSON API
type CORSConfig struct {
	AllowedOrigins []string
}

// SSEConfig holds live update stream configuration
type SSEConfig struct {
	KeepAlive  time.Duration
	BufferSize int
}

// CronConfig holds background job intervals. Zero disables a job.
type CronConfig struct {
	SnapshotInterval time.Duration
}

var (
	validEnvs      = []string{"development", "staging", "production", "test"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:     getEnv("APP_NAME", "Student Attendance System"),
		Version:  getEnv("APP_VERSION", "v1.0.0"),
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
	}

	// CORS configuration
	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// SSE configuration
	keepAlive, err := time.ParseDuration(getEnv("SSE_KEEPALIVE", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SSE_KEEPALIVE: %w", err)
	}
	bufferSize, err := strconv.Atoi(getEnv("SSE_BUFFER_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid SSE_BUFFER_SIZE: %w", err)
	}
	config.SSE = SSEConfig{
		KeepAlive:  keepAlive,
		BufferSize: bufferSize,
	}

	// Cron configuration
	snapshotInterval, err := time.ParseDuration(getEnv("SNAPSHOT_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_INTERVAL: %w", err)
	}
	config.Cron = CronConfig{
		SnapshotInterval: snapshotInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPort(c.App.Port) {
		errs = append(errs, validator.ValidationError{Field: "APP_PORT", Message: "must be between 1 and 65535"})
	}
	if !validator.IsInSlice(c.App.Env, validEnvs) {
		errs = append(errs, validator.ValidationError{Field: "APP_ENV", Message: "must be one of " + strings.Join(validEnvs, ", ")})
	}
	if !validator.IsInSlice(c.App.LogLevel, validLogLevels) {
		errs = append(errs, validator.ValidationError{Field: "LOG_LEVEL", Message: "must be one of " + strings.Join(validLogLevels, ", ")})
	}
	if !validator.IsValidTimezone(c.App.Timezone) {
		errs = append(errs, validator.ValidationError{Field: "APP_TIMEZONE", Message: "unknown time zone"})
	}
	for _, origin := range c.CORS.AllowedOrigins {
		if !validator.IsValidOrigin(origin) {
			errs = append(errs, validator.ValidationError{Field: "CORS_ALLOWED_ORIGINS", Message: "invalid origin " + strconv.Quote(origin)})
			break
		}
	}
	if c.SSE.KeepAlive <= 0 {
		errs = append(errs, validator.ValidationError{Field: "SSE_KEEPALIVE", Message: "must be positive"})
	}
	if c.SSE.BufferSize <= 0 {
		errs = append(errs, validator.ValidationError{Field: "SSE_BUFFER_SIZE", Message: "must be positive"})
	}
	if c.Cron.SnapshotInterval < 0 {
		errs = append(errs, validator.ValidationError{Field: "SNAPSHOT_INTERVAL", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Location returns the display time zone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlogLevel maps LOG_LEVEL to a slog level
func (c *Config) SlogLevel() slog.Level {
	switch c.App.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
