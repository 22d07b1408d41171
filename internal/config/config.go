package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Storage    StorageConfig
	Attendance AttendanceConfig
	Badges     BadgeConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

type StorageConfig struct {
	BasePath string
	BaseURL  string
}

// AttendanceConfig holds the attendance derivation rules. Loaded once at
// startup and treated as immutable afterwards.
type AttendanceConfig struct {
	WorkStartTime string  // "HH:MM", check-ins after this are late
	HalfDayHours  float64 // worked hours below this become half-day
}

// BadgeConfig holds the gamification thresholds. The source data mixes fixed
// day counts with variable-length months, so every threshold is configurable.
type BadgeConfig struct {
	OnTimeStreakDays    int // consecutive on-time days for the streak badge
	PerfectMonthMinDays int // minimum attended days for a perfect month
	EarlyBirdHour       int // check-ins before this hour count as early
	EarlyBirdCount      int // early check-ins needed for the badge
	PunctualityWindow   int // look-back window in days
	PunctualityMinDays  int // minimum attended days inside the window
}

func Load() (*Config, error) {
	// A missing .env file is fine in production; env vars may come from the host
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "staffsync"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "720h"),
	}

	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/api/v1/uploads"),
	}

	halfDayHours, err := strconv.ParseFloat(getEnv("ATTENDANCE_HALF_DAY_HOURS", "4"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_HALF_DAY_HOURS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		WorkStartTime: getEnv("ATTENDANCE_WORK_START", "09:30"),
		HalfDayHours:  halfDayHours,
	}

	config.Badges = BadgeConfig{
		OnTimeStreakDays:    getEnvInt("BADGE_ON_TIME_STREAK_DAYS", 5),
		PerfectMonthMinDays: getEnvInt("BADGE_PERFECT_MONTH_MIN_DAYS", 20),
		EarlyBirdHour:       getEnvInt("BADGE_EARLY_BIRD_HOUR", 9),
		EarlyBirdCount:      getEnvInt("BADGE_EARLY_BIRD_COUNT", 10),
		PunctualityWindow:   getEnvInt("BADGE_PUNCTUALITY_WINDOW_DAYS", 30),
		PunctualityMinDays:  getEnvInt("BADGE_PUNCTUALITY_MIN_DAYS", 20),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if !validator.IsValidClockTime(c.Attendance.WorkStartTime) {
		return fmt.Errorf("ATTENDANCE_WORK_START must be an HH:MM clock time")
	}
	if c.Attendance.HalfDayHours <= 0 {
		return fmt.Errorf("ATTENDANCE_HALF_DAY_HOURS must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
