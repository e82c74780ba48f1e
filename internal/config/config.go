package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port                      string
	Origin                    string
	Environment               string
	JWTSecret                 string
	JWTRefreshSecret          string
	Database                  DatabaseConfig
	Schedule                  ScheduleConfig
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// ScheduleConfig holds the clinic working-hours template used by the
// scheduling engine. Kept in configuration rather than a package-level
// constant so per-clinic schedules can be introduced without code change.
type ScheduleConfig struct {
	DayStart                string // HH:MM:SS
	DayEnd                  string // HH:MM:SS, last bookable slot (inclusive)
	SlotMinutes             int
	BookingHorizonMonths    int
	CancellationNoticeHours int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clinicbase"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	slotMinutes, err := strconv.Atoi(getEnv("SCHEDULE_SLOT_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_SLOT_MINUTES: %w", err)
	}

	horizonMonths, err := strconv.Atoi(getEnv("BOOKING_HORIZON_MONTHS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_HORIZON_MONTHS: %w", err)
	}

	cancelNoticeHours, err := strconv.Atoi(getEnv("CANCELLATION_NOTICE_HOURS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid CANCELLATION_NOTICE_HOURS: %w", err)
	}

	scheduleConfig := ScheduleConfig{
		DayStart:                getEnv("SCHEDULE_DAY_START", "09:00:00"),
		DayEnd:                  getEnv("SCHEDULE_DAY_END", "17:00:00"),
		SlotMinutes:             slotMinutes,
		BookingHorizonMonths:    horizonMonths,
		CancellationNoticeHours: cancelNoticeHours,
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	return &Config{
		Port:                      getEnv("PORT", "3001"),
		Origin:                    getEnv("ORIGIN", "http://localhost:4200"),
		Environment:               getEnv("APP_ENV", "development"),
		JWTSecret:                 getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret:          getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		Database:                  dbConfig,
		Schedule:                  scheduleConfig,
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
