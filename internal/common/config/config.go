package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type Config struct {
	Data     DataConfig
	Database DatabaseConfig
	Routing  RoutingConfig
	HTTP     HTTPConfig
	Logging  LoggingConfig
}

// DataConfig locates the static inputs loaded once at startup.
type DataConfig struct {
	RoutesSource  string // "csv" or "postgres"
	RoutesFile    string
	ScheduleFile  string
	FareModelFile string
}

// DatabaseConfig is only used when RoutesSource is "postgres".
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	RoutesTable string
}

type RoutingConfig struct {
	Cutoff int
}

type HTTPConfig struct {
	Listen string
}

type LoggingConfig struct {
	Level           string
	FilePath        string
	AlertWebhookURL string
}

func Load() (*Config, error) {
	cutoff, err := getIntEnv("ROUTE_CUTOFF", 5)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Data: DataConfig{
			RoutesSource:  strings.ToLower(getEnv("ROUTES_SOURCE", SourceCSV)),
			RoutesFile:    getEnv("ROUTES_FILE", "data/routes.csv"),
			ScheduleFile:  getEnv("SCHEDULE_FILE", "data/train_schedule.csv"),
			FareModelFile: getEnv("FARE_MODEL_FILE", "model/fare_model.yaml"),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			DBName:      getEnv("DB_NAME", "smartrail"),
			RoutesTable: getEnv("ROUTES_TABLE", "rail.route_distances"),
		},
		Routing: RoutingConfig{
			Cutoff: cutoff,
		},
		HTTP: HTTPConfig{
			Listen: getEnv("HTTP_LISTEN", ":8080"),
		},
		Logging: LoggingConfig{
			Level:           getEnv("LOG_LEVEL", "info"),
			FilePath:        getEnv("LOG_FILE", "smartrail.log"),
			AlertWebhookURL: getEnv("ALERT_WEBHOOK_URL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Data.RoutesSource {
	case SourceCSV:
		if c.Data.RoutesFile == "" {
			return fmt.Errorf("ROUTES_FILE is required when ROUTES_SOURCE is %q", SourceCSV)
		}
	case SourcePostgres:
		if err := c.Database.Validate(); err != nil {
			return fmt.Errorf("invalid database configuration: %w", err)
		}
	default:
		return fmt.Errorf("unsupported ROUTES_SOURCE %q (expected %q or %q)", c.Data.RoutesSource, SourceCSV, SourcePostgres)
	}

	if c.Data.FareModelFile == "" {
		return fmt.Errorf("FARE_MODEL_FILE is required")
	}
	if c.Routing.Cutoff < 1 {
		return fmt.Errorf("ROUTE_CUTOFF must be at least 1, got %d", c.Routing.Cutoff)
	}

	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Host == "" || c.DBName == "" {
		return fmt.Errorf("DB_HOST and DB_NAME are required")
	}
	if c.RoutesTable == "" {
		return fmt.Errorf("ROUTES_TABLE is required")
	}
	return nil
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.DBName)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return parsed, nil
}
