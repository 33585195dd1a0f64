package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort           string
	StorageBackend     string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	BillingLocation    *time.Location
	RabbitMQURL        string
	RabbitMQExchange   string
	BillingSummaryCron string
	RateLimitRPS       float64
	LogLevel           slog.Level
	ShutdownTimeout    time.Duration
}

// LoadConfig reads the configuration through getenv, typically os.Getenv after the
// optional .env file was loaded with LoadDotEnv. Every invalid value is reported.
func LoadConfig(getenv func(string) string) (Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	config := Config{
		HTTPPort:           env("HTTP_PORT", "8080"),
		StorageBackend:     strings.ToLower(env("STORAGE_BACKEND", StoragePostgres)),
		DBHost:             env("DB_HOST", "localhost"),
		DBPort:             env("DB_PORT", "5432"),
		DBUser:             env("DB_USER", "postgres"),
		DBPassword:         getenv("DB_PASSWORD"),
		DBName:             env("DB_NAME", "cafeteria"),
		DBSslMode:          env("DB_SSLMODE", "disable"),
		RabbitMQURL:        env("RABBITMQ_URL", ""),
		RabbitMQExchange:   env("RABBITMQ_EXCHANGE", "order_status"),
		BillingSummaryCron: env("BILLING_SUMMARY_CRON", ""),
	}

	var errList []error

	if _, err := strconv.ParseUint(config.HTTPPort, 10, 16); err != nil {
		errList = append(errList, fmt.Errorf("HTTP_PORT: %w", err))
	}

	switch config.StorageBackend {
	case StoragePostgres, StorageMemory:
	default:
		errList = append(errList, fmt.Errorf("STORAGE_BACKEND: %q is not one of %s, %s",
			config.StorageBackend, StoragePostgres, StorageMemory))
	}

	location, err := time.LoadLocation(env("BILLING_TIMEZONE", "UTC"))
	if err != nil {
		errList = append(errList, fmt.Errorf("BILLING_TIMEZONE: %w", err))
	}
	config.BillingLocation = location

	if config.BillingSummaryCron != "" {
		parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err = parser.Parse(config.BillingSummaryCron); err != nil {
			errList = append(errList, fmt.Errorf("BILLING_SUMMARY_CRON: %w", err))
		}
	}

	if config.RabbitMQURL != "" {
		if _, err = url.Parse(config.RabbitMQURL); err != nil {
			errList = append(errList, fmt.Errorf("RABBITMQ_URL: %w", err))
		}
	}

	config.RateLimitRPS, err = strconv.ParseFloat(env("RATE_LIMIT_RPS", "20"), 64)
	if err == nil && config.RateLimitRPS < 0 {
		err = errors.New("must not be negative")
	}
	if err != nil {
		errList = append(errList, fmt.Errorf("RATE_LIMIT_RPS: %w", err))
	}

	if err = config.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		errList = append(errList, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	config.ShutdownTimeout, err = time.ParseDuration(env("SHUTDOWN_TIMEOUT", "10s"))
	if err == nil && config.ShutdownTimeout <= 0 {
		err = errors.New("must be positive")
	}
	if err != nil {
		errList = append(errList, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err))
	}

	if len(errList) > 0 {
		return Config{}, errors.Join(errList...)
	}
	return config, nil
}

// LoadDotEnv loads variables from the given files (default .env) without overriding the
// environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) HTTPAddress() string {
	return "0.0.0.0:" + c.HTTPPort
}
