package server

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the server configuration, loaded from environment variables
// with sane defaults for local operation.
type Config struct {
	Port         string `json:"port"`
	DatabasePath string `json:"database_path"`

	// Connection pooling
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Camera registry API
	CameraAPIURL       string        `json:"camera_api_url"`
	CameraAPIKey       string        `json:"camera_api_key"`
	CameraAPITimeout   time.Duration `json:"camera_api_timeout"`
	CameraAPIRateLimit time.Duration `json:"camera_api_rate_limit"`

	// SMTP relay for summary mail
	SMTPHost     string `json:"smtp_host"`
	SMTPPort     int    `json:"smtp_port"`
	SMTPUser     string `json:"smtp_user"`
	SMTPPassword string `json:"-"`
	SMTPFrom     string `json:"smtp_from"`

	ExportDir string `json:"export_dir"`
	LogLevel  string `json:"log_level"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	config := &Config{
		Port:               getEnv("PORT", "8099"),
		DatabasePath:       getEnv("DATABASE_PATH", "vehicle_violations.db"),
		MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 3),
		ConnMaxLifetime:    getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		CameraAPIURL:       getEnv("CAMERA_API_URL", "http://api.data.go.kr/openapi/tn_pubr_public_unmanned_traffic_camera_api"),
		CameraAPIKey:       os.Getenv("CAMERA_API_KEY"),
		CameraAPITimeout:   getEnvDuration("CAMERA_API_TIMEOUT", 30*time.Second),
		CameraAPIRateLimit: getEnvDuration("CAMERA_API_RATE_LIMIT", time.Second),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:           getEnv("SMTP_FROM", "traffic-dashboard@localhost"),
		ExportDir:          getEnv("EXPORT_DIR", "exports"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that would otherwise fail at first use.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("port must be numeric, got %q", c.Port)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("smtp port out of range: %d", c.SMTPPort)
	}
	if c.CameraAPITimeout <= 0 {
		return fmt.Errorf("camera api timeout must be positive")
	}
	return nil
}

// MailConfigured reports whether an SMTP relay is set up. Mail endpoints
// return a validation error when it is not.
func (c *Config) MailConfigured() bool {
	return c.SMTPHost != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
