package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Firestore FirestoreConfig `yaml:"firestore"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Email     EmailConfig     `yaml:"email"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig selects the transaction store backend
type StorageConfig struct {
	Type string `yaml:"type"` // "firestore" or "postgres"
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// FirestoreConfig contains Firestore connection settings
type FirestoreConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
}

// GatewayConfig contains payment gateway settings
type GatewayConfig struct {
	StatusURL        string `yaml:"status_url"`         // payment-status endpoint base URL
	MaxPollAttempts  int    `yaml:"max_poll_attempts"`  // attempt budget per checkout
	PollIntervalMS   int    `yaml:"poll_interval_ms"`   // delay between attempts
	RequestTimeoutMS int    `yaml:"request_timeout_ms"` // per-query HTTP timeout
}

// RedisConfig contains Redis settings for the idempotency cache
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// EmailConfig contains SendGrid settings for receipt emails
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SettlePendingPayments string `yaml:"settle_pending_payments"`
	SweepConcurrency      int    `yaml:"sweep_concurrency"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Storage
	if val := os.Getenv("STORAGE_TYPE"); val != "" {
		c.Storage.Type = val
	}

	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Firestore
	if val := os.Getenv("FIRESTORE_PROJECT_ID"); val != "" {
		c.Firestore.ProjectID = val
	}
	if val := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); val != "" {
		c.Firestore.CredentialsFile = val
	}

	// Gateway
	if val := os.Getenv("GATEWAY_STATUS_URL"); val != "" {
		c.Gateway.StatusURL = val
	}
	if val := os.Getenv("GATEWAY_MAX_POLL_ATTEMPTS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Gateway.MaxPollAttempts)
	}
	if val := os.Getenv("GATEWAY_POLL_INTERVAL_MS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Gateway.PollIntervalMS)
	}

	// Redis
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Storage validation
	if c.Storage.Type == "" {
		c.Storage.Type = "firestore"
	}
	if c.Storage.Type != "firestore" && c.Storage.Type != "postgres" {
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
	if c.Storage.Type == "firestore" && c.Firestore.ProjectID == "" {
		return fmt.Errorf("firestore project id is required")
	}
	if c.Storage.Type == "postgres" {
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
	}

	// Gateway validation
	if c.Gateway.StatusURL == "" {
		return fmt.Errorf("gateway status URL is required")
	}
	if c.Gateway.MaxPollAttempts <= 0 {
		c.Gateway.MaxPollAttempts = 30
	}
	if c.Gateway.PollIntervalMS <= 0 {
		c.Gateway.PollIntervalMS = 2000
	}
	if c.Gateway.RequestTimeoutMS <= 0 {
		c.Gateway.RequestTimeoutMS = 10000
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	// Scheduler defaults
	if c.Scheduler.SettlePendingPayments == "" {
		c.Scheduler.SettlePendingPayments = "0 0 1 * * *" // 1 AM UTC
	}
	if c.Scheduler.SweepConcurrency <= 0 {
		c.Scheduler.SweepConcurrency = 4
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// PollInterval returns the configured delay between poll attempts
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Gateway.PollIntervalMS) * time.Millisecond
}

// RequestTimeout returns the per-query HTTP timeout for gateway calls
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Gateway.RequestTimeoutMS) * time.Millisecond
}
