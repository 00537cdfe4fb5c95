package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported document store drivers
const (
	DriverFirestore = "firestore"
	DriverPostgres  = "postgres"
	DriverRedis     = "redis"
	DriverMemory    = "memory"
)

// DefaultRequestTimeout bounds a request when server.request_timeout is unusable
const DefaultRequestTimeout = 10 * time.Second

// CGPA policies
const (
	CGPAPolicyExcludeFailedSubjects  = "exclude_failed_subjects"
	CGPAPolicyExcludeFailedSemesters = "exclude_failed_semesters"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string `yaml:"port" env:"SERVER_PORT"`
		Mode           string `yaml:"mode" env:"SERVER_MODE"`
		RequestTimeout string `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT"`
	} `yaml:"server"`

	Store struct {
		Driver     string `yaml:"driver" env:"STORE_DRIVER"`
		Collection string `yaml:"collection" env:"STORE_COLLECTION"`
		Semesters  string `yaml:"semesters" env:"STORE_SEMESTERS"`
		SeedDemo   bool   `yaml:"seed_demo" env:"STORE_SEED_DEMO"`
	} `yaml:"store"`

	Firestore struct {
		ProjectID       string `yaml:"project_id" env:"FIRESTORE_PROJECT_ID"`
		CredentialsFile string `yaml:"credentials_file" env:"FIRESTORE_CREDENTIALS_FILE"`
	} `yaml:"firestore"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	Redis struct {
		Host     string `yaml:"host" env:"REDIS_HOST"`
		Port     int    `yaml:"port" env:"REDIS_PORT"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
		PoolSize int    `yaml:"pool_size" env:"REDIS_POOL_SIZE"`
	} `yaml:"redis"`

	Grading struct {
		CGPAPolicy        string `yaml:"cgpa_policy" env:"GRADING_CGPA_POLICY"`
		SemesterKeyPrefix string `yaml:"semester_key_prefix" env:"GRADING_SEMESTER_KEY_PREFIX"`
	} `yaml:"grading"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file, an optional .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "3000"
	config.Server.Mode = "development"
	config.Server.RequestTimeout = DefaultRequestTimeout.String()

	// Store defaults
	config.Store.Driver = DriverFirestore
	config.Store.Collection = "students"
	config.Store.Semesters = "semesters"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "results"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	// Redis defaults
	config.Redis.Host = "localhost"
	config.Redis.Port = 6379
	config.Redis.PoolSize = 10

	// Grading defaults
	config.Grading.CGPAPolicy = CGPAPolicyExcludeFailedSubjects
	config.Grading.SemesterKeyPrefix = "sem_"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Store.Driver {
	case DriverFirestore:
		if config.Firestore.ProjectID == "" {
			return fmt.Errorf("firestore project id is required")
		}
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection lifetime format: %w", err)
		}
	case DriverRedis:
		if config.Redis.Host == "" {
			return fmt.Errorf("redis host is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported store driver %q", config.Store.Driver)
	}

	if config.Store.Collection == "" || config.Store.Semesters == "" {
		return fmt.Errorf("store collection names are required")
	}

	switch config.Grading.CGPAPolicy {
	case CGPAPolicyExcludeFailedSubjects, CGPAPolicyExcludeFailedSemesters:
	default:
		return fmt.Errorf("unsupported cgpa policy %q", config.Grading.CGPAPolicy)
	}

	if timeout, err := time.ParseDuration(config.Server.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request timeout format: %w", err)
	} else if timeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", config.Server.RequestTimeout)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetRequestTimeout returns server.request_timeout, or DefaultRequestTimeout when it does not parse
func (c *Config) GetRequestTimeout() time.Duration {
	timeout, err := time.ParseDuration(c.Server.RequestTimeout)
	if err != nil || timeout <= 0 {
		return DefaultRequestTimeout
	}
	return timeout
}

// GetRedisAddr returns the redis address in host:port form
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	valueLower := strings.ToLower(valueStr)
	if valueLower == "true" || valueLower == "1" || valueLower == "yes" {
		return true
	}
	if valueLower == "false" || valueLower == "0" || valueLower == "no" {
		return false
	}

	return defaultValue
}
