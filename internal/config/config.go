package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Environment      string `mapstructure:"ENVIRONMENT"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	ServerAddress    string `mapstructure:"SERVER_ADDRESS"`
	StoreDriver      string `mapstructure:"STORE_DRIVER"`
	DBSource         string `mapstructure:"DB_SOURCE"`
	MigrateOnStart   bool   `mapstructure:"MIGRATE_ON_START"`
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisDB          int    `mapstructure:"REDIS_DB"`
	RedisPrefix      string `mapstructure:"REDIS_PREFIX"`
	MetricsNamespace string `mapstructure:"METRICS_NAMESPACE"`
}

var keys = []string{
	"ENVIRONMENT",
	"LOG_LEVEL",
	"SERVER_ADDRESS",
	"STORE_DRIVER",
	"DB_SOURCE",
	"MIGRATE_ON_START",
	"REDIS_ADDR",
	"REDIS_PASSWORD",
	"REDIS_DB",
	"REDIS_PREFIX",
	"METRICS_NAMESPACE",
}

// LoadConfig reads app.env from path, then lets environment variables
// override it. A missing file is not an error.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("STORE_DRIVER", DriverPostgres)
	v.SetDefault("DB_SOURCE", "")
	v.SetDefault("MIGRATE_ON_START", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PREFIX", "address:")
	v.SetDefault("METRICS_NAMESPACE", "address_registry")

	v.AutomaticEnv()
	// AutomaticEnv only applies to keys viper already knows about
	for _, key := range keys {
		if err = v.BindEnv(key); err != nil {
			return config, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: unmarshal: %w", err)
	}

	config.StoreDriver = strings.ToLower(strings.TrimSpace(config.StoreDriver))
	if err = config.Validate(); err != nil {
		return config, err
	}

	return config, nil
}

// Validate checks the settings the selected store driver depends on.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DBSource == "" {
			return errors.New("config: DB_SOURCE is required for the postgres store")
		}
	case DriverRedis:
		if c.RedisAddr == "" {
			return errors.New("config: REDIS_ADDR is required for the redis store")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// IsDevelopment reports whether logs should be human readable.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
