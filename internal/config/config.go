// Package config loads runtime settings from the environment, an optional
// config file and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env       string          `mapstructure:"env" validate:"oneof=development production test"`
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Store     StoreConfig     `mapstructure:"store"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn warning error"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr" validate:"required"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes" validate:"gt=0"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	// Empty Addr disables the dashboard cache and the import history.
	Addr         string        `mapstructure:"addr"`
	DashboardTTL time.Duration `mapstructure:"dashboard_ttl" validate:"gte=0"`
	HistorySize  int64         `mapstructure:"history_size" validate:"gte=1"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=postgres memory"`
}

// IngestConfig holds the data that drives the import pipeline: candidate
// encodings and delimiters in trial order plus extra column aliases.
type IngestConfig struct {
	CodeWidth       int               `mapstructure:"code_width" validate:"gte=0"`
	DefaultCategory string            `mapstructure:"default_category"`
	Encodings       []string          `mapstructure:"encodings" validate:"min=1,dive,required"`
	Delimiters      []string          `mapstructure:"delimiters" validate:"min=1,dive,required"`
	Aliases         map[string]string `mapstructure:"aliases"`
	PreviewRows     int               `mapstructure:"preview_rows" validate:"gte=0"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" validate:"gt=0"`
	Burst int     `mapstructure:"burst" validate:"gte=1"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("log.level", "info")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.max_upload_bytes", 10<<20)

	v.SetDefault("database.url", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.dashboard_ttl", "5m")
	v.SetDefault("redis.history_size", 50)

	v.SetDefault("store.driver", "postgres")

	v.SetDefault("ingest.code_width", 5)
	v.SetDefault("ingest.default_category", "General")
	v.SetDefault("ingest.encodings", []string{"utf-8-sig", "utf-8", "latin1", "cp1252"})
	v.SetDefault("ingest.delimiters", []string{";", ",", "tab"})
	v.SetDefault("ingest.aliases", map[string]string{})
	v.SetDefault("ingest.preview_rows", 10)

	v.SetDefault("ratelimit.rps", 1)
	v.SetDefault("ratelimit.burst", 3)
}

// Load reads configuration. A .env file in the working directory is applied
// first when present. configFile may be empty, in which case ./config.yaml is
// used if it exists.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("POS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database.url", "POS_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("config: bind database url: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read config.yaml: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and the cross-field rules the tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	if c.Store.Driver == "postgres" && c.Database.URL == "" {
		return errors.New("config: database.url (or DATABASE_URL) is required for the postgres store")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c != nil && c.Env == "production"
}
