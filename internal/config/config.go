package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverXLSX     = "xlsx"
	DriverPostgres = "postgres"
)

type Config struct {
	Addr           string  `mapstructure:"addr"`
	StoreDriver    string  `mapstructure:"store_driver"`
	XLSXPath       string  `mapstructure:"xlsx_path"`
	DatabaseURL    string  `mapstructure:"database_url"`
	RedisAddr      string  `mapstructure:"redis_addr"`
	JWTSecret      string  `mapstructure:"jwt_secret"`
	DefaultUser    string  `mapstructure:"default_user"`
	LogLevel       string  `mapstructure:"log_level"`
	LogFormat      string  `mapstructure:"log_format"`
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

var keys = []string{
	"addr", "store_driver", "xlsx_path", "database_url", "redis_addr", "jwt_secret",
	"default_user", "log_level", "log_format", "rate_limit_rps", "rate_limit_burst",
}

// Load reads .env files, config.yaml and INVENTORY_* environment variables, in
// increasing order of precedence.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("store_driver", DriverXLSX)
	v.SetDefault("xlsx_path", "inventory.xlsx")
	v.SetDefault("default_user", "anonymous@local")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("rate_limit_rps", 5)
	v.SetDefault("rate_limit_burst", 10)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory:
	case DriverXLSX:
		if c.XLSXPath == "" {
			return errors.New("xlsx_path is required for the xlsx store")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("rate limit rps and burst must be positive")
	}
	return nil
}
