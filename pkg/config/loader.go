package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/matst80/listing-filters/pkg/filter"
	"github.com/spf13/viper"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return filter.Status(fl.Field().String()).Valid()
	})
}

// envKeys lists every setting so AutomaticEnv can see keys that are absent
// from the yaml file.
var envKeys = []string{
	"server.listen_address", "server.debug_address", "server.allowed_origins", "server.session_idle",
	"redis.address", "redis.password", "redis.db", "redis.handoff_ttl",
	"rabbit.url", "rabbit.prefix", "rabbit.country",
	"storage.data_dir",
	"filters.default_status",
	"logging.level", "logging.format",
	"timeouts.read_header", "timeouts.read", "timeouts.write", "timeouts.idle",
	"timeouts.shutdown", "timeouts.hook",
}

// Load reads .env, then config.yaml from the working directory or ./configs,
// then environment overrides such as REDIS_ADDRESS. Missing files are fine.
func Load(paths ...string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(&cfg)

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if godotenv.Load(path) == nil {
				return
			}
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = ":8080"
	}
	if cfg.Server.SessionIdle == 0 {
		cfg.Server.SessionIdle = 2 * time.Hour
	}
	if cfg.Redis.HandoffTTL == 0 {
		cfg.Redis.HandoffTTL = 30 * time.Minute
	}
	if cfg.Rabbit.Prefix == "" {
		cfg.Rabbit.Prefix = "global"
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "data"
	}
	if cfg.Filters.DefaultStatus == "" {
		cfg.Filters.DefaultStatus = string(filter.ForSale)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	t := &cfg.Timeouts
	if t.ReadHeader == 0 {
		t.ReadHeader = 5 * time.Second
	}
	if t.Read == 0 {
		t.Read = 15 * time.Second
	}
	if t.Write == 0 {
		t.Write = 30 * time.Second
	}
	if t.Idle == 0 {
		t.Idle = 60 * time.Second
	}
	if t.Shutdown == 0 {
		t.Shutdown = 15 * time.Second
	}
	if t.Hook == 0 {
		t.Hook = 5 * time.Second
	}
}

// DefaultStatus is the configured default listing status.
func (c *Config) DefaultStatus() filter.Status {
	return filter.Status(c.Filters.DefaultStatus)
}
