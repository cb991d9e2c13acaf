package config

import "time"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Rabbit   RabbitConfig   `mapstructure:"rabbit"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Filters  FiltersConfig  `mapstructure:"filters"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Timeouts TimeoutsConfig `mapstructure:"timeouts"`
}

type ServerConfig struct {
	ListenAddress  string        `mapstructure:"listen_address" validate:"required"`
	DebugAddress   string        `mapstructure:"debug_address"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	SessionIdle    time.Duration `mapstructure:"session_idle" validate:"gte=0"`
}

// RedisConfig points at the handoff store. An empty address disables it.
type RedisConfig struct {
	Address    string        `mapstructure:"address" validate:"omitempty,hostname_port"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db" validate:"gte=0,lte=15"`
	HandoffTTL time.Duration `mapstructure:"handoff_ttl" validate:"gt=0"`
}

// RabbitConfig enables search tracking when URL is set.
type RabbitConfig struct {
	URL     string `mapstructure:"url" validate:"omitempty,url"`
	Prefix  string `mapstructure:"prefix" validate:"required,alphanum"`
	Country string `mapstructure:"country"`
}

type StorageConfig struct {
	DataDir string `mapstructure:"data_dir" validate:"required"`
}

type FiltersConfig struct {
	DefaultStatus string `mapstructure:"default_status" validate:"status"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

type TimeoutsConfig struct {
	ReadHeader time.Duration `mapstructure:"read_header" validate:"gt=0"`
	Read       time.Duration `mapstructure:"read" validate:"gt=0"`
	Write      time.Duration `mapstructure:"write" validate:"gt=0"`
	Idle       time.Duration `mapstructure:"idle" validate:"gt=0"`
	Shutdown   time.Duration `mapstructure:"shutdown" validate:"gt=0"`
	Hook       time.Duration `mapstructure:"hook" validate:"gt=0"`
}
