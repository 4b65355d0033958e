package config

import (
	"context"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/seclearn/analytics/pkg/errors"
	"github.com/seclearn/analytics/pkg/logger"
)

// LoadConfig loads the configuration from file and environment variables.
// The returned viper instance stays live so callers can watch for changes.
func LoadConfig(log logger.Logger) (*Config, *viper.Viper, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.interval", "1m")
	v.SetDefault("scoring.cache_ttl", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("tracing.service_name", "awareness-analytics")
	v.SetDefault("tracing.sample_rate", 0.1)

	// Load from config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/seclearn-analytics/")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, nil, err
		}
	}

	// Load from environment variables
	v.SetEnvPrefix("SECLEARN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return &cfg, v, nil
}

// WatchConfig re-unmarshals the configuration whenever the underlying file
// changes and hands the result to onChange. Invalid updates are logged and
// dropped; the previous configuration stays in effect.
func WatchConfig(v *viper.Viper, log logger.Logger, onChange func(*Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		var cfg Config
		if err := v.Unmarshal(&cfg); err != nil {
			log.Error(context.Background(), "config reload failed, keeping previous", err, logger.Fields{"file": e.Name})
			return
		}
		if err := cfg.Validate(); err != nil {
			log.Error(context.Background(), "reloaded config invalid, keeping previous", err, logger.Fields{"file": e.Name})
			return
		}
		log.Info(context.Background(), "configuration reloaded", logger.Fields{"file": e.Name})
		onChange(&cfg)
	})
	v.WatchConfig()
}
