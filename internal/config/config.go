package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultSessionSecret = "dev-secret-change-in-production"

var ErrDefaultSecret = errors.New("NEUROTRACKER_SESSION_SECRET must be set in production environment")

// Config is the top-level application configuration.
type Config struct {
	Env      string         `mapstructure:"env"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port           string  `mapstructure:"port"`
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// DatabaseConfig selects the key-value backend. Driver is one of
// memory, sqlite, mysql or postgres.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type SessionConfig struct {
	Secret        string        `mapstructure:"secret"`
	Expiry        time.Duration `mapstructure:"expiry"`
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// AuthConfig tunes the onboarding flow. Verifier is "mock" (any six digit
// code passes) or "code" (a generated code is mailed and checked).
type AuthConfig struct {
	SimulatedLatency     time.Duration `mapstructure:"simulated_latency"`
	VerificationLatency  time.Duration `mapstructure:"verification_latency"`
	UsernameCheckLatency time.Duration `mapstructure:"username_check_latency"`
	Verifier             string        `mapstructure:"verifier"`
	CodeTTL              time.Duration `mapstructure:"code_ttl"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Directory  string `mapstructure:"directory"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	Console    bool   `mapstructure:"console"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.rate_limit_rps", 5.0)
	v.SetDefault("server.rate_limit_burst", 10)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "neurotracker.db")

	v.SetDefault("session.secret", defaultSessionSecret)
	v.SetDefault("session.expiry", 24*time.Hour)
	v.SetDefault("session.idle_timeout", 2*time.Hour)
	v.SetDefault("session.sweep_interval", 10*time.Minute)

	v.SetDefault("auth.simulated_latency", time.Second)
	v.SetDefault("auth.verification_latency", 1500*time.Millisecond)
	v.SetDefault("auth.username_check_latency", 500*time.Millisecond)
	v.SetDefault("auth.verifier", "mock")
	v.SetDefault("auth.code_ttl", 10*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 7)
	v.SetDefault("logging.compress", true)
	v.SetDefault("logging.console", true)
}

// Load reads config/config.yaml under projectRoot, applies NEUROTRACKER_*
// environment overrides and returns the decoded configuration together with
// the viper instance backing it. A missing config file is not an error.
func Load(projectRoot string) (*Config, *viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(filepath.Join(projectRoot, "config"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("NEUROTRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.IsProduction() && cfg.Session.Secret == defaultSessionSecret {
		return nil, nil, ErrDefaultSecret
	}

	return cfg, v, nil
}

// Watch reloads the configuration whenever the backing file changes and
// hands the fresh copy to onChange. Only settings that are safe to change at
// runtime should be read from the reloaded value.
func Watch(v *viper.Viper, log *zap.Logger, onChange func(*Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("configuration file changed, reloading", zap.String("file", e.Name))

		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			log.Error("reloading configuration", zap.Error(err))
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}
