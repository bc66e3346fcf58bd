// Package config loads application configuration for the sifter
// binary: logging, data locations, profiles, metrics, archive backend
// and the watch schedule. Strategy thresholds themselves live in the
// profiles file, loaded separately by the profile package.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sifterlab/sifter/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Data     DataConfig     `mapstructure:"data"`
	Profiles ProfilesConfig `mapstructure:"profiles"`
	Store    StoreConfig    `mapstructure:"store"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Watch    WatchConfig    `mapstructure:"watch"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// DataConfig locates the stage data directory and the universe file
// (one symbol per line, # comments allowed).
type DataConfig struct {
	Dir      string `mapstructure:"dir"`
	Universe string `mapstructure:"universe"`
}

type ProfilesConfig struct {
	Path string `mapstructure:"path"`
}

// StoreConfig sizes the in-memory report store.
type StoreConfig struct {
	MaxReports int `mapstructure:"max_reports"`
}

type ArchiveConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Type    string   `mapstructure:"type"` // "localfs" or "s3"
	Path    string   `mapstructure:"path"` // for localfs
	S3      S3Config `mapstructure:"s3"`   // for s3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	Path    string `mapstructure:"path"`
}

// WatchConfig drives the scheduler in watch mode.
type WatchConfig struct {
	Schedule   string `mapstructure:"schedule"`
	RunOnStart bool   `mapstructure:"run_on_start"`
}

// Load reads configuration from file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// Defaults returns a config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Data: DataConfig{
			Dir:      "data",
			Universe: "universe.txt",
		},
		Profiles: ProfilesConfig{
			Path: "profiles.yaml",
		},
		Store: StoreConfig{
			MaxReports: 100,
		},
		Archive: ArchiveConfig{
			Enabled: false,
			Type:    "localfs",
			Path:    "archive",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
			Path:    "/metrics",
		},
		Watch: WatchConfig{
			// Weekdays at 16:30, after the close
			Schedule: "30 16 * * 1-5",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("data.dir is required"))
	}
	if c.Store.MaxReports < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("store.max_reports must be positive, got %d", c.Store.MaxReports))
	}

	if c.Archive.Enabled {
		switch c.Archive.Type {
		case "localfs":
			if c.Archive.Path == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("archive.path required for localfs archive"))
			}
		case "s3":
			if c.Archive.S3.Bucket == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("archive.s3.bucket required for s3 archive"))
			}
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("archive.type must be localfs or s3, got %q", c.Archive.Type))
		}
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("metrics.addr required when metrics are enabled"))
	}

	return nil
}
