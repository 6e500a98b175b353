// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Bounds   BoundsConfig   `yaml:"bounds" mapstructure:"bounds"`
	Clean    CleanConfig    `yaml:"clean" mapstructure:"clean"`
	Resolver ResolverConfig `yaml:"resolver" mapstructure:"resolver"`
	IO       IOConfig       `yaml:"io" mapstructure:"io"`
	Map      MapConfig      `yaml:"map" mapstructure:"map"`
	Fetch    FetchConfig    `yaml:"fetch" mapstructure:"fetch"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// BoundsConfig defines the valid coordinate box. Defaults cover Brazil.
type BoundsConfig struct {
	LatMin float64 `yaml:"lat_min" mapstructure:"lat_min"`
	LatMax float64 `yaml:"lat_max" mapstructure:"lat_max"`
	LonMin float64 `yaml:"lon_min" mapstructure:"lon_min"`
	LonMax float64 `yaml:"lon_max" mapstructure:"lon_max"`
}

// CleanConfig configures the cleaning engine.
type CleanConfig struct {
	MaxScaleExponent int `yaml:"max_scale_exponent" mapstructure:"max_scale_exponent"`
	Concurrency      int `yaml:"concurrency" mapstructure:"concurrency"`
}

// ResolverConfig tunes the fuzzy column matcher acceptance threshold.
type ResolverConfig struct {
	ThresholdFloor   int `yaml:"threshold_floor" mapstructure:"threshold_floor"`
	ThresholdDivisor int `yaml:"threshold_divisor" mapstructure:"threshold_divisor"`
}

// IOConfig sets input parsing defaults.
type IOConfig struct {
	Separator string `yaml:"separator" mapstructure:"separator"`
	Encoding  string `yaml:"encoding" mapstructure:"encoding"`
}

// MapConfig sets the initial viewpoint of the generated HTML map.
type MapConfig struct {
	CenterLat float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLon float64 `yaml:"center_lon" mapstructure:"center_lon"`
	Zoom      int     `yaml:"zoom" mapstructure:"zoom"`
}

// FetchConfig configures the ANAC downloader.
type FetchConfig struct {
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// StoreConfig configures the run-history backend.
type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"`
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("AEROMAPA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("bounds.lat_min", -35.0)
	v.SetDefault("bounds.lat_max", 6.0)
	v.SetDefault("bounds.lon_min", -75.0)
	v.SetDefault("bounds.lon_max", -30.0)
	v.SetDefault("clean.max_scale_exponent", 6)
	v.SetDefault("clean.concurrency", 8)
	v.SetDefault("resolver.threshold_floor", 2)
	v.SetDefault("resolver.threshold_divisor", 5)
	v.SetDefault("map.center_lat", -14.235)
	v.SetDefault("map.center_lon", -51.925)
	v.SetDefault("map.zoom", 4)
	v.SetDefault("fetch.timeout_secs", 60)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("fetch.rate_per_sec", 2.0)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "aeromapa.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
