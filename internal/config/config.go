// Package config loads application configuration and initializes logging.
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
	Geocode GeocodeConfig `yaml:"geocode" mapstructure:"geocode"`
	Cluster ClusterConfig `yaml:"cluster" mapstructure:"cluster"`
	Plan    PlanConfig    `yaml:"plan" mapstructure:"plan"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// GeocodeConfig configures the Nominatim client and its cache.
type GeocodeConfig struct {
	BaseURL        string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent      string  `yaml:"user_agent" mapstructure:"user_agent"`
	CachePath      string  `yaml:"cache_path" mapstructure:"cache_path"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
}

// ClusterConfig holds the warning thresholds for the clustering engine.
type ClusterConfig struct {
	PairOutlierKm   float64 `yaml:"pair_outlier_km" mapstructure:"pair_outlier_km"`
	GlobalOutlierKm float64 `yaml:"global_outlier_km" mapstructure:"global_outlier_km"`
	SpreadWarnKm    float64 `yaml:"spread_warn_km" mapstructure:"spread_warn_km"`
}

// PlanConfig holds defaults for the plan command.
type PlanConfig struct {
	Seed       int64  `yaml:"seed" mapstructure:"seed"`
	MaxPerTeam int    `yaml:"max_per_team" mapstructure:"max_per_team"`
	OutputDir  string `yaml:"output_dir" mapstructure:"output_dir"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads config.yaml from the working directory (optional) with
// PICKUP_-prefixed environment overrides on top of defaults.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PICKUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("geocode.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocode.user_agent", "pickup-planner/1.0")
	v.SetDefault("geocode.cache_path", ".geocode-cache.db")
	v.SetDefault("geocode.requests_per_sec", 1.0)
	v.SetDefault("cluster.pair_outlier_km", 16.0)
	v.SetDefault("cluster.global_outlier_km", 50.0)
	v.SetDefault("cluster.spread_warn_km", 80.0)
	v.SetDefault("plan.seed", 42)
	v.SetDefault("plan.max_per_team", 8)
	v.SetDefault("plan.output_dir", ".")

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

// InitLogger builds the global zap logger from the log config.
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
