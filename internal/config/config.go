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
	Source SourceConfig `yaml:"source" mapstructure:"source"`
	Offer  OfferConfig  `yaml:"offer" mapstructure:"offer"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// SourceConfig configures the salary dataset fetch and markup layout.
type SourceConfig struct {
	Endpoint    string         `yaml:"endpoint" mapstructure:"endpoint"`
	TimeoutSecs int            `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int            `yaml:"max_retries" mapstructure:"max_retries"`
	UserAgent   string         `yaml:"user_agent" mapstructure:"user_agent"`
	RatePerSec  float64        `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	Selectors   SelectorConfig `yaml:"selectors" mapstructure:"selectors"`
}

// SelectorConfig holds the CSS selectors for the salary table.
type SelectorConfig struct {
	Rows   string `yaml:"rows" mapstructure:"rows"`
	Player string `yaml:"player" mapstructure:"player"`
	Amount string `yaml:"amount" mapstructure:"amount"`
	Season string `yaml:"season" mapstructure:"season"`
	League string `yaml:"league" mapstructure:"league"`
}

// OfferConfig configures the qualifying-offer computation.
type OfferConfig struct {
	League    string `yaml:"league" mapstructure:"league"`
	Threshold int    `yaml:"threshold" mapstructure:"threshold"`
}

// ServerConfig configures the HTTP API.
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
	v.SetEnvPrefix("OFFER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("source.endpoint", "https://questionnaire-148920.appspot.com/swe/data.html")
	v.SetDefault("source.timeout_secs", 15)
	v.SetDefault("source.max_retries", 3)
	v.SetDefault("source.user_agent", "offer-cli/1.0")
	v.SetDefault("source.rate_per_sec", 5)
	v.SetDefault("source.selectors.rows", "table#salaries-table tbody tr")
	v.SetDefault("source.selectors.player", ".player-name")
	v.SetDefault("source.selectors.amount", ".player-salary")
	v.SetDefault("source.selectors.season", ".player-year")
	v.SetDefault("source.selectors.league", ".player-level")
	v.SetDefault("offer.league", "MLB")
	v.SetDefault("offer.threshold", 125)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
