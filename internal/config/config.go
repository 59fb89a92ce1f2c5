// Package config handles configuration loading for StockMitra.
// Defaults, an optional config.yaml, and environment overrides
// (STOCKMITRA_<SECTION>_<KEY>) are merged in that order.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Market    MarketConfig    `mapstructure:"market"`
	Transport TransportConfig `mapstructure:"transport"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Queue     QueueConfig     `mapstructure:"queue"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type LLMConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

type MarketConfig struct {
	FMPAPIKey        string   `mapstructure:"fmp_api_key"`
	ScreenerFallback bool     `mapstructure:"screener_fallback"`
	NewsFeeds        []string `mapstructure:"news_feeds"`
	MaxSymbols       int      `mapstructure:"max_symbols"`
}

type TransportConfig struct {
	TwilioAccountSID string `mapstructure:"twilio_account_sid"`
	TwilioAuthToken  string `mapstructure:"twilio_auth_token"`
	From             string `mapstructure:"from"`
	// MaxChunk is the rune ceiling for chunk content before the "(i/n) "
	// prefix; Twilio's hard limit is 1600 chars, so the default leaves
	// headroom for the longest prefix.
	MaxChunk     int `mapstructure:"max_chunk"`
	ChunkDelayMS int `mapstructure:"chunk_delay_ms"`
}

type AnalysisConfig struct {
	Strategy string `mapstructure:"strategy"` // "native" or "translate"
}

type QueueConfig struct {
	Workers       int `mapstructure:"workers"`
	Buffer        int `mapstructure:"buffer"`
	JobTimeoutSec int `mapstructure:"job_timeout_sec"`
}

// Load reads configuration from defaults, ./config.yaml (optional), and
// STOCKMITRA_* environment variables.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("STOCKMITRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings serve cannot run without.
func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "database.url")
	}
	if c.LLM.APIKey == "" {
		missing = append(missing, "llm.api_key")
	}
	if c.Transport.TwilioAccountSID == "" {
		missing = append(missing, "transport.twilio_account_sid")
	}
	if c.Transport.TwilioAuthToken == "" {
		missing = append(missing, "transport.twilio_auth_token")
	}
	if c.Transport.From == "" {
		missing = append(missing, "transport.from")
	}
	if len(missing) > 0 {
		return errors.New("missing required config: " + strings.Join(missing, ", "))
	}
	if c.Transport.MaxChunk <= 0 {
		return errors.New("transport.max_chunk must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)

	v.SetDefault("database.url", "")

	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.temperature", 0.4)
	v.SetDefault("llm.max_tokens", 1200)

	v.SetDefault("market.fmp_api_key", "")
	v.SetDefault("market.screener_fallback", true)
	v.SetDefault("market.news_feeds", []string{})
	v.SetDefault("market.max_symbols", 3)

	v.SetDefault("transport.twilio_account_sid", "")
	v.SetDefault("transport.twilio_auth_token", "")
	v.SetDefault("transport.from", "")
	v.SetDefault("transport.max_chunk", 1500)
	v.SetDefault("transport.chunk_delay_ms", 600)

	v.SetDefault("analysis.strategy", "native")

	v.SetDefault("queue.workers", 4)
	v.SetDefault("queue.buffer", 64)
	v.SetDefault("queue.job_timeout_sec", 90)
}
