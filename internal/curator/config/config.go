package config

import (
	"time"

	"topline/pkg/config"
)

// Source is one configured RSS/Atom feed. Sources are static configuration;
// the pipeline never mutates them.
type Source struct {
	Name     string `mapstructure:"name"`
	URL      string `mapstructure:"url"`
	FeedURL  string `mapstructure:"feed_url"`
	Vertical string `mapstructure:"vertical"`
	Active   bool   `mapstructure:"active"`
}

// Ingest holds tuning for the ingestion pipeline.
type Ingest struct {
	MaxItemsPerSource int           `mapstructure:"max_items_per_source"`
	TitleWindowDays   int           `mapstructure:"title_window_days"`
	RetentionDays     int           `mapstructure:"retention_days"`
	ScrapeContent     bool          `mapstructure:"scrape_content"`
	FetchTimeout      time.Duration `mapstructure:"fetch_timeout"`
}

// Metrics holds tuning for the metric rotation policy.
type Metrics struct {
	CooldownDays int `mapstructure:"cooldown_days"`
	LookbackDays int `mapstructure:"lookback_days"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// AI holds configuration for AI providers. An empty provider disables
// generation and every article gets fallback insights.
type AI struct {
	Provider string `mapstructure:"provider"`
}

// Telegram holds configuration for the Telegram notifier. An empty bot token
// disables notifications.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Scheduler holds optional cron specs for background jobs. Empty specs
// disable the corresponding job.
type Scheduler struct {
	IngestCron  string `mapstructure:"ingest_cron"`
	RotateCron  string `mapstructure:"rotate_cron"`
	CleanupCron string `mapstructure:"cleanup_cron"`
}

// Config holds the full configuration for the curator service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Ingest    Ingest          `mapstructure:"ingest"`
	Metrics   Metrics         `mapstructure:"metrics"`
	Gemini    Gemini          `mapstructure:"gemini"`
	AI        AI              `mapstructure:"ai"`
	Telegram  Telegram        `mapstructure:"telegram"`
	Scheduler Scheduler       `mapstructure:"scheduler"`
	Sources   []Source        `mapstructure:"sources"`
}

// Load loads the curator configuration from the given path and applies
// defaults for unset tuning values.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}

	if cfg.Ingest.MaxItemsPerSource <= 0 {
		cfg.Ingest.MaxItemsPerSource = 5
	}
	if cfg.Ingest.TitleWindowDays <= 0 {
		cfg.Ingest.TitleWindowDays = 7
	}
	if cfg.Ingest.RetentionDays <= 0 {
		cfg.Ingest.RetentionDays = 14
	}
	if cfg.Ingest.FetchTimeout <= 0 {
		cfg.Ingest.FetchTimeout = 30 * time.Second
	}
	if cfg.Metrics.CooldownDays <= 0 {
		cfg.Metrics.CooldownDays = 7
	}
	if cfg.Metrics.LookbackDays <= 0 {
		cfg.Metrics.LookbackDays = 90
	}

	return &cfg, nil
}
