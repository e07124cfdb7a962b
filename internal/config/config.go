// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/codr1/resort-booking/internal/models"
)

const (
	defaultAPITimeout       = 10 * time.Second
	defaultDraftTTL         = 30 * time.Minute
	defaultDraftCleanupCron = "*/5 * * * *"
)

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// Uploaded images are served from here; falls back to BaseURL.
	UploadsURL string        `yaml:"uploads_url,omitempty"`
	Timeout    time.Duration `yaml:"timeout"`
}

type DraftsConfig struct {
	TTL         time.Duration `yaml:"ttl"`
	CleanupCron string        `yaml:"cleanup_cron"`
}

type EmailConfig struct {
	Region          string `yaml:"region"`
	Sender          string `yaml:"sender"`
	AccessKeyID     string `yaml:"-"` // Loaded from environment
	SecretAccessKey string `yaml:"-"` // Loaded from environment
}

// Enabled reports whether SES delivery is fully configured.
func (e EmailConfig) Enabled() bool {
	return e.Region != "" && e.Sender != "" && e.AccessKeyID != "" && e.SecretAccessKey != ""
}

type RateLimitConfig struct {
	SummaryCooldown            time.Duration `yaml:"summary_cooldown"`
	SummaryMaxPerRecipientHour int           `yaml:"summary_max_per_recipient_per_hour"`
	SummaryMaxIPPerHour        int           `yaml:"summary_max_ip_per_hour"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
		StaticDir   string `yaml:"static_dir,omitempty"`
		TrustProxy  bool   `yaml:"trust_proxy"`
		SecretKey   string `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	API       APIConfig       `yaml:"api"`
	Drafts    DraftsConfig    `yaml:"drafts"`
	Email     EmailConfig     `yaml:"email"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Theme     models.Theme    `yaml:"theme"`

	Features struct {
		EnableDebug bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	cfg.App.SecretKey = os.Getenv("APP_SECRET_KEY")
	cfg.Email.AccessKeyID = os.Getenv("SES_ACCESS_KEY_ID")
	cfg.Email.SecretAccessKey = os.Getenv("SES_SECRET_ACCESS_KEY")
	if override := strings.TrimSpace(os.Getenv("RESORT_API_BASE_URL")); override != "" {
		cfg.API.BaseURL = override
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes yaml and applies defaults without validating.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = defaultAPITimeout
	}
	if strings.TrimSpace(c.API.UploadsURL) == "" {
		c.API.UploadsURL = c.API.BaseURL
	}
	if c.Drafts.TTL <= 0 {
		c.Drafts.TTL = defaultDraftTTL
	}
	if strings.TrimSpace(c.Drafts.CleanupCron) == "" {
		c.Drafts.CleanupCron = defaultDraftCleanupCron
	}
	if c.RateLimit.SummaryCooldown <= 0 {
		c.RateLimit.SummaryCooldown = time.Minute
	}
	if c.RateLimit.SummaryMaxPerRecipientHour <= 0 {
		c.RateLimit.SummaryMaxPerRecipientHour = 5
	}
	if c.RateLimit.SummaryMaxIPPerHour <= 0 {
		c.RateLimit.SummaryMaxIPPerHour = 10
	}
	c.Theme = c.Theme.WithDefaults()
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.App.Environment != "development" && c.App.SecretKey == "" {
		return fmt.Errorf("APP_SECRET_KEY is required outside development")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base_url is required")
	}
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("api base_url is invalid: %w", err)
	}
	if _, err := cron.ParseStandard(c.Drafts.CleanupCron); err != nil {
		return fmt.Errorf("drafts cleanup_cron is invalid: %w", err)
	}
	if c.Email.Region != "" && c.Email.Sender == "" {
		return fmt.Errorf("email sender is required when region is set")
	}
	if err := c.Theme.Validate(); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	return nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
