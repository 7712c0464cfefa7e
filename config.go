package main

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultBrand    = "My Brand"
	defaultAudience = "general audience"
	defaultOffer    = "Check out my latest!"

	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

//go:embed config/settings.yaml
var defaultSettings []byte

// RunConfig is everything read from the process environment
type RunConfig struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development" env-description:"development for console logs, anything else for JSON"`
		SentryDSN string `env:"SENTRY_DSN" env-description:"forward error logs to Sentry"`
	}
	YouTube struct {
		APIKey    string `env:"YOUTUBE_API_KEY" env-description:"YouTube Data API key"`
		ChannelID string `env:"YOUTUBE_CHANNEL_ID" env-description:"channel id, starts with UC"`
	}
	Instagram struct {
		Token string `env:"INSTAGRAM_TOKEN" env-description:"Instagram Graph access token"`
	}
	Headline struct {
		Provider     string `env:"HEADLINE_PROVIDER" env-default:"openai" env-description:"openai or anthropic"`
		OpenAIKey    string `env:"OPENAI_API_KEY" env-description:"OpenAI API key"`
		AnthropicKey string `env:"ANTHROPIC_API_KEY" env-description:"Anthropic API key"`
	}
	Brand       string `env:"BRAND_NAME" env-default:"My Brand" env-description:"brand shown on the landing page"`
	Audience    string `env:"AUDIENCE" env-default:"general audience" env-description:"audience used in the headline prompt"`
	Offer       string `env:"OFFER_BASELINE" env-default:"Check out my latest!" env-description:"baseline offer text"`
	ContentPath string `env:"CONTENT_PATH" env-description:"output path, overrides the settings file"`
}

// ProviderSettings configures one text-generation provider
type ProviderSettings struct {
	APIURL      string  `yaml:"api_url"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// Settings represents the YAML configuration structure
type Settings struct {
	OutputPath string `yaml:"output_path"`
	HTTP       struct {
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"http"`
	YouTube struct {
		APIURL string `yaml:"api_url"`
	} `yaml:"youtube"`
	Instagram struct {
		APIURL string `yaml:"api_url"`
	} `yaml:"instagram"`
	Headline struct {
		CaptionPreview int              `yaml:"caption_preview"`
		OpenAI         ProviderSettings `yaml:"openai"`
		Anthropic      ProviderSettings `yaml:"anthropic"`
	} `yaml:"headline"`
	Contact []Button `yaml:"contact"`
}

// Config holds environment values and file settings
type Config struct {
	Env      *RunConfig
	Settings *Settings
}

// LoadConfig reads the environment and the settings file. An empty
// settingsPath selects the embedded defaults.
func LoadConfig(settingsPath string) (*Config, error) {
	settings, err := loadSettings(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	env, err := loadRunConfig()
	if err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if env.ContentPath != "" {
		settings.OutputPath = env.ContentPath
	}

	return &Config{Env: env, Settings: settings}, nil
}

// loadRunConfig never fails on missing values; empty strings fall back to
// the literal defaults and empty credentials disable their integration.
func loadRunConfig() (*RunConfig, error) {
	var cfg RunConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	cfg.Brand = orDefault(cfg.Brand, defaultBrand)
	cfg.Audience = orDefault(cfg.Audience, defaultAudience)
	cfg.Offer = orDefault(cfg.Offer, defaultOffer)

	cfg.YouTube.APIKey = strings.TrimSpace(cfg.YouTube.APIKey)
	cfg.YouTube.ChannelID = strings.TrimSpace(cfg.YouTube.ChannelID)
	cfg.Instagram.Token = strings.TrimSpace(cfg.Instagram.Token)
	cfg.Headline.OpenAIKey = strings.TrimSpace(cfg.Headline.OpenAIKey)
	cfg.Headline.AnthropicKey = strings.TrimSpace(cfg.Headline.AnthropicKey)
	cfg.Headline.Provider = strings.ToLower(orDefault(cfg.Headline.Provider, ProviderOpenAI))
	cfg.ContentPath = strings.TrimSpace(cfg.ContentPath)

	return &cfg, nil
}

// EnvHelp describes the supported environment variables
func EnvHelp() string {
	help, err := cleanenv.GetDescription(&RunConfig{}, nil)
	if err != nil {
		return ""
	}
	return help
}

// HeadlineKey returns the credential of the selected provider
func (c *RunConfig) HeadlineKey() string {
	if c.Headline.Provider == ProviderAnthropic {
		return c.Headline.AnthropicKey
	}
	return c.Headline.OpenAIKey
}

// loadSettings loads settings from YAML file with fallback to embedded defaults
func loadSettings(settingsPath string) (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal(defaultSettings, &settings); err != nil {
		return nil, fmt.Errorf("parsing embedded settings: %w", err)
	}

	if settingsPath != "" {
		// Explicit settings file must exist
		data, err := os.ReadFile(settingsPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", settingsPath, err)
		}
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", settingsPath, err)
		}
	}

	if settings.HTTP.Timeout <= 0 {
		settings.HTTP.Timeout = 15 * time.Second
	}
	if settings.Headline.CaptionPreview <= 0 {
		settings.Headline.CaptionPreview = 140
	}

	return &settings, nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
