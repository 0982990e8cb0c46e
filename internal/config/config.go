package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxTokens         = 100
	DefaultSearchResultCount = 5
	DefaultSearchRetryLimit  = 3

	DefaultModel          = "gpt-3.5-turbo"
	DefaultSearchEndpoint = "https://api.bing.microsoft.com/v7.0/search"
	DefaultSafeSearch     = "Strict"

	// Credential environment variables.
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvBingAPIKey   = "BING_API_KEY"
)

// Config is loaded once at startup and treated as read-only afterwards.
type Config struct {
	MaxTokens         int `yaml:"max_tokens"`
	SearchResultCount int `yaml:"search_result_count"`
	SearchRetryLimit  int `yaml:"search_retry_limit"`

	Server struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		IdleTimeout     time.Duration `yaml:"idle_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	OpenAI struct {
		Model   string `yaml:"model"`
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"-"`
	} `yaml:"openai"`

	Search struct {
		Endpoint   string `yaml:"endpoint"`
		SafeSearch string `yaml:"safe_search"`
		APIKey     string `yaml:"-"`
	} `yaml:"search"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

// Default returns the configuration used when no file or key is present.
func Default() Config {
	var c Config
	c.MaxTokens = DefaultMaxTokens
	c.SearchResultCount = DefaultSearchResultCount
	c.SearchRetryLimit = DefaultSearchRetryLimit
	c.Server.Port = 5000
	c.Server.ReadTimeout = 15 * time.Second
	c.Server.WriteTimeout = 60 * time.Second
	c.Server.IdleTimeout = 60 * time.Second
	c.Server.ShutdownTimeout = 5 * time.Second
	c.OpenAI.Model = DefaultModel
	c.Search.Endpoint = DefaultSearchEndpoint
	c.Search.SafeSearch = DefaultSafeSearch
	c.CORS.AllowedOrigins = []string{"*"}
	return c
}

// Load reads the YAML file at path on top of Default() and pulls credentials
// from the environment. A missing file is not an error.
func Load(path string, logger logrus.FieldLogger) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.WithField("path", path).Warn("configuration file not found, using defaults")
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.OpenAI.APIKey = os.Getenv(EnvOpenAIAPIKey)
	cfg.Search.APIKey = os.Getenv(EnvBingAPIKey)

	if cfg.OpenAI.APIKey == "" {
		logger.Warn("OpenAI API key is missing, summarization will fail")
	}
	if cfg.Search.APIKey == "" {
		logger.Warn("Bing API key is missing, alternative sources will be empty")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.SearchResultCount <= 0 {
		return fmt.Errorf("search_result_count must be positive, got %d", c.SearchResultCount)
	}
	if c.SearchRetryLimit < 0 {
		return fmt.Errorf("search_retry_limit cannot be negative, got %d", c.SearchRetryLimit)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.OpenAI.Model == "" {
		return fmt.Errorf("openai.model cannot be empty")
	}
	if c.Search.Endpoint == "" {
		return fmt.Errorf("search.endpoint cannot be empty")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
