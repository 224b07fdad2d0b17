package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for SupplySift.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"`
	Fetcher FetcherConfig `mapstructure:"fetcher" yaml:"fetcher"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`
	AI      AIConfig      `mapstructure:"ai"      yaml:"ai"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             yaml:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// FetcherConfig controls the static page fetcher.
type FetcherConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"           yaml:"timeout"`
	UserAgent       string        `mapstructure:"user_agent"        yaml:"user_agent"`
	MaxBodySize     int64         `mapstructure:"max_body_size"     yaml:"max_body_size"`
	FollowRedirects bool          `mapstructure:"follow_redirects"  yaml:"follow_redirects"`
	MaxRedirects    int           `mapstructure:"max_redirects"     yaml:"max_redirects"`
	TLSInsecure     bool          `mapstructure:"tls_insecure"      yaml:"tls_insecure"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    yaml:"max_idle_conns"`
}

// BrowserConfig controls dynamic-mode extraction.
type BrowserConfig struct {
	PageTimeout    time.Duration `mapstructure:"page_timeout"    yaml:"page_timeout"`
	SettleDelay    time.Duration `mapstructure:"settle_delay"    yaml:"settle_delay"`
	SelectionDelay time.Duration `mapstructure:"selection_delay" yaml:"selection_delay"`
	Stealth        bool          `mapstructure:"stealth"         yaml:"stealth"`
}

// ExtractConfig holds the extraction pipeline's tunable constants.
type ExtractConfig struct {
	// FallbackPrice is the base cost price used when no price signal is
	// found anywhere on the page.
	FallbackPrice float64 `mapstructure:"fallback_price" yaml:"fallback_price"`

	// SellMultiplier derives the sell price from the cost price.
	SellMultiplier float64 `mapstructure:"sell_multiplier" yaml:"sell_multiplier"`

	// MaxImages caps the collected image list.
	MaxImages int `mapstructure:"max_images" yaml:"max_images"`

	// MinDescriptionLength is the shortest extracted description accepted
	// without invoking the synthesizer.
	MinDescriptionLength int `mapstructure:"min_description_length" yaml:"min_description_length"`
}

// AIConfig controls the generative description provider.
type AIConfig struct {
	Enabled  bool   `mapstructure:"enabled"  yaml:"enabled"`
	Provider string `mapstructure:"provider" yaml:"provider"` // gemini, openai
	Model    string `mapstructure:"model"    yaml:"model"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	APIKey   string `mapstructure:"api_key"  yaml:"api_key"`
}

// StorageConfig controls the product store used by the confirm endpoint.
type StorageConfig struct {
	Enabled    bool   `mapstructure:"enabled"    yaml:"enabled"`
	Backend    string `mapstructure:"backend"    yaml:"backend"` // mongodb, file
	MongoURI   string `mapstructure:"mongo_uri"  yaml:"mongo_uri"`
	Database   string `mapstructure:"database"   yaml:"database"`
	Collection string `mapstructure:"collection" yaml:"collection"`
	FilePath   string `mapstructure:"file_path"  yaml:"file_path"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8085,
			ShutdownTimeout: 10 * time.Second,
		},
		Fetcher: FetcherConfig{
			Timeout:         15 * time.Second,
			UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			MaxBodySize:     10 * 1024 * 1024, // 10MB
			FollowRedirects: true,
			MaxRedirects:    10,
			IdleConnTimeout: 90 * time.Second,
			MaxIdleConns:    100,
		},
		Browser: BrowserConfig{
			PageTimeout:    30 * time.Second,
			SettleDelay:    2 * time.Second,
			SelectionDelay: 2 * time.Second,
			Stealth:        true,
		},
		Extract: ExtractConfig{
			FallbackPrice:        300,
			SellMultiplier:       0.95,
			MaxImages:            15,
			MinDescriptionLength: 50,
		},
		AI: AIConfig{
			Enabled:  true,
			Provider: "gemini",
			Model:    "gemini-1.5-flash",
		},
		Storage: StorageConfig{
			Enabled:    false,
			Backend:    "mongodb",
			MongoURI:   "mongodb://localhost:27017",
			Database:   "supplysift",
			Collection: "products",
			FilePath:   "./products.jsonl",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
