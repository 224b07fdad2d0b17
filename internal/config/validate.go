package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Fetcher.Timeout <= 0 {
		errs = append(errs, errors.New("fetcher.timeout must be positive"))
	}
	if c.Browser.PageTimeout <= 0 {
		errs = append(errs, errors.New("browser.page_timeout must be positive"))
	}
	if c.Extract.SellMultiplier <= 0 || c.Extract.SellMultiplier > 1 {
		errs = append(errs, fmt.Errorf("extract.sell_multiplier must be in (0,1], got %v", c.Extract.SellMultiplier))
	}
	if c.Extract.MaxImages <= 0 {
		errs = append(errs, errors.New("extract.max_images must be positive"))
	}
	if c.Extract.FallbackPrice < 0 {
		errs = append(errs, errors.New("extract.fallback_price must not be negative"))
	}
	if c.Storage.Enabled {
		switch c.Storage.Backend {
		case "mongodb", "file":
		default:
			errs = append(errs, fmt.Errorf("storage.backend must be mongodb or file, got %q", c.Storage.Backend))
		}
	}
	if c.AI.Enabled {
		switch c.AI.Provider {
		case "gemini", "openai":
		default:
			errs = append(errs, fmt.Errorf("ai.provider must be gemini or openai, got %q", c.AI.Provider))
		}
	}

	return errors.Join(errs...)
}
