package config

import (
	"fmt"
)

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	if cfg.Storage.BusyTimeoutMs < 0 {
		return fmt.Errorf("storage.busy_timeout_ms must be non-negative")
	}
	if cfg.Storage.MaxRetries < 0 {
		return fmt.Errorf("storage.max_retries must be non-negative")
	}

	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 {
		return fmt.Errorf("server timeouts must be non-negative")
	}

	if _, err := cfg.Location(); err != nil {
		return err
	}

	if _, _, err := parseClockTime(cfg.Sweeper.At); err != nil {
		return fmt.Errorf("invalid sweeper.at: %w", err)
	}

	p := cfg.Pagination
	if p.MinPerPage < 1 {
		return fmt.Errorf("pagination.min_per_page must be at least 1")
	}
	if p.MaxPerPage < p.MinPerPage {
		return fmt.Errorf("pagination.max_per_page (%d) is below min_per_page (%d)", p.MaxPerPage, p.MinPerPage)
	}
	if p.DefaultPerPage < p.MinPerPage || p.DefaultPerPage > p.MaxPerPage {
		return fmt.Errorf("pagination.default_per_page (%d) must be within [%d, %d]",
			p.DefaultPerPage, p.MinPerPage, p.MaxPerPage)
	}

	if !isValidColorMode(cfg.Display.Colors) {
		return fmt.Errorf("invalid display.colors: %s (must be auto, always, or never)", cfg.Display.Colors)
	}
	return nil
}

// isValidColorMode returns true if the given mode is valid.
func isValidColorMode(mode ColorMode) bool {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

