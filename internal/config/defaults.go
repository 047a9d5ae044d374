package config

import (
	"github.com/spf13/viper"
)

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.path", "") // Empty means use platform default
	v.SetDefault("storage.busy_timeout_ms", 5000)
	v.SetDefault("storage.max_retries", 3)

	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")

	v.SetDefault("clock.timezone", "Local")

	v.SetDefault("sweeper.enabled", true)
	v.SetDefault("sweeper.at", "23:59")

	v.SetDefault("pagination.default_per_page", 15)
	v.SetDefault("pagination.min_per_page", 3)
	v.SetDefault("pagination.max_per_page", 100)

	v.SetDefault("logging.use_cases", false)

	v.SetDefault("display.colors", "auto")
}
