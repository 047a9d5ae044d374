package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Manager reads and persists the YAML config file behind `staffclock config`.
type Manager struct {
	v          *viper.Viper
	configPath string
}

// NewManager initializes with defaults and reads configPath if it exists.
func NewManager(configPath string) (*Manager, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return &Manager{v: v, configPath: configPath}, nil
}

// Get returns the value for a given key, or nil if it does not exist.
func (m *Manager) Get(key string) any {
	return m.v.Get(key)
}

// Set validates the resulting configuration, then writes the full settings
// map to the config file.
func (m *Manager) Set(key string, value any) error {
	if !m.HasKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}

	prev := m.v.Get(key)
	m.v.Set(key, value)

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		m.v.Set(key, prev)
		return fmt.Errorf("error parsing config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		m.v.Set(key, prev)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(m.v.AllSettings())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Reset removes the config file, effectively resetting to defaults.
func (m *Manager) Reset() error {
	if err := os.Remove(m.configPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config: %w", err)
	}
	m.v = viper.New()
	setDefaults(m.v)
	m.v.SetConfigType("yaml")
	m.v.SetConfigFile(m.configPath)
	return nil
}

// AllSettings returns defaults merged with any file-based overrides.
func (m *Manager) AllSettings() map[string]any {
	return m.v.AllSettings()
}

func (m *Manager) ConfigPath() string {
	return m.configPath
}

func (m *Manager) HasKey(key string) bool {
	return m.v.IsSet(key)
}

// ParseValue turns a command-line string into a bool, int or string.
func ParseValue(value string) any {
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return value
}
