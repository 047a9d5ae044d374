package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, "", cfg.Storage.Path)
	assert.Equal(t, 5000, cfg.Storage.BusyTimeoutMs)
	assert.Equal(t, 3, cfg.Storage.MaxRetries)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)

	assert.Equal(t, "Local", cfg.Clock.Timezone)
	assert.True(t, cfg.Sweeper.Enabled)
	assert.Equal(t, "23:59", cfg.Sweeper.At)

	assert.Equal(t, 15, cfg.Pagination.DefaultPerPage)
	assert.Equal(t, 3, cfg.Pagination.MinPerPage)
	assert.Equal(t, 100, cfg.Pagination.MaxPerPage)

	assert.False(t, cfg.Logging.UseCases)
	assert.Equal(t, ColorAuto, cfg.Display.Colors)

	require.NoError(t, validate(cfg))
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
storage:
  path: /tmp/staffclock-test.db
  max_retries: 5
server:
  addr: ":9090"
  read_timeout: 3s
clock:
  timezone: Europe/Berlin
sweeper:
  enabled: false
  at: "20:30"
pagination:
  default_per_page: 20
display:
  colors: never
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/staffclock-test.db", cfg.DatabasePath())
	assert.Equal(t, 5, cfg.Storage.MaxRetries)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout, "unset keys keep defaults")
	assert.False(t, cfg.Sweeper.Enabled)
	assert.False(t, cfg.ShouldUseColors())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())

	h, m, err := cfg.SweepTime()
	require.NoError(t, err)
	assert.Equal(t, 20, h)
	assert.Equal(t, 30, m)

	p := cfg.Pager()
	assert.Equal(t, 20, p.DefaultPerPage)
	assert.Equal(t, 3, p.MinPerPage)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":9090\"\n")
	t.Setenv("STAFFCLOCK_SERVER_ADDR", ":7070")
	t.Setenv("STAFFCLOCK_SWEEPER_AT", "18:00")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "18:00", cfg.Sweeper.At)
}

func TestLoad_MissingFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad timezone", "clock:\n  timezone: Mars/Olympus\n", "invalid clock.timezone"},
		{"bad sweep time", "sweeper:\n  at: \"25:00\"\n", "invalid sweeper.at"},
		{"max below min", "pagination:\n  min_per_page: 10\n  max_per_page: 5\n", "max_per_page"},
		{"default out of range", "pagination:\n  default_per_page: 500\n", "default_per_page"},
		{"bad colors", "display:\n  colors: rainbow\n", "invalid display.colors"},
		{"negative retries", "storage:\n  max_retries: -1\n", "storage.max_retries"},
		{"empty addr", "server:\n  addr: \"\"\n", "server.addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLocation_Local(t *testing.T) {
	cfg := Default()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestResolvePaths_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	paths := ResolvePaths()
	assert.Equal(t, filepath.Join(dir, "staffclock", "config.yaml"), paths.ConfigFile)
	assert.Equal(t, "staffclock.db", filepath.Base(paths.DatabaseFile))
}

func TestShouldUseColors_Always(t *testing.T) {
	cfg := Default()
	cfg.Display.Colors = ColorAlways
	assert.True(t, cfg.ShouldUseColors())
}
