package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv(ConfigFileEnv, "")
	require.NoError(t, os.Unsetenv(ConfigFileEnv))
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, ":3001", cfg.Addr())
	assert.Equal(t, "/api/TBA-matches", cfg.PathPrefix)
	assert.Equal(t, "https://www.thebluealliance.com/api/v3", cfg.BaseURL)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("TBA_API_KEY", "secret")
	t.Setenv("PORT", "8080")
	t.Setenv("DISPLAY_TIMEZONE", "America/Toronto")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UNRELATED_SETTING", "ignored")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Toronto", loc.String())
}

func TestLoad_EventTimezoneAnyCase(t *testing.T) {
	for _, tz := range []string{"event", "Event", "EVENT"} {
		t.Run(tz, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DISPLAY_TIMEZONE", tz)

			cfg, err := Load(context.Background())
			require.NoError(t, err)
			assert.True(t, cfg.UseEventTimezone())

			loc, err := cfg.Location()
			require.NoError(t, err)
			assert.Equal(t, time.Local, loc)
		})
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `
tba_api_key: from-file
port: 9090
path_prefix: /widgets
display_timezone: event
`)
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("PORT", "7070")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.APIKey)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "/widgets", cfg.PathPrefix)
	assert.True(t, cfg.UseEventTimezone())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port out of range", map[string]string{"PORT": "70000"}},
		{"port not a number", map[string]string{"PORT": "abc"}},
		{"bad timezone", map[string]string{"DISPLAY_TIMEZONE": "Mars/Olympus_Mons"}},
		{"relative prefix", map[string]string{"PATH_PREFIX": "api"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(context.Background())
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load(context.Background())
	assert.Error(t, err)
}
