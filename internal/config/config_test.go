package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "organizer/cli/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG_CONFIG_HOME and the working directory at temp dirs so
// neither a real config file nor a stray .env leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	for _, k := range []string{EnvBaseURL, EnvLogLevel, EnvTimeout, EnvOpenBrowser} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
	return cfgHome
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	isolate(t)

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 10*time.Second, c.Timeout())
	assert.True(t, c.ShouldOpenBrowser())
	assert.NoError(t, c.Validate())
}

func TestSaveThenLoad(t *testing.T) {
	isolate(t)

	open := false
	want := Config{BaseURL: "https://organizer.example.com", LogLevel: "debug", TimeoutSeconds: 3, OpenBrowser: &open}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want.BaseURL, got.BaseURL)
	assert.Equal(t, "debug", got.LogLevel)
	assert.Equal(t, 3*time.Second, got.Timeout())
	assert.False(t, got.ShouldOpenBrowser())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	require.NoError(t, Save(Config{BaseURL: "https://file.example.com", LogLevel: "info"}))

	t.Setenv(EnvBaseURL, "https://env.example.com")
	t.Setenv(EnvTimeout, "25")
	t.Setenv(EnvOpenBrowser, "false")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", c.BaseURL)
	assert.Equal(t, 25, c.TimeoutSeconds)
	assert.False(t, c.ShouldOpenBrowser())
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte(EnvLogLevel+"=debug\n"), 0o600))
	// godotenv never overrides variables that are already set
	os.Unsetenv(EnvLogLevel)

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoad_InvalidEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvTimeout, "soon")

	_, err := Load()
	assert.True(t, apperrors.IsKind(err, apperrors.ConfigInvalid))
}

func TestLoad_CorruptFile(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "organizer"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, "organizer", "config.json"), []byte("{"), 0o600))

	_, err := Load()
	assert.True(t, apperrors.IsKind(err, apperrors.ConfigInvalid))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", Defaults(), false},
		{"https", Config{BaseURL: "https://organizer.example.com"}, false},
		{"ftp", Config{BaseURL: "ftp://organizer.example.com"}, true},
		{"no host", Config{BaseURL: "http://"}, true},
		{"negative timeout", Config{BaseURL: DefaultBaseURL, TimeoutSeconds: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.True(t, apperrors.IsKind(err, apperrors.ConfigInvalid))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		check   func(t *testing.T, c Config)
		wantErr bool
	}{
		{"base url", "base_url", "https://organizer.example.com", func(t *testing.T, c Config) {
			assert.Equal(t, "https://organizer.example.com", c.BaseURL)
		}, false},
		{"timeout", "timeout_seconds", "30", func(t *testing.T, c Config) {
			assert.Equal(t, 30*time.Second, c.Timeout())
		}, false},
		{"open browser", "open_browser", "false", func(t *testing.T, c Config) {
			assert.False(t, c.ShouldOpenBrowser())
		}, false},
		{"log level", "log_level", "debug", func(t *testing.T, c Config) {
			assert.Equal(t, "debug", c.LogLevel)
		}, false},
		{"bad url", "base_url", "ftp://files.example.com", nil, true},
		{"bad timeout", "timeout_seconds", "soon", nil, true},
		{"unknown key", "color", "blue", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			_, err := Set(tt.key, tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsKind(err, apperrors.ConfigInvalid))
				return
			}
			require.NoError(t, err)

			c, err := Load()
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestSet_DoesNotPersistEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvBaseURL, "https://env.example.com")

	c, err := Set("log_level", "warn")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
}
