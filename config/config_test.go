package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("EMAIL_PROVIDER", "")
	t.Setenv("AGENDA_API_URL", "")
	t.Setenv("AGENDA_MUTATION_POLICY", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Contains(t, cfg.DBUrl, "/agenda")
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, "http://localhost:8080", cfg.Client.APIURL)
	assert.Equal(t, "proceed", cfg.Client.MutationPolicy)
	assert.Equal(t, defaultRequestTimeout, cfg.RequestTimeout)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("AGENDA_MUTATION_POLICY", "halt")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "halt", cfg.Client.MutationPolicy)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REQUEST_TIMEOUT", "")

	_, err := Load()
	require.Error(t, err)
}

func TestNewLoggerTo(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		level   string
		logAt   slog.Level
		wantOut bool
		wantSub string
	}{
		{"text handler info", "development", "", slog.LevelInfo, true, "msg=hello"},
		{"json handler", "production", "info", slog.LevelInfo, true, `"msg":"hello"`},
		{"debug filtered at info", "development", "info", slog.LevelDebug, false, ""},
		{"debug enabled", "development", "debug", slog.LevelDebug, true, "msg=hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GO_ENV", tt.env)
			t.Setenv("LOG_LEVEL", tt.level)
			var buf bytes.Buffer
			logger := NewLoggerTo(&buf)
			logger.Log(t.Context(), tt.logAt, "hello")
			if !tt.wantOut {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.wantSub)
		})
	}
}

func TestLoadClient_IgnoresServerSecrets(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "9000")
	t.Setenv("AGENDA_API_URL", "")
	t.Setenv("AGENDA_API_TOKEN", "tok")
	t.Setenv("AGENDA_MUTATION_POLICY", "")

	c := LoadClient()
	assert.Equal(t, "http://localhost:9000", c.APIURL)
	assert.Equal(t, "tok", c.APIToken)
	assert.Equal(t, "proceed", c.MutationPolicy)
}
