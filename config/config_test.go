package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventbooking/internal/domain"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(EnvDevelopment, envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, defaultDBUrl, cfg.DBUrl)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 1, cfg.TrustedProxyCount)
	assert.Equal(t, domain.PolicyCompletedClient, cfg.TestimonialPolicy)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(EnvProduction, envMap(map[string]string{
		"DATABASE_URL":             "postgres://db/prod",
		"PORT":                     "9000",
		"JWT_SECRET":               "prod-secret",
		"JWT_EXPIRY":               "12h",
		"REQUEST_TIMEOUT":          "3s",
		"TRUSTED_PROXY_COUNT":      "2",
		"TESTIMONIAL_POLICY":       "OPEN",
		"CORS_ALLOWED_ORIGINS":     "https://a.example.com, https://b.example.com,",
		"EMAIL_PROVIDER":           "SES",
		"EMAIL_FROM_ADDRESS":       "noreply@example.com",
		"AWS_REGION":               "eu-west-1",
		"SES_INSECURE_SKIP_VERIFY": "true",
		"NOTIFY_EMAIL":             " owner@example.com ",
	}))
	require.NoError(t, err)

	assert.Equal(t, "postgres://db/prod", cfg.DBUrl)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 12*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2, cfg.TrustedProxyCount)
	assert.Equal(t, domain.PolicyOpen, cfg.TestimonialPolicy)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "ses", cfg.Email.Provider)
	assert.Equal(t, "eu-west-1", cfg.Email.AWSRegion)
	assert.True(t, cfg.Email.SESInsecureSkipVerify)
	assert.Equal(t, "owner@example.com", cfg.NotifyEmail)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  string
		vars map[string]string
	}{
		{"production without secret", EnvProduction, nil},
		{"bad expiry", EnvDevelopment, map[string]string{"JWT_EXPIRY": "soon"}},
		{"negative timeout", EnvDevelopment, map[string]string{"REQUEST_TIMEOUT": "-1s"}},
		{"bad proxy count", EnvDevelopment, map[string]string{"TRUSTED_PROXY_COUNT": "many"}},
		{"bad bool", EnvDevelopment, map[string]string{"SES_INSECURE_SKIP_VERIFY": "maybe"}},
		{"unknown policy", EnvDevelopment, map[string]string{"TESTIMONIAL_POLICY": "anyone"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := FromEnv(tt.env, envMap(tt.vars))
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, EnvProduction, "warn").Info("hidden")
	assert.Empty(t, buf.String())

	NewLogger(&buf, EnvProduction, "warn").Warn("shown", "k", "v")
	assert.True(t, strings.HasPrefix(buf.String(), "{"))
	assert.Contains(t, buf.String(), `"k":"v"`)

	buf.Reset()
	NewLogger(&buf, EnvDevelopment, "").Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
