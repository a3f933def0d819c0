package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev-secret", cfg.JWT.Secret)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.ExpiresIn.Duration())
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5179"}, cfg.AllowedOrigins)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 60*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"APP_ENV":         "Production",
		"JWT_SECRET":      "s3cr3t",
		"JWT_EXPIRES_IN":  "12h",
		"ALLOWED_ORIGINS": "https://app.example.com",
		"DB_DRIVER":       "mysql",
		"REDIS_DB":        "2",
		"RESET_DB":        "true",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpiresIn.Duration())
	assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.True(t, cfg.Database.Reset)
}

func TestLoadFrom_InvalidLifetime(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_EXPIRES_IN": "soon",
	}))
	assert.Error(t, err)
}

func TestParseLifetime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: "1d", want: 24 * time.Hour},
		{in: "90m", want: 90 * time.Minute},
		{in: "3600", want: time.Hour},
		{in: " 2h ", want: 2 * time.Hour},
		{in: "", wantErr: true},
		{in: "0", wantErr: true},
		{in: "-1h", wantErr: true},
		{in: "xd", wantErr: true},
		{in: "week", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLifetime(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
