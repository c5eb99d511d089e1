package config_test

import (
	"cs-balancer/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Empty(t, cfg.PushURL)
	assert.Equal(t, "cs_balancer", cfg.PushJob)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CSB_FORMAT", "json")
	t.Setenv("CSB_LOG_LEVEL", "debug")
	t.Setenv("CSB_METRICS_ADDR", ":9090")
	t.Setenv("CSB_PUSH_URL", "http://localhost:9091")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, "http://localhost:9091", cfg.PushURL)
}

func TestLoad_InvalidEnv(t *testing.T) {
	tests := map[string]struct {
		key   string
		value string
	}{
		"BadFormat":   {key: "CSB_FORMAT", value: "xml"},
		"BadLogLevel": {key: "CSB_LOG_LEVEL", value: "loud"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := config.Config{Format: "csv", LogLevel: "warn", PushJob: "job"}
	assert.NoError(t, valid.Validate())

	noJob := valid
	noJob.PushJob = ""
	assert.Error(t, noJob.Validate())
}
