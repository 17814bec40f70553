package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, 15000, cfg.TimeoutMs)
	assert.False(t, cfg.StrictQuantity)
	assert.NotEmpty(t, cfg.DBPath)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PRDESK_API_URL", "https://approvals.example.com/")
	t.Setenv("PRDESK_TIMEOUT_MS", "2500")
	t.Setenv("PRDESK_STRICT_QUANTITY", "true")
	t.Setenv("PRDESK_DB", ":memory:")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://approvals.example.com", cfg.BaseURL)
	assert.Equal(t, 2500, cfg.TimeoutMs)
	assert.True(t, cfg.StrictQuantity)
	assert.Equal(t, ":memory:", cfg.DBPath)
}

func TestStreamURL_DerivedFromBase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "http://10.0.0.5:8080"
	u, err := cfg.StreamURL()
	require.NoError(t, err)
	assert.Equal(t, "ws://10.0.0.5:8080/ws/notifications/", u)

	cfg.BaseURL = "https://approvals.example.com"
	u, err = cfg.StreamURL()
	require.NoError(t, err)
	assert.Equal(t, "wss://approvals.example.com/ws/notifications/", u)
}

func TestStreamURL_ExplicitWSURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WSURL = "wss://push.example.com"
	u, err := cfg.StreamURL()
	require.NoError(t, err)
	assert.Equal(t, "wss://push.example.com/ws/notifications/", u)
}
