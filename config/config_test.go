package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 60, cfg.Dedup.WindowMinutes)
	assert.Equal(t, 1.0, cfg.Dedup.GridKm)
	assert.Equal(t, 90, cfg.Dedup.TTLDays)
	assert.Equal(t, 3, cfg.Strikes.Limit)
	assert.Equal(t, 30*time.Minute, cfg.Strikes.Window)
	assert.Equal(t, 10000, cfg.Query.MaxLimit)
	assert.Equal(t, 5, cfg.Digest.MinReports)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEDUP_WINDOW_MINUTES", "30")
	t.Setenv("DEDUP_GRID_KM", "0.5")
	t.Setenv("STRIKE_BLOCK_DURATION", "4h")
	t.Setenv("QUERY_REQUEST_TIMEOUT", "10s")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Dedup.WindowMinutes)
	assert.Equal(t, 0.5, cfg.Dedup.GridKm)
	assert.Equal(t, 4*time.Hour, cfg.Strikes.BlockDuration)
	assert.Equal(t, 10*time.Second, cfg.Query.RequestTimeout)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DEDUP_WINDOW_MINUTES", "not-a-number")
	t.Setenv("STRIKE_WINDOW", "soon")

	cfg := Load()
	assert.Equal(t, 60, cfg.Dedup.WindowMinutes)
	assert.Equal(t, 30*time.Minute, cfg.Strikes.Window)
}
