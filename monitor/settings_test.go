package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/trainspeed/pkg/config"
)

func TestEditConfig(t *testing.T) {
	tests := []struct {
		name   string
		edit   func(c *config.Config)
		errMsg string
	}{
		{"valid period", func(c *config.Config) { c.Mock.Period = 3 * time.Second }, ""},
		{"zero period", func(c *config.Config) { c.Mock.Period = 0 }, "mock.period"},
		{"min above max", func(c *config.Config) {
			c.Mock.Period = 3 * time.Second
			c.Detector.MinKMH = 500
		}, "max_kmh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "config.yaml")
			cfg := config.Default()
			before := *cfg

			err := editConfig(cfg, file, tt.edit)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Equal(t, before, *cfg)
				_, statErr := os.Stat(file)
				assert.True(t, os.IsNotExist(statErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 3*time.Second, cfg.Mock.Period)

			loaded, err := config.Load(file)
			require.NoError(t, err)
			assert.Equal(t, *cfg, *loaded)
		})
	}
}

func TestEditConfig_SaveError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "missing", "config.yaml")
	cfg := config.Default()
	before := *cfg

	err := editConfig(cfg, file, func(c *config.Config) { c.Mock.SpeedKMH = 90 })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save config")
	assert.Equal(t, before, *cfg)
}
