package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, int32(1280), cfg.Window.Width)
	assert.Equal(t, "supported", cfg.Sim.HitTest)
	assert.True(t, cfg.SimSupported())
	assert.Len(t, cfg.Sim.Surfaces, 1)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 800
  height: 600
model:
  asset: models/flower.glb
  spin_deg_per_sec: 90
sim:
  supported: false
  latency_frames: 5
  surfaces:
    - center: [1, 0, -2]
      width: 4
      depth: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int32(800), cfg.Window.Width)
	assert.Equal(t, "models/flower.glb", cfg.Model.Asset)
	assert.Equal(t, float32(90), cfg.Model.SpinDegPerSec)
	assert.False(t, cfg.SimSupported())
	assert.Equal(t, 5, cfg.Sim.LatencyFrames)
	require.Len(t, cfg.Sim.Surfaces, 1)
	assert.Equal(t, [3]float32{1, 0, -2}, cfg.Sim.Surfaces[0].Center)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad hit_test", "sim:\n  hit_test: maybe\n"},
		{"negative latency", "sim:\n  latency_frames: -1\n"},
		{"zero window", "window:\n  width: 0\n"},
		{"flat surface", "sim:\n  surfaces:\n    - center: [0, 0, 0]\n      width: 0\n      depth: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
