package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marqueekit/marquee/internal/entry"
)

func TestDefaultDaemonConfig(t *testing.T) {
	cfg := DefaultDaemonConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, string(PositionTopCenter), cfg.Display.Position)
	assert.Equal(t, 400, cfg.Display.Width)
	assert.Equal(t, 10*time.Second, cfg.Timeouts.Normal.Duration())
	assert.Zero(t, cfg.Timeouts.Max.Duration())
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"5s", 5 * time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"0", 0, false},
		{"1500", 1500 * time.Millisecond, false}, // integer milliseconds
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestLoadDaemonConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marqueed.toml")

	content := `
[display]
position = "bottom-right"
width = 320

[timeouts]
normal = "3s"
max = "0"

[audio]
enabled = true
volume = 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadDaemonConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "bottom-right", cfg.Display.Position)
	assert.Equal(t, 320, cfg.Display.Width)
	assert.Equal(t, 3*time.Second, cfg.Timeouts.Normal.Duration())
	// Unset fields keep their defaults.
	assert.Equal(t, 5*time.Second, cfg.Timeouts.Low.Duration())
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 50, cfg.Audio.Volume)
}

func TestLoadDaemonConfig_Missing(t *testing.T) {
	cfg, err := LoadDaemonConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDaemonConfig(), cfg)
}

func TestLoadDaemonConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marqueed.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[display]
position = "sideways"
`), 0600))

	_, err := LoadDaemonConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*DaemonConfig)
	}{
		{"bad position", func(c *DaemonConfig) { c.Display.Position = "middle" }},
		{"width too small", func(c *DaemonConfig) { c.Display.Width = 10 }},
		{"width too large", func(c *DaemonConfig) { c.Display.Width = 5000 }},
		{"volume out of range", func(c *DaemonConfig) { c.Audio.Volume = 150 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultDaemonConfig()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestTimeoutForPriority(t *testing.T) {
	cfg := DefaultDaemonConfig()

	assert.Equal(t, 5*time.Second, cfg.TimeoutForPriority(entry.PriorityLow))
	assert.Equal(t, 10*time.Second, cfg.TimeoutForPriority(entry.PriorityNormal))
	assert.Equal(t, 20*time.Second, cfg.TimeoutForPriority(entry.PriorityHigh))
	assert.Zero(t, cfg.TimeoutForPriority(entry.PriorityMax))
}

func TestWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marqueed.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0600))

	reloaded := make(chan *DaemonConfig, 4)
	w, err := NewWatcher(path, nil, func(cfg *DaemonConfig) { reloaded <- cfg })
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`
[display]
position = "top-left"
`), 0600))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "top-left", cfg.Display.Position)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher never delivered reloaded config")
	}
}
