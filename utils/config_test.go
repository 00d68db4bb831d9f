// File: utils/config_test.go
package utils

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eggchef.yaml")
	writeFile(t, path, `
henCount: 6
gameDuration: 90s
comboWindow: 750ms
eggEase: outBounce
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.HenCount)
	assert.Equal(t, 90*time.Second, cfg.GameDuration)
	assert.Equal(t, 750*time.Millisecond, cfg.ComboWindow)
	assert.Equal(t, "outBounce", cfg.EggEase)
	assert.Equal(t, DefaultConfig().CanvasWidth, cfg.CanvasWidth, "unset fields keep defaults")
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "henCount: [1, 2")
	_, err = LoadConfig(bad)
	assert.ErrorIs(t, err, ErrConfigParse)

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "gameTick: 0s\n")
	_, err = LoadConfig(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_Validate(t *testing.T) {
	cases := map[string]func(c *Config){
		"negative countdown": func(c *Config) { c.ReadyCountdown = -time.Second },
		"zero frame":         func(c *Config) { c.FrameInterval = 0 },
		"no hens":            func(c *Config) { c.HenCount = 0 },
		"chef above hens":    func(c *Config) { c.ChefY = c.HenY },
		"loud":               func(c *Config) { c.Volume = 1.5 },
		"unknown ease":       func(c *Config) { c.ChefEase = "wobble" },
		"no sessions":        func(c *Config) { c.MaxSessions = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eggchef.yaml")
	writeFile(t, path, "henCount: 2\n")

	var mu sync.Mutex
	var seen []int
	w, err := NewWatcher(path, 20*time.Millisecond, func(c Config) {
		mu.Lock()
		seen = append(seen, c.HenCount)
		mu.Unlock()
	})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()
	assert.Equal(t, 2, w.Current().HenCount)

	writeFile(t, path, "henCount: [broken\n")
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 2, w.Current().HenCount, "invalid file is ignored")

	writeFile(t, path, "henCount: 5\n")
	assert.Eventually(t, func() bool { return w.Current().HenCount == 5 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0 && seen[len(seen)-1] == 5
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "left", DirectionFromString("ArrowLeft"))
	assert.Equal(t, "right", DirectionFromString("right"))
	assert.Equal(t, "", DirectionFromString("ArrowUp"))

	assert.Equal(t, 0.0, Clamp(-5, 0, 10))
	assert.Equal(t, 10.0, Clamp(50, 0, 10))
	assert.Equal(t, []float64{50, 150, 250, 350}, Spread(4, 400))
	assert.Nil(t, Spread(0, 400))
}
