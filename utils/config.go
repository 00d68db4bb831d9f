// File: utils/config.go
package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lguibr/eggchef/render"
)

var (
	// ErrInvalidConfig is wrapped by every validation failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrConfigParse is wrapped when a config file cannot be decoded.
	ErrConfigParse = errors.New("config parse error")
)

// Config holds all configurable game parameters.
type Config struct {
	// Canvas & Layout
	CanvasWidth  float64 `yaml:"canvasWidth" json:"canvasWidth"`   // Logical canvas width in pixels
	CanvasHeight float64 `yaml:"canvasHeight" json:"canvasHeight"` // Logical canvas height in pixels
	HenCount     int     `yaml:"henCount" json:"henCount"`         // Hens spread evenly along the top
	HenY         float64 `yaml:"henY" json:"henY"`                 // Where eggs start falling from
	ChefY        float64 `yaml:"chefY" json:"chefY"`               // Height of the chef's basket; eggs land here

	// Chef
	ChefStep         float64       `yaml:"chefStep" json:"chefStep"`                 // Distance covered by one move command
	ChefMoveDuration time.Duration `yaml:"chefMoveDuration" json:"chefMoveDuration"` // Tween length for one move
	CatchRadius      float64       `yaml:"catchRadius" json:"catchRadius"`           // Max horizontal distance for a catch

	// Eggs
	EggLayInterval  time.Duration `yaml:"eggLayInterval" json:"eggLayInterval"`   // Time between two eggs
	EggFallDuration time.Duration `yaml:"eggFallDuration" json:"eggFallDuration"` // Tween length of a fall
	EggSpin         float64       `yaml:"eggSpin" json:"eggSpin"`                 // Degrees an egg rotates while falling

	// Timers
	ReadyCountdown time.Duration `yaml:"readyCountdown" json:"readyCountdown"` // Countdown before play starts
	ReadyTick      time.Duration `yaml:"readyTick" json:"readyTick"`
	GameDuration   time.Duration `yaml:"gameDuration" json:"gameDuration"` // Length of a round
	GameTick       time.Duration `yaml:"gameTick" json:"gameTick"`
	ComboWindow    time.Duration `yaml:"comboWindow" json:"comboWindow"`     // Quiet time that ends a catch streak
	SoundDebounce  time.Duration `yaml:"soundDebounce" json:"soundDebounce"` // Window during which a cue is not repeated

	// Rendering & Transport
	FrameInterval   time.Duration `yaml:"frameInterval" json:"frameInterval"`     // Animation frame period
	BroadcastPeriod time.Duration `yaml:"broadcastPeriod" json:"broadcastPeriod"` // State push period to clients
	EggEase         string        `yaml:"eggEase" json:"eggEase"`
	ChefEase        string        `yaml:"chefEase" json:"chefEase"`

	// Server
	ListenAddr  string        `yaml:"listenAddr" json:"listenAddr"`
	MaxSessions int           `yaml:"maxSessions" json:"maxSessions"`
	AskTimeout  time.Duration `yaml:"askTimeout" json:"askTimeout"`

	// Audio
	SampleRate int     `yaml:"sampleRate" json:"sampleRate"`
	Volume     float64 `yaml:"volume" json:"volume"` // Master volume, 0..1
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	width, height := 480.0, 640.0

	return Config{
		// Canvas & Layout
		CanvasWidth:  width,
		CanvasHeight: height,
		HenCount:     4,
		HenY:         height / 8, // 80
		ChefY:        height - 60,

		// Chef
		ChefStep:         width / 8, // 60
		ChefMoveDuration: 150 * time.Millisecond,
		CatchRadius:      40,

		// Eggs
		EggLayInterval:  1200 * time.Millisecond,
		EggFallDuration: 2 * time.Second,
		EggSpin:         360,

		// Timers
		ReadyCountdown: 3 * time.Second,
		ReadyTick:      time.Second,
		GameDuration:   60 * time.Second,
		GameTick:       time.Second,
		ComboWindow:    time.Second,
		SoundDebounce:  time.Second,

		// Rendering & Transport
		FrameInterval:   16 * time.Millisecond,
		BroadcastPeriod: 50 * time.Millisecond,
		EggEase:         "inQuad",
		ChefEase:        "outCubic",

		// Server
		ListenAddr:  ":3001",
		MaxSessions: 100,
		AskTimeout:  2 * time.Second,

		// Audio
		SampleRate: 22050,
		Volume:     0.8,
	}
}

// LoadConfig reads a YAML file over the defaults and validates the result.
// Fields missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value time.Duration
	}{
		{"chefMoveDuration", c.ChefMoveDuration},
		{"eggLayInterval", c.EggLayInterval},
		{"eggFallDuration", c.EggFallDuration},
		{"readyTick", c.ReadyTick},
		{"gameDuration", c.GameDuration},
		{"gameTick", c.GameTick},
		{"comboWindow", c.ComboWindow},
		{"soundDebounce", c.SoundDebounce},
		{"frameInterval", c.FrameInterval},
		{"broadcastPeriod", c.BroadcastPeriod},
		{"askTimeout", c.AskTimeout},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidConfig, p.name, p.value)
		}
	}

	switch {
	case c.ReadyCountdown < 0:
		return fmt.Errorf("%w: readyCountdown must not be negative", ErrInvalidConfig)
	case c.CanvasWidth <= 0 || c.CanvasHeight <= 0:
		return fmt.Errorf("%w: canvas must be positive, got %vx%v", ErrInvalidConfig, c.CanvasWidth, c.CanvasHeight)
	case c.HenCount < 1:
		return fmt.Errorf("%w: henCount must be at least 1", ErrInvalidConfig)
	case c.HenY < 0 || c.ChefY <= c.HenY || c.ChefY > c.CanvasHeight:
		return fmt.Errorf("%w: need 0 <= henY < chefY <= canvasHeight", ErrInvalidConfig)
	case c.ChefStep <= 0 || c.CatchRadius <= 0:
		return fmt.Errorf("%w: chefStep and catchRadius must be positive", ErrInvalidConfig)
	case c.MaxSessions < 1:
		return fmt.Errorf("%w: maxSessions must be at least 1", ErrInvalidConfig)
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sampleRate must be positive", ErrInvalidConfig)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("%w: volume must be within [0, 1]", ErrInvalidConfig)
	}

	for _, name := range []string{c.EggEase, c.ChefEase} {
		if _, err := render.EaseByName(name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}
