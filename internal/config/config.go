package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/wari-market/wari/internal/viewport"
)

// Config represents the complete application configuration
type Config struct {
	Window  WindowConfig  `mapstructure:"window"`
	Map     MapConfig     `mapstructure:"map"`
	Content ContentConfig `mapstructure:"content"`
	Logging LoggingConfig `mapstructure:"logging"`
	Locale  string        `mapstructure:"locale"`
}

// WindowConfig controls the application window
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// MapConfig tunes the zoomable map widget
type MapConfig struct {
	// MinScale and MaxScale bound the magnification (default: 1 and 4)
	MinScale float64 `mapstructure:"min_scale"`
	MaxScale float64 `mapstructure:"max_scale"`
	// Step is the scale change per button click or wheel notch (default: 0.5)
	Step float64 `mapstructure:"step"`
	// PinchSensitivity converts pinch distance change in pixels into scale (default: 0.01)
	PinchSensitivity float64 `mapstructure:"pinch_sensitivity"`
	// TransitionMs is the duration of animated zoom changes (default: 300)
	TransitionMs int `mapstructure:"transition_ms"`
	// Image is an optional backdrop; a drawn outline is used when empty or unreadable
	Image string `mapstructure:"image"`
}

// ContentConfig points at page content
type ContentConfig struct {
	// File overrides the embedded content when set
	File string `mapstructure:"file"`
	// AssetsDir resolves relative image paths found in the content
	AssetsDir string `mapstructure:"assets_dir"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	vp := viewport.DefaultConfig()
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
			Title:  "WARI Market",
		},
		Map: MapConfig{
			MinScale:         vp.MinScale,
			MaxScale:         vp.MaxScale,
			Step:             vp.Step,
			PinchSensitivity: vp.PinchSensitivity,
			TransitionMs:     int(vp.TransitionDuration / time.Millisecond),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Locale: "es-PE",
	}
}

// SetDefaults registers the default values with viper
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("map.min_scale", d.Map.MinScale)
	v.SetDefault("map.max_scale", d.Map.MaxScale)
	v.SetDefault("map.step", d.Map.Step)
	v.SetDefault("map.pinch_sensitivity", d.Map.PinchSensitivity)
	v.SetDefault("map.transition_ms", d.Map.TransitionMs)
	v.SetDefault("map.image", d.Map.Image)
	v.SetDefault("content.file", d.Content.File)
	v.SetDefault("content.assets_dir", d.Content.AssetsDir)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("locale", d.Locale)
}

// New returns a viper instance with defaults, the WARI_ environment prefix and,
// when path is non-empty, the given config file.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("WARI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	return v, nil
}

// Load reads the configuration from viper and validates it
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks value ranges
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Map.MinScale < 1 {
		errs = append(errs, fmt.Errorf("map.min_scale %g must be at least 1", c.Map.MinScale))
	}
	if c.Map.MaxScale < c.Map.MinScale {
		errs = append(errs, fmt.Errorf("map.max_scale %g is below map.min_scale %g", c.Map.MaxScale, c.Map.MinScale))
	}
	if c.Map.Step <= 0 {
		errs = append(errs, fmt.Errorf("map.step %g must be positive", c.Map.Step))
	}
	if c.Map.PinchSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("map.pinch_sensitivity %g must be positive", c.Map.PinchSensitivity))
	}
	if c.Map.TransitionMs < 0 {
		errs = append(errs, fmt.Errorf("map.transition_ms %d must not be negative", c.Map.TransitionMs))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Viewport converts the map settings into controller parameters
func (c *Config) Viewport() viewport.Config {
	return viewport.Config{
		MinScale:           c.Map.MinScale,
		MaxScale:           c.Map.MaxScale,
		Step:               c.Map.Step,
		PinchSensitivity:   c.Map.PinchSensitivity,
		TransitionDuration: time.Duration(c.Map.TransitionMs) * time.Millisecond,
	}
}
