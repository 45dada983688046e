// Package config loads the layout description from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"flexpanes/internal/layout"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// ErrNoPanels is returned when the configured children contain no panel.
var ErrNoPanels = errors.New("layout has no panels")

// Config holds application configuration.
type Config struct {
	Layout   LayoutConfig
	Children []Child
}

// LayoutConfig holds engine options.
type LayoutConfig struct {
	Axis                string
	Reversed            bool
	ThrottleMS          int
	SeparatorSize       int
	DoubleClickPosition float64 // cells from the container start; 0 = middle
	Mockup              bool
}

// Child is one declared child plus what the host shows inside panels.
type Child struct {
	ID           string  `mapstructure:"id"`
	Title        string  `mapstructure:"title"`
	Role         string  `mapstructure:"role"`
	Fixed        bool    `mapstructure:"fixed"`
	FixedWidth   float64 `mapstructure:"fixed_width"`
	FixedHeight  float64 `mapstructure:"fixed_height"`
	Proportion   float64 `mapstructure:"proportion"`
	Size         float64 `mapstructure:"size"`
	CollapseSize float64 `mapstructure:"collapse_size"`

	Text     string `mapstructure:"text"`
	File     string `mapstructure:"file"`
	Command  string `mapstructure:"command"`
	Activity bool   `mapstructure:"activity"` // show recent layout interactions
}

// Descriptor converts c to the engine's view of it.
func (c Child) Descriptor() layout.ChildDescriptor {
	return layout.ChildDescriptor{
		ID:           c.ID,
		Title:        c.Title,
		Role:         layout.Role(strings.ToLower(c.Role)),
		Fixed:        c.Fixed,
		FixedWidth:   c.FixedWidth,
		FixedHeight:  c.FixedHeight,
		Proportion:   c.Proportion,
		Size:         c.Size,
		CollapseSize: c.CollapseSize,
	}
}

// Descriptors converts all children.
func (c Config) Descriptors() []layout.ChildDescriptor {
	out := make([]layout.ChildDescriptor, len(c.Children))
	for i, ch := range c.Children {
		out[i] = ch.Descriptor()
	}
	return out
}

// AxisValue parses Layout.Axis.
func (c Config) AxisValue() (layout.Axis, error) {
	return layout.ParseAxis(c.Layout.Axis)
}

// Throttle returns the separator refresh interval.
func (c Config) Throttle() time.Duration {
	return time.Duration(c.Layout.ThrottleMS) * time.Millisecond
}

// DefaultChildren is the layout used when the config declares none: a
// sidebar, a main area and a log panel.
func DefaultChildren() []Child {
	return []Child{
		{ID: "sidebar", Title: "Sidebar", Role: "panel", Proportion: 1, CollapseSize: 3,
			Text: "Drag the separators with the mouse.\nDouble-click one to reset it."},
		{Role: "separator"},
		{ID: "main", Title: "Main", Role: "panel", Proportion: 3,
			Text: "Drag a panel title onto another panel to swap them.\nPress space for key bindings."},
		{Role: "separator"},
		{ID: "log", Title: "Activity", Role: "panel", Proportion: 2, CollapseSize: 3,
			Activity: true},
	}
}

// Load reads configuration from path, or from the default location when path
// is empty. Env var overrides use prefix FLEXPANES_ (e.g. FLEXPANES_LAYOUT_AXIS).
// A missing default file is not an error; a missing explicit file is.
func Load(path string) (Config, error) {
	v, err := newViper(path)
	if err != nil {
		return Config{}, err
	}
	return decode(v)
}

// Watch calls onChange with the re-read configuration every time the file
// backing it is written. Decode and validation errors are passed to onChange
// instead of a Config. Without a config file there is nothing to watch and
// Watch returns nil. onChange runs on the watcher's goroutine.
func Watch(path string, onChange func(Config, error)) error {
	v, err := newViper(path)
	if err != nil {
		return err
	}
	if v.ConfigFileUsed() == "" {
		return nil
	}
	v.OnConfigChange(func(fsnotify.Event) {
		onChange(decode(v))
	})
	v.WatchConfig()
	return nil
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("layout.axis", "horizontal")
	v.SetDefault("layout.reversed", false)
	v.SetDefault("layout.throttle_ms", 0)
	v.SetDefault("layout.separator_size", 1)
	v.SetDefault("layout.double_click_position", 0)
	v.SetDefault("layout.mockup", false)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv("FLEXPANES_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "flexpanes"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FLEXPANES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

func decode(v *viper.Viper) (Config, error) {
	cfg := Config{
		Layout: LayoutConfig{
			Axis:                v.GetString("layout.axis"),
			Reversed:            v.GetBool("layout.reversed"),
			ThrottleMS:          v.GetInt("layout.throttle_ms"),
			SeparatorSize:       v.GetInt("layout.separator_size"),
			DoubleClickPosition: v.GetFloat64("layout.double_click_position"),
			Mockup:              v.GetBool("layout.mockup"),
		},
	}
	if err := v.UnmarshalKey("children", &cfg.Children); err != nil {
		return Config{}, fmt.Errorf("decode children: %w", err)
	}
	if len(cfg.Children) == 0 {
		cfg.Children = DefaultChildren()
	}
	cfg.assignIDs()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the program cannot start with. Odd child
// attributes are left for the engine to tolerate.
func (c Config) Validate() error {
	if _, err := c.AxisValue(); err != nil {
		return fmt.Errorf("layout.axis: %w", err)
	}
	for _, ch := range c.Children {
		if layout.Role(strings.ToLower(ch.Role)) == layout.RolePanel {
			return nil
		}
	}
	return ErrNoPanels
}

func (c *Config) assignIDs() {
	for i := range c.Children {
		if c.Children[i].ID == "" {
			c.Children[i].ID = uuid.NewString()
		}
	}
}
