// Package config implements the startup configuration and window-quirk
// file: resolved settings loaded once via viper, a yaml-decoded quirk
// table, and an fsnotify watch that re-parses the quirk file on edit.
package config

import (
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"driftwl/outputmodel"
	"driftwl/surface"
	"driftwl/zone"
)

// Config is the resolved startup configuration.
type Config struct {
	GestureMod string // "Super" (default) or "Ctrl"/"Alt" in nested mode
	Nested     bool

	Zone zone.Config

	// PointerSpeed is the relative-pointer multiplier applied to motion
	// deltas before they reach the interaction state machine.
	PointerSpeed float64

	KeyboardLayout string
	RepeatRate     int
	RepeatDelay    int

	Placement []outputmodel.PlacementRule

	QuirkFile string
}

func defaults() *viper.Viper {
	v := viper.New()
	v.SetDefault("gesture_mod", "Super")
	v.SetDefault("nested", false)
	v.SetDefault("zone.horizontal", 3)
	v.SetDefault("zone.vertical", 2)
	v.SetDefault("zone.leeway_x", 10)
	v.SetDefault("zone.leeway_y", 10)
	v.SetDefault("zone.inner", 8)
	v.SetDefault("zone.outer_left", 4)
	v.SetDefault("zone.outer_top", 4)
	v.SetDefault("zone.outer_right", 4)
	v.SetDefault("zone.outer_bottom", 4)
	v.SetDefault("pointer_speed", 1.0)
	v.SetDefault("keyboard_layout", "us")
	v.SetDefault("repeat_rate", 25)
	v.SetDefault("repeat_delay", 600)
	return v
}

// Load reads path (if it exists) over the defaults above and returns the
// resolved Config. A missing path is not an error: defaults alone are a
// valid state for a freshly installed instance.
func Load(path string) (*Config, error) {
	v := defaults()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var placement []outputmodel.PlacementRule
	if err := v.UnmarshalKey("placement", &placement); err != nil {
		return nil, err
	}

	return &Config{
		GestureMod: v.GetString("gesture_mod"),
		Nested:     v.GetBool("nested"),
		Zone: zone.Config{
			Horizontal: v.GetInt("zone.horizontal"),
			Vertical:   v.GetInt("zone.vertical"),
			LeewayX:    v.GetInt("zone.leeway_x"),
			LeewayY:    v.GetInt("zone.leeway_y"),
			Inner:      v.GetInt("zone.inner"),
			Outer: zone.Padding{
				Left:   v.GetInt("zone.outer_left"),
				Top:    v.GetInt("zone.outer_top"),
				Right:  v.GetInt("zone.outer_right"),
				Bottom: v.GetInt("zone.outer_bottom"),
			},
		},
		PointerSpeed:   v.GetFloat64("pointer_speed"),
		KeyboardLayout: v.GetString("keyboard_layout"),
		RepeatRate:     v.GetInt("repeat_rate"),
		RepeatDelay:    v.GetInt("repeat_delay"),
		Placement:      placement,
		QuirkFile:      v.GetString("quirk_file"),
	}, nil
}

// quirkFile is the on-disk shape of the yaml quirk file, keyed by app_id.
type quirkFile struct {
	Apps map[string]struct {
		Float   bool    `yaml:"float"`
		NoZone  bool    `yaml:"no_zone"`
		Opacity float32 `yaml:"opacity"`
	} `yaml:"apps"`
}

// LoadQuirks decodes path into a per-app-id quirk table. An empty app_id
// never appears as a key, so a surface with no app_id always misses the
// lookup rather than matching a stray blank entry.
func LoadQuirks(path string) (map[string]surface.Quirks, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]surface.Quirks{}, nil
		}
		return nil, err
	}

	var file quirkFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	out := make(map[string]surface.Quirks, len(file.Apps))
	for appID, q := range file.Apps {
		if appID == "" {
			continue
		}
		out[appID] = surface.Quirks{Float: q.Float, NoZone: q.NoZone, Opacity: q.Opacity}
	}
	return out, nil
}

// WatchQuirks watches path for writes and invokes onChange with the
// freshly reloaded quirk table. Only the quirk table reloads; bindings
// and output/backend state do not. The caller must close the
// returned watcher to stop.
func WatchQuirks(path string, onChange func(map[string]surface.Quirks)) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}

	go func() {
		for event := range w.Events {
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			quirks, err := LoadQuirks(path)
			if err != nil {
				continue
			}
			onChange(quirks)
		}
	}()

	return w, nil
}
