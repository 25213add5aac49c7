// Package config reads scaleview settings from TOML files, SCALEVIEW_*
// environment variables and command line flags.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"scaleview/internal/scale"
)

const EnvPrefix = "SCALEVIEW"

type Timing struct {
	Duration time.Duration `mapstructure:"duration"`
	Easing   string        `mapstructure:"easing"`
}

// Axis is the file form of scale.AxisConfig. Bounds are "off", "auto" or
// a number; zoom bounds are in domain units per pixel.
type Axis struct {
	DomainMin       string  `mapstructure:"domain-min"`
	DomainMax       string  `mapstructure:"domain-max"`
	ZoomMin         string  `mapstructure:"zoom-min"`
	ZoomMax         string  `mapstructure:"zoom-max"`
	PadAbsolute     float64 `mapstructure:"pad-absolute"`
	PadProportional float64 `mapstructure:"pad-proportional"`
	Tracking        bool    `mapstructure:"tracking"`
	Gestures        bool    `mapstructure:"gestures"`
	AutoFit         bool    `mapstructure:"autofit"`
}

type Coast struct {
	MinSpeed     float64 `mapstructure:"min-speed"`
	Deceleration float64 `mapstructure:"deceleration"`
}

type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
	JSON  bool   `mapstructure:"json"`
}

type Config struct {
	X Axis `mapstructure:"x"`
	Y Axis `mapstructure:"y"`

	PreserveAspect bool    `mapstructure:"preserve-aspect"`
	AspectRatio    float64 `mapstructure:"aspect-ratio"`
	AlignX         float64 `mapstructure:"align-x"`
	AlignY         float64 `mapstructure:"align-y"`

	Rescale            Timing `mapstructure:"rescale"`
	Rebound            Timing `mapstructure:"rebound"`
	InteractionRebound Timing `mapstructure:"interaction-rebound"`

	Coast     Coast   `mapstructure:"coast"`
	WheelZoom float64 `mapstructure:"wheel-zoom"`

	FrameInterval time.Duration `mapstructure:"frame-interval"`
	MarkerRadius  float64       `mapstructure:"marker-radius"`

	Log Log `mapstructure:"log"`
}

var defaults = map[string]any{
	"x.domain-min":                 "off",
	"x.domain-max":                 "off",
	"x.zoom-min":                   "auto",
	"x.zoom-max":                   "auto",
	"x.pad-absolute":               0.0,
	"x.pad-proportional":           0.0,
	"x.tracking":                   false,
	"x.gestures":                   true,
	"x.autofit":                    false,
	"y.domain-min":                 "off",
	"y.domain-max":                 "off",
	"y.zoom-min":                   "auto",
	"y.zoom-max":                   "auto",
	"y.pad-absolute":               0.0,
	"y.pad-proportional":           0.0,
	"y.tracking":                   false,
	"y.gestures":                   true,
	"y.autofit":                    false,
	"preserve-aspect":              true,
	"aspect-ratio":                 1.0,
	"align-x":                      0.5,
	"align-y":                      0.5,
	"rescale.duration":             250 * time.Millisecond,
	"rescale.easing":               "in-out-quad",
	"rebound.duration":             250 * time.Millisecond,
	"rebound.easing":               "out-cubic",
	"interaction-rebound.duration": 500 * time.Millisecond,
	"interaction-rebound.easing":   "out-cubic",
	"coast.min-speed":              0.05,
	"coast.deceleration":           0.002,
	"wheel-zoom":                   1.2,
	"frame-interval":               16 * time.Millisecond,
	"marker-radius":                1.0,
	"log.level":                    "info",
	"log.file":                     "",
	"log.json":                     false,
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string][]string{
	"log-level":       {"log.level"},
	"log-file":        {"log.file"},
	"log-json":        {"log.json"},
	"x-tracking":      {"x.tracking"},
	"y-tracking":      {"y.tracking"},
	"autofit":         {"x.autofit", "y.autofit"},
	"preserve-aspect": {"preserve-aspect"},
	"frame-interval":  {"frame-interval"},
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

// Flags registers the flags BindFlags knows about.
func Flags(fs *pflag.FlagSet) {
	fs.String("config", "", "configuration file (TOML)")
	fs.String("log-level", "info", "log level: panic, fatal, error, warn, info, debug, trace")
	fs.String("log-file", "", "write log entries to this file")
	fs.Bool("log-json", false, "log as JSON")
	fs.Bool("x-tracking", false, "keep the x window anchored to live data")
	fs.Bool("y-tracking", false, "keep the y window anchored to live data")
	fs.Bool("autofit", false, "refit whenever the data changes, until the first interaction")
	fs.Bool("preserve-aspect", true, "keep x and y units per pixel in ratio when fitting")
	fs.Duration("frame-interval", 16*time.Millisecond, "interval between animation frames")
}

// BindFlags binds the registered flags present in fs to v.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, keys := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		for _, k := range keys {
			if err := v.BindPFlag(k, f); err != nil {
				return fmt.Errorf("config: bind flag %s: %w", name, err)
			}
		}
	}
	return nil
}

// Load reads the file at path, if any, into v and decodes the result.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return Decode(v)
}

// Parse decodes TOML from r over the defaults.
func Parse(r io.Reader) (Config, error) {
	v := New()
	if err := v.ReadConfig(r); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	return Decode(v)
}

func Decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return c, nil
}

func Default() Config {
	c, err := Decode(New())
	if err != nil {
		panic(err)
	}
	return c
}

// Scale converts c into an engine configuration.
func (c Config) Scale() (scale.Config, error) {
	var (
		out scale.Config
		err error
	)
	if out.X, err = c.X.scale("x"); err != nil {
		return out, err
	}
	if out.Y, err = c.Y.scale("y"); err != nil {
		return out, err
	}
	out.PreserveAspectRatio = c.PreserveAspect
	out.FitAspectRatio = c.AspectRatio
	out.FitAlign = [2]float64{c.AlignX, c.AlignY}
	for _, t := range []struct {
		name string
		in   Timing
		dst  *scale.Timing
	}{
		{"rescale", c.Rescale, &out.Rescale},
		{"rebound", c.Rebound, &out.Rebound},
		{"interaction-rebound", c.InteractionRebound, &out.InteractionRebound},
	} {
		e, err := scale.ParseEasing(t.in.Easing)
		if err != nil {
			return out, fmt.Errorf("%s.easing: %w", t.name, err)
		}
		*t.dst = scale.Timing{Duration: t.in.Duration, Easing: e}
	}
	out.CoastMinSpeed = c.Coast.MinSpeed
	out.CoastDeceleration = c.Coast.Deceleration
	out.WheelZoom = c.WheelZoom
	return out, nil
}

func (a Axis) scale(name string) (scale.AxisConfig, error) {
	out := scale.AxisConfig{
		Padding:        scale.Padding{Absolute: a.PadAbsolute, Proportional: a.PadProportional},
		DomainTracking: a.Tracking,
		Gestures:       a.Gestures,
		AutoFit:        a.AutoFit,
	}
	for _, b := range []struct {
		key string
		in  string
		dst *scale.Bound
	}{
		{"domain-min", a.DomainMin, &out.DomainBounds.Min},
		{"domain-max", a.DomainMax, &out.DomainBounds.Max},
		{"zoom-min", a.ZoomMin, &out.ZoomBounds.Min},
		{"zoom-max", a.ZoomMax, &out.ZoomBounds.Max},
	} {
		v, err := scale.ParseBound(b.in)
		if err != nil {
			return out, fmt.Errorf("%s.%s: %w", name, b.key, err)
		}
		*b.dst = v
	}
	return out, nil
}
