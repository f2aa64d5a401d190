package interact

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables of a Controller. Every field has a documented
// default; start from DefaultConfig and override what you need.
type Config struct {
	// ShadowColor and ShadowRadius describe the shadow drawn while the body
	// is being dragged. Defaults: gray, 5.
	ShadowColor  Color   `yaml:"shadow_color"`
	ShadowRadius float64 `yaml:"shadow_radius"`

	// HandleSize is the hit and draw size of every handle. Default 30×30.
	HandleSize Vec2 `yaml:"handle_size"`

	// RadialOffset is the distance from the element's top edge to the
	// rotation handle's resting position. Default 50.
	RadialOffset float64 `yaml:"radial_offset"`

	// VelocityScale multiplies measured drag velocities before they are
	// handed to a velocity model. Default 0.5.
	VelocityScale float64 `yaml:"velocity_scale"`

	// CoastThreshold and SpinThreshold are the release speeds a throw or a
	// spin must exceed to start coasting. Default 0.
	CoastThreshold float64 `yaml:"coast_threshold"`
	SpinThreshold  float64 `yaml:"spin_threshold"`

	// CoastStopBelow and SpinStopBelow stop a running integrator once the
	// model's speed falls below them. Default 0 (coast until interrupted).
	CoastStopBelow float64 `yaml:"coast_stop_below"`
	SpinStopBelow  float64 `yaml:"spin_stop_below"`

	// TickPeriod is the integrator step. Default 5ms.
	TickPeriod time.Duration `yaml:"tick_period"`

	// MinSize is the smallest width or height resizing and magnification
	// may produce. Default 1.
	MinSize float64 `yaml:"min_size"`

	// MinMagnification is the smallest live pinch factor. Default 0.001.
	MinMagnification float64 `yaml:"min_magnification"`

	// YAxis is the convention of incoming translations. Default YDown.
	YAxis YAxis `yaml:"y_axis"`

	// DragMinDistance is the movement a body drag needs before it starts;
	// HandleMinDistance is the same for resize and rotation handles.
	// Defaults: 5 and 0.
	DragMinDistance   float64 `yaml:"drag_min_distance"`
	HandleMinDistance float64 `yaml:"handle_min_distance"`

	// OverlayFade is the duration of the handle overlay fade when selection
	// toggles. Default 200ms; zero switches instantly.
	OverlayFade time.Duration `yaml:"overlay_fade"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		ShadowColor:       ColorGray,
		ShadowRadius:      5,
		HandleSize:        Vec2{30, 30},
		RadialOffset:      50,
		VelocityScale:     0.5,
		TickPeriod:        DefaultTickPeriod,
		MinSize:           1,
		MinMagnification:  minScaleFactor,
		YAxis:             YDown,
		DragMinDistance:   5,
		HandleMinDistance: 0,
		OverlayFade:       200 * time.Millisecond,
	}
}

// Validate reports the first field outside its allowed range.
func (c Config) Validate() error {
	switch {
	case c.TickPeriod <= 0:
		return fmt.Errorf("tick_period must be positive, got %v", c.TickPeriod)
	case c.MinSize <= 0:
		return fmt.Errorf("min_size must be positive, got %v", c.MinSize)
	case c.MinMagnification <= 0:
		return fmt.Errorf("min_magnification must be positive, got %v", c.MinMagnification)
	case c.HandleSize.X <= 0 || c.HandleSize.Y <= 0:
		return fmt.Errorf("handle_size must be positive, got %v", c.HandleSize)
	case c.VelocityScale < 0:
		return fmt.Errorf("velocity_scale must not be negative, got %v", c.VelocityScale)
	case c.CoastThreshold < 0 || c.SpinThreshold < 0:
		return errors.New("coast and spin thresholds must not be negative")
	case c.CoastStopBelow < 0 || c.SpinStopBelow < 0:
		return errors.New("coast and spin stop speeds must not be negative")
	case c.DragMinDistance < 0 || c.HandleMinDistance < 0:
		return errors.New("minimum gesture distances must not be negative")
	case c.ShadowRadius < 0:
		return fmt.Errorf("shadow_radius must not be negative, got %v", c.ShadowRadius)
	case c.OverlayFade < 0:
		return fmt.Errorf("overlay_fade must not be negative, got %v", c.OverlayFade)
	}
	return nil
}

// LoadConfig reads a YAML (or JSON) document on top of DefaultConfig and
// validates the result. Durations are written as Go duration strings
// ("5ms").
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// UnmarshalYAML accepts "down" or "up".
func (a *YAxis) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down", "":
		*a = YDown
	case "up":
		*a = YUp
	default:
		return fmt.Errorf("unknown y_axis %q (want down or up)", s)
	}
	return nil
}

// MarshalYAML writes the axis as "down" or "up".
func (a YAxis) MarshalYAML() (any, error) {
	if a == YUp {
		return "up", nil
	}
	return "down", nil
}

// yamlVec2 and yamlColor give the plain structs lower-case YAML keys.
type yamlVec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// UnmarshalYAML accepts {x: .., y: ..}.
// A missing key keeps its current value.
func (v *Vec2) UnmarshalYAML(value *yaml.Node) error {
	p := yamlVec2(*v)
	if err := value.Decode(&p); err != nil {
		return err
	}
	*v = Vec2(p)
	return nil
}

type yamlColor struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// UnmarshalYAML accepts {r, g, b, a}; a missing alpha means opaque.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	p := yamlColor{A: 1}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = Color(p)
	return nil
}
