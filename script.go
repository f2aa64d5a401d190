package interact

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action    string  `yaml:"action"`
	X         float64 `yaml:"x,omitempty"`
	Y         float64 `yaml:"y,omitempty"`
	FromX     float64 `yaml:"fromX,omitempty"`
	FromY     float64 `yaml:"fromY,omitempty"`
	ToX       float64 `yaml:"toX,omitempty"`
	ToY       float64 `yaml:"toY,omitempty"`
	FromDist  float64 `yaml:"fromDist,omitempty"`
	ToDist    float64 `yaml:"toDist,omitempty"`
	FromAngle float64 `yaml:"fromAngle,omitempty"`
	ToAngle   float64 `yaml:"toAngle,omitempty"`
	Frames    int     `yaml:"frames,omitempty"`
}

// script is the top-level structure of a gesture script.
type script struct {
	Steps []scriptStep `yaml:"steps"`
}

var scriptActions = map[string]bool{
	"press": true, "move": true, "release": true, "tap": true,
	"drag": true, "pinch": true, "wait": true,
}

// ScriptRunner plays a recorded sequence of pointer gestures into a Stage,
// one action per frame once earlier injections have drained. Attach it with
// Stage.SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML (or JSON) gesture script:
//
//	steps:
//	  - {action: tap, x: 100, y: 100}
//	  - {action: drag, fromX: 100, fromY: 100, toX: 200, toY: 100, frames: 10}
//	  - {action: pinch, x: 150, y: 150, fromDist: 40, toDist: 80, frames: 5}
//	  - {action: wait, frames: 30}
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Stage.Update.
func (r *ScriptRunner) step(s *Stage) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		s.InjectPress(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "tap":
		s.InjectTap(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		s.InjectPinch(Vec2{st.X, st.Y}, st.FromDist, st.ToDist, st.FromAngle, st.ToAngle, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
