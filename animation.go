package interact

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fade animates one float64 presentation value, the handle overlay alpha,
// toward a target. It is advanced by the owning Controller's Update.
type fade struct {
	tween  *gween.Tween
	value  float64
	target float64
	Done   bool
}

// newFade returns a finished fade resting at value.
func newFade(value float64) fade {
	return fade{value: value, target: value, Done: true}
}

// to starts animating from the current value to target. A zero duration
// or an unchanged target jumps immediately.
func (f *fade) to(target float64, duration time.Duration, fn ease.TweenFunc) {
	if target == f.target {
		return
	}
	f.target = target
	if duration <= 0 || target == f.value {
		f.value = target
		f.tween = nil
		f.Done = true
		return
	}
	f.tween = gween.New(float32(f.value), float32(target), float32(duration.Seconds()), fn)
	f.Done = false
}

// update advances the tween by dt. When the tween finishes, the value snaps
// to the exact target to avoid float32 drift.
func (f *fade) update(dt time.Duration) {
	if f.Done || f.tween == nil {
		return
	}
	val, finished := f.tween.Update(float32(dt.Seconds()))
	f.value = float64(val)
	if finished {
		f.value = f.target
		f.tween = nil
		f.Done = true
	}
}
