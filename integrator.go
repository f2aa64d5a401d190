package interact

import "time"

// DefaultTickPeriod is the integrator step, about 200 Hz.
const DefaultTickPeriod = 5 * time.Millisecond

// ticker is the fixed-step clock shared by both integrators. It never owns a
// goroutine: the host loop feeds elapsed time through advance, and whole
// periods are turned into steps on the caller's goroutine.
type ticker struct {
	period  time.Duration
	running bool
	accum   time.Duration
	ticks   uint64
}

func newTicker(period time.Duration) ticker {
	if period <= 0 {
		period = DefaultTickPeriod
	}
	return ticker{period: period}
}

func (t *ticker) start() {
	t.running = true
	t.accum = 0
}

func (t *ticker) stop() {
	t.running = false
	t.accum = 0
}

// advance adds elapsed time and calls step once per whole period, stopping
// early if step stops the ticker. Returns the number of steps run.
func (t *ticker) advance(elapsed time.Duration, step func()) int {
	if !t.running || elapsed <= 0 {
		return 0
	}
	t.accum += elapsed
	n := 0
	for t.running && t.accum >= t.period {
		t.accum -= t.period
		step()
		n++
	}
	return n
}

// PositionIntegrator moves an offset along a VelocityModel. Each tick:
//
//	velocity = model.ComputeVelocity(offset)
//	offset  += velocity * period
//
// It runs until Stop or Reset is called, or until the model's speed drops
// below StopBelow when that is positive.
type PositionIntegrator struct {
	StopBelow float64

	model  VelocityModel
	offset *Vec2
	clock  ticker
	onStop func()
}

// NewPositionIntegrator returns a stopped integrator writing to offset.
func NewPositionIntegrator(model VelocityModel, offset *Vec2, period time.Duration) *PositionIntegrator {
	if model == nil {
		model = NewVelocity(Vec2{})
	}
	return &PositionIntegrator{model: model, offset: offset, clock: newTicker(period)}
}

// Model returns the velocity model.
func (it *PositionIntegrator) Model() VelocityModel { return it.model }

// Period returns the tick period.
func (it *PositionIntegrator) Period() time.Duration { return it.clock.period }

// Start begins ticking. Starting a running integrator restarts its phase.
func (it *PositionIntegrator) Start() { it.clock.start() }

// Stop halts ticking. Safe to call when not running.
func (it *PositionIntegrator) Stop() {
	wasRunning := it.clock.running
	it.clock.stop()
	if wasRunning && it.onStop != nil {
		it.onStop()
	}
}

// Reset stops the integrator and zeroes the model's velocity.
func (it *PositionIntegrator) Reset() {
	it.Stop()
	it.model.SetVelocity(Vec2{})
}

// Running reports whether the integrator is ticking.
func (it *PositionIntegrator) Running() bool { return it.clock.running }

// Ticks returns the number of steps taken since creation.
func (it *PositionIntegrator) Ticks() uint64 { return it.clock.ticks }

// Tick runs exactly one step if running.
func (it *PositionIntegrator) Tick() {
	if it.clock.running {
		it.step()
	}
}

// Advance feeds elapsed host time and runs one step per whole period.
func (it *PositionIntegrator) Advance(elapsed time.Duration) int {
	return it.clock.advance(elapsed, it.step)
}

func (it *PositionIntegrator) step() {
	v := it.model.ComputeVelocity(*it.offset)
	*it.offset = it.offset.Add(v.Scale(it.clock.period.Seconds()))
	it.clock.ticks++
	if it.StopBelow > 0 && v.Len() < it.StopBelow {
		it.Stop()
	}
}

// AngleIntegrator spins an angle along an AngularVelocityModel, the
// rotational counterpart of PositionIntegrator.
type AngleIntegrator struct {
	StopBelow float64

	model  AngularVelocityModel
	angle  *float64
	clock  ticker
	onStop func()
}

// NewAngleIntegrator returns a stopped integrator writing to angle.
func NewAngleIntegrator(model AngularVelocityModel, angle *float64, period time.Duration) *AngleIntegrator {
	if model == nil {
		model = NewAngularVelocity(0)
	}
	return &AngleIntegrator{model: model, angle: angle, clock: newTicker(period)}
}

// Model returns the angular velocity model.
func (it *AngleIntegrator) Model() AngularVelocityModel { return it.model }

// Period returns the tick period.
func (it *AngleIntegrator) Period() time.Duration { return it.clock.period }

// Start begins ticking.
func (it *AngleIntegrator) Start() { it.clock.start() }

// Stop halts ticking. Safe to call when not running.
func (it *AngleIntegrator) Stop() {
	wasRunning := it.clock.running
	it.clock.stop()
	if wasRunning && it.onStop != nil {
		it.onStop()
	}
}

// Reset stops the integrator and zeroes the model's angular velocity.
func (it *AngleIntegrator) Reset() {
	it.Stop()
	it.model.SetAngularVelocity(0)
}

// Running reports whether the integrator is ticking.
func (it *AngleIntegrator) Running() bool { return it.clock.running }

// Ticks returns the number of steps taken since creation.
func (it *AngleIntegrator) Ticks() uint64 { return it.clock.ticks }

// Tick runs exactly one step if running.
func (it *AngleIntegrator) Tick() {
	if it.clock.running {
		it.step()
	}
}

// Advance feeds elapsed host time and runs one step per whole period.
func (it *AngleIntegrator) Advance(elapsed time.Duration) int {
	return it.clock.advance(elapsed, it.step)
}

func (it *AngleIntegrator) step() {
	v := it.model.ComputeAngularVelocity(*it.angle)
	*it.angle += v * it.clock.period.Seconds()
	it.clock.ticks++
	if it.StopBelow > 0 && v < it.StopBelow && v > -it.StopBelow {
		it.Stop()
	}
}
