package interact

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// VelocityModel supplies the velocity a thrown element coasts with. The
// integrator asks for it on every tick with the element's current offset.
//
// This is the main customization seam of the package: implement it to add
// friction, gravity, springs, or any other force field without touching the
// gesture or integrator code. SetVelocity receives the release velocity of
// a throw and the zero vector whenever a new gesture interrupts a coast.
type VelocityModel interface {
	Velocity() Vec2
	SetVelocity(v Vec2)
	ComputeVelocity(offset Vec2) Vec2
}

// AngularVelocityModel is the rotational counterpart of VelocityModel,
// used by spinning elements.
type AngularVelocityModel interface {
	AngularVelocity() float64
	SetAngularVelocity(v float64)
	ComputeAngularVelocity(angle float64) float64
}

// Velocity is the default VelocityModel: uniform motion at the release
// velocity, with no friction.
type Velocity struct {
	v Vec2
}

// NewVelocity returns a constant-velocity model starting at v.
func NewVelocity(v Vec2) *Velocity { return &Velocity{v: v} }

func (m *Velocity) Velocity() Vec2              { return m.v }
func (m *Velocity) SetVelocity(v Vec2)          { m.v = v }
func (m *Velocity) ComputeVelocity(_ Vec2) Vec2 { return m.v }

// AngularVelocity is the default AngularVelocityModel: constant spin.
type AngularVelocity struct {
	v float64
}

// NewAngularVelocity returns a constant angular-velocity model.
func NewAngularVelocity(v float64) *AngularVelocity { return &AngularVelocity{v: v} }

func (m *AngularVelocity) AngularVelocity() float64                 { return m.v }
func (m *AngularVelocity) SetAngularVelocity(v float64)             { m.v = v }
func (m *AngularVelocity) ComputeAngularVelocity(_ float64) float64 { return m.v }

// FrictionVelocity decays the stored velocity exponentially. Rate is the
// decay constant per second; Period must match the integrator's tick.
type FrictionVelocity struct {
	Rate   float64
	Period time.Duration
	v      Vec2
}

// NewFrictionVelocity returns a friction model for an integrator ticking
// every period.
func NewFrictionVelocity(rate float64, period time.Duration) *FrictionVelocity {
	return &FrictionVelocity{Rate: rate, Period: period}
}

func (m *FrictionVelocity) Velocity() Vec2     { return m.v }
func (m *FrictionVelocity) SetVelocity(v Vec2) { m.v = v }

// ComputeVelocity advances the decay by one period and returns the result.
func (m *FrictionVelocity) ComputeVelocity(_ Vec2) Vec2 {
	m.v = m.v.Scale(math.Exp(-m.Rate * m.Period.Seconds()))
	return m.v
}

// GravityVelocity accelerates the stored velocity by a constant Gravity
// (units per second squared) every period.
type GravityVelocity struct {
	Gravity Vec2
	Period  time.Duration
	v       Vec2
}

// NewGravityVelocity returns a gravity model for an integrator ticking every
// period.
func NewGravityVelocity(gravity Vec2, period time.Duration) *GravityVelocity {
	return &GravityVelocity{Gravity: gravity, Period: period}
}

func (m *GravityVelocity) Velocity() Vec2     { return m.v }
func (m *GravityVelocity) SetVelocity(v Vec2) { m.v = v }

func (m *GravityVelocity) ComputeVelocity(_ Vec2) Vec2 {
	m.v = m.v.Add(m.Gravity.Scale(m.Period.Seconds()))
	return m.v
}

// SpringVelocity pulls a thrown element back toward Rest with a damped
// harmonic spring.
type SpringVelocity struct {
	Rest   Vec2
	spring harmonica.Spring
	v      Vec2
}

// NewSpringVelocity returns a spring model. frequency is the angular
// frequency and damping the damping ratio (1 = critically damped).
func NewSpringVelocity(rest Vec2, period time.Duration, frequency, damping float64) *SpringVelocity {
	return &SpringVelocity{
		Rest:   rest,
		spring: harmonica.NewSpring(period.Seconds(), frequency, damping),
	}
}

func (m *SpringVelocity) Velocity() Vec2     { return m.v }
func (m *SpringVelocity) SetVelocity(v Vec2) { m.v = v }

func (m *SpringVelocity) ComputeVelocity(offset Vec2) Vec2 {
	_, m.v.X = m.spring.Update(offset.X, m.v.X, m.Rest.X)
	_, m.v.Y = m.spring.Update(offset.Y, m.v.Y, m.Rest.Y)
	return m.v
}

// AngularFriction decays a spin exponentially, the angular counterpart of
// FrictionVelocity.
type AngularFriction struct {
	Rate   float64
	Period time.Duration
	v      float64
}

// NewAngularFriction returns a friction model for a spin integrator ticking
// every period.
func NewAngularFriction(rate float64, period time.Duration) *AngularFriction {
	return &AngularFriction{Rate: rate, Period: period}
}

func (m *AngularFriction) AngularVelocity() float64     { return m.v }
func (m *AngularFriction) SetAngularVelocity(v float64) { m.v = v }

func (m *AngularFriction) ComputeAngularVelocity(_ float64) float64 {
	m.v *= math.Exp(-m.Rate * m.Period.Seconds())
	return m.v
}

// AngularSpring returns a spinning element to Rest radians.
type AngularSpring struct {
	Rest   float64
	spring harmonica.Spring
	v      float64
}

// NewAngularSpring returns a spring model for the angle axis.
func NewAngularSpring(rest float64, period time.Duration, frequency, damping float64) *AngularSpring {
	return &AngularSpring{
		Rest:   rest,
		spring: harmonica.NewSpring(period.Seconds(), frequency, damping),
	}
}

func (m *AngularSpring) AngularVelocity() float64     { return m.v }
func (m *AngularSpring) SetAngularVelocity(v float64) { m.v = v }

func (m *AngularSpring) ComputeAngularVelocity(angle float64) float64 {
	_, m.v = m.spring.Update(angle, m.v, m.Rest)
	return m.v
}
