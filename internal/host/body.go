package host

import (
	"math"

	"github.com/unixpickle/model3d/model3d"

	"github.com/Garsondee/Oneiron/internal/world"
)

const (
	arriveRadius = 0.5 // distance at which a move target counts as reached
	cruiseSpeed  = 8.0 // top steering speed, world units per second
	steerGain    = 4.0 // how fast velocity converges on the steering velocity
)

// Body is a kinematic stand-in for a rigid body: it integrates the forces of a
// frame into velocity and position on the XZ plane. Force offsets are accepted
// but do not rotate the body.
type Body struct {
	pos   model3d.Coord3D
	vel   model3d.Coord3D
	mass  float64
	force model3d.Coord3D

	target    model3d.Coord3D
	hasTarget bool

	steering float64 // largest force steering may apply
	damping  float64 // fraction of velocity kept per second
}

// NewBody creates a resting body at pos.
func NewBody(pos model3d.Coord3D, steering, damping float64) *Body {
	return &Body{pos: pos, mass: 1, steering: steering, damping: damping}
}

// BodyFactory returns a world.BodyFactory producing kinematic bodies.
func BodyFactory(steering, damping float64) world.BodyFactory {
	return func(_ world.PlatformID, pos model3d.Coord3D) world.Body {
		return NewBody(pos, steering, damping)
	}
}

func (b *Body) Position() model3d.Coord3D { return b.pos }
func (b *Body) Velocity() model3d.Coord3D { return b.vel }

func (b *Body) SetMass(m float64) {
	if m > 0 {
		b.mass = m
	}
}

func (b *Body) ApplyForce(force, _ model3d.Coord3D) {
	b.force = b.force.Add(force)
}

func (b *Body) SetMoveTarget(target model3d.Coord3D) {
	b.target = model3d.XYZ(target.X, b.pos.Y, target.Z)
	b.hasTarget = true
}

func (b *Body) ClearMoveTarget() { b.hasTarget = false }

// MoveTarget returns the current destination, if any.
func (b *Body) MoveTarget() (model3d.Coord3D, bool) { return b.target, b.hasTarget }

// Step integrates one frame of dt seconds and clears the accumulated force.
func (b *Body) Step(dt float64) {
	if dt <= 0 {
		return
	}
	force := b.force
	b.force = model3d.Coord3D{}

	if b.hasTarget {
		force = force.Add(b.steer())
	}

	b.vel = b.vel.Add(force.Scale(dt / b.mass))
	b.vel = b.vel.Scale(math.Pow(b.damping, dt))
	b.vel.Y = 0
	b.pos = b.pos.Add(b.vel.Scale(dt))
}

// steer returns the force that turns the velocity towards the target, slowing
// down on approach. Reaching the target clears it.
func (b *Body) steer() model3d.Coord3D {
	to := b.target.Sub(b.pos)
	to.Y = 0
	dist := to.Norm()
	if dist <= arriveRadius {
		b.hasTarget = false
		return model3d.Coord3D{}
	}
	desired := to.Scale(math.Min(cruiseSpeed, dist) / dist)
	f := desired.Sub(b.vel).Scale(b.mass * steerGain)
	if n := f.Norm(); n > b.steering {
		f = f.Scale(b.steering / n)
	}
	return f
}
