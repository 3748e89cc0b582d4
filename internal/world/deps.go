package world

import (
	"github.com/unixpickle/model3d/model3d"

	"github.com/Garsondee/Oneiron/internal/catalog"
	"github.com/Garsondee/Oneiron/internal/grid"
)

// Body is the physics collaborator behind a platform. Forces and offsets are
// expressed in the platform's local frame; the physics step rotates them.
type Body interface {
	Position() model3d.Coord3D
	SetMass(m float64)
	ApplyForce(force, offset model3d.Coord3D)
	SetMoveTarget(target model3d.Coord3D)
	ClearMoveTarget()
}

// BodyFactory creates the body for a freshly spawned platform.
type BodyFactory func(id PlatformID, pos model3d.Coord3D) Body

// ElementRef addresses one element of one tile.
type ElementRef struct {
	Platform PlatformID
	Coord    grid.Coord
	Element  grid.Element
	Yaw      float64 // degrees about the up axis
}

// Renderer receives every element model selection and slot visibility change.
type Renderer interface {
	SetElement(ref ElementRef, model catalog.Model)
	SetSlot(platform PlatformID, c grid.Coord, enabled bool)
}

// Camera follows a platform once locked onto it.
type Camera interface {
	Lock(p *Platform)
}

// Screenshotter captures the next frame to path.
type Screenshotter interface {
	Capture(path string)
}

type noopRenderer struct{}

func (noopRenderer) SetElement(ElementRef, catalog.Model) {}
func (noopRenderer) SetSlot(PlatformID, grid.Coord, bool) {}

type noopCamera struct{}

func (noopCamera) Lock(*Platform) {}

type noopScreenshotter struct{}

func (noopScreenshotter) Capture(string) {}

// staticBody is used when no body factory is wired: it stays where it spawned.
type staticBody struct {
	pos model3d.Coord3D
}

func (b *staticBody) Position() model3d.Coord3D       { return b.pos }
func (b *staticBody) SetMass(float64)                 {}
func (b *staticBody) ApplyForce(_, _ model3d.Coord3D) {}
func (b *staticBody) SetMoveTarget(model3d.Coord3D)   {}
func (b *staticBody) ClearMoveTarget()                {}
