package host

import (
	"github.com/unixpickle/model3d/model3d"

	"github.com/Garsondee/Oneiron/internal/world"
)

const (
	zoomMin = 0.25
	zoomMax = 4.0
)

// Camera is a top-down view of the XZ plane: screen right is +X, screen down
// is +Z (grid south). It implements world.Camera.
type Camera struct {
	X, Z      float64 // world point at the viewport centre
	Zoom      float64
	TilePx    float64 // pixels per world unit at zoom 1
	ViewW     float64
	ViewH     float64
	locked    world.PlatformID
	hasLocked bool
}

// NewCamera centres a camera on the origin.
func NewCamera(tilePx, viewW, viewH float64) *Camera {
	return &Camera{Zoom: 1, TilePx: tilePx, ViewW: viewW, ViewH: viewH}
}

// Lock makes the camera follow p until it is panned or p disappears.
func (c *Camera) Lock(p *world.Platform) {
	c.locked, c.hasLocked = p.ID(), true
}

// Locked returns the followed platform id.
func (c *Camera) Locked() (world.PlatformID, bool) { return c.locked, c.hasLocked }

// Unlock stops following.
func (c *Camera) Unlock() { c.hasLocked = false }

// Follow recentres on the locked platform. A lock on a missing platform is
// dropped.
func (c *Camera) Follow(s *world.Session) {
	if !c.hasLocked {
		return
	}
	p, ok := s.Platform(c.locked)
	if !ok {
		c.hasLocked = false
		return
	}
	pos := p.Position()
	c.X, c.Z = pos.X, pos.Z
}

// Pan moves the view by (dx, dz) world units and drops any lock.
func (c *Camera) Pan(dx, dz float64) {
	c.X += dx
	c.Z += dz
	c.hasLocked = false
}

// ZoomBy multiplies the zoom, clamped to the supported range.
func (c *Camera) ZoomBy(f float64) {
	c.Zoom = min(max(c.Zoom*f, zoomMin), zoomMax)
}

// Scale returns pixels per world unit.
func (c *Camera) Scale() float64 { return c.TilePx * c.Zoom }

// WorldToScreen projects a world position onto the viewport.
func (c *Camera) WorldToScreen(p model3d.Coord3D) (sx, sy float64) {
	s := c.Scale()
	return (p.X-c.X)*s + c.ViewW/2, (p.Z-c.Z)*s + c.ViewH/2
}

// ScreenToWorld returns the point on the ground plane under a viewport pixel.
func (c *Camera) ScreenToWorld(sx, sy float64) model3d.Coord3D {
	s := c.Scale()
	return model3d.XYZ((sx-c.ViewW/2)/s+c.X, 0, (sy-c.ViewH/2)/s+c.Z)
}
