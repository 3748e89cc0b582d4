package world

import (
	"path/filepath"
	"strings"

	"github.com/unixpickle/model3d/model3d"

	"github.com/Garsondee/Oneiron/internal/catalog"
	"github.com/Garsondee/Oneiron/internal/grid"
	"github.com/Garsondee/Oneiron/internal/snapshot"
)

// Button identifies a pointer button.
type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// HitKind classifies one pick result.
type HitKind uint8

const (
	HitVoid            HitKind = iota // nothing but sky
	HitCursor                         // the always-present cursor marker
	HitPlatformSurface                // a tile element of a platform
	HitPlaceholder                    // a slot of a platform
)

func (k HitKind) String() string {
	switch k {
	case HitVoid:
		return "void"
	case HitCursor:
		return "cursor"
	case HitPlatformSurface:
		return "surface"
	case HitPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Hit is one entry of an ordered pick result. Platform and Coord are only
// meaningful for surface and placeholder hits.
type Hit struct {
	Kind     HitKind
	Platform PlatformID
	Coord    grid.Coord
}

// PointerEvent is a button press with the pick result under the pointer,
// nearest hit first.
type PointerEvent struct {
	Button   Button
	Shift    bool
	Hits     []Hit
	WorldPos model3d.Coord3D
}

// Key identifies a command key.
type Key uint8

const (
	KeyEscape     Key = iota // clear the selection
	KeyLock                  // lock the camera onto the last clicked platform
	KeyScreenshot            // save the next frame
)

// TickInput is the held input state sampled once per frame.
type TickInput struct {
	Thrust bool
}

// Controller turns input events into grid edits and platform commands. It
// owns the selection set.
type Controller struct {
	session  *Session
	selected []PlatformID

	lastHit    PlatformID
	hasLastHit bool
}

// NewController creates a controller with an empty selection.
func NewController(s *Session) *Controller {
	return &Controller{session: s}
}

// Session returns the session the controller edits.
func (c *Controller) Session() *Session { return c.session }

// OnPointerDown handles a button press.
func (c *Controller) OnPointerDown(ev PointerEvent) {
	switch ev.Button {
	case ButtonPrimary:
		c.primary(ev)
	case ButtonSecondary:
		for _, p := range c.Selected() {
			p.SetMoveTarget(ev.WorldPos)
		}
	}
}

func (c *Controller) primary(ev PointerEvent) {
	hits := ev.Hits
	if len(hits) > 0 && hits[0].Kind == HitCursor {
		hits = hits[1:]
	}
	if len(hits) == 0 {
		return
	}
	hit := hits[0]

	if hit.Kind == HitVoid {
		c.session.SpawnPlatform(ev.WorldPos)
		return
	}

	p, ok := c.session.Platform(hit.Platform)
	if !ok {
		return
	}
	c.lastHit, c.hasLastHit = p.id, true

	switch hit.Kind {
	case HitPlaceholder:
		if p.IsSelected() {
			c.edit(p, hit.Coord)
			return
		}
		c.selectHit(p, ev.Shift)
	case HitPlatformSurface:
		c.selectHit(p, ev.Shift)
	}
}

func (c *Controller) selectHit(p *Platform, shift bool) {
	if shift {
		c.ToggleSelection(p)
		return
	}
	c.SetSelection(p)
}

// edit applies a slot click: an empty cell grows a tile, an occupied cell
// starts a row of engines running north.
func (c *Controller) edit(p *Platform, at grid.Coord) {
	if p.CheckEmpty(at, false) {
		p.AddTile(at)
		p.FixFringe(at)
		p.AddMissingSlots()
		return
	}
	c.PaintRow(p, at, catalog.BuildingEngine)
}

// PaintRow designates b on every tile from start northwards until the first
// cell without a tile. Each designation re-resolves the cell and its
// neighbours. It returns the number of tiles designated.
func (c *Controller) PaintRow(p *Platform, start grid.Coord, b catalog.BuildingType) int {
	n := 0
	for at := start; !p.CheckEmpty(at, false); at = at.Neighbour(forwardEdge) {
		p.SetBuilding(at, b)
		p.FixFringe(at)
		n++
	}
	return n
}

// Selected returns the live selected platforms in selection order. Ids of
// despawned platforms are dropped.
func (c *Controller) Selected() []*Platform {
	out := make([]*Platform, 0, len(c.selected))
	kept := c.selected[:0]
	for _, id := range c.selected {
		p, ok := c.session.Platform(id)
		if !ok {
			continue
		}
		kept = append(kept, id)
		out = append(out, p)
	}
	c.selected = kept
	return out
}

// SelectedIDs returns a copy of the selection set.
func (c *Controller) SelectedIDs() []PlatformID {
	out := make([]PlatformID, 0, len(c.selected))
	for _, p := range c.Selected() {
		out = append(out, p.id)
	}
	return out
}

// SetSelection replaces the selection with exactly p.
func (c *Controller) SetSelection(p *Platform) {
	c.DeselectAll()
	c.selected = append(c.selected, p.id)
	p.SetSelected(true)
	c.session.deps.Log.Add(c.session.tick, p.id.String(), "select", "set", "")
}

// ToggleSelection adds p to the selection or removes it, leaving the other
// members alone.
func (c *Controller) ToggleSelection(p *Platform) {
	for i, id := range c.selected {
		if id == p.id {
			c.selected = append(c.selected[:i], c.selected[i+1:]...)
			p.SetSelected(false)
			c.session.deps.Log.Add(c.session.tick, p.id.String(), "select", "remove", "")
			return
		}
	}
	c.selected = append(c.selected, p.id)
	p.SetSelected(true)
	c.session.deps.Log.Add(c.session.tick, p.id.String(), "select", "add", "")
}

// DeselectAll empties the selection set.
func (c *Controller) DeselectAll() {
	for _, p := range c.Selected() {
		p.SetSelected(false)
	}
	c.selected = c.selected[:0]
}

// Reset forgets the selection set and the last hit platform without touching
// any platform. Use it when the session's ids have been reassigned.
func (c *Controller) Reset() {
	c.selected = nil
	c.lastHit, c.hasLastHit = 0, false
}

// Import replaces the session's platforms with snap. On success the
// controller state is reset; a rejected snapshot leaves both untouched.
func (c *Controller) Import(snap snapshot.SessionV1) error {
	if err := c.session.Import(snap); err != nil {
		return err
	}
	c.Reset()
	return nil
}

// LastHit returns the platform hit by the latest primary press, if it still
// exists.
func (c *Controller) LastHit() (*Platform, bool) {
	if !c.hasLastHit {
		return nil, false
	}
	return c.session.Platform(c.lastHit)
}

// OnKeyDown handles a command key press.
func (c *Controller) OnKeyDown(k Key) {
	switch k {
	case KeyEscape:
		c.DeselectAll()
	case KeyLock:
		if p, ok := c.LastHit(); ok {
			c.session.deps.Camera.Lock(p)
			p.logf("camera", "lock", "")
		}
	case KeyScreenshot:
		path := c.ScreenshotPath()
		c.session.deps.Screenshots.Capture(path)
		c.session.logf("command", "screenshot", "%s", path)
	}
}

// ScreenshotPath builds the file name for a screenshot taken now.
func (c *Controller) ScreenshotPath() string {
	stamp := c.session.deps.Now().Format("2006-01-02 15:04:05.000")
	stamp = strings.NewReplacer(":", "_", ".", "_", " ", "_").Replace(stamp)
	return filepath.Join(c.session.deps.ScreenshotDir, "Screenshot_"+stamp+".png")
}

// OnTick advances the session by one frame of dt seconds.
func (c *Controller) OnTick(dt float64, in TickInput) {
	c.session.tick++
	if !in.Thrust {
		return
	}
	for _, p := range c.session.Platforms() {
		p.ApplyThrust(dt)
	}
}
