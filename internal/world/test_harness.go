package world

import (
	"time"

	"github.com/unixpickle/model3d/model3d"

	"github.com/Garsondee/Oneiron/internal/catalog"
	"github.com/Garsondee/Oneiron/internal/grid"
)

// TestSession is a headless session harness used by tests and the report
// CLI. It wires recording collaborators in place of the ebiten host.
type TestSession struct {
	Session    *Session
	Controller *Controller
	Log        *EditLog
	Bodies     map[PlatformID]*FakeBody
	Renderer   *RecordingRenderer
	Camera     *RecordingCamera
	Shots      *RecordingScreenshots

	deps SessionDeps
}

// sessionOptionKind controls the pass in which an option is applied.
type sessionOptionKind int

const (
	sessOptInfra    sessionOptionKind = iota // masses, catalog, clock; applied before the session exists
	sessOptPlatform                          // spawn platforms
	sessOptContent                           // tiles, buildings, selection
)

// SessionOption is a builder function applied to a TestSession during construction.
type SessionOption struct {
	kind sessionOptionKind
	fn   func(*TestSession)
}

// WithBaseMass sets the mass of an empty platform.
func WithBaseMass(m float64) SessionOption {
	return SessionOption{sessOptInfra, func(ts *TestSession) { ts.deps.BaseMass = m }}
}

// WithCatalog replaces the default resource catalog.
func WithCatalog(c *catalog.Catalog) SessionOption {
	return SessionOption{sessOptInfra, func(ts *TestSession) { ts.deps.Catalog = c }}
}

// WithClock fixes the time used for screenshot names.
func WithClock(now time.Time) SessionOption {
	return SessionOption{sessOptInfra, func(ts *TestSession) {
		ts.deps.Now = func() time.Time { return now }
	}}
}

// WithScreenshotDir sets the screenshot directory.
func WithScreenshotDir(dir string) SessionOption {
	return SessionOption{sessOptInfra, func(ts *TestSession) { ts.deps.ScreenshotDir = dir }}
}

// WithPlatformAt spawns a platform at (x,y,z). Platforms get ids in option order.
func WithPlatformAt(x, y, z float64) SessionOption {
	return SessionOption{sessOptPlatform, func(ts *TestSession) {
		ts.Session.SpawnPlatform(model3d.Coord3D{X: x, Y: y, Z: z})
	}}
}

// WithTiles adds tiles to a platform, fixing the fringe after each one the way
// a slot click does.
func WithTiles(id PlatformID, coords ...grid.Coord) SessionOption {
	return SessionOption{sessOptContent, func(ts *TestSession) {
		p := ts.MustPlatform(id)
		for _, c := range coords {
			p.AddTile(c)
			p.FixFringe(c)
			p.AddMissingSlots()
		}
	}}
}

// WithPattern builds a layout pattern (see ParsePattern) on a platform.
// It panics on a malformed pattern.
func WithPattern(id PlatformID, pattern string) SessionOption {
	return SessionOption{sessOptContent, func(ts *TestSession) {
		cells, err := ParsePattern(pattern)
		if err != nil {
			panic(err)
		}
		ts.MustPlatform(id).Build(cells)
	}}
}

// WithSelected selects the given platforms through the controller.
func WithSelected(ids ...PlatformID) SessionOption {
	return SessionOption{sessOptContent, func(ts *TestSession) {
		for _, id := range ids {
			ts.Controller.ToggleSelection(ts.MustPlatform(id))
		}
	}}
}

// NewTestSession builds a session from options, applied infra first, then
// platforms, then content.
func NewTestSession(opts ...SessionOption) *TestSession {
	ts := &TestSession{
		Log:      NewEditLog(),
		Bodies:   make(map[PlatformID]*FakeBody),
		Renderer: NewRecordingRenderer(),
		Camera:   &RecordingCamera{},
		Shots:    &RecordingScreenshots{},
	}
	ts.deps = SessionDeps{
		Log:         ts.Log,
		Renderer:    ts.Renderer,
		Camera:      ts.Camera,
		Screenshots: ts.Shots,
		Bodies: func(id PlatformID, pos model3d.Coord3D) Body {
			b := &FakeBody{Pos: pos}
			ts.Bodies[id] = b
			return b
		},
	}
	for _, kind := range []sessionOptionKind{sessOptInfra, sessOptPlatform, sessOptContent} {
		if kind == sessOptPlatform {
			ts.Session = NewSession(ts.deps)
			ts.Controller = NewController(ts.Session)
		}
		for _, o := range opts {
			if o.kind == kind {
				o.fn(ts)
			}
		}
	}
	return ts
}

// MustPlatform returns the platform with id or panics.
func (ts *TestSession) MustPlatform(id PlatformID) *Platform {
	p, ok := ts.Session.Platform(id)
	if !ok {
		panic("test session: no platform " + id.String())
	}
	return p
}

// ClickVoid presses the primary button on empty space at pos.
func (ts *TestSession) ClickVoid(pos model3d.Coord3D) {
	ts.Controller.OnPointerDown(PointerEvent{
		Button:   ButtonPrimary,
		Hits:     []Hit{{Kind: HitCursor}, {Kind: HitVoid}},
		WorldPos: pos,
	})
}

// ClickSurface presses the primary button on a tile of platform id.
func (ts *TestSession) ClickSurface(id PlatformID, c grid.Coord, shift bool) {
	ts.Controller.OnPointerDown(PointerEvent{
		Button: ButtonPrimary,
		Shift:  shift,
		Hits:   []Hit{{Kind: HitPlatformSurface, Platform: id, Coord: c}},
	})
}

// ClickSlot presses the primary button on the slot at c of platform id.
func (ts *TestSession) ClickSlot(id PlatformID, c grid.Coord) {
	ts.Controller.OnPointerDown(PointerEvent{
		Button: ButtonPrimary,
		Hits: []Hit{
			{Kind: HitCursor},
			{Kind: HitPlaceholder, Platform: id, Coord: c},
			{Kind: HitPlatformSurface, Platform: id, Coord: c},
		},
	})
}

// RightClick presses the secondary button at pos.
func (ts *TestSession) RightClick(pos model3d.Coord3D) {
	ts.Controller.OnPointerDown(PointerEvent{Button: ButtonSecondary, WorldPos: pos})
}

// FakeBody records everything the core asks of a physics body.
type FakeBody struct {
	Pos       model3d.Coord3D
	Mass      float64
	Forces    []AppliedForce
	Target    model3d.Coord3D
	HasTarget bool
}

// AppliedForce is one ApplyForce call.
type AppliedForce struct {
	Force  model3d.Coord3D
	Offset model3d.Coord3D
}

func (b *FakeBody) Position() model3d.Coord3D { return b.Pos }
func (b *FakeBody) SetMass(m float64)         { b.Mass = m }

func (b *FakeBody) ApplyForce(force, offset model3d.Coord3D) {
	b.Forces = append(b.Forces, AppliedForce{Force: force, Offset: offset})
}

func (b *FakeBody) SetMoveTarget(target model3d.Coord3D) {
	b.Target = target
	b.HasTarget = true
}

func (b *FakeBody) ClearMoveTarget() { b.HasTarget = false }

// elementKey identifies an element independent of its yaw.
type elementKey struct {
	Platform PlatformID
	Coord    grid.Coord
	Element  grid.Element
}

type slotKey struct {
	Platform PlatformID
	Coord    grid.Coord
}

// RecordingRenderer keeps the latest model per element and slot state.
type RecordingRenderer struct {
	Calls    int
	elements map[elementKey]catalog.Model
	yaws     map[elementKey]float64
	slots    map[slotKey]bool
}

// NewRecordingRenderer creates an empty recorder.
func NewRecordingRenderer() *RecordingRenderer {
	return &RecordingRenderer{
		elements: make(map[elementKey]catalog.Model),
		yaws:     make(map[elementKey]float64),
		slots:    make(map[slotKey]bool),
	}
}

func (r *RecordingRenderer) SetElement(ref ElementRef, m catalog.Model) {
	k := elementKey{ref.Platform, ref.Coord, ref.Element}
	r.elements[k] = m
	r.yaws[k] = ref.Yaw
	r.Calls++
}

func (r *RecordingRenderer) SetSlot(id PlatformID, c grid.Coord, enabled bool) {
	r.slots[slotKey{id, c}] = enabled
}

// Model returns the last model pushed for an element.
func (r *RecordingRenderer) Model(id PlatformID, c grid.Coord, e grid.Element) (catalog.Model, bool) {
	m, ok := r.elements[elementKey{id, c, e}]
	return m, ok
}

// Yaw returns the last yaw pushed for an element.
func (r *RecordingRenderer) Yaw(id PlatformID, c grid.Coord, e grid.Element) float64 {
	return r.yaws[elementKey{id, c, e}]
}

// SlotEnabled returns the last visibility pushed for a slot.
func (r *RecordingRenderer) SlotEnabled(id PlatformID, c grid.Coord) (enabled, ok bool) {
	enabled, ok = r.slots[slotKey{id, c}]
	return enabled, ok
}

// RecordingCamera remembers which platforms it was locked onto.
type RecordingCamera struct {
	Locked []PlatformID
}

func (c *RecordingCamera) Lock(p *Platform) { c.Locked = append(c.Locked, p.ID()) }

// RecordingScreenshots remembers requested screenshot paths.
type RecordingScreenshots struct {
	Paths []string
}

func (s *RecordingScreenshots) Capture(path string) { s.Paths = append(s.Paths, path) }
