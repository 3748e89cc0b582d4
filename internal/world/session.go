package world

import (
	"fmt"
	"sort"
	"time"

	"github.com/unixpickle/model3d/model3d"

	"github.com/Garsondee/Oneiron/internal/catalog"
)

// DefaultBaseMass is the mass of a platform without tiles.
const DefaultBaseMass = 1.0

// SessionDeps carries every collaborator a session needs. Zero fields get
// inert defaults in NewSession.
type SessionDeps struct {
	Catalog       *catalog.Catalog
	Bodies        BodyFactory
	Renderer      Renderer
	Camera        Camera
	Screenshots   Screenshotter
	Log           *EditLog
	BaseMass      float64
	ThrustScale   float64
	ScreenshotDir string
	Now           func() time.Time
}

// Session owns every platform of one game, keyed by PlatformID.
type Session struct {
	deps      SessionDeps
	platforms map[PlatformID]*Platform
	nextID    PlatformID
	tick      int
}

// NewSession creates an empty session.
func NewSession(deps SessionDeps) *Session {
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}
	if deps.Bodies == nil {
		deps.Bodies = func(_ PlatformID, pos model3d.Coord3D) Body { return &staticBody{pos: pos} }
	}
	if deps.Renderer == nil {
		deps.Renderer = noopRenderer{}
	}
	if deps.Camera == nil {
		deps.Camera = noopCamera{}
	}
	if deps.Screenshots == nil {
		deps.Screenshots = noopScreenshotter{}
	}
	if deps.Log == nil {
		deps.Log = NewEditLog()
	}
	if deps.BaseMass <= 0 {
		deps.BaseMass = DefaultBaseMass
	}
	if deps.ThrustScale <= 0 {
		deps.ThrustScale = 1
	}
	if deps.ScreenshotDir == "" {
		deps.ScreenshotDir = "Screenshots"
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Session{
		deps:      deps,
		platforms: make(map[PlatformID]*Platform),
	}
}

// Log returns the session's edit log.
func (s *Session) Log() *EditLog { return s.deps.Log }

// Tick returns the number of update ticks processed so far.
func (s *Session) Tick() int { return s.tick }

// SpawnPlatform creates a new platform at pos with no tiles.
func (s *Session) SpawnPlatform(pos model3d.Coord3D) *Platform {
	id := s.nextID
	s.nextID++
	return s.spawn(id, pos)
}

func (s *Session) spawn(id PlatformID, pos model3d.Coord3D) *Platform {
	if id >= s.nextID {
		s.nextID = id + 1
	}
	p := newPlatform(id, s.deps.BaseMass, s.deps.Bodies(id, pos), &s.deps, &s.tick)
	s.platforms[id] = p
	p.logf("platform", "spawn", "(%.1f,%.1f,%.1f)", pos.X, pos.Y, pos.Z)
	return p
}

// Platform looks a platform up by id.
func (s *Session) Platform(id PlatformID) (*Platform, bool) {
	p, ok := s.platforms[id]
	return p, ok
}

// Platforms returns all platforms ordered by id.
func (s *Session) Platforms() []*Platform {
	out := make([]*Platform, 0, len(s.platforms))
	for _, p := range s.platforms {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Despawn removes a platform. Controllers drop the stale id lazily.
func (s *Session) Despawn(id PlatformID) bool {
	p, ok := s.platforms[id]
	if !ok {
		return false
	}
	p.logf("platform", "despawn", "%d tiles", p.TileCount())
	p.release()
	delete(s.platforms, id)
	return true
}

// Clear despawns every platform and resets id allocation. Ids are reused
// afterwards, so controllers holding old ids must be reset too.
func (s *Session) Clear() {
	for id, p := range s.platforms {
		p.release()
		delete(s.platforms, id)
	}
	s.nextID = 0
}

func (s *Session) logf(category, key, format string, args ...any) {
	s.deps.Log.Add(s.tick, "--", category, key, fmt.Sprintf(format, args...))
}
