// Package host runs a world session inside an ebiten window: it turns mouse
// and keyboard input into controller events, steps the platform bodies and
// draws every tile element from above.
package host

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/image/colornames"

	"github.com/Garsondee/Oneiron/internal/catalog"
	"github.com/Garsondee/Oneiron/internal/config"
	"github.com/Garsondee/Oneiron/internal/grid"
	"github.com/Garsondee/Oneiron/internal/snapshot"
	"github.com/Garsondee/Oneiron/internal/world"
)

// panSpeed is the keyboard pan speed in screen pixels per frame.
const panSpeed = 8.0

// commandKeys maps edge-triggered keys to controller commands.
var commandKeys = map[ebiten.Key]world.Key{
	ebiten.KeyEscape: world.KeyEscape,
	ebiten.KeyL:      world.KeyLock,
	ebiten.KeyDigit9: world.KeyScreenshot,
}

type Game struct {
	cfg        config.Config
	width      int
	height     int
	viewWidth  int // playfield width (log panel takes the rest)
	session    *world.Session
	controller *world.Controller
	camera     *Camera
	scene      *Scene
	shots      *Screenshots
	panel      *LogPanel

	showHUD    bool
	prevKeys   map[ebiten.Key]bool
	prevMouse  map[ebiten.MouseButton]bool
	cursor     model3d.Coord3D // ground point under the mouse
	thrustHeld bool
}

// New builds a game from cfg, loading the resource catalog when a path is set.
func New(cfg config.Config) (*Game, error) {
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		var err error
		if cat, err = catalog.Load(cfg.CatalogPath); err != nil {
			return nil, err
		}
	}

	viewW := cfg.Window.Width - logPanelWidth
	g := &Game{
		cfg:       cfg,
		width:     cfg.Window.Width,
		height:    cfg.Window.Height,
		viewWidth: viewW,
		camera:    NewCamera(cfg.TilePixels, float64(viewW), float64(cfg.Window.Height)),
		scene:     NewScene(),
		shots:     &Screenshots{},
		panel:     NewLogPanel(),
		showHUD:   true,
		prevKeys:  make(map[ebiten.Key]bool),
		prevMouse: make(map[ebiten.MouseButton]bool),
	}
	log := world.NewEditLog()
	g.panel.Attach(log)
	g.session = world.NewSession(world.SessionDeps{
		Catalog:       cat,
		Bodies:        BodyFactory(cfg.SteeringForce, cfg.Damping),
		Renderer:      g.scene,
		Camera:        g.camera,
		Screenshots:   g.shots,
		Log:           log,
		BaseMass:      cfg.BaseMass,
		ThrustScale:   cfg.ThrustScale,
		ScreenshotDir: cfg.ScreenshotDir,
	})
	g.controller = world.NewController(g.session)
	return g, nil
}

// Session returns the session being played.
func (g *Game) Session() *world.Session { return g.session }

func (g *Game) Update() error {
	g.handleInput()

	dt := 1.0 / float64(ebiten.TPS())
	g.controller.OnTick(dt, world.TickInput{Thrust: g.thrustHeld})
	for _, p := range g.session.Platforms() {
		if b, ok := p.Body().(*Body); ok {
			b.Step(dt)
		}
	}
	g.camera.Follow(g.session)
	return nil
}

// pressed reports a key going down this frame and records it for the next.
func (g *Game) pressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !g.prevKeys[k]
}

func (g *Game) clicked(b ebiten.MouseButton) bool {
	down := ebiten.IsMouseButtonPressed(b)
	was := g.prevMouse[b]
	g.prevMouse[b] = down
	return down && !was
}

// handleInput processes keyboard and mouse state (edge-triggered where the
// action is a one-shot).
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	for k, cmd := range commandKeys {
		if g.pressed(currentKeys, k) {
			g.controller.OnKeyDown(cmd)
		}
	}
	if g.pressed(currentKeys, ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if g.pressed(currentKeys, ebiten.KeyC) {
		g.copyLayout()
	}
	if g.pressed(currentKeys, ebiten.KeyF5) {
		g.saveSnapshot()
	}
	if g.pressed(currentKeys, ebiten.KeyF9) {
		g.loadSnapshot()
	}

	g.thrustHeld = ebiten.IsKeyPressed(ebiten.KeyArrowUp)

	// Camera pan: WASD.
	step := panSpeed / g.camera.Scale()
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		g.camera.Pan(0, -step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		g.camera.Pan(0, step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		g.camera.Pan(-step, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		g.camera.Pan(step, 0)
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.camera.ZoomBy(1 + 0.12*wy)
	}

	mx, my := ebiten.CursorPosition()
	pos := g.camera.ScreenToWorld(float64(mx), float64(my))
	g.cursor = pos
	inView := mx < g.viewWidth

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	if g.clicked(ebiten.MouseButtonLeft) && inView {
		g.controller.OnPointerDown(world.PointerEvent{
			Button:   world.ButtonPrimary,
			Shift:    shift,
			Hits:     Pick(g.session, pos),
			WorldPos: pos,
		})
	}
	if g.clicked(ebiten.MouseButtonRight) && inView {
		g.controller.OnPointerDown(world.PointerEvent{
			Button:   world.ButtonSecondary,
			Shift:    shift,
			WorldPos: pos,
		})
	}

	g.prevKeys = currentKeys
}

// note records a host event in the session log so it shows up in the panel.
func (g *Game) note(key, format string, args ...any) {
	g.session.Log().Add(g.session.Tick(), "--", "command", key, fmt.Sprintf(format, args...))
}

// copyLayout puts the ASCII layout of every selected platform on the clipboard.
func (g *Game) copyLayout() {
	var sb strings.Builder
	for _, p := range g.controller.Selected() {
		fmt.Fprintf(&sb, "%s\n%s", p.ID(), p.Layout())
	}
	if sb.Len() == 0 {
		g.note("copy", "nothing selected")
		return
	}
	if err := clipboard.WriteAll(sb.String()); err != nil {
		g.note("copy", "failed: %v", err)
		return
	}
	g.note("copy", "%d platforms", len(g.controller.Selected()))
}

func (g *Game) saveSnapshot() {
	if err := snapshot.Write(g.cfg.SnapshotPath, g.session.Export()); err != nil {
		g.note("save", "failed: %v", err)
		return
	}
	g.note("save", "%s", g.cfg.SnapshotPath)
}

func (g *Game) loadSnapshot() {
	snap, err := snapshot.Read(g.cfg.SnapshotPath)
	if err != nil {
		g.note("load", "failed: %v", err)
		return
	}
	if err := g.controller.Import(snap); err != nil {
		g.note("load", "failed: %v", err)
		return
	}
	g.camera.Unlock()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 14, G: 16, B: 26, A: 255})
	g.drawGround(screen)
	for _, p := range g.session.Platforms() {
		g.drawPlatform(screen, p)
	}

	// Screenshots capture the playfield without the overlays.
	if err := g.shots.Flush(screen); err != nil {
		g.note("screenshot", "failed: %v", err)
	}

	g.panel.Draw(screen, g.viewWidth, g.height)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

// drawGround draws a faint world grid so motion is visible.
func (g *Game) drawGround(screen *ebiten.Image) {
	s := g.camera.Scale() * 4
	if s < 8 {
		return
	}
	col := color.RGBA{R: 28, G: 32, B: 48, A: 255}
	ox, oy := g.camera.WorldToScreen(model3d.Coord3D{})
	for x := modPos(ox, s); x < float64(g.viewWidth); x += s {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(g.height), 1, col, false)
	}
	for y := modPos(oy, s); y < float64(g.height); y += s {
		vector.StrokeLine(screen, 0, float32(y), float32(g.viewWidth), float32(y), 1, col, false)
	}
}

func modPos(v, m float64) float64 {
	v = math.Mod(v, m)
	if v < 0 {
		v += m
	}
	return v
}

// cellRect converts a rect in cell units to screen pixels.
func (g *Game) cellRect(p *world.Platform, c grid.Coord, r Rect) (x, y, w, h float32) {
	cx, cy := g.camera.WorldToScreen(p.Position().Add(world.TileOffset(c)))
	s := g.camera.Scale()
	return float32(cx + r.MinX*s), float32(cy - r.MaxY*s), float32((r.MaxX - r.MinX) * s), float32((r.MaxY - r.MinY) * s)
}

func (g *Game) drawPlatform(screen *ebiten.Image, p *world.Platform) {
	for _, t := range p.Tiles() {
		for e := grid.Center; e < grid.ElementCount; e++ {
			m, ok := g.scene.Element(p.ID(), t.Coord(), e)
			if !ok {
				continue
			}
			bands := ElementRect(e).Bands(len(m.Materials))
			for i, band := range bands {
				col := colornames.Slategray
				if i < len(m.Materials) {
					col = MaterialColor(m.Materials[i])
				}
				x, y, w, h := g.cellRect(p, t.Coord(), band)
				vector.FillRect(screen, x, y, w, h, col, false)
			}
		}
	}

	slotCol := color.RGBA{R: 120, G: 220, B: 140, A: 90}
	if p.IsSelected() {
		slotCol.A = 200
	}
	for _, s := range p.Slots() {
		if !g.scene.SlotVisible(p.ID(), s.Coord) {
			continue
		}
		half := slotMarkerHalf
		x, y, w, h := g.cellRect(p, s.Coord, Rect{-half, -half, half, half})
		vector.StrokeRect(screen, x, y, w, h, 1, slotCol, false)
	}

	// Origin marker doubles as the selection highlight.
	ox, oy := g.camera.WorldToScreen(p.Position())
	mark := colornames.Lightsteelblue
	if p.IsSelected() {
		mark = colornames.Yellow
	}
	vector.StrokeCircle(screen, float32(ox), float32(oy), 4, 1.5, mark, false)
	if b, ok := p.Body().(*Body); ok {
		if target, steering := b.MoveTarget(); steering {
			tx, ty := g.camera.WorldToScreen(target)
			vector.StrokeLine(screen, float32(ox), float32(oy), float32(tx), float32(ty), 1, color.RGBA{R: 230, G: 220, B: 90, A: 120}, false)
		}
	}
}

// drawHUD renders key hints and the cursor position in the bottom-left corner.
func (g *Game) drawHUD(screen *ebiten.Image) {
	lock := "-"
	if id, ok := g.camera.Locked(); ok {
		lock = id.String()
	}
	lines := []string{
		fmt.Sprintf("platforms: %d  selected: %d  lock: %s", len(g.session.Platforms()), len(g.controller.SelectedIDs()), lock),
		fmt.Sprintf("cursor: (%.1f, %.1f)  zoom: %.2fx", g.cursor.X, g.cursor.Z, g.camera.Zoom),
		"LMB spawn/select/build  Shift+LMB toggle  RMB move",
		"Up thrust  Esc deselect  L lock  9 screenshot",
		"C copy layout  F5 save  F9 load  H hide HUD",
		"WASD pan  scroll zoom",
	}

	const lineH, charW, padX, padY = 12, 6, 5, 4
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(4)
	by := float32(g.height) - boxH - 4

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 8, G: 10, B: 18, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 70, G: 90, B: 140, A: 180}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(bx)+padX, int(by)+padY+i*lineH)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
