package host

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Oneiron/internal/world"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 11
)

// categoryColors tints the marker next to each log line.
var categoryColors = map[string]color.RGBA{
	"platform": {R: 90, G: 170, B: 230, A: 255},
	"tile":     {R: 140, G: 150, B: 160, A: 255},
	"building": {R: 240, G: 140, B: 40, A: 255},
	"select":   {R: 230, G: 220, B: 90, A: 255},
	"command":  {R: 120, G: 210, B: 120, A: 255},
	"camera":   {R: 190, G: 120, B: 220, A: 255},
}

// LogPanel is a ring buffer of the latest edit log entries rendered on-screen.
type LogPanel struct {
	entries []world.EditLogEntry
	head    int
	count   int
}

// NewLogPanel creates a panel with a fixed capacity.
func NewLogPanel() *LogPanel {
	return &LogPanel{
		entries: make([]world.EditLogEntry, logMaxEntries),
	}
}

// Attach mirrors every future entry of el into the panel.
func (lp *LogPanel) Attach(el *world.EditLog) {
	el.Subscribe(lp.Add)
}

// Add appends an entry, overwriting the oldest when full.
func (lp *LogPanel) Add(e world.EditLogEntry) {
	lp.entries[lp.head] = e
	lp.head = (lp.head + 1) % logMaxEntries
	if lp.count < logMaxEntries {
		lp.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (lp *LogPanel) Recent() []world.EditLogEntry {
	result := make([]world.EditLogEntry, lp.count)
	for i := 0; i < lp.count; i++ {
		idx := (lp.head - lp.count + i + logMaxEntries) % logMaxEntries
		result[i] = lp.entries[idx]
	}
	return result
}

// Draw renders the panel along the right side of the screen.
func (lp *LogPanel) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 11, B: 16, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 24, B: 36, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EDIT LOG", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 60, B: 90, A: 200}, false)

	entries := lp.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / logLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}
	visible := entries[startIdx:]
	recent := 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 34, B: 50, A: 160}, false)
		}
		dot, ok := categoryColors[e.Category]
		if !ok {
			dot = color.RGBA{R: 200, G: 200, B: 200, A: 255}
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, dot, false)

		line := fmt.Sprintf("%4d [%s] %s %s", e.Tick, e.Platform, e.Key, e.Value)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += logLineHeight
	}
}
