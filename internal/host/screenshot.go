package host

import (
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// Screenshots queues capture requests from the controller and writes them
// after the next frame has been drawn. It implements world.Screenshotter.
type Screenshots struct {
	pending []string
}

func (s *Screenshots) Capture(path string) {
	s.pending = append(s.pending, path)
}

// Pending returns the queued paths.
func (s *Screenshots) Pending() []string { return s.pending }

// Flush saves the finished frame to every queued path and empties the queue.
// The first error is returned; remaining paths are still attempted.
func (s *Screenshots) Flush(screen *ebiten.Image) error {
	if len(s.pending) == 0 {
		return nil
	}
	b := screen.Bounds()
	img := image.NewRGBA(b)
	screen.ReadPixels(img.Pix)

	var first error
	for _, path := range s.pending {
		if err := SavePNG(path, img); err != nil && first == nil {
			first = err
		}
	}
	s.pending = s.pending[:0]
	return first
}

// SavePNG writes img to path, creating parent directories.
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "screenshot dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create screenshot")
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	return f.Close()
}
