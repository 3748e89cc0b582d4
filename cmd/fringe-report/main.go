package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/Oneiron/internal/catalog"
	"github.com/Garsondee/Oneiron/internal/grid"
	"github.com/Garsondee/Oneiron/internal/snapshot"
	"github.com/Garsondee/Oneiron/internal/world"
)

func main() {
	var pattern string
	var snapPath string
	var catalogPath string
	var stats bool
	var models bool

	flag.StringVar(&pattern, "pattern", "###/#E#/###", "layout rows north first, '/' separated ('#' bare, 'E' engine, 'S' spire, '.' empty)")
	flag.StringVar(&snapPath, "snapshot", "", "report on a saved session instead of a pattern")
	flag.StringVar(&catalogPath, "catalog", "", "resource catalog YAML (default: built-in)")
	flag.BoolVar(&stats, "stats", false, "print a histogram of element forms")
	flag.BoolVar(&models, "models", false, "print the model path of every rendered element")
	flag.Parse()

	var opts []world.SessionOption
	if catalogPath != "" {
		cat, err := catalog.Load(catalogPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, world.WithCatalog(cat))
	}

	var ts *world.TestSession
	var err error
	if snapPath != "" {
		ts, err = fromSnapshot(snapPath, opts...)
	} else {
		ts, err = fromPattern(pattern, opts...)
	}
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Fringe Report ===\n")
	if snapPath != "" {
		fmt.Printf("snapshot=%s platforms=%d\n\n", snapPath, len(ts.Session.Platforms()))
	} else {
		fmt.Printf("pattern=%q\n\n", pattern)
	}
	printReport(os.Stdout, ts, models)
	if stats {
		printHistogram(os.Stdout, formHistogram(ts.Session))
	}
}

func fromPattern(pattern string, opts ...world.SessionOption) (*world.TestSession, error) {
	if _, err := world.ParsePattern(pattern); err != nil {
		return nil, err
	}
	opts = append(opts, world.WithPlatformAt(0, 0, 0), world.WithPattern(0, pattern))
	return world.NewTestSession(opts...), nil
}

func fromSnapshot(path string, opts ...world.SessionOption) (*world.TestSession, error) {
	snap, err := snapshot.Read(path)
	if err != nil {
		return nil, err
	}
	ts := world.NewTestSession(opts...)
	if err := ts.Session.Import(snap); err != nil {
		return nil, err
	}
	return ts, nil
}

func printReport(w io.Writer, ts *world.TestSession, models bool) {
	for _, p := range ts.Session.Platforms() {
		fmt.Fprintf(w, "--- %s tiles=%d mass=%.0f ---\n", p.ID(), p.TileCount(), p.Mass())
		fmt.Fprint(w, p.Layout())
		for _, t := range p.Tiles() {
			fmt.Fprintf(w, "%-8s %-7s %s\n", t.Coord(), t.Building(), formLine(t))
			if !models {
				continue
			}
			for e := grid.Center; e < grid.ElementCount; e++ {
				m, ok := ts.Renderer.Model(p.ID(), t.Coord(), e)
				if !ok || m.Empty() {
					continue
				}
				fmt.Fprintf(w, "    %-9s %s [%s]\n", e, m.Path, strings.Join(m.Materials, " "))
			}
		}
		fmt.Fprintln(w)
	}
}

// formLine lists the nine element forms of a tile as element=form pairs.
func formLine(t *world.Tile) string {
	parts := make([]string, 0, grid.ElementCount)
	for e := grid.Center; e < grid.ElementCount; e++ {
		parts = append(parts, fmt.Sprintf("%s=%s", elementAbbrev[e], t.Form(e)))
	}
	return strings.Join(parts, " ")
}

var elementAbbrev = [grid.ElementCount]string{"C", "N", "E", "S", "W", "NE", "SE", "SW", "NW"}

func formHistogram(s *world.Session) map[catalog.Form]int {
	h := map[catalog.Form]int{}
	for _, p := range s.Platforms() {
		for _, t := range p.Tiles() {
			for _, f := range t.Forms() {
				h[f]++
			}
		}
	}
	return h
}

func printHistogram(w io.Writer, h map[catalog.Form]int) {
	forms := make([]catalog.Form, 0, len(h))
	for f := range h {
		forms = append(forms, f)
	}
	sort.Slice(forms, func(i, j int) bool {
		if h[forms[i]] != h[forms[j]] {
			return h[forms[i]] > h[forms[j]]
		}
		return forms[i] < forms[j]
	})
	fmt.Fprintf(w, "=== Form histogram ===\n")
	for _, f := range forms {
		fmt.Fprintf(w, "%-20s %d\n", f, h[f])
	}
}
