package world

import (
	"fmt"
	"strings"
)

// EditLogEntry is one recorded grid or command event.
type EditLogEntry struct {
	Tick     int
	Platform string // label e.g. "P0", or "--" for session-wide events
	Category string // platform, tile, building, select, command, camera
	Key      string // specific event name within the category
	Value    string // human-readable detail
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] P1   building  set              (0,2) engine
func (e EditLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Platform, e.Category, e.Key, e.Value)
}

// EditLog collects structured events emitted by the session. It is unbounded
// and machine-readable; the host mirrors entries into its on-screen panel
// through Subscribe.
type EditLog struct {
	entries []EditLogEntry
	subs    []func(EditLogEntry)
}

// NewEditLog creates an empty log.
func NewEditLog() *EditLog {
	return &EditLog{}
}

// Add records a new entry.
func (el *EditLog) Add(tick int, platform, category, key, value string) {
	e := EditLogEntry{
		Tick:     tick,
		Platform: platform,
		Category: category,
		Key:      key,
		Value:    value,
	}
	el.entries = append(el.entries, e)
	for _, fn := range el.subs {
		fn(e)
	}
}

// Subscribe registers fn to be called for every subsequent entry.
func (el *EditLog) Subscribe(fn func(EditLogEntry)) {
	el.subs = append(el.subs, fn)
}

// Entries returns all recorded entries.
func (el *EditLog) Entries() []EditLogEntry {
	return el.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EditLog) Filter(category, key string) []EditLogEntry {
	var out []EditLogEntry
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (el *EditLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (el *EditLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (el *EditLog) Format() string {
	var sb strings.Builder
	for _, e := range el.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
