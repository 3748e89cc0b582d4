// Package snapshot persists session layouts as zstd-compressed JSON.
package snapshot

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Version is the current snapshot format version.
const Version = 1

// Header is written as the first line so tools can peek without decoding the
// whole body.
type Header struct {
	Version int `json:"version"`
	Tick    int `json:"tick"`
}

// SessionV1 is the persisted layout of every platform in a session.
type SessionV1 struct {
	Header    Header       `json:"header"`
	Platforms []PlatformV1 `json:"platforms"`
}

// PlatformV1 is one platform.
type PlatformV1 struct {
	ID       int        `json:"id"`
	Position [3]float64 `json:"position"`
	Tiles    []TileV1   `json:"tiles"`
}

// TileV1 is one tile; Building is the building type name.
type TileV1 struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Building string `json:"building,omitempty"`
}

// Write stores snap at path, creating parent directories.
func Write(path string, snap SessionV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "snapshot dir")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrap(err, "open snapshot")
	}
	defer f.Close()
	if err := Encode(f, snap); err != nil {
		return err
	}
	return f.Close()
}

// Encode writes snap to w.
func Encode(w io.Writer, snap SessionV1) error {
	snap.Header.Version = Version
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return errors.Wrap(err, "zstd writer")
	}
	defer enc.Close()
	bw := bufio.NewWriter(enc)

	hb, err := json.Marshal(snap.Header)
	if err != nil {
		return errors.Wrap(err, "encode header")
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		return errors.Wrap(err, "write header")
	}
	if err := json.NewEncoder(bw).Encode(&snap); err != nil {
		return errors.Wrap(err, "encode snapshot")
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "flush snapshot")
	}
	return errors.Wrap(enc.Close(), "close zstd writer")
}

// Read loads a snapshot from path.
func Read(path string) (SessionV1, error) {
	f, err := os.Open(path)
	if err != nil {
		return SessionV1{}, errors.Wrap(err, "open snapshot")
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a snapshot from r.
func Decode(r io.Reader) (SessionV1, error) {
	var snap SessionV1
	dec, err := zstd.NewReader(r)
	if err != nil {
		return snap, errors.Wrap(err, "zstd reader")
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	var h Header
	line, err := br.ReadBytes('\n')
	if err != nil {
		return snap, errors.Wrap(err, "read header")
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return snap, errors.Wrap(err, "decode header")
	}
	if h.Version != Version {
		return snap, errors.Errorf("snapshot version %d not supported", h.Version)
	}
	if err := json.NewDecoder(br).Decode(&snap); err != nil {
		return snap, errors.Wrap(err, "decode snapshot")
	}
	return snap, nil
}
