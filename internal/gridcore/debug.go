package gridcore

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/seismocore/internal/coreerrs"
)

// DebugSnapshot is a point-in-time capture of a grid's full state, written
// alongside a run's working files when a caller asks the solver or
// composer to snapshot intermediate grids for offline inspection
// (spec.md SS4.1 ambient-stack expansion).
type DebugSnapshot struct {
	ID        string
	Title     string
	TakenAt   time.Time
	Desc      Descriptor
	Buf       []float64
	ZIndex    []int
	XYScale   []int
	LevelNx   []int
	LevelNy   []int
	LevelOffs []int
}

// Snapshot captures g's current state into a DebugSnapshot, stamping a
// fresh random ID.
func (g *Grid) Snapshot(takenAt time.Time) DebugSnapshot {
	return DebugSnapshot{
		ID:        uuid.NewString(),
		Title:     g.Title,
		TakenAt:   takenAt,
		Desc:      g.Desc,
		Buf:       append([]float64(nil), g.buf...),
		ZIndex:    append([]int(nil), g.zIndex...),
		XYScale:   append([]int(nil), g.xyScale...),
		LevelNx:   append([]int(nil), g.levelNx...),
		LevelNy:   append([]int(nil), g.levelNy...),
		LevelOffs: append([]int(nil), g.levelOffsets...),
	}
}

// Restore reconstructs a Grid from a DebugSnapshot.
func (s DebugSnapshot) Restore() *Grid {
	return &Grid{
		Desc:         s.Desc,
		Title:        s.Title,
		buf:          append([]float64(nil), s.Buf...),
		zIndex:       append([]int(nil), s.ZIndex...),
		xyScale:      append([]int(nil), s.XYScale...),
		levelNx:      append([]int(nil), s.LevelNx...),
		levelNy:      append([]int(nil), s.LevelNy...),
		levelOffsets: append([]int(nil), s.LevelOffs...),
	}
}

// WriteSnapshot gob-encodes and gzip-compresses a DebugSnapshot to w.
func WriteSnapshot(w io.Writer, s DebugSnapshot) error {
	gz := gzip.NewWriter(w)
	if err := gob.NewEncoder(gz).Encode(s); err != nil {
		return &coreerrs.IoError{Path: s.Title, Op: "encode debug snapshot", Err: err}
	}
	return gz.Close()
}

// ReadSnapshot decompresses and gob-decodes a DebugSnapshot from r.
func ReadSnapshot(r io.Reader) (DebugSnapshot, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return DebugSnapshot{}, &coreerrs.IoError{Path: "<stream>", Op: "open gzip debug snapshot", Err: err}
	}
	defer gz.Close()
	var s DebugSnapshot
	if err := gob.NewDecoder(gz).Decode(&s); err != nil {
		return DebugSnapshot{}, &coreerrs.IoError{Path: "<stream>", Op: "decode debug snapshot", Err: err}
	}
	return s, nil
}

// DumpSnapshotFile writes g's current state to path as a gob+gzip debug
// snapshot file.
func (g *Grid) DumpSnapshotFile(path string, takenAt time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return &coreerrs.IoError{Path: path, Op: "create debug snapshot", Err: err}
	}
	defer f.Close()
	return WriteSnapshot(f, g.Snapshot(takenAt))
}

// LoadSnapshotFile reads a gob+gzip debug snapshot file back into a Grid.
func LoadSnapshotFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &coreerrs.IoError{Path: path, Op: "open debug snapshot", Err: err}
	}
	defer f.Close()
	s, err := ReadSnapshot(f)
	if err != nil {
		return nil, err
	}
	return s.Restore(), nil
}

// snapshotBuffer is a helper for tests: round-trips a snapshot through an
// in-memory buffer without touching the filesystem.
func snapshotBuffer(s DebugSnapshot) (DebugSnapshot, error) {
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, s); err != nil {
		return DebugSnapshot{}, err
	}
	return ReadSnapshot(&buf)
}
