package main

import (
	"github.com/banshee-data/seismocore/internal/fsutil"
	"github.com/banshee-data/seismocore/internal/gridcore"
)

// loadGrid reads a grid's .hdr and companion .buf files off fs into a
// populated gridcore.Grid, always reading the .buf in native byte order (the
// header carries no byte-order tag, and gridtool never deals with swapped
// grids produced elsewhere).
func loadGrid(fs fsutil.FileSystem, hdrPath, bufPath string) (*gridcore.Grid, gridcore.Transform, error) {
	hf, err := fs.Open(hdrPath)
	if err != nil {
		return nil, gridcore.Transform{}, err
	}
	defer hf.Close()

	desc, transform, err := gridcore.ReadHeader(hf, hdrPath)
	if err != nil {
		return nil, gridcore.Transform{}, err
	}

	bf, err := fs.Open(bufPath)
	if err != nil {
		return nil, gridcore.Transform{}, err
	}
	defer bf.Close()

	g, err := gridcore.ReadBuf(bf, desc, bufPath, gridcore.Native)
	if err != nil {
		return nil, gridcore.Transform{}, err
	}
	return g, transform, nil
}

// saveGrid writes g's .hdr and companion .buf files to fs, in native byte
// order.
func saveGrid(fs fsutil.FileSystem, g *gridcore.Grid, transform gridcore.Transform, hdrPath, bufPath string) error {
	hf, err := fs.Create(hdrPath)
	if err != nil {
		return err
	}
	defer hf.Close()
	if err := g.WriteHeader(hf, transform); err != nil {
		return err
	}

	bf, err := fs.Create(bufPath)
	if err != nil {
		return err
	}
	defer bf.Close()
	return g.WriteBuf(bf, gridcore.Native)
}
