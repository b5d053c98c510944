package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/seismocore/internal/fsutil"
	"github.com/banshee-data/seismocore/internal/gridcore"
)

func TestLoadSaveGridRoundTripOnMemoryFS(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()

	desc := gridcore.Descriptor{
		Nx: 3, Ny: 3, Nz: 2,
		OrigX: 0, OrigY: 0, OrigZ: 0,
		Dx: 1, Dy: 1, Dz: 1,
		Kind: gridcore.Velocity,
	}
	g, err := gridcore.Allocate(desc, "roundtrip")
	require.NoError(t, err)
	g.Fill(4.5)

	require.NoError(t, saveGrid(fs, g, gridcore.Transform{Kind: "NONE"}, "grid.hdr", "grid.buf"))

	loaded, transform, err := loadGrid(fs, "grid.hdr", "grid.buf")
	require.NoError(t, err)
	require.Equal(t, "NONE", transform.Kind)
	require.Equal(t, desc.Nx, loaded.Desc.Nx)
	require.InDelta(t, 4.5, loaded.ValueAt(1, 1, 1), 1e-9)
}

func TestLoadGridMissingHeaderErrors(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	_, _, err := loadGrid(fs, "missing.hdr", "missing.buf")
	require.Error(t, err)
}
