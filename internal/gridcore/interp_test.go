package gridcore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func fillLinear(t *testing.T, g *Grid) {
	t.Helper()
	d := &g.Desc
	for ix := 0; ix < d.Nx; ix++ {
		for iy := 0; iy < d.Ny; iy++ {
			for iz := 0; iz < d.Nz; iz++ {
				v := float64(ix) + 2*float64(iy) + 3*float64(iz)
				require.NoError(t, g.SetValueAt(ix, iy, iz, v))
			}
		}
	}
}

func TestInterpIdentityAtNodesUniform(t *testing.T) {
	desc := Descriptor{Nx: 6, Ny: 5, Nz: 4, OrigX: 10, OrigY: -5, OrigZ: 0, Dx: 2, Dy: 1.5, Dz: 1, Kind: Velocity}
	g, err := Allocate(desc, "lin")
	require.NoError(t, err)
	fillLinear(t, g)

	d := &g.Desc
	for ix := 0; ix < d.Nx; ix++ {
		for iy := 0; iy < d.Ny; iy++ {
			for iz := 0; iz < d.Nz; iz++ {
				x := d.OrigX + float64(ix)*d.Dx
				y := d.OrigY + float64(iy)*d.Dy
				z := d.OrigZ + float64(iz)*d.Dz
				want := g.ValueAt(ix, iy, iz)
				got := g.InterpAt(x, y, z)
				require.InDelta(t, want, got, 1e-9)
			}
		}
	}
}

func TestInterpLinearFieldIsExactBetweenNodes(t *testing.T) {
	desc := Descriptor{Nx: 4, Ny: 4, Nz: 4, OrigX: 0, OrigY: 0, OrigZ: 0, Dx: 1, Dy: 1, Dz: 1, Kind: Velocity}
	g, err := Allocate(desc, "lin")
	require.NoError(t, err)
	fillLinear(t, g)

	got := g.InterpAt(1.5, 2.25, 0.75)
	want := 1.5 + 2*2.25 + 3*0.75
	require.InDelta(t, want, got, 1e-9)
}

func TestInterpOutOfRangeReturnsNoValue(t *testing.T) {
	desc := Descriptor{Nx: 4, Ny: 4, Nz: 4, OrigX: 0, OrigY: 0, OrigZ: 0, Dx: 1, Dy: 1, Dz: 1, Kind: Velocity}
	g, err := Allocate(desc, "lin")
	require.NoError(t, err)
	fillLinear(t, g)

	require.Equal(t, NoValue, g.InterpAt(-1, 0, 0))
	require.Equal(t, NoValue, g.InterpAt(0, 0, 100))
}

func TestInterpMaskedCornerPropagatesNoValue(t *testing.T) {
	desc := Descriptor{Nx: 4, Ny: 4, Nz: 4, OrigX: 0, OrigY: 0, OrigZ: 0, Dx: 1, Dy: 1, Dz: 1, Kind: Velocity}
	g, err := Allocate(desc, "lin")
	require.NoError(t, err)
	fillLinear(t, g)
	require.NoError(t, g.SetValueAt(1, 1, 1, -5)) // negative on a non-negative-domain kind

	got := g.InterpAt(0.5, 0.5, 0.5)
	require.Equal(t, NoValue, got)
}

func cascadingConstDesc(constVal float64) *Grid {
	desc := Descriptor{
		Nx: 16, Ny: 16, Nz: 10,
		OrigX: 0, OrigY: 0, OrigZ: 0,
		Dx: 1, Dy: 1, Dz: 1,
		Kind:        Velocity,
		Cascading:   true,
		MergeDepths: []float64{3, 6},
	}
	g, _ := Allocate(desc, "cascading-const")
	g.Fill(constVal)
	return g
}

func TestCascadingContinuityConstantField(t *testing.T) {
	const constVal = 4.25
	g := cascadingConstDesc(constVal)

	samples := [][3]float64{
		{0, 0, 0}, {2.5, 3.7, 0}, {7.9, 1.1, 2.99}, {8.0, 8.0, 3.0},
		{8.0, 8.0, 5.99}, {8.0, 8.0, 6.0}, {15, 15, 9}, {0.5, 0.5, 2.999},
	}
	for _, s := range samples {
		got := g.InterpAt(s[0], s[1], s[2])
		require.InDelta(t, constVal, got, 1e-9, "at %v", s)
	}
}

func TestCascadingIdentityAtScaleAlignedNodes(t *testing.T) {
	desc := Descriptor{
		Nx: 16, Ny: 16, Nz: 10,
		OrigX: 0, OrigY: 0, OrigZ: 0,
		Dx: 1, Dy: 1, Dz: 1,
		Kind:        Velocity,
		Cascading:   true,
		MergeDepths: []float64{3, 6},
	}
	g, err := Allocate(desc, "cascading")
	require.NoError(t, err)

	// Level 2 (iz>=6) has scale 4; write at scale-aligned virtual nodes.
	for ix := 0; ix < 16; ix += 4 {
		for iy := 0; iy < 16; iy += 4 {
			require.NoError(t, g.SetValueAt(ix, iy, 7, float64(ix+iy)))
		}
	}
	for ix := 0; ix < 16; ix += 4 {
		for iy := 0; iy < 16; iy += 4 {
			want := g.ValueAt(ix, iy, 7)
			got := g.InterpAt(float64(ix), float64(iy), 7)
			require.InDelta(t, want, got, 1e-9)
		}
	}
}

func TestLocalCoordForLevelMapsFinalTruncatedCell(t *testing.T) {
	// nx=10, scale=4 -> nxL=ceil(10/4)=3, physical cells cover virtual
	// [0,4), [4,8), and a truncated final cell [8,9].
	got := localCoordForLevel(9, 10, 4, 3)
	require.InDelta(t, 2.0, got, 1e-9)

	got = localCoordForLevel(4, 10, 4, 3)
	require.InDelta(t, 1.0, got, 1e-9) // a regular scale-aligned node: 4/scale = 1
}

func TestTrilerpMatchesManualInterpolation(t *testing.T) {
	v := trilerp(0, 1, 0, 1, 0, 1, 0, 1, 0.5, 0.5, 0.5)
	require.InDelta(t, 0.5, v, 1e-12)
	require.False(t, math.IsNaN(v))
}
