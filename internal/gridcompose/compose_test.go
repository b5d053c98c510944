package gridcompose

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banshee-data/seismocore/internal/gridcore"
)

func radialSection(t *testing.T, azimuth, value float64) Section {
	t.Helper()
	desc := gridcore.Descriptor{
		Nx: 10, Ny: 2, Nz: 1,
		OrigX: 0, OrigY: 0, OrigZ: 0,
		Dx: 1, Dy: 1, Dz: 1,
		Kind: gridcore.Velocity,
	}
	g, err := gridcore.Allocate(desc, "section")
	require.NoError(t, err)
	g.Fill(value)
	return Section{Azimuth: azimuth, CenterX: 0, CenterY: 0, Grid: g}
}

func TestComposeRequiresAtLeastTwoSections(t *testing.T) {
	_, err := ComposeFromSections([]Section{radialSection(t, 0, 1)}, gridcore.Descriptor{
		Nx: 2, Ny: 2, Nz: 1, Dx: 1, Dy: 1, Dz: 1, Kind: gridcore.Velocity,
	})
	require.Error(t, err)
}

func TestComposeRejectsMismatchedCenters(t *testing.T) {
	a := radialSection(t, 0, 1)
	b := radialSection(t, 90, 2)
	b.CenterX = 5
	_, err := ComposeFromSections([]Section{a, b}, gridcore.Descriptor{
		Nx: 4, Ny: 4, Nz: 1, Dx: 1, Dy: 1, Dz: 1, Kind: gridcore.Velocity,
	})
	require.Error(t, err)
}

func TestComposeConstantSectionsYieldConstantField(t *testing.T) {
	sections := []Section{
		radialSection(t, 0, 5),
		radialSection(t, 90, 5),
		radialSection(t, 180, 5),
		radialSection(t, 270, 5),
	}
	desc := gridcore.Descriptor{
		Nx: 6, Ny: 6, Nz: 1,
		OrigX: -2, OrigY: -2, OrigZ: 0,
		Dx: 1, Dy: 1, Dz: 1,
		Kind: gridcore.Velocity,
	}
	out, err := ComposeFromSections(sections, desc)
	require.NoError(t, err)
	for ix := 0; ix < desc.Nx; ix++ {
		for iy := 0; iy < desc.Ny; iy++ {
			require.InDelta(t, 5.0, out.ValueAt(ix, iy, 0), 1e-6)
		}
	}
}

func TestBracketAzimuthWrapsAround360(t *testing.T) {
	ordered := []Section{{Azimuth: 300}, {Azimuth: 30}}
	lo, hi, frac := bracketAzimuth(ordered, 345)
	require.Equal(t, 0, lo)
	require.Equal(t, 1, hi)
	require.InDelta(t, 0.5, frac, 1e-9)
}

func TestBlendPropagatesMaskedValues(t *testing.T) {
	require.Equal(t, gridcore.NoValue, blend(gridcore.NoValue, gridcore.NoValue, 0.5))
	require.Equal(t, 3.0, blend(gridcore.NoValue, 3.0, 0.5))
	require.Equal(t, 3.0, blend(3.0, gridcore.NoValue, 0.5))
}
