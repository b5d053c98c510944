package gridcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func uniformDesc() Descriptor {
	return Descriptor{Nx: 5, Ny: 4, Nz: 3, OrigX: 0, OrigY: 0, OrigZ: 0, Dx: 1, Dy: 1, Dz: 1, Kind: Velocity}
}

func TestAllocateUniformBufferSize(t *testing.T) {
	g, err := Allocate(uniformDesc(), "uniform")
	require.NoError(t, err)
	require.Equal(t, 5*4*3, g.BufferLen())
}

func TestAddressingRoundTrip(t *testing.T) {
	g, err := Allocate(uniformDesc(), "uniform")
	require.NoError(t, err)

	d := &g.Desc
	for ix := 0; ix < d.Nx; ix++ {
		for iy := 0; iy < d.Ny; iy++ {
			for iz := 0; iz < d.Nz; iz++ {
				want := float64(ix*100 + iy*10 + iz)
				require.NoError(t, g.SetValueAt(ix, iy, iz, want))
				require.Equal(t, want, g.ValueAt(ix, iy, iz))
			}
		}
	}
}

func TestValueAtOutOfRangeReturnsNoValue(t *testing.T) {
	g, err := Allocate(uniformDesc(), "uniform")
	require.NoError(t, err)
	require.Equal(t, NoValue, g.ValueAt(-1, 0, 0))
	require.Equal(t, NoValue, g.ValueAt(0, 0, g.Desc.Nz))
}

func TestSetValueAtOutOfRangeErrors(t *testing.T) {
	g, err := Allocate(uniformDesc(), "uniform")
	require.NoError(t, err)
	err = g.SetValueAt(100, 0, 0, 1.0)
	require.Error(t, err)
}

func TestCascadingAllocationSizeScenarioS6(t *testing.T) {
	desc := Descriptor{
		Nx: 100, Ny: 100, Nz: 200,
		OrigX: 0, OrigY: 0, OrigZ: 0,
		Dx: 1, Dy: 1, Dz: 1,
		Kind:        Velocity,
		Cascading:   true,
		MergeDepths: []float64{50, 100, 150},
	}
	g, err := Allocate(desc, "cascading")
	require.NoError(t, err)

	// 100*100 + 50*50 + 25*25 + 13*13 = 13294 (spec.md scenario S6).
	require.Equal(t, 10000+2500+625+169, g.BufferLen())
	require.Equal(t, 13294, g.BufferLen())
}

func TestCascadingZIndexAssignment(t *testing.T) {
	desc := Descriptor{
		Nx: 10, Ny: 10, Nz: 200,
		OrigX: 0, OrigY: 0, OrigZ: 0,
		Dx: 1, Dy: 1, Dz: 1,
		Kind:        Velocity,
		Cascading:   true,
		MergeDepths: []float64{50, 100, 150},
	}
	g, err := Allocate(desc, "cascading")
	require.NoError(t, err)

	require.Equal(t, 0, g.zIndex[0])
	require.Equal(t, 0, g.zIndex[49])
	require.Equal(t, 1, g.zIndex[50])
	require.Equal(t, 1, g.zIndex[99])
	require.Equal(t, 2, g.zIndex[100])
	require.Equal(t, 3, g.zIndex[150])
	require.Equal(t, 3, g.zIndex[199])
}

func TestCascadingAliasedReadWrite(t *testing.T) {
	desc := Descriptor{
		Nx: 8, Ny: 8, Nz: 4,
		OrigX: 0, OrigY: 0, OrigZ: 0,
		Dx: 1, Dy: 1, Dz: 1,
		Kind:        Velocity,
		Cascading:   true,
		MergeDepths: []float64{2},
	}
	g, err := Allocate(desc, "cascading")
	require.NoError(t, err)

	// level 1 (iz >= 2) has scale 2: virtual x/y indices 2 and 3 both map
	// to physical index 1, so (2,3), (3,3) and (2,2) alias one cell.
	require.NoError(t, g.SetValueAt(2, 3, 2, 7.5))
	require.Equal(t, 7.5, g.ValueAt(3, 3, 2))
	require.Equal(t, 7.5, g.ValueAt(2, 2, 2))
}

func TestIsInsideAndOnBoundary(t *testing.T) {
	g, err := Allocate(uniformDesc(), "uniform")
	require.NoError(t, err)

	require.True(t, g.IsInside(0, 0, 0))
	require.True(t, g.IsInside(4, 3, 2))
	require.False(t, g.IsInside(5, 0, 0))
	require.False(t, g.IsInside(-1, 0, 0))

	require.True(t, g.OnBoundary(0.1, 1, 1, 0.5, 0.5, true))
	require.False(t, g.OnBoundary(2, 1, 1, 0.5, 0.5, true))
}

func TestValidateRejectsBadGeometry(t *testing.T) {
	d := uniformDesc()
	d.Dx = 0
	require.Error(t, d.Validate())

	d2 := uniformDesc()
	d2.Cascading = true
	d2.MergeDepths = []float64{10, 5}
	require.Error(t, d2.Validate())
}
