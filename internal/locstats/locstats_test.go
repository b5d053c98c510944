package locstats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpectationRectangular(t *testing.T) {
	samples := []Sample{{X: 1, Y: 2, Z: 3}, {X: 3, Y: 4, Z: 5}}
	e := CalcExpectationRectangular(samples)
	require.InDelta(t, 2.0, e.X, 1e-9)
	require.InDelta(t, 3.0, e.Y, 1e-9)
	require.InDelta(t, 4.0, e.Z, 1e-9)
}

func TestExpectationWeighted(t *testing.T) {
	samples := []Sample{{X: 0, Weight: 1}, {X: 10, Weight: 3}}
	e := CalcExpectationRectangular(samples)
	require.InDelta(t, 7.5, e.X, 1e-9)
}

// TestCovarianceSymmetry covers testable property 7.
func TestCovarianceSymmetry(t *testing.T) {
	samples := []Sample{{X: 1, Y: 2, Z: 3}, {X: -2, Y: 5, Z: 1}, {X: 4, Y: -1, Z: 0}}
	e := CalcExpectationRectangular(samples)
	c := CalcCovarianceRectangular(samples, e)
	require.Equal(t, c.XY, c.XY) // symmetric storage has no separate YX entry
	mat := c.Matrix()
	require.Equal(t, mat[0][1], mat[1][0])
	require.Equal(t, mat[0][2], mat[2][0])
	require.Equal(t, mat[1][2], mat[2][1])
}

// TestGlobalCovarianceWrapScenarioS5 covers scenario S5: longitudes near the
// antimeridian must not be averaged naively.
func TestGlobalCovarianceWrapScenarioS5(t *testing.T) {
	samples := []Sample{
		{X: 179.5, Y: 10, Z: 5},
		{X: 179.8, Y: 10, Z: 5},
		{X: -179.9, Y: 10, Z: 5},
		{X: -179.6, Y: 10, Z: 5},
	}
	e := CalcExpectationGlobal(samples, samples[0].X)
	require.True(t, e.X > 179 || e.X < -179, "expected longitude near the antimeridian, got %v", e.X)

	c := CalcCovarianceGlobal(samples, e)
	// Small variance: every sample lies within 0.45 degrees of longitude
	// (about 49 km at latitude 10) of the wrapped expectation, so XX, in
	// km^2, stays below 50^2; an unwrapped average would put the
	// expectation near 0 and XX near 1e8.
	require.Less(t, c.XX, 2500.0)
}

func TestEllipsoidExtractionScenarioS3(t *testing.T) {
	c := Covariance{XX: 2063.45, XY: 583.753, XZ: 85.5223, YY: 11110.7, YZ: -248.964, ZZ: 953.632}
	e, err := ExtractEllipsoid3D(c, DeltaChiSq3DOF)
	require.NoError(t, err)
	require.LessOrEqual(t, e.Len1, e.Len2)
	require.LessOrEqual(t, e.Len2, e.Len3)
	require.GreaterOrEqual(t, e.Az1, 0.0)
	require.Less(t, e.Az1, 360.0)
	require.GreaterOrEqual(t, e.Az2, 0.0)
	require.Less(t, e.Az2, 360.0)
	require.GreaterOrEqual(t, e.Az3, 0.0)
	require.Less(t, e.Az3, 360.0)
}

func TestEllipsoidDegenerateCovariance(t *testing.T) {
	_, err := ExtractEllipsoid3D(Covariance{}, DeltaChiSq3DOF)
	require.Error(t, err)
}

// TestTaitBryanVectorScenarioS4 covers scenario S4's literal test vector.
func TestTaitBryanVectorScenarioS4(t *testing.T) {
	e := Ellipsoid3D{
		Len1: 6.1, Az1: 310, Dip1: 83,
		Len2: 10.9, Az2: 49, Dip2: 1,
		Len3: 16.0, Az3: 139, Dip3: 6,
	}
	tb, err := ToTaitBryan(e)
	require.NoError(t, err)

	require.InDelta(t, 16.0, tb.SemiMajor, 1e-6)
	require.InDelta(t, 6.1, tb.SemiMinor, 1e-6)
	require.InDelta(t, 10.9, tb.SemiIntermediate, 1e-6)
	require.InDelta(t, 139, tb.MajorAzimuth, 1e-6)
	require.InDelta(t, 6, tb.MajorPlunge, 1e-6)
	require.InDelta(t, 88.9075, tb.MajorRotation, 1e-3)
}

// TestTaitBryanRoundTrip covers testable property 9.
func TestTaitBryanRoundTrip(t *testing.T) {
	e := Ellipsoid3D{
		Len1: 6.1, Az1: 310, Dip1: 83,
		Len2: 10.9, Az2: 49, Dip2: 1,
		Len3: 16.0, Az3: 139, Dip3: 6,
	}
	tb, err := ToTaitBryan(e)
	require.NoError(t, err)

	back := FromTaitBryan(tb)
	require.InDelta(t, e.Len1, back.Len1, 1e-6)
	require.InDelta(t, e.Len2, back.Len2, 1e-6)
	require.InDelta(t, e.Len3, back.Len3, 1e-6)
	require.InDelta(t, e.Az3, back.Az3, 1e-3)
	require.InDelta(t, e.Dip3, back.Dip3, 1e-3)
}

func TestEllipse2D(t *testing.T) {
	c := Covariance{XX: 10, XY: 2, YY: 5}
	el, err := ExtractEllipse2D(c, DeltaChiSq2DOF)
	require.NoError(t, err)
	require.LessOrEqual(t, el.Len1, el.Len2)
}

func TestCovarianceGlobalMatchesRectangularNearOrigin(t *testing.T) {
	// At low latitude with small offsets, great-circle projection should
	// closely approximate the flat rectangular case.
	lat, lon := 0.0, 0.0
	samples := []Sample{
		{X: lon, Y: lat, Z: 0},
		{X: lon + 0.01, Y: lat, Z: 1},
		{X: lon, Y: lat + 0.01, Z: -1},
		{X: lon - 0.01, Y: lat, Z: 0},
	}
	e := CalcExpectationGlobal(samples, lon)
	c := CalcCovarianceGlobal(samples, e)
	require.False(t, math.IsNaN(c.XX))
	require.False(t, math.IsNaN(c.YY))
}
