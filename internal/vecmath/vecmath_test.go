package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	assert.Equal(t, Vec3{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec3{-3, -3, -3}, a.Sub(b))
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.InDelta(t, 32.0, a.Dot(b), 1e-9)
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	z := x.Cross(y)
	assert.InDelta(t, 0.0, z.X, 1e-12)
	assert.InDelta(t, 0.0, z.Y, 1e-12)
	assert.InDelta(t, 1.0, z.Z, 1e-12)
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}
	n := v.Normalize()
	assert.InDelta(t, 1.0, n.Norm(), 1e-12)

	zero := Vec3{}.Normalize()
	assert.Equal(t, Vec3{}, zero)
}

func TestGeocentricColatitudeEquator(t *testing.T) {
	// At the equator geodetic == geocentric latitude (0), so colatitude is pi/2.
	colat := GeocentricColatitude(0.0)
	assert.InDelta(t, math.Pi/2.0, colat, 1e-9)
}

func TestGeocentricColatitudePole(t *testing.T) {
	colat := GeocentricColatitude(90.0)
	assert.InDelta(t, 0.0, colat, 1e-6)
}

func TestGreatCircleDistanceAzimuthZero(t *testing.T) {
	dist, az := GreatCircleDistanceAzimuth(10, 20, 10, 20)
	assert.InDelta(t, 0.0, dist, 1e-9)
	assert.InDelta(t, 0.0, az, 1e-9)
}

func TestGreatCircleDistanceAzimuthDueNorth(t *testing.T) {
	// Point B due north of A: azimuth should be 0.
	dist, az := GreatCircleDistanceAzimuth(0, 0, 10, 0)
	assert.InDelta(t, 10.0, dist, 1e-6)
	assert.InDelta(t, 0.0, az, 1e-6)
}

func TestGreatCircleDistanceAzimuthDueEast(t *testing.T) {
	dist, az := GreatCircleDistanceAzimuth(0, 0, 0, 10)
	assert.InDelta(t, 10.0, dist, 1e-6)
	assert.InDelta(t, 90.0, az, 1e-6)
}

func TestWrapLongitude(t *testing.T) {
	assert.InDelta(t, 180.5, WrapLongitude(-179.5, 180.0), 1e-9)
	assert.InDelta(t, -179.8, WrapLongitude(-179.8, 0.0), 1e-9)
	assert.InDelta(t, 10.0, WrapLongitude(10.0, 0.0), 1e-9)
}

func TestWrapDegrees(t *testing.T) {
	assert.InDelta(t, 10.0, WrapDegrees(370.0), 1e-9)
	assert.InDelta(t, 350.0, WrapDegrees(-10.0), 1e-9)
}

func TestClampDip(t *testing.T) {
	assert.InDelta(t, 90.0, ClampDip(120.0), 1e-9)
	assert.InDelta(t, -90.0, ClampDip(-120.0), 1e-9)
	assert.InDelta(t, 45.0, ClampDip(45.0), 1e-9)
}
