package locstats

import (
	"math"

	"github.com/banshee-data/seismocore/internal/vecmath"
)

// CalcCovarianceRectangular computes the (weighted) 3x3 sample covariance
// about expect in local rectangular coordinates, subtracting the
// expectation from each sample before accumulating cross products (stable
// for samples far from the coordinate origin, spec.md SS4.3).
func CalcCovarianceRectangular(samples []Sample, expect Expectation) Covariance {
	var c Covariance
	var sw float64
	for _, s := range samples {
		w := s.weight()
		x := s.X - expect.X
		y := s.Y - expect.Y
		z := s.Z - expect.Z
		c.XX += w * x * x
		c.XY += w * x * y
		c.XZ += w * x * z
		c.YY += w * y * y
		c.YZ += w * y * z
		c.ZZ += w * z * z
		sw += w
	}
	if sw == 0 {
		return Covariance{}
	}
	c.XX /= sw
	c.XY /= sw
	c.XZ /= sw
	c.YY /= sw
	c.YZ /= sw
	c.ZZ /= sw
	return c
}

// CalcCovarianceGlobal computes the (weighted) covariance of samples in
// geographic coordinates (X=longitude, Y=latitude degrees, Z=depth km)
// about a geographic expectation. Each sample's longitude is wrapped
// against expect.X, then projected to expect's local tangent plane via
// great-circle distance and azimuth (x = d*sin(az), y = d*cos(az), in
// km), before accumulating cross products — ported from
// CalcCovarianceSamplesGlobal in the NonLinLoc matrix_statistics sources.
func CalcCovarianceGlobal(samples []Sample, expect Expectation) Covariance {
	var c Covariance
	var sw float64
	for _, s := range samples {
		w := s.weight()
		wrappedLon := vecmath.WrapLongitude(s.X, expect.X)
		distDeg, azimuthDeg := vecmath.GreatCircleDistanceAzimuth(expect.Y, expect.X, s.Y, wrappedLon)
		dist := distDeg * vecmath.KmPerDeg
		azRad := azimuthDeg * vecmath.DegToRad

		x := dist * math.Sin(azRad)
		y := dist * math.Cos(azRad)
		z := s.Z - expect.Z

		c.XX += w * x * x
		c.XY += w * x * y
		c.XZ += w * x * z
		c.YY += w * y * y
		c.YZ += w * y * z
		c.ZZ += w * z * z
		sw += w
	}
	if sw == 0 {
		return Covariance{}
	}
	c.XX /= sw
	c.XY /= sw
	c.XZ /= sw
	c.YY /= sw
	c.YZ /= sw
	c.ZZ /= sw
	return c
}
