package locstats

import (
	"math"

	"github.com/banshee-data/seismocore/internal/svd"
	"github.com/banshee-data/seismocore/internal/vecmath"
)

// Delta-chi-squared values for 68% confidence at 3 and 2 degrees of
// freedom, per spec.md SS4.3.
const (
	DeltaChiSq3DOF = 3.53
	DeltaChiSq2DOF = 2.30
)

// Ellipsoid3D is a NonLinLoc-style confidence ellipsoid: three orthogonal
// axes sorted ascending by length (1=minor, 2=intermediate, 3=major),
// each with an azimuth (clockwise from north) and dip (positive down) in
// degrees.
type Ellipsoid3D struct {
	Len1, Len2, Len3 float64
	Az1, Dip1        float64
	Az2, Dip2        float64
	Az3, Dip3        float64
}

// ExtractEllipsoid3D derives the confidence ellipsoid from a covariance
// matrix via its SVD: singular values w1<=w2<=w3 give axis lengths
// sqrt(deltaChiSq*w_i); the matching eigenvector gives each axis's azimuth
// (atan2(Vx,Vy)) and dip (asin(Vz)). Fails with DegenerateCovariance if
// any singular value falls below svd.SmallDouble.
func ExtractEllipsoid3D(c Covariance, deltaChiSq float64) (Ellipsoid3D, error) {
	w, v, err := svd.Sym3x3SVD(c.Matrix())
	if err != nil {
		return Ellipsoid3D{}, err
	}

	lens := [3]float64{}
	azs := [3]float64{}
	dips := [3]float64{}
	for i := 0; i < 3; i++ {
		lens[i] = math.Sqrt(deltaChiSq * w[i])
		vx, vy, vz := v[0][i], v[1][i], v[2][i]
		az := math.Atan2(vx, vy) * vecmath.RadToDeg
		azs[i] = vecmath.WrapDegrees(az)
		dips[i] = math.Asin(clampUnit(vz)) * vecmath.RadToDeg
	}

	return Ellipsoid3D{
		Len1: lens[0], Az1: azs[0], Dip1: dips[0],
		Len2: lens[1], Az2: azs[1], Dip2: dips[1],
		Len3: lens[2], Az3: azs[2], Dip3: dips[2],
	}, nil
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// Ellipse2D is the horizontal (xx,xy,xy,yy) confidence ellipse: two axes
// sorted ascending by length, with azimuths in degrees.
type Ellipse2D struct {
	Len1, Len2 float64
	Az1, Az2   float64
}

// ExtractEllipse2D derives the 2D horizontal confidence ellipse from the
// xx/xy/yy sub-matrix of a covariance, using the same SVD-based procedure
// as ExtractEllipsoid3D restricted to two dimensions.
func ExtractEllipse2D(c Covariance, deltaChiSq float64) (Ellipse2D, error) {
	w, v, err := svd.Sym2x2SVD([2][2]float64{{c.XX, c.XY}, {c.XY, c.YY}})
	if err != nil {
		return Ellipse2D{}, err
	}
	az0 := vecmath.WrapDegrees(math.Atan2(v[0][0], v[1][0]) * vecmath.RadToDeg)
	az1 := vecmath.WrapDegrees(math.Atan2(v[0][1], v[1][1]) * vecmath.RadToDeg)
	return Ellipse2D{
		Len1: math.Sqrt(deltaChiSq * w[0]), Az1: az0,
		Len2: math.Sqrt(deltaChiSq * w[1]), Az2: az1,
	}, nil
}
