package locstats

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/seismocore/internal/vecmath"
)

// TaitBryan is the QuakeML confidence-ellipsoid representation: semi-axis
// lengths plus the three Tait-Bryan angles locating the major axis and the
// residual rotation about it.
type TaitBryan struct {
	SemiMajor, SemiMinor, SemiIntermediate float64
	MajorAzimuth, MajorPlunge, MajorRotation float64
}

func unitAxis(azDeg, dipDeg float64) []float64 {
	az := azDeg * vecmath.DegToRad
	dip := dipDeg * vecmath.DegToRad
	return []float64{math.Cos(az) * math.Cos(dip), math.Sin(az) * math.Cos(dip), math.Sin(dip)}
}

func rotZ(psi float64) *mat.Dense {
	c, s := math.Cos(psi), math.Sin(psi)
	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

func rotY(phi float64) *mat.Dense {
	c, s := math.Cos(phi), math.Sin(phi)
	return mat.NewDense(3, 3, []float64{
		c, 0, -s,
		0, 1, 0,
		s, 0, c,
	})
}

// ToTaitBryan converts a NonLinLoc Ellipsoid3D to its QuakeML Tait-Bryan
// representation, following nllEllipsiod2QMLConfidenceEllipsoid: build the
// axis matrix T (rows = major, minor, intermediate unit axes), then
// right-multiply by R_psi (about z by the major axis azimuth) and R_phi
// (about y by the major axis plunge) to rotate the major axis onto the
// canonical x-axis. Because T's rows are row vectors multiplied on the
// right, this composition already performs the inverse of the (az,dip)
// orientation — R_psi/R_phi must NOT be additionally inverted, or the
// rotation is undone twice over. The residual rotation angle is read off
// row 1 (the minor axis row) of the result.
func ToTaitBryan(e Ellipsoid3D) (TaitBryan, error) {
	major := unitAxis(e.Az3, e.Dip3)
	minor := unitAxis(e.Az1, e.Dip1)
	inter := unitAxis(e.Az2, e.Dip2)

	t := mat.NewDense(3, 3, append(append(append([]float64{}, major...), minor...), inter...))

	rpsi := rotZ(e.Az3 * vecmath.DegToRad)
	rphi := rotY(e.Dip3 * vecmath.DegToRad)

	var step, result mat.Dense
	step.Mul(t, rpsi)
	result.Mul(&step, rphi)

	theta := math.Atan2(result.At(1, 2), result.At(1, 1)) * vecmath.RadToDeg
	theta = vecmath.WrapDegrees(theta)

	return TaitBryan{
		SemiMajor:        e.Len3,
		SemiMinor:        e.Len1,
		SemiIntermediate: e.Len2,
		MajorAzimuth:     vecmath.WrapDegrees(e.Az3),
		MajorPlunge:      e.Dip3,
		MajorRotation:    theta,
	}, nil
}

// FromTaitBryan reconstructs an Ellipsoid3D from a TaitBryan
// representation: the major axis is (MajorAzimuth, MajorPlunge) directly,
// and the minor/intermediate axes are recovered by running ToTaitBryan's
// row-vector transform in reverse — rotating the canonical
// (0,cos theta,sin theta) / (0,-sin theta,cos theta) pair back through
// R_phi and R_psi. The reversed transform comes out mirrored in the x
// component relative to ToTaitBryan's forward convention, so that
// component is negated before reading off azimuth/dip.
func FromTaitBryan(tb TaitBryan) Ellipsoid3D {
	rpsi := rotZ(tb.MajorAzimuth * vecmath.DegToRad)
	rphi := rotY(tb.MajorPlunge * vecmath.DegToRad)
	theta := tb.MajorRotation * vecmath.DegToRad

	minorRow := mat.NewDense(1, 3, []float64{0, math.Cos(theta), math.Sin(theta)})
	interRow := mat.NewDense(1, 3, []float64{0, -math.Sin(theta), math.Cos(theta)})

	recoverAxis := func(row *mat.Dense) (az, dip float64) {
		var step, result mat.Dense
		step.Mul(row, rphi)
		result.Mul(&step, rpsi)
		x, y, z := -result.At(0, 0), result.At(0, 1), result.At(0, 2)
		az = vecmath.WrapDegrees(math.Atan2(y, x) * vecmath.RadToDeg)
		dip = math.Asin(clampUnit(z)) * vecmath.RadToDeg
		return
	}

	az1, dip1 := recoverAxis(minorRow)
	az2, dip2 := recoverAxis(interRow)

	return Ellipsoid3D{
		Len1: tb.SemiMinor, Az1: az1, Dip1: dip1,
		Len2: tb.SemiIntermediate, Az2: az2, Dip2: dip2,
		Len3: tb.SemiMajor, Az3: vecmath.WrapDegrees(tb.MajorAzimuth), Dip3: tb.MajorPlunge,
	}
}
