package gridcore

import "math"

// AnglesOffset is the packing base used to fold quality, azimuth, and dip
// into a single float64 grid cell: a power of ten comfortably larger than
// either field's range (azimuth packed at 0.1 deg resolution spans
// [0,3600), dip-offset in [0,180)), so the three fields can be recovered
// by integer division and remainder without any field bleeding into its
// neighbor.
const AnglesOffset = 10000.0

// AnglesDipReverse marks a packed angle's quality field when the dip was
// derived from a 2D (radial) angle grid and reflects the reversed take-off
// sense used for up-going rays, per spec.md SS4.1's angle grid discussion.
const AnglesDipReverse = -1

// AnglesNullQuality marks a cell for which no take-off angle could be
// determined (e.g. the source cell itself, or a masked grid node).
const AnglesNullQuality = -9999

// TakeoffAngles is the unpacked angle triple stored at one angle-grid node:
// azimuth in degrees [0,360), dip in degrees [-90,90] (positive down), and
// an integer quality code.
type TakeoffAngles struct {
	Azimuth float64
	Dip     float64
	Quality int
}

// IsNull reports whether a holds no determined take-off angle.
func (a TakeoffAngles) IsNull() bool { return a.Quality == AnglesNullQuality }

// EncodeAngles packs a TakeoffAngles triple into the single float64 stored
// in an angle grid cell. Azimuth is packed at 0.1 deg resolution (mirroring
// the original's round(10*azim) packing) so it survives the round trip to
// within a tenth of a degree rather than truncating to whole degrees.
func EncodeAngles(a TakeoffAngles) float64 {
	if a.IsNull() {
		return NoValue
	}
	az := math.Mod(a.Azimuth, 360)
	if az < 0 {
		az += 360
	}
	az10 := math.Floor(0.5 + 10*az)
	dipOffset := a.Dip + 90
	return float64(a.Quality)*AnglesOffset*AnglesOffset + az10*AnglesOffset + dipOffset
}

// DecodeAngles unpacks a stored angle-grid cell value back into its
// azimuth, dip, and quality fields. A value at or below NoValue decodes to
// the null angle.
func DecodeAngles(packed float64) TakeoffAngles {
	if packed <= NoValue {
		return TakeoffAngles{Quality: AnglesNullQuality}
	}
	quality := int(math.Floor(packed / (AnglesOffset * AnglesOffset)))
	rem := packed - float64(quality)*AnglesOffset*AnglesOffset
	az10 := math.Floor(rem / AnglesOffset)
	dipOffset := rem - az10*AnglesOffset
	return TakeoffAngles{Azimuth: az10 / 10.0, Dip: dipOffset - 90, Quality: quality}
}

// InterpolateAngles blends two take-off angle samples by frac in [0,1],
// using a circular mean for azimuth (so 359 deg and 1 deg average to 0 deg,
// not 180 deg) and a linear blend for dip. The lower quality of the two
// inputs is kept; either input being null makes the result null.
func InterpolateAngles(a, b TakeoffAngles, frac float64) TakeoffAngles {
	if a.IsNull() || b.IsNull() {
		return TakeoffAngles{Quality: AnglesNullQuality}
	}
	aRad := a.Azimuth * math.Pi / 180
	bRad := b.Azimuth * math.Pi / 180
	x := (1-frac)*math.Cos(aRad) + frac*math.Cos(bRad)
	y := (1-frac)*math.Sin(aRad) + frac*math.Sin(bRad)
	az := math.Atan2(y, x) * 180 / math.Pi
	if az < 0 {
		az += 360
	}
	dip := (1-frac)*a.Dip + frac*b.Dip
	quality := a.Quality
	if b.Quality < quality {
		quality = b.Quality
	}
	return TakeoffAngles{Azimuth: az, Dip: dip, Quality: quality}
}
