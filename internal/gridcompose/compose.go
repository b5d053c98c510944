package gridcompose

import (
	"math"
	"sort"

	"github.com/banshee-data/seismocore/internal/coreerrs"
	"github.com/banshee-data/seismocore/internal/gridcore"
)

// bracket is a resolved per-cell lookup: the pair of sections bracketing
// the cell's azimuth from the shared center, the fraction between them,
// and the cell's radial distance from the center.
type bracket struct {
	lo, hi   int     // indices into the sorted sections slice
	frac     float64 // 0 at lo's azimuth, 1 at hi's azimuth
	radius   float64
}

// ComposeFromSections builds a 3D grid at desc's geometry by bracketing
// each output cell between the two nearest sections by azimuth (from their
// shared center), looking up each section's radial profile at that
// distance and the cell's depth, and blending: first depth-interpolated
// within each section (the section's own trilinear interpolation), then
// circularly interpolated between the two sections by azimuth fraction.
//
// Mirrors the teacher's accumulate-then-resolve two-pass shape: pass one
// assigns each output cell its bracketing section pair and azimuth
// fraction, pass two resolves the actual interpolated value.
func ComposeFromSections(sections []Section, desc gridcore.Descriptor) (*gridcore.Grid, error) {
	if len(sections) < 2 {
		return nil, &coreerrs.ConfigError{Field: "sections", Value: len(sections), Reason: "at least two sections are required to bracket any azimuth"}
	}

	cx, cy := sections[0].CenterX, sections[0].CenterY
	for i, s := range sections {
		if s.Grid == nil {
			return nil, &coreerrs.ConfigError{Field: "sections", Value: i, Reason: "missing cross-section grid"}
		}
		if s.CenterX != cx || s.CenterY != cy {
			return nil, &coreerrs.ConfigError{Field: "sections", Value: i, Reason: "all sections must share the same center point"}
		}
	}

	ordered := append([]Section(nil), sections...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Azimuth < ordered[j].Azimuth })

	out, err := gridcore.Allocate(desc, "composed")
	if err != nil {
		return nil, err
	}

	// Pass 1: accumulate each cell's bracketing pair and azimuth fraction.
	brackets := make([]bracket, desc.Nx*desc.Ny)
	for ix := 0; ix < desc.Nx; ix++ {
		for iy := 0; iy < desc.Ny; iy++ {
			x := desc.OrigX + float64(ix)*desc.Dx
			y := desc.OrigY + float64(iy)*desc.Dy
			az := azimuthFrom(cx, cy, x, y)
			lo, hi, frac := bracketAzimuth(ordered, az)
			brackets[ix*desc.Ny+iy] = bracket{
				lo: lo, hi: hi, frac: frac,
				radius: math.Hypot(x-cx, y-cy),
			}
		}
	}

	// Pass 2: resolve each cell's value from its bracket.
	for ix := 0; ix < desc.Nx; ix++ {
		for iy := 0; iy < desc.Ny; iy++ {
			b := brackets[ix*desc.Ny+iy]
			loSec := ordered[b.lo]
			hiSec := ordered[b.hi]
			for iz := 0; iz < desc.Nz; iz++ {
				z := desc.OrigZ + float64(iz)*desc.Dz
				vLo := loSec.radiusAt(b.radius, z)
				vHi := hiSec.radiusAt(b.radius, z)
				v := blend(vLo, vHi, b.frac)
				if err := out.SetValueAt(ix, iy, iz, v); err != nil {
					return nil, err
				}
			}
		}
	}

	return out, nil
}

// azimuthFrom returns the azimuth in degrees (clockwise from north, i.e.
// from +y) of (x,y) as seen from (cx,cy).
func azimuthFrom(cx, cy, x, y float64) float64 {
	az := math.Atan2(x-cx, y-cy) * 180.0 / math.Pi
	if az < 0 {
		az += 360
	}
	return az
}

// bracketAzimuth finds the pair of sorted sections whose azimuths bracket
// az, wrapping around 360 degrees, and the fraction of az between them.
func bracketAzimuth(ordered []Section, az float64) (lo, hi int, frac float64) {
	n := len(ordered)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a0 := ordered[i].Azimuth
		a1 := ordered[j].Azimuth
		span := a1 - a0
		if span <= 0 {
			span += 360
		}
		delta := az - a0
		if delta < 0 {
			delta += 360
		}
		if delta <= span {
			if span == 0 {
				return i, j, 0
			}
			return i, j, delta / span
		}
	}
	return n - 1, 0, 0
}

// blend combines two values that may carry the masked sentinel: if one
// side is masked, the other is returned outright rather than corrupting
// the blend with a huge negative term.
func blend(a, b, frac float64) float64 {
	aMasked := a <= gridcore.NoValue
	bMasked := b <= gridcore.NoValue
	switch {
	case aMasked && bMasked:
		return gridcore.NoValue
	case aMasked:
		return b
	case bMasked:
		return a
	default:
		return a*(1-frac) + b*frac
	}
}
