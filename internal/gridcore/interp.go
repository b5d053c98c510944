package gridcore

import "math"

// clampCell locates the grid cell bracketing continuous coordinate f
// within axis length n, clamping the diagonally opposite corner to the
// grid end (spec.md SS4.1, ReadAbsInterpGrid3d).
func clampCell(f float64, n int) (i0, i1 int, frac float64) {
	if n < 2 {
		return 0, 0, 0
	}
	maxIdx := float64(n - 1)
	if f < 0 {
		f = 0
	}
	if f > maxIdx {
		f = maxIdx
	}
	i0 = int(math.Floor(f))
	if i0 > n-2 {
		i0 = n - 2
	}
	frac = f - float64(i0)
	i1 = i0 + 1
	if i1 > n-1 {
		i1 = n - 1
	}
	return i0, i1, frac
}

func trilerp(v000, v001, v010, v011, v100, v101, v110, v111, fx, fy, fz float64) float64 {
	c00 := v000*(1-fz) + v001*fz
	c01 := v010*(1-fz) + v011*fz
	c10 := v100*(1-fz) + v101*fz
	c11 := v110*(1-fz) + v111*fz
	c0 := c00*(1-fy) + c01*fy
	c1 := c10*(1-fy) + c11*fy
	return c0*(1-fx) + c1*fx
}

func bilerp(v00, v01, v10, v11, fx, fy float64) float64 {
	c0 := v00*(1-fy) + v01*fy
	c1 := v10*(1-fy) + v11*fy
	return c0*(1-fx) + c1*fx
}

// anyMasked reports whether any corner value is the no-value sentinel, or
// (for non-negative-domain kinds) negative, per spec.md SS4.1.
func (g *Grid) anyMasked(vals ...float64) bool {
	nonNeg := g.Desc.Kind.IsNonNegativeDomain()
	for _, v := range vals {
		if v <= NoValue {
			return true
		}
		if nonNeg && v < 0 {
			return true
		}
	}
	return false
}

// InterpAt trilinearly interpolates the grid value at model-unit
// coordinate (x,y,z). Returns NoValue if the coordinate falls outside the
// grid, or if any surrounding corner is masked.
func (g *Grid) InterpAt(x, y, z float64) float64 {
	fx, fy, fz := g.ModelToIndex(x, y, z)
	return g.InterpAtIndex(fx, fy, fz)
}

// InterpAtIndex is InterpAt expressed directly in continuous virtual grid
// index coordinates.
func (g *Grid) InterpAtIndex(fx, fy, fz float64) float64 {
	d := &g.Desc
	if fx < 0 || fx > float64(d.Nx-1) || fy < 0 || fy > float64(d.Ny-1) || fz < 0 || fz > float64(d.Nz-1) {
		return NoValue
	}
	if d.Cascading {
		return g.interpCascading(fx, fy, fz)
	}
	return g.interpUniform(fx, fy, fz)
}

func (g *Grid) interpUniform(fx, fy, fz float64) float64 {
	d := &g.Desc
	ix0, ix1, fxr := clampCell(fx, d.Nx)
	iy0, iy1, fyr := clampCell(fy, d.Ny)
	iz0, iz1, fzr := clampCell(fz, d.Nz)

	v000 := g.ValueAt(ix0, iy0, iz0)
	v001 := g.ValueAt(ix0, iy0, iz1)
	v010 := g.ValueAt(ix0, iy1, iz0)
	v011 := g.ValueAt(ix0, iy1, iz1)
	v100 := g.ValueAt(ix1, iy0, iz0)
	v101 := g.ValueAt(ix1, iy0, iz1)
	v110 := g.ValueAt(ix1, iy1, iz0)
	v111 := g.ValueAt(ix1, iy1, iz1)

	if g.anyMasked(v000, v001, v010, v011, v100, v101, v110, v111) {
		return NoValue
	}
	return trilerp(v000, v001, v010, v011, v100, v101, v110, v111, fxr, fyr, fzr)
}

// localCoordForLevel maps a continuous virtual-grid coordinate into the
// continuous local coordinate of a cascading level's coarser xy-plane.
// Physical node p sits at virtual coordinate p*scale, matching the
// floor(ix/scale) mapping physicalIndex uses to store values — every
// scale-aligned virtual node must round-trip through interpolation
// exactly (spec.md SS8 property 2). Beyond the last aligned node the
// final cell may be narrower than scale (Nx not a multiple of scale);
// there's no further node to blend against, so the coordinate clamps
// flat at the last physical index instead of extrapolating past it.
func localCoordForLevel(f float64, nVirtual, scale, nLevel int) float64 {
	if scale <= 1 {
		return f
	}
	if nLevel < 2 {
		return 0
	}
	lastAligned := float64((nLevel - 1) * scale)
	if lastAligned > float64(nVirtual-1) {
		lastAligned = float64(nVirtual - 1)
	}
	if f >= lastAligned {
		return float64(nLevel - 1)
	}
	return f / float64(scale)
}

// levelValue reads the physical value at level lvl, local physical index
// (px,py), returning NoValue if out of range.
func (g *Grid) levelValue(lvl, px, py int) float64 {
	if lvl < 0 || lvl >= len(g.levelOffsets) {
		return NoValue
	}
	nxL, nyL := g.levelNx[lvl], g.levelNy[lvl]
	if px < 0 || px >= nxL || py < 0 || py >= nyL {
		return NoValue
	}
	idx := g.levelOffsets[lvl] + px*nyL + py
	if idx < 0 || idx >= len(g.buf) {
		return NoValue
	}
	return g.buf[idx]
}

// bilinearAtLevel bilinearly interpolates within the cascading plane that
// backs virtual z-index iz, at continuous virtual (fx,fy).
func (g *Grid) bilinearAtLevel(fx, fy float64, iz int) float64 {
	d := &g.Desc
	lvl := g.zIndex[iz]
	scale := g.xyScale[iz]
	nxL, nyL := g.levelNx[lvl], g.levelNy[lvl]

	localX := localCoordForLevel(fx, d.Nx, scale, nxL)
	localY := localCoordForLevel(fy, d.Ny, scale, nyL)

	ix0, ix1, fxr := clampCell(localX, nxL)
	iy0, iy1, fyr := clampCell(localY, nyL)

	v00 := g.levelValue(lvl, ix0, iy0)
	v01 := g.levelValue(lvl, ix0, iy1)
	v10 := g.levelValue(lvl, ix1, iy0)
	v11 := g.levelValue(lvl, ix1, iy1)

	if g.anyMasked(v00, v01, v10, v11) {
		return NoValue
	}
	return bilerp(v00, v01, v10, v11, fxr, fyr)
}

// interpCascading interpolates each of the two bracketing z-planes
// (possibly at different cascading resolutions) independently in xy, then
// blends the two plane results linearly in z. Because each plane result
// is a convex combination of same-level corner values, a constant field
// interpolates to that constant everywhere, including across resolution
// transitions (spec.md SS8 property 3).
func (g *Grid) interpCascading(fx, fy, fz float64) float64 {
	d := &g.Desc
	iz0, iz1, fzr := clampCell(fz, d.Nz)

	v0 := g.bilinearAtLevel(fx, fy, iz0)
	if v0 <= NoValue {
		return NoValue
	}
	if iz0 == iz1 {
		return v0
	}
	v1 := g.bilinearAtLevel(fx, fy, iz1)
	if v1 <= NoValue {
		return NoValue
	}
	return v0*(1-fzr) + v1*fzr
}
