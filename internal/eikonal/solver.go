package eikonal

import (
	"math"
	"sort"

	"github.com/banshee-data/seismocore/internal/config"
	"github.com/banshee-data/seismocore/internal/coreerrs"
	"github.com/banshee-data/seismocore/internal/gridcore"
)

type solve struct {
	slowness *gridcore.Grid
	time     *gridcore.Grid
	cfg      config.SolverConfig
}

// isKnownTime reports whether t is an already-solved arrival time, as
// opposed to the NotComputed placeholder or the out-of-range/masked
// gridcore.NoValue sentinel (which reads as a large negative number and
// would otherwise slip under the NotComputed comparison).
func isKnownTime(t float64) bool {
	return t >= 0 && t < NotComputed
}

// initSourceBox fills a (2*NCUBE+1)^3 cube around the source with
// constant-slowness Euclidean travel time from the source's exact
// continuous position, computed in a local Cartesian projection to avoid
// the coordinate singularity at the poles/origin.
func (sv *solve) initSourceBox(fx, fy, fz float64) error {
	half := sv.cfg.SourceCubeHalfWidth
	d := &sv.slowness.Desc
	ix0, iy0, iz0 := int(math.Round(fx)), int(math.Round(fy)), int(math.Round(fz))

	srcSlowness := sv.slowness.InterpAtIndex(fx, fy, fz)
	if srcSlowness <= gridcore.NoValue {
		return &coreerrs.ConfigError{Field: "source", Value: nil, Reason: "source location falls on a masked slowness cell"}
	}

	for ix := ix0 - half; ix <= ix0+half; ix++ {
		for iy := iy0 - half; iy <= iy0+half; iy++ {
			for iz := iz0 - half; iz <= iz0+half; iz++ {
				if ix < 0 || ix >= d.Nx || iy < 0 || iy >= d.Ny || iz < 0 || iz >= d.Nz {
					continue
				}
				dh, dy, dx := cellMetric(d, ix, iy, iz)
				ex := (float64(ix) - fx) * dx
				ey := (float64(iy) - fy) * dy
				ez := (float64(iz) - fz) * dh
				dist := math.Sqrt(ex*ex + ey*ey + ez*ez)
				t := dist * srcSlowness
				if err := sv.time.SetValueAt(ix, iy, iz, t); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

type candidate struct {
	ix, iy, iz int
	upwind     float64 // sort key: immediate upwind neighbour time
}

// expand grows the six active faces of [lo,hi] outward by one cell each,
// repeating until every side has reached the grid boundary or the
// configured max radius. It returns the per-face head-wave trigger counts
// accumulated over the whole expansion.
func (sv *solve) expand(lo, hi *[3]int, active *[6]bool) map[string]int {
	headCounts := map[string]int{}
	for _, f := range allFaces {
		headCounts[f] = 0
	}

	maxRadius := sv.cfg.MaxRadiusCells

	for {
		anyActive := false
		for i, f := range allFaces {
			if !active[i] {
				continue
			}
			grew, triggers := sv.growFace(f, lo, hi, maxRadius)
			headCounts[f] += triggers
			if !grew {
				active[i] = false
				continue
			}
			anyActive = true
		}
		if !anyActive {
			break
		}
	}
	return headCounts
}

// growFace advances one face of the box by one cell, computing every new
// cell's arrival time. Returns whether the face actually grew (false once
// it hits the grid boundary or the radius cap).
func (sv *solve) growFace(face string, lo, hi *[3]int, maxRadius int) (grew bool, headTriggers int) {
	d := &sv.slowness.Desc

	var cells []candidate
	switch face {
	case faceXLow:
		if lo[0] <= 0 || (maxRadius > 0 && hi[0]-lo[0]+1 > 2*maxRadius) {
			return false, 0
		}
		lo[0]--
		for iy := lo[1]; iy <= hi[1]; iy++ {
			for iz := lo[2]; iz <= hi[2]; iz++ {
				cells = append(cells, sv.newCandidate(lo[0], iy, iz, lo[0]+1, iy, iz))
			}
		}
	case faceXHigh:
		if hi[0] >= d.Nx-1 || (maxRadius > 0 && hi[0]-lo[0]+1 > 2*maxRadius) {
			return false, 0
		}
		hi[0]++
		for iy := lo[1]; iy <= hi[1]; iy++ {
			for iz := lo[2]; iz <= hi[2]; iz++ {
				cells = append(cells, sv.newCandidate(hi[0], iy, iz, hi[0]-1, iy, iz))
			}
		}
	case faceYLow:
		if lo[1] <= 0 || (maxRadius > 0 && hi[1]-lo[1]+1 > 2*maxRadius) {
			return false, 0
		}
		lo[1]--
		for ix := lo[0]; ix <= hi[0]; ix++ {
			for iz := lo[2]; iz <= hi[2]; iz++ {
				cells = append(cells, sv.newCandidate(ix, lo[1], iz, ix, lo[1]+1, iz))
			}
		}
	case faceYHigh:
		if hi[1] >= d.Ny-1 || (maxRadius > 0 && hi[1]-lo[1]+1 > 2*maxRadius) {
			return false, 0
		}
		hi[1]++
		for ix := lo[0]; ix <= hi[0]; ix++ {
			for iz := lo[2]; iz <= hi[2]; iz++ {
				cells = append(cells, sv.newCandidate(ix, hi[1], iz, ix, hi[1]-1, iz))
			}
		}
	case faceZLow:
		if lo[2] <= 0 || (maxRadius > 0 && hi[2]-lo[2]+1 > 2*maxRadius) {
			return false, 0
		}
		lo[2]--
		for ix := lo[0]; ix <= hi[0]; ix++ {
			for iy := lo[1]; iy <= hi[1]; iy++ {
				cells = append(cells, sv.newCandidate(ix, iy, lo[2], ix, iy, lo[2]+1))
			}
		}
	case faceZHigh:
		if hi[2] >= d.Nz-1 || (maxRadius > 0 && hi[2]-lo[2]+1 > 2*maxRadius) {
			return false, 0
		}
		hi[2]++
		for ix := lo[0]; ix <= hi[0]; ix++ {
			for iy := lo[1]; iy <= hi[1]; iy++ {
				cells = append(cells, sv.newCandidate(ix, iy, hi[2], ix, iy, hi[2]-1))
			}
		}
	}

	sort.Slice(cells, func(i, j int) bool { return cells[i].upwind < cells[j].upwind })

	for _, c := range cells {
		t, triggered := sv.solveCell(c.ix, c.iy, c.iz)
		if triggered {
			headTriggers++
		}
		if t < Rejected {
			sv.time.SetValueAt(c.ix, c.iy, c.iz, t)
		}
	}
	return true, headTriggers
}

func (sv *solve) newCandidate(ix, iy, iz, upIx, upIy, upIz int) candidate {
	return candidate{ix: ix, iy: iy, iz: iz, upwind: sv.time.ValueAt(upIx, upIy, upIz)}
}

// axisNeighbor looks one step along axis (dix,diy,diz) in both directions
// from (ix,iy,iz) and returns whichever side already holds a known time.
// The box can grow from either side of any axis (faceXLow decrements lo[0]
// just as faceXHigh increments hi[0]), so a newly solved cell's already-
// known neighbor along an axis may be on the +1 side or the -1 side
// depending on which face grew it; checking only one fixed side silently
// drops the direct stencil term for cells grown from the other side. When
// both sides happen to be known already, the smaller (more upwind) time is
// used, matching the causal-minimum rule the rest of the solver follows.
func (sv *solve) axisNeighbor(ix, iy, iz, dix, diy, diz int) (float64, bool) {
	lo := sv.time.ValueAt(ix-dix, iy-diy, iz-diz)
	hi := sv.time.ValueAt(ix+dix, iy+diy, iz+diz)
	loKnown := isKnownTime(lo)
	hiKnown := isKnownTime(hi)
	switch {
	case loKnown && hiKnown:
		if lo < hi {
			return lo, true
		}
		return hi, true
	case loKnown:
		return lo, true
	case hiKnown:
		return hi, true
	default:
		return 0, false
	}
}

// solveCell dispatches the stencil classes for virtual index (ix,iy,iz) in
// priority order (corner 3D transmission, then new-edge, then the 1D edge
// tries, which always run), keeping the minimum candidate. There is no
// separate new-face stencil: a cell with a single known axis neighbour is
// solved by the 1D edge tries alone. It also evaluates the 2D
// transmission stencil for head-wave detection against the chosen 3D
// candidate.
func (sv *solve) solveCell(ix, iy, iz int) (best float64, headTriggered bool) {
	d := &sv.slowness.Desc
	s := sv.slowness.ValueAt(ix, iy, iz)
	if s <= gridcore.NoValue {
		return NotComputed, false
	}
	dh, dy, dx := cellMetric(d, ix, iy, iz)
	best = Rejected

	// minUpwind tracks the smallest known neighbor time fed into any
	// stencil this call. The quadratic transmission formulas (fdsph3d,
	// fdsphne, fdsph2d) solve for a wavefront arrival and can return a
	// value below their own inputs when the geometry makes the quadratic
	// ill-conditioned; clamping the final candidate to minUpwind enforces
	// spec.md SS8 property 6 (no cell below the minimum of its upwind
	// neighbors) regardless of which stencil produced it.
	minUpwind := math.Inf(1)
	track := func(t float64, known bool) {
		if known && t < minUpwind {
			minUpwind = t
		}
	}

	consider := func(t float64) {
		if t >= Rejected {
			return
		}
		if t < best {
			best = t
		}
	}

	// Corner 3D transmission stencils try each of the four horizontal
	// diagonal directions (NE, NW, SE, SW) looking for seven known
	// corners; we approximate this by probing the axis-aligned neighbour
	// triple nearest each diagonal.
	for _, off := range [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		tx := sv.time.ValueAt(ix+off[0], iy, iz)
		ty := sv.time.ValueAt(ix, iy+off[1], iz)
		tz, tzKnown := sv.axisNeighbor(ix, iy, iz, 0, 0, 1)
		if isKnownTime(tx) && isKnownTime(ty) && tzKnown {
			track(tx, true)
			track(ty, true)
			track(tz, true)
			consider(fdsph3d(tx, ty, tz, s, dh, dy, dx))
		}
	}

	if best >= Rejected {
		// New-edge: two known times along transverse directions.
		if tA, aOK := sv.axisNeighbor(ix, iy, iz, 1, 0, 0); aOK {
			if tB, bOK := sv.axisNeighbor(ix, iy, iz, 0, 1, 0); bOK {
				track(tA, true)
				track(tB, true)
				consider(fdsphne(tA, tB, s, dx, dy))
			}
		}
		if tA, aOK := sv.axisNeighbor(ix, iy, iz, 0, 0, 1); aOK {
			if tB, bOK := sv.axisNeighbor(ix, iy, iz, 0, 1, 0); bOK {
				track(tA, true)
				track(tB, true)
				consider(fdsphne(tA, tB, s, dh, dy))
			}
		}
	}

	// 1D edge tries are always evaluated; a "new face" cell (only one axis
	// neighbour known) falls through the corner/new-edge blocks above and
	// is solved here with a plain single-direction transmission — feeding
	// that one known time into the two-direction fdsph2d formula twice
	// instead (as a prior version of this function did) understates the
	// distance term by a factor of 1/sqrt(2) and is not causal.
	for _, n := range [3]struct {
		dix, diy, diz int
		d             float64
	}{
		{1, 0, 0, dx}, {0, 1, 0, dy}, {0, 0, 1, dh},
	} {
		if t, ok := sv.axisNeighbor(ix, iy, iz, n.dix, n.diy, n.diz); ok {
			track(t, true)
			consider(fd1d(t, s, n.d))
		}
	}

	// The quadratic transmission stencils solve for a wavefront arrival
	// time and are not guaranteed to be non-decreasing in their inputs;
	// clamp the chosen candidate to the smallest known neighbor time it
	// could have been derived from so causality holds regardless.
	if best < Rejected && best < minUpwind {
		best = minUpwind
	}

	// Head-wave detection: compare the best 3D-family candidate against a
	// 2D planar candidate on the dominant face; if the 2D candidate beats
	// it by more than headtest*s*d, flag a head-wave trigger for this
	// face (the caller attributes the count to the face it is growing).
	if tx, txOK := sv.axisNeighbor(ix, iy, iz, 1, 0, 0); txOK {
		if ty, tyOK := sv.axisNeighbor(ix, iy, iz, 0, 1, 0); tyOK {
			cand2D := fdsph2d(tx, ty, s, dx, dy)
			if cand2D < minUpwind {
				cand2D = minUpwind
			}
			if cand2D < Rejected && best < Rejected && best-cand2D > sv.cfg.HeadWaveTestFactor*s*math.Min(dx, dy) {
				headTriggered = true
				if cand2D < best {
					best = cand2D
				}
			}
		}
	}

	return best, headTriggered
}
