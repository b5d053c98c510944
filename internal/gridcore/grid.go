// Package gridcore implements the typed 3D scalar grid substrate: uniform
// and cascading memory layouts, indexed access, trilinear interpolation,
// angle packing, and the NonLinLoc-compatible binary/header file format.
//
// A Grid owns its buffer exclusively (spec.md SS5); interpolation reads are
// side-effect-free, so Grid exposes an RWMutex for callers that want to
// guard concurrent reads against a later in-place mutation (the eikonal
// solver takes an exclusive *Grid and does not use the lock itself).
package gridcore

import (
	"fmt"
	"sync"

	"github.com/banshee-data/seismocore/internal/coreerrs"
)

// NoValue is the "no-value"/masked sentinel: a large negative double
// returned instead of raising for out-of-range reads, so interpolation
// composes cleanly (spec.md SS7, OutOfRange).
const NoValue = -1.0e10

// Grid is an allocated 3D scalar field.
type Grid struct {
	Desc  Descriptor
	Title string // source label / file root, used in diagnostics

	buf []float64

	// Cascading layout side-arrays; nil for uniform grids.
	zIndex       []int // per virtual iz -> cascading level
	xyScale      []int // per virtual iz -> 2^level
	levelNx      []int // physical nx per level
	levelNy      []int // physical ny per level
	levelOffsets []int // start offset (elements) of each level's plane in buf

	mu sync.RWMutex
}

func ceilDiv(n, scale int) int {
	if scale <= 1 {
		return n
	}
	return (n + scale - 1) / scale
}

// Allocate builds a Grid from a validated descriptor. For a cascading
// grid it also builds the per-virtual-z index array and per-level xy-plane
// offset table described in spec.md SS4.1; the total cell count is fixed
// once here and never exceeded by any later read or write.
func Allocate(desc Descriptor, title string) (*Grid, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{Desc: desc, Title: title}

	if !desc.Cascading {
		g.buf = make([]float64, desc.Nx*desc.Ny*desc.Nz)
		return g, nil
	}

	numLevels := len(desc.MergeDepths) + 1
	g.levelNx = make([]int, numLevels)
	g.levelNy = make([]int, numLevels)
	g.levelOffsets = make([]int, numLevels)

	offset := 0
	for lvl := 0; lvl < numLevels; lvl++ {
		scale := 1 << uint(lvl)
		nxL := ceilDiv(desc.Nx, scale)
		nyL := ceilDiv(desc.Ny, scale)
		g.levelNx[lvl] = nxL
		g.levelNy[lvl] = nyL
		g.levelOffsets[lvl] = offset
		offset += nxL * nyL
	}
	g.buf = make([]float64, offset)

	g.zIndex = make([]int, desc.Nz)
	g.xyScale = make([]int, desc.Nz)
	for iz := 0; iz < desc.Nz; iz++ {
		depth := desc.OrigZ + float64(iz)*desc.Dz
		lvl := 0
		for _, threshold := range desc.MergeDepths {
			if depth >= threshold {
				lvl++
			} else {
				break
			}
		}
		g.zIndex[iz] = lvl
		g.xyScale[iz] = 1 << uint(lvl)
	}

	return g, nil
}

// BufferLen returns the number of float elements actually allocated
// (nx*ny*nz for a uniform grid, the sum of cascading plane sizes for a
// cascading grid).
func (g *Grid) BufferLen() int { return len(g.buf) }

// Lock / Unlock / RLock / RUnlock expose the grid's reader/writer lock for
// callers coordinating concurrent read-only interpolation against a grid
// that a single in-place computation (e.g. the eikonal solver) may later
// mutate exclusively.
func (g *Grid) Lock()    { g.mu.Lock() }
func (g *Grid) Unlock()  { g.mu.Unlock() }
func (g *Grid) RLock()   { g.mu.RLock() }
func (g *Grid) RUnlock() { g.mu.RUnlock() }

// inRange reports whether the virtual index is within the descriptor's
// axis bounds.
func (g *Grid) inRange(ix, iy, iz int) bool {
	d := &g.Desc
	return ix >= 0 && ix < d.Nx && iy >= 0 && iy < d.Ny && iz >= 0 && iz < d.Nz
}

// physicalIndex maps a virtual (ix,iy,iz) index to a physical offset into
// buf, per spec.md SS4.1's uniform and cascading addressing rules.
func (g *Grid) physicalIndex(ix, iy, iz int) (int, bool) {
	if !g.inRange(ix, iy, iz) {
		return 0, false
	}
	d := &g.Desc
	if !d.Cascading {
		return (ix*d.Ny+iy)*d.Nz + iz, true
	}
	lvl := g.zIndex[iz]
	scale := g.xyScale[iz]
	px, py := ix/scale, iy/scale
	nyL := g.levelNy[lvl]
	return g.levelOffsets[lvl] + px*nyL + py, true
}

// ValueAt returns the value stored at virtual index (ix,iy,iz), or
// NoValue if the index is out of range.
func (g *Grid) ValueAt(ix, iy, iz int) float64 {
	idx, ok := g.physicalIndex(ix, iy, iz)
	if !ok {
		return NoValue
	}
	return g.buf[idx]
}

// SetValueAt stores v at virtual index (ix,iy,iz). Returns an error if the
// index is out of range; unlike ValueAt this is a programmer-error
// signal, not the domain OutOfRange sentinel (spec.md SS7 reserves the
// sentinel for read composition, not writes).
func (g *Grid) SetValueAt(ix, iy, iz int, v float64) error {
	idx, ok := g.physicalIndex(ix, iy, iz)
	if !ok {
		return &coreerrs.ConfigError{
			Field:  "index",
			Value:  fmt.Sprintf("(%d,%d,%d)", ix, iy, iz),
			Reason: fmt.Sprintf("out of range for grid %q (%dx%dx%d)", g.Title, g.Desc.Nx, g.Desc.Ny, g.Desc.Nz),
		}
	}
	g.buf[idx] = v
	return nil
}

// IsInside reports whether a model-unit coordinate (x,y,z) falls within
// the grid's axis extents.
func (g *Grid) IsInside(x, y, z float64) bool {
	d := &g.Desc
	return x >= d.OrigX && x <= d.EndX() &&
		y >= d.OrigY && y <= d.EndY() &&
		z >= d.OrigZ && z <= d.EndZ()
}

// OnBoundary reports whether (x,y,z) lies within tolXY of the xy-boundary
// or tolZ of the z-boundary. checkTop additionally reports proximity to
// the shallow (low-z) boundary; otherwise only the deep boundary and the
// xy walls are checked, matching the solver's source-proximity warning
// (spec.md SS4.2 "source within 2 cells of any boundary").
func (g *Grid) OnBoundary(x, y, z, tolXY, tolZ float64, checkTop bool) bool {
	d := &g.Desc
	if x-d.OrigX < tolXY || d.EndX()-x < tolXY {
		return true
	}
	if y-d.OrigY < tolXY || d.EndY()-y < tolXY {
		return true
	}
	if d.EndZ()-z < tolZ {
		return true
	}
	if checkTop && z-d.OrigZ < tolZ {
		return true
	}
	return false
}

// ModelToIndex converts a model-unit coordinate to a continuous virtual
// grid index (fx,fy,fz), the input space of InterpAt.
func (g *Grid) ModelToIndex(x, y, z float64) (fx, fy, fz float64) {
	d := &g.Desc
	return (x - d.OrigX) / d.Dx, (y - d.OrigY) / d.Dy, (z - d.OrigZ) / d.Dz
}
