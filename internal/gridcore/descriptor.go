package gridcore

import (
	"github.com/banshee-data/seismocore/internal/coreerrs"
)

// ElemType is the on-disk scalar element type.
type ElemType int

const (
	Float32 ElemType = iota
	Float64
)

// ByteOrder records whether a grid's buffer needs swapping relative to
// native order. The library exposes the four swap modes named in
// spec.md SS4.1: a grid handle only ever carries Native or Swapped — the
// "swap-in"/"swap-out"/"swap-both" vocabulary describes the direction of
// a single read or write operation, modeled here as the Read/Write method
// parameters in io.go rather than as additional handle states.
type ByteOrder int

const (
	Native ByteOrder = iota
	Swapped
)

// Descriptor is the ordered 3D scalar field identity: axis geometry, kind,
// element type, byte order, and cascading layout parameters.
type Descriptor struct {
	Nx, Ny, Nz          int
	OrigX, OrigY, OrigZ float64
	Dx, Dy, Dz          float64
	Kind                Kind
	ElemType            ElemType
	ByteOrder           ByteOrder
	Cascading           bool
	MergeDepths         []float64 // strictly increasing, length <= 16
}

// Validate checks the descriptor invariants from spec.md SS3: axis counts
// >= 1 (>=2 for a non-degenerate axis, ==1 permitted for a flattened 2D
// grid), strictly positive steps, and (for cascading grids) strictly
// increasing merge depths bounded at 16 levels.
func (d *Descriptor) Validate() error {
	if d.Nx < 1 {
		return &coreerrs.ConfigError{Field: "Nx", Value: d.Nx, Reason: "must be >= 1"}
	}
	if d.Ny < 1 {
		return &coreerrs.ConfigError{Field: "Ny", Value: d.Ny, Reason: "must be >= 1"}
	}
	if d.Nz < 1 {
		return &coreerrs.ConfigError{Field: "Nz", Value: d.Nz, Reason: "must be >= 1"}
	}
	if d.Dx <= 0 {
		return &coreerrs.ConfigError{Field: "Dx", Value: d.Dx, Reason: "step must be strictly positive"}
	}
	if d.Dy <= 0 {
		return &coreerrs.ConfigError{Field: "Dy", Value: d.Dy, Reason: "step must be strictly positive"}
	}
	if d.Dz <= 0 {
		return &coreerrs.ConfigError{Field: "Dz", Value: d.Dz, Reason: "step must be strictly positive"}
	}
	if !d.Kind.Valid() {
		return &coreerrs.ConfigError{Field: "Kind", Value: d.Kind, Reason: "unrecognized grid kind tag"}
	}
	if d.Cascading {
		if len(d.MergeDepths) > 16 {
			return &coreerrs.ConfigError{Field: "MergeDepths", Value: len(d.MergeDepths), Reason: "at most 16 cascading levels supported"}
		}
		for i := 1; i < len(d.MergeDepths); i++ {
			if d.MergeDepths[i] <= d.MergeDepths[i-1] {
				return &coreerrs.ConfigError{Field: "MergeDepths", Value: d.MergeDepths, Reason: "merge depths must be strictly increasing"}
			}
		}
	}
	return nil
}

// EndX, EndY, EndZ are the model-unit coordinates of the last sample on
// each axis, i.e. orig + (n-1)*d.
func (d *Descriptor) EndX() float64 { return d.OrigX + float64(d.Nx-1)*d.Dx }
func (d *Descriptor) EndY() float64 { return d.OrigY + float64(d.Ny-1)*d.Dy }
func (d *Descriptor) EndZ() float64 { return d.OrigZ + float64(d.Nz-1)*d.Dz }
