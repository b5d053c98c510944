package gridcore

import "github.com/banshee-data/seismocore/internal/coreerrs"

// sameGeometry reports whether two descriptors describe the identical
// sample grid (axis counts, origin, and spacing), permitting a direct
// element-wise fast path instead of interpolated resampling.
func sameGeometry(a, b *Descriptor) bool {
	return a.Nx == b.Nx && a.Ny == b.Ny && a.Nz == b.Nz &&
		a.OrigX == b.OrigX && a.OrigY == b.OrigY && a.OrigZ == b.OrigZ &&
		a.Dx == b.Dx && a.Dy == b.Dy && a.Dz == b.Dz
}

// MulConst scales every element of g by c in place.
func (g *Grid) MulConst(c float64) {
	for i, v := range g.buf {
		if v <= NoValue {
			continue
		}
		g.buf[i] = v * c
	}
}

// AddConst adds c to every element of g in place.
func (g *Grid) AddConst(c float64) {
	for i, v := range g.buf {
		if v <= NoValue {
			continue
		}
		g.buf[i] = v + c
	}
}

// Sum adds other into g in place, per virtual grid node. When the two
// grids share identical geometry this walks both buffers directly;
// otherwise other is resampled at each of g's nodes via InterpAt. A node
// masked in either input leaves g's node masked (NoValue).
func (g *Grid) Sum(other *Grid) error {
	if sameGeometry(&g.Desc, &other.Desc) {
		for iz := 0; iz < g.Desc.Nz; iz++ {
			for iy := 0; iy < g.Desc.Ny; iy++ {
				for ix := 0; ix < g.Desc.Nx; ix++ {
					a := g.ValueAt(ix, iy, iz)
					b := other.ValueAt(ix, iy, iz)
					if a <= NoValue || b <= NoValue {
						_ = g.SetValueAt(ix, iy, iz, NoValue)
						continue
					}
					_ = g.SetValueAt(ix, iy, iz, a+b)
				}
			}
		}
		return nil
	}
	return g.sumResampled(other)
}

func (g *Grid) sumResampled(other *Grid) error {
	d := &g.Desc
	for iz := 0; iz < d.Nz; iz++ {
		z := d.OrigZ + float64(iz)*d.Dz
		for iy := 0; iy < d.Ny; iy++ {
			y := d.OrigY + float64(iy)*d.Dy
			for ix := 0; ix < d.Nx; ix++ {
				x := d.OrigX + float64(ix)*d.Dx
				a := g.ValueAt(ix, iy, iz)
				b := other.InterpAt(x, y, z)
				if a <= NoValue || b <= NoValue {
					if err := g.SetValueAt(ix, iy, iz, NoValue); err != nil {
						return err
					}
					continue
				}
				if err := g.SetValueAt(ix, iy, iz, a+b); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Fill sets every node of g to v, including masked nodes.
func (g *Grid) Fill(v float64) {
	for i := range g.buf {
		g.buf[i] = v
	}
}

// RequireSameShape returns a ConfigError unless a and b have identical
// axis counts, for operations that cannot fall back to resampling.
func RequireSameShape(a, b *Grid) error {
	if a.Desc.Nx != b.Desc.Nx || a.Desc.Ny != b.Desc.Ny || a.Desc.Nz != b.Desc.Nz {
		return &coreerrs.ConfigError{
			Field:  "shape",
			Value:  [2][3]int{{a.Desc.Nx, a.Desc.Ny, a.Desc.Nz}, {b.Desc.Nx, b.Desc.Ny, b.Desc.Nz}},
			Reason: "grids must share axis counts for this operation",
		}
	}
	return nil
}
