package eikonal

import "math"

// quadraticRoot solves a*t^2 + b*t + c = 0 for its larger (causal) root,
// returning Rejected if the discriminant is negative.
func quadraticRoot(a, b, c float64) float64 {
	if math.Abs(a) < 1e-300 {
		if math.Abs(b) < 1e-300 {
			return Rejected
		}
		return -c / b
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return Rejected
	}
	sq := math.Sqrt(disc)
	r1 := (-b + sq) / (2 * a)
	r2 := (-b - sq) / (2 * a)
	if r1 > r2 {
		return r1
	}
	return r2
}

// fdsph3d: the full 3D transmission stencil. Three known corner times
// tx, ty, tz (one per axis, the nearest known neighbour along each) and
// the slowness s bound a single unknown, with cell edge lengths dh, dy, dx
// in the radial/colatitude/longitude directions. solveCell passes the
// slowness stored at the cell being solved; no corner averaging is done.
// Finite-differencing the eikonal equation over the cube's three unknown
// partial derivatives gives a quadratic in the unknown arrival time.
func fdsph3d(tx, ty, tz, s, dh, dy, dx float64) float64 {
	ux := 1.0 / (dx * dx)
	uy := 1.0 / (dy * dy)
	uz := 1.0 / (dh * dh)

	a := ux + uy + uz
	b := -2.0 * (ux*tx + uy*ty + uz*tz)
	c := ux*tx*tx + uy*ty*ty + uz*tz*tz - s*s

	return quadraticRoot(a, b, c)
}

// fdsphne: the 3D new-edge stencil, first-order accurate along a grid
// edge, used when a full corner stencil lacks enough known neighbours.
// Two known times tA and tB lie along two different axes, at grid spacing
// dEdge (for tA) and dTrans (for tB); the result is the larger root of
// ((t-tA)/dEdge)^2 + ((t-tB)/dTrans)^2 = s^2.
func fdsphne(tA, tB, s, dEdge, dTrans float64) float64 {
	ua := 1.0 / (dEdge * dEdge)
	ub := 1.0 / (dTrans * dTrans)
	a := ua + ub
	b := -2.0 * (ua*tA + ub*tB)
	c := ua*tA*tA + ub*tB*tB - s*s
	return quadraticRoot(a, b, c)
}

// fdsph2d: the planar 2D transmission stencil, also used for head-wave
// detection against the 3D candidate.
func fdsph2d(t1, t2, s, d1, d2 float64) float64 {
	u1 := 1.0 / (d1 * d1)
	u2 := 1.0 / (d2 * d2)
	a := u1 + u2
	b := -2.0 * (u1*t1 + u2*t2)
	c := u1*t1*t1 + u2*t2*t2 - s*s
	return quadraticRoot(a, b, c)
}

// fd1d: direct transmission through a single edge of length d, using the
// slowness s that solveCell passes (the value at the cell being solved,
// not a mean over the edge).
func fd1d(tKnown, s, d float64) float64 {
	return tKnown + s*d
}
