// Package svd provides thin singular value decomposition helpers for the
// symmetric 3x3 and 2x2 covariance matrices used by confidence ellipsoid
// extraction in internal/locstats.
package svd

import (
	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/seismocore/internal/coreerrs"
)

// SmallDouble is the minimum admissible singular value; anything smaller
// marks the covariance matrix as degenerate (mirrors SMALL_DOUBLE in the
// NonLinLoc matrix_statistics sources).
const SmallDouble = 1e-12

// Sym3x3SVD computes the singular value decomposition of a symmetric 3x3
// matrix, returning singular values sorted ascending and the matching
// right-singular vectors as columns of v (v[row][col]).
func Sym3x3SVD(a [3][3]float64) (w [3]float64, v [3][3]float64, err error) {
	dense := mat.NewDense(3, 3, []float64{
		a[0][0], a[0][1], a[0][2],
		a[1][0], a[1][1], a[1][2],
		a[2][0], a[2][1], a[2][2],
	})

	var svd mat.SVD
	if ok := svd.Factorize(dense, mat.SVDFull); !ok {
		return w, v, &coreerrs.SingularMatrix{Matrix: "covariance 3x3"}
	}

	values := svd.Values(nil)
	var vMat mat.Dense
	svd.VTo(&vMat)

	type idxVal struct {
		idx int
		val float64
	}
	order := []idxVal{{0, values[0]}, {1, values[1]}, {2, values[2]}}
	// Simple ascending sort by singular value, carrying the column
	// permutation through to v, mirroring the bubble-sort-by-W used in
	// CalcErrorEllipsoid.
	for i := 0; i < len(order); i++ {
		for j := 0; j < len(order)-1-i; j++ {
			if order[j].val > order[j+1].val {
				order[j], order[j+1] = order[j+1], order[j]
			}
		}
	}

	for outCol, o := range order {
		w[outCol] = o.val
		if w[outCol] < SmallDouble {
			return w, v, &coreerrs.DegenerateCovariance{SingularValue: w[outCol], Threshold: SmallDouble}
		}
		for row := 0; row < 3; row++ {
			v[row][outCol] = vMat.At(row, o.idx)
		}
	}

	return w, v, nil
}

// Sym2x2SVD computes the singular value decomposition of a symmetric 2x2
// matrix, returning singular values sorted ascending and the matching
// right-singular vectors as columns of v.
func Sym2x2SVD(a [2][2]float64) (w [2]float64, v [2][2]float64, err error) {
	dense := mat.NewDense(2, 2, []float64{
		a[0][0], a[0][1],
		a[1][0], a[1][1],
	})

	var svd mat.SVD
	if ok := svd.Factorize(dense, mat.SVDFull); !ok {
		return w, v, &coreerrs.SingularMatrix{Matrix: "covariance 2x2"}
	}

	values := svd.Values(nil)
	var vMat mat.Dense
	svd.VTo(&vMat)

	idx0, idx1 := 0, 1
	if values[0] > values[1] {
		idx0, idx1 = 1, 0
	}

	w[0], w[1] = values[idx0], values[idx1]
	if w[0] < SmallDouble {
		return w, v, &coreerrs.DegenerateCovariance{SingularValue: w[0], Threshold: SmallDouble}
	}

	for row := 0; row < 2; row++ {
		v[row][0] = vMat.At(row, idx0)
		v[row][1] = vMat.At(row, idx1)
	}

	return w, v, nil
}
