package svd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSym3x3SVDIdentity(t *testing.T) {
	w, _, err := Sym3x3SVD([3][3]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, w[0], 1e-9)
	assert.InDelta(t, 1.0, w[1], 1e-9)
	assert.InDelta(t, 1.0, w[2], 1e-9)
}

func TestSym3x3SVDSortedAscending(t *testing.T) {
	// Non-diagonal symmetric covariance with distinct variances: singular
	// values come back sorted ascending.
	w, v, err := Sym3x3SVD([3][3]float64{
		{2063.45, 583.753, 85.5223},
		{583.753, 11110.7, -248.964},
		{85.5223, -248.964, 953.632},
	})
	require.NoError(t, err)
	assert.True(t, w[0] <= w[1])
	assert.True(t, w[1] <= w[2])

	// Each column of v should be unit length.
	for col := 0; col < 3; col++ {
		norm := math.Sqrt(v[0][col]*v[0][col] + v[1][col]*v[1][col] + v[2][col]*v[2][col])
		assert.InDelta(t, 1.0, norm, 1e-6)
	}
}

func TestSym3x3SVDDegenerate(t *testing.T) {
	_, _, err := Sym3x3SVD([3][3]float64{})
	assert.Error(t, err)
}

func TestSym2x2SVDIdentity(t *testing.T) {
	w, _, err := Sym2x2SVD([2][2]float64{
		{1, 0},
		{0, 1},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, w[0], 1e-9)
	assert.InDelta(t, 1.0, w[1], 1e-9)
}

func TestSym2x2SVDSorted(t *testing.T) {
	w, _, err := Sym2x2SVD([2][2]float64{
		{10, 0},
		{0, 2},
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, w[0], 1e-9)
	assert.InDelta(t, 10.0, w[1], 1e-9)
}

func TestSym2x2SVDDegenerate(t *testing.T) {
	_, _, err := Sym2x2SVD([2][2]float64{})
	assert.Error(t, err)
}
