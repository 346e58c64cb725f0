// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the dense linear-algebra kernels.
package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/linstep/matrix"
	"github.com/stretchr/testify/require"
)

// TestAddSub checks element-wise kernels on both copy paths.
func TestAddSub(t *testing.T) {
	t.Parallel()

	a := MustFromRows(t, [][]float64{{1, 2}, {3, 4}})
	b := MustFromRows(t, [][]float64{{10, 20}, {30, 40}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{11, 22}, {33, 44}}, MustRows(t, sum))

	diff, err := matrix.Sub(hide{b}, hide{a})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{9, 18}, {27, 36}}, MustRows(t, diff))

	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, a.ToRows(), "operands untouched")

	_, err = matrix.Add(a, MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Sub(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestMul covers a rectangular product and the inner-dimension check.
func TestMul(t *testing.T) {
	t.Parallel()

	a := MustFromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := MustFromRows(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})
	c, err := matrix.Mul(a, b)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{58, 64}, {139, 154}}, MustRows(t, c))

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.ErrorIs(t, err, matrix.ErrShape)
}

// TestTranspose checks shape flip and totality.
func TestTranspose(t *testing.T) {
	t.Parallel()

	a := MustFromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, MustRows(t, at))

	att, err := matrix.Transpose(at)
	require.NoError(t, err)
	require.Equal(t, a.ToRows(), MustRows(t, att))

	_, err = matrix.Transpose(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestScaleAndMatVec covers the remaining small kernels.
func TestScaleAndMatVec(t *testing.T) {
	t.Parallel()

	a := MustFromRows(t, [][]float64{{1, -2}, {0, 3}})
	s, err := matrix.Scale(a, -2)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{-2, 4}, {0, -6}}, MustRows(t, s))

	_, err = matrix.Scale(a, math.Inf(1))
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	y, err := matrix.MatVec(a, []float64{1, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{-1, 3}, y)

	_, err = matrix.MatVec(a, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestLUP checks P·A = L·U and the permutation sign.
func TestLUP(t *testing.T) {
	t.Parallel()

	rows := [][]float64{{0, 2, 1}, {1, 1, 0}, {3, 0, 1}}
	a := MustFromRows(t, rows)
	f, err := matrix.LUP(a)
	require.NoError(t, err)

	lu, err := matrix.Mul(f.L, f.U)
	require.NoError(t, err)
	pa := make([][]float64, len(rows))
	for i, src := range f.Perm {
		pa[i] = rows[src]
	}
	requireMatClose(t, pa, lu, 1e-12)

	for i := 0; i < 3; i++ {
		v, _ := f.L.At(i, i)
		require.Equal(t, 1.0, v)
		for j := i + 1; j < 3; j++ {
			v, _ = f.L.At(i, j)
			require.Zero(t, v)
			v, _ = f.U.At(j, i)
			require.Zero(t, v)
		}
	}
	require.Contains(t, []float64{-1, 1}, f.Sign)

	_, err = matrix.LUP(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

// TestDeterminant covers diagonal, permuted, singular and non-square inputs.
func TestDeterminant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows [][]float64
		want float64
	}{
		{"1x1", [][]float64{{-7}}, -7},
		{"diagonal", [][]float64{{4, 0}, {0, 9}}, 36},
		{"swap", [][]float64{{0, 1}, {1, 0}}, -1},
		{"2x2", [][]float64{{2, 1}, {1, 3}}, 5},
		{"singular", [][]float64{{1, 2}, {2, 4}}, 0},
		{"zero column", [][]float64{{0, 1}, {0, 2}}, 0},
		{"3x3", [][]float64{{6, 1, 1}, {4, -2, 5}, {2, 8, 7}}, -306},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := matrix.Determinant(MustFromRows(t, tc.rows))
			require.NoError(t, err)
			require.InDelta(t, tc.want, got, 1e-9)
		})
	}

	_, err := matrix.Determinant(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
	require.ErrorIs(t, err, matrix.ErrShape)
}

// TestInverse covers the diagonal scenario, round trips and singularity.
func TestInverse(t *testing.T) {
	t.Parallel()

	t.Run("diagonal", func(t *testing.T) {
		inv, err := matrix.Inverse(MustFromRows(t, [][]float64{{4, 0}, {0, 9}}))
		require.NoError(t, err)
		requireMatClose(t, [][]float64{{0.25, 0}, {0, 1.0 / 9}}, inv, 1e-12)
		require.Equal(t, "0.2500 0\n0 0.1111", matrix.FormatMatrix(inv))
	})

	t.Run("random round trip", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		for n := 1; n <= 5; n++ {
			a := MustDense(t, n, n)
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					require.NoError(t, a.Set(i, j, rng.Float64()*2-1))
				}
				v, _ := a.At(i, i)
				require.NoError(t, a.Set(i, i, v+float64(n)))
			}
			inv, err := matrix.Inverse(a)
			require.NoError(t, err)
			prod, err := matrix.Mul(a, inv)
			require.NoError(t, err)
			ok, err := matrix.AllClose(prod, MustIdentity(t, n), 0, 1e-9)
			require.NoError(t, err)
			require.True(t, ok, "A·A⁻¹ ≈ I for n=%d", n)
		}
	})

	t.Run("singular", func(t *testing.T) {
		_, err := matrix.Inverse(MustFromRows(t, [][]float64{{1, 2}, {2, 4}}))
		require.ErrorIs(t, err, matrix.ErrSingular)
	})

	t.Run("threshold", func(t *testing.T) {
		a := MustFromRows(t, [][]float64{{1e-7, 0}, {0, 1e-7}}) // det = 1e-14
		_, err := matrix.Inverse(a)
		require.ErrorIs(t, err, matrix.ErrSingular)

		inv, err := matrix.Inverse(a, matrix.WithSingularThreshold(0))
		require.NoError(t, err)
		requireMatClose(t, [][]float64{{1e7, 0}, {0, 1e7}}, inv, 1e-3)
	})

	t.Run("non-square", func(t *testing.T) {
		_, err := matrix.Inverse(MustDense(t, 3, 2))
		require.ErrorIs(t, err, matrix.ErrNonSquare)
	})
}
