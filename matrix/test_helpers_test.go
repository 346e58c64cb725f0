// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic fixtures and comparison utilities for the
//     engine tests.
//   - Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/linstep/matrix"
	"github.com/stretchr/testify/require"
)

// roundTripTol is the tolerance of every A·x ≈ b style check.
const roundTripTol = 1e-6

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the At-based copy path instead of the *Dense flat copy.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c zero *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return m
}

// MustFromRows builds a *Dense from nested rows or fails the test.
func MustFromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

// MustIdentity returns I_n or fails the test.
func MustIdentity(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewIdentity(n)
	require.NoError(t, err)

	return m
}

// MustRows extracts nested rows from any Matrix.
func MustRows(t *testing.T, m matrix.Matrix) [][]float64 {
	t.Helper()
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = make([]float64, m.Cols())
		for j := range out[i] {
			v, err := m.At(i, j)
			require.NoError(t, err)
			out[i][j] = v
		}
	}

	return out
}

// requireMatClose asserts element-wise |got-want| ≤ tol.
func requireMatClose(t *testing.T, want [][]float64, got matrix.Matrix, tol float64) {
	t.Helper()
	require.Equal(t, len(want), got.Rows(), "rows")
	require.Equal(t, len(want[0]), got.Cols(), "cols")
	for i := range want {
		for j := range want[i] {
			v, err := got.At(i, j)
			require.NoError(t, err)
			require.InDeltaf(t, want[i][j], v, tol, "at (%d,%d)", i, j)
		}
	}
}

// requireVecClose asserts element-wise |got-want| ≤ tol.
func requireVecClose(t *testing.T, want, got []float64, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDeltaf(t, want[i], got[i], tol, "at [%d]", i)
	}
}

// requireSolves asserts A·x ≈ b within roundTripTol.
func requireSolves(t *testing.T, a matrix.Matrix, x, b []float64) {
	t.Helper()
	ax, err := matrix.MatVec(a, x)
	require.NoError(t, err)
	requireVecClose(t, b, ax, roundTripTol)
}

// isUnitColumn reports whether column j of m is a unit vector within tol.
func isUnitColumn(m matrix.Matrix, j int, tol float64) bool {
	ones := 0
	for i := 0; i < m.Rows(); i++ {
		v, _ := m.At(i, j)
		switch {
		case math.Abs(v-1) <= tol:
			ones++
		case math.Abs(v) > tol:
			return false
		}
	}

	return ones == 1
}
