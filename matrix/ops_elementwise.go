// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, private element-wise kernels (ew*) shared by the public
//     comparison facade (AllClose) and the classification predicates.
//
// Determinism:
//   - Fixed loop orders (flat 0..n-1 over the row-major buffer, or i→j).
//   - Inputs are read through a private *Dense copy; callers' data is never touched.

package matrix

import "math"

const opAllClose = "AllClose"

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Time: O(r*c). Space: O(r*c) for the private copies.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|; NaN/Inf tolerances are rejected.
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if isNonFinite(rtol) || isNonFinite(atol) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	// Comparison must see NaN/Inf as-is, so no ingestion check here.
	da, err := toDense(a, false)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := toDense(b, false)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	var x, y float64
	for idx := range da.data {
		x, y = da.data[idx], db.data[idx]
		if x == y { // covers ±Inf == ±Inf
			continue
		}
		if math.Abs(x-y) > atol+rtol*math.Abs(y) || math.IsNaN(x-y) {
			return false, nil
		}
	}

	return true, nil
}

// ewAllZeroWhere reports whether every entry m[i,j] with keep(i,j) == true
// has |m[i,j]| ≤ tol. Used by the triangular and diagonal predicates.
// Time: O(r*c). Deterministic i→j loops.
func ewAllZeroWhere(m *Dense, tol float64, keep func(i, j int) bool) bool {
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			if keep(i, j) && math.Abs(m.at(i, j)) > tol {
				return false
			}
		}
	}

	return true
}
