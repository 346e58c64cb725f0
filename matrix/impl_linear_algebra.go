// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// element-wise addition and subtraction, matrix multiplication, transpose,
// scalar scaling, matrix-vector products, pivoted LU factorization,
// determinant and inverse. All functions perform strict fail-fast validation
// and return sentinel errors wrapped with an operation tag.
//
// Purpose:
//   - Declare canonical linear-algebra kernels used by the solvers and the CLI.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - Every kernel reads its operands through toDense, so the caller's data is
//     never aliased or mutated, and then works on flat row-major slices.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd         = "Add"
	opSub         = "Sub"
	opMul         = "Mul"
	opTranspose   = "Transpose"
	opScale       = "Scale"
	opMatVec      = "MatVec"
	opLUP         = "LUP"
	opDeterminant = "Determinant"
	opInverse     = "Inverse"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated; operands are not mutated.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b); copy a into the result buffer.
//   - Stage 2: single flat loop 0..n-1 adding sign*b.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res, err := toDense(a, DefaultValidateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	db, err := toDense(b, DefaultValidateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	for idx := range res.data { // deterministic 0..n-1
		res.data[idx] += sign * db.data[idx]
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (Matrix, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Sub(a, b Matrix) (Matrix, error) { return addSub(a, b, -1, opSub) }

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: i→k→j over row-major strides, skipping zero A[i,k].
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := toDense(a, DefaultValidateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := toDense(b, DefaultValidateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := da.r, da.c, db.c
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, j, k int
	var av float64
	var rowOffsetA, rowOffsetB, rowOffsetR int
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = da.data[rowOffsetA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Total for any non-nil matrix; the original matrix is never mutated.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	dm, err := toDense(m, DefaultValidateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := dm.Shape()
	res, err := NewDense(cols, rows) // dims flipped
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j, baseSrc int
	for i = 0; i < rows; i++ {
		baseSrc = i * cols
		for j = 0; j < cols; j++ {
			res.data[j*rows+i] = dm.data[baseSrc+j]
		}
	}

	return res, nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
//
// Errors:
//   - ErrNilMatrix; ErrNaNInf if alpha is not finite.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if isNonFinite(alpha) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	res, err := toDense(m, DefaultValidateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for idx := range res.data {
		res.data[idx] *= alpha
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Errors:
//   - ErrNilMatrix; ErrDimensionMismatch when len(x) != m.Cols().
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	dm, err := toDense(m, DefaultValidateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	rows, cols := dm.Shape()
	y := make([]float64, rows)
	var i, j, base int
	var sum float64
	for i = 0; i < rows; i++ {
		sum = ZeroSum
		base = i * cols
		for j = 0; j < cols; j++ {
			sum += dm.data[base+j] * x[j]
		}
		y[i] = sum
	}

	return y, nil
}

// LUPFactors holds P·A = L·U for a square A.
//   - L is unit lower triangular, U upper triangular.
//   - Perm[i] is the original row of A that ended up in row i.
//   - Sign is (-1)^(number of row swaps), used by Determinant.
type LUPFactors struct {
	L, U *Dense
	Perm []int
	Sign float64
}

// LUP computes a Doolittle factorization with partial (row) pivoting.
// Implementation:
//   - Stage 1: Validate m (not nil, square); copy into a working buffer.
//   - Stage 2: for k=0..n-1 pick the largest |a[i,k]| (i ≥ k, ties to the lowest
//     row), swap it into row k, then store multipliers below the diagonal and
//     update the trailing block.
//   - Stage 3: split the buffer into L (unit diagonal) and U.
//
// Behavior highlights:
//   - A column with an exactly zero pivot is skipped; U then carries a zero on
//     the diagonal and Determinant reports 0. No error is raised here so that
//     Determinant stays total on square input.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Determinism:
//   - Fixed k↑, i↑, j↑ loops and lowest-index tie breaking.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func LUP(m Matrix) (*LUPFactors, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opLUP, err)
	}
	w, err := toDense(m, DefaultValidateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opLUP, err)
	}

	n := w.r
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sign := 1.0

	var i, j, k, p int
	var best, v, pivot, mult float64
	for k = 0; k < n; k++ {
		p, best = k, math.Abs(w.at(k, k))
		for i = k + 1; i < n; i++ {
			if v = math.Abs(w.at(i, k)); v > best {
				p, best = i, v
			}
		}
		if best == 0 {
			continue // zero column below the diagonal: U[k,k] = 0
		}
		if p != k {
			w.swapRows(p, k)
			perm[p], perm[k] = perm[k], perm[p]
			sign = -sign
		}
		pivot = w.at(k, k)
		for i = k + 1; i < n; i++ {
			mult = w.at(i, k) / pivot
			w.data[i*n+k] = mult // store L below the diagonal
			if mult == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				w.data[i*n+j] -= mult * w.data[k*n+j]
			}
		}
	}

	L, err := NewIdentity(n)
	if err != nil {
		return nil, matrixErrorf(opLUP, err)
	}
	U, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opLUP, err)
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if j < i {
				L.data[i*n+j] = w.data[i*n+j]
			} else {
				U.data[i*n+j] = w.data[i*n+j]
			}
		}
	}

	return &LUPFactors{L: L, U: U, Perm: perm, Sign: sign}, nil
}

// Determinant returns det(A) = Sign · Π U[i,i] from the pivoted LU factors.
// Fails with ErrNonSquare (a shape error) for non-square input.
// Complexity: O(n^3).
func Determinant(m Matrix) (float64, error) {
	f, err := LUP(m)
	if err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}

	return f.det(), nil
}

func (f *LUPFactors) det() float64 {
	d := f.Sign
	n := f.U.r
	for i := 0; i < n; i++ {
		d *= f.U.data[i*n+i]
	}

	return d
}

// Inverse computes A^{-1} through the pivoted LU factors.
// Implementation:
//   - Stage 1: LUP(m); refuse with ErrSingular when |det| < singular threshold.
//   - Stage 2: for each basis column e_col: forward solve L*y = P*e_col,
//     backward solve U*x = y, write x into column col.
//
// Inputs:
//   - m: non-nil square matrix (n×n).
//   - opts: WithSingularThreshold to change the |det| bound (default 1e-12).
//
// Returns:
//   - Matrix: Dense(n×n) X with A·X = I.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Inverse(m Matrix, opts ...Option) (Matrix, error) {
	o := gatherOptions(opts...)
	f, err := LUP(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if det := f.det(); math.Abs(det) < o.singular {
		return nil, matrixErrorf(opInverse, fmt.Errorf("|det| = %g: %w", math.Abs(det), ErrSingular))
	}

	n := f.U.r
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var (
		col, i, k int
		sum       float64
		y         = make([]float64, n) // forward substitution workspace
		x         = make([]float64, n) // backward substitution workspace
	)
	for col = 0; col < n; col++ {
		// Forward substitution: L*y = P*e_col
		for i = 0; i < n; i++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += f.L.data[i*n+k] * y[k]
			}
			if f.Perm[i] == col {
				y[i] = 1.0 - sum
			} else {
				y[i] = -sum
			}
		}
		// Backward substitution: U*x = y
		for i = n - 1; i >= 0; i-- {
			sum = ZeroSum
			for k = i + 1; k < n; k++ {
				sum += f.U.data[i*n+k] * x[k]
			}
			if f.U.data[i*n+i] == 0 { // reachable only with a zero singular threshold
				return nil, matrixErrorf(opInverse, ErrSingular)
			}
			x[i] = (y[i] - sum) / f.U.data[i*n+i]
		}
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}
