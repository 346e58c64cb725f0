// SPDX-License-Identifier: MIT

// Package matrix - structural classification of square matrices.
//
// Every predicate requires a square, non-nil matrix (ErrNonSquare / ErrNilMatrix)
// and compares with an absolute tolerance, default DefaultTolerance (1e-8),
// tunable with WithTolerance. IsSingular uses the singular threshold instead.
package matrix

import "math"

const opClassify = "Classify"

// Classification holds every structural flag of one square matrix.
type Classification struct {
	Identity        bool
	Symmetric       bool
	UpperTriangular bool
	LowerTriangular bool
	Diagonal        bool
	Singular        bool
	Determinant     float64
}

// Classify computes all structural flags of a at once.
// Implementation:
//   - Stage 1: validate square; take a private copy.
//   - Stage 2: triangular/diagonal via below/above-diagonal zero tests.
//   - Stage 3: symmetric via AllClose(A, Aᵀ); identity = diagonal with unit diagonal.
//   - Stage 4: singular via |det(A)| < singular threshold.
//
// Complexity: O(n^3) for the determinant, O(n^2) for the rest.
func Classify(a Matrix, opts ...Option) (Classification, error) {
	var c Classification
	if err := ValidateSquareNonNil(a); err != nil {
		return c, matrixErrorf(opClassify, err)
	}
	o := gatherOptions(opts...)
	m, err := toDense(a, o.validateNaNInf)
	if err != nil {
		return c, matrixErrorf(opClassify, err)
	}

	c.UpperTriangular = ewAllZeroWhere(m, o.tol, func(i, j int) bool { return i > j })
	c.LowerTriangular = ewAllZeroWhere(m, o.tol, func(i, j int) bool { return i < j })
	c.Diagonal = c.UpperTriangular && c.LowerTriangular

	mt, err := Transpose(m)
	if err != nil {
		return c, matrixErrorf(opClassify, err)
	}
	if c.Symmetric, err = ewAllClose(m, mt, 0, o.tol); err != nil {
		return c, matrixErrorf(opClassify, err)
	}

	c.Identity = c.Diagonal
	for i := 0; i < m.r && c.Identity; i++ {
		c.Identity = math.Abs(m.at(i, i)-1) <= o.tol
	}

	if c.Determinant, err = Determinant(m); err != nil {
		return c, matrixErrorf(opClassify, err)
	}
	c.Singular = math.Abs(c.Determinant) < o.singular

	return c, nil
}

// IsIdentity reports whether a ≈ I.
func IsIdentity(a Matrix, opts ...Option) (bool, error) {
	c, err := Classify(a, opts...)
	return c.Identity, err
}

// IsSymmetric reports whether a ≈ aᵀ.
func IsSymmetric(a Matrix, opts ...Option) (bool, error) {
	c, err := Classify(a, opts...)
	return c.Symmetric, err
}

// IsUpperTriangular reports whether every entry below the diagonal is ≈ 0.
func IsUpperTriangular(a Matrix, opts ...Option) (bool, error) {
	c, err := Classify(a, opts...)
	return c.UpperTriangular, err
}

// IsLowerTriangular reports whether every entry above the diagonal is ≈ 0.
func IsLowerTriangular(a Matrix, opts ...Option) (bool, error) {
	c, err := Classify(a, opts...)
	return c.LowerTriangular, err
}

// IsDiagonal reports whether every off-diagonal entry is ≈ 0.
func IsDiagonal(a Matrix, opts ...Option) (bool, error) {
	c, err := Classify(a, opts...)
	return c.Diagonal, err
}

// IsSingular reports whether |det(a)| is below the singular threshold
// (DefaultSingularThreshold, tunable with WithSingularThreshold).
func IsSingular(a Matrix, opts ...Option) (bool, error) {
	c, err := Classify(a, opts...)
	return c.Singular, err
}
