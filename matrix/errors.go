// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All algorithms MUST return these sentinels and tests MUST check them
// via errors.Is. No algorithm should panic on user-triggered error conditions.
// Panics are reserved for programmer errors (invalid Option values).

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Kernels wrap with matrixErrorf(op, ErrX) so the
// operation tag is visible; callers still match with errors.Is.
//
// ERROR CLASSES:
//   - shape:    ErrShape is the root; ErrBadShape, ErrNonSquare and
//     ErrDimensionMismatch all satisfy errors.Is(err, ErrShape).
//   - numeric:  ErrSingular, ErrZeroVector, ErrNaNInf.
//   - arity:    ErrCrossDimension (cross product on non-3-vectors).
//   - misuse:   ErrNilMatrix, ErrOutOfRange, ErrInvalidDimensions, ErrUnknownOperation.
//
// An inconsistent linear system is NOT an error; it is StatusInconsistent.

var (
	// ErrShape is the root of every shape violation (ragged input, non-square
	// where square is required, operand length mismatch).
	ErrShape = errors.New("matrix: shape error")

	// ErrBadShape is returned when input rows are ragged or empty.
	ErrBadShape = fmt.Errorf("%w: rows are empty or not rectangular", ErrShape)

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = fmt.Errorf("%w: matrix is not square", ErrShape)

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. len(b) != A.Rows(), len(u) != len(v), or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrShape)

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy (ingestion, Set, tolerances).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrSingular is returned when |det(A)| falls below the singular threshold
	// during inversion or Cramer's rule.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrZeroVector is returned when a projection or angle is requested against
	// a vector whose norm is within tolerance of zero.
	ErrZeroVector = errors.New("matrix: zero vector")

	// ErrCrossDimension is returned when the cross product is requested on
	// vectors that are not 3-dimensional.
	ErrCrossDimension = errors.New("matrix: cross product requires 3-vectors")

	// ErrUnknownOperation is returned by dispatchers (VectorOp) for an
	// unrecognized operation kind.
	ErrUnknownOperation = errors.New("matrix: unknown operation")
)
