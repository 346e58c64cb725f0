// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense storage and the solver
// kernels. Errors and options live in dedicated files (errors.go, options.go).
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
// Engine entry points accept any Matrix and never mutate it; they copy the
// data into a private *Dense working buffer first.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns in the matrix.
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	// Complexity: O(1).
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	// Complexity: O(1).
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	// Complexity: O(rows*cols).
	Clone() Matrix
}

// Status classifies the solution set of A·x = b.
type Status int

// Solution classes reported by SolveLinearSystem.
const (
	StatusUnique       Status = iota // exactly one solution
	StatusInfinite                   // particular + span of null-space basis
	StatusInconsistent               // no solution; a normal outcome, not an error
)

// String returns the lower-case tag used in logs and CLI output.
func (s Status) String() string {
	switch s {
	case StatusUnique:
		return "unique"
	case StatusInfinite:
		return "infinite"
	case StatusInconsistent:
		return "inconsistent"
	default:
		return "unknown"
	}
}
