// Package matrix is a small dense linear-algebra engine that narrates its work.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix behind the Matrix interface, with
//     rectangularity enforced at construction.
//   - RREF, partial-pivoting Gauss-Jordan reduction that records every swap,
//     scale and elimination in a StepLog together with matrix snapshots.
//   - SolveLinearSystem, which classifies A·x = b as unique, infinite or
//     inconsistent and returns the solution, a particular solution plus a
//     null-space basis, or nothing; SolveHomogeneous for A·x = 0.
//   - SolveByInverse and SolveCramer for square non-singular systems.
//   - Determinant and Inverse via a pivoted LU factorization (LUP), Rank,
//     Transpose and the usual Add/Sub/Mul/Scale/MatVec kernels.
//   - Classify and the Is* predicates for structural properties.
//   - Vector algebra: VecAdd, VecSub, Dot, Cross, PerpDot, Norm, Projection,
//     AngleBetween and the VectorOp dispatcher.
//   - FormatScalar/FormatVector/FormatMatrix for display with numeric-noise
//     suppression.
//
// Every call works on a private copy of its inputs and keeps no state
// between calls, so concurrent use is safe. Numeric tolerances come from a
// single policy (DefaultEpsilon, DefaultTolerance, DefaultSingularThreshold)
// adjustable per call with Option values.
//
// Errors are package sentinels matched with errors.Is. All shape violations
// satisfy errors.Is(err, ErrShape). An inconsistent system is a Status, not
// an error.
package matrix
