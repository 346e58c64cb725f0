// SPDX-License-Identifier: MIT

// Package matrix - vector algebra over []float64.
//
// Contract:
//   - Binary operations require equal, non-zero lengths (ErrDimensionMismatch).
//   - Inputs are never mutated; every result is a fresh slice.
//   - Projection and AngleBetween treat a vector with norm ≤ tolerance as
//     zero (ErrZeroVector); the tolerance defaults to DefaultTolerance.
package matrix

import (
	"fmt"
	"math"
)

const (
	opVecAdd     = "VecAdd"
	opVecSub     = "VecSub"
	opDot        = "Dot"
	opCross      = "Cross"
	opPerpDot    = "PerpDot"
	opNorm       = "Norm"
	opProjection = "Projection"
	opAngle      = "AngleBetween"
	opVectorOp   = "VectorOp"
)

// VectorKind names a dispatchable vector operation.
type VectorKind string

// Vector operation kinds accepted by VectorOp.
const (
	VecKindAdd        VectorKind = "add"
	VecKindSubtract   VectorKind = "subtract"
	VecKindDot        VectorKind = "dot"
	VecKindCross      VectorKind = "cross"
	VecKindNorm       VectorKind = "norm"
	VecKindProjection VectorKind = "projection"
	VecKindAngle      VectorKind = "angle"
	VecKindPerpDot    VectorKind = "perp-dot"
)

// VectorKinds lists every kind VectorOp accepts, in display order.
var VectorKinds = []VectorKind{
	VecKindAdd, VecKindSubtract, VecKindDot, VecKindCross,
	VecKindNorm, VecKindProjection, VecKindAngle, VecKindPerpDot,
}

// VectorResult is either a vector or a scalar, as flagged by IsScalar.
type VectorResult struct {
	Vector   []float64
	Scalar   float64
	IsScalar bool
}

// String renders the result with the package display policy.
func (r VectorResult) String() string {
	if r.IsScalar {
		return FormatScalar(r.Scalar)
	}

	return FormatVector(r.Vector)
}

// VecAdd returns u + v.
func VecAdd(u, v []float64) ([]float64, error) {
	if err := ValidateVecPair(u, v); err != nil {
		return nil, matrixErrorf(opVecAdd, err)
	}
	out := make([]float64, len(u))
	for i := range u {
		out[i] = u[i] + v[i]
	}

	return out, nil
}

// VecSub returns u - v.
func VecSub(u, v []float64) ([]float64, error) {
	if err := ValidateVecPair(u, v); err != nil {
		return nil, matrixErrorf(opVecSub, err)
	}
	out := make([]float64, len(u))
	for i := range u {
		out[i] = u[i] - v[i]
	}

	return out, nil
}

// Dot returns Σ u[i]·v[i].
func Dot(u, v []float64) (float64, error) {
	if err := ValidateVecPair(u, v); err != nil {
		return 0, matrixErrorf(opDot, err)
	}

	return dot(u, v), nil
}

// Cross returns u × v for 3-vectors. Any other length fails with
// ErrCrossDimension; for the 2-D scalar form use PerpDot.
func Cross(u, v []float64) ([]float64, error) {
	if len(u) != 3 || len(v) != 3 {
		return nil, matrixErrorf(opCross, fmt.Errorf("len(u)=%d, len(v)=%d: %w", len(u), len(v), ErrCrossDimension))
	}

	return []float64{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}, nil
}

// PerpDot returns the 2-D perp-dot product u₀v₁ − u₁v₀, the z component of
// the cross product of the vectors lifted to 3-D. Other lengths fail with
// ErrCrossDimension.
func PerpDot(u, v []float64) (float64, error) {
	if len(u) != 2 || len(v) != 2 {
		return 0, matrixErrorf(opPerpDot, fmt.Errorf("len(u)=%d, len(v)=%d: %w", len(u), len(v), ErrCrossDimension))
	}

	return u[0]*v[1] - u[1]*v[0], nil
}

// Norm returns the Euclidean norm of u. An empty vector fails with
// ErrDimensionMismatch.
func Norm(u []float64) (float64, error) {
	if len(u) == 0 {
		return 0, matrixErrorf(opNorm, ErrDimensionMismatch)
	}

	return norm(u), nil
}

// Projection returns the projection of u onto v: (u·v / v·v)·v.
//
// Errors:
//   - ErrDimensionMismatch for unequal or empty lengths.
//   - ErrZeroVector when ‖v‖ ≤ tolerance (WithTolerance).
func Projection(u, v []float64, opts ...Option) ([]float64, error) {
	if err := ValidateVecPair(u, v); err != nil {
		return nil, matrixErrorf(opProjection, err)
	}
	o := gatherOptions(opts...)
	if norm(v) <= o.tol {
		return nil, matrixErrorf(opProjection, ErrZeroVector)
	}

	k := dot(u, v) / dot(v, v)
	out := make([]float64, len(v))
	for i := range v {
		out[i] = k * v[i]
	}

	return out, nil
}

// AngleBetween returns the angle between u and v in radians, in [0, π].
// The cosine is clamped to [-1, 1] before arccos so round-off never
// leaves the domain.
//
// Errors:
//   - ErrDimensionMismatch for unequal or empty lengths.
//   - ErrZeroVector when either norm is ≤ tolerance (WithTolerance).
func AngleBetween(u, v []float64, opts ...Option) (float64, error) {
	if err := ValidateVecPair(u, v); err != nil {
		return 0, matrixErrorf(opAngle, err)
	}
	o := gatherOptions(opts...)
	nu, nv := norm(u), norm(v)
	if nu <= o.tol || nv <= o.tol {
		return 0, matrixErrorf(opAngle, ErrZeroVector)
	}

	cos := dot(u, v) / (nu * nv)
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos), nil
}

// VectorOp dispatches a vector operation by kind. Unary kinds (norm) ignore v.
//
// Errors:
//   - ErrUnknownOperation for an unrecognized kind.
//   - Whatever the selected operation returns.
func VectorOp(kind VectorKind, u, v []float64, opts ...Option) (VectorResult, error) {
	var (
		res VectorResult
		err error
	)
	switch kind {
	case VecKindAdd:
		res.Vector, err = VecAdd(u, v)
	case VecKindSubtract:
		res.Vector, err = VecSub(u, v)
	case VecKindCross:
		res.Vector, err = Cross(u, v)
	case VecKindProjection:
		res.Vector, err = Projection(u, v, opts...)
	case VecKindDot:
		res.IsScalar = true
		res.Scalar, err = Dot(u, v)
	case VecKindNorm:
		res.IsScalar = true
		res.Scalar, err = Norm(u)
	case VecKindAngle:
		res.IsScalar = true
		res.Scalar, err = AngleBetween(u, v, opts...)
	case VecKindPerpDot:
		res.IsScalar = true
		res.Scalar, err = PerpDot(u, v)
	default:
		return VectorResult{}, matrixErrorf(opVectorOp, fmt.Errorf("%q: %w", kind, ErrUnknownOperation))
	}
	if err != nil {
		return VectorResult{}, err
	}

	return res, nil
}

func dot(u, v []float64) float64 {
	var s float64
	for i := range u {
		s += u[i] * v[i]
	}

	return s
}

func norm(u []float64) float64 { return math.Sqrt(dot(u, u)) }
