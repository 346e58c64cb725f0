// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the solver engine and its
// numeric policy. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - One epsilon policy: every tolerance used by RREF, solvers, classification
//     and vector guards is read from Options, never from an inline literal.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - eps is the zero threshold of elimination: pivot search, inconsistency
//     detection and the post-pass snap to 0.
//   - tol is the allclose-style tolerance of the structural predicates
//     (IsSymmetric, IsIdentity, ...) and of the zero-vector guard.
//   - singular is the |det| threshold below which Inverse/Cramer refuse.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

// Numeric policy.
const (
	// DefaultEpsilon is the elimination zero threshold used by RREF and the solvers.
	DefaultEpsilon = 1e-12

	// DefaultTolerance is the allclose tolerance used by classification predicates.
	DefaultTolerance = 1e-8

	// DefaultSingularThreshold is the |det(A)| bound below which A is treated as singular.
	DefaultSingularThreshold = 1e-12

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid   = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicToleranceInvalid = "matrix: WithTolerance: tol must be finite, non-negative"
	panicSingularInvalid  = "matrix: WithSingularThreshold: threshold must be finite, non-negative"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported to prevent external mutation; public entry points
// accept `...Option` and resolve them via gatherOptions.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	tol            float64 // >= 0; DefaultTolerance
	singular       float64 // >= 0; DefaultSingularThreshold
	validateNaNInf bool    // DefaultValidateNaNInf
}

// Epsilon reports the effective elimination zero threshold.
func (o Options) Epsilon() float64 { return o.eps }

// Tolerance reports the effective classification tolerance.
func (o Options) Tolerance() float64 { return o.tol }

// SingularThreshold reports the effective |det| singularity bound.
func (o Options) SingularThreshold() float64 { return o.singular }

// ---------- Constructors (WithX) ----------

// WithEpsilon sets the elimination tolerance eps.
// Implementation:
//   - Stage 1: validate eps is finite and ≥ 0.
//   - Stage 2: return a setter that writes eps into Options.
//
// Behavior highlights:
//   - Values with |v| ≤ eps are never chosen as pivots, and values with
//     |v| < eps are snapped to 0 after reduction.
//
// Errors:
//   - Panics with a stable message when eps is invalid.
//
// Complexity:
//   - Time O(1), Space O(1).
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithTolerance sets the allclose tolerance of the structural predicates.
// Panics when tol is negative or non-finite.
func WithTolerance(tol float64) Option {
	if isNonFinite(tol) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithSingularThreshold sets the |det(A)| threshold used by Inverse, Cramer and IsSingular.
// Panics when the threshold is negative or non-finite.
func WithSingularThreshold(threshold float64) Option {
	if isNonFinite(threshold) || threshold < 0 {
		panic(panicSingularInvalid)
	}

	return func(o *Options) { o.singular = threshold }
}

// WithValidateNaNInf enables strict finite-value validation on the working copies.
// This is the default.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/Inf validation (use with care).
// Non-finite input then propagates through arithmetic instead of failing fast.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// NewOptions returns the effective Options for a sequence of setters.
// Useful for callers that want to echo the policy (e.g. the CLI).
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// defaultOptions returns the documented defaults (single source of truth).
func defaultOptions() Options {
	return Options{
		eps:            DefaultEpsilon,
		tol:            DefaultTolerance,
		singular:       DefaultSingularThreshold,
		validateNaNInf: DefaultValidateNaNInf,
	}
}

// gatherOptions applies user-provided Option setters on top of defaults.
// Implementation:
//   - Stage 1: start from defaultOptions().
//   - Stage 2: apply setters in order (last-writer-wins); nil setters are skipped.
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, set := range user {
		if set != nil {
			set(&o) // apply in order; last-writer-wins semantics
		}
	}

	return o
}

// isNonFinite reports whether x is NaN or ±Inf.
func isNonFinite(x float64) bool { return math.IsNaN(x) || math.IsInf(x, 0) }
