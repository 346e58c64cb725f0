// SPDX-License-Identifier: MIT

// Package matrix - linear-system solvers built on the narrated RREF engine.
//
// Purpose:
//   - Classify A·x = b as unique, infinite or inconsistent and extract the
//     solution (vector, or particular + null-space basis).
//   - Extract a null-space basis for A·x = 0.
//   - Offer the inverse-product and Cramer's-rule routes for square systems.
//
// Contract:
//   - Inconsistency is reported as StatusInconsistent, never as an error.
//   - Free variables are the complement of the pivot columns recorded by RREF.
package matrix

import (
	"fmt"
	"math"
	"strings"
)

const (
	opSolve       = "SolveLinearSystem"
	opHomogeneous = "SolveHomogeneous"
	opByInverse   = "SolveByInverse"
	opCramer      = "SolveCramer"
)

// Solution is the immutable record of one solve.
//   - StatusUnique: X holds the solution.
//   - StatusInfinite: Particular, FreeVars and Basis describe
//     x = Particular + Σ tᵢ·Basis[i]; FreeVars[i] is the variable set to tᵢ.
//   - StatusInconsistent: no vectors are set.
//
// Reduced and Pivots are nil for the inverse and Cramer routes.
type Solution struct {
	Status     Status
	X          []float64
	Particular []float64
	FreeVars   []int
	Basis      [][]float64
	Pivots     []int
	Reduced    *Dense
	Steps      StepLog
}

// Evaluate returns the solution for the given free-parameter values.
// For StatusUnique params must be empty; for StatusInfinite len(params)
// must equal len(FreeVars).
//
// Errors:
//   - ErrDimensionMismatch for a wrong parameter count.
func (s *Solution) Evaluate(params ...float64) ([]float64, error) {
	switch s.Status {
	case StatusUnique:
		if len(params) != 0 {
			return nil, fmt.Errorf("Evaluate: unique solution takes no parameters: %w", ErrDimensionMismatch)
		}
		return append([]float64(nil), s.X...), nil
	case StatusInfinite:
		if len(params) != len(s.Basis) {
			return nil, fmt.Errorf("Evaluate: %d parameters for %d free variables: %w", len(params), len(s.Basis), ErrDimensionMismatch)
		}
		x := append([]float64(nil), s.Particular...)
		for i, t := range params {
			for j := range x {
				x[j] += t * s.Basis[i][j]
			}
		}
		return x, nil
	default:
		return nil, fmt.Errorf("Evaluate: %s system has no solution", s.Status)
	}
}

// NullSpace is the solution set of A·x = 0.
type NullSpace struct {
	FreeVars []int
	Basis    [][]float64
	Pivots   []int
	Reduced  *Dense
	Steps    StepLog
}

// Trivial reports whether only x = 0 solves the system.
func (ns *NullSpace) Trivial() bool { return len(ns.Basis) == 0 }

// SolveLinearSystem classifies and solves A·x = b.
// MAIN DESCRIPTION:
//   - Reduces [A|b] with RREF, then reads the solution off the reduced form.
//
// Implementation:
//   - Stage 1: RREF(A, b).
//   - Stage 2: any row with all coefficients within eps of 0 and |rhs| > eps
//     makes the system inconsistent; the row is narrated.
//   - Stage 3: no free columns and rank == #vars ⇒ unique, x[pivot] = rhs of its row.
//   - Stage 4: otherwise infinite: particular solution with free vars at 0,
//     one basis vector per free variable.
//
// Inputs:
//   - a: n×m coefficient matrix; b: right-hand side of length n.
//   - opts: WithEpsilon.
//
// Returns:
//   - *Solution with Status, results, and the step log.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(b) != n), ErrNaNInf.
//
// Complexity:
//   - Dominated by RREF: O(n·m·min(n,m)).
func SolveLinearSystem(a Matrix, b []float64, opts ...Option) (*Solution, error) {
	if err := ValidateSystem(a, b); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	o := gatherOptions(opts...)
	res, err := RREF(a, b, opts...)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	m, vars := res.Reduced, res.Vars
	sol := &Solution{
		Pivots:  res.Pivots,
		Reduced: m,
		Steps:   res.Steps,
	}

	if r := inconsistentRow(m, vars, o.eps); r >= 0 {
		sol.Status = StatusInconsistent
		sol.Steps.inconsistent(m, r)
		return sol, nil
	}

	free := res.FreeColumns()
	if len(free) == 0 && len(res.Pivots) == vars {
		x := make([]float64, vars)
		for k, pc := range res.Pivots {
			x[pc] = m.at(k, vars)
		}
		sol.Status = StatusUnique
		sol.X = x
		sol.Steps.info("Unique solution: x = %s", FormatVector(x))
		return sol, nil
	}

	particular := make([]float64, vars)
	for k, pc := range res.Pivots {
		particular[pc] = m.at(k, vars)
	}
	sol.Status = StatusInfinite
	sol.Particular = particular
	sol.FreeVars = free
	sol.Basis = nullBasis(m, res.Pivots, free, vars)
	sol.Steps.info("Infinitely many solutions; free variables: %s", varNames(free))
	sol.Steps.info("Particular solution: %s", FormatVector(particular))
	for i, v := range sol.Basis {
		sol.Steps.info("Basis for t%d (x%d): %s", i+1, free[i]+1, FormatVector(v))
	}

	return sol, nil
}

// SolveHomogeneous returns a null-space basis of A (solutions of A·x = 0).
// Same reduction and basis rule as SolveLinearSystem, without an augmented
// column; the system is always consistent.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf.
//
// Complexity:
//   - Dominated by RREF: O(n·m·min(n,m)).
func SolveHomogeneous(a Matrix, opts ...Option) (*NullSpace, error) {
	res, err := RREF(a, nil, opts...)
	if err != nil {
		return nil, matrixErrorf(opHomogeneous, err)
	}

	free := res.FreeColumns()
	ns := &NullSpace{
		FreeVars: free,
		Basis:    nullBasis(res.Reduced, res.Pivots, free, res.Vars),
		Pivots:   res.Pivots,
		Reduced:  res.Reduced,
		Steps:    res.Steps,
	}
	if ns.Trivial() {
		ns.Steps.info("Only the trivial solution x = 0")
	} else {
		ns.Steps.info("Free variables: %s", varNames(free))
	}

	return ns, nil
}

// SolveByInverse solves a square non-singular system as x = A⁻¹·b.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrSingular.
//
// Complexity:
//   - O(n^3) for the inverse plus O(n^2) for the product.
func SolveByInverse(a Matrix, b []float64, opts ...Option) (*Solution, error) {
	if err := ValidateSystem(a, b); err != nil {
		return nil, matrixErrorf(opByInverse, err)
	}
	inv, err := Inverse(a, opts...)
	if err != nil {
		return nil, matrixErrorf(opByInverse, err)
	}
	x, err := MatVec(inv, b)
	if err != nil {
		return nil, matrixErrorf(opByInverse, err)
	}

	sol := &Solution{Status: StatusUnique, X: x}
	sol.Steps.info("Inverse A:\n%s", FormatMatrix(inv))
	sol.Steps.info("x = A^-1 * b = %s", FormatVector(x))

	return sol, nil
}

// SolveCramer solves a square non-singular system with Cramer's rule:
// x_i = det(A_i) / det(A), where A_i is A with column i replaced by b.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrSingular
//     (|det(A)| below the singular threshold).
//
// Complexity:
//   - O(n^4): n+1 determinants of O(n^3) each.
func SolveCramer(a Matrix, b []float64, opts ...Option) (*Solution, error) {
	if err := ValidateSystem(a, b); err != nil {
		return nil, matrixErrorf(opCramer, err)
	}
	if err := ValidateSquare(a); err != nil {
		return nil, matrixErrorf(opCramer, err)
	}
	o := gatherOptions(opts...)

	det, err := Determinant(a)
	if err != nil {
		return nil, matrixErrorf(opCramer, err)
	}
	if math.Abs(det) < o.singular {
		return nil, matrixErrorf(opCramer, fmt.Errorf("det(A) = %s: %w", FormatScalar(det), ErrSingular))
	}

	sol := &Solution{Status: StatusUnique}
	sol.Steps.info("det(A) = %s", FormatScalar(det))

	base, err := toDense(a, o.validateNaNInf)
	if err != nil {
		return nil, matrixErrorf(opCramer, err)
	}
	n := base.r
	x := make([]float64, n)
	var i, row int
	var detI float64
	for i = 0; i < n; i++ {
		ai := base.cloneDense()
		for row = 0; row < n; row++ {
			if err = ai.Set(row, i, b[row]); err != nil {
				return nil, matrixErrorf(opCramer, err)
			}
		}
		if detI, err = Determinant(ai); err != nil {
			return nil, matrixErrorf(opCramer, err)
		}
		x[i] = detI / det
		sol.Steps.info("det(A_%d) = %s -> x%d = %s", i+1, FormatScalar(detI), i+1, FormatScalar(x[i]))
	}
	sol.X = x

	return sol, nil
}

// inconsistentRow returns the first row reading 0 = c with |c| > eps, or -1.
func inconsistentRow(m *Dense, vars int, eps float64) int {
	var i, j int
	var zero bool
	for i = 0; i < m.r; i++ {
		zero = true
		for j = 0; j < vars; j++ {
			if math.Abs(m.at(i, j)) > eps {
				zero = false
				break
			}
		}
		if zero && math.Abs(m.at(i, vars)) > eps {
			return i
		}
	}

	return -1
}

// nullBasis builds one basis vector per free variable f of the reduced
// matrix m: v[f] = 1, other free variables 0, and each pivot variable
// -(coefficient of f in that pivot's row). Pivot k lives in row k.
func nullBasis(m *Dense, pivots, free []int, vars int) [][]float64 {
	basis := make([][]float64, 0, len(free))
	for _, f := range free {
		v := make([]float64, vars)
		v[f] = 1
		for k, pc := range pivots {
			if c := m.at(k, f); c != 0 {
				v[pc] = -c
			}
		}
		basis = append(basis, v)
	}

	return basis
}

// varNames renders 0-based variable indices as "x1, x3".
func varNames(idx []int) string {
	names := make([]string, len(idx))
	for i, j := range idx {
		names[i] = fmt.Sprintf("x%d", j+1)
	}

	return strings.Join(names, ", ")
}
