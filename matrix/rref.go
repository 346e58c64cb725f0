// SPDX-License-Identifier: MIT

// Package matrix - Gauss-Jordan reduction with narration.
//
// Purpose:
//   - Reduce A (or the augmented [A|b]) to reduced row echelon form with
//     partial pivoting, recording each swap, scale and elimination.
//   - Record pivot columns during the pass itself; downstream solvers never
//     re-derive them by scanning values.
//
// Determinism:
//   - Columns left→right, candidate rows top→bottom, ties to the lowest row.
//   - The caller's matrix and vector are copied; only the copy is reduced.
//
// Complexity:
//   - Time O(n·m·min(n,m)) arithmetic; each logged step also snapshots the
//     working matrix, O(n·m) per step.
package matrix

import (
	"fmt"
	"math"
)

const opRREF = "RREF"

// RREFResult is the outcome of one reduction.
//   - Reduced is the reduced matrix; when Augmented is true its last column
//     is the transformed right-hand side.
//   - Pivots holds pivot column indices in ascending order.
//   - Vars is the number of variable (non-augmented) columns.
type RREFResult struct {
	Reduced   *Dense
	Pivots    []int
	Steps     StepLog
	Augmented bool
	Vars      int
}

// Rank returns the number of pivot columns.
func (r *RREFResult) Rank() int { return len(r.Pivots) }

// FreeColumns returns the variable columns that carry no pivot, ascending.
func (r *RREFResult) FreeColumns() []int {
	free := make([]int, 0, r.Vars-len(r.Pivots))
	p := 0
	for j := 0; j < r.Vars; j++ {
		if p < len(r.Pivots) && r.Pivots[p] == j {
			p++
			continue
		}
		free = append(free, j)
	}

	return free
}

// RREF reduces a (optionally augmented with b) to reduced row echelon form.
// MAIN DESCRIPTION:
//   - Partial-pivoting Gauss-Jordan over the variable columns; the augmented
//     column (when b != nil) is carried along but never searched for pivots.
//
// Implementation:
//   - Stage 1: validate a (and len(b) == a.Rows()); build the private working copy.
//   - Stage 2: for each column c while r < rows:
//     pick the largest |value| in rows [r,n); if ≤ eps the column is free;
//     otherwise swap it into row r, divide row r by the pivot, and clear
//     column c in every other row. Record c; r++.
//   - Stage 3: snap every |value| < eps to 0 and log the result.
//
// Behavior highlights:
//   - No-op operations (pivot already 1, factor already 0) are not logged, so
//     reducing an already reduced matrix logs only the final result.
//   - Pivot and eliminated cells are written as exact 1 and 0.
//
// Inputs:
//   - a: n×m matrix (non-nil).
//   - b: optional right-hand side of length n, or nil.
//   - opts: WithEpsilon to change the zero threshold.
//
// Returns:
//   - *RREFResult with Reduced, Pivots, Steps.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(b) != n), ErrNaNInf (non-finite
//     input, or values that overflow during elimination).
//
// Complexity:
//   - Time O(n·m·min(n,m)) plus O(n·m) per logged step; Space O(n·m) per snapshot.
func RREF(a Matrix, b []float64, opts ...Option) (*RREFResult, error) {
	o := gatherOptions(opts...)

	work, err := buildWorking(a, b, o)
	if err != nil {
		return nil, matrixErrorf(opRREF, err)
	}

	res := &RREFResult{
		Reduced:   work,
		Augmented: b != nil,
		Vars:      a.Cols(),
	}
	if res.Pivots, err = reduce(work, res.Vars, o.eps, &res.Steps); err != nil {
		return nil, matrixErrorf(opRREF, err)
	}
	res.Steps.result(work)

	return res, nil
}

// Rank returns the numerical rank of a: the pivot count of RREF on a alone
// under the same eps policy.
func Rank(a Matrix, opts ...Option) (int, error) {
	res, err := RREF(a, nil, opts...)
	if err != nil {
		return 0, err
	}

	return res.Rank(), nil
}

// buildWorking copies a, appending b as an extra column when present.
func buildWorking(a Matrix, b []float64, o Options) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, err
	}
	if b == nil {
		return toDense(a, o.validateNaNInf)
	}
	if err := ValidateSystem(a, b); err != nil {
		return nil, err
	}

	src, err := toDense(a, o.validateNaNInf)
	if err != nil {
		return nil, err
	}
	rows, cols := src.Shape()
	aug, err := newDenseWithPolicy(rows, cols+1, o.validateNaNInf)
	if err != nil {
		return nil, err
	}
	var i int
	for i = 0; i < rows; i++ {
		copy(aug.data[i*(cols+1):i*(cols+1)+cols], src.data[i*cols:(i+1)*cols])
		if err = aug.Set(i, cols, b[i]); err != nil {
			return nil, fmt.Errorf("rhs[%d]: %w", i, err)
		}
	}

	return aug, nil
}

// reduce runs the Gauss-Jordan pass in place over columns [0, vars) and
// returns the pivot columns. Narration is appended to log.
// Under the NaN/Inf policy an overflowing pass fails with ErrNaNInf.
func reduce(m *Dense, vars int, eps float64, log *StepLog) ([]int, error) {
	rows := m.r
	pivots := make([]int, 0, min(rows, vars))

	var r, c, i, best int
	var bestAbs, v, pivot, factor float64
	for c = 0; c < vars && r < rows; c++ {
		// Partial pivoting: largest magnitude, lowest index on ties.
		best, bestAbs = r, math.Abs(m.at(r, c))
		for i = r + 1; i < rows; i++ {
			if v = math.Abs(m.at(i, c)); v > bestAbs {
				best, bestAbs = i, v
			}
		}
		if bestAbs <= eps {
			continue // free column; r stays
		}

		if best != r {
			before := m.cloneDense()
			m.swapRows(r, best)
			log.swap(m, before, r, best)
		}

		pivot = m.at(r, c)
		if pivot != 1 {
			m.scaleRow(r, 1/pivot)
			m.data[r*m.c+c] = 1
			log.scale(m, r, pivot)
		}

		for i = 0; i < rows; i++ {
			if i == r {
				continue
			}
			factor = m.at(i, c)
			if factor == 0 {
				continue
			}
			m.addScaledRow(i, r, -factor)
			m.data[i*m.c+c] = 0
			log.eliminate(m, i, r, factor)
		}

		pivots = append(pivots, c)
		r++
	}

	// Post-pass: numeric noise below eps becomes exact zero.
	err := m.Apply(func(_, _ int, x float64) float64 {
		if math.Abs(x) < eps {
			return 0
		}
		return x
	})
	if err != nil {
		return nil, err
	}

	return pivots, nil
}
