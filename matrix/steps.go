// SPDX-License-Identifier: MIT

// Package matrix - narration of elimination steps.
//
// Purpose:
//   - Record every elementary row operation performed by the engine, in order,
//     together with a snapshot of the working matrix after the operation.
//   - Render the log as human-readable lines for display or export.
//
// Ownership:
//   - A StepLog is produced once per engine call and handed to the caller;
//     snapshots are private copies and never alias the working buffer.
package matrix

import (
	"fmt"
	"strings"
)

// StepOp names the kind of narrated operation.
type StepOp int

// Narrated operation kinds.
const (
	StepSwap         StepOp = iota // Rr <-> Rs
	StepScale                      // Rr <- Rr / pivot
	StepEliminate                  // Rs <- Rs - f*Rr
	StepInconsistent               // offending row of an inconsistent system
	StepResult                     // final reduced matrix
	StepInfo                       // free-form narration (determinants, inverse products)
)

// String returns the short tag of the operation kind.
func (op StepOp) String() string {
	switch op {
	case StepSwap:
		return "swap"
	case StepScale:
		return "scale"
	case StepEliminate:
		return "eliminate"
	case StepInconsistent:
		return "inconsistent"
	case StepResult:
		return "result"
	case StepInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Step is one narrated operation.
//   - Row is the target row (0-based); Source is the other row for swaps and
//     eliminations, -1 otherwise.
//   - Factor is the pivot for StepScale and the multiplier for StepEliminate.
//   - Before is set for swaps only; Snapshot holds the state after the step.
type Step struct {
	Op       StepOp
	Row      int
	Source   int
	Factor   float64
	Text     string
	Before   *Dense
	Snapshot *Dense
}

// String renders the step text followed by its snapshot, if any.
func (s Step) String() string {
	if s.Snapshot == nil {
		return s.Text
	}

	return s.Text + "\n" + FormatMatrix(s.Snapshot)
}

// StepLog is the append-only, ordered narration of one engine call.
type StepLog []Step

// Lines renders every step as a display string, preserving order.
func (l StepLog) Lines() []string {
	out := make([]string, len(l))
	for i, s := range l {
		out[i] = s.String()
	}

	return out
}

// Count returns the number of steps of the given kind.
func (l StepLog) Count(op StepOp) int {
	n := 0
	for _, s := range l {
		if s.Op == op {
			n++
		}
	}

	return n
}

// String joins Lines with blank-line separators.
func (l StepLog) String() string {
	return strings.Join(l.Lines(), "\n\n")
}

// ---------- recorders (engine-internal) ----------

func (l *StepLog) swap(m *Dense, before *Dense, r, s int) {
	*l = append(*l, Step{
		Op:     StepSwap,
		Row:    r,
		Source: s,
		Text: fmt.Sprintf("Swap R%d <-> R%d\nbefore:\n%s\nafter:",
			r+1, s+1, FormatMatrix(before)),
		Before:   before,
		Snapshot: m.cloneDense(),
	})
}

func (l *StepLog) scale(m *Dense, r int, pivot float64) {
	*l = append(*l, Step{
		Op:       StepScale,
		Row:      r,
		Source:   -1,
		Factor:   pivot,
		Text:     fmt.Sprintf("R%d <- R%d / %s  => %s", r+1, r+1, FormatScalar(pivot), formatRow(m, r)),
		Snapshot: m.cloneDense(),
	})
}

func (l *StepLog) eliminate(m *Dense, target, pivotRow int, factor float64) {
	*l = append(*l, Step{
		Op:       StepEliminate,
		Row:      target,
		Source:   pivotRow,
		Factor:   factor,
		Text:     fmt.Sprintf("R%d <- R%d - (%s)*R%d", target+1, target+1, FormatScalar(factor), pivotRow+1),
		Snapshot: m.cloneDense(),
	})
}

func (l *StepLog) inconsistent(m *Dense, r int) {
	*l = append(*l, Step{
		Op:     StepInconsistent,
		Row:    r,
		Source: -1,
		Text: fmt.Sprintf("R%d reads 0 = %s: the system is inconsistent  %s",
			r+1, FormatScalar(m.at(r, m.c-1)), formatRow(m, r)),
	})
}

func (l *StepLog) result(m *Dense) {
	*l = append(*l, Step{
		Op:       StepResult,
		Row:      -1,
		Source:   -1,
		Text:     "Result:",
		Snapshot: m.cloneDense(),
	})
}

func (l *StepLog) info(format string, args ...any) {
	*l = append(*l, Step{
		Op:     StepInfo,
		Row:    -1,
		Source: -1,
		Text:   fmt.Sprintf(format, args...),
	})
}
