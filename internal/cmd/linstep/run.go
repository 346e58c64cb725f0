// SPDX-License-Identifier: MIT

package linstep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/linstep/internal/history"
	"github.com/katalvlaran/linstep/internal/textio"
	"github.com/katalvlaran/linstep/matrix"
)

// outcome is the rendered result of one operation.
type outcome struct {
	title  string
	input  string
	steps  matrix.StepLog
	result string

	// matrices are written by -save-matrices, operands first.
	matrices []textio.NamedMatrix
}

// Run executes the configured operation, reading "-" inputs from in and
// writing steps and results to out.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	var store *history.Store
	if strings.TrimSpace(cfg.HistoryDB) != "" {
		var err error
		if store, err = history.Open(cfg.HistoryDB); err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer store.Close()
	}

	if cfg.historyOnly() {
		if cfg.ClearHistory {
			if err := store.Clear(ctx); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(out, "History cleared."); err != nil {
				return err
			}
		}
		if cfg.ListHistory > 0 {
			return listHistory(ctx, store, cfg.ListHistory, out)
		}
		return nil
	}

	oc, err := dispatch(cfg, in)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Op, err)
	}

	if len(oc.steps) > 0 && !cfg.Quiet {
		if _, err := fmt.Fprintf(out, "%s\n\n", oc.steps.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(out, oc.result); err != nil {
		return err
	}

	if cfg.Export != "" {
		if err := exportSteps(cfg.outputPath(cfg.Export), oc); err != nil {
			return fmt.Errorf("export steps: %w", err)
		}
	}
	if cfg.SaveMatrices != "" {
		if err := saveMatrices(cfg.outputPath(cfg.SaveMatrices), oc.matrices); err != nil {
			return fmt.Errorf("save matrices: %w", err)
		}
	}

	if store != nil {
		if _, err := store.Add(ctx, history.Entry{Operation: oc.title, Input: oc.input, Result: oc.result}); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
	}
	return nil
}

func dispatch(cfg Config, in io.Reader) (outcome, error) {
	opts := []matrix.Option{matrix.WithEpsilon(cfg.Eps), matrix.WithTolerance(cfg.Tolerance)}

	if cfg.Op == OpVector {
		return runVector(cfg, opts)
	}

	a, aText, err := readMatrix("matrix A", cfg.MatrixPath, cfg.Section, in)
	if err != nil {
		return outcome{}, err
	}
	oc := outcome{title: cfg.Op, input: aText}
	oc.matrices = append(oc.matrices, textio.NamedMatrix{Name: "A", Matrix: a})

	var b []float64
	switch cfg.Op {
	case OpSolve, OpInverseSolve, OpCramer:
		if cfg.VectorPath == "" {
			return outcome{}, errors.New("-b is required")
		}
		var bText string
		if b, bText, err = readVector(cfg.VectorPath, in); err != nil {
			return outcome{}, err
		}
		oc.input += "\n|\n" + bText
	}

	var other *matrix.Dense
	if cfg.needsOther() {
		if cfg.OtherPath == "" {
			return outcome{}, errors.New("-m is required")
		}
		var mText string
		if other, mText, err = readMatrix("matrix B", cfg.OtherPath, "", in); err != nil {
			return outcome{}, err
		}
		oc.input += "\n;\n" + mText
		oc.matrices = append(oc.matrices, textio.NamedMatrix{Name: "B", Matrix: other})
	}

	switch cfg.Op {
	case OpSolve:
		sol, err := matrix.SolveLinearSystem(a, b, opts...)
		if err != nil {
			return outcome{}, err
		}
		oc.steps, oc.result = sol.Steps, renderSolution(sol)

	case OpInverseSolve, OpCramer:
		solve := matrix.SolveByInverse
		if cfg.Op == OpCramer {
			solve = matrix.SolveCramer
		}
		sol, err := solve(a, b, opts...)
		if err != nil {
			return outcome{}, err
		}
		oc.steps, oc.result = sol.Steps, renderSolution(sol)

	case OpHomogeneous:
		ns, err := matrix.SolveHomogeneous(a, opts...)
		if err != nil {
			return outcome{}, err
		}
		oc.steps, oc.result = ns.Steps, renderNullSpace(ns)

	case OpRREF:
		res, err := matrix.RREF(a, nil, opts...)
		if err != nil {
			return outcome{}, err
		}
		oc.steps = res.Steps
		oc.result = fmt.Sprintf("RREF:\n%s\nPivot columns: %s\nRank: %d",
			matrix.FormatMatrix(res.Reduced), columnNames(res.Pivots), res.Rank())
		oc.matrices = append(oc.matrices, textio.NamedMatrix{Name: "RREF", Matrix: res.Reduced})

	case OpDeterminant:
		det, err := matrix.Determinant(a)
		if err != nil {
			return outcome{}, err
		}
		oc.result = "det(A) = " + matrix.FormatScalar(det)

	case OpInverse:
		inv, err := matrix.Inverse(a, opts...)
		if err != nil {
			return outcome{}, err
		}
		ok, err := inverseChecks(a, inv, cfg.Tolerance)
		if err != nil {
			return outcome{}, err
		}
		oc.result = fmt.Sprintf("A^-1:\n%s\nA*A^-1 = I: %t", matrix.FormatMatrix(inv), ok)
		if err = oc.addResult("A^-1", inv); err != nil {
			return outcome{}, err
		}

	case OpRank:
		r, err := matrix.Rank(a, opts...)
		if err != nil {
			return outcome{}, err
		}
		oc.result = fmt.Sprintf("rank(A) = %d", r)

	case OpTranspose:
		at, err := matrix.Transpose(a)
		if err != nil {
			return outcome{}, err
		}
		oc.result = "A^T:\n" + matrix.FormatMatrix(at)
		if err = oc.addResult("A^T", at); err != nil {
			return outcome{}, err
		}

	case OpClassify:
		c, err := matrix.Classify(a, opts...)
		if err != nil {
			return outcome{}, err
		}
		oc.result = renderClassification(c)
		if !c.Symmetric {
			sym, err := matrix.Symmetrize(a)
			if err != nil {
				return outcome{}, err
			}
			oc.result += "\nsymmetric part (A + A^T)/2:\n" + matrix.FormatMatrix(sym)
		}

	case OpAdd, OpSub, OpMul, OpScale:
		var (
			res   matrix.Matrix
			label string
		)
		switch cfg.Op {
		case OpAdd:
			res, err = matrix.Add(a, other)
			label = "A + B"
		case OpSub:
			res, err = matrix.Sub(a, other)
			label = "A - B"
		case OpMul:
			res, err = matrix.Mul(a, other)
			label = "A * B"
		default:
			res, err = matrix.Scale(a, cfg.Factor)
			label = matrix.FormatScalar(cfg.Factor) + " * A"
		}
		if err != nil {
			return outcome{}, err
		}
		oc.result = label + ":\n" + matrix.FormatMatrix(res)
		if err = oc.addResult(label, res); err != nil {
			return outcome{}, err
		}

	default:
		return outcome{}, fmt.Errorf("unknown operation %q", cfg.Op)
	}

	return oc, nil
}

func runVector(cfg Config, opts []matrix.Option) (outcome, error) {
	u, err := textio.ParseVectorString(cfg.U)
	if err != nil {
		return outcome{}, fmt.Errorf("vector u: %w", err)
	}
	var v []float64
	if strings.TrimSpace(cfg.V) != "" {
		if v, err = textio.ParseVectorString(cfg.V); err != nil {
			return outcome{}, fmt.Errorf("vector v: %w", err)
		}
	}
	kind := matrix.VectorKind(cfg.VectorOp)
	res, err := matrix.VectorOp(kind, u, v, opts...)
	if err != nil {
		return outcome{}, err
	}

	return outcome{
		title:  "vector " + cfg.VectorOp,
		input:  fmt.Sprintf("u = %s\nv = %s", matrix.FormatVector(u), matrix.FormatVector(v)),
		result: fmt.Sprintf("%s(u, v) = %s", cfg.VectorOp, res),
	}, nil
}

// addResult records a result matrix for -save-matrices.
func (oc *outcome) addResult(name string, m matrix.Matrix) error {
	d, ok := m.(*matrix.Dense)
	if !ok {
		rows := make([][]float64, m.Rows())
		for i := range rows {
			rows[i] = make([]float64, m.Cols())
			for j := range rows[i] {
				v, err := m.At(i, j)
				if err != nil {
					return err
				}
				rows[i][j] = v
			}
		}
		var err error
		if d, err = matrix.NewDenseFromRows(rows); err != nil {
			return err
		}
	}
	oc.matrices = append(oc.matrices, textio.NamedMatrix{Name: name, Matrix: d})
	return nil
}

// inverseChecks reports whether A·A⁻¹ is the identity within tol.
func inverseChecks(a, inv matrix.Matrix, tol float64) (bool, error) {
	prod, err := matrix.Mul(a, inv)
	if err != nil {
		return false, err
	}
	id, err := matrix.IdentityLike(a)
	if err != nil {
		return false, err
	}
	return matrix.AllClose(prod, id, 0, tol)
}

func renderSolution(sol *matrix.Solution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Status: %s", sol.Status)
	switch sol.Status {
	case matrix.StatusUnique:
		for i, x := range sol.X {
			fmt.Fprintf(&b, "\nx%d = %s", i+1, matrix.FormatScalar(x))
		}
	case matrix.StatusInfinite:
		fmt.Fprintf(&b, "\nParticular: %s", matrix.FormatVector(sol.Particular))
		fmt.Fprintf(&b, "\nFree variables: %s", columnNames(sol.FreeVars))
		for i, v := range sol.Basis {
			fmt.Fprintf(&b, "\nt%d: %s", i+1, matrix.FormatVector(v))
		}
	case matrix.StatusInconsistent:
		b.WriteString("\nNo solution: the system is inconsistent.")
	}

	return b.String()
}

func renderNullSpace(ns *matrix.NullSpace) string {
	if ns.Trivial() {
		return "Only the trivial solution x = 0."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Free variables: %s", columnNames(ns.FreeVars))
	for i, v := range ns.Basis {
		fmt.Fprintf(&b, "\nt%d: %s", i+1, matrix.FormatVector(v))
	}

	return b.String()
}

func renderClassification(c matrix.Classification) string {
	flags := []struct {
		name string
		on   bool
	}{
		{"identity", c.Identity},
		{"symmetric", c.Symmetric},
		{"upper triangular", c.UpperTriangular},
		{"lower triangular", c.LowerTriangular},
		{"diagonal", c.Diagonal},
		{"singular", c.Singular},
	}
	var b strings.Builder
	fmt.Fprintf(&b, "det(A) = %s", matrix.FormatScalar(c.Determinant))
	for _, f := range flags {
		fmt.Fprintf(&b, "\n%s: %t", f.name, f.on)
	}

	return b.String()
}

// columnNames renders 0-based column indices as "x1, x3", or "none".
func columnNames(idx []int) string {
	if len(idx) == 0 {
		return "none"
	}
	names := make([]string, len(idx))
	for i, j := range idx {
		names[i] = fmt.Sprintf("x%d", j+1)
	}

	return strings.Join(names, ", ")
}

func listHistory(ctx context.Context, store *history.Store, n int, out io.Writer) error {
	if store == nil {
		return errors.New("history database is not configured")
	}
	entries, err := store.List(ctx, n)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(out, "#%d %s %s\n%s\n\n", e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"), e.Operation, e.Result); err != nil {
			return err
		}
	}
	return nil
}

func exportSteps(path string, oc outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := textio.WriteSteps(f, oc.title, oc.steps); err != nil {
		_ = f.Close()
		return err
	}
	if _, err := fmt.Fprintf(f, "\n%s\n", oc.result); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func saveMatrices(path string, ms []textio.NamedMatrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := textio.WriteNamedMatrices(f, ms); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// outputPath resolves a relative output file against ExportDir.
func (c Config) outputPath(path string) string {
	if c.ExportDir != "" && !filepath.IsAbs(path) {
		return filepath.Join(c.ExportDir, path)
	}
	return path
}

// readMatrix parses a matrix file, or one [name] section of it when section is set.
func readMatrix(label, path, section string, in io.Reader) (*matrix.Dense, string, error) {
	text, err := readSource(path, in)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", label, err)
	}
	if section == "" {
		m, err := textio.ParseMatrixString(text)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", label, err)
		}
		return m, strings.TrimSpace(text), nil
	}

	named, err := textio.ReadNamedMatrices(strings.NewReader(text))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", label, err)
	}
	for _, nm := range named {
		if nm.Name == section {
			return nm.Matrix, matrix.FormatMatrix(nm.Matrix), nil
		}
	}
	return nil, "", fmt.Errorf("%s: section %q not found in %s", label, section, path)
}

func readVector(path string, in io.Reader) ([]float64, string, error) {
	text, err := readSource(path, in)
	if err != nil {
		return nil, "", fmt.Errorf("vector b: %w", err)
	}
	v, err := textio.ParseVectorString(text)
	if err != nil {
		return nil, "", fmt.Errorf("vector b: %w", err)
	}
	return v, strings.TrimSpace(text), nil
}

func readSource(path string, in io.Reader) (string, error) {
	if path == "-" {
		if in == nil {
			return "", errors.New("stdin is not available")
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
