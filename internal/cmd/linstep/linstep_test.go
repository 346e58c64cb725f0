// SPDX-License-Identifier: MIT
package linstep

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	fs := flag.NewFlagSet("linstep", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return ParseConfig(fs, args)
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parse(t, "-op", "rref")
	require.NoError(t, err)
	require.Equal(t, OpRREF, cfg.Op)
	require.Equal(t, "-", cfg.MatrixPath)
	require.Equal(t, 1e-12, cfg.Eps)
	require.Equal(t, 1e-8, cfg.Tolerance)
	require.False(t, cfg.Quiet)
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("LINSTEP_EPS", "1e-9")
	t.Setenv("LINSTEP_TOLERANCE", "0.001")
	t.Setenv("LINSTEP_EXPORT_DIR", "/tmp/out")

	cfg, err := parse(t, "-op", "det")
	require.NoError(t, err)
	require.Equal(t, 1e-9, cfg.Eps)
	require.Equal(t, 0.001, cfg.Tolerance)
	require.Equal(t, "/tmp/out", cfg.ExportDir)

	cfg, err = parse(t, "-op", "det", "-eps", "1e-6")
	require.NoError(t, err)
	require.Equal(t, 1e-6, cfg.Eps)
}

func TestParseConfigRejectsBadEnv(t *testing.T) {
	t.Setenv("LINSTEP_EPS", "tiny")

	_, err := parse(t, "-op", "det")
	require.ErrorContains(t, err, "parse env")
}

func TestParseConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"missing op", nil, "-op is required"},
		{"unknown op", []string{"-op", "eigen"}, `unknown operation "eigen"`},
		{"negative eps", []string{"-op", "rref", "-eps", "-1"}, "eps must be finite"},
		{"nan tol", []string{"-op", "rref", "-tol", "NaN"}, "tol must be finite"},
		{"history without db", []string{"-list-history", "3"}, "-list-history and -clear-history require"},
		{"clear without db", []string{"-clear-history"}, "require -history"},
		{"a and b on stdin", []string{"-op", "solve", "-b", "-"}, "only one input can read stdin, got -a and -b"},
		{"a and m on stdin", []string{"-op", "mul", "-m", "-"}, "only one input can read stdin, got -a and -m"},
		{"infinite k", []string{"-op", "scale", "-a", "a.txt", "-k", "Inf"}, "k must be finite"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := parse(t, tc.args...)
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func TestRunRequiresOutput(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Config{Op: OpRank}, strings.NewReader("1"), nil)
	require.ErrorContains(t, err, "output is required")
}

func TestRunSolveUnique(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "2 1\n1 3\n")
	b := writeFile(t, dir, "b.txt", "3\n5\n")

	var out bytes.Buffer
	cfg := Config{Op: OpSolve, MatrixPath: a, VectorPath: b, Eps: 1e-12, Tolerance: 1e-8}
	require.NoError(t, Run(context.Background(), cfg, nil, &out))

	got := out.String()
	require.Contains(t, got, "R1 <- R1 / 2  => [1 0.5000 1.5000]")
	require.Contains(t, got, "Status: unique\nx1 = 0.8000\nx2 = 1.4000\n")
}

func TestRunSolveQuietInconsistent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "1 1\n1 1\n")
	b := writeFile(t, dir, "b.txt", "1 2")

	var out bytes.Buffer
	cfg := Config{Op: OpSolve, MatrixPath: a, VectorPath: b, Eps: 1e-12, Tolerance: 1e-8, Quiet: true}
	require.NoError(t, Run(context.Background(), cfg, nil, &out))
	require.Equal(t, "Status: inconsistent\nNo solution: the system is inconsistent.\n", out.String())
}

func TestRunSolveRequiresB(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg := Config{Op: OpCramer, MatrixPath: "-", Eps: 1e-12, Tolerance: 1e-8}
	err := Run(context.Background(), cfg, strings.NewReader("1 0\n0 1\n"), &out)
	require.ErrorContains(t, err, "cramer: -b is required")
}

func TestRunMatrixOpsFromStdin(t *testing.T) {
	t.Parallel()

	cases := []struct {
		op    string
		input string
		want  string
	}{
		{OpDeterminant, "4 0\n0 9\n", "det(A) = 36\n"},
		{OpInverse, "4 0\n0 9\n", "A^-1:\n0.2500 0\n0 0.1111\nA*A^-1 = I: true\n"},
		{OpRank, "1 2\n2 4\n", "rank(A) = 1\n"},
		{OpTranspose, "1 2 3\n", "A^T:\n1\n2\n3\n"},
		{OpHomogeneous, "1 0\n0 1\n", "Only the trivial solution x = 0.\n"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.op, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			cfg := Config{Op: tc.op, MatrixPath: "-", Eps: 1e-12, Tolerance: 1e-8, Quiet: true}
			require.NoError(t, Run(context.Background(), cfg, strings.NewReader(tc.input), &out))
			require.Equal(t, tc.want, out.String())
		})
	}
}

func TestRunRREFAndClassify(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg := Config{Op: OpRREF, MatrixPath: "-", Eps: 1e-12, Tolerance: 1e-8, Quiet: true}
	require.NoError(t, Run(context.Background(), cfg, strings.NewReader("1 1\n2 2\n"), &out))
	require.Equal(t, "RREF:\n1 1\n0 0\nPivot columns: x1\nRank: 1\n", out.String())

	out.Reset()
	cfg.Op = OpClassify
	require.NoError(t, Run(context.Background(), cfg, strings.NewReader("1 0\n0 1\n"), &out))
	require.Contains(t, out.String(), "det(A) = 1\nidentity: true\nsymmetric: true\n")
	require.Contains(t, out.String(), "singular: false\n")
}

func TestRunVector(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg := Config{Op: OpVector, VectorOp: "cross", U: "1 0 0", V: "0 1 0", Eps: 1e-12, Tolerance: 1e-8}
	require.NoError(t, Run(context.Background(), cfg, nil, &out))
	require.Equal(t, "cross(u, v) = [0 0 1]\n", out.String())

	out.Reset()
	cfg.VectorOp, cfg.U, cfg.V = "norm", "3 4", ""
	require.NoError(t, Run(context.Background(), cfg, nil, &out))
	require.Equal(t, "norm(u, v) = 5\n", out.String())

	cfg.VectorOp = "curl"
	require.ErrorContains(t, Run(context.Background(), cfg, nil, &out), "curl")
}

func TestRunExportAndHistory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	db := filepath.Join(dir, "history.db")
	cfg := Config{
		Op:         OpRREF,
		MatrixPath: "-",
		Export:     "steps.txt",
		ExportDir:  dir,
		HistoryDB:  db,
		Eps:        1e-12,
		Tolerance:  1e-8,
	}

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), cfg, strings.NewReader("0 1\n1 0\n"), &out))
	require.Contains(t, out.String(), "Swap R1 <-> R2")

	exported, err := os.ReadFile(filepath.Join(dir, "steps.txt"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(exported), "rref\n====\n\nSwap R1 <-> R2"))
	require.Contains(t, string(exported), "Rank: 2\n")

	out.Reset()
	list := Config{HistoryDB: db, ListHistory: 5}
	require.NoError(t, Run(context.Background(), list, nil, &out))
	require.Contains(t, out.String(), "#1 ")
	require.Contains(t, out.String(), " rref\nRREF:\n1 0\n0 1\n")
}

func TestParseConfigAllowsStdinForOneInput(t *testing.T) {
	cfg, err := parse(t, "-op", "solve", "-a", "a.txt", "-b", "-")
	require.NoError(t, err)
	require.Equal(t, "-", cfg.VectorPath)

	cfg, err = parse(t, "-op", "vector", "-vop", "norm", "-u", "3 4")
	require.NoError(t, err)
	require.Equal(t, OpVector, cfg.Op)
}

func TestRunRejectsTwoStdinInputs(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg := Config{Op: OpSolve, MatrixPath: "-", VectorPath: "-", Eps: 1e-12, Tolerance: 1e-8}
	err := Run(context.Background(), cfg, strings.NewReader("1 0\n0 1\n"), &out)
	require.ErrorContains(t, err, "only one input can read stdin")
	require.Empty(t, out.String())
}

func TestRunVectorFromStdinWithMatrixFile(t *testing.T) {
	t.Parallel()

	a := writeFile(t, t.TempDir(), "a.txt", "2 1\n1 3\n")
	var out bytes.Buffer
	cfg := Config{Op: OpCramer, MatrixPath: a, VectorPath: "-", Eps: 1e-12, Tolerance: 1e-8, Quiet: true}
	require.NoError(t, Run(context.Background(), cfg, strings.NewReader("3 5\n"), &out))
	require.Equal(t, "Status: unique\nx1 = 0.8000\nx2 = 1.4000\n", out.String())
}

func TestRunSection(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "set.txt", "[eye]\n1 0\n0 1\n\n[diag]\n4 0\n0 9\n")
	var out bytes.Buffer
	cfg := Config{Op: OpDeterminant, MatrixPath: path, Section: "diag", Eps: 1e-12, Tolerance: 1e-8}
	require.NoError(t, Run(context.Background(), cfg, nil, &out))
	require.Equal(t, "det(A) = 36\n", out.String())

	cfg.Section = "missing"
	err := Run(context.Background(), cfg, nil, &out)
	require.ErrorContains(t, err, `section "missing" not found`)
}

func TestRunMatrixArithmetic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "1 2\n3 4\n")
	b := writeFile(t, dir, "b.txt", "0 1\n1 0\n")
	cases := []struct {
		op   string
		want string
	}{
		{OpAdd, "A + B:\n1 3\n4 4\n"},
		{OpSub, "A - B:\n1 1\n2 4\n"},
		{OpMul, "A * B:\n2 1\n4 3\n"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.op, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			cfg := Config{Op: tc.op, MatrixPath: a, OtherPath: b, Eps: 1e-12, Tolerance: 1e-8}
			require.NoError(t, Run(context.Background(), cfg, nil, &out))
			require.Equal(t, tc.want, out.String())
		})
	}

	var out bytes.Buffer
	cfg := Config{Op: OpMul, MatrixPath: a, Eps: 1e-12, Tolerance: 1e-8}
	require.ErrorContains(t, Run(context.Background(), cfg, nil, &out), "mul: -m is required")

	cfg = Config{Op: OpScale, MatrixPath: a, Factor: 2, Eps: 1e-12, Tolerance: 1e-8}
	require.NoError(t, Run(context.Background(), cfg, nil, &out))
	require.Equal(t, "2 * A:\n2 4\n6 8\n", out.String())
}

func TestRunClassifyShowsSymmetricPart(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg := Config{Op: OpClassify, MatrixPath: "-", Eps: 1e-12, Tolerance: 1e-8}
	require.NoError(t, Run(context.Background(), cfg, strings.NewReader("1 2\n0 1\n"), &out))
	require.Contains(t, out.String(), "symmetric: false\n")
	require.Contains(t, out.String(), "symmetric part (A + A^T)/2:\n1 1\n1 1\n")
}

func TestRunSaveMatrices(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var out bytes.Buffer
	cfg := Config{Op: OpInverse, MatrixPath: "-", SaveMatrices: "saved.txt", ExportDir: dir, Eps: 1e-12, Tolerance: 1e-8}
	require.NoError(t, Run(context.Background(), cfg, strings.NewReader("4 0\n0 9\n"), &out))

	saved := filepath.Join(dir, "saved.txt")
	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	require.Equal(t, "[A]\n4.0000 0.0000\n0.0000 9.0000\n\n[A^-1]\n0.2500 0.0000\n0.0000 0.1111\n\n", string(data))

	out.Reset()
	reload := Config{Op: OpDeterminant, MatrixPath: saved, Section: "A", Eps: 1e-12, Tolerance: 1e-8}
	require.NoError(t, Run(context.Background(), reload, nil, &out))
	require.Equal(t, "det(A) = 36\n", out.String())
}

func TestRunClearHistory(t *testing.T) {
	t.Parallel()

	db := filepath.Join(t.TempDir(), "history.db")
	var out bytes.Buffer
	cfg := Config{Op: OpRank, MatrixPath: "-", HistoryDB: db, Eps: 1e-12, Tolerance: 1e-8}
	require.NoError(t, Run(context.Background(), cfg, strings.NewReader("1 2\n2 4\n"), &out))

	out.Reset()
	require.NoError(t, Run(context.Background(), Config{HistoryDB: db, ClearHistory: true, ListHistory: 5}, nil, &out))
	require.Equal(t, "History cleared.\n", out.String())

	out.Reset()
	require.NoError(t, Run(context.Background(), Config{HistoryDB: db, ListHistory: 5}, nil, &out))
	require.Empty(t, out.String())
}
