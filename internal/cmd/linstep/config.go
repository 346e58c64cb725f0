// SPDX-License-Identifier: MIT

// Package linstep parses linstep command flags and runs one engine operation.
package linstep

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/katalvlaran/linstep/internal/config"
)

// Operation names accepted by -op.
const (
	OpSolve        = "solve"
	OpHomogeneous  = "homogeneous"
	OpRREF         = "rref"
	OpDeterminant  = "det"
	OpInverse      = "inverse"
	OpRank         = "rank"
	OpTranspose    = "transpose"
	OpClassify     = "classify"
	OpInverseSolve = "inverse-solve"
	OpCramer       = "cramer"
	OpVector       = "vector"
	OpAdd          = "add"
	OpSub          = "sub"
	OpMul          = "mul"
	OpScale        = "scale"
)

// Operations lists every -op value in help order.
var Operations = []string{
	OpSolve, OpHomogeneous, OpRREF, OpDeterminant, OpInverse, OpRank,
	OpTranspose, OpClassify, OpInverseSolve, OpCramer, OpVector,
	OpAdd, OpSub, OpMul, OpScale,
}

// Config holds linstep command configuration.
type Config struct {
	Op           string
	MatrixPath   string
	Section      string
	OtherPath    string
	VectorPath   string
	VectorOp     string
	U            string
	V            string
	Factor       float64
	Export       string
	SaveMatrices string
	ListHistory  int
	ClearHistory bool
	Quiet        bool

	Eps       float64 `env:"LINSTEP_EPS" envDefault:"1e-12"`
	Tolerance float64 `env:"LINSTEP_TOLERANCE" envDefault:"1e-8"`
	HistoryDB string  `env:"LINSTEP_HISTORY_DB"`
	ExportDir string  `env:"LINSTEP_EXPORT_DIR"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Op, "op", "", "operation: "+strings.Join(Operations, "|"))
	fs.StringVar(&cfg.MatrixPath, "a", "-", "matrix A file, one row per line (- for stdin)")
	fs.StringVar(&cfg.Section, "section", "", "read A from this [name] section of the -a file")
	fs.StringVar(&cfg.OtherPath, "m", "", "matrix B file for add|sub|mul (- for stdin)")
	fs.StringVar(&cfg.VectorPath, "b", "", "right-hand side b file (- for stdin)")
	fs.StringVar(&cfg.VectorOp, "vop", "", "vector operation for -op vector")
	fs.StringVar(&cfg.U, "u", "", "vector u, space separated")
	fs.StringVar(&cfg.V, "v", "", "vector v, space separated")
	fs.Float64Var(&cfg.Factor, "k", 1, "scalar factor for -op scale")
	fs.Float64Var(&cfg.Eps, "eps", cfg.Eps, "elimination zero threshold")
	fs.Float64Var(&cfg.Tolerance, "tol", cfg.Tolerance, "classification and zero-vector tolerance")
	fs.StringVar(&cfg.Export, "export", "", "write the step log to this TXT file")
	fs.StringVar(&cfg.SaveMatrices, "save-matrices", "", "write A and the result matrix as [name] sections to this file")
	fs.StringVar(&cfg.HistoryDB, "history", cfg.HistoryDB, "SQLite history database path")
	fs.IntVar(&cfg.ListHistory, "list-history", 0, "print the N most recent history entries and exit")
	fs.BoolVar(&cfg.ClearHistory, "clear-history", false, "delete every history entry and exit")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "print only the result, not the steps")
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if !finiteNonNegative(c.Eps) {
		return fmt.Errorf("eps must be finite and non-negative, got %v", c.Eps)
	}
	if !finiteNonNegative(c.Tolerance) {
		return fmt.Errorf("tol must be finite and non-negative, got %v", c.Tolerance)
	}
	if c.historyOnly() {
		if strings.TrimSpace(c.HistoryDB) == "" {
			return errors.New("-list-history and -clear-history require -history or LINSTEP_HISTORY_DB")
		}
		return nil
	}
	if c.Op == "" {
		return errors.New("-op is required")
	}
	if !slices.Contains(Operations, c.Op) {
		return fmt.Errorf("unknown operation %q", c.Op)
	}
	if c.Op == OpScale && (math.IsNaN(c.Factor) || math.IsInf(c.Factor, 0)) {
		return fmt.Errorf("k must be finite, got %v", c.Factor)
	}

	var stdin []string
	if c.Op != OpVector && c.MatrixPath == "-" {
		stdin = append(stdin, "-a")
	}
	if c.needsVector() && c.VectorPath == "-" {
		stdin = append(stdin, "-b")
	}
	if c.needsOther() && c.OtherPath == "-" {
		stdin = append(stdin, "-m")
	}
	if len(stdin) > 1 {
		return fmt.Errorf("only one input can read stdin, got %s", strings.Join(stdin, " and "))
	}
	return nil
}

func (c Config) historyOnly() bool { return c.ListHistory > 0 || c.ClearHistory }

func (c Config) needsVector() bool {
	return c.Op == OpSolve || c.Op == OpInverseSolve || c.Op == OpCramer
}

func (c Config) needsOther() bool {
	return c.Op == OpAdd || c.Op == OpSub || c.Op == OpMul
}

func finiteNonNegative(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && x >= 0
}
