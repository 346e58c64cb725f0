// SPDX-License-Identifier: MIT

// Package textio reads matrices and vectors from whitespace-separated text
// and writes matrices and step logs back out as plain text.
//
// Matrix text is one row per non-blank line, entries separated by spaces or
// tabs. Vector text is every number in reading order, across lines. Named
// matrix files hold sections that start with a "[name]" line.
package textio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/linstep/matrix"
)

// ErrEmptyInput is returned when the text holds no numbers at all.
var ErrEmptyInput = errors.New("textio: empty input")

// ParseMatrix reads a matrix, one row per non-blank line.
// Ragged rows fail with an error matching matrix.ErrBadShape.
func ParseMatrix(r io.Reader) (*matrix.Dense, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	return buildMatrix(rows)
}

// ParseMatrixString is ParseMatrix over a string.
func ParseMatrixString(s string) (*matrix.Dense, error) {
	return ParseMatrix(strings.NewReader(s))
}

// ParseVector reads every number in the text, across lines, in order.
func ParseVector(r io.Reader) ([]float64, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	var out []float64
	for _, row := range rows {
		out = append(out, row...)
	}
	if len(out) == 0 {
		return nil, ErrEmptyInput
	}

	return out, nil
}

// ParseVectorString is ParseVector over a string.
func ParseVectorString(s string) ([]float64, error) {
	return ParseVector(strings.NewReader(s))
}

// NamedMatrix is one "[name]" section of a matrix file.
type NamedMatrix struct {
	Name   string
	Matrix *matrix.Dense
}

// ReadNamedMatrices parses a file of "[name]" sections, each followed by
// matrix rows. Sections keep file order. Rows before the first header are an error.
func ReadNamedMatrices(r io.Reader) ([]NamedMatrix, error) {
	var (
		out     []NamedMatrix
		name    string
		rows    [][]float64
		started bool
	)
	flush := func() error {
		if !started {
			return nil
		}
		if len(rows) == 0 {
			return fmt.Errorf("section %q: %w", name, ErrEmptyInput)
		}
		m, err := buildMatrix(rows)
		if err != nil {
			return fmt.Errorf("section %q: %w", name, err)
		}
		out = append(out, NamedMatrix{Name: name, Matrix: m})
		return nil
	}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if err := flush(); err != nil {
				return nil, err
			}
			name, rows, started = strings.Trim(line, "[]"), nil, true
			continue
		}
		if !started {
			return nil, fmt.Errorf("line %d: data before first [name] header", lineNo)
		}
		row, err := parseFields(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read matrices: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return out, nil
}

// WriteNamedMatrices writes each matrix as a "[name]" section with entries
// printed to 4 decimals, separated by blank lines. ReadNamedMatrices reads it back.
func WriteNamedMatrices(w io.Writer, ms []NamedMatrix) error {
	bw := bufio.NewWriter(w)
	for _, nm := range ms {
		fmt.Fprintf(bw, "[%s]\n", nm.Name)
		for _, row := range nm.Matrix.ToRows() {
			for j, v := range row {
				if j > 0 {
					bw.WriteByte(' ')
				}
				if v == 0 {
					v = 0 // drop the sign of -0
				}
				bw.WriteString(strconv.FormatFloat(v, 'f', 4, 64))
			}
			bw.WriteByte('\n')
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// WriteSteps writes a titled step log as plain text, one blank line between steps.
func WriteSteps(w io.Writer, title string, steps matrix.StepLog) error {
	bw := bufio.NewWriter(w)
	if title != "" {
		fmt.Fprintf(bw, "%s\n%s\n\n", title, strings.Repeat("=", len(title)))
	}
	for i, line := range steps.Lines() {
		if i > 0 {
			bw.WriteString("\n\n")
		}
		bw.WriteString(line)
	}
	bw.WriteByte('\n')

	return bw.Flush()
}

func readRows(r io.Reader) ([][]float64, error) {
	var rows [][]float64
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		row, err := parseFields(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return rows, nil
}

func parseFields(line string) ([]float64, error) {
	fields := strings.Fields(line)
	row := make([]float64, len(fields))
	for j, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", f, err)
		}
		row[j] = v
	}

	return row, nil
}

func buildMatrix(rows [][]float64) (*matrix.Dense, error) {
	m, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("parse matrix: %w", err)
	}

	return m, nil
}
