// SPDX-License-Identifier: MIT

package matrix

import (
	"math"
	"strconv"
	"strings"
)

// Display policy for narrated output.
const (
	// FormatIntegerSnap is the distance to the nearest integer below which a
	// scalar is printed as that integer.
	FormatIntegerSnap = 1e-9

	// FormatDecimals is the number of fractional digits for non-integral scalars.
	FormatDecimals = 4
)

// FormatScalar renders x for display with numeric-noise suppression:
// within FormatIntegerSnap of an integer it prints the integer, otherwise
// FormatDecimals fractional digits. NaN and ±Inf render as "NaN", "+Inf", "-Inf".
func FormatScalar(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "+Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	}

	r := math.Round(x)
	if math.Abs(x-r) <= FormatIntegerSnap {
		if r == 0 {
			return "0" // no "-0"
		}

		return strconv.FormatFloat(r, 'f', 0, 64)
	}

	return strconv.FormatFloat(x, 'f', FormatDecimals, 64)
}

// FormatVector renders v as "[a b c]".
func FormatVector(v []float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(FormatScalar(x))
	}
	b.WriteByte(']')

	return b.String()
}

// FormatMatrix renders each row as space-joined FormatScalar entries, rows
// joined by '\n'. A nil matrix renders as the empty string.
// Complexity: O(r*c).
func FormatMatrix(m Matrix) string {
	if ValidateNotNil(m) != nil {
		return ""
	}
	var b strings.Builder
	rows, cols := m.Rows(), m.Cols()
	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j = 0; j < cols; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			v, _ = m.At(i, j) // indices are in range by construction
			b.WriteString(FormatScalar(v))
		}
	}

	return b.String()
}

// formatRow renders row i of a working matrix, used by step narration.
func formatRow(m *Dense, i int) string {
	return FormatVector(m.data[i*m.c : (i+1)*m.c])
}
