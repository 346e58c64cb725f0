// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"os"
)

// Exitf reports a startup failure of the linstep command, such as a bad
// LINSTEP_* value or an invalid flag combination, on stderr and exits with
// status 1. Messages carry a "linstep: " prefix.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "linstep: "+format+"\n", args...)
	os.Exit(1)
}
