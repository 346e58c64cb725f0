// SPDX-License-Identifier: MIT

// Package config loads process configuration for the linstep commands.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target from LINSTEP_* variables named by its env struct
// tags, falling back to envDefault values.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
