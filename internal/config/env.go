// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment using the `env` and
// `envPrefix` tags on [StructuredConfig].
func parseEnv(cfg any) error {
	return parseEnvFrom(cfg, env.ToMap(os.Environ()))
}

// parseEnvFrom is parseEnv over an explicit variable set. Empty values are
// treated as unset so that a cleared variable does not zero a JSON value.
func parseEnvFrom(cfg any, environ map[string]string) error {
	vars := make(map[string]string, len(environ))
	for k, v := range environ {
		if v != "" {
			vars[k] = v
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}
