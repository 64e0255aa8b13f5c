// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"github.com/BurntSushi/toml"
	"github.com/consensys/go-absint/pkg/equation"
)

// Config captures the analyzer settings which can be given in a
// configuration file, for example:
//
//	[solver]
//	widening-delay = 16
//	max-iterations = 1000
type Config struct {
	Solver SolverConfig `toml:"solver"`
}

// SolverConfig captures the fixed-point solver settings.
type SolverConfig struct {
	// Number of iterations after which widening kicks in.
	WideningDelay uint `toml:"widening-delay"`
	// Hard bound on the number of iterations.
	MaxIterations uint `toml:"max-iterations"`
}

// defaultConfig returns the built-in settings.
func defaultConfig() Config {
	return Config{
		SolverConfig{
			equation.DEFAULT_WIDENING_DELAY,
			equation.DEFAULT_MAX_ITERATIONS,
		},
	}
}

// readConfigFile parses a given configuration file on top of the built-in
// settings.
func readConfigFile(filename string) (Config, error) {
	cfg := defaultConfig()
	//
	if _, err := toml.DecodeFile(filename, &cfg); err != nil {
		return cfg, err
	}
	//
	return cfg, nil
}
