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
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-absint/pkg/abstract"
	"github.com/consensys/go-absint/pkg/equation"
	"github.com/consensys/go-absint/pkg/syntax"
	"github.com/consensys/go-absint/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] source_file",
	Short: "Infer invariants for a given program and report unsafe operations.",
	Long: `Infer an interval invariant at every control point of a given program,
	and report divisions which can fail along with post-conditions which
	cannot be shown to hold.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		cfg := getConfig(cmd)
		// Read source file
		srcfile, err := source.ReadFile(args[0])
		if err != nil {
			fmt.Printf("[ERROR] cannot open the source file `%s`.\n", args[0])
			os.Exit(1)
		}
		// Parse into the syntax tree
		root, errs := syntax.Parse(srcfile)
		if len(errs) != 0 {
			for i := range errs {
				printSyntaxError(&errs[i])
			}
			//
			os.Exit(2)
		}
		//
		log.Debugf("parsed syntax tree:\n%s", root.String())
		// Compile into the equation system
		program := equation.Build(root)
		// Solve it
		solver := equation.Solver{
			WideningDelay: cfg.Solver.WideningDelay,
			MaxIterations: cfg.Solver.MaxIterations,
		}
		//
		diags := equation.NewDiagnostics()
		invariants := solver.Solve(program, diags)
		// Report
		printInvariants(invariants)
		printDiagnostics(diags)
	},
}

// getConfig determines the solver settings, with explicit flags taking
// precedence over the configuration file.
func getConfig(cmd *cobra.Command) Config {
	var (
		cfg = defaultConfig()
		err error
	)
	//
	if filename := getString(cmd, "config"); filename != "" {
		if cfg, err = readConfigFile(filename); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
	//
	if cmd.Flags().Changed("widening-delay") {
		cfg.Solver.WideningDelay = getUint(cmd, "widening-delay")
	}
	//
	if cmd.Flags().Changed("max-iterations") {
		cfg.Solver.MaxIterations = getUint(cmd, "max-iterations")
	}
	//
	return cfg
}

// printInvariants prints the environment at every control point.
func printInvariants(invariants []abstract.Invariant) {
	for i := range invariants {
		fmt.Printf("Control point %d\n", i)
		//
		for _, name := range invariants[i].Variables() {
			val, _ := invariants[i].Get(name)
			fmt.Printf("%s -> %s\n", name, val.String())
		}
		//
		fmt.Println()
	}
}

// printDiagnostics prints the warnings accumulated during solving.
func printDiagnostics(diags *equation.Diagnostics) {
	coloured := term.IsTerminal(int(os.Stdout.Fd()))
	//
	fmt.Println("--------- WARNINGS/ERRORS RECAP ---------")
	//
	for _, entry := range diags.Entries() {
		line := fmt.Sprintf("AST node id: %d: %s", entry.Node, entry.Message)
		//
		if coloured {
			line = colourise(entry.Message, line)
		}
		//
		fmt.Println(line)
	}
	//
	fmt.Println("-----------------------------------------")
}

// colourise wraps a diagnostic line in an ANSI colour matching its severity,
// for terminal output only.
func colourise(message string, line string) string {
	const (
		red    = "\033[31m"
		yellow = "\033[33m"
		reset  = "\033[0m"
	)
	//
	if strings.HasPrefix(message, "possible") {
		return yellow + line + reset
	}
	//
	return red + line + reset
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().String("config", "", "read solver settings from a toml file")
	analyzeCmd.Flags().Uint("widening-delay", equation.DEFAULT_WIDENING_DELAY,
		"iterations before widening kicks in")
	analyzeCmd.Flags().Uint("max-iterations", equation.DEFAULT_MAX_ITERATIONS,
		"hard bound on solver iterations")
}
