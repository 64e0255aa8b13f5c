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
package equation

import (
	"fmt"

	"github.com/consensys/go-absint/pkg/abstract"
	log "github.com/sirupsen/logrus"
)

// DEFAULT_WIDENING_DELAY is the number of iterations after which growing
// bounds are widened out to infinity.  Anything still growing afterwards is
// assumed unbounded; a loop bounded by a constant which was widened regains
// its exact bounds in the refining iterations which follow.
const DEFAULT_WIDENING_DELAY uint = 32

// DEFAULT_MAX_ITERATIONS bounds the iteration count outright.  Reaching it
// means widening failed to enforce convergence, which indicates a bug in the
// analyzer rather than in the program under analysis.
const DEFAULT_MAX_ITERATIONS uint = 10000

// Solver computes a fixed point of a compiled equation system by Kleene
// iteration: the whole action list is run against the invariant vector of
// the previous iteration, producing the next one (double buffering), until
// the vector stabilises.  Without widening this is the least fixed point;
// once widening has applied, the result over-approximates it.
type Solver struct {
	// WideningDelay determines the iteration after which widening kicks in.
	WideningDelay uint
	// MaxIterations is a hard bound on the number of iterations.
	MaxIterations uint
}

// NewSolver constructs a solver with default settings.
func NewSolver() Solver {
	return Solver{DEFAULT_WIDENING_DELAY, DEFAULT_MAX_ITERATIONS}
}

// Solve iterates the program until its fixed point, returning the final
// invariant vector.  Diagnostics accumulate in the given sink, with the
// verdict of the final iteration being authoritative for every node.
func (p *Solver) Solve(program Program, diags *Diagnostics) []abstract.Invariant {
	current := freshVector(program.Size)
	// Set once the widened iteration has stabilised, after which plain
	// iterations refine the over-approximation it produced.
	refining := false
	//
	for iteration := uint(1); ; iteration++ {
		if iteration > p.MaxIterations {
			panic(fmt.Sprintf("no fixed point within %d iterations", p.MaxIterations))
		}
		//
		next := freshVector(program.Size)
		//
		for _, action := range program.Actions {
			action.Execute(current, next, diags)
		}
		//
		if iteration > p.WideningDelay && !refining {
			widenVector(current, next)
		}
		//
		if equalVectors(current, next) {
			if refining || iteration <= p.WideningDelay {
				log.Debugf("fixed point reached after %d iterations", iteration)
				//
				return next
			}
			//
			refining = true
		}
		//
		current = next
	}
}

// freshVector allocates an all-empty invariant vector, with the entry
// control point marked initial.
func freshVector(size uint) []abstract.Invariant {
	vec := make([]abstract.Invariant, size)
	//
	for i := range vec {
		vec[i] = abstract.EmptyInvariant()
	}
	//
	vec[0] = abstract.InitialInvariant()
	//
	return vec
}

// widenVector joins every variable's value with its value in the previous
// iteration, and pushes every bound which grew out to the corresponding
// infinity.  Widened values therefore never shrink again whilst widening.
func widenVector(prev []abstract.Invariant, next []abstract.Invariant) {
	for i := range next {
		for _, name := range next[i].Variables() {
			val := next[i].GetOrBottom(name)
			prevVal := prev[i].GetOrBottom(name)
			//
			next[i].Bind(name, prevVal.Join(val).Widen(prevVal))
		}
	}
}

// equalVectors determines whether two invariant vectors are structurally
// equal, which is the fixed-point condition.
func equalVectors(prev []abstract.Invariant, next []abstract.Invariant) bool {
	for i := range prev {
		if !prev[i].Equals(next[i]) {
			return false
		}
	}
	//
	return true
}
