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
package abstract

import (
	"sort"
	"strings"
)

// Invariant is the abstract environment at a single control point: a partial
// map from variable name to its abstract value.  A name absent from the map
// is not declared at that control point, whilst a name bound to the empty set
// marks the control point unreachable.  The initial flag distinguishes the
// entry control point, whose (empty) environment must nevertheless be
// propagated by the solver.
type Invariant struct {
	bindings map[string]IntervalSet
	initial  bool
}

// EmptyInvariant constructs an invariant with no bindings.
func EmptyInvariant() Invariant {
	return Invariant{make(map[string]IntervalSet), false}
}

// InitialInvariant constructs the (empty) invariant of the entry control
// point.
func InitialInvariant() Invariant {
	return Invariant{make(map[string]IntervalSet), true}
}

// IsInitial determines whether this is the entry control point's invariant.
func (p *Invariant) IsInitial() bool {
	return p.initial
}

// Len returns the number of variables bound by this invariant.
func (p *Invariant) Len() uint {
	return uint(len(p.bindings))
}

// Contains checks whether a given variable is declared in this invariant.
func (p *Invariant) Contains(variable string) bool {
	_, ok := p.bindings[variable]
	return ok
}

// Get returns the abstract value of a given variable, along with a flag
// indicating whether the variable is declared at all.
func (p *Invariant) Get(variable string) (IntervalSet, bool) {
	val, ok := p.bindings[variable]
	return val, ok
}

// GetOrBottom returns the abstract value of a given variable, defaulting to
// the empty set when the variable is not declared.
func (p *Invariant) GetOrBottom(variable string) IntervalSet {
	if val, ok := p.bindings[variable]; ok {
		return val
	}
	//
	return Empty()
}

// Bind assigns the abstract value of a given variable.
func (p *Invariant) Bind(variable string, val IntervalSet) {
	p.bindings[variable] = val
}

// Clone returns a copy of this invariant which shares no state with the
// original.  Observe that the initial flag is deliberately not copied: only
// the entry control point is ever initial.
func (p *Invariant) Clone() Invariant {
	q := EmptyInvariant()
	//
	for name, val := range p.bindings {
		q.bindings[name] = val
	}
	//
	return q
}

// Join returns the variable-wise join of two invariants.  Every variable of
// either operand is bound in the result; a variable missing on one side
// contributes the empty set.
func (p *Invariant) Join(other Invariant) Invariant {
	q := EmptyInvariant()
	//
	for name, val := range p.bindings {
		q.bindings[name] = val.Join(other.GetOrBottom(name))
	}
	//
	for name, val := range other.bindings {
		if !p.Contains(name) {
			q.bindings[name] = val
		}
	}
	//
	return q
}

// Equals determines whether two invariants are structurally equal, including
// their initial flags.
func (p *Invariant) Equals(other Invariant) bool {
	if p.initial != other.initial || len(p.bindings) != len(other.bindings) {
		return false
	}
	//
	for name, val := range p.bindings {
		otherVal, ok := other.bindings[name]
		//
		if !ok || !val.Equals(otherVal) {
			return false
		}
	}
	//
	return true
}

// Variables returns the names of all declared variables, sorted to give a
// deterministic order.
func (p *Invariant) Variables() []string {
	names := make([]string, 0, len(p.bindings))
	//
	for name := range p.bindings {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	return names
}

func (p *Invariant) String() string {
	var builder strings.Builder
	//
	for i, name := range p.Variables() {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(name)
		builder.WriteString(" -> ")
		builder.WriteString(p.bindings[name].String())
	}
	//
	return builder.String()
}
