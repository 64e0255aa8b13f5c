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

import "sort"

// DivisionByZero is reported when a divisor is exactly zero.
const DivisionByZero = "division by zero"

// PossibleDivisionByZero is reported when a divisor may (but need not) be
// zero.
const PossibleDivisionByZero = "possible division by zero"

// AssertionFailed is reported when a post-condition does not hold on the
// inferred invariant.
const AssertionFailed = "assertion failed"

// Diagnostic is a user-facing finding about the program under analysis,
// attached to the node of the abstract syntax tree it originates from.
type Diagnostic struct {
	// Identifier of the originating node.
	Node uint
	// Message describing the finding.
	Message string
}

// Diagnostics accumulates findings across solver iterations.  Each node holds
// at most one finding, and every iteration overwrites (or clears) it, hence
// what remains at the fixed point is the authoritative verdict.
type Diagnostics struct {
	entries map[uint]string
}

// NewDiagnostics constructs an empty diagnostics sink.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{make(map[uint]string)}
}

// Record registers a finding for a given node, replacing any earlier finding
// for that node.
func (p *Diagnostics) Record(node uint, message string) {
	p.entries[node] = message
}

// Clear removes any finding for a given node, as happens when a later
// iteration no longer observes the problem.
func (p *Diagnostics) Clear(node uint) {
	delete(p.entries, node)
}

// Len returns the number of findings recorded.
func (p *Diagnostics) Len() uint {
	return uint(len(p.entries))
}

// Get returns the finding recorded for a given node (if any).
func (p *Diagnostics) Get(node uint) (string, bool) {
	message, ok := p.entries[node]
	return message, ok
}

// Entries returns all findings, ordered by node identifier to give a
// deterministic rendering.
func (p *Diagnostics) Entries() []Diagnostic {
	entries := make([]Diagnostic, 0, len(p.entries))
	//
	for node, message := range p.entries {
		entries = append(entries, Diagnostic{node, message})
	}
	//
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Node < entries[j].Node
	})
	//
	return entries
}
