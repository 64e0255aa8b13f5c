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
	"github.com/consensys/go-absint/pkg/ast"
)

// Action is one node of the compiled equation system.  Executing an action
// reads invariants of the previous solver iteration and writes a single
// invariant of the next iteration.  Actions are created once by the equation
// builder and immutable thereafter.
type Action interface {
	// Out identifies the control point this action writes.
	Out() uint
	// Execute this action against the previous invariant vector, writing
	// into the next one.  User-facing findings go into the given sink.
	Execute(prev []abstract.Invariant, next []abstract.Invariant, diags *Diagnostics)
}

// command is the common part of every action reading exactly one control
// point.  A command is skipped whenever its input invariant holds no
// bindings and is not the entry invariant, which prevents propagating state
// into control points which reachability has not arrived at yet.
type command struct {
	in  uint
	out uint
}

// In identifies the control point this command reads.
func (p *command) In() uint {
	return p.in
}

// Out identifies the control point this command writes.
func (p *command) Out() uint {
	return p.out
}

// reaches checks whether the input invariant should be propagated at all.
func (p *command) reaches(prev []abstract.Invariant) bool {
	input := p.input(prev)
	//
	return input.IsInitial() || input.Len() > 0
}

// input returns the invariant this command reads, failing fast on a
// malformed control-point index.
func (p *command) input(prev []abstract.Invariant) *abstract.Invariant {
	if p.in >= uint(len(prev)) {
		panic(fmt.Sprintf("control point %d out of range", p.in))
	}
	//
	return &prev[p.in]
}

// checkOut fails fast on a malformed output control-point index.
func (p *command) checkOut(next []abstract.Invariant) {
	if p.out >= uint(len(next)) {
		panic(fmt.Sprintf("control point %d out of range", p.out))
	}
}

// Declaration introduces a fresh variable, bound to the unconstrained value.
type Declaration struct {
	command
	// Variable being declared.
	Variable string
}

// NewDeclaration constructs a declaration action.
func NewDeclaration(variable string, in uint, out uint) *Declaration {
	return &Declaration{command{in, out}, variable}
}

// Execute this declaration.
func (p *Declaration) Execute(prev []abstract.Invariant, next []abstract.Invariant, diags *Diagnostics) {
	p.checkOut(next)
	//
	if !p.reaches(prev) {
		return
	}
	//
	env := p.input(prev).Clone()
	//
	if env.Contains(p.Variable) {
		panic(fmt.Sprintf("variable %s declared twice", p.Variable))
	}
	//
	env.Bind(p.Variable, abstract.Top())
	next[p.out] = env
}

func (p *Declaration) String() string {
	return fmt.Sprintf("%d->%d: decl %s", p.in, p.out, p.Variable)
}

// Assignment binds the value of an expression to an already-declared
// variable.  The assignment synthesised from a range pre-condition is the
// one exception: it may introduce the variable it constrains.
type Assignment struct {
	command
	// Variable being assigned.
	Variable string
	// Value being assigned to it.
	Value Expr
	// Insert permits binding a variable which is not yet declared.
	Insert bool
}

// NewAssignment constructs an assignment action.
func NewAssignment(variable string, value Expr, in uint, out uint) *Assignment {
	return &Assignment{command{in, out}, variable, value, false}
}

// NewRangeAssignment constructs the assignment arising from a range
// pre-condition, which binds its variable whether declared or not.
func NewRangeAssignment(variable string, value Expr, in uint, out uint) *Assignment {
	return &Assignment{command{in, out}, variable, value, true}
}

// Execute this assignment.
func (p *Assignment) Execute(prev []abstract.Invariant, next []abstract.Invariant, diags *Diagnostics) {
	p.checkOut(next)
	//
	if !p.reaches(prev) {
		return
	}
	//
	input := p.input(prev)
	env := input.Clone()
	//
	if !p.Insert && !env.Contains(p.Variable) {
		panic(fmt.Sprintf("variable %s assigned before declaration", p.Variable))
	}
	//
	env.Bind(p.Variable, EvalExpr(p.Value, input, diags))
	next[p.out] = env
}

func (p *Assignment) String() string {
	return fmt.Sprintf("%d->%d: assign %s", p.in, p.out, p.Variable)
}

// Filter refines the value of a variable according to a comparison taken on
// a branch.  The right-hand side must evaluate to a single constant.
type Filter struct {
	command
	// Comparison applied to the variable.
	Op ast.CmpOp
	// Variable being refined.
	Variable string
	// Right-hand side of the comparison.
	Value Expr
}

// NewFilter constructs a filter action.
func NewFilter(op ast.CmpOp, variable string, value Expr, in uint, out uint) *Filter {
	return &Filter{command{in, out}, op, variable, value}
}

// Execute this filter.
func (p *Filter) Execute(prev []abstract.Invariant, next []abstract.Invariant, diags *Diagnostics) {
	p.checkOut(next)
	//
	if !p.reaches(prev) {
		return
	}
	//
	input := p.input(prev)
	env := input.Clone()
	//
	left, ok := env.Get(p.Variable)
	//
	if !ok {
		panic(fmt.Sprintf("variable %s filtered before declaration", p.Variable))
	}
	//
	right := EvalExpr(p.Value, input, diags)
	//
	if !right.IsPoint() {
		panic("filter requires a constant right-hand side")
	}
	//
	env.Bind(p.Variable, applyFilter(p.Op, left, right))
	next[p.out] = env
}

func (p *Filter) String() string {
	return fmt.Sprintf("%d->%d: filter %s %s", p.in, p.out, p.Variable, p.Op.String())
}

// applyFilter refines a value by a comparison against a reference value.
func applyFilter(op ast.CmpOp, left abstract.IntervalSet, right abstract.IntervalSet) abstract.IntervalSet {
	switch op {
	case ast.LT:
		return left.FilterLt(right)
	case ast.LTEQ:
		return left.FilterLtEq(right)
	case ast.GT:
		return left.FilterGt(right)
	case ast.GTEQ:
		return left.FilterGtEq(right)
	case ast.EQ:
		return left.FilterEq(right)
	case ast.NEQ:
		return left.FilterNeq(right)
	default:
		panic(fmt.Sprintf("unknown comparison operator %d", op))
	}
}

// Assertion checks a post-condition against the inferred invariant,
// recording a finding when it cannot be shown to hold.
type Assertion struct {
	command
	// Condition being asserted.
	Condition *BoolExpr
	// Identifier of the originating syntax node.
	Node uint
}

// NewAssertion constructs an assertion action.
func NewAssertion(condition *BoolExpr, node uint, in uint, out uint) *Assertion {
	return &Assertion{command{in, out}, condition, node}
}

// Execute this assertion.
func (p *Assertion) Execute(prev []abstract.Invariant, next []abstract.Invariant, diags *Diagnostics) {
	p.checkOut(next)
	//
	if !p.reaches(prev) {
		return
	}
	//
	input := p.input(prev)
	//
	if p.Condition.Eval(input, diags) {
		diags.Clear(p.Node)
	} else {
		diags.Record(p.Node, AssertionFailed)
	}
	//
	next[p.out] = input.Clone()
}

func (p *Assertion) String() string {
	return fmt.Sprintf("%d->%d: assert", p.in, p.out)
}

// Join merges the invariants of several control points into one, as happens
// where branches rejoin and at loop heads.  Unlike commands, a join always
// executes.
type Join struct {
	out uint
	ins []uint
}

// NewJoin constructs a join action.
func NewJoin(out uint, ins []uint) *Join {
	if len(ins) == 0 {
		panic("join requires at least one input")
	}
	//
	return &Join{out, ins}
}

// Ins identifies the control points this join reads.
func (p *Join) Ins() []uint {
	return p.ins
}

// Out identifies the control point this join writes.
func (p *Join) Out() uint {
	return p.out
}

// Execute this join.
func (p *Join) Execute(prev []abstract.Invariant, next []abstract.Invariant, diags *Diagnostics) {
	if p.out >= uint(len(next)) {
		panic(fmt.Sprintf("control point %d out of range", p.out))
	}
	//
	for _, in := range p.ins {
		if in >= uint(len(prev)) {
			panic(fmt.Sprintf("control point %d out of range", in))
		}
	}
	//
	env := prev[p.ins[0]].Clone()
	//
	for _, in := range p.ins[1:] {
		env = env.Join(prev[in])
	}
	//
	next[p.out] = env
}

func (p *Join) String() string {
	return fmt.Sprintf("%v->%d: join", p.ins, p.out)
}
