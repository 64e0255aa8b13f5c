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

// Expr is a compiled expression, evaluated against the invariant of a
// control point to produce an abstract value.  Expressions form owning
// trees: each is built once by the equation builder and consumed by exactly
// one action.  The variants are Const, Var and BinExpr, with evaluation
// dispatching totally over them.
type Expr interface {
	isExpr()
}

// Const is an expression evaluating to a fixed range, independently of the
// environment.
type Const struct {
	Value abstract.IntervalSet
}

// Var is an expression evaluating to the current value of a variable.
type Var struct {
	Name string
}

// BinExpr is a binary arithmetic operation over two subexpressions.  It
// retains the identifier of the originating syntax node, on which any
// division diagnostics are keyed.
type BinExpr struct {
	Op    ast.ArithOp
	Left  Expr
	Right Expr
	Node  uint
}

func (p *Const) isExpr()   {}
func (p *Var) isExpr()     {}
func (p *BinExpr) isExpr() {}

// EvalExpr evaluates a compiled expression in a given environment, recording
// any division diagnostics into the given sink.  Reading a variable which is
// not declared in the environment violates an analyzer invariant and panics.
func EvalExpr(expr Expr, env *abstract.Invariant, diags *Diagnostics) abstract.IntervalSet {
	switch e := expr.(type) {
	case *Const:
		return e.Value
	case *Var:
		val, ok := env.Get(e.Name)
		//
		if !ok {
			panic(fmt.Sprintf("variable %s read before declaration", e.Name))
		}
		//
		return val
	case *BinExpr:
		lhs := EvalExpr(e.Left, env, diags)
		rhs := EvalExpr(e.Right, env, diags)
		//
		switch e.Op {
		case ast.ADD:
			return lhs.Add(rhs)
		case ast.SUB:
			return lhs.Sub(rhs)
		case ast.MUL:
			return lhs.Mul(rhs)
		case ast.DIV:
			return evalDivision(lhs, rhs, e.Node, diags)
		default:
			panic(fmt.Sprintf("unknown arithmetic operator %d", e.Op))
		}
	default:
		panic("unknown expression variant")
	}
}

// evalDivision applies the division operator, recording (or clearing) the
// diagnostic for the originating node.  The verdict of the final solver
// iteration is the one which sticks.
func evalDivision(lhs abstract.IntervalSet, rhs abstract.IntervalSet, node uint, diags *Diagnostics) abstract.IntervalSet {
	switch {
	case rhs.Equals(abstract.NewIntervalSet64(0, 0)):
		diags.Record(node, DivisionByZero)
	case rhs.ContainsZero():
		diags.Record(node, PossibleDivisionByZero)
	default:
		diags.Clear(node)
	}
	//
	return lhs.Div(rhs)
}

// BoolExpr is a compiled comparison between two expressions, evaluated to a
// boolean verdict via the abstract-domain comparisons.
type BoolExpr struct {
	Op    ast.CmpOp
	Left  Expr
	Right Expr
}

// Eval determines whether this comparison holds in a given environment.
func (p *BoolExpr) Eval(env *abstract.Invariant, diags *Diagnostics) bool {
	lhs := EvalExpr(p.Left, env, diags)
	rhs := EvalExpr(p.Right, env, diags)
	//
	switch p.Op {
	case ast.LT:
		return lhs.Lt(rhs)
	case ast.LTEQ:
		return lhs.LtEq(rhs)
	case ast.GT:
		return lhs.Gt(rhs)
	case ast.GTEQ:
		return lhs.GtEq(rhs)
	case ast.EQ:
		return lhs.Equals(rhs)
	case ast.NEQ:
		return !lhs.Equals(rhs)
	default:
		panic(fmt.Sprintf("unknown comparison operator %d", p.Op))
	}
}
