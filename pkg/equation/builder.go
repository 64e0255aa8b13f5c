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
	"github.com/consensys/go-absint/pkg/util/math"
	log "github.com/sirupsen/logrus"
)

// Program is a compiled equation system: the list of actions in emission
// order, together with the number of control points.  Control point 0 is the
// entry, and the action at list position i writes control point i+1.
type Program struct {
	// Actions in emission order.
	Actions []Action
	// Number of control points.
	Size uint
}

// Build compiles an abstract syntax tree into an equation system.  Malformed
// trees (e.g. a conditional whose left-hand side is not a variable) violate
// analyzer invariants and panic.
func Build(root *ast.Node) Program {
	var b builder
	//
	b.compileStatement(root)
	//
	program := Program{b.actions, uint(len(b.actions)) + 1}
	//
	log.Debugf("compiled %d actions over %d control points", len(program.Actions), program.Size)
	//
	return program
}

// builder accumulates actions whilst walking the tree.  The next action
// appended always writes the control point one past the current length of
// the list; a straight-line statement reads the current length.
type builder struct {
	actions []Action
}

// current returns the control point holding the effect of the most recently
// emitted action.
func (p *builder) current() uint {
	return uint(len(p.actions))
}

func (p *builder) append(action Action) {
	p.actions = append(p.actions, action)
}

func (p *builder) compileStatement(node *ast.Node) {
	switch node.Kind {
	case ast.Sequence:
		for _, child := range node.Children {
			p.compileStatement(child)
		}
	case ast.Declaration:
		p.compileDeclaration(node)
	case ast.Assignment:
		p.compileAssignment(node)
	case ast.PreCondition:
		p.compilePreCondition(node)
	case ast.PostCondition:
		p.compilePostCondition(node)
	case ast.IfElse:
		p.compileIfElse(node)
	case ast.WhileLoop:
		p.compileWhileLoop(node)
	default:
		panic(fmt.Sprintf("unexpected statement node %s", node.Kind.String()))
	}
}

func (p *builder) compileDeclaration(node *ast.Node) {
	variable := node.Children[0]
	in := p.current()
	//
	p.append(NewDeclaration(variable.Name, in, in+1))
}

func (p *builder) compileAssignment(node *ast.Node) {
	variable := node.Children[0]
	value := p.compileExpression(node.Children[1])
	in := p.current()
	//
	p.append(NewAssignment(variable.Name, value, in, in+1))
}

// compilePreCondition turns a range pre-condition into a single assignment
// binding the variable to the constant range.
func (p *builder) compilePreCondition(node *ast.Node) {
	var (
		lower = node.Children[0]
		upper = node.Children[1]
	)
	// Pre-conditions have the fixed shape (>=, lo, x) / (<=, hi, x).
	if lower.CmpOp != ast.GTEQ || upper.CmpOp != ast.LTEQ {
		panic("malformed pre-condition")
	}
	//
	var (
		lo       = lower.Children[0].Number
		hi       = upper.Children[0].Number
		variable = lower.Children[1].Name
		value    = abstract.NewIntervalSet(math.NewInterval(math.NewInfInt(lo), math.NewInfInt(hi)))
	)
	//
	in := p.current()
	//
	p.append(NewRangeAssignment(variable, &Const{value}, in, in+1))
}

// compilePostCondition emits one assertion per comparison, each keyed on its
// own syntax node.
func (p *builder) compilePostCondition(node *ast.Node) {
	for _, condition := range node.Children {
		if condition.Kind != ast.LogicOp {
			panic("malformed post-condition")
		}
		//
		bexpr := &BoolExpr{
			condition.CmpOp,
			p.compileExpression(condition.Children[0]),
			p.compileExpression(condition.Children[1]),
		}
		//
		in := p.current()
		//
		p.append(NewAssertion(bexpr, condition.Id, in, in+1))
	}
}

func (p *builder) compileIfElse(node *ast.Node) {
	var (
		variable, op = p.splitCondition(node.Children[0])
		thenBlock    = node.Children[1]
		pre          = p.current()
	)
	// Filter for the taken branch
	p.append(NewFilter(op, variable, p.compileConditionRhs(node.Children[0]), pre, pre+1))
	//
	p.compileStatement(thenBlock)
	//
	thenEnd := p.current()
	//
	if len(node.Children) == 3 {
		// Filter for the untaken branch
		p.append(NewFilter(op.Negate(), variable, p.compileConditionRhs(node.Children[0]), pre, thenEnd+1))
		//
		p.compileStatement(node.Children[2])
		//
		elseEnd := p.current()
		// Merge the two branch tails
		p.append(NewJoin(elseEnd+1, []uint{thenEnd, elseEnd}))
	} else {
		// Without an else branch, the pre-state merges in directly.
		p.append(NewJoin(thenEnd+1, []uint{pre, thenEnd}))
	}
}

func (p *builder) compileWhileLoop(node *ast.Node) {
	var (
		variable, op = p.splitCondition(node.Children[0])
		body         = node.Children[1]
		pre          = p.current()
	)
	// Reserve the slot for the loop-head join, which can only be completed
	// once the body's last control point is known.
	p.append(nil)
	//
	head := pre + 1
	// Filter for entering the body
	p.append(NewFilter(op, variable, p.compileConditionRhs(node.Children[0]), head, head+1))
	//
	p.compileStatement(body)
	//
	bodyEnd := p.current()
	// Back-patch the loop-head join over the pre-state and the body tail.
	p.actions[pre] = NewJoin(head, []uint{pre, bodyEnd})
	// Filter for the exit edge
	p.append(NewFilter(op.Negate(), variable, p.compileConditionRhs(node.Children[0]), head, bodyEnd+1))
}

// splitCondition dissects a branch condition, which must compare a variable
// against a constant.
func (p *builder) splitCondition(condition *ast.Node) (string, ast.CmpOp) {
	if condition.Kind != ast.LogicOp {
		panic("malformed branch condition")
	}
	//
	left := condition.Children[0]
	right := condition.Children[1]
	//
	if left.Kind != ast.Variable {
		panic("branch condition left-hand side must be a variable")
	}
	//
	if right.Kind != ast.Integer {
		panic("branch condition right-hand side must be a constant")
	}
	//
	return left.Name, condition.CmpOp
}

// compileConditionRhs compiles the constant right-hand side of a branch
// condition.  Each filter gets its own copy, keeping expression ownership
// exclusive.
func (p *builder) compileConditionRhs(condition *ast.Node) Expr {
	return p.compileExpression(condition.Children[1])
}

func (p *builder) compileExpression(node *ast.Node) Expr {
	switch node.Kind {
	case ast.Integer:
		val := math.NewInfInt(node.Number)
		//
		return &Const{abstract.Point(val)}
	case ast.Variable:
		return &Var{node.Name}
	case ast.ArithmeticOp:
		return &BinExpr{
			node.ArithOp,
			p.compileExpression(node.Children[0]),
			p.compileExpression(node.Children[1]),
			node.Id,
		}
	default:
		panic(fmt.Sprintf("unexpected expression node %s", node.Kind.String()))
	}
}
