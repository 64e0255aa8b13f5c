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
package ast

import (
	"fmt"
	"math/big"
	"strings"
)

// Kind identifies the different kinds of node which can arise within an
// abstract syntax tree.
type Kind uint

// Variable is a read of a named variable.
const Variable Kind = 0

// Integer is a (signed) numeric literal.
const Integer Kind = 1

// ArithmeticOp is a binary arithmetic operation over two subexpressions.
const ArithmeticOp Kind = 2

// LogicOp is a comparison between two subexpressions.
const LogicOp Kind = 3

// Declaration introduces one variable into scope.
const Declaration Kind = 4

// Assignment binds the value of an expression to a variable.
const Assignment Kind = 5

// Sequence composes zero or more statements in order.
const Sequence Kind = 6

// IfElse is a conditional with an optional else block.  Children are the
// condition, the then block and (when present) the else block.
const IfElse Kind = 7

// WhileLoop is a loop.  Children are the condition and the body.
const WhileLoop Kind = 8

// PreCondition constrains a variable to a given range on entry.  Children
// are LogicOp(GtEq, Integer(lo), Variable) and LogicOp(LtEq, Integer(hi),
// Variable).
const PreCondition Kind = 9

// PostCondition asserts one or more comparisons at its program point.
const PostCondition Kind = 10

func (k Kind) String() string {
	switch k {
	case Variable:
		return "Variable"
	case Integer:
		return "Integer"
	case ArithmeticOp:
		return "ArithmeticOp"
	case LogicOp:
		return "LogicOp"
	case Declaration:
		return "Declaration"
	case Assignment:
		return "Assignment"
	case Sequence:
		return "Sequence"
	case IfElse:
		return "IfElse"
	case WhileLoop:
		return "WhileLoop"
	case PreCondition:
		return "PreCondition"
	case PostCondition:
		return "PostCondition"
	default:
		return "Unknown"
	}
}

// ArithOp identifies a binary arithmetic operator.
type ArithOp uint

// ADD is integer addition.
const ADD ArithOp = 0

// SUB is integer subtraction.
const SUB ArithOp = 1

// MUL is integer multiplication.
const MUL ArithOp = 2

// DIV is integer division (truncating towards zero).
const DIV ArithOp = 3

func (op ArithOp) String() string {
	switch op {
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case DIV:
		return "/"
	default:
		return "?"
	}
}

// CmpOp identifies a comparison operator.
type CmpOp uint

// LT is strictly less than.
const LT CmpOp = 0

// LTEQ is less than or equal.
const LTEQ CmpOp = 1

// GT is strictly greater than.
const GT CmpOp = 2

// GTEQ is greater than or equal.
const GTEQ CmpOp = 3

// EQ is equality.
const EQ CmpOp = 4

// NEQ is disequality.
const NEQ CmpOp = 5

// Negate returns the logical complement of this comparison, as required when
// filtering the untaken branch of a conditional.
func (op CmpOp) Negate() CmpOp {
	switch op {
	case LT:
		return GTEQ
	case LTEQ:
		return GT
	case GT:
		return LTEQ
	case GTEQ:
		return LT
	case EQ:
		return NEQ
	case NEQ:
		return EQ
	default:
		panic(fmt.Sprintf("unknown comparison %d", op))
	}
}

func (op CmpOp) String() string {
	switch op {
	case LT:
		return "<"
	case LTEQ:
		return "<="
	case GT:
		return ">"
	case GTEQ:
		return ">="
	case EQ:
		return "=="
	case NEQ:
		return "!="
	default:
		return "?"
	}
}

// Node is a node of the abstract syntax tree.  Every node carries a stable
// identifier, allocated by the parser, which diagnostics produced during the
// analysis are keyed on.  The payload fields are meaningful only for the
// relevant kinds (e.g. Name for Variable, Declaration and Assignment;
// Number for Integer).
type Node struct {
	// Unique identifier of this node.
	Id uint
	// Kind of this node.
	Kind Kind
	// Name of the variable involved (Variable / Declaration / Assignment).
	Name string
	// Value of a numeric literal (Integer).
	Number big.Int
	// Arithmetic operator (ArithmeticOp).
	ArithOp ArithOp
	// Comparison operator (LogicOp).
	CmpOp CmpOp
	// Child nodes, whose interpretation depends on the kind.
	Children []*Node
}

// NewVariable constructs a variable read.
func NewVariable(id uint, name string) *Node {
	return &Node{Id: id, Kind: Variable, Name: name}
}

// NewInteger constructs a numeric literal.
func NewInteger(id uint, number big.Int) *Node {
	return &Node{Id: id, Kind: Integer, Number: number}
}

// NewArithmeticOp constructs a binary arithmetic operation.
func NewArithmeticOp(id uint, op ArithOp, left *Node, right *Node) *Node {
	return &Node{Id: id, Kind: ArithmeticOp, ArithOp: op, Children: []*Node{left, right}}
}

// NewLogicOp constructs a comparison.
func NewLogicOp(id uint, op CmpOp, left *Node, right *Node) *Node {
	return &Node{Id: id, Kind: LogicOp, CmpOp: op, Children: []*Node{left, right}}
}

// NewDeclaration constructs a variable declaration.
func NewDeclaration(id uint, variable *Node) *Node {
	return &Node{Id: id, Kind: Declaration, Children: []*Node{variable}}
}

// NewAssignment constructs an assignment of an expression to a variable.
func NewAssignment(id uint, variable *Node, value *Node) *Node {
	return &Node{Id: id, Kind: Assignment, Children: []*Node{variable, value}}
}

// NewSequence constructs a sequence of statements.
func NewSequence(id uint, stmts ...*Node) *Node {
	return &Node{Id: id, Kind: Sequence, Children: stmts}
}

// NewIfElse constructs a conditional.  The else block may be nil, in which
// case it is omitted from the children.
func NewIfElse(id uint, condition *Node, thenBlock *Node, elseBlock *Node) *Node {
	children := []*Node{condition, thenBlock}
	//
	if elseBlock != nil {
		children = append(children, elseBlock)
	}
	//
	return &Node{Id: id, Kind: IfElse, Children: children}
}

// NewWhileLoop constructs a loop.
func NewWhileLoop(id uint, condition *Node, body *Node) *Node {
	return &Node{Id: id, Kind: WhileLoop, Children: []*Node{condition, body}}
}

// NewPreCondition constructs a range pre-condition over a variable.
func NewPreCondition(id uint, lower *Node, upper *Node) *Node {
	return &Node{Id: id, Kind: PreCondition, Children: []*Node{lower, upper}}
}

// NewPostCondition constructs a post-condition over one or more comparisons.
func NewPostCondition(id uint, conditions ...*Node) *Node {
	return &Node{Id: id, Kind: PostCondition, Children: conditions}
}

// String produces an indented rendering of the tree rooted at this node,
// suitable for debug logging.
func (p *Node) String() string {
	var builder strings.Builder
	//
	p.write(&builder, 0)
	//
	return builder.String()
}

func (p *Node) write(builder *strings.Builder, depth int) {
	builder.WriteString(strings.Repeat("  ", depth))
	builder.WriteString(fmt.Sprintf("#%d %s", p.Id, p.Kind.String()))
	//
	switch p.Kind {
	case Variable:
		builder.WriteString(" " + p.Name)
	case Integer:
		builder.WriteString(" " + p.Number.String())
	case ArithmeticOp:
		builder.WriteString(" " + p.ArithOp.String())
	case LogicOp:
		builder.WriteString(" " + p.CmpOp.String())
	}
	//
	builder.WriteString("\n")
	//
	for _, child := range p.Children {
		child.write(builder, depth+1)
	}
}
