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
package syntax

import (
	"math/big"
	"slices"

	"github.com/consensys/go-absint/pkg/ast"
	"github.com/consensys/go-absint/pkg/util/source"
	"github.com/consensys/go-absint/pkg/util/source/lex"
)

// CONDITIONS captures the set of comparison tokens.
var CONDITIONS = []uint{EQUALS, NOT_EQUALS, LESSTHAN, LESSTHAN_EQUALS, GREATERTHAN, GREATERTHAN_EQUALS}

// Parse a given source file into an abstract syntax tree, whose root is a
// sequence of statements.  Node identifiers are allocated in parse order,
// starting from zero.
func Parse(srcfile *source.File) (*ast.Node, []source.SyntaxError) {
	tokens, errs := Lex(srcfile)
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	parser := &Parser{srcfile, tokens, 0, 0}
	//
	return parser.parseProgram()
}

// Parser packages up the state required when parsing a source file, namely
// the token stream, the current position within it, and the counter from
// which node identifiers are allocated.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Position within the tokens
	index int
	// Next node identifier to allocate
	nodeId uint
}

func (p *Parser) parseProgram() (*ast.Node, []source.SyntaxError) {
	var stmts []*ast.Node
	//
	for !p.follows(END_OF) {
		stmt, errs := p.parseStatement()
		//
		if len(errs) != 0 {
			return nil, errs
		}
		//
		stmts = append(stmts, stmt...)
	}
	//
	return ast.NewSequence(p.fresh(), stmts...), nil
}

// parseStatement parses a single statement, which can expand into several
// nodes (e.g. a declaration list).
func (p *Parser) parseStatement() ([]*ast.Node, []source.SyntaxError) {
	token := p.lookahead()
	//
	switch {
	case p.followsKeyword("int"):
		return p.parseDeclaration()
	case p.followsKeyword("if"):
		return p.singleton(p.parseIfElse())
	case p.followsKeyword("while"):
		return p.singleton(p.parseWhileLoop())
	case token.Kind == NPRE:
		return p.singleton(p.parsePreCondition())
	case token.Kind == NPOST:
		return p.singleton(p.parsePostCondition())
	case token.Kind == IDENTIFIER:
		return p.singleton(p.parseAssignment())
	default:
		return nil, p.syntaxErrors(token, "expected statement")
	}
}

// parseDeclaration parses "int x, y, z;" into one declaration node per
// variable.
func (p *Parser) parseDeclaration() ([]*ast.Node, []source.SyntaxError) {
	var decls []*ast.Node
	// Consume "int"
	p.expect(IDENTIFIER)
	//
	for {
		variable, errs := p.parseVariable()
		//
		if len(errs) != 0 {
			return nil, errs
		}
		//
		decls = append(decls, ast.NewDeclaration(p.fresh(), variable))
		//
		if !p.match(COMMA) {
			break
		}
	}
	//
	if !p.match(SEMICOLON) {
		return nil, p.syntaxErrors(p.lookahead(), "expected ';'")
	}
	//
	return decls, nil
}

// parseAssignment parses "x = e;".
func (p *Parser) parseAssignment() (*ast.Node, []source.SyntaxError) {
	variable, errs := p.parseVariable()
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	if !p.match(ASSIGN) {
		return nil, p.syntaxErrors(p.lookahead(), "expected '='")
	}
	//
	value, errs := p.parseExpression()
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	if !p.match(SEMICOLON) {
		return nil, p.syntaxErrors(p.lookahead(), "expected ';'")
	}
	//
	return ast.NewAssignment(p.fresh(), variable, value), nil
}

// parseIfElse parses "if (cond) { ... } else { ... }", where the else block
// is optional.
func (p *Parser) parseIfElse() (*ast.Node, []source.SyntaxError) {
	var elseBlock *ast.Node
	// Consume "if"
	p.expect(IDENTIFIER)
	//
	condition, errs := p.parseParenthesisedCondition()
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	thenBlock, errs := p.parseBlock()
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	if p.followsKeyword("else") {
		p.expect(IDENTIFIER)
		//
		elseBlock, errs = p.parseBlock()
		//
		if len(errs) != 0 {
			return nil, errs
		}
	}
	//
	return ast.NewIfElse(p.fresh(), condition, thenBlock, elseBlock), nil
}

// parseWhileLoop parses "while (cond) { ... }".
func (p *Parser) parseWhileLoop() (*ast.Node, []source.SyntaxError) {
	// Consume "while"
	p.expect(IDENTIFIER)
	//
	condition, errs := p.parseParenthesisedCondition()
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	body, errs := p.parseBlock()
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	return ast.NewWhileLoop(p.fresh(), condition, body), nil
}

// parseBlock parses "{ stmt* }" into a sequence node.
func (p *Parser) parseBlock() (*ast.Node, []source.SyntaxError) {
	var stmts []*ast.Node
	//
	if !p.match(LCURLY) {
		return nil, p.syntaxErrors(p.lookahead(), "expected '{'")
	}
	//
	for !p.follows(RCURLY) {
		if p.follows(END_OF) {
			return nil, p.syntaxErrors(p.lookahead(), "expected '}'")
		}
		//
		stmt, errs := p.parseStatement()
		//
		if len(errs) != 0 {
			return nil, errs
		}
		//
		stmts = append(stmts, stmt...)
	}
	// Consume '}'
	p.expect(RCURLY)
	//
	return ast.NewSequence(p.fresh(), stmts...), nil
}

// parseParenthesisedCondition parses "(e1 cmp e2)".
func (p *Parser) parseParenthesisedCondition() (*ast.Node, []source.SyntaxError) {
	if !p.match(LBRACE) {
		return nil, p.syntaxErrors(p.lookahead(), "expected '('")
	}
	//
	condition, errs := p.parseCondition()
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	if !p.match(RBRACE) {
		return nil, p.syntaxErrors(p.lookahead(), "expected ')'")
	}
	//
	return condition, nil
}

// parseCondition parses "e1 cmp e2".
func (p *Parser) parseCondition() (*ast.Node, []source.SyntaxError) {
	lhs, errs := p.parseExpression()
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	token := p.lookahead()
	//
	if !p.follows(CONDITIONS...) {
		return nil, p.syntaxErrors(token, "expected comparison")
	}
	//
	p.expect(token.Kind)
	//
	rhs, errs := p.parseExpression()
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	return ast.NewLogicOp(p.fresh(), comparison(token.Kind), lhs, rhs), nil
}

// parsePreCondition parses "/*!npre lo <= x <= hi */" into a pre-condition
// node constraining the named variable to the given (constant) range.
func (p *Parser) parsePreCondition() (*ast.Node, []source.SyntaxError) {
	// Consume the directive opening
	p.expect(NPRE)
	//
	lo, errs := p.parseSignedNumber()
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	if !p.match(LESSTHAN_EQUALS) {
		return nil, p.syntaxErrors(p.lookahead(), "expected '<='")
	}
	//
	variable, errs := p.parseVariable()
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	if !p.match(LESSTHAN_EQUALS) {
		return nil, p.syntaxErrors(p.lookahead(), "expected '<='")
	}
	//
	hi, errs := p.parseSignedNumber()
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	if !p.match(CLOSE_DIRECTIVE) {
		return nil, p.syntaxErrors(p.lookahead(), "expected '*/'")
	}
	// The lower bound reads "x >= lo", the upper "x <= hi".
	lower := ast.NewLogicOp(p.fresh(), ast.GTEQ, lo, variable)
	upper := ast.NewLogicOp(p.fresh(), ast.LTEQ, hi, p.cloneVariable(variable))
	//
	return ast.NewPreCondition(p.fresh(), lower, upper), nil
}

// parsePostCondition parses "/*!npost e1 cmp e2 */", or the range form
// "/*!npost lo <= x <= hi */" which expands into two comparisons.
func (p *Parser) parsePostCondition() (*ast.Node, []source.SyntaxError) {
	var conditions []*ast.Node
	// Consume the directive opening
	p.expect(NPOST)
	//
	first, errs := p.parseCondition()
	//
	if len(errs) != 0 {
		return nil, errs
	}
	//
	conditions = append(conditions, first)
	// Check for the range form "lo <= x <= hi".
	if p.follows(CONDITIONS...) {
		token := p.lookahead()
		middle := first.Children[1]
		//
		p.expect(token.Kind)
		//
		last, errs := p.parseExpression()
		//
		if len(errs) != 0 {
			return nil, errs
		}
		//
		second := ast.NewLogicOp(p.fresh(), comparison(token.Kind), p.cloneExpression(middle), last)
		conditions = append(conditions, second)
	}
	//
	if !p.match(CLOSE_DIRECTIVE) {
		return nil, p.syntaxErrors(p.lookahead(), "expected '*/'")
	}
	//
	return ast.NewPostCondition(p.fresh(), conditions...), nil
}

// parseExpression parses an additive expression.
func (p *Parser) parseExpression() (*ast.Node, []source.SyntaxError) {
	lhs, errs := p.parseTerm()
	//
	for len(errs) == 0 && p.follows(ADD, SUB) {
		var rhs *ast.Node
		//
		token := p.lookahead()
		p.expect(token.Kind)
		//
		rhs, errs = p.parseTerm()
		//
		if len(errs) == 0 {
			op := ast.ADD
			if token.Kind == SUB {
				op = ast.SUB
			}
			//
			lhs = ast.NewArithmeticOp(p.fresh(), op, lhs, rhs)
		}
	}
	//
	return lhs, errs
}

// parseTerm parses a multiplicative expression.
func (p *Parser) parseTerm() (*ast.Node, []source.SyntaxError) {
	lhs, errs := p.parseFactor()
	//
	for len(errs) == 0 && p.follows(MUL, DIV) {
		var rhs *ast.Node
		//
		token := p.lookahead()
		p.expect(token.Kind)
		//
		rhs, errs = p.parseFactor()
		//
		if len(errs) == 0 {
			op := ast.MUL
			if token.Kind == DIV {
				op = ast.DIV
			}
			//
			lhs = ast.NewArithmeticOp(p.fresh(), op, lhs, rhs)
		}
	}
	//
	return lhs, errs
}

// parseFactor parses a literal, a variable read or a parenthesised
// subexpression.
func (p *Parser) parseFactor() (*ast.Node, []source.SyntaxError) {
	token := p.lookahead()
	//
	switch token.Kind {
	case NUMBER, SUB:
		return p.parseSignedNumber()
	case IDENTIFIER:
		return p.parseVariable()
	case LBRACE:
		p.expect(LBRACE)
		//
		expr, errs := p.parseExpression()
		//
		if len(errs) == 0 && !p.match(RBRACE) {
			return nil, p.syntaxErrors(p.lookahead(), "expected ')'")
		}
		//
		return expr, errs
	default:
		return nil, p.syntaxErrors(token, "expected expression")
	}
}

// parseVariable parses an identifier, rejecting keywords.
func (p *Parser) parseVariable() (*ast.Node, []source.SyntaxError) {
	token := p.lookahead()
	//
	if token.Kind != IDENTIFIER {
		return nil, p.syntaxErrors(token, "expected identifier")
	}
	//
	name := p.string(token)
	//
	if isKeyword(name) {
		return nil, p.syntaxErrors(token, "keyword used as identifier")
	}
	//
	p.expect(IDENTIFIER)
	//
	return ast.NewVariable(p.fresh(), name), nil
}

// parseSignedNumber parses an integer literal with an optional leading
// minus.
func (p *Parser) parseSignedNumber() (*ast.Node, []source.SyntaxError) {
	negative := p.match(SUB)
	token := p.lookahead()
	//
	if token.Kind != NUMBER {
		return nil, p.syntaxErrors(token, "expected number")
	}
	//
	p.expect(NUMBER)
	//
	var number big.Int
	//
	number.SetString(p.string(token), 10)
	//
	if negative {
		number.Neg(&number)
	}
	//
	return ast.NewInteger(p.fresh(), number), nil
}

// cloneVariable duplicates a variable node under a fresh identifier.
func (p *Parser) cloneVariable(variable *ast.Node) *ast.Node {
	return ast.NewVariable(p.fresh(), variable.Name)
}

// cloneExpression duplicates an expression tree under fresh identifiers, as
// required when the range form of a directive uses the same subexpression in
// two comparisons.
func (p *Parser) cloneExpression(expr *ast.Node) *ast.Node {
	switch expr.Kind {
	case ast.Variable:
		return p.cloneVariable(expr)
	case ast.Integer:
		return ast.NewInteger(p.fresh(), expr.Number)
	case ast.ArithmeticOp:
		left := p.cloneExpression(expr.Children[0])
		right := p.cloneExpression(expr.Children[1])
		//
		return ast.NewArithmeticOp(p.fresh(), expr.ArithOp, left, right)
	default:
		panic("cannot clone non-expression node")
	}
}

// fresh allocates the next node identifier.
func (p *Parser) fresh() uint {
	id := p.nodeId
	p.nodeId++
	//
	return id
}

// singleton wraps a single-statement parse into the statement-list shape.
func (p *Parser) singleton(stmt *ast.Node, errs []source.SyntaxError) ([]*ast.Node, []source.SyntaxError) {
	if len(errs) != 0 {
		return nil, errs
	}
	//
	return []*ast.Node{stmt}, nil
}

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	return p.srcfile.Text(token.Span)
}

// followsKeyword checks whether a given keyword is next.
func (p *Parser) followsKeyword(word string) bool {
	token := p.lookahead()
	//
	return token.Kind == IDENTIFIER && p.string(token) == word
}

// follows checks whether one of the given token kinds is next.
func (p *Parser) follows(options ...uint) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

// lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

func (p *Parser) expect(kind uint) lex.Token {
	if p.lookahead().Kind != kind {
		panic("internal failure")
	}
	//
	token := p.tokens[p.index]
	p.index++
	//
	return token
}

func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}

func isKeyword(name string) bool {
	switch name {
	case "int", "if", "else", "while":
		return true
	default:
		return false
	}
}

// comparison maps a comparison token onto the corresponding operator.
func comparison(kind uint) ast.CmpOp {
	switch kind {
	case LESSTHAN:
		return ast.LT
	case LESSTHAN_EQUALS:
		return ast.LTEQ
	case GREATERTHAN:
		return ast.GT
	case GREATERTHAN_EQUALS:
		return ast.GTEQ
	case EQUALS:
		return ast.EQ
	case NOT_EQUALS:
		return ast.NEQ
	default:
		panic("unknown comparison token")
	}
}
