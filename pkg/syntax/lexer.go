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
	"github.com/consensys/go-absint/pkg/util"
	"github.com/consensys/go-absint/pkg/util/source"
	"github.com/consensys/go-absint/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// COMMENT signals a line or (plain) block comment
const COMMENT uint = 2

// NPRE signals the opening of a range pre-condition directive
const NPRE uint = 3

// NPOST signals the opening of a post-condition directive
const NPOST uint = 4

// CLOSE_DIRECTIVE signals the end of a directive comment
const CLOSE_DIRECTIVE uint = 5

// IDENTIFIER signals an identifier or keyword
const IDENTIFIER uint = 6

// NUMBER signals an integer number
const NUMBER uint = 7

// LBRACE signals "left brace"
const LBRACE uint = 8

// RBRACE signals "right brace"
const RBRACE uint = 9

// LCURLY signals "left curly brace"
const LCURLY uint = 10

// RCURLY signals "right curly brace"
const RCURLY uint = 11

// SEMICOLON signals a statement terminator
const SEMICOLON uint = 12

// COMMA signals a separator within declaration lists
const COMMA uint = 13

// ASSIGN signals the assignment symbol
const ASSIGN uint = 14

// ADD represents integer addition
const ADD uint = 15

// SUB represents integer subtraction
const SUB uint = 16

// MUL represents integer multiplication
const MUL uint = 17

// DIV represents integer division
const DIV uint = 18

// EQUALS signals an equality
const EQUALS uint = 19

// NOT_EQUALS signals a non-equality
const NOT_EQUALS uint = 20

// LESSTHAN signals a (strict) inequality X < Y
const LESSTHAN uint = 21

// LESSTHAN_EQUALS signals a (non-strict) inequality X <= Y
const LESSTHAN_EQUALS uint = 22

// GREATERTHAN signals a (strict) inequality X > Y
const GREATERTHAN uint = 23

// GREATERTHAN_EQUALS signals a (non-strict) inequality X >= Y
const GREATERTHAN_EQUALS uint = 24

// Rule for describing whitespace
var whitespace lex.Scanner = lex.Many(lex.Or(
	lex.Unit(' '),
	lex.Unit('\t'),
	lex.Unit('\r'),
	lex.Unit('\n')))

// Rule for describing numbers
var number lex.Scanner = lex.Many(lex.Within('0', '9'))

var identifierStart lex.Scanner = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Rule for describing identifiers
var identifier lex.Scanner = lex.And(identifierStart, identifierRest)

// Rule for describing line comments
var lineComment lex.Scanner = lex.Sequence(lex.String("//"), lex.Until('\n'))

// blockComment scans a plain (non-directive) block comment, up to and
// including its closing marker.
func blockComment(items []rune) uint {
	if len(items) < 2 || items[0] != '/' || items[1] != '*' {
		return 0
	}
	// Directive comments are lexed by their own rules.
	if len(items) > 2 && items[2] == '!' {
		return 0
	}
	//
	for i := 2; i+1 < len(items); i++ {
		if items[i] == '*' && items[i+1] == '/' {
			return uint(i + 2)
		}
	}
	// Unterminated: no match, hence the opening marker lexes as ordinary
	// symbols which the parser then rejects.
	return 0
}

// lexing rules.  Observe that rules are attempted in order, hence directives
// come before plain comments, and two-character symbols before their
// one-character prefixes.
var rules []lex.LexRule = []lex.LexRule{
	lex.Rule(lex.String("/*!npre"), NPRE),
	lex.Rule(lex.String("/*!npost"), NPOST),
	lex.Rule(lineComment, COMMENT),
	lex.Rule(blockComment, COMMENT),
	lex.Rule(lex.String("*/"), CLOSE_DIRECTIVE),
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('{'), LCURLY),
	lex.Rule(lex.Unit('}'), RCURLY),
	lex.Rule(lex.Unit(';'), SEMICOLON),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit('+'), ADD),
	lex.Rule(lex.Unit('-'), SUB),
	lex.Rule(lex.Unit('*'), MUL),
	lex.Rule(lex.Unit('/'), DIV),
	lex.Rule(lex.Unit('=', '='), EQUALS),
	lex.Rule(lex.Unit('!', '='), NOT_EQUALS),
	lex.Rule(lex.Unit('<', '='), LESSTHAN_EQUALS),
	lex.Rule(lex.Unit('<'), LESSTHAN),
	lex.Rule(lex.Unit('>', '='), GREATERTHAN_EQUALS),
	lex.Rule(lex.Unit('>'), GREATERTHAN),
	lex.Rule(lex.Unit('='), ASSIGN),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(number, NUMBER),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof(), END_OF),
}

// Lex tokenises a given source file, removing whitespace and comments along
// the way.  An error is returned when some part of the input matches no
// lexing rule at all.
func Lex(srcfile *source.File) ([]lex.Token, []source.SyntaxError) {
	lexer := lex.NewLexer(srcfile.Contents(), rules...)
	// Lex as many tokens as possible
	tokens := lexer.Collect()
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start := int(lexer.Index())
		end := start + int(lexer.Remaining())
		err := srcfile.SyntaxError(source.NewSpan(start, end), "unknown text encountered")
		//
		return nil, []source.SyntaxError{*err}
	}
	// Remove any whitespace and comments
	tokens = util.RemoveMatching(tokens, func(t lex.Token) bool {
		return t.Kind == WHITESPACE || t.Kind == COMMENT
	})
	//
	return tokens, nil
}
