// Mgmt
// Copyright (C) 2013-2024+ James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package parser

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNum
	tokenIdent
	tokenPlus
	tokenMinus
	tokenMul
	tokenDiv
	tokenPow
	tokenOpen
	tokenClose
	tokenComma
)

// token is a single lexeme. The offsets are in bytes into the input.
type token struct {
	kind  tokenKind
	start int
	end   int
	text  string
	num   float64
}

var punctuation = map[byte]tokenKind{
	'+': tokenPlus,
	'-': tokenMinus,
	'*': tokenMul,
	'/': tokenDiv,
	'^': tokenPow,
	'(': tokenOpen,
	')': tokenClose,
	',': tokenComma,
}

// lex splits the input into tokens. The final token is always tokenEOF.
func lex(input string) ([]token, error) {
	tokens := []token{}
	i := 0
	for i < len(input) {
		c := input[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			i++
			continue
		}

		if kind, exists := punctuation[c]; exists {
			tokens = append(tokens, token{kind: kind, start: i, end: i + 1, text: input[i : i+1]})
			i++
			continue
		}

		if isDigit(c) || (c == '.' && i+1 < len(input) && isDigit(input[i+1])) {
			end := scanNumber(input, i)
			text := input[i:end]
			v, err := strconv.ParseFloat(text, 64)
			if err != nil && !isRangeErr(err) { // overflow gives +Inf
				return nil, lexErr(input, i, ErrLexerUnrecognized)
			}
			tokens = append(tokens, token{kind: tokenNum, start: i, end: end, text: text, num: v})
			i = end
			continue
		}

		r, size := utf8.DecodeRuneInString(input[i:])
		if unicode.IsLetter(r) {
			end := i + size
			for end < len(input) {
				r, size := utf8.DecodeRuneInString(input[end:])
				if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
					break
				}
				end += size
			}
			tokens = append(tokens, token{kind: tokenIdent, start: i, end: end, text: input[i:end]})
			i = end
			continue
		}

		return nil, lexErr(input, i, ErrLexerUnrecognized)
	}
	tokens = append(tokens, token{kind: tokenEOF, start: len(input), end: len(input)})
	return tokens, nil
}

// scanNumber returns the end offset of the number literal which starts at i.
// It accepts `1`, `1.5`, `.5`, `5.` and an optional exponent like `1e-5`.
func scanNumber(input string, i int) int {
	for i < len(input) && isDigit(input[i]) {
		i++
	}
	if i < len(input) && input[i] == '.' {
		i++
		for i < len(input) && isDigit(input[i]) {
			i++
		}
	}
	if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
		j := i + 1
		if j < len(input) && (input[j] == '+' || input[j] == '-') {
			j++
		}
		if j < len(input) && isDigit(input[j]) {
			for j < len(input) && isDigit(input[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isRangeErr(err error) bool {
	e, ok := err.(*strconv.NumError)
	return ok && e.Err == strconv.ErrRange
}
