/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package tape

import "golang.org/x/exp/slices"

// Token is one recognized source character.
type Token byte

// tokenAlphabet is the closed set of eight characters the lexer recognizes.
var tokenAlphabet = []Token{'>', '<', '+', '-', '.', ',', '[', ']'}

// Lex filters src down to the ordered sequence of recognized tokens. It
// never fails: any byte outside the eight-character alphabet is silently
// dropped, matching original_source/src/parser.rs's byte filter.
func Lex(src []byte) []Token {
	toks := make([]Token, 0, len(src))
	for _, b := range src {
		t := Token(b)
		if slices.Contains(tokenAlphabet, t) {
			toks = append(toks, t)
		}
	}
	return toks
}
