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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveJumpsSimpleLoop(t *testing.T) {
	ops := Lower(Lex([]byte("[-]")))
	jumps, err := ResolveJumps(ops)
	assert.NoError(t, err)
	assert.Equal(t, 2, jumps[0])
	assert.Equal(t, 0, jumps[2])
}

func TestResolveJumpsNested(t *testing.T) {
	ops := Lower(Lex([]byte("[[-]+]")))
	jumps, err := ResolveJumps(ops)
	assert.NoError(t, err)
	// ops: JZ(0) JZ(1) CellSub(2) JNZ(3) CellAdd(4) JNZ(5)
	assert.Equal(t, 5, jumps[0])
	assert.Equal(t, 3, jumps[1])
	assert.Equal(t, 1, jumps[3])
	assert.Equal(t, 0, jumps[5])
}

func TestResolveJumpsUnmatchedOpen(t *testing.T) {
	ops := Lower(Lex([]byte("[-")))
	_, err := ResolveJumps(ops)
	var target *ErrUnbalancedBrackets
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, 0, target.PC)
}

func TestResolveJumpsUnmatchedClose(t *testing.T) {
	ops := Lower(Lex([]byte("-]")))
	_, err := ResolveJumps(ops)
	var target *ErrUnbalancedBrackets
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, 1, target.PC)
}

func TestResolveTokenJumpsOverRawTokens(t *testing.T) {
	toks := Lex([]byte("-[->+<]"))
	jumps, err := ResolveTokenJumps(toks)
	assert.NoError(t, err)
	// tokens: '-'(0) '['(1) '-'(2) '>'(3) '+'(4) '<'(5) ']'(6)
	assert.Equal(t, 6, jumps[1])
	assert.Equal(t, 1, jumps[6])
}
