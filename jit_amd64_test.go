//go:build amd64

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

func TestBuildNativeCellAddEncoding(t *testing.T) {
	w, err := buildNative([]Opcode{{Kind: OpCellAdd, N: 1}}, 0x1000)
	assert.NoError(t, err)
	// mov r13, imm64 (10 bytes) then addb $1, 0(%r13): 41 80 45 00 01,
	// exactly original_source/src/simple_jit.rs's '+' encoding, then ret.
	assert.Equal(t, []byte{0x41, 0x80, 0x45, 0x00, 0x01}, w.Code[10:15])
	assert.Equal(t, byte(0xC3), w.Code[len(w.Code)-1])
}

func TestBuildNativeCellSubEncoding(t *testing.T) {
	w, err := buildNative([]Opcode{{Kind: OpCellSub, N: 1}}, 0x1000)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x41, 0x80, 0x6D, 0x00, 0x01}, w.Code[10:15])
}

func TestBuildNativeCellDeltaOverflowRejected(t *testing.T) {
	_, err := buildNative([]Opcode{{Kind: OpCellAdd, N: 256}}, 0x1000)
	var target *ErrCellDeltaOverflow
	assert.ErrorAs(t, err, &target)
	assert.Equal(t, 256, target.N)
}

func TestBuildNativeBracketPatchesBothJumps(t *testing.T) {
	w, err := buildNative([]Opcode{
		{Kind: OpJumpIfZero},
		{Kind: OpCellAdd, N: 1},
		{Kind: OpJumpIfNotZero},
	}, 0x1000)
	assert.NoError(t, err)
	// cmpb; jz rel32 patched non-zero forward; cmpb; jnz rel32 patched
	// non-zero backward; ret. Neither rel32 field may still hold the zero
	// placeholder emitJcc0F writes before ResolveFixups patches it.
	jzRel := w.Code[17:21]
	assert.NotEqual(t, []byte{0, 0, 0, 0}, jzRel)
	jnzRel := w.Code[33:37]
	assert.NotEqual(t, []byte{0, 0, 0, 0}, jnzRel)
}

func TestBuildNativeUnbalancedBracketsRejected(t *testing.T) {
	_, err := buildNative([]Opcode{{Kind: OpJumpIfZero}}, 0x1000)
	var target *ErrUnbalancedBrackets
	assert.ErrorAs(t, err, &target)
}
