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

func TestOptimizeSetZero(t *testing.T) {
	ops := Lower(Lex([]byte("[-]")))
	got := Optimize(ops)
	assert.Equal(t, []Opcode{{Kind: OpSetZero}}, got)
}

func TestOptimizeSetZeroWithPlus(t *testing.T) {
	ops := Lower(Lex([]byte("[+]")))
	got := Optimize(ops)
	assert.Equal(t, []Opcode{{Kind: OpSetZero}}, got)
}

func TestOptimizeScanUntilZeroForward(t *testing.T) {
	ops := Lower(Lex([]byte("[>>>]")))
	got := Optimize(ops)
	assert.Equal(t, []Opcode{{Kind: OpScanUntilZero, N: 3}}, got)
}

func TestOptimizeScanUntilZeroBackward(t *testing.T) {
	ops := Lower(Lex([]byte("[<<]")))
	got := Optimize(ops)
	assert.Equal(t, []Opcode{{Kind: OpScanUntilZero, N: -2}}, got)
}

func TestOptimizeLeavesUnrelatedLoopsAlone(t *testing.T) {
	ops := Lower(Lex([]byte("[->+<]")))
	got := Optimize(ops)
	// Not a 3-opcode [op] window, so nothing is rewritten.
	assert.Equal(t, ops, got)
}

func TestOptimizeNeverLengthensInput(t *testing.T) {
	ops := Lower(Lex([]byte("++[-]--[>>>]++")))
	got := Optimize(ops)
	assert.LessOrEqual(t, len(got), len(ops))
}
