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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runBytecode(t *testing.T, src string) string {
	t.Helper()
	prog, err := compile(Lex([]byte(src)))
	assert.NoError(t, err)
	var out bytes.Buffer
	err = InterpretBytecode(prog.Ops, prog.Jumps, strings.NewReader(""), &out)
	assert.NoError(t, err)
	return out.String()
}

func TestBytecodeInterpretPrintsLetterA(t *testing.T) {
	assert.Equal(t, "A\n", runBytecode(t, "++++++++[>++++++++<-]>+."))
}

func TestBytecodeInterpretMatchesTreeWalk(t *testing.T) {
	scenarios := []string{
		"++++++++[>++++++++<-]>+.",
		"+++++[>+++++<-]>++.", // 27 = not printable, but output bytes should still match
		"+.",
		",.",
	}
	for _, src := range scenarios {
		assert.Equal(t, runInterpret(t, src), runBytecode(t, src), "engines diverged on %q", src)
	}
}

func TestBytecodeInterpretSetZeroClearsCell(t *testing.T) {
	got := runBytecode(t, "+++++[-]+.")
	assert.Equal(t, "\x01\n", got)
}

func TestBytecodeInterpretScanUntilZero(t *testing.T) {
	// cell0=0, cell1=3, cell2=2, cell3=1; starting at cell3, "[<<<]" scans
	// backward in steps of 3 until the cursor lands on a zero cell (cell0)
	// and stops there.
	got := runBytecode(t, ">+++>++>+[<<<]+.")
	assert.Equal(t, "\x01\n", got)
}
