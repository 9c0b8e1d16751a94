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

import "io"

// Interpret runs the raw token stream directly, without ever lowering to
// the bytecode IR — the tree-walk engine of spec.md §2 item 5 and §4.5.
// Grounded on original_source/src/bf.rs's Program::eval.
func Interpret(toks []Token, jumps JumpTable, in io.Reader, out io.Writer) error {
	mem := &Memory{}
	pc := 0
	for pc < len(toks) {
		switch toks[pc] {
		case '>':
			mem.Advance(1)
		case '<':
			mem.Advance(-1)
		case '+':
			mem.AddCell(1)
		case '-':
			mem.AddCell(-1)
		case '.':
			if _, err := out.Write([]byte{mem.Cell()}); err != nil {
				return err
			}
		case ',':
			if err := readByte(in, mem); err != nil {
				return err
			}
		case '[':
			if mem.Cell() == 0 {
				pc = jumps[pc]
			}
		case ']':
			if mem.Cell() != 0 {
				pc = jumps[pc]
			}
		}
		pc++
	}
	_, err := out.Write([]byte{'\n'})
	return err
}

// readByte reads exactly one byte from in into the cell under the cursor,
// per spec.md §6's external-interface contract (one raw byte, not a line).
func readByte(in io.Reader, mem *Memory) error {
	var b [1]byte
	n, err := in.Read(b[:])
	if n == 1 {
		mem.SetCell(b[0])
		return nil
	}
	return &ErrInputReadFailure{Cause: err}
}
