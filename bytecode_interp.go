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

// InterpretBytecode runs the optimized Opcode stream (spec.md §4.5),
// extending Interpret's dispatch loop with SetZero and ScanUntilZero.
// Grounded on original_source/src/bytecode_bf.rs's eval, with
// MoveInStepUntilZero implemented as a cursor shift rather than a cell
// mutation — the corrected semantics spec.md §9 mandates.
func InterpretBytecode(ops []Opcode, jumps JumpTable, in io.Reader, out io.Writer) error {
	mem := &Memory{}
	pc := 0
	for pc < len(ops) {
		op := ops[pc]
		switch op.Kind {
		case OpPointerAdd:
			mem.Advance(op.N)
		case OpPointerSub:
			mem.Advance(-op.N)
		case OpCellAdd:
			mem.AddCell(op.N)
		case OpCellSub:
			mem.AddCell(-op.N)
		case OpOutput:
			if _, err := out.Write([]byte{mem.Cell()}); err != nil {
				return err
			}
		case OpInput:
			if err := readByte(in, mem); err != nil {
				return err
			}
		case OpJumpIfZero:
			if mem.Cell() == 0 {
				pc = jumps[pc]
			}
		case OpJumpIfNotZero:
			if mem.Cell() != 0 {
				pc = jumps[pc]
			}
		case OpSetZero:
			mem.SetCell(0)
		case OpScanUntilZero:
			for mem.Cell() != 0 {
				mem.Advance(op.N)
			}
		case OpNop:
			// tolerated, never produced once Lex has already filtered the
			// input (spec.md §3; original_source/src/parser.rs's Nop case).
		}
		pc++
	}
	_, err := out.Write([]byte{'\n'})
	return err
}
