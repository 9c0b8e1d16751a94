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

// OpKind tags one element of the optimized bytecode IR (spec.md §3).
type OpKind uint8

const (
	OpNop OpKind = iota
	OpPointerAdd
	OpPointerSub
	OpCellAdd
	OpCellSub
	OpOutput
	OpInput
	OpJumpIfZero
	OpJumpIfNotZero
	OpSetZero
	OpScanUntilZero
)

func (k OpKind) String() string {
	switch k {
	case OpNop:
		return "Nop"
	case OpPointerAdd:
		return "PointerAdd"
	case OpPointerSub:
		return "PointerSub"
	case OpCellAdd:
		return "CellAdd"
	case OpCellSub:
		return "CellSub"
	case OpOutput:
		return "Output"
	case OpInput:
		return "Input"
	case OpJumpIfZero:
		return "JumpIfZero"
	case OpJumpIfNotZero:
		return "JumpIfNotZero"
	case OpSetZero:
		return "SetZero"
	case OpScanUntilZero:
		return "ScanUntilZero"
	default:
		return "Unknown"
	}
}

// Opcode is one instruction of the optimized bytecode IR. N carries the run
// length for PointerAdd/PointerSub/CellAdd/CellSub, and the signed per-step
// cursor delta (+n or -n) for ScanUntilZero. It is unused for every other
// kind.
type Opcode struct {
	Kind OpKind
	N    int
}

// Program is a finalized Opcode sequence together with its resolved jump
// table, ready to be handed to any of the four engines.
type Program struct {
	Ops   []Opcode
	Jumps JumpTable
}
