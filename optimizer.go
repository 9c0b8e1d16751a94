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

// Optimize applies the peephole rewrites of spec.md §4.3 in a single
// left-to-right pass: a JumpIfZero/op/JumpIfNotZero triple collapses into a
// single straight-line opcode. Grounded on
// original_source/src/bytecode_bf.rs's is_set_zero/is_move_until_zero/
// opt_pass_1, which runs a single pass rather than bfcc's fixpoint loop.
//
//   [+] or [-]   -> SetZero
//   [>...>]      -> ScanUntilZero(+n)
//   [<...<]      -> ScanUntilZero(-n)
//
// Every rewrite consumes exactly one matched bracket pair, so the result
// never introduces bracket imbalance and the jump table must be recomputed
// against the rewritten stream afterward.
func Optimize(ops []Opcode) []Opcode {
	out := make([]Opcode, 0, len(ops))
	i := 0
	for i < len(ops) {
		if i+2 < len(ops) && ops[i].Kind == OpJumpIfZero && ops[i+2].Kind == OpJumpIfNotZero {
			switch ops[i+1].Kind {
			case OpCellAdd, OpCellSub:
				out = append(out, Opcode{Kind: OpSetZero})
				i += 3
				continue
			case OpPointerAdd:
				out = append(out, Opcode{Kind: OpScanUntilZero, N: ops[i+1].N})
				i += 3
				continue
			case OpPointerSub:
				out = append(out, Opcode{Kind: OpScanUntilZero, N: -ops[i+1].N})
				i += 3
				continue
			}
		}
		out = append(out, ops[i])
		i++
	}
	return out
}
