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

// Lower run-length-compresses a token sequence into the optimized bytecode
// IR (spec.md §4.2). Consecutive runs of '>' '<' '+' '-' collapse into one
// count-annotated opcode each; '[' ']' '.' ',' each emit a single opcode.
// Grounded on original_source/src/parser.rs's Parser::parse_to_bytecode.
func Lower(toks []Token) []Opcode {
	ops := make([]Opcode, 0, len(toks))
	i := 0
	for i < len(toks) {
		t := toks[i]
		switch t {
		case '>', '<', '+', '-':
			j := i + 1
			for j < len(toks) && toks[j] == t {
				j++
			}
			ops = append(ops, Opcode{Kind: runKind(t), N: j - i})
			i = j
		case '[':
			ops = append(ops, Opcode{Kind: OpJumpIfZero})
			i++
		case ']':
			ops = append(ops, Opcode{Kind: OpJumpIfNotZero})
			i++
		case '.':
			ops = append(ops, Opcode{Kind: OpOutput})
			i++
		case ',':
			ops = append(ops, Opcode{Kind: OpInput})
			i++
		default:
			// Unreachable once tokens have passed through Lex, but the
			// bytecode IR tolerates an unrecognized token as a no-op
			// (spec.md §3).
			ops = append(ops, Opcode{Kind: OpNop})
			i++
		}
	}
	return ops
}

func runKind(t Token) OpKind {
	switch t {
	case '>':
		return OpPointerAdd
	case '<':
		return OpPointerSub
	case '+':
		return OpCellAdd
	case '-':
		return OpCellSub
	}
	panic("tape: runKind called on a non-run token")
}
