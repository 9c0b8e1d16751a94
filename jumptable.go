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

// JumpTable maps each bracket opcode's index to its matched partner's
// index. Entries for non-bracket positions are unused.
type JumpTable []int

// resolveJumps is the shared O(n) stack-based bracket-matching core used by
// both ResolveJumps (over lowered Opcodes) and ResolveTokenJumps (over raw
// Tokens, for the tree-walk engine). Grounded on lcox74/bfcc's
// fixJumpTargets: a single left-to-right pass with an explicit stack of
// opener indices, preferred by spec.md §4.4 over the O(n²) depth-counter
// algorithm original_source/src/bf.rs uses.
func resolveJumps(n int, isOpen, isClose func(i int) bool) (JumpTable, error) {
	table := make(JumpTable, n)
	stack := make([]int, 0, 16)
	for i := 0; i < n; i++ {
		switch {
		case isOpen(i):
			stack = append(stack, i)
		case isClose(i):
			if len(stack) == 0 {
				return nil, &ErrUnbalancedBrackets{PC: i}
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			table[open] = i
			table[i] = open
		}
	}
	if len(stack) > 0 {
		return nil, &ErrUnbalancedBrackets{PC: stack[len(stack)-1]}
	}
	return table, nil
}

// ResolveJumps computes the jump table for a lowered Opcode stream.
func ResolveJumps(ops []Opcode) (JumpTable, error) {
	return resolveJumps(len(ops),
		func(i int) bool { return ops[i].Kind == OpJumpIfZero },
		func(i int) bool { return ops[i].Kind == OpJumpIfNotZero },
	)
}

// ResolveTokenJumps computes the jump table for a raw Token stream, for the
// tree-walk interpreter which never lowers to Opcodes (spec.md §2 item 5).
func ResolveTokenJumps(toks []Token) (JumpTable, error) {
	return resolveJumps(len(toks),
		func(i int) bool { return toks[i] == '[' },
		func(i int) bool { return toks[i] == ']' },
	)
}
