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

// buildNative emits x86-64 machine code for ops into a fresh JITWriter.
// RCur holds &tape[cursor] directly for the whole program (spec.md §4.6).
// Grounded primarily on original_source/src/simple_jit.rs for the exact
// byte sequences per opcode, and on scm/jit_writer.go's label/fixup
// scaffold (here jit_writer.go) for the patch-site discipline: '[' reserves
// a forward label for its matching ']' and defines the body's start label;
// ']' resolves both. ScanUntilZero shifts RCur on every iteration — never
// the cell — the corrected semantics spec.md §9 requires in place of the
// bug original_source/src/optbytecode_jit.rs reproduces.
func buildNative(ops []Opcode, tapeBase uintptr) (*JITWriter, error) {
	w := NewJITWriter()

	emitMovRegImm64(w, RCur, uint64(tapeBase))

	type bracket struct {
		bodyStart uint8
		afterEnd  uint8
	}
	stack := make([]bracket, 0, 16)

	for _, op := range ops {
		switch op.Kind {
		case OpPointerAdd:
			emitAluRegImm32(w, RCur, uint32(op.N), aluAdd)
		case OpPointerSub:
			emitAluRegImm32(w, RCur, uint32(op.N), aluSub)
		case OpCellAdd:
			if op.N > 255 {
				return nil, &ErrCellDeltaOverflow{N: op.N}
			}
			emitMemByteImm8(w, 0x80, aluAdd, byte(op.N))
		case OpCellSub:
			if op.N > 255 {
				return nil, &ErrCellDeltaOverflow{N: op.N}
			}
			emitMemByteImm8(w, 0x80, aluSub, byte(op.N))
		case OpSetZero:
			emitMemByteImm8(w, 0xC6, aluAdd, 0x00)
		case OpOutput:
			emitSyscallIO(w, true)
		case OpInput:
			emitSyscallIO(w, false)
		case OpJumpIfZero:
			emitCmpCellZero(w)
			afterEnd := w.ReserveLabel()
			emitJcc0F(w, jccZ, afterEnd)
			bodyStart := w.DefineLabel()
			stack = append(stack, bracket{bodyStart: bodyStart, afterEnd: afterEnd})
		case OpJumpIfNotZero:
			if len(stack) == 0 {
				return nil, &ErrUnbalancedBrackets{PC: -1}
			}
			b := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			emitCmpCellZero(w)
			emitJcc0F(w, jccNZ, b.bodyStart)
			w.MarkLabel(b.afterEnd)
		case OpScanUntilZero:
			loopStart := w.DefineLabel()
			afterEnd := w.ReserveLabel()
			emitCmpCellZero(w)
			emitJcc0F(w, jccZ, afterEnd)
			if op.N > 0 {
				emitAluRegImm32(w, RCur, uint32(op.N), aluAdd)
			} else {
				emitAluRegImm32(w, RCur, uint32(-op.N), aluSub)
			}
			emitJmpRel32(w, loopStart)
			w.MarkLabel(afterEnd)
		case OpNop:
			// tolerated, emits nothing (spec.md §3)
		}
	}
	if len(stack) > 0 {
		return nil, &ErrUnbalancedBrackets{PC: -1}
	}

	w.emitByte(0xC3) // ret
	w.ResolveFixups()
	return w, nil
}
