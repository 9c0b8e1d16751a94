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

// Register encodings, System V AMD64 numbering. RCur (R13) holds
// &tape[cursor] for the whole lifetime of a compiled program (spec.md
// §4.6) — the same "one register owns the cell pointer" convention
// original_source/src/simple_jit.rs uses.
const (
	RAX uint8 = 0
	RCX uint8 = 1
	RDX uint8 = 2
	RBX uint8 = 3
	RSP uint8 = 4
	RBP uint8 = 5
	RSI uint8 = 6
	RDI uint8 = 7
	RCur uint8 = 13
)

// ALU opcode-extension fields for the 0x81/0x80/0xC6 group.
const (
	aluAdd byte = 0
	aluSub byte = 5
	aluCmp byte = 7
)

func regLow3(r uint8) byte { return byte(r & 0x7) }
func regExt(r uint8) bool  { return r >= 8 }

// emitMovRegImm64 emits `mov reg, imm64` (opcode B8+rd, REX.W).
func emitMovRegImm64(w *JITWriter, reg uint8, imm uint64) {
	rex := byte(0x48)
	if regExt(reg) {
		rex |= 0x01 // REX.B extends the opcode-encoded register
	}
	w.emitByte(rex)
	w.emitByte(0xB8 | regLow3(reg))
	w.emitU64(imm)
}

// emitMovRegImm32 emits `mov reg, imm32` (opcode 0xC7 /0, sign-extended,
// REX.W).
func emitMovRegImm32(w *JITWriter, reg uint8, imm32 uint32) {
	rex := byte(0x48)
	if regExt(reg) {
		rex |= 0x01
	}
	w.emitByte(rex)
	w.emitByte(0xC7)
	w.emitByte(0xC0 | regLow3(reg))
	w.emitU32(imm32)
}

// emitMovRegReg emits `mov dst, src` (opcode 0x89 /r, REX.W).
func emitMovRegReg(w *JITWriter, dst, src uint8) {
	rex := byte(0x48)
	if regExt(src) {
		rex |= 0x04 // REX.R extends the reg field (source here)
	}
	if regExt(dst) {
		rex |= 0x01 // REX.B extends the rm field (destination here)
	}
	w.emitByte(rex)
	w.emitByte(0x89)
	w.emitByte(0xC0 | (regLow3(src) << 3) | regLow3(dst))
}

// emitAluRegImm32 emits `add/sub reg, imm32` (opcode 0x81 /ext, REX.W).
func emitAluRegImm32(w *JITWriter, reg uint8, imm32 uint32, ext byte) {
	rex := byte(0x48)
	if regExt(reg) {
		rex |= 0x01
	}
	w.emitByte(rex)
	w.emitByte(0x81)
	w.emitByte(0xC0 | (ext << 3) | regLow3(reg))
	w.emitU32(imm32)
}

// emitMemByteImm8 emits `<op> byte [reg+0], imm8` for RCur with disp8=0 —
// the exact `0(%r13)` addressing mode original_source/src/simple_jit.rs
// uses for every cell read/write/compare. opcode selects the instruction
// (0x80 for ADD/SUB/CMP group, 0xC6 for MOV), ext selects which member of
// that group.
func emitMemByteImm8(w *JITWriter, opcode byte, ext byte, imm8 byte) {
	w.emitByte(0x41) // REX.B: RCur (R13) extends the rm/base field
	w.emitByte(opcode)
	w.emitByte(0x40 | (ext << 3) | regLow3(RCur)) // mod=01 (disp8)
	w.emitByte(0x00)                              // disp8 = 0
	w.emitByte(imm8)
}

// emitCmpCellZero emits `cmpb $0, 0(%r13)`.
func emitCmpCellZero(w *JITWriter) {
	emitMemByteImm8(w, 0x80, aluCmp, 0x00)
}

// emitSyscallIO emits a one-byte read or write syscall against the cell
// under RCur: mov rax,{0,1}; mov rdi,{0,1}; mov rsi,r13; mov rdx,1;
// syscall. Grounded on simple_jit.rs's '.' / ',' emission.
func emitSyscallIO(w *JITWriter, isWrite bool) {
	if isWrite {
		emitMovRegImm32(w, RAX, 1)
		emitMovRegImm32(w, RDI, 1)
	} else {
		emitMovRegImm32(w, RAX, 0)
		emitMovRegImm32(w, RDI, 0)
	}
	emitMovRegReg(w, RSI, RCur)
	emitMovRegImm32(w, RDX, 1)
	w.emitBytes(0x0F, 0x05)
}

// emitJcc0F emits a near conditional jump (0x0F, cc) with a rel32 fixup
// against labelID.
func emitJcc0F(w *JITWriter, cc byte, labelID uint8) {
	w.emitBytes(0x0F, cc)
	w.AddFixup(labelID, 4, true)
	w.emitU32(0)
}

// emitJmpRel32 emits an unconditional near jump (0xE9) with a rel32 fixup
// against labelID.
func emitJmpRel32(w *JITWriter, labelID uint8) {
	w.emitByte(0xE9)
	w.AddFixup(labelID, 4, true)
	w.emitU32(0)
}

const (
	jccZ  byte = 0x84 // jz/je
	jccNZ byte = 0x85 // jnz/jne
)
