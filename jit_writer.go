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
	"encoding/binary"
	"math"
)

// jitFixup records a not-yet-known displacement that must be patched once
// its target label is placed.
type jitFixup struct {
	codePos  int32
	labelID  uint8
	size     uint8
	relative bool
}

// JITWriter is the platform-independent machine-code buffer with a
// label/fixup scaffold for forward and backward branches. Grounded on
// scm/jit_writer.go's JITWriter (Ptr/Labels/Fixups/DefineLabel/
// ReserveLabel/MarkLabel/AddFixup/ResolveFixups). Unlike the teacher's
// variant, which writes through an unsafe.Pointer directly into an
// already-mmap'd RW page, this writer accumulates into an ordinary
// growable byte slice; the result is copied into an executable mapping
// only once in jit_program.go, after emission completes, keeping every
// write here bounds-checked.
type JITWriter struct {
	Code []byte

	labels    [64]int32
	nextLabel uint8

	fixups    [256]jitFixup
	nextFixup uint8
}

// NewJITWriter returns an empty writer ready for emission.
func NewJITWriter() *JITWriter {
	return &JITWriter{Code: make([]byte, 0, 4096)}
}

// Pos returns the current write offset.
func (w *JITWriter) Pos() int32 { return int32(len(w.Code)) }

// DefineLabel marks the current position as a label's target.
func (w *JITWriter) DefineLabel() uint8 {
	id := w.nextLabel
	w.nextLabel++
	w.labels[id] = w.Pos()
	return id
}

// ReserveLabel allocates a label ID whose target is not yet known; call
// MarkLabel once the target position is reached.
func (w *JITWriter) ReserveLabel() uint8 {
	id := w.nextLabel
	w.nextLabel++
	w.labels[id] = -1
	return id
}

// MarkLabel sets a reserved label's target to the current position.
func (w *JITWriter) MarkLabel(id uint8) {
	w.labels[id] = w.Pos()
}

// AddFixup records that the size bytes at the current position must be
// patched, once labelID's target is known, with either its absolute
// position or (if relative) its rel32 displacement from the end of the
// patched field.
func (w *JITWriter) AddFixup(labelID uint8, size uint8, relative bool) {
	w.fixups[w.nextFixup] = jitFixup{codePos: w.Pos(), labelID: labelID, size: size, relative: relative}
	w.nextFixup++
}

func (w *JITWriter) emitByte(b byte)      { w.Code = append(w.Code, b) }
func (w *JITWriter) emitBytes(bs ...byte) { w.Code = append(w.Code, bs...) }

func (w *JITWriter) emitU32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.Code = append(w.Code, buf[:]...)
}

func (w *JITWriter) emitU64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	w.Code = append(w.Code, buf[:]...)
}

// ResolveFixups patches every recorded reference once all labels have been
// placed. Panics on an undefined label: an internal emitter invariant
// violation, never a guest-facing condition.
func (w *JITWriter) ResolveFixups() {
	for i := uint8(0); i < w.nextFixup; i++ {
		f := w.fixups[i]
		target := w.labels[f.labelID]
		if target < 0 {
			panic("tape: jit: undefined label")
		}
		var patched int32
		if f.relative {
			patched = relOffset32(int(f.codePos)+int(f.size), int(target))
		} else {
			patched = target
		}
		binary.LittleEndian.PutUint32(w.Code[f.codePos:], uint32(patched))
	}
}

// relOffset32 computes the rel32 displacement for a jump or call whose
// encoded instruction ends at byte offset from and whose target is byte
// offset to (spec.md §4.6). Grounded on
// original_source/src/jit_utils.rs::compute_relative_32bit_offset; panics
// if the displacement does not fit in 32 bits, which spec.md §4.6 requires
// be rejected and which cannot happen for any program this pipeline itself
// generates (code buffers never approach the 2^31 byte range).
func relOffset32(from, to int) int32 {
	diff := int64(to) - int64(from)
	if diff > math.MaxInt32 || diff < math.MinInt32 {
		panic("tape: jit: relative displacement does not fit in 32 bits")
	}
	return int32(diff)
}
