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
	"unsafe"

	"golang.org/x/sys/unix"
)

// JitProgram owns one executable mapping produced by the native emitter.
// Pages are exclusively owned by the JitProgram that created them (spec.md
// §5) and must be released via Close once the program has run. Grounded
// on scm/jit.go's execBuf/allocExec/makeRX (mmap RW, copy, mprotect RX)
// and on original_source/src/jit_utils.rs's JitProgram, whose Drop impl
// calls munmap — Go has no destructors, so Close is explicit here.
type JitProgram struct {
	page []byte
	tape []byte
	run  runFunc
}

// buildJitProgram copies code into a fresh RW mapping, flips it to RX, and
// wraps its entry point as a callable Go value.
func buildJitProgram(code []byte, tape []byte) (*JitProgram, error) {
	page, err := allocExec(len(code))
	if err != nil {
		return nil, &ErrPageAllocationFailure{Cause: err}
	}
	copy(page, code)
	if err := unix.Mprotect(page, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		unix.Munmap(page)
		return nil, &ErrPageAllocationFailure{Cause: err}
	}
	return &JitProgram{page: page, tape: tape, run: makeCallable(&page[0])}, nil
}

// allocExec reserves a page-rounded anonymous RW mapping, matching
// scm/jit.go's allocExec.
func allocExec(size int) ([]byte, error) {
	pagesize := unix.Getpagesize()
	n := (size + pagesize - 1) &^ (pagesize - 1)
	return unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

// runFunc is the calling convention of every program the native emitter
// produces: no arguments, no return value. The program operates on the
// tape address baked into the code at build time and performs I/O via
// direct syscalls against fd 0/1 (spec.md §4.6) rather than through any
// Go-level io.Reader/io.Writer.
type runFunc func()

// makeCallable reinterprets a pointer into an executable mapping as a
// callable Go function value — the same struct-literal trick
// scm/jit.go's OptimizeForValues uses to turn a raw code pointer into a
// `func(...Scmer) Scmer`: a Go func value is itself a pointer to a
// closure record whose first word is the code pointer.
func makeCallable(codePtr *byte) runFunc {
	fn := unsafe.Pointer(&struct{ *byte }{codePtr})
	return *(*runFunc)(unsafe.Pointer(&fn))
}

// Run invokes the compiled program once. The generated code assumes the
// tape starts zeroed, so a JitProgram must not be run twice.
func (p *JitProgram) Run() {
	p.run()
}

// Close releases the executable mapping. Safe to call once, after Run.
func (p *JitProgram) Close() error {
	if p.page == nil {
		return nil
	}
	err := unix.Munmap(p.page)
	p.page = nil
	return err
}
