//go:build !amd64

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

import "fmt"

// buildNative has no implementation outside amd64: the direct native
// emitter hand-encodes x86-64 machine code and spec.md explicitly scopes
// it to that one architecture. This stub lets engine.go and cmd/tapec
// compile unconditionally and fail at call time with a clear error,
// mirroring the role scm/jit_arm64.go plays for the teacher (a
// placeholder for an architecture with no emitter yet).
func buildNative(ops []Opcode, tapeBase uintptr) (*JITWriter, error) {
	return nil, fmt.Errorf("tape: native_jit engine requires amd64")
}
