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
	"fmt"
	"io"
	"os"
	"unsafe"

	"github.com/launix-de/go-mysqlstack/xlog"
)

// Engine names accepted by Run (spec.md §6's external interface).
const (
	EngineInterpret         = "interpret"
	EngineBytecodeInterpret = "bytecode_interpret"
	EngineNativeJIT         = "native_jit"
	EngineIRJIT             = "ir_jit"
)

// IRBackend is implemented by the irjit subpackage. engine.go depends on
// this narrow interface rather than importing irjit directly, so the core
// package never pulls in llir/llvm or shells out to a subprocess unless
// the ir_jit engine is actually selected.
type IRBackend interface {
	Run(ops []Opcode, in io.Reader, out io.Writer, log *xlog.Log) error
}

// Run lexes, lowers, optimizes and dispatches src to the named engine. log
// receives tracing for engine selection and, for native_jit/ir_jit,
// allocation/teardown and subprocess diagnostics (§8.3).
func Run(engine string, src []byte, in io.Reader, out io.Writer, log *xlog.Log, backend IRBackend) error {
	toks := Lex(src)
	switch engine {
	case EngineInterpret:
		jumps, err := ResolveTokenJumps(toks)
		if err != nil {
			return err
		}
		log.Info(fmt.Sprintf("interpret: running %d tokens", len(toks)))
		return Interpret(toks, jumps, in, out)

	case EngineBytecodeInterpret:
		prog, err := compile(toks)
		if err != nil {
			return err
		}
		log.Info(fmt.Sprintf("bytecode_interpret: running %d opcodes", len(prog.Ops)))
		return InterpretBytecode(prog.Ops, prog.Jumps, in, out)

	case EngineNativeJIT:
		prog, err := compile(toks)
		if err != nil {
			return err
		}
		return runNative(prog.Ops, log)

	case EngineIRJIT:
		if backend == nil {
			return fmt.Errorf("tape: ir_jit engine requires an IRBackend")
		}
		prog, err := compile(toks)
		if err != nil {
			return err
		}
		log.Info("ir_jit: delegating to external IR backend")
		return backend.Run(prog.Ops, in, out, log)

	default:
		return fmt.Errorf("tape: unknown engine %q", engine)
	}
}

// compile runs the shared lower+optimize+resolve stages (spec.md §2 items
// 2-4) used by every engine except the tree-walk interpreter.
func compile(toks []Token) (*Program, error) {
	ops := Optimize(Lower(toks))
	jumps, err := ResolveJumps(ops)
	if err != nil {
		return nil, err
	}
	return &Program{Ops: ops, Jumps: jumps}, nil
}

// runNative builds and runs a program through the direct x86-64 emitter.
// The generated code performs I/O via host syscalls against fd 0/1 directly
// (spec.md §4.6), bypassing the Go-level io.Reader/io.Writer the other
// three engines use — unlike them, it only behaves as the caller expects
// when the process's real stdin/stdout are the intended channels.
func runNative(ops []Opcode, log *xlog.Log) error {
	tape := make([]byte, TapeSize)
	w, err := buildNative(ops, uintptr(unsafe.Pointer(&tape[0])))
	if err != nil {
		return err
	}
	log.Info(fmt.Sprintf("native_jit: emitted %d bytes of machine code", len(w.Code)))
	prog, err := buildJitProgram(w.Code, tape)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := prog.Close(); cerr != nil {
			log.Info(fmt.Sprintf("native_jit: failed to release executable page: %v", cerr))
		}
	}()
	prog.Run()
	// The generated code never emits the trailing newline spec.md §4.5
	// mandates on normal termination, since it has no opcode for it; the
	// host writes it directly to fd 1 after the call returns, same as
	// original_source/src/simple_jit.rs's println!("") right after jit_fn().
	_, err = os.Stdout.WriteString("\n")
	return err
}
