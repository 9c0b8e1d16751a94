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

// Command tapec runs a tape-machine source file on one of four engines.
// This is the "external collaborator" spec.md §1 places out of scope for
// the core package; it exists here the way the teacher always ships a
// thin main.go wrapping its core package (main.go, go-impl/main.go).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	units "github.com/docker/go-units"
	"github.com/fsnotify/fsnotify"
	"github.com/launix-de/go-mysqlstack/xlog"

	tape "github.com/tapelang/tapec"
	"github.com/tapelang/tapec/irjit"
)

func main() {
	engine := flag.String("engine", tape.EngineBytecodeInterpret, "interpret | bytecode_interpret | native_jit | ir_jit")
	interactive := flag.Bool("i", false, "start an interactive REPL")
	watch := flag.Bool("watch", false, "re-run the source file whenever it changes on disk")
	verbose := flag.Bool("v", false, "print diagnostic sizing information")
	flag.Parse()

	log := tape.NewLogger()
	backend := irjit.New()

	if *interactive {
		runRepl(*engine, log, backend)
		return
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: tapec [-engine name] [-i] [-watch] [-v] <source-file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	run := func() {
		if err := runFile(path, *engine, *verbose, log, backend); err != nil {
			fmt.Fprintln(os.Stderr, "tapec:", err)
		}
	}
	run()

	if *watch {
		watchFile(path, run, log)
	}
}

func runFile(path, engine string, verbose bool, log *xlog.Log, backend *irjit.Backend) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "tapec: %s is %s\n", path, units.HumanSize(float64(len(src))))
	}
	return tape.Run(engine, src, os.Stdin, os.Stdout, log, backend)
}

// runRepl reads one program per line and runs it with the selected engine,
// handy for trying the four engines against small scenarios interactively.
// Grounded on scm/prompt.go's Repl.
func runRepl(engine string, log *xlog.Log, backend *irjit.Backend) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "tapec> ",
		HistoryFile:       ".tapec-history.tmp",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "tapec:", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "tapec:", err)
			return
		}
		if err := tape.Run(engine, []byte(line), os.Stdin, os.Stdout, log, backend); err != nil {
			fmt.Fprintln(os.Stderr, "tapec:", err)
		}
	}
}

// watchFile re-runs run whenever path changes on disk, a convenience for
// iterating on a source file rather than a debugger/stepping UI (spec.md
// §1's Non-goals, which remain out of scope).
func watchFile(path string, run func(), log *xlog.Log) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tapec:", err)
		return
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		fmt.Fprintln(os.Stderr, "tapec:", err)
		return
	}
	log.Info(fmt.Sprintf("watching %s for changes", path))
	for event := range watcher.Events {
		if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
			run()
		}
	}
}
