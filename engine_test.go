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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// runEngine is a small test harness around Run for the two portable
// engines; native_jit and ir_jit are exercised separately since they
// depend on the host architecture and an external LLVM toolchain
// respectively.
func runEngine(t *testing.T, engine, src string) string {
	t.Helper()
	var out bytes.Buffer
	log := NewLogger()
	err := Run(engine, []byte(src), strings.NewReader(""), &out, log, nil)
	assert.NoError(t, err)
	return out.String()
}

// TestScenariosAgreeAcrossPortableEngines exercises spec.md §8's
// inline scenarios on both engines that never require a platform-specific
// backend, confirming identical stdout.
func TestScenariosAgreeAcrossPortableEngines(t *testing.T) {
	scenarios := map[string]string{
		"++++++++[>++++++++<-]>+.": "A\n",
		"+.":                        "\x01\n",
		"[-]+.":                     "\x01\n",
	}
	for src, want := range scenarios {
		assert.Equal(t, want, runEngine(t, EngineInterpret, src), "interpret: %q", src)
		assert.Equal(t, want, runEngine(t, EngineBytecodeInterpret, src), "bytecode_interpret: %q", src)
	}
}

// TestTestdataCorpusAgreesAcrossPortableEngines runs every testdata/*.bf
// fixture (spec.md §9's supplemented sample-program corpus) on both
// portable engines and checks they produce identical stdout, the same
// "same stdout across all engines" property spec.md §8 states for the
// inline scenarios.
func TestTestdataCorpusAgreesAcrossPortableEngines(t *testing.T) {
	matches, err := filepath.Glob("testdata/*.bf")
	assert.NoError(t, err)
	assert.NotEmpty(t, matches)

	for _, path := range matches {
		src, err := os.ReadFile(path)
		assert.NoError(t, err)

		interpOut := runEngine(t, EngineInterpret, string(src))
		bytecodeOut := runEngine(t, EngineBytecodeInterpret, string(src))
		assert.Equal(t, interpOut, bytecodeOut, "engines diverged on %s", path)
	}
}

func TestRunRejectsUnknownEngine(t *testing.T) {
	var out bytes.Buffer
	log := NewLogger()
	err := Run("not_an_engine", []byte("+."), strings.NewReader(""), &out, log, nil)
	assert.Error(t, err)
}

func TestRunIRJITWithoutBackendFails(t *testing.T) {
	var out bytes.Buffer
	log := NewLogger()
	err := Run(EngineIRJIT, []byte("+."), strings.NewReader(""), &out, log, nil)
	assert.Error(t, err)
}
