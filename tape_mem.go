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

// TapeSize is the fixed size of the guest memory tape (spec.md §3, §6).
const TapeSize = 30000

// Memory is the fixed-size linear tape plus its data cursor, owned
// exclusively by a single execution and discarded when it completes.
type Memory struct {
	Cells  [TapeSize]byte
	Cursor int
}

// Advance shifts the cursor by n (n may be negative). Underflow saturates
// at 0 per spec.md §3's invariant, matching original_source/src/bf.rs's
// `data_counter -= 1.min(data_counter)` clamp.
func (m *Memory) Advance(n int) {
	m.Cursor += n
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// Cell returns the byte under the cursor.
func (m *Memory) Cell() byte {
	return m.Cells[m.Cursor]
}

// SetCell writes the byte under the cursor.
func (m *Memory) SetCell(v byte) {
	m.Cells[m.Cursor] = v
}

// AddCell adds n (mod 256, via byte wraparound) to the cell under the
// cursor.
func (m *Memory) AddCell(n int) {
	m.Cells[m.Cursor] = byte(int(m.Cells[m.Cursor]) + n)
}
