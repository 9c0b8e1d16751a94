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

import "github.com/launix-de/go-mysqlstack/xlog"

// NewLogger returns a structured logger at INFO level, the same
// construction scm/mysql.go uses for its session logging:
// xlog.NewStdLog(xlog.Level(xlog.INFO)).
func NewLogger() *xlog.Log {
	return xlog.NewStdLog(xlog.Level(xlog.INFO))
}
