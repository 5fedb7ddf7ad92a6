/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package output provides shared output utilities for heft CLI commands.
package output

import (
	"bytes"
	"io"
	"os"

	"bennypowers.dev/heft/fs"
	"bennypowers.dev/heft/internal/logging"
)

// Render writes render's output to path when set, otherwise to stdout.
// File output is rendered in full before anything is written, so a failed
// render never leaves a truncated report behind.
func Render(fsys fs.FileSystem, path string, stdout io.Writer, render func(io.Writer) error) error {
	if path == "" {
		return render(stdout)
	}
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	return fs.WriteFileAll(fsys, path, buf.Bytes(), 0644)
}

// Color reports whether output should be colored: never for files or when
// disabled, otherwise only when stdout is a terminal.
func Color(path string, noColor bool, stdout io.Writer) bool {
	if path != "" || noColor {
		return false
	}
	f, ok := stdout.(*os.File)
	return ok && logging.IsTerminal(f)
}
