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

// Package logging builds heft's structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// New creates a logger on stderr. When stderr is a terminal it uses
// slog.TextHandler for people; when piped (CI, scripts) it uses
// slog.JSONHandler so build logs stay machine-parseable. verbose lowers
// the level to Debug, which is where recovered read and parse errors go.
func New(verbose bool) *slog.Logger {
	return NewWithWriter(os.Stderr, IsTerminal(os.Stderr), verbose)
}

// NewWithWriter creates a logger on w, choosing the handler by text.
func NewWithWriter(w io.Writer, text, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
