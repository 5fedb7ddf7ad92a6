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

// Package compress measures the compressed size of build artifacts.
//
// Sizes are what a browser would download: the byte length of the artifact
// after transfer compression. The measurement is a pure function of the input
// bytes, the algorithm, and its level.
package compress

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnsupported is returned when an algorithm is not available in this build.
var ErrUnsupported = errors.New("compression algorithm unavailable")

// Mode names a transfer compression algorithm.
type Mode string

const (
	// None measures raw byte length.
	None Mode = "none"
	// Gzip measures deflate-family output.
	Gzip Mode = "gzip"
	// Brotli measures brotli output.
	Brotli Mode = "brotli"
	// Zstd measures zstandard output.
	Zstd Mode = "zstd"
)

// Modes lists every mode heft knows about, available or not.
var Modes = []Mode{None, Gzip, Brotli, Zstd}

// compressor returns the compressed length of data at level.
type compressor func(data []byte, level int) (int, error)

var (
	registryMu sync.RWMutex
	registry   = map[Mode]compressor{}
)

// register makes an algorithm available. Called from init in the
// per-algorithm files so build tags can leave one out.
func register(mode Mode, fn compressor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[mode] = fn
}

func lookup(mode Mode) (compressor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := registry[mode]
	return fn, ok
}

// ParseMode parses a mode name. Unknown names are an error; known but
// unavailable modes parse successfully and fail in Measure.
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown compression %q: must be one of none, gzip, brotli, zstd", name)
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}

// LevelRange reports the inclusive range of levels the mode accepts.
// For None any level is accepted and ok is false.
func (m Mode) LevelRange() (lo, hi int, ok bool) {
	switch m {
	case Gzip:
		return 1, 9, true
	case Brotli:
		return 1, 11, true
	case Zstd:
		return 1, 22, true
	default:
		return 0, 0, false
	}
}

// ValidLevel reports whether level is within the mode's range.
func (m Mode) ValidLevel(level int) bool {
	lo, hi, ok := m.LevelRange()
	if !ok {
		return true
	}
	return level >= lo && level <= hi
}

// Available reports whether the mode can be measured in this build.
func Available(mode Mode) bool {
	if mode == None {
		return true
	}
	_, ok := lookup(mode)
	return ok
}

// Measure returns the size in bytes of data after compression with mode at
// level. For None it returns len(data).
func Measure(data []byte, mode Mode, level int) (int, error) {
	if mode == None {
		return len(data), nil
	}
	fn, ok := lookup(mode)
	if !ok {
		return 0, fmt.Errorf("%s: %w", mode, ErrUnsupported)
	}
	if !mode.ValidLevel(level) {
		lo, hi, _ := mode.LevelRange()
		return 0, fmt.Errorf("%s level %d out of range %d-%d", mode, level, lo, hi)
	}
	return fn(data, level)
}

// Measurer fixes the mode and level for a run.
type Measurer struct {
	Mode  Mode
	Level int
}

// Measure returns the compressed size of data.
func (m Measurer) Measure(data []byte) (int, error) {
	return Measure(data, m.Mode, m.Level)
}
