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

// Package snapshot defines heft's size records and their on-disk format.
//
// A history file is a JSON array of snapshots, newest first:
//
//	[
//	  {
//	    "timestamp": 1700000000000,
//	    "compressionType": "gzip",
//	    "compressionLevel": 6,
//	    "files": [
//	      { "filename": "main.js", "previous": 1024, "size": 1100, "diff": 76 }
//	    ]
//	  }
//	]
package snapshot

import (
	"maps"
	"slices"
)

// SizeMap maps artifact filenames to compressed sizes. It remembers
// insertion order so anything derived from it is deterministic.
type SizeMap struct {
	names []string
	sizes map[string]int
}

// NewSizeMap returns an empty SizeMap.
func NewSizeMap() *SizeMap {
	return &SizeMap{sizes: make(map[string]int)}
}

// SizeMapOf builds a SizeMap from name/size pairs in argument order:
// SizeMapOf("a.js", 10, "b.js", 20). It panics on malformed input and is
// meant for tests and literals.
func SizeMapOf(pairs ...any) *SizeMap {
	if len(pairs)%2 != 0 {
		panic("snapshot: SizeMapOf needs name/size pairs")
	}
	m := NewSizeMap()
	for i := 0; i < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(int))
	}
	return m
}

// Set records the size for name. Setting an existing name keeps its position.
func (m *SizeMap) Set(name string, size int) {
	if m.sizes == nil {
		m.sizes = make(map[string]int)
	}
	if _, ok := m.sizes[name]; !ok {
		m.names = append(m.names, name)
	}
	m.sizes[name] = size
}

// Get returns the size for name, or 0 when absent.
func (m *SizeMap) Get(name string) int {
	if m == nil {
		return 0
	}
	return m.sizes[name]
}

// Has reports whether name has an entry.
func (m *SizeMap) Has(name string) bool {
	if m == nil {
		return false
	}
	_, ok := m.sizes[name]
	return ok
}

// Names returns the filenames in insertion order.
func (m *SizeMap) Names() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.names)
}

// Len returns the number of entries.
func (m *SizeMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Equal reports whether both maps hold the same sizes, ignoring order.
func (m *SizeMap) Equal(other *SizeMap) bool {
	var a, b map[string]int
	if m != nil {
		a = m.sizes
	}
	if other != nil {
		b = other.sizes
	}
	return maps.Equal(a, b)
}

// FileDelta is the before/after record for one file.
type FileDelta struct {
	Filename string `json:"filename"`
	Previous int    `json:"previous"`
	Size     int    `json:"size"`
	Diff     int    `json:"diff"`
}

// NewFileDelta computes Diff from previous and size.
func NewFileDelta(filename string, previous, size int) FileDelta {
	return FileDelta{Filename: filename, Previous: previous, Size: size, Diff: size - previous}
}

// Snapshot is one measurement event. Snapshots are values and are not
// modified once built.
type Snapshot struct {
	// Timestamp is milliseconds since the Unix epoch.
	Timestamp        int64       `json:"timestamp"`
	CompressionType  string      `json:"compressionType"`
	CompressionLevel int         `json:"compressionLevel"`
	Files            []FileDelta `json:"files"`
}

// Changed reports whether any file changed size.
func (s Snapshot) Changed() bool {
	for _, f := range s.Files {
		if f.Diff != 0 {
			return true
		}
	}
	return false
}

// SizeMap converts the snapshot's files to a SizeMap. Files whose size was
// zero are dropped: an empty artifact carries no history worth comparing.
func (s Snapshot) SizeMap() *SizeMap {
	m := NewSizeMap()
	for _, f := range s.Files {
		if f.Size == 0 {
			continue
		}
		m.Set(f.Filename, f.Size)
	}
	return m
}
