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

// Package reconcile merges the sizes before and after a build into per-file
// deltas.
package reconcile

import (
	"bennypowers.dev/heft/snapshot"
)

// Reconcile returns one FileDelta per filename in either map. Filenames
// from before come first in their order, followed by filenames only in
// after. A filename missing from a map counts as size 0.
func Reconcile(before, after *snapshot.SizeMap) []snapshot.FileDelta {
	seen := make(map[string]struct{}, before.Len()+after.Len())
	deltas := make([]snapshot.FileDelta, 0, before.Len()+after.Len())

	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		deltas = append(deltas, snapshot.NewFileDelta(name, before.Get(name), after.Get(name)))
	}
	for _, name := range before.Names() {
		add(name)
	}
	for _, name := range after.Names() {
		add(name)
	}
	return deltas
}

// Summary totals a set of deltas.
type Summary struct {
	Files     int `json:"files"`
	Size      int `json:"size"`
	Previous  int `json:"previous"`
	Diff      int `json:"diff"`
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Grown     int `json:"grown"`
	Shrunk    int `json:"shrunk"`
	Unchanged int `json:"unchanged"`
}

// Summarize totals deltas. A file is added when it had no previous size and
// removed when it has no current size.
func Summarize(deltas []snapshot.FileDelta) Summary {
	var s Summary
	for _, d := range deltas {
		s.Files++
		s.Size += d.Size
		s.Previous += d.Previous
		s.Diff += d.Diff
		switch {
		case d.Previous == 0 && d.Size > 0:
			s.Added++
		case d.Size == 0 && d.Previous > 0:
			s.Removed++
		case d.Diff > 0:
			s.Grown++
		case d.Diff < 0:
			s.Shrunk++
		default:
			s.Unchanged++
		}
	}
	return s
}
