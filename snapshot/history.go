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

package snapshot

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/tidwall/jsonc"
)

// History is a sequence of snapshots, newest first.
type History []Snapshot

// Latest returns the most recent snapshot. The history is sorted by
// timestamp first rather than trusting file order, since history files
// are sometimes edited by hand.
func (h History) Latest() (Snapshot, bool) {
	if len(h) == 0 {
		return Snapshot{}, false
	}
	return h.Sorted()[0], true
}

// Sorted returns a copy ordered by timestamp, newest first. Equal
// timestamps keep their stored order.
func (h History) Sorted() History {
	sorted := slices.Clone(h)
	slices.SortStableFunc(sorted, func(a, b Snapshot) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
	return sorted
}

// Prepend returns a new history with s in front.
func (h History) Prepend(s Snapshot) History {
	out := make(History, 0, len(h)+1)
	out = append(out, s)
	return append(out, h...)
}

// DecodeHistory parses a history file. Comments and trailing commas are
// tolerated. An empty or whitespace-only file is an empty history.
func DecodeHistory(data []byte) (History, error) {
	stripped := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(stripped)) == 0 {
		return History{}, nil
	}
	var h History
	if err := json.Unmarshal(stripped, &h); err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}
	if h == nil {
		h = History{}
	}
	return h, nil
}

// EncodeHistory renders the history as indented JSON with a trailing newline.
func EncodeHistory(h History) ([]byte, error) {
	out := make(History, len(h))
	copy(out, h)
	for i := range out {
		if out[i].Files == nil {
			out[i].Files = []FileDelta{}
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding history: %w", err)
	}
	return append(data, '\n'), nil
}
