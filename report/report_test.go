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

package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"bennypowers.dev/heft/config"
	"bennypowers.dev/heft/report"
	"bennypowers.dev/heft/snapshot"
	"bennypowers.dev/heft/testutil"
)

var build = snapshot.Snapshot{
	Timestamp:        1700000000000,
	CompressionType:  "gzip",
	CompressionLevel: 6,
	Files: []snapshot.FileDelta{
		snapshot.NewFileDelta("a.js", 1000, 1200),
		snapshot.NewFileDelta("b.js", 0, 500),
		snapshot.NewFileDelta("c.js", 300, 0),
		snapshot.NewFileDelta("d.js", 50, 50),
	},
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Write(&buf, build, report.Options{Format: config.FormatText, ColumnWidth: 10}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	testutil.AssertGolden(t, "report/text.golden", buf.Bytes())
}

func TestWriteTextLongFilename(t *testing.T) {
	snap := snapshot.Snapshot{Files: []snapshot.FileDelta{snapshot.NewFileDelta("assets/vendor.js", 0, 20)}}
	var buf bytes.Buffer
	if err := report.Write(&buf, snap, report.Options{ColumnWidth: 4}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	first, _, _ := strings.Cut(buf.String(), "\n")
	if want := "assets/vendor.js      20 B  +20 B"; first != want {
		t.Errorf("Expected %q, got %q", want, first)
	}
	if !strings.Contains(buf.String(), "(1 file: 1 added)") {
		t.Errorf("Expected singular summary, got %q", buf.String())
	}
}

func TestWriteTextColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	saved := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = saved })

	var buf bytes.Buffer
	if err := report.Write(&buf, build, report.Options{ColumnWidth: 10, Color: true}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b[31m+200 B") {
		t.Errorf("Expected growth in red, got %q", out)
	}
	if !strings.Contains(out, "\x1b[32m-300 B") {
		t.Errorf("Expected shrink in green, got %q", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Write(&buf, build, report.Options{Format: config.FormatJSON}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got struct {
		snapshot.Snapshot
		Summary struct {
			Files   int `json:"files"`
			Diff    int `json:"diff"`
			Added   int `json:"added"`
			Removed int `json:"removed"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Invalid JSON: %v\n%s", err, buf.String())
	}
	if got.Timestamp != build.Timestamp || len(got.Files) != 4 {
		t.Errorf("Unexpected snapshot: %+v", got.Snapshot)
	}
	if got.Summary.Files != 4 || got.Summary.Diff != 400 || got.Summary.Added != 1 || got.Summary.Removed != 1 {
		t.Errorf("Unexpected summary: %+v", got.Summary)
	}
}

func TestWriteJSONEmptyFiles(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Write(&buf, snapshot.Snapshot{Timestamp: 1}, report.Options{Format: config.FormatJSON}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), `"files": []`) {
		t.Errorf("Expected empty files array, got %s", buf.String())
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Write(&buf, build, report.Options{Format: config.FormatTable}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"a.js", "b.js", "c.js", "d.js", "1.2 kB", "+200 B", "-300 B", "+400 B"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected table to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	err := report.Write(&bytes.Buffer{}, build, report.Options{Format: "yaml"})
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

func TestBytes(t *testing.T) {
	tests := map[int]string{
		0:       "0 B",
		9:       "9 B",
		500:     "500 B",
		1200:    "1.2 kB",
		-1200:   "-1.2 kB",
		2500000: "2.5 MB",
	}
	for n, want := range tests {
		if got := report.Bytes(n); got != want {
			t.Errorf("Bytes(%d): expected %q, got %q", n, want, got)
		}
	}
}

func history() snapshot.History {
	return snapshot.History{
		{Timestamp: 1700000000000, CompressionType: "gzip", CompressionLevel: 6, Files: []snapshot.FileDelta{
			snapshot.NewFileDelta("a.js", 0, 1000),
		}},
		{Timestamp: 1700000200000, CompressionType: "gzip", CompressionLevel: 6, Files: []snapshot.FileDelta{
			snapshot.NewFileDelta("a.js", 1100, 1200),
		}},
		{Timestamp: 1700000100000, CompressionType: "gzip", CompressionLevel: 6, Files: []snapshot.FileDelta{
			snapshot.NewFileDelta("a.js", 1000, 1100),
		}},
	}
}

func TestWriteHistoryText(t *testing.T) {
	var buf bytes.Buffer
	if err := report.WriteHistory(&buf, history(), 2, report.Options{}); err != nil {
		t.Fatalf("WriteHistory: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], report.Timestamp(1700000200000)) {
		t.Errorf("Expected newest snapshot first, got %q", lines[0])
	}
	if !strings.Contains(lines[0], "gzip:6") || !strings.Contains(lines[0], "+100 B") {
		t.Errorf("Unexpected line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], report.Timestamp(1700000100000)) {
		t.Errorf("Expected second newest snapshot next, got %q", lines[1])
	}
}

func TestWriteHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := report.WriteHistory(&buf, nil, 0, report.Options{}); err != nil {
		t.Fatalf("WriteHistory: %v", err)
	}
	if buf.String() != "no history\n" {
		t.Errorf("Expected %q, got %q", "no history\n", buf.String())
	}
}

func TestWriteHistoryJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := report.WriteHistory(&buf, history(), 0, report.Options{Format: config.FormatJSON}); err != nil {
		t.Fatalf("WriteHistory: %v", err)
	}
	h, err := snapshot.DecodeHistory(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeHistory: %v", err)
	}
	if len(h) != 3 || h[0].Timestamp != 1700000200000 || h[2].Timestamp != 1700000000000 {
		t.Errorf("Expected all snapshots newest first, got %+v", h)
	}
}

func TestWriteHistoryTable(t *testing.T) {
	var buf bytes.Buffer
	if err := report.WriteHistory(&buf, history(), 1, report.Options{Format: config.FormatTable}); err != nil {
		t.Fatalf("WriteHistory: %v", err)
	}
	if !strings.Contains(buf.String(), "2023-11-14T22:16:40Z") {
		t.Errorf("Expected newest timestamp in table, got:\n%s", buf.String())
	}
}

func TestTimestamp(t *testing.T) {
	if got := report.Timestamp(1700000000000); got != "2023-11-14T22:13:20Z" {
		t.Errorf("Expected 2023-11-14T22:13:20Z, got %s", got)
	}
}
