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

// Package report renders snapshots and history for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"bennypowers.dev/heft/config"
	"bennypowers.dev/heft/reconcile"
	"bennypowers.dev/heft/snapshot"
)

// Options controls rendering.
type Options struct {
	// Format is one of config.FormatText, config.FormatTable or
	// config.FormatJSON. Empty means text.
	Format string
	// ColumnWidth pads filenames in text output.
	ColumnWidth int
	// Color enables ANSI colors for diffs.
	Color bool
}

// Write renders one snapshot.
func Write(w io.Writer, snap snapshot.Snapshot, opts Options) error {
	switch opts.Format {
	case config.FormatJSON:
		return writeJSON(w, jsonReport{Snapshot: normalize(snap), Summary: reconcile.Summarize(snap.Files)})
	case config.FormatTable:
		return writeTable(w, snap, opts)
	case config.FormatText, "":
		return writeText(w, snap, opts)
	default:
		return fmt.Errorf("%w: unknown report format %q", config.ErrInvalid, opts.Format)
	}
}

type jsonReport struct {
	snapshot.Snapshot
	Summary reconcile.Summary `json:"summary"`
}

type palette struct {
	red, green, yellow func(...any) string
}

func newPalette(enabled bool) palette {
	if !enabled {
		return palette{red: fmt.Sprint, green: fmt.Sprint, yellow: fmt.Sprint}
	}
	return palette{
		red:    color.New(color.FgRed).SprintFunc(),
		green:  color.New(color.FgGreen).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
	}
}

// diff renders a signed byte count. Growth is bad news, so it is red.
func (p palette) diff(n int) string {
	switch {
	case n > 0:
		return p.red("+" + Bytes(n))
	case n < 0:
		return p.green("-" + Bytes(-n))
	default:
		return p.yellow("±" + Bytes(0))
	}
}

// Bytes formats a size in SI units: 1200 is "1.2 kB".
func Bytes(n int) string {
	if n < 0 {
		return "-" + humanize.Bytes(uint64(-n))
	}
	return humanize.Bytes(uint64(n))
}

func writeText(w io.Writer, snap snapshot.Snapshot, opts Options) error {
	p := newPalette(opts.Color)
	width := opts.ColumnWidth
	for _, f := range snap.Files {
		if _, err := fmt.Fprintf(w, "%-*s %9s  %s\n", width, f.Filename, Bytes(f.Size), p.diff(f.Diff)); err != nil {
			return err
		}
	}

	s := reconcile.Summarize(snap.Files)
	_, err := fmt.Fprintf(w, "%-*s %9s  %s  (%s)\n", width, "total", Bytes(s.Size), p.diff(s.Diff), counts(s))
	return err
}

// counts describes a summary, leaving out empty categories.
func counts(s reconcile.Summary) string {
	files := "files"
	if s.Files == 1 {
		files = "file"
	}
	var parts []string
	for _, c := range []struct {
		n     int
		label string
	}{
		{s.Added, "added"},
		{s.Removed, "removed"},
		{s.Grown, "grown"},
		{s.Shrunk, "shrunk"},
		{s.Unchanged, "unchanged"},
	} {
		if c.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.n, c.label))
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%d %s", s.Files, files)
	}
	return fmt.Sprintf("%d %s: %s", s.Files, files, strings.Join(parts, ", "))
}

func writeTable(w io.Writer, snap snapshot.Snapshot, opts Options) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"File", "Before", "After", "Diff"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	p := newPalette(opts.Color)
	data := make([][]string, 0, len(snap.Files))
	for _, f := range snap.Files {
		data = append(data, []string{f.Filename, Bytes(f.Previous), Bytes(f.Size), p.diff(f.Diff)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}

	s := reconcile.Summarize(snap.Files)
	table.Footer([]string{"Total", Bytes(s.Previous), Bytes(s.Size), p.diff(s.Diff)})
	return table.Render()
}

// WriteHistory renders the newest limit snapshots, newest first. A limit
// of zero or less renders them all.
func WriteHistory(w io.Writer, h snapshot.History, limit int, opts Options) error {
	sorted := h.Sorted()
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	switch opts.Format {
	case config.FormatJSON:
		out := make(snapshot.History, len(sorted))
		for i, snap := range sorted {
			out[i] = normalize(snap)
		}
		return writeJSON(w, out)
	case config.FormatTable:
		return writeHistoryTable(w, sorted, opts)
	case config.FormatText, "":
		return writeHistoryText(w, sorted, opts)
	default:
		return fmt.Errorf("%w: unknown report format %q", config.ErrInvalid, opts.Format)
	}
}

func historyRow(snap snapshot.Snapshot, p palette) []string {
	s := reconcile.Summarize(snap.Files)
	return []string{
		Timestamp(snap.Timestamp),
		snap.CompressionType + ":" + strconv.Itoa(snap.CompressionLevel),
		strconv.Itoa(s.Files),
		Bytes(s.Size),
		p.diff(s.Diff),
	}
}

func writeHistoryText(w io.Writer, h snapshot.History, opts Options) error {
	if len(h) == 0 {
		_, err := fmt.Fprintln(w, "no history")
		return err
	}
	p := newPalette(opts.Color)
	for _, snap := range h {
		row := historyRow(snap, p)
		if _, err := fmt.Fprintf(w, "%s  %-9s %4s files %9s  %s\n", row[0], row[1], row[2], row[3], row[4]); err != nil {
			return err
		}
	}
	return nil
}

func writeHistoryTable(w io.Writer, h snapshot.History, opts Options) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Time", "Compression", "Files", "Size", "Diff"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	p := newPalette(opts.Color)
	data := make([][]string, 0, len(h))
	for _, snap := range h {
		data = append(data, historyRow(snap, p))
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// Timestamp formats a snapshot timestamp in UTC.
func Timestamp(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

// normalize makes a snapshot with no files encode as [] rather than null.
func normalize(snap snapshot.Snapshot) snapshot.Snapshot {
	if snap.Files == nil {
		snap.Files = []snapshot.FileDelta{}
	}
	return snap
}

func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
