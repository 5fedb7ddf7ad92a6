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

// Package store loads size baselines and persists size history.
//
// The store never fails a build because history is missing or damaged: an
// unreadable or unparseable history file reads as no history, and the
// baseline is measured from the output directory instead.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"bennypowers.dev/heft/compress"
	"bennypowers.dev/heft/config"
	heftfs "bennypowers.dev/heft/fs"
	"bennypowers.dev/heft/measure"
	"bennypowers.dev/heft/selector"
	"bennypowers.dev/heft/snapshot"
)

// HistoryStatus says how a history read went.
type HistoryStatus int

const (
	// HistoryLoaded means the file was read and parsed.
	HistoryLoaded HistoryStatus = iota
	// HistoryNotFound means the file does not exist or could not be read.
	HistoryNotFound
	// HistoryParseError means the file was read but is not valid history.
	HistoryParseError
)

// String implements fmt.Stringer.
func (s HistoryStatus) String() string {
	switch s {
	case HistoryLoaded:
		return "loaded"
	case HistoryNotFound:
		return "not found"
	case HistoryParseError:
		return "parse error"
	default:
		return fmt.Sprintf("HistoryStatus(%d)", int(s))
	}
}

// HistoryResult is the outcome of reading the history file. History is
// never nil; it is empty unless Status is HistoryLoaded.
type HistoryResult struct {
	Status  HistoryStatus
	History snapshot.History
	// Err is the cause for HistoryNotFound and HistoryParseError.
	Err error
}

// OK reports whether the history was loaded.
func (r HistoryResult) OK() bool {
	return r.Status == HistoryLoaded
}

// Store reads and writes one history file.
type Store struct {
	fs     heftfs.FileSystem
	opts   config.Options
	root   string
	logger *slog.Logger
}

// New creates a store for opts. A relative opts.Filename is resolved
// against root, the project directory.
func New(fsys heftfs.FileSystem, opts config.Options, root string) *Store {
	return &Store{
		fs:     fsys,
		opts:   opts,
		root:   root,
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithLogger returns a copy of the store that logs to logger.
func (s *Store) WithLogger(logger *slog.Logger) *Store {
	clone := *s
	clone.logger = logger
	return &clone
}

// Path returns the location of the history file.
func (s *Store) Path() string {
	if filepath.IsAbs(s.opts.Filename) {
		return s.opts.Filename
	}
	return filepath.Join(s.root, s.opts.Filename)
}

// ReadHistory reads and parses the history file.
func (s *Store) ReadHistory() HistoryResult {
	path := s.Path()
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return HistoryResult{Status: HistoryNotFound, History: snapshot.History{}, Err: err}
	}
	h, err := snapshot.DecodeHistory(data)
	if err != nil {
		return HistoryResult{Status: HistoryParseError, History: snapshot.History{}, Err: err}
	}
	return HistoryResult{Status: HistoryLoaded, History: h}
}

// LoadBaseline returns the sizes to compare the next build against: the
// newest snapshot in history when persistence is enabled and history is
// usable, otherwise a fresh measurement of outputDir.
func (s *Store) LoadBaseline(ctx context.Context, outputDir string) (*snapshot.SizeMap, error) {
	if s.opts.WriteFile {
		result := s.ReadHistory()
		switch {
		case result.OK():
			if latest, ok := result.History.Latest(); ok {
				s.logger.Debug("baseline from history", "file", s.Path(), "timestamp", latest.Timestamp)
				return latest.SizeMap(), nil
			}
			s.logger.Debug("history is empty, scanning output", "file", s.Path())
		case result.Status == HistoryParseError:
			s.logger.Debug("ignoring unparseable history", "file", s.Path(), "error", result.Err)
		default:
			s.logger.Debug("no history", "file", s.Path(), "error", result.Err)
		}
	}
	return s.Scan(ctx, outputDir)
}

// Scan measures every file in outputDir matching the configured patterns.
// A missing directory is an empty baseline, and files that cannot be read
// are left out.
func (s *Store) Scan(ctx context.Context, outputDir string) (*snapshot.SizeMap, error) {
	var inputs []measure.Input
	err := heftfs.WalkFiles(s.fs, outputDir, func(rel, full string) error {
		ok, err := selector.Match(rel, s.opts.Pattern, s.opts.Exclude)
		if err != nil {
			return err
		}
		if ok {
			inputs = append(inputs, measure.Input{
				Name: rel,
				Read: func() ([]byte, error) { return s.fs.ReadFile(full) },
			})
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("output directory does not exist", "dir", outputDir)
		return snapshot.NewSizeMap(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", outputDir, err)
	}
	return measure.Sizes(ctx, s.measurer(), inputs, s.opts.Jobs, s.logger)
}

// Persist prepends snap to the history file. It writes nothing when no file
// changed size or when writing is disabled, and reports whether it wrote.
func (s *Store) Persist(snap snapshot.Snapshot) (bool, error) {
	if !snap.Changed() {
		s.logger.Debug("no size changes, history left as is", "file", s.Path())
		return false, nil
	}
	if !s.opts.WriteFile {
		return false, nil
	}

	history := s.ReadHistory().History.Prepend(snap)
	data, err := snapshot.EncodeHistory(history)
	if err != nil {
		return false, err
	}
	if err := heftfs.WriteFileAll(s.fs, s.Path(), data, 0644); err != nil {
		return false, fmt.Errorf("writing history %s: %w", s.Path(), err)
	}
	s.logger.Debug("history written", "file", s.Path(), "snapshots", len(history))
	return true, nil
}

func (s *Store) measurer() compress.Measurer {
	return compress.Measurer{Mode: s.opts.Compression, Level: s.opts.CompressionLevel}
}
