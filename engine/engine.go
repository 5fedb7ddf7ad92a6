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

// Package engine runs heft's per-build lifecycle.
//
// A build is bracketed by two calls. BeginBuild measures the baseline before
// the build tool overwrites the output directory. FinishBuild measures what
// the build emitted, reconciles it with the baseline, and persists a new
// snapshot when something changed.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bennypowers.dev/heft/artifact"
	"bennypowers.dev/heft/compress"
	"bennypowers.dev/heft/config"
	heftfs "bennypowers.dev/heft/fs"
	"bennypowers.dev/heft/measure"
	"bennypowers.dev/heft/reconcile"
	"bennypowers.dev/heft/selector"
	"bennypowers.dev/heft/snapshot"
	"bennypowers.dev/heft/store"
)

// ErrNotStarted is returned by FinishBuild when BeginBuild has not run.
var ErrNotStarted = errors.New("build not started")

// Result is the outcome of one build.
type Result struct {
	Snapshot snapshot.Snapshot
	// Written reports whether the history file was updated.
	Written     bool
	HistoryPath string
	// SingleChunk reports whether the build emitted exactly one artifact and
	// the include pattern was narrowed to it.
	SingleChunk bool
}

// Engine tracks one build at a time. It is not safe for concurrent use.
type Engine struct {
	opts   config.Options
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time

	started       bool
	baseline      *snapshot.SizeMap
	isSingleChunk bool
}

// New creates an engine. root is the project directory that a relative
// history filename is resolved against.
func New(fsys heftfs.FileSystem, opts config.Options, root string) *Engine {
	return &Engine{
		opts:   opts,
		store:  store.New(fsys, opts, root),
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
}

// WithLogger sets the logger for the engine and its store.
func (e *Engine) WithLogger(logger *slog.Logger) *Engine {
	e.logger = logger
	e.store = e.store.WithLogger(logger)
	return e
}

// WithClock replaces the clock used to timestamp snapshots.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Options returns the engine's options.
func (e *Engine) Options() config.Options {
	return e.opts
}

// HistoryPath returns where snapshots are persisted.
func (e *Engine) HistoryPath() string {
	return e.store.Path()
}

// Baseline returns the sizes loaded by BeginBuild, or nil before it.
func (e *Engine) Baseline() *snapshot.SizeMap {
	return e.baseline
}

// BeginBuild loads the baseline. Call it before the build writes to
// outputDir; with no usable history the baseline is the directory's
// current contents.
func (e *Engine) BeginBuild(ctx context.Context, outputDir string) error {
	baseline, err := e.store.LoadBaseline(ctx, outputDir)
	if err != nil {
		return fmt.Errorf("loading baseline: %w", err)
	}
	e.baseline = baseline
	e.isSingleChunk = false
	e.started = true
	e.logger.Debug("baseline loaded", "files", baseline.Len())
	return nil
}

// FinishBuild measures the emitted artifacts against the baseline and
// persists the resulting snapshot if any size changed. The engine can be
// reused for another build after BeginBuild is called again.
func (e *Engine) FinishBuild(ctx context.Context, artifacts []artifact.Artifact) (*Result, error) {
	if !e.started {
		return nil, ErrNotStarted
	}
	e.started = false

	single, ok := artifact.Single(artifacts)
	e.isSingleChunk = ok
	pattern := selector.Pattern(artifacts, e.opts.Pattern)
	if e.isSingleChunk {
		e.logger.Debug("single chunk build", "file", single.Name, "kind", single.Kind, "pattern", pattern)
	}

	byName := make(map[string]artifact.Artifact, len(artifacts))
	names := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		if _, dup := byName[a.Name]; dup {
			continue
		}
		byName[a.Name] = a
		names = append(names, a.Name)
	}
	selected, err := selector.Select(names, pattern, e.opts.Exclude)
	if err != nil {
		return nil, err
	}

	inputs := make([]measure.Input, len(selected))
	for i, name := range selected {
		inputs[i] = measure.Input{Name: name, Read: byName[name].Bytes}
	}
	m := compress.Measurer{Mode: e.opts.Compression, Level: e.opts.CompressionLevel}
	after, err := measure.Sizes(ctx, m, inputs, e.opts.Jobs, e.logger)
	if err != nil {
		return nil, err
	}

	snap := snapshot.Snapshot{
		Timestamp:        e.now().UnixMilli(),
		CompressionType:  e.opts.Compression.String(),
		CompressionLevel: e.opts.CompressionLevel,
		Files:            reconcile.Reconcile(e.baseline, after),
	}

	written, err := e.store.Persist(snap)
	if err != nil {
		return nil, err
	}
	return &Result{
		Snapshot:    snap,
		Written:     written,
		HistoryPath: e.store.Path(),
		SingleChunk: e.isSingleChunk,
	}, nil
}
