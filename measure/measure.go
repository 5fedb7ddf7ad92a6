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

// Package measure computes compressed sizes for many files concurrently.
package measure

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"bennypowers.dev/heft/compress"
	"bennypowers.dev/heft/snapshot"
)

// Input is one file to measure.
type Input struct {
	Name string
	Read func() ([]byte, error)
}

// Sizes measures every input with at most jobs measurements in flight and
// returns the sizes in input order. An input whose Read fails is left out
// of the result. A measurement failure aborts the whole call. Duplicate
// names keep the first input.
func Sizes(ctx context.Context, m compress.Measurer, inputs []Input, jobs int, logger *slog.Logger) (*snapshot.SizeMap, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	type result struct {
		size int
		ok   bool
	}
	results := make([]result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := in.Read()
			if err != nil {
				logger.Debug("skipping unreadable file", "file", in.Name, "error", err)
				return nil
			}
			size, err := m.Measure(data)
			if err != nil {
				return fmt.Errorf("measuring %s: %w", in.Name, err)
			}
			results[i] = result{size: size, ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sizes := snapshot.NewSizeMap()
	for i, r := range results {
		if !r.ok || sizes.Has(inputs[i].Name) {
			continue
		}
		sizes.Set(inputs[i].Name, r.size)
	}
	return sizes, nil
}
