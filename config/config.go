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

// Package config builds heft's validated, immutable options.
//
// Options are built once per run by merging Defaults with whatever the
// caller overrides. Validation happens here, so the measuring code never
// sees an unknown compression mode or an out-of-range level.
package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/viper"

	"bennypowers.dev/heft/compress"
	"bennypowers.dev/heft/selector"
)

// Tool names the history file: .heft-data-gzip.json.
const Tool = "heft"

// ErrInvalid marks option values that fail validation.
var ErrInvalid = errors.New("invalid option")

// Report formats.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

// Options configures one engine. Build it with New; the zero value is not
// valid.
type Options struct {
	Compression      compress.Mode
	CompressionLevel int
	Pattern          string
	Exclude          string
	Filename         string
	WriteFile        bool
	ColumnWidth      int
	// Jobs bounds concurrent measurements.
	Jobs   int
	Format string
}

// Overrides holds caller-supplied values. Nil fields keep their default.
type Overrides struct {
	Compression      *string
	CompressionLevel *int
	Pattern          *string
	Exclude          *string
	Filename         *string
	WriteFile        *bool
	ColumnWidth      *int
	Jobs             *int
	Format           *string
}

// Defaults returns the default options. Filename is left empty and derived
// from the compression mode in New.
func Defaults() Options {
	return Options{
		Compression:      compress.Gzip,
		CompressionLevel: 6,
		Pattern:          selector.DefaultPattern,
		WriteFile:        true,
		ColumnWidth:      20,
		Jobs:             runtime.NumCPU(),
		Format:           FormatText,
	}
}

// DefaultFilename returns the history filename for a compression mode.
func DefaultFilename(mode compress.Mode) string {
	return fmt.Sprintf(".%s-data-%s.json", Tool, mode)
}

// New merges o over Defaults and validates the result.
func New(o Overrides) (Options, error) {
	opts := Defaults()

	if o.Compression != nil {
		mode, err := compress.ParseMode(*o.Compression)
		if err != nil {
			return Options{}, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		opts.Compression = mode
	}
	if o.CompressionLevel != nil {
		opts.CompressionLevel = *o.CompressionLevel
	}
	if o.Pattern != nil {
		opts.Pattern = *o.Pattern
	}
	if o.Exclude != nil {
		opts.Exclude = *o.Exclude
	}
	if o.Filename != nil {
		opts.Filename = *o.Filename
	}
	if o.WriteFile != nil {
		opts.WriteFile = *o.WriteFile
	}
	if o.ColumnWidth != nil {
		opts.ColumnWidth = *o.ColumnWidth
	}
	if o.Jobs != nil {
		opts.Jobs = *o.Jobs
	}
	if o.Format != nil {
		opts.Format = *o.Format
	}

	if opts.Filename == "" {
		opts.Filename = DefaultFilename(opts.Compression)
	}
	if opts.Jobs == 0 {
		opts.Jobs = runtime.NumCPU()
	}

	if err := opts.validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func (o Options) validate() error {
	if !compress.Available(o.Compression) {
		return fmt.Errorf("compression %q: %w", o.Compression, compress.ErrUnsupported)
	}
	if !o.Compression.ValidLevel(o.CompressionLevel) {
		lo, hi, _ := o.Compression.LevelRange()
		return fmt.Errorf("%w: compression level %d for %s must be between %d and %d",
			ErrInvalid, o.CompressionLevel, o.Compression, lo, hi)
	}
	if o.Pattern == "" {
		return fmt.Errorf("%w: pattern must not be empty", ErrInvalid)
	}
	if err := selector.Validate(o.Pattern, o.Exclude); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if o.ColumnWidth < 0 {
		return fmt.Errorf("%w: column width %d must not be negative", ErrInvalid, o.ColumnWidth)
	}
	if o.Jobs < 0 {
		return fmt.Errorf("%w: jobs %d must not be negative", ErrInvalid, o.Jobs)
	}
	switch o.Format {
	case FormatText, FormatTable, FormatJSON:
	default:
		return fmt.Errorf("%w: format %q must be one of text, table, json", ErrInvalid, o.Format)
	}
	return nil
}

// Keys are the viper keys FromViper reads.
var Keys = []string{
	"compression",
	"compression-level",
	"pattern",
	"exclude",
	"filename",
	"write-file",
	"column-width",
	"jobs",
	"format",
}

// FromViper builds options from the keys set on v, whether by flag,
// environment, or config file. Keys left at their flag default do not count
// as set, so Defaults apply.
func FromViper(v *viper.Viper) (Options, error) {
	var o Overrides
	if v.IsSet("compression") {
		o.Compression = ptr(v.GetString("compression"))
	}
	if v.IsSet("compression-level") {
		o.CompressionLevel = ptr(v.GetInt("compression-level"))
	}
	if v.IsSet("pattern") {
		o.Pattern = ptr(v.GetString("pattern"))
	}
	if v.IsSet("exclude") {
		o.Exclude = ptr(v.GetString("exclude"))
	}
	if v.IsSet("filename") {
		o.Filename = ptr(v.GetString("filename"))
	}
	if v.IsSet("write-file") {
		o.WriteFile = ptr(v.GetBool("write-file"))
	}
	if v.IsSet("column-width") {
		o.ColumnWidth = ptr(v.GetInt("column-width"))
	}
	if v.IsSet("jobs") {
		o.Jobs = ptr(v.GetInt("jobs"))
	}
	if v.IsSet("format") {
		o.Format = ptr(v.GetString("format"))
	}
	return New(o)
}

func ptr[T any](v T) *T {
	return &v
}
