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

// Package project resolves the settings shared by heft's commands: where
// the project and its build output live, the validated options, and the
// logger.
package project

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/viper"

	"bennypowers.dev/heft/config"
	"bennypowers.dev/heft/engine"
	"bennypowers.dev/heft/fs"
	"bennypowers.dev/heft/internal/logging"
	"bennypowers.dev/heft/internal/output"
	"bennypowers.dev/heft/report"
	"bennypowers.dev/heft/store"
)

// DefaultDir is the build output directory when --dir is not given.
const DefaultDir = "dist"

// Project is one invocation's resolved settings.
type Project struct {
	FS      fs.FileSystem
	Options config.Options
	Logger  *slog.Logger
	// Root is the absolute project directory.
	Root string
	// OutputDir is the absolute build output directory.
	OutputDir string
	// Output is the report file, or empty for stdout.
	Output  string
	NoColor bool
}

// Load reads the project settings from v.
func Load(fsys fs.FileSystem, v *viper.Viper) (*Project, error) {
	root, err := filepath.Abs(v.GetString("package"))
	if err != nil {
		return nil, fmt.Errorf("invalid package directory: %w", err)
	}
	opts, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}

	dir := v.GetString("dir")
	if dir == "" {
		dir = DefaultDir
	}
	return &Project{
		FS:        fsys,
		Options:   opts,
		Logger:    logging.New(v.GetBool("verbose")),
		Root:      root,
		OutputDir: Resolve(root, dir),
		Output:    v.GetString("output"),
		NoColor:   v.GetBool("no-color"),
	}, nil
}

// Resolve returns path made absolute against root.
func Resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// Engine creates an engine for the project.
func (p *Project) Engine() *engine.Engine {
	return engine.New(p.FS, p.Options, p.Root).WithLogger(p.Logger)
}

// Store creates a history store for the project.
func (p *Project) Store() *store.Store {
	return store.New(p.FS, p.Options, p.Root).WithLogger(p.Logger)
}

// Report renders to the --output file or stdout with the project's
// report options.
func (p *Project) Report(stdout io.Writer, render func(io.Writer, report.Options) error) error {
	opts := report.Options{
		Format:      p.Options.Format,
		ColumnWidth: p.Options.ColumnWidth,
		Color:       output.Color(p.Output, p.NoColor, stdout),
	}
	return output.Render(p.FS, p.Output, stdout, func(w io.Writer) error {
		return render(w, opts)
	})
}
