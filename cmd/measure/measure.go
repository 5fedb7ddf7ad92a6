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

// Package measure provides the measure command for heft.
package measure

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/heft/artifact"
	"bennypowers.dev/heft/fs"
	"bennypowers.dev/heft/internal/project"
	"bennypowers.dev/heft/report"
)

// Cmd is the measure cobra command that compares the current build output
// with the newest snapshot in history.
var Cmd = &cobra.Command{
	Use:   "measure",
	Short: "Measure the current build output",
	Long: `Measure the compressed size of the files already in the output directory and
compare them with the newest snapshot in the history file.

Use this after a build that heft did not run. Without history the output
directory is its own baseline: every file matching the pattern reports no
change and nothing is written. The exception is a directory holding one
file the pattern does not match: that file is tracked by name and reports as
added.`,
	Example: `  # Measure dist/ with the defaults (gzip, level 6)
  heft measure

  # Measure a different directory as JSON
  heft measure --dir build --format json`,
	Args: cobra.NoArgs,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	p, err := project.Load(fs.NewOSFileSystem(), viper.GetViper())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	e := p.Engine()
	if err := e.BeginBuild(ctx, p.OutputDir); err != nil {
		return err
	}
	artifacts, err := artifact.FromDir(p.FS, p.OutputDir)
	if err != nil {
		return err
	}
	result, err := e.FinishBuild(ctx, artifacts)
	if err != nil {
		return err
	}
	if result.Written {
		p.Logger.Info("history updated", "file", result.HistoryPath)
	}

	return p.Report(cmd.OutOrStdout(), func(w io.Writer, opts report.Options) error {
		return report.Write(w, result.Snapshot, opts)
	})
}
