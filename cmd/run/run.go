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

// Package run provides the run command for heft.
package run

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/heft/artifact"
	"bennypowers.dev/heft/fs"
	"bennypowers.dev/heft/internal/project"
	"bennypowers.dev/heft/report"
)

// Cmd is the run cobra command that wraps a build and reports how the
// compressed size of its output changed.
var Cmd = &cobra.Command{
	Use:   "run [flags] -- <build command> [args...]",
	Short: "Run a build and report compressed size changes",
	Long: `Run a build command and compare the compressed size of its output with the
previous build.

The baseline is the newest snapshot in the history file. Without history, the
output directory is measured before the build starts. After the build, every
file in the output directory (or every output listed in an esbuild metafile)
matching --pattern is measured, and a new snapshot is added to the history
when any size changed.

The build's stdout is forwarded to stderr so that heft's report is the only
thing on stdout.`,
	Example: `  # Track gzip sizes of an esbuild bundle
  heft run -- npx esbuild src/main.ts --bundle --outdir=dist

  # Use esbuild's metafile to list outputs
  heft run --metafile meta.json -- npx esbuild src/main.ts --bundle --outdir=dist --metafile=meta.json

  # Brotli at maximum quality, without touching history
  heft run --compression brotli --compression-level 11 --write-file=false -- npm run build`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().String("metafile", "", "esbuild metafile listing the build outputs, relative to the package")
	Cmd.Flags().SetInterspersed(false)
}

func run(cmd *cobra.Command, args []string) error {
	p, err := project.Load(fs.NewOSFileSystem(), viper.GetViper())
	if err != nil {
		return err
	}
	metafile, err := cmd.Flags().GetString("metafile")
	if err != nil {
		return fmt.Errorf("error reading metafile flag: %w", err)
	}

	ctx := cmd.Context()
	e := p.Engine()
	if err := e.BeginBuild(ctx, p.OutputDir); err != nil {
		return err
	}

	p.Logger.Debug("running build", "command", args)
	if err := build(cmd, p.Root, args); err != nil {
		return err
	}

	var artifacts []artifact.Artifact
	if metafile != "" {
		artifacts, err = artifact.FromMetafile(p.FS, project.Resolve(p.Root, metafile), p.OutputDir)
	} else {
		artifacts, err = artifact.FromDir(p.FS, p.OutputDir)
	}
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

// build runs the build command in the project directory. A failed build
// aborts the run before anything is measured or persisted.
func build(cmd *cobra.Command, dir string, args []string) error {
	c := exec.CommandContext(cmd.Context(), args[0], args[1:]...)
	c.Dir = dir
	c.Stdin = os.Stdin
	c.Stdout = cmd.ErrOrStderr()
	c.Stderr = cmd.ErrOrStderr()
	if err := c.Run(); err != nil {
		return fmt.Errorf("build command %q failed: %w", args[0], err)
	}
	return nil
}
