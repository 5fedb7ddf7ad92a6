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

// Package history provides the history command for heft.
package history

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/heft/fs"
	"bennypowers.dev/heft/internal/project"
	"bennypowers.dev/heft/report"
	"bennypowers.dev/heft/store"
)

// Cmd is the history cobra command.
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded snapshots",
	Long: `Show the snapshots recorded in the history file, newest first.

The history file is chosen by --compression and --filename, so each
compression mode has its own history.`,
	Example: `  # The last ten gzip snapshots
  heft history

  # Every brotli snapshot as JSON
  heft history --compression brotli --limit 0 --format json`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().IntP("limit", "n", 10, "Number of snapshots to show (0 for all)")
}

func run(cmd *cobra.Command, args []string) error {
	p, err := project.Load(fs.NewOSFileSystem(), viper.GetViper())
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("error reading limit flag: %w", err)
	}

	s := p.Store()
	result := s.ReadHistory()
	if result.Status == store.HistoryParseError {
		return fmt.Errorf("history file %s: %w", s.Path(), result.Err)
	}
	if !result.OK() {
		p.Logger.Debug("no history", "file", s.Path(), "error", result.Err)
	}

	return p.Report(cmd.OutOrStdout(), func(w io.Writer, opts report.Options) error {
		return report.WriteHistory(w, result.History, limit, opts)
	})
}
