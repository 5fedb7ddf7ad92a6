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

// Package version provides the version command for heft.
package version

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/heft/config"
	"bennypowers.dev/heft/internal/version"
)

// Cmd is the version command.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information for heft, including the compression modes compiled in.`,
	Args:  cobra.NoArgs,
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	info := version.Get()
	switch viper.GetString("format") {
	case config.FormatJSON:
		out, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling version info: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	default:
		fmt.Fprintln(cmd.OutOrStdout(), info.String())
	}
	return nil
}
