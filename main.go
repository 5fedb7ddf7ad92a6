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

// Command heft tracks the compressed size of build output over time.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/heft/cmd/history"
	"bennypowers.dev/heft/cmd/measure"
	"bennypowers.dev/heft/cmd/run"
	"bennypowers.dev/heft/cmd/version"
	"bennypowers.dev/heft/config"
	"bennypowers.dev/heft/fs"
	"bennypowers.dev/heft/internal/project"
	"bennypowers.dev/heft/packagejson"
	"bennypowers.dev/heft/selector"
)

var (
	cpuprofile     string
	cpuprofileFile *os.File
	rootCmd        = &cobra.Command{
		Use:   "heft",
		Short: "Track the compressed size of build output",
		Long: `heft measures the compressed size of a build's output, compares it with the
previous build, and keeps a history of sizes in a JSON file next to the project.

Options can also be set in a .heft.yaml or .heft.json file in the package
directory, or with HEFT_ environment variables (HEFT_COMPRESSION=brotli).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cpuprofile != "" {
				f, err := os.Create(cpuprofile)
				if err != nil {
					return fmt.Errorf("could not create CPU profile: %w", err)
				}
				cpuprofileFile = f
				if err := pprof.StartCPUProfile(f); err != nil {
					closeErr := f.Close()
					return errors.Join(
						fmt.Errorf("could not start CPU profile: %w", err),
						closeErr,
					)
				}
			}
			return loadConfigFile()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cpuprofileFile != nil {
				pprof.StopCPUProfile()
				if err := cpuprofileFile.Close(); err != nil {
					return fmt.Errorf("closing CPU profile: %w", err)
				}
			}
			return nil
		},
	}
)

func init() {
	defaults := config.Defaults()

	// Root flags (persistent across all commands)
	flags := rootCmd.PersistentFlags()
	flags.StringP("package", "p", ".", "Package directory")
	flags.StringP("dir", "d", project.DefaultDir, "Build output directory, relative to the package")
	flags.StringP("output", "o", "", "Output file (default: stdout)")
	flags.StringP("format", "f", defaults.Format, "Output format (text, table, json)")
	flags.String("config", "", "Config file (default: .heft.yaml in the package directory)")
	flags.BoolP("verbose", "v", false, "Log debug details to stderr")
	flags.Bool("no-color", false, "Disable colored output")
	flags.StringVar(&cpuprofile, "cpuprofile", "", "Write CPU profile to file")

	flags.String("compression", string(defaults.Compression), "Compression mode (none, gzip, brotli, zstd)")
	flags.Int("compression-level", defaults.CompressionLevel, "Compression level (gzip 1-9, brotli 1-11, zstd 1-22)")
	flags.String("pattern", selector.DefaultPattern, "Glob of output files to track")
	flags.String("exclude", "", "Glob of output files to ignore")
	flags.String("filename", "", "History file, relative to the package (default: .heft-data-<compression>.json)")
	flags.Bool("write-file", defaults.WriteFile, "Record snapshots in the history file")
	flags.Int("column-width", defaults.ColumnWidth, "Width of the filename column in text output")
	flags.IntP("jobs", "j", 0, "Concurrent measurements (default: number of CPUs)")

	for _, key := range append([]string{"package", "dir", "output", "config", "verbose", "no-color"}, config.Keys...) {
		_ = viper.BindPFlag(key, flags.Lookup(key))
	}

	viper.SetEnvPrefix("HEFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Add commands
	rootCmd.AddCommand(run.Cmd)
	rootCmd.AddCommand(measure.Cmd)
	rootCmd.AddCommand(history.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

// loadConfigFile reads .heft.yaml or .heft.json from the package directory,
// or the file named by --config. Without a config file, the "heft" field of
// package.json is used if present.
func loadConfigFile() error {
	pkgDir := filepath.Clean(viper.GetString("package"))
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".heft")
		viper.AddConfigPath(pkgDir)
	}

	err := viper.ReadInConfig()
	if err == nil {
		return nil
	}
	if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		return fmt.Errorf("error reading config file: %w", err)
	}

	settings, err := packagejson.Settings(fs.NewOSFileSystem(), pkgDir)
	if err != nil {
		return err
	}
	if settings != nil {
		return viper.MergeConfigMap(settings)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
