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

// Package version reports what heft binary is running.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"bennypowers.dev/heft/compress"
)

var (
	// Version information, set at build time via ldflags
	Version   = "dev"     // Version string (e.g., "v0.3.0")
	GitCommit = "unknown" // Git commit hash
	BuildTime = "unknown" // Build timestamp
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	// Compression lists the modes compiled into this build; brotli is
	// absent from builds tagged nobrotli.
	Compression []string `json:"compression"`
}

// Get returns the version information for this binary.
func Get() Info {
	info := Info{
		Version:   resolve(),
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
	for _, mode := range compress.Modes {
		if compress.Available(mode) {
			info.Compression = append(info.Compression, mode.String())
		}
	}
	return info
}

// String renders a one-line summary: "heft v1.2.0 (gzip, brotli)".
func (i Info) String() string {
	return fmt.Sprintf("heft %s (%s)", i.Version, strings.Join(i.Compression, ", "))
}

// resolve prefers the ldflags version, then the module version recorded by
// go install, then a short commit.
func resolve() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			return info.Main.Version
		}
	}
	if GitCommit != "unknown" && GitCommit != "" {
		commit := GitCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		return "dev-" + commit
	}
	return "dev"
}
