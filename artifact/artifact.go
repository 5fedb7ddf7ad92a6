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

// Package artifact describes the files a build hands to heft.
//
// Build tools distinguish code chunks (bundled JavaScript produced from an
// entry point or a dynamic import) from assets (stylesheets, HTML, images).
// A build that emits exactly one artifact is a single-chunk build: the lone
// file is tracked by its exact, usually content-hashed, filename.
package artifact

import (
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	heftfs "bennypowers.dev/heft/fs"
)

// Kind tags an artifact as a chunk or an asset.
type Kind int

const (
	// Chunk is bundled code.
	Chunk Kind = iota
	// Asset is any other emitted file.
	Asset
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Chunk:
		return "chunk"
	case Asset:
		return "asset"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Artifact is one emitted build output.
type Artifact struct {
	// Name is the slash-separated path relative to the output directory.
	Name string
	Kind Kind
	// Contents holds the emitted bytes. A nil Contents with a non-nil Read
	// defers loading until measurement.
	Contents []byte
	// Read loads the contents lazily. Optional.
	Read func() ([]byte, error)
}

// Bytes returns the artifact contents, loading them if needed.
func (a Artifact) Bytes() ([]byte, error) {
	if a.Contents != nil || a.Read == nil {
		return a.Contents, nil
	}
	return a.Read()
}

// Single returns the only artifact of a single-chunk build. Builds with
// any other number of artifacts, assets included, report false.
func Single(artifacts []Artifact) (Artifact, bool) {
	if len(artifacts) != 1 {
		return Artifact{}, false
	}
	return artifacts[0], true
}

// KindOf guesses the kind of a file from its extension.
func KindOf(name string) Kind {
	switch strings.ToLower(path.Ext(name)) {
	case ".js", ".mjs", ".cjs":
		return Chunk
	default:
		return Asset
	}
}

// FromDir lists every regular file below dir as an artifact. Contents are
// read lazily so unreadable files degrade at measurement time.
func FromDir(fsys heftfs.FileSystem, dir string) ([]Artifact, error) {
	var artifacts []Artifact
	err := heftfs.WalkFiles(fsys, dir, func(rel, full string) error {
		artifacts = append(artifacts, Artifact{
			Name: rel,
			Kind: KindOf(rel),
			Read: func() ([]byte, error) { return fsys.ReadFile(full) },
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	return artifacts, nil
}

// metafile is the subset of an esbuild metafile heft reads.
type metafile struct {
	Outputs map[string]metafileOutput `json:"outputs"`
}

type metafileOutput struct {
	Imports    []json.RawMessage `json:"imports"`
	Exports    []string          `json:"exports"`
	EntryPoint string            `json:"entryPoint,omitempty"`
}

// kind tags entry points and the split chunks esbuild emits for them as
// chunks. Split chunks carry no entryPoint but always list their imports
// and exports. Anything else, copied files included, is an asset.
func (o metafileOutput) kind(name string) Kind {
	if KindOf(name) != Chunk {
		return Asset
	}
	if o.EntryPoint != "" || o.Imports != nil || o.Exports != nil {
		return Chunk
	}
	return Asset
}

// FromMetafile lists the outputs recorded in an esbuild metafile. Output
// paths in a metafile are relative to esbuild's working directory, which is
// taken to be the metafile's directory; only outputs below dir are returned,
// named relative to dir.
func FromMetafile(fsys heftfs.FileSystem, metafilePath, dir string) ([]Artifact, error) {
	data, err := fsys.ReadFile(metafilePath)
	if err != nil {
		return nil, fmt.Errorf("reading metafile: %w", err)
	}
	var meta metafile
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing metafile: %w", err)
	}

	base := filepath.Dir(metafilePath)
	names := make([]string, 0, len(meta.Outputs))
	for name := range meta.Outputs {
		names = append(names, name)
	}
	// Map order is random; artifacts are reported in path order.
	slices.Sort(names)

	var artifacts []Artifact
	for _, name := range names {
		full := filepath.Join(base, filepath.FromSlash(name))
		rel, err := filepath.Rel(dir, full)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		artifacts = append(artifacts, Artifact{
			Name: filepath.ToSlash(rel),
			Kind: meta.Outputs[name].kind(name),
			Read: func() ([]byte, error) { return fsys.ReadFile(full) },
		})
	}
	return artifacts, nil
}
