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

// Package packagejson reads heft settings from a project's package.json.
//
// JavaScript projects often keep tool settings in package.json rather than
// in a dotfile, so heft accepts a "heft" field there:
//
//	{
//	  "name": "my-app",
//	  "heft": { "compression": "brotli", "compression-level": 11 }
//	}
package packagejson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	heftfs "bennypowers.dev/heft/fs"
)

// PackageJSON represents the subset of package.json heft reads.
type PackageJSON struct {
	Name    string         `json:"name"`
	Version string         `json:"version"`
	Heft    map[string]any `json:"heft,omitempty"`
}

// Parse parses package.json data.
func Parse(data []byte) (*PackageJSON, error) {
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// ParseFile parses a package.json file.
func ParseFile(fsys heftfs.FileSystem, path string) (*PackageJSON, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Settings returns the "heft" field of dir/package.json. A directory
// without package.json, or a package.json without the field, has no
// settings and no error.
func Settings(fsys heftfs.FileSystem, dir string) (map[string]any, error) {
	path := filepath.Join(dir, "package.json")
	pkg, err := ParseFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return pkg.Heft, nil
}
