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

package artifact_test

import (
	"errors"
	"slices"
	"testing"

	"bennypowers.dev/heft/artifact"
	"bennypowers.dev/heft/internal/mapfs"
)

func names(artifacts []artifact.Artifact) []string {
	out := make([]string, len(artifacts))
	for i, a := range artifacts {
		out[i] = a.Name
	}
	return out
}

func TestKindOf(t *testing.T) {
	tests := map[string]artifact.Kind{
		"main.js":          artifact.Chunk,
		"lib/index.mjs":    artifact.Chunk,
		"server.CJS":       artifact.Chunk,
		"style.css":        artifact.Asset,
		"index.html":       artifact.Asset,
		"main.js.map":      artifact.Asset,
		"README":           artifact.Asset,
		"assets/logo.avif": artifact.Asset,
	}
	for name, want := range tests {
		if got := artifact.KindOf(name); got != want {
			t.Errorf("KindOf(%q): expected %s, got %s", name, want, got)
		}
	}
}

func TestSingle(t *testing.T) {
	lone := artifact.Artifact{Name: "bundle.a1b2c3.js", Kind: artifact.Chunk}
	if got, ok := artifact.Single([]artifact.Artifact{lone}); !ok || got.Name != lone.Name {
		t.Errorf("Expected %s to be the single artifact, got %q (%v)", lone.Name, got.Name, ok)
	}

	asset := artifact.Artifact{Name: "site.css", Kind: artifact.Asset}
	if got, ok := artifact.Single([]artifact.Artifact{asset}); !ok || got.Name != asset.Name {
		t.Errorf("Expected a lone asset to count, got %q (%v)", got.Name, ok)
	}

	if _, ok := artifact.Single([]artifact.Artifact{lone, asset}); ok {
		t.Error("Expected a chunk with an asset not to be a single-chunk build")
	}
	if _, ok := artifact.Single(nil); ok {
		t.Error("Expected an empty build not to be a single-chunk build")
	}
}

func TestBytes(t *testing.T) {
	eager := artifact.Artifact{Contents: []byte("eager"), Read: func() ([]byte, error) {
		t.Error("Read should not be called when Contents is set")
		return nil, nil
	}}
	if data, err := eager.Bytes(); err != nil || string(data) != "eager" {
		t.Errorf("Expected eager contents, got %q (%v)", data, err)
	}

	lazy := artifact.Artifact{Read: func() ([]byte, error) { return []byte("lazy"), nil }}
	if data, err := lazy.Bytes(); err != nil || string(data) != "lazy" {
		t.Errorf("Expected lazy contents, got %q (%v)", data, err)
	}

	boom := errors.New("gone")
	failing := artifact.Artifact{Read: func() ([]byte, error) { return nil, boom }}
	if _, err := failing.Bytes(); !errors.Is(err, boom) {
		t.Errorf("Expected read error, got %v", err)
	}

	if data, err := (artifact.Artifact{}).Bytes(); err != nil || len(data) != 0 {
		t.Errorf("Expected empty contents, got %q (%v)", data, err)
	}
}

func TestFromDir(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFiles(map[string]string{
		"/site/dist/main.js":        "console.log(1)",
		"/site/dist/chunks/lazy.js": "export {}",
		"/site/dist/style.css":      "body{}",
		"/site/src/main.ts":         "ignored",
	})

	artifacts, err := artifact.FromDir(mfs, "/site/dist")
	if err != nil {
		t.Fatalf("FromDir: %v", err)
	}

	want := []string{"chunks/lazy.js", "main.js", "style.css"}
	if got := names(artifacts); !slices.Equal(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for _, a := range artifacts {
		if a.Kind != artifact.KindOf(a.Name) {
			t.Errorf("%s: expected %s, got %s", a.Name, artifact.KindOf(a.Name), a.Kind)
		}
	}
	data, err := artifacts[1].Bytes()
	if err != nil || string(data) != "console.log(1)" {
		t.Errorf("Expected main.js contents, got %q (%v)", data, err)
	}
}

func TestFromDirMissing(t *testing.T) {
	if _, err := artifact.FromDir(mapfs.New(), "/nowhere"); err == nil {
		t.Error("Expected error for missing directory")
	}
}

const metafile = `{
  "inputs": {},
  "outputs": {
    "dist/main-5XKQ2B.js": {"bytes": 120, "imports": [], "exports": [], "entryPoint": "src/main.ts"},
    "dist/main-5XKQ2B.js.map": {"bytes": 300},
    "dist/chunk-QW3E.js": {"bytes": 40, "imports": [], "exports": ["lazy"]},
    "dist/..vendor.js": {"bytes": 7, "imports": [], "exports": []},
    "dist/copied/worker.js": {"bytes": 5, "inputs": {"src/worker.js": {"bytesInOutput": 5}}},
    "dist/main-5XKQ2B.css": {"bytes": 80, "entryPoint": "src/main.ts"},
    "vendor/outside.js": {"bytes": 10},
    "index.js": {"bytes": 10}
  }
}`

func TestFromMetafile(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFiles(map[string]string{
		"/site/meta.json":               metafile,
		"/site/dist/main-5XKQ2B.js":     "main",
		"/site/dist/main-5XKQ2B.js.map": "{}",
		"/site/dist/chunk-QW3E.js":      "chunk",
		"/site/dist/..vendor.js":        "vendor",
		"/site/dist/copied/worker.js":   "work",
		"/site/dist/main-5XKQ2B.css":    "css",
	})

	artifacts, err := artifact.FromMetafile(mfs, "/site/meta.json", "/site/dist")
	if err != nil {
		t.Fatalf("FromMetafile: %v", err)
	}

	want := []string{
		"..vendor.js",
		"chunk-QW3E.js",
		"copied/worker.js",
		"main-5XKQ2B.css",
		"main-5XKQ2B.js",
		"main-5XKQ2B.js.map",
	}
	if got := names(artifacts); !slices.Equal(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}

	kinds := map[string]artifact.Kind{
		"..vendor.js":        artifact.Chunk,
		"chunk-QW3E.js":      artifact.Chunk,
		"copied/worker.js":   artifact.Asset,
		"main-5XKQ2B.css":    artifact.Asset,
		"main-5XKQ2B.js":     artifact.Chunk,
		"main-5XKQ2B.js.map": artifact.Asset,
	}
	for _, a := range artifacts {
		if a.Kind != kinds[a.Name] {
			t.Errorf("%s: expected %s, got %s", a.Name, kinds[a.Name], a.Kind)
		}
	}

	i := slices.IndexFunc(artifacts, func(a artifact.Artifact) bool { return a.Name == "main-5XKQ2B.js" })
	data, err := artifacts[i].Bytes()
	if err != nil || string(data) != "main" {
		t.Errorf("Expected main chunk contents, got %q (%v)", data, err)
	}
}

func TestFromMetafileErrors(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/site/bad.json", "{", 0644)

	if _, err := artifact.FromMetafile(mfs, "/site/missing.json", "/site/dist"); err == nil {
		t.Error("Expected error for missing metafile")
	}
	if _, err := artifact.FromMetafile(mfs, "/site/bad.json", "/site/dist"); err == nil {
		t.Error("Expected error for malformed metafile")
	}
}
