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

package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"bennypowers.dev/heft/fs"
	"bennypowers.dev/heft/internal/mapfs"
)

func walk(t *testing.T, fsys fs.FileSystem, dir string) []string {
	t.Helper()
	var rels []string
	err := fs.WalkFiles(fsys, dir, func(rel, full string) error {
		data, err := fsys.ReadFile(full)
		if err != nil {
			return err
		}
		if string(data) != rel {
			t.Errorf("Expected %s to contain its own name, got %q", full, data)
		}
		rels = append(rels, rel)
		return nil
	})
	if err != nil {
		t.Fatalf("WalkFiles: %v", err)
	}
	return rels
}

func TestWalkFilesOS(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{"main.js", "assets/site.css", "assets/img/logo.svg"} {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(rel), 0644); err != nil {
			t.Fatal(err)
		}
	}

	got := walk(t, fs.NewOSFileSystem(), dir)
	want := []string{"assets/img/logo.svg", "assets/site.css", "main.js"}
	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestWalkFilesMap(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFiles(map[string]string{
		"/site/dist/main.js":          "main.js",
		"/site/dist/chunks/a.js":      "chunks/a.js",
		"/site/dist-old/stale.js":     "stale",
		"/site/dist/nested/deep/x.js": "nested/deep/x.js",
	})

	got := walk(t, mfs, "/site/dist")
	want := []string{"chunks/a.js", "main.js", "nested/deep/x.js"}
	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestWalkFilesMissing(t *testing.T) {
	err := fs.WalkFiles(mapfs.New(), "/nowhere", func(rel, full string) error {
		t.Errorf("Unexpected file %s", rel)
		return nil
	})
	if !os.IsNotExist(err) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestWriteFileAll(t *testing.T) {
	dir := t.TempDir()
	osfs := fs.NewOSFileSystem()
	path := filepath.Join(dir, "a", "b", "history.json")

	if err := fs.WriteFileAll(osfs, path, []byte("[]\n"), 0644); err != nil {
		t.Fatalf("WriteFileAll: %v", err)
	}
	if !osfs.Exists(path) {
		t.Fatal("Expected file to exist")
	}
	data, err := osfs.ReadFile(path)
	if err != nil || string(data) != "[]\n" {
		t.Errorf("Expected [] got %q (%v)", data, err)
	}
}

func TestWriteFileAllOverFile(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/site/report", "not a directory", 0644)

	if err := fs.WriteFileAll(mfs, "/site/report/sizes.json", []byte("{}"), 0644); err == nil {
		t.Error("Expected error writing below a regular file")
	}
}
