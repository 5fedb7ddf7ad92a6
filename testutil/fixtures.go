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

// Package testutil provides fixture and golden-file helpers for heft's tests.
package testutil

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"bennypowers.dev/heft/internal/mapfs"
)

// updateGolden enables updating golden files with actual output when -update flag is set.
var updateGolden = flag.Bool("update", false, "update golden files with actual output")

// candidates returns where a testdata-relative path may live, since go test
// runs each package in its own directory.
func candidates(rel string) []string {
	return []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
	}
}

// NewFixtureFS loads fixture files from testdata and returns a MapFileSystem
// with files mapped to the specified root path.
// The fixtureDir should be relative to the testdata directory.
func NewFixtureFS(t *testing.T, fixtureDir string, rootPath string) *mapfs.MapFileSystem {
	t.Helper()

	mfs := mapfs.New()

	var fixturePath string
	for _, path := range candidates(fixtureDir) {
		if _, err := os.Stat(path); err == nil {
			fixturePath = path
			break
		}
	}
	if fixturePath == "" {
		t.Fatalf("Could not find fixtures at %s (tried all paths)", fixtureDir)
	}

	err := filepath.WalkDir(fixturePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(fixturePath, path)
		if err != nil {
			return err
		}

		mfs.AddFile(filepath.Join(rootPath, relPath), string(content), 0644)
		return nil
	})

	if err != nil {
		t.Fatalf("Failed to load fixtures from %s: %v", fixtureDir, err)
	}

	return mfs
}

// LoadFixtureFile reads a single fixture file and returns its content.
// The fixturePath should be relative to testdata/.
func LoadFixtureFile(t *testing.T, fixturePath string) []byte {
	t.Helper()

	var content []byte
	var err error
	for _, path := range candidates(fixturePath) {
		content, err = os.ReadFile(path)
		if err == nil {
			return content
		}
	}
	t.Fatalf("Failed to read fixture %s (tried all paths): %v", fixturePath, err)
	return nil
}

// AssertGolden compares actual against the golden file at goldenPath
// (relative to testdata/) and fails with a unified diff on mismatch. With
// -update it rewrites the golden file instead.
func AssertGolden(t *testing.T, goldenPath string, actual []byte) {
	t.Helper()

	if *updateGolden {
		updateGoldenFile(t, goldenPath, actual)
		return
	}

	expected := LoadFixtureFile(t, goldenPath)
	if string(expected) == string(actual) {
		return
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(expected)),
		B:        difflib.SplitLines(string(actual)),
		FromFile: goldenPath,
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		t.Fatalf("Output does not match %s (diff failed: %v)", goldenPath, err)
	}
	t.Errorf("Output does not match %s (run with -update to accept):\n%s", goldenPath, diff)
}

// updateGoldenFile writes actual output to the golden file, creating parent
// directories as needed.
func updateGoldenFile(t *testing.T, goldenPath string, actual []byte) {
	t.Helper()

	possiblePaths := candidates(goldenPath)

	// Use the first path that has an existing parent directory
	var targetPath string
	for _, path := range possiblePaths {
		if _, err := os.Stat(filepath.Dir(path)); err == nil {
			targetPath = path
			break
		}
	}
	if targetPath == "" {
		targetPath = possiblePaths[0]
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		t.Fatalf("Failed to create directory for golden file %s: %v", goldenPath, err)
	}

	if err := os.WriteFile(targetPath, actual, 0644); err != nil {
		t.Fatalf("Failed to write golden file %s: %v", goldenPath, err)
	}

	t.Logf("Updated golden file: %s", targetPath)
}
