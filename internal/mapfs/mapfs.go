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

// Package mapfs provides an in-memory filesystem implementation for testing.
package mapfs

import (
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"
	"sync"
	"testing/fstest"
	"time"
)

// MapFileSystem implements fs.FileSystem using an in-memory fstest.MapFS.
// Reads can be made to fail per path to simulate files that vanish between
// listing and reading, and writes are counted so tests can assert that a
// run left a file untouched.
type MapFileSystem struct {
	mu        sync.RWMutex
	mapFS     fstest.MapFS
	modTime   time.Time
	readFails map[string]error
	writes    map[string]int
}

// New creates a new in-memory filesystem for testing.
func New() *MapFileSystem {
	return &MapFileSystem{
		mapFS:     make(fstest.MapFS),
		modTime:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		readFails: make(map[string]error),
		writes:    make(map[string]int),
	}
}

// AddFile adds a file to the in-memory filesystem.
func (mfs *MapFileSystem) AddFile(path string, content string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	path = mfs.cleanPath(path)
	mfs.mapFS[path] = &fstest.MapFile{
		Data:    []byte(content),
		Mode:    mode,
		ModTime: mfs.modTime,
	}
}

// AddFiles adds several files with mode 0644, keyed by path.
func (mfs *MapFileSystem) AddFiles(files map[string]string) {
	for _, p := range slices.Sorted(maps.Keys(files)) {
		mfs.AddFile(p, files[p], 0644)
	}
}

// FailRead makes every subsequent ReadFile of path return err. The file
// still shows up in directory listings.
func (mfs *MapFileSystem) FailRead(path string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.readFails[mfs.cleanPath(path)] = err
}

// Writes reports how many times WriteFile has been called for path.
func (mfs *MapFileSystem) Writes(path string) int {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.writes[mfs.cleanPath(path)]
}

// WriteFile implements fs.FileSystem.
func (mfs *MapFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = mfs.cleanPath(name)

	if err := mfs.ensureParentDirLocked(name); err != nil {
		return err
	}

	mfs.writes[name]++
	mfs.mapFS[name] = &fstest.MapFile{
		Data:    append([]byte(nil), data...),
		Mode:    perm,
		ModTime: mfs.modTime,
	}

	return nil
}

// ReadFile implements fs.FileSystem.
func (mfs *MapFileSystem) ReadFile(name string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	name = mfs.cleanPath(name)
	if err, ok := mfs.readFails[name]; ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	return fs.ReadFile(mfs.mapFS, name)
}

// Remove implements fs.FileSystem.
func (mfs *MapFileSystem) Remove(name string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = mfs.cleanPath(name)

	if _, exists := mfs.mapFS[name]; !exists {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}

	delete(mfs.mapFS, name)
	return nil
}

// MkdirAll implements fs.FileSystem. Directories are implied by the files
// below them, so only conflicts with existing files are checked.
func (mfs *MapFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	path = mfs.cleanPath(path)
	for dir := path; dir != "." && dir != ""; dir = parentOf(dir) {
		if file, exists := mfs.mapFS[dir]; exists && !file.Mode.IsDir() {
			return &fs.PathError{Op: "mkdir", Path: dir, Err: fmt.Errorf("not a directory")}
		}
	}
	if _, exists := mfs.mapFS[path]; !exists {
		mfs.mapFS[path] = &fstest.MapFile{
			Mode:    fs.ModeDir | perm.Perm(),
			ModTime: mfs.modTime,
		}
	}

	return nil
}

// Stat implements fs.FileSystem.
func (mfs *MapFileSystem) Stat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return fs.Stat(mfs.mapFS, mfs.cleanPath(name))
}

// Exists implements fs.FileSystem.
func (mfs *MapFileSystem) Exists(path string) bool {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	path = mfs.cleanPath(path)

	if _, exists := mfs.mapFS[path]; exists {
		return true
	}

	prefix := path + "/"
	for filePath := range mfs.mapFS {
		if strings.HasPrefix(filePath, prefix) {
			return true
		}
	}

	return false
}

// ReadDir implements fs.FileSystem.
func (mfs *MapFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return fs.ReadDir(mfs.mapFS, mfs.cleanPath(name))
}

// Open implements fs.FileSystem.
func (mfs *MapFileSystem) Open(name string) (fs.File, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	return mfs.mapFS.Open(mfs.cleanPath(name))
}

// Content returns a file's contents as a string, or "" if it does not exist.
func (mfs *MapFileSystem) Content(name string) string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	if file, ok := mfs.mapFS[mfs.cleanPath(name)]; ok {
		return string(file.Data)
	}
	return ""
}

func (mfs *MapFileSystem) cleanPath(p string) string {
	cleaned := path.Clean(p)
	if !path.IsAbs(cleaned) {
		cleaned = "/" + cleaned
	}
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" {
		return "."
	}
	return cleaned
}

func parentOf(p string) string {
	return path.Dir(p)
}

func (mfs *MapFileSystem) ensureParentDirLocked(filePath string) error {
	dir := path.Dir(filePath)
	if dir == "." || dir == "/" || dir == "" {
		return nil
	}

	if file, exists := mfs.mapFS[dir]; exists && !file.Mode.IsDir() {
		return &fs.PathError{Op: "open", Path: filePath, Err: fmt.Errorf("not a directory")}
	}

	return nil
}
