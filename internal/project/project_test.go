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

package project_test

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"bennypowers.dev/heft/compress"
	"bennypowers.dev/heft/config"
	"bennypowers.dev/heft/internal/mapfs"
	"bennypowers.dev/heft/internal/project"
	"bennypowers.dev/heft/report"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	v := viper.New()
	v.Set("package", dir)

	p, err := project.Load(mapfs.New(), v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Root != dir {
		t.Errorf("Expected root %s, got %s", dir, p.Root)
	}
	if want := filepath.Join(dir, "dist"); p.OutputDir != want {
		t.Errorf("Expected output dir %s, got %s", want, p.OutputDir)
	}
	if p.Options.Compression != compress.Gzip || p.Options.Filename != ".heft-data-gzip.json" {
		t.Errorf("Expected gzip defaults, got %+v", p.Options)
	}
	if got := p.Store().Path(); got != filepath.Join(dir, ".heft-data-gzip.json") {
		t.Errorf("Unexpected history path %s", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	if !compress.Available(compress.Brotli) {
		t.Skip("brotli not compiled in")
	}
	dir := t.TempDir()
	v := viper.New()
	v.Set("package", dir)
	v.Set("dir", "/abs/build")
	v.Set("compression", "brotli")
	v.Set("compression-level", 11)

	p, err := project.Load(mapfs.New(), v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.OutputDir != "/abs/build" {
		t.Errorf("Expected absolute dir kept, got %s", p.OutputDir)
	}
	if p.Options.Compression != compress.Brotli || p.Options.CompressionLevel != 11 {
		t.Errorf("Expected brotli 11, got %s %d", p.Options.Compression, p.Options.CompressionLevel)
	}
}

func TestLoadInvalid(t *testing.T) {
	v := viper.New()
	v.Set("compression", "gzip")
	v.Set("compression-level", 10)

	if _, err := project.Load(mapfs.New(), v); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

func TestReportToFile(t *testing.T) {
	mfs := mapfs.New()
	v := viper.New()
	v.Set("package", "/project")
	v.Set("output", "/project/report.json")
	v.Set("format", "json")

	p, err := project.Load(mfs, v)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var stdout bytes.Buffer
	err = p.Report(&stdout, func(w io.Writer, opts report.Options) error {
		if opts.Format != config.FormatJSON || opts.Color {
			t.Errorf("Unexpected report options %+v", opts)
		}
		_, err := io.WriteString(w, "{}\n")
		return err
	})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if stdout.Len() != 0 || mfs.Content("/project/report.json") != "{}\n" {
		t.Errorf("Expected report in file only, stdout %q", stdout.String())
	}
}
