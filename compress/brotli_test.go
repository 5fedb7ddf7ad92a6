//go:build !nobrotli

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

package compress_test

import (
	"testing"

	"bennypowers.dev/heft/compress"
)

func TestBrotliAvailable(t *testing.T) {
	if !compress.Available(compress.Brotli) {
		t.Fatal("Expected brotli to be available")
	}
}

func TestMeasureBrotli(t *testing.T) {
	first, err := compress.Measure(payload, compress.Brotli, 11)
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}
	second, err := compress.Measure(payload, compress.Brotli, 11)
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}
	if first != second {
		t.Errorf("Expected identical sizes, got %d and %d", first, second)
	}
	if first >= len(payload) {
		t.Errorf("Expected brotli to shrink repetitive input, got %d of %d", first, len(payload))
	}
}
