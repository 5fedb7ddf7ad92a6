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

// Package selector decides which build artifacts heft tracks.
//
// Patterns are doublestar globs matched against slash-separated paths
// relative to the output directory, so `**/*.{js,css}` matches both
// `main.js` and `assets/site.css`.
package selector

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"bennypowers.dev/heft/artifact"
)

// DefaultPattern selects the code and markup a browser downloads.
const DefaultPattern = "**/*.{mjs,js,jsx,css,html}"

// Match reports whether name is selected: it must match include and, when
// exclude is non-empty, must not match exclude.
func Match(name, include, exclude string) (bool, error) {
	ok, err := doublestar.Match(include, name)
	if err != nil {
		return false, fmt.Errorf("invalid pattern %q: %w", include, err)
	}
	if !ok || exclude == "" {
		return ok, nil
	}
	excluded, err := doublestar.Match(exclude, name)
	if err != nil {
		return false, fmt.Errorf("invalid exclude pattern %q: %w", exclude, err)
	}
	return !excluded, nil
}

// Select filters names, preserving their order.
func Select(names []string, include, exclude string) ([]string, error) {
	if err := Validate(include, exclude); err != nil {
		return nil, err
	}
	selected := make([]string, 0, len(names))
	for _, name := range names {
		if ok, _ := Match(name, include, exclude); ok {
			selected = append(selected, name)
		}
	}
	return selected, nil
}

// Validate checks both patterns up front so a bad pattern fails the run
// instead of silently matching nothing.
func Validate(include, exclude string) error {
	if !doublestar.ValidatePattern(include) {
		return fmt.Errorf("invalid pattern %q: %w", include, doublestar.ErrBadPattern)
	}
	if exclude != "" && !doublestar.ValidatePattern(exclude) {
		return fmt.Errorf("invalid exclude pattern %q: %w", exclude, doublestar.ErrBadPattern)
	}
	return nil
}

// Pattern returns the include pattern for a build. When the build emitted
// exactly one artifact, the pattern matches that artifact's filename and
// nothing else, so hashed bundle names are tracked whatever pattern was
// configured.
func Pattern(artifacts []artifact.Artifact, configured string) string {
	if a, ok := artifact.Single(artifacts); ok {
		return Escape(a.Name)
	}
	return configured
}

// Escape quotes glob metacharacters so name matches only itself.
func Escape(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
