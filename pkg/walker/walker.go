// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package walker lists the files a replacement run should visit.
package walker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidGlob is returned by New for a malformed glob pattern
var ErrInvalidGlob = errors.Base("invalid glob pattern")

// 🔧 Settings controls which files are visited
type Settings struct {
	// Hidden includes files and directories whose name starts with a dot
	Hidden bool
	// Globs keeps only files matching at least one pattern, when set
	Globs []string
	// IgnoreGlobs drops files and directories matching any pattern
	IgnoreGlobs []string
}

// 🚶 Walker expands paths into a sorted list of files
type Walker struct {
	settings     Settings
	onUnreadable func(path string, err error)
}

// 🏭 New validates the glob patterns and creates a walker
func New(settings Settings) (*Walker, error) {
	for _, pattern := range append(append([]string{}, settings.Globs...), settings.IgnoreGlobs...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.WithDetails(ErrInvalidGlob, "pattern", pattern)
		}
	}
	return &Walker{settings: settings}, nil
}

// OnUnreadable sets a callback for paths skipped because they could not be
// read. The walk continues past them either way.
func (w *Walker) OnUnreadable(fn func(path string, err error)) {
	w.onUnreadable = fn
}

// Files expands each path into the files below it. Files named explicitly
// are always returned; directories are walked recursively.
func (w *Walker) Files(ctx context.Context, paths ...string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range paths {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("walking files: %w", err)
		}

		root = filepath.Clean(root)
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.Errorf("stat %s: %w", root, err)
		}

		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if walkErr != nil {
				if os.IsPermission(walkErr) {
					logger.Debug().Err(walkErr).Str("path", path).Msg("skipping unreadable path")
					if w.onUnreadable != nil {
						w.onUnreadable(path, walkErr)
					}
					if entry != nil && entry.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
				return walkErr
			}

			if path == root {
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			rel = filepath.ToSlash(rel)

			if entry.IsDir() {
				if w.skipDir(entry.Name(), rel) {
					logger.Trace().Str("dir", path).Msg("skipping directory")
					return filepath.SkipDir
				}
				return nil
			}

			// symlinks and other special files are not followed
			if !entry.Type().IsRegular() {
				return nil
			}

			if w.keepFile(entry.Name(), rel) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Errorf("walking %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func (w *Walker) skipDir(name, rel string) bool {
	if name == ".git" {
		return true
	}
	if !w.settings.Hidden && isHidden(name) {
		return true
	}
	return matchesAny(w.settings.IgnoreGlobs, name, rel)
}

func (w *Walker) keepFile(name, rel string) bool {
	if !w.settings.Hidden && isHidden(name) {
		return false
	}
	if matchesAny(w.settings.IgnoreGlobs, name, rel) {
		return false
	}
	if len(w.settings.Globs) == 0 {
		return true
	}
	return matchesAny(w.settings.Globs, name, rel)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// matchesAny reports whether a pattern matches either the base name or the
// slash separated path relative to the walk root
func matchesAny(patterns []string, name, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
