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

package walker

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
	}
}

func relAll(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestFiles(t *testing.T) {
	tree := []string{
		"a.go",
		"b.txt",
		"sub/c.go",
		"sub/deep/d.go",
		"sub/deep/e.md",
		".hidden.go",
		".config/f.go",
		".git/HEAD",
		"vendor/v.go",
	}

	tests := []struct {
		name     string
		settings Settings
		want     []string
	}{
		{
			name: "defaults_skip_hidden_and_git",
			want: []string{"a.go", "b.txt", "sub/c.go", "sub/deep/d.go", "sub/deep/e.md", "vendor/v.go"},
		},
		{
			name:     "hidden_included_but_git_never",
			settings: Settings{Hidden: true},
			want:     []string{".config/f.go", ".hidden.go", "a.go", "b.txt", "sub/c.go", "sub/deep/d.go", "sub/deep/e.md", "vendor/v.go"},
		},
		{
			name:     "glob_on_base_name",
			settings: Settings{Globs: []string{"*.go"}},
			want:     []string{"a.go", "sub/c.go", "sub/deep/d.go", "vendor/v.go"},
		},
		{
			name:     "glob_on_relative_path",
			settings: Settings{Globs: []string{"sub/**/*.md"}},
			want:     []string{"sub/deep/e.md"},
		},
		{
			name:     "ignore_directory",
			settings: Settings{IgnoreGlobs: []string{"vendor"}},
			want:     []string{"a.go", "b.txt", "sub/c.go", "sub/deep/d.go", "sub/deep/e.md"},
		},
		{
			name:     "ignore_and_glob_combined",
			settings: Settings{Globs: []string{"*.go"}, IgnoreGlobs: []string{"sub/deep"}},
			want:     []string{"a.go", "sub/c.go", "vendor/v.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tree...)

			w, err := New(tt.settings)
			require.NoError(t, err)

			files, err := w.Files(context.Background(), root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relAll(t, root, files))
		})
	}
}

func TestFilesExplicitPaths(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, ".env", "a.txt", "dir/b.txt")

	w, err := New(Settings{Globs: []string{"*.go"}})
	require.NoError(t, err)

	explicit := filepath.Join(root, ".env")
	files, err := w.Files(context.Background(), explicit, explicit, filepath.Join(root, "dir"))
	require.NoError(t, err)
	assert.Equal(t, []string{".env"}, relAll(t, root, files), "explicit files bypass filters and are deduplicated")
}

func TestFilesMissingPath(t *testing.T) {
	w, err := New(Settings{})
	require.NoError(t, err)

	_, err = w.Files(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFilesCancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.txt")

	w, err := New(Settings{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = w.Files(ctx, root)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewInvalidGlob(t *testing.T) {
	_, err := New(Settings{IgnoreGlobs: []string{"[unclosed"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidGlob)
	assert.Equal(t, "[unclosed", errors.Details(err)["pattern"])
}

func TestFilesUnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}

	root := t.TempDir()
	writeTree(t, root, "a.txt", "locked/b.txt")
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	w, err := New(Settings{})
	require.NoError(t, err)

	var skipped []string
	w.OnUnreadable(func(path string, err error) {
		assert.ErrorIs(t, err, os.ErrPermission)
		skipped = append(skipped, path)
	})

	files, err := w.Files(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, relAll(t, root, files))
	assert.Equal(t, []string{locked}, skipped)
}
