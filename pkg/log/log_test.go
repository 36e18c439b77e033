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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/subvert/pkg/query"
	"github.com/walteh/subvert/pkg/text"
)

func newTestLogger(t *testing.T, buf io.Writer) *Logger {
	t.Helper()
	return New(buf, zerolog.InfoLevel).WithZerolog(zerolog.New(zerolog.NewTestWriter(t)))
}

func mustReplace(t *testing.T, input, from, to string) *text.Replacement {
	t.Helper()
	q, err := query.Substring(from, to)
	require.NoError(t, err)
	r, ok := text.Replace(input, q)
	require.True(t, ok)
	return r
}

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:         "test.txt",
					Lines:        1,
					Replacements: 2,
				})
			},
			wantLogs: []string{
				"⟳ test.txt                                 1      2 would write",
			},
		},
		{
			name: "log_file_changes",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileChanges(context.Background(), FileOperation{
					Path:         "a.go",
					Lines:        2,
					Replacements: 2,
					Written:      true,
				}, []text.LineChange{
					{Number: 1, Replacement: mustReplace(t, "old", "old", "new")},
					{Number: 4, Replacement: mustReplace(t, "x old", "old", "new")},
				})
			},
			wantLogs: []string{
				"a.go:1 --- old",
				"a.go:1 +++ new",
				"a.go:4 --- x old",
				"a.go:4 +++ x new",
				"✓ a.go                                     2      2 written",
			},
		},
		{
			name: "log_skipped_file",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:    "bin.dat",
					Skipped: "binary",
				})
			},
			wantLogs: []string{
				"- bin.dat                                  0      0 skipped: binary",
			},
		},
		{
			name: "log_warnings",
			op: func(t *testing.T, logger *Logger) {
				logger.Warning("warning message")
				logger.Warningf("skipping %s: %s", "secret", "permission denied")
			},
			wantLogs: []string{
				"⚠️  warning message",
				"⚠️  skipping secret: permission denied",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := newTestLogger(t, buf)

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerQuiet(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	buf := &bytes.Buffer{}
	logger := newTestLogger(t, buf)
	logger.SetQuiet(true)

	logger.LogFileChanges(context.Background(), FileOperation{Path: "foo.txt", Lines: 1, Replacements: 1},
		[]text.LineChange{{Number: 1, Replacement: mustReplace(t, "old", "old", "new")}})
	logger.LogFileOperation(context.Background(), FileOperation{Path: "bin.dat", Skipped: "binary"})
	assert.Empty(t, buf.String())

	logger.Warning("still shown")
	assert.Equal(t, "⚠️  still shown\n", buf.String())
}

func TestLoggerSummary(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	tests := []struct {
		name    string
		summary Summary
		want    []string
		notWant []string
	}{
		{
			name:    "dry_run",
			summary: Summary{Files: 2, Lines: 3, Replacements: 4, DryRun: true},
			want: []string{
				"Would perform 4 replacements on 3 matching lines in 2 matching files",
				"Re-run with --go",
			},
		},
		{
			name:    "written",
			summary: Summary{Files: 1, Lines: 1, Replacements: 1},
			want:    []string{"Performed 1 replacements on 1 matching lines in 1 matching files"},
			notWant: []string{"--go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := newTestLogger(t, buf)

			logger.LogSummary(context.Background(), tt.summary)

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, buf.String(), notWant)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.InfoLevel)

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")
	assert.NotEqual(t, zerolog.Disabled, zerolog.Ctx(ctx).GetLevel(), "zerolog logger should be carried too")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestFileOperationFormatting(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{
			name: "dry_run_file",
			op:   FileOperation{Path: "test.txt", Lines: 2, Replacements: 3},
			want: "    ⟳ test.txt                                 2      3 would write",
		},
		{
			name: "written_file",
			op:   FileOperation{Path: "test.txt", Lines: 1, Replacements: 1, Written: true},
			want: "    ✓ test.txt                                 1      1 written",
		},
		{
			name: "skipped_file",
			op:   FileOperation{Path: "bin.dat", Skipped: "binary"},
			want: "    - bin.dat                                  0      0 skipped: binary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(io.Discard, zerolog.InfoLevel)
			assert.Equal(t, tt.want, logger.formatFileOperation(tt.op))
		})
	}
}

func TestHighlighter(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	r := mustReplace(t, "a old b", "old", "new")
	before, after := r.RenderDiffWith("x:1", Highlighter{})
	assert.Equal(t, "x:1 --- a old b", before)
	assert.Equal(t, "x:1 +++ a new b", after)
}
