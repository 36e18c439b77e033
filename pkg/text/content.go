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

package text

import (
	"context"
	"io"
	"strings"

	"github.com/walteh/subvert/pkg/query"
	"gitlab.com/tozd/go/errors"
)

// how many lines are processed between two context checks
const ctxCheckInterval = 256

// LineReplacer implements TextReplacer by running a query on every line.
// Line terminators are never part of a match and are kept as they are.
type LineReplacer struct {
	matcher Matcher
}

var _ TextReplacer = (*LineReplacer)(nil)

// NewLineReplacer creates a new LineReplacer for q
func NewLineReplacer(q *query.Query) *LineReplacer {
	return &LineReplacer{matcher: MatcherFor(q)}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *LineReplacer) ReplaceText(ctx context.Context, content io.Reader) (*ReplacementResult, error) {
	// Read all content
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	return r.ReplaceBytes(ctx, originalContent)
}

// ReplaceBytes is like ReplaceText for content already in memory
func (r *LineReplacer) ReplaceBytes(ctx context.Context, originalContent []byte) (*ReplacementResult, error) {
	// Create result with original content
	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	lines := strings.SplitAfter(string(originalContent), "\n")
	var modified strings.Builder
	modified.Grow(len(originalContent))

	for i, line := range lines {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.Errorf("replacing text: %w", err)
			}
		}
		if line == "" {
			continue
		}

		body, eol := splitLineEnding(line)
		replacement, ok := ReplaceWith(body, r.matcher)
		if !ok {
			modified.WriteString(line)
			continue
		}

		result.WasModified = true
		result.ReplacementCount += replacement.Fragments().Len()
		result.Lines = append(result.Lines, LineChange{
			Number:      i + 1,
			Replacement: replacement,
		})
		modified.WriteString(replacement.Output())
		modified.WriteString(eol)
	}

	// Update final content
	if result.WasModified {
		result.ModifiedContent = []byte(modified.String())
	}
	return result, nil
}

func splitLineEnding(line string) (string, string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	default:
		return line, ""
	}
}
