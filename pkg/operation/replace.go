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

package operation

import (
	"bytes"
	"context"
	"sync"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/subvert/pkg/log"
	"github.com/walteh/subvert/pkg/status"
	"github.com/walteh/subvert/pkg/text"
	"github.com/walteh/subvert/pkg/walker"
)

// 🔄 ReplaceOperation runs a query over every selected file
type ReplaceOperation struct {
	BaseOperation

	walker   *walker.Walker
	replacer *text.LineReplacer

	mu    sync.Mutex
	stats Stats
}

var _ Operation = (*ReplaceOperation)(nil)

// 🏭 NewReplaceOperation creates a new replace operation
func NewReplaceOperation(ctx context.Context, opts Options) (*ReplaceOperation, error) {
	base, err := NewBaseOperation(ctx, opts)
	if err != nil {
		return nil, err
	}

	w, err := walker.New(base.Walker)
	if err != nil {
		return nil, errors.Errorf("creating walker: %w", err)
	}
	w.OnUnreadable(func(path string, err error) {
		base.Console.Warningf("skipping %s: %v", path, err)
	})

	return &ReplaceOperation{
		BaseOperation: base,
		walker:        w,
		replacer:      text.NewLineReplacer(base.Query),
	}, nil
}

// 🏃 Execute runs the replace operation. It returns ErrNoMatches when no
// file had anything to replace.
func (op *ReplaceOperation) Execute(ctx context.Context) error {
	op.Logger.Debug().
		Str("query", op.Query.String()).
		Strs("paths", op.Paths).
		Bool("write", op.Write).
		Int("jobs", op.Jobs).
		Msg("starting replace")

	files, err := op.walker.Files(ctx, op.Paths...)
	if err != nil {
		return errors.Errorf("listing files: %w", err)
	}

	op.Reporter.StartOperation(ctx, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(op.Jobs)
	for _, file := range files {
		g.Go(func() error {
			if err := op.processFile(gctx, file); err != nil {
				op.Reporter.TrackFile(gctx, status.FileInfo{Path: file, Status: status.StatusFailed, Error: err})
				return errors.Errorf("processing file %s: %w", file, err)
			}
			op.Reporter.IncrementProgress(gctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	op.Reporter.FinishOperation(ctx)

	stats := op.Stats()
	op.Console.LogSummary(ctx, log.Summary{
		Files:        stats.MatchingFiles,
		Lines:        stats.MatchingLines,
		Replacements: stats.Replacements,
		DryRun:       !op.Write,
	})

	if stats.Replacements == 0 {
		return ErrNoMatches
	}
	return nil
}

// Stats returns the totals collected so far
func (op *ReplaceOperation) Stats() Stats {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.stats
}

// 📄 processFile replaces in a single file
func (op *ReplaceOperation) processFile(ctx context.Context, path string) error {
	content, info, err := op.Files.ReadFile(ctx, path)
	if err != nil {
		return err
	}

	if reason := skipReason(content); reason != "" {
		info.Status = status.StatusSkipped
		info.Reason = reason
		op.Console.LogFileOperation(ctx, log.FileOperation{Path: path, Skipped: reason})
		op.Reporter.TrackFile(ctx, info)
		op.mu.Lock()
		op.stats.SkippedFiles++
		op.mu.Unlock()
		return nil
	}

	result, err := op.replacer.ReplaceBytes(ctx, content)
	if err != nil {
		return err
	}

	if !result.WasModified {
		info.Status = status.StatusUnchanged
		op.Reporter.TrackFile(ctx, info)
		return nil
	}

	info.Status = status.StatusMatched
	if op.Write {
		if err := op.Files.ReplaceFile(ctx, info, result.ModifiedContent); err != nil {
			return err
		}
		info.Status = status.StatusWritten
	}
	info.Lines = len(result.Lines)
	info.Replacements = result.ReplacementCount

	op.Console.LogFileChanges(ctx, log.FileOperation{
		Path:         path,
		Lines:        info.Lines,
		Replacements: info.Replacements,
		Written:      info.Status == status.StatusWritten,
	}, result.Lines)
	op.Reporter.TrackFile(ctx, info)

	op.mu.Lock()
	op.stats.MatchingFiles++
	op.stats.MatchingLines += info.Lines
	op.stats.Replacements += info.Replacements
	op.mu.Unlock()

	return nil
}

// skipReason tells why content should not be treated as text, or "" when it
// can be processed
func skipReason(content []byte) string {
	if bytes.IndexByte(content, 0) >= 0 {
		return "binary"
	}
	if !utf8.Valid(content) {
		return "invalid utf-8"
	}
	return ""
}
