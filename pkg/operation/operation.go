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
	"context"
	"runtime"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/subvert/pkg/log"
	"github.com/walteh/subvert/pkg/query"
	"github.com/walteh/subvert/pkg/status"
	"github.com/walteh/subvert/pkg/walker"
)

// ErrNoMatches is returned when a run found nothing to replace
var ErrNoMatches = errors.Base("no matches found")

// 🎯 Operation is a unit of work the runner can execute
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains configuration for an operation
type Options struct {
	// Query is what to search for and what to replace it with
	Query *query.Query
	// Paths are the files and directories to process, "." when empty
	Paths []string
	// Walker selects files below directories
	Walker walker.Settings
	// Write rewrites files on disk; otherwise the run only reports
	Write bool
	// Jobs is the number of files processed at once, NumCPU when zero
	Jobs int
	// Console receives diffs and the summary
	Console *log.Logger
	// Files reads and writes files, a status.Manager rooted at "." when nil
	Files status.FileManager
	// Reporter records per file outcomes, the Files manager when nil
	Reporter status.StatusReporter
}

// 📊 Stats are the totals of a replace run
type Stats struct {
	MatchingFiles int
	MatchingLines int
	Replacements  int
	SkippedFiles  int
}

// 🧱 BaseOperation holds what every operation shares
type BaseOperation struct {
	Options
	Logger *zerolog.Logger
}

// 🏭 NewBaseOperation validates opts and fills in defaults
func NewBaseOperation(ctx context.Context, opts Options) (BaseOperation, error) {
	if opts.Query == nil {
		return BaseOperation{}, errors.Errorf("query is required")
	}
	if opts.Console == nil {
		return BaseOperation{}, errors.Errorf("console logger is required")
	}
	if opts.Jobs < 0 {
		return BaseOperation{}, errors.Errorf("jobs must not be negative, got %d", opts.Jobs)
	}
	if opts.Jobs == 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if len(opts.Paths) == 0 {
		opts.Paths = []string{"."}
	}

	logger := zerolog.Ctx(ctx)
	if opts.Files == nil {
		opts.Files = status.New(".", logger)
	}
	if opts.Reporter == nil {
		reporter, ok := opts.Files.(status.StatusReporter)
		if !ok {
			reporter = status.New(".", logger)
		}
		opts.Reporter = reporter
	}

	return BaseOperation{
		Options: opts,
		Logger:  logger,
	}, nil
}
