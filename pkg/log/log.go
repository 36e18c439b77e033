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
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/walteh/subvert/pkg/text"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 35 // Base width for filename
	countWidth = 6  // Width for line and replacement counts
)

// 🎯 FileOperation represents the outcome of processing one file
type FileOperation struct {
	Path         string // File path
	Lines        int    // Number of matching lines
	Replacements int    // Number of replacements made
	Written      bool   // Whether the file was rewritten on disk
	Skipped      string // Why the file was skipped, empty when it was processed
}

// 📊 Summary represents the totals of a run
type Summary struct {
	Files        int  // Files with at least one match
	Lines        int  // Matching lines
	Replacements int  // Replacements made
	DryRun       bool // Whether files were left untouched
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	quiet   bool
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// WithZerolog replaces the structured logger
func (l *Logger) WithZerolog(zlog zerolog.Logger) *Logger {
	l.zlog = zlog
	return l
}

// SetQuiet suppresses diffs and per file lines; summaries and warnings are
// still printed
func (l *Logger) SetQuiet(quiet bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.quiet = quiet
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context, along with its zerolog logger
func NewContext(ctx context.Context, l *Logger) context.Context {
	ctx = l.zlog.WithContext(ctx)
	return context.WithValue(ctx, contextKey{}, l)
}

// 🖍️ Highlighter renders diffs with terminal colors
type Highlighter struct{}

var _ text.Highlighter = Highlighter{}

func (Highlighter) Label(s string) string {
	return color.New(color.Bold).Sprint(s)
}

func (Highlighter) Marker(side text.Side, s string) string {
	if side == text.Before {
		return color.New(color.FgRed).Sprint(s)
	}
	return color.New(color.FgGreen).Sprint(s)
}

func (Highlighter) Fragment(side text.Side, s string) string {
	if side == text.Before {
		return color.New(color.FgRed, color.Underline).Sprint(s)
	}
	return color.New(color.FgGreen, color.Underline).Sprint(s)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch {
	case op.Skipped != "":
		symbol = '-'
		symbolColor = color.FgYellow
		status = "skipped: " + op.Skipped
	case op.Written:
		symbol = '✓'
		symbolColor = color.FgGreen
		status = "written"
	default:
		symbol = '⟳'
		symbolColor = color.FgBlue
		status = "would write"
	}

	return fmt.Sprintf("%s%s %s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%*d", countWidth, op.Lines)),
		color.New(color.FgMagenta).Sprint(fmt.Sprintf("%*d", countWidth, op.Replacements)),
		status)
}

// 📝 LogFileOperation logs the outcome of one file
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logFileOperation(op)
}

func (l *Logger) logFileOperation(op FileOperation) {
	if !l.quiet {
		fmt.Fprintln(l.console, l.formatFileOperation(op))
	}

	l.zlog.Debug().
		Str("file", op.Path).
		Int("lines", op.Lines).
		Int("replacements", op.Replacements).
		Bool("written", op.Written).
		Str("skipped", op.Skipped).
		Msg("file operation")
}

func (l *Logger) logReplacement(path string, lineNo int, r *text.Replacement) {
	if l.quiet {
		return
	}
	before, after := r.RenderDiffWith(path+":"+strconv.Itoa(lineNo), Highlighter{})
	fmt.Fprintln(l.console, before)
	fmt.Fprintln(l.console, after)
}

// 📝 LogFileChanges prints every changed line of a file followed by its
// outcome, without interleaving output from other files
func (l *Logger) LogFileChanges(ctx context.Context, op FileOperation, lines []text.LineChange) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, line := range lines {
		l.logReplacement(op.Path, line.Number, line.Replacement)
	}
	l.logFileOperation(op)
	if !l.quiet {
		fmt.Fprintln(l.console)
	}
}

// 📝 LogSummary prints the totals of a run
func (l *Logger) LogSummary(ctx context.Context, s Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	verb := "Performed"
	if s.DryRun {
		verb = "Would perform"
	}
	msg := fmt.Sprintf("%s %d replacements on %d matching lines in %d matching files",
		verb, s.Replacements, s.Lines, s.Files)

	printer := pterm.Success.WithWriter(l.console)
	if s.DryRun {
		printer = pterm.Info.WithWriter(l.console)
	}
	printer.Println(msg)
	if s.DryRun && s.Replacements > 0 {
		pterm.Info.WithWriter(l.console).Println("Re-run with --go to write these changes to the filesystem")
	}

	l.zlog.Info().
		Int("files", s.Files).
		Int("lines", s.Lines).
		Int("replacements", s.Replacements).
		Bool("dry_run", s.DryRun).
		Msg("run complete")
}

// ⚠️ Warning prints a warning, also when quiet
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// Warningf is Warning with formatting
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
