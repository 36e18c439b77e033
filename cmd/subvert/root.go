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

package main

import (
	"context"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/subvert/pkg/config"
	"github.com/walteh/subvert/pkg/log"
	"github.com/walteh/subvert/pkg/operation"
	"github.com/walteh/subvert/pkg/pattern"
	"github.com/walteh/subvert/pkg/query"
)

// exit codes
const (
	exitOK        = 0
	exitError     = 1
	exitNoMatches = 2
)

type rootOpts struct {
	write      bool
	regex      bool
	subvert    bool
	ignoreCase bool
	hidden     bool
	quiet      bool
	debug      bool
	noColor    bool

	engine      string
	timeout     time.Duration
	globs       []string
	ignoreGlobs []string
	jobs        int
	configFile  string
}

// run executes the command line and maps the outcome to an exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, operation.ErrNoMatches):
		return exitNoMatches
	default:
		pterm.Error.WithWriter(stderr).Println(err.Error())
		return exitError
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "subvert [flags] PATTERN REPLACEMENT [PATH...]",
		Short: "Find and replace text in source files",
		Long: `subvert replaces PATTERN with REPLACEMENT in every text file below PATH
(the current directory by default).

Nothing is written unless --go is given: by default subvert prints what it
would change. With --regex, PATTERN is a regular expression and REPLACEMENT
may reference its groups ($1, ${name}). With --subvert, every case variant of
PATTERN (snake_case, camelCase, PascalCase, kebab-case, SCREAMING_SNAKE,
Train-Case, Ugly_Case) is replaced by the same variant of REPLACEMENT.`,
		Example: `  subvert old_name new_name
  subvert --go --subvert foo_bar spam_eggs src/
  subvert --regex '(\w+)@example\.com' '$1@test.org' --glob '*.md'`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.BoolVarP(&o.write, "go", "g", false, "write the changes to the filesystem")
	flags.BoolVar(&o.regex, "regex", false, "treat PATTERN as a regular expression")
	flags.BoolVar(&o.subvert, "subvert", false, "replace every case variant of PATTERN")
	flags.BoolVarP(&o.ignoreCase, "ignore-case", "i", false, "match without regard to case")
	flags.StringVar(&o.engine, "engine", "", "regular expression engine: re2 or backtrack")
	flags.DurationVar(&o.timeout, "timeout", 0, "limit for a single backtrack search, 0 for none")
	flags.BoolVar(&o.hidden, "hidden", false, "also search hidden files and directories")
	flags.StringArrayVarP(&o.globs, "glob", "G", nil, "only search files matching this glob (repeatable)")
	flags.StringArrayVar(&o.ignoreGlobs, "ignore-glob", nil, "skip files matching this glob (repeatable)")
	flags.IntVarP(&o.jobs, "jobs", "j", 0, "files processed at once, 0 for the number of CPUs")
	flags.BoolVarP(&o.quiet, "quiet", "q", false, "only print the summary")
	flags.StringVarP(&o.configFile, "config", "c", "", "config file, .subvert.{yaml,yml,hcl,json} in the working directory by default")
	flags.BoolVarP(&o.debug, "debug", "d", false, "enable debug logging")
	flags.BoolVar(&o.noColor, "no-color", false, "disable colored output")

	cmd.MarkFlagsMutuallyExclusive("regex", "subvert")
	cmd.MarkFlagsMutuallyExclusive("ignore-case", "subvert")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (o *rootOpts) run(cmd *cobra.Command, args []string) error {
	if o.noColor {
		color.NoColor = true
		pterm.DisableStyling()
	}

	level := zerolog.WarnLevel
	if o.debug {
		level = zerolog.DebugLevel
	}
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = cmd.ErrOrStderr()
		w.NoColor = o.noColor
	})).Level(level).With().Timestamp().Logger()

	console := log.New(cmd.OutOrStdout(), level).WithZerolog(zlog)
	console.SetQuiet(o.quiet)
	ctx := log.NewContext(cmd.Context(), console)

	cfg, err := o.loadConfig(ctx, cmd)
	if err != nil {
		return err
	}
	zlog.Debug().Str("config", cfg.String()).Msg("resolved options")

	q, err := o.buildQuery(ctx, cfg, args[0], args[1])
	if err != nil {
		return err
	}

	op, err := operation.NewReplaceOperation(ctx, operation.Options{
		Query:   q,
		Paths:   args[2:],
		Walker:  cfg.WalkerSettings(),
		Write:   o.write,
		Jobs:    cfg.Jobs,
		Console: console,
	})
	if err != nil {
		return err
	}

	return operation.NewRunner(&zlog, false).Run(ctx, op)
}

// loadConfig reads the config file, if any, and applies the flags that were
// set explicitly on top of it
func (o *rootOpts) loadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	path := o.configFile
	if path == "" {
		found, err := config.Discover(".")
		if err != nil {
			return nil, errors.Errorf("discovering config: %w", err)
		}
		path = found
	}

	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("hidden") {
		cfg.Hidden = o.hidden
	}
	if flags.Changed("glob") {
		cfg.Globs = o.globs
	}
	if flags.Changed("ignore-glob") {
		cfg.IgnoreGlobs = o.ignoreGlobs
	}
	if flags.Changed("jobs") {
		cfg.Jobs = o.jobs
	}
	if flags.Changed("engine") {
		cfg.Engine = o.engine
	}
	if flags.Changed("timeout") {
		cfg.Timeout = o.timeout.String()
	}
	if flags.Changed("ignore-case") {
		cfg.IgnoreCase = o.ignoreCase
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

// buildQuery picks the query shape from the flags
func (o *rootOpts) buildQuery(ctx context.Context, cfg *config.Config, from, to string) (*query.Query, error) {
	timeout, err := cfg.MatchTimeout()
	if err != nil {
		return nil, err
	}
	opts := pattern.Options{
		Engine:     pattern.Engine(cfg.Engine),
		IgnoreCase: cfg.IgnoreCase,
		Timeout:    timeout,
	}

	var q *query.Query
	switch {
	case o.subvert:
		if cfg.IgnoreCase {
			zerolog.Ctx(ctx).Debug().Msg("ignore_case has no effect with --subvert")
		}
		q, err = query.Subvert(from, to)
	case o.regex:
		q, err = query.FromRegex(from, to, opts)
	case cfg.IgnoreCase:
		q, err = query.SubstringIgnoreCase(from, to, opts)
	default:
		q, err = query.Substring(from, to)
	}
	if err != nil {
		if arg := query.Argument(err); arg != "" {
			return nil, errors.Errorf("invalid %s %q: %w", arg, from, err)
		}
		return nil, err
	}
	return q, nil
}
