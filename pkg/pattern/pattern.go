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

// Package pattern wraps the regular expression engines subvert can match with.
//
// Two engines are available. EngineRE2 uses the standard library and runs in
// time linear in the input. EngineBacktrack uses github.com/dlclark/regexp2,
// which adds lookaround and backreferences at the cost of that guarantee; its
// match time can be bounded with Options.Timeout.
//
// Both engines only report non-empty matches: a zero-width match is skipped and
// the search resumes one rune later. Callers scanning a buffer repeatedly can
// therefore rely on every match consuming at least one byte.
package pattern

import (
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// Engine names a regular expression implementation.
type Engine string

const (
	EngineRE2       Engine = "re2"
	EngineBacktrack Engine = "backtrack"
)

// ParseEngine resolves an engine name. The empty string selects EngineRE2.
func ParseEngine(name string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(name))) {
	case "", EngineRE2:
		return EngineRE2, nil
	case EngineBacktrack:
		return EngineBacktrack, nil
	default:
		return "", errors.Errorf("unknown engine %q (want %q or %q)", name, EngineRE2, EngineBacktrack)
	}
}

// Options controls how a pattern is compiled.
type Options struct {
	Engine     Engine
	IgnoreCase bool
	// Timeout bounds a single search with EngineBacktrack. Zero means no limit.
	// A search that times out reports no match.
	Timeout time.Duration
}

// Match is one match of a Regexp inside the buffer it was found in.
// Start and End are byte offsets into that buffer.
type Match struct {
	Start int
	End   int

	expand func(template string) string
}

// Expand substitutes capture group references in template using the groups
// of this match only. References are written $1, ${1}, $name or ${name};
// $$ is a literal dollar sign. Unknown groups expand to the empty string.
func (m Match) Expand(template string) string {
	if m.expand == nil {
		return template
	}
	return m.expand(template)
}

// Regexp is a compiled pattern. Implementations are safe for concurrent use.
type Regexp interface {
	// String returns the source text of the pattern.
	String() string
	// FindFirst returns the leftmost non-empty match in buffer.
	FindFirst(buffer string) (Match, bool)
}

// Compile compiles expr with the engine selected in opts.
func Compile(expr string, opts Options) (Regexp, error) {
	engine, err := ParseEngine(string(opts.Engine))
	if err != nil {
		return nil, err
	}

	switch engine {
	case EngineBacktrack:
		return compileBacktrack(expr, opts)
	default:
		return compileRE2(expr, opts)
	}
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string, opts Options) Regexp {
	re, err := Compile(expr, opts)
	if err != nil {
		panic(err)
	}
	return re
}
