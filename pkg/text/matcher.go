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
	"strings"

	"github.com/walteh/subvert/pkg/pattern"
	"github.com/walteh/subvert/pkg/query"
)

// Match is a single match found by a Matcher
type Match struct {
	// Position is the byte offset of the match inside the searched buffer
	Position int

	// Matched is the exact text that matched
	Matched string

	// Replacement is the text that replaces Matched
	Replacement string
}

// Matcher finds the next match in a buffer
type Matcher interface {
	// FindNextMatch returns the leftmost match in buffer, or false if buffer
	// contains none. Matched is never empty.
	FindNextMatch(buffer string) (Match, bool)
}

// MatcherFor returns the matcher implementing q
func MatcherFor(q *query.Query) Matcher {
	switch q.Kind() {
	case query.KindPattern:
		re, template := q.Regex()
		return NewPatternMatcher(re, template)
	case query.KindCaseVariantSet:
		return NewMultiPatternMatcher(q.Variants())
	default:
		lit := q.Literal()
		return NewLiteralMatcher(lit.Pattern, lit.Replacement)
	}
}

// LiteralMatcher matches a fixed string
type LiteralMatcher struct {
	pattern     string
	replacement string
}

// NewLiteralMatcher creates a new LiteralMatcher
func NewLiteralMatcher(pattern, replacement string) *LiteralMatcher {
	return &LiteralMatcher{pattern: pattern, replacement: replacement}
}

// FindNextMatch implements Matcher.FindNextMatch
func (m *LiteralMatcher) FindNextMatch(buffer string) (Match, bool) {
	if m.pattern == "" {
		return Match{}, false
	}
	pos := strings.Index(buffer, m.pattern)
	if pos < 0 {
		return Match{}, false
	}
	return Match{Position: pos, Matched: m.pattern, Replacement: m.replacement}, true
}

// PatternMatcher matches a compiled pattern and expands a replacement template
// against each match
type PatternMatcher struct {
	re       pattern.Regexp
	template string
}

// NewPatternMatcher creates a new PatternMatcher
func NewPatternMatcher(re pattern.Regexp, template string) *PatternMatcher {
	return &PatternMatcher{re: re, template: template}
}

// FindNextMatch implements Matcher.FindNextMatch
func (m *PatternMatcher) FindNextMatch(buffer string) (Match, bool) {
	found, ok := m.re.FindFirst(buffer)
	if !ok {
		return Match{}, false
	}
	return Match{
		Position:    found.Start,
		Matched:     buffer[found.Start:found.End],
		Replacement: found.Expand(m.template),
	}, true
}

// MultiPatternMatcher matches whichever of several literal patterns occurs
// first. When two patterns start at the same offset the one listed first wins.
type MultiPatternMatcher struct {
	pairs []query.Pair
}

// NewMultiPatternMatcher creates a new MultiPatternMatcher. Pairs with an
// empty pattern never match.
func NewMultiPatternMatcher(pairs []query.Pair) *MultiPatternMatcher {
	return &MultiPatternMatcher{pairs: pairs}
}

// FindNextMatch implements Matcher.FindNextMatch
func (m *MultiPatternMatcher) FindNextMatch(buffer string) (Match, bool) {
	// Taking the leftmost candidate keeps a later variant (FooBar) from being
	// replaced before an earlier one (foo-bar) that overlaps it.
	best := -1
	bestPos := len(buffer) + 1
	for i, pair := range m.pairs {
		if pair.Pattern == "" {
			continue
		}
		pos := strings.Index(buffer, pair.Pattern)
		if pos >= 0 && pos < bestPos {
			best = i
			bestPos = pos
		}
	}

	if best < 0 {
		return Match{}, false
	}
	return Match{
		Position:    bestPos,
		Matched:     m.pairs[best].Pattern,
		Replacement: m.pairs[best].Replacement,
	}, true
}
