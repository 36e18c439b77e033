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

	"github.com/walteh/subvert/pkg/query"
)

// Replacement is the result of replacing a query in one buffer
type Replacement struct {
	fragments *Fragments
	input     string
	output    string
}

// Replace runs q over input. It returns false when nothing matched, in which
// case input is unchanged.
func Replace(input string, q *query.Query) (*Replacement, bool) {
	return ReplaceWith(input, MatcherFor(q))
}

// ReplaceWith is like Replace but uses an already built matcher. Matchers are
// read-only, so one matcher can serve any number of concurrent calls.
func ReplaceWith(input string, m Matcher) (*Replacement, bool) {
	fragments := Scan(input, m)
	if fragments.IsEmpty() {
		return nil, false
	}
	return &Replacement{
		fragments: fragments,
		input:     input,
		output:    Materialize(input, fragments),
	}, true
}

// Input returns the original text
func (r *Replacement) Input() string {
	return r.input
}

// Output returns the replaced text
func (r *Replacement) Output() string {
	return r.output
}

// Fragments returns the changes that turn Input into Output
func (r *Replacement) Fragments() *Fragments {
	return r.fragments
}

// Side is one half of a rendered diff
type Side int

const (
	// Before is the original text
	Before Side = iota
	// After is the replaced text
	After
)

// Highlighter decorates the parts of a rendered diff, for instance with
// terminal colors
type Highlighter interface {
	// Label decorates the context label, such as "path:line"
	Label(s string) string
	// Marker decorates the "--- " or "+++ " marker
	Marker(side Side, s string) string
	// Fragment decorates a changed span
	Fragment(side Side, s string) string
}

// PlainHighlighter leaves every part as is
type PlainHighlighter struct{}

func (PlainHighlighter) Label(s string) string { return s }

func (PlainHighlighter) Marker(_ Side, s string) string { return s }

func (PlainHighlighter) Fragment(_ Side, s string) string { return s }

// RenderDiff returns a "before" and an "after" line, each prefixed by label,
// without any decoration
func (r *Replacement) RenderDiff(label string) (string, string) {
	return r.RenderDiffWith(label, PlainHighlighter{})
}

// RenderDiffWith is like RenderDiff but lets h decorate the changed spans
func (r *Replacement) RenderDiffWith(label string, h Highlighter) (string, string) {
	before := renderSide(label, "--- ", Before, r.input, r.fragments.Inputs(), h)
	after := renderSide(label, "+++ ", After, r.output, r.fragments.Outputs(), h)
	return before, after
}

func renderSide(label, marker string, side Side, text string, fragments []Fragment, h Highlighter) string {
	var b strings.Builder
	if label != "" {
		b.WriteString(h.Label(label))
		b.WriteString(" ")
	}
	b.WriteString(h.Marker(side, marker))

	current := 0
	for _, f := range fragments {
		b.WriteString(text[current:f.Offset])
		b.WriteString(h.Fragment(side, f.Text))
		current = f.End()
	}
	b.WriteString(text[current:])

	return b.String()
}
