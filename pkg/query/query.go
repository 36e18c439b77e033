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

// Package query describes what to replace and with what.
//
// A Query is built once per run and never changes afterwards. Every
// constructor validates its arguments, so a *Query that exists can always be
// scanned without error.
package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/walteh/subvert/pkg/casing"
	"github.com/walteh/subvert/pkg/pattern"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrInvalidPattern is returned when a regular expression does not compile.
	ErrInvalidPattern = errors.Base("invalid pattern")
	// ErrDegenerateQuery is returned when a literal pattern is empty and would
	// match everywhere without consuming input.
	ErrDegenerateQuery = errors.Base("degenerate query")
)

// Kind tells which of the three query shapes a Query has.
type Kind int

const (
	KindLiteral Kind = iota
	KindPattern
	KindCaseVariantSet
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindPattern:
		return "pattern"
	case KindCaseVariantSet:
		return "subvert"
	default:
		return "unknown"
	}
}

// Pair is a pattern and the text that replaces it.
type Pair struct {
	Pattern     string
	Replacement string
}

// Query is an immutable replacement intent.
type Query struct {
	kind     Kind
	literal  Pair
	regex    pattern.Regexp
	template string
	variants []Pair
}

// Substring replaces every occurrence of from with to, verbatim.
func Substring(from, to string) (*Query, error) {
	if from == "" {
		return nil, argumentError(ErrDegenerateQuery, "pattern", "pattern must not be empty")
	}
	return &Query{
		kind:    KindLiteral,
		literal: Pair{Pattern: from, Replacement: to},
	}, nil
}

// SubstringIgnoreCase replaces from, matched without regard to case, with to
// verbatim. It is expressed as a pattern query over the quoted literal.
func SubstringIgnoreCase(from, to string, opts pattern.Options) (*Query, error) {
	if from == "" {
		return nil, argumentError(ErrDegenerateQuery, "pattern", "pattern must not be empty")
	}
	opts.IgnoreCase = true
	return FromRegex(regexp.QuoteMeta(from), strings.ReplaceAll(to, "$", "$$"), opts)
}

// FromRegex compiles expr and replaces each match with template, where
// template may reference the capture groups of the match.
func FromRegex(expr, template string, opts pattern.Options) (*Query, error) {
	re, err := pattern.Compile(expr, opts)
	if err != nil {
		return nil, argumentError(ErrInvalidPattern, "pattern", err.Error())
	}
	return FromCompiled(re, template), nil
}

// FromCompiled wraps an already compiled pattern.
func FromCompiled(re pattern.Regexp, template string) *Query {
	return &Query{
		kind:     KindPattern,
		regex:    re,
		template: template,
	}
}

// Subvert replaces from with to in every case convention casing knows about:
// foo_bar becomes spam_eggs, FooBar becomes SpamEggs, FOO_BAR becomes
// SPAM_EGGS and so on.
func Subvert(from, to string) (*Query, error) {
	if from == "" {
		return nil, argumentError(ErrDegenerateQuery, "pattern", "pattern must not be empty")
	}

	patterns := casing.Expand(from)
	replacements := casing.Expand(to)

	variants := make([]Pair, casing.NumConventions)
	for i := range variants {
		if patterns[i] == "" {
			return nil, argumentError(ErrDegenerateQuery, "pattern",
				fmt.Sprintf("pattern %q has no %s case rendering", from, casing.Conventions[i]))
		}
		variants[i] = Pair{Pattern: patterns[i], Replacement: replacements[i]}
	}

	return &Query{
		kind:     KindCaseVariantSet,
		variants: variants,
	}, nil
}

// Kind returns the shape of the query.
func (q *Query) Kind() Kind {
	return q.kind
}

// Literal returns the pattern and replacement of a KindLiteral query.
func (q *Query) Literal() Pair {
	return q.literal
}

// Regex returns the compiled pattern and replacement template of a
// KindPattern query.
func (q *Query) Regex() (pattern.Regexp, string) {
	return q.regex, q.template
}

// Variants returns a copy of the index-aligned case variants of a
// KindCaseVariantSet query.
func (q *Query) Variants() []Pair {
	out := make([]Pair, len(q.variants))
	copy(out, q.variants)
	return out
}

func (q *Query) String() string {
	switch q.kind {
	case KindLiteral:
		return fmt.Sprintf("literal %q -> %q", q.literal.Pattern, q.literal.Replacement)
	case KindPattern:
		return fmt.Sprintf("pattern /%s/ -> %q", q.regex, q.template)
	case KindCaseVariantSet:
		return fmt.Sprintf("subvert %q -> %q", q.variants[casing.Snake].Pattern, q.variants[casing.Snake].Replacement)
	default:
		return "unknown query"
	}
}

// Argument returns the name of the argument an error returned by one of the
// constructors refers to, or "" when err carries none.
func Argument(err error) string {
	for err != nil {
		if details := errors.Details(err); details != nil {
			if arg, ok := details["argument"].(string); ok {
				return arg
			}
		}
		err = errors.Unwrap(err)
	}
	return ""
}

func argumentError(base error, argument, msg string) error {
	return errors.WithDetails(errors.Errorf("%w: %s", base, msg), "argument", argument)
}
