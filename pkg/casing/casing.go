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

// Package casing renders a word in each of the naming conventions subvert
// knows about.
package casing

import (
	"strings"
	"unicode"

	"github.com/ettle/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Convention is a naming convention such as snake_case or PascalCase.
type Convention int

const (
	Camel          Convention = iota // fooBar
	Kebab                            // foo-bar
	Pascal                           // FooBar
	ScreamingSnake                   // FOO_BAR
	Snake                            // foo_bar
	Train                            // Foo-Bar
	Ugly                             // Foo_Bar
)

// NumConventions is the number of variants produced by Expand.
const NumConventions = 7

// Conventions lists every convention in expansion order. The order is fixed:
// Expand(a)[i] and Expand(b)[i] always use the same convention.
var Conventions = [NumConventions]Convention{Camel, Kebab, Pascal, ScreamingSnake, Snake, Train, Ugly}

func (c Convention) String() string {
	switch c {
	case Camel:
		return "camel"
	case Kebab:
		return "kebab"
	case Pascal:
		return "pascal"
	case ScreamingSnake:
		return "screaming_snake"
	case Snake:
		return "snake"
	case Train:
		return "train"
	case Ugly:
		return "ugly"
	default:
		return "unknown"
	}
}

// casers holds per-call case mappers; a cases.Caser is stateful and must not
// be shared between goroutines.
type casers struct {
	lower cases.Caser
	upper cases.Caser
	title cases.Caser
}

func newCasers() *casers {
	return &casers{
		lower: cases.Lower(language.Und),
		upper: cases.Upper(language.Und),
		title: cases.Title(language.Und),
	}
}

// Expand renders word in every convention, in the order of Conventions.
func Expand(word string) [NumConventions]string {
	words := Words(word)
	c := newCasers()

	var out [NumConventions]string
	for i, conv := range Conventions {
		out[i] = c.render(conv, words)
	}
	return out
}

// Render renders word in a single convention.
func Render(conv Convention, word string) string {
	return newCasers().render(conv, Words(word))
}

func (c *casers) render(conv Convention, words []string) string {
	parts := make([]string, len(words))
	for i, w := range words {
		switch conv {
		case Camel:
			if i == 0 {
				parts[i] = c.lower.String(w)
			} else {
				parts[i] = c.title.String(w)
			}
		case Kebab, Snake:
			parts[i] = c.lower.String(w)
		case ScreamingSnake:
			parts[i] = c.upper.String(w)
		case Pascal, Train, Ugly:
			parts[i] = c.title.String(w)
		}
	}

	switch conv {
	case Kebab, Train:
		return strings.Join(parts, "-")
	case Snake, ScreamingSnake, Ugly:
		return strings.Join(parts, "_")
	default:
		return strings.Join(parts, "")
	}
}

// splitWords decides word boundaries inside a run of letters and digits:
// lower-to-upper transitions, and the last upper of an upper run followed by a
// lower. Digits are not split off.
var splitWords = strcase.NewSplitFn(nil, strcase.SplitCase, strcase.SplitAcronym)

// Words splits s into its words. Any rune that is neither a letter nor a digit
// separates words, as does a lower-to-upper transition. In a run of upper case
// letters followed by a lower case one, the last upper starts a new word, so
// "HTTPServer" splits into "HTTP" and "Server". Digits stay with the word they
// follow.
func Words(s string) []string {
	runes := []rune(s)
	var words []string
	var word []rune
	flush := func() {
		if len(word) > 0 {
			words = append(words, string(word))
			word = nil
		}
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(word) > 0 {
			var next rune
			if i+1 < len(runes) {
				next = runes[i+1]
			}
			switch splitWords(runes[i-1], r, next) {
			case strcase.Split:
				flush()
			case strcase.SkipSplit:
				flush()
				continue
			case strcase.Skip:
				continue
			}
		}
		word = append(word, r)
	}
	flush()
	return words
}
