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
)

// Scan runs m over input left to right and records every match. Matches never
// overlap: after a match, scanning resumes right after the matched text.
func Scan(input string, m Matcher) *Fragments {
	fragments := &Fragments{}
	inputIndex := 0
	outputIndex := 0

	for {
		match, ok := m.FindNextMatch(input[inputIndex:])
		if !ok || match.Matched == "" {
			break
		}

		inputIndex += match.Position
		outputIndex += match.Position
		fragments.add(
			Fragment{Offset: inputIndex, Text: match.Matched},
			Fragment{Offset: outputIndex, Text: match.Replacement},
		)

		inputIndex += len(match.Matched)
		outputIndex += len(match.Replacement)
	}

	return fragments
}

// Materialize builds the output string by copying the text between input
// fragments verbatim and substituting each fragment with its replacement.
func Materialize(input string, fragments *Fragments) string {
	var b strings.Builder
	b.Grow(len(input))

	current := 0
	for _, pair := range fragments.pairs {
		b.WriteString(input[current:pair.Input.Offset])
		b.WriteString(pair.Output.Text)
		current = pair.Input.End()
	}
	b.WriteString(input[current:])

	return b.String()
}
