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

package pattern

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"gitlab.com/tozd/go/errors"
)

type backtrackRegexp struct {
	re *regexp2.Regexp
}

func compileBacktrack(expr string, opts Options) (*backtrackRegexp, error) {
	flags := regexp2.RegexOptions(regexp2.RE2)
	if opts.IgnoreCase {
		flags |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(expr, flags)
	if err != nil {
		return nil, errors.Errorf("compiling %q: %w", expr, err)
	}
	if opts.Timeout > 0 {
		re.MatchTimeout = opts.Timeout
	}
	return &backtrackRegexp{re: re}, nil
}

func (r *backtrackRegexp) String() string {
	return r.re.String()
}

func (r *backtrackRegexp) FindFirst(buffer string) (Match, bool) {
	m, err := r.re.FindStringMatch(buffer)
	for err == nil && m != nil && m.Length == 0 {
		m, err = r.re.FindNextMatch(m)
	}
	// err is a match timeout; the buffer is treated as having no more matches.
	if err != nil || m == nil {
		return Match{}, false
	}

	// regexp2 reports positions in runes.
	start := byteOffset(buffer, 0, m.Index)
	end := byteOffset(buffer, start, m.Length)

	return Match{
		Start: start,
		End:   end,
		expand: func(template string) string {
			return expandGroups(template, m)
		},
	}, true
}

// byteOffset advances runes runes from byte offset from in s. Invalid bytes
// count as one rune each, the same way a []rune conversion treats them.
func byteOffset(s string, from, runes int) int {
	off := from
	for i := 0; i < runes && off < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return off
}

// expandGroups implements the template syntax of regexp.Regexp.Expand for a
// regexp2 match.
func expandGroups(template string, m *regexp2.Match) string {
	var b strings.Builder
	for {
		i := strings.IndexByte(template, '$')
		if i < 0 {
			break
		}
		b.WriteString(template[:i])
		template = template[i:]

		if len(template) > 1 && template[1] == '$' {
			b.WriteByte('$')
			template = template[2:]
			continue
		}

		name, rest, ok := extractGroupName(template)
		if !ok {
			// Malformed reference, keep the dollar sign.
			b.WriteByte('$')
			template = template[1:]
			continue
		}
		template = rest
		b.WriteString(groupText(m, name))
	}
	b.WriteString(template)
	return b.String()
}

func extractGroupName(template string) (name, rest string, ok bool) {
	if len(template) < 2 || template[0] != '$' {
		return "", "", false
	}

	brace := template[1] == '{'
	i := 1
	if brace {
		i = 2
	}
	j := i
	for j < len(template) && isGroupNameByte(template[j]) {
		j++
	}
	if j == i {
		return "", "", false
	}
	name = template[i:j]

	if brace {
		if j >= len(template) || template[j] != '}' {
			return "", "", false
		}
		j++
	}
	return name, template[j:], true
}

func isGroupNameByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func groupText(m *regexp2.Match, name string) string {
	var g *regexp2.Group
	if n, err := strconv.Atoi(name); err == nil {
		g = m.GroupByNumber(n)
	} else {
		g = m.GroupByName(name)
	}
	if g == nil || len(g.Captures) == 0 {
		return ""
	}
	return g.String()
}
