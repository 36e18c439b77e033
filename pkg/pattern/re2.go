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
	"regexp"

	"gitlab.com/tozd/go/errors"
)

type re2Regexp struct {
	re *regexp.Regexp
}

func compileRE2(expr string, opts Options) (*re2Regexp, error) {
	source := expr
	if opts.IgnoreCase {
		source = "(?i)" + expr
	}
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, errors.Errorf("compiling %q: %w", expr, err)
	}
	return &re2Regexp{re: re}, nil
}

func (r *re2Regexp) String() string {
	return r.re.String()
}

func (r *re2Regexp) FindFirst(buffer string) (Match, bool) {
	loc := r.re.FindStringSubmatchIndex(buffer)
	if loc == nil {
		return Match{}, false
	}

	// Only an empty leftmost match needs the full scan; FindAll already
	// steps over empty matches while keeping anchors relative to buffer.
	if loc[1] == loc[0] {
		loc = nil
		for _, candidate := range r.re.FindAllStringSubmatchIndex(buffer, -1) {
			if candidate[1] > candidate[0] {
				loc = candidate
				break
			}
		}
		if loc == nil {
			return Match{}, false
		}
	}

	return Match{
		Start: loc[0],
		End:   loc[1],
		expand: func(template string) string {
			return string(r.re.ExpandString(nil, template, buffer, loc))
		},
	}, true
}
