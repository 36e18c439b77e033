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

package casing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "snake", input: "foo_bar", want: []string{"foo", "bar"}},
		{name: "kebab", input: "foo-bar", want: []string{"foo", "bar"}},
		{name: "pascal", input: "FooBar", want: []string{"Foo", "Bar"}},
		{name: "camel", input: "fooBar", want: []string{"foo", "Bar"}},
		{name: "screaming", input: "FOO_BAR", want: []string{"FOO", "BAR"}},
		{name: "acronym", input: "HTTPServer", want: []string{"HTTP", "Server"}},
		{name: "trailing_acronym", input: "serveHTTP", want: []string{"serve", "HTTP"}},
		{name: "digits_follow_word", input: "foo2Bar", want: []string{"foo2", "Bar"}},
		{name: "acronym_then_words", input: "XMLHttpRequest", want: []string{"XML", "Http", "Request"}},
		{name: "digit_before_acronym", input: "v2API", want: []string{"v2", "API"}},
		{name: "single_upper_run", input: "ID", want: []string{"ID"}},
		{name: "spaces", input: "  foo   bar ", want: []string{"foo", "bar"}},
		{name: "unicode", input: "été_chaud", want: []string{"été", "chaud"}},
		{name: "separators_only", input: "__-", want: nil},
		{name: "empty", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.input))
		})
	}
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [NumConventions]string
	}{
		{
			name:  "snake_input",
			input: "foo_bar",
			want:  [NumConventions]string{"fooBar", "foo-bar", "FooBar", "FOO_BAR", "foo_bar", "Foo-Bar", "Foo_Bar"},
		},
		{
			name:  "pascal_input",
			input: "SpamEggs",
			want:  [NumConventions]string{"spamEggs", "spam-eggs", "SpamEggs", "SPAM_EGGS", "spam_eggs", "Spam-Eggs", "Spam_Eggs"},
		},
		{
			name:  "acronym_input",
			input: "HTTPServer",
			want:  [NumConventions]string{"httpServer", "http-server", "HttpServer", "HTTP_SERVER", "http_server", "Http-Server", "Http_Server"},
		},
		{
			name:  "single_word",
			input: "foo",
			want:  [NumConventions]string{"foo", "foo", "Foo", "FOO", "foo", "Foo", "Foo"},
		},
		{
			name:  "unicode_word",
			input: "été_chaud",
			want:  [NumConventions]string{"étéChaud", "été-chaud", "ÉtéChaud", "ÉTÉ_CHAUD", "été_chaud", "Été-Chaud", "Été_Chaud"},
		},
		{
			name:  "no_words",
			input: "__",
			want:  [NumConventions]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(tt.input))
		})
	}
}

func TestExpandIsIndexAligned(t *testing.T) {
	patterns := Expand("foo_bar")
	replacements := Expand("spam_eggs")

	for i, conv := range Conventions {
		assert.Equal(t, Render(conv, "foo_bar"), patterns[i], "pattern %s", conv)
		assert.Equal(t, Render(conv, "spam_eggs"), replacements[i], "replacement %s", conv)
	}
}

func TestConventionString(t *testing.T) {
	assert.Equal(t, "camel", Camel.String())
	assert.Equal(t, "screaming_snake", ScreamingSnake.String())
	assert.Equal(t, "ugly", Ugly.String())
	assert.Equal(t, "unknown", Convention(42).String())
}
