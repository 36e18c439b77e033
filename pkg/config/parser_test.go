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

package config

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestParserRegistration tests the parser registration system
func TestParserRegistration(t *testing.T) {
	// Save original parsers
	originalParsers := parsers
	defer func() {
		parsers = originalParsers
	}()

	// Reset parsers
	parsers = nil

	mockParser := &struct {
		Parser
		canParse bool
	}{
		canParse: true,
	}

	Register(mockParser)
	assert.Len(t, parsers, 1, "should have 1 parser registered")
	assert.Equal(t, mockParser, parsers[0], "registered parser should match")
}

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{name: "yaml_file", filename: ".subvert.yaml", want: &YAMLParser{}},
		{name: "yml_file", filename: ".subvert.yml", want: &YAMLParser{}},
		{name: "hcl_file", filename: ".subvert.hcl", want: &HCLParser{}},
		{name: "json_file", filename: ".subvert.json", want: &JSONParser{}},
		{name: "json_upper_case", filename: "SUBVERT.JSON", want: &JSONParser{}},
		{name: "unknown_extension", filename: ".subvert.toml", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "should return nil for unknown extension")
				return
			}
			require.NotNil(t, got, "should return a parser")
			assert.IsType(t, tt.want, got, "should return correct parser type")
		})
	}
}

// 🧪 TestHCLParsing tests HCL config parsing
func TestHCLParsing(t *testing.T) {
	t.Setenv("SUBVERT_TEST_ENGINE", "backtrack")

	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_hcl",
			config: `
hidden       = true
globs        = ["*.go", "**/*.md"]
ignore_globs = ["vendor"]
jobs         = 4
engine       = "re2"
timeout      = "2s"
ignore_case  = true
`,
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Hidden)
				assert.Equal(t, []string{"*.go", "**/*.md"}, cfg.Globs)
				assert.Equal(t, []string{"vendor"}, cfg.IgnoreGlobs)
				assert.Equal(t, 4, cfg.Jobs)
				assert.Equal(t, "re2", cfg.Engine)
				assert.Equal(t, "2s", cfg.Timeout)
				assert.True(t, cfg.IgnoreCase)
			},
		},
		{
			name:   "expressions",
			config: `jobs = num_cpu`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, runtime.NumCPU(), cfg.Jobs)
			},
		},
		{
			name:   "environment",
			config: `engine = env.SUBVERT_TEST_ENGINE`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "backtrack", cfg.Engine)
			},
		},
		{
			name:   "empty",
			config: ``,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, &Config{}, cfg)
			},
		},
		{
			name: "invalid_hcl_syntax",
			config: `
jobs =
`,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name: "invalid_block_type",
			config: `
unknown_block {
  foo = "bar"
}`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name:        "invalid_value",
			config:      `engine = "pcre"`,
			wantErr:     true,
			errContains: "validating config",
		},
	}

	parser := &HCLParser{}
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parser.Parse(ctx, []byte(tt.config))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

// 🧪 TestYAMLParsing tests YAML config parsing
func TestYAMLParsing(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		want        *Config
	}{
		{
			name: "valid_yaml",
			config: `
hidden: true
globs:
  - "*.go"
ignore_globs:
  - testdata
jobs: 2
engine: Backtrack
timeout: 500ms
`,
			want: &Config{
				Hidden:      true,
				Globs:       []string{"*.go"},
				IgnoreGlobs: []string{"testdata"},
				Jobs:        2,
				Engine:      "backtrack",
				Timeout:     "500ms",
			},
		},
		{
			name:   "empty_document",
			config: "\n",
			want:   &Config{},
		},
		{
			name:        "unknown_field",
			config:      "recursive: true\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "negative_jobs",
			config:      "jobs: -1\n",
			wantErr:     true,
			errContains: "jobs must not be negative",
		},
	}

	parser := &YAMLParser{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parser.Parse(context.Background(), []byte(tt.config))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}
