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
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/subvert/pkg/pattern"
	"github.com/walteh/subvert/pkg/walker"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// DefaultFileNames are looked up, in order, by Discover
var DefaultFileNames = []string{
	".subvert.yaml",
	".subvert.yml",
	".subvert.hcl",
	".subvert.json",
}

// 📚 Config represents the project defaults for a run
type Config struct {
	Hidden      bool     `json:"hidden,omitempty" yaml:"hidden,omitempty" hcl:"hidden,optional"`
	Globs       []string `json:"globs,omitempty" yaml:"globs,omitempty" hcl:"globs,optional"`
	IgnoreGlobs []string `json:"ignore_globs,omitempty" yaml:"ignore_globs,omitempty" hcl:"ignore_globs,optional"`
	Jobs        int      `json:"jobs,omitempty" yaml:"jobs,omitempty" hcl:"jobs,optional"`
	Engine      string   `json:"engine,omitempty" yaml:"engine,omitempty" hcl:"engine,optional"`
	Timeout     string   `json:"timeout,omitempty" yaml:"timeout,omitempty" hcl:"timeout,optional"`
	IgnoreCase  bool     `json:"ignore_case,omitempty" yaml:"ignore_case,omitempty" hcl:"ignore_case,optional"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config %s: %w", path, err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// 🔍 Discover returns the first default config file present in dir, or "" when
// there is none
func Discover(dir string) (string, error) {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", errors.Errorf("checking %s: %w", path, err)
		}
	}
	return "", nil
}

// 🔍 Validate checks if the configuration is valid and normalizes it
func (cfg *Config) Validate() error {
	if cfg.Jobs < 0 {
		return errors.Errorf("jobs must not be negative, got %d", cfg.Jobs)
	}

	engine, err := pattern.ParseEngine(cfg.Engine)
	if err != nil {
		return errors.Errorf("engine: %w", err)
	}
	if cfg.Engine != "" {
		cfg.Engine = string(engine)
	}

	if _, err := cfg.MatchTimeout(); err != nil {
		return err
	}

	for _, glob := range append(append([]string{}, cfg.Globs...), cfg.IgnoreGlobs...) {
		if !doublestar.ValidatePattern(glob) {
			return errors.Errorf("invalid glob pattern %q", glob)
		}
	}

	return nil
}

// MatchTimeout parses the timeout setting; zero means no timeout
func (cfg *Config) MatchTimeout() (time.Duration, error) {
	if cfg.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return 0, errors.Errorf("timeout: %w", err)
	}
	if d < 0 {
		return 0, errors.Errorf("timeout must not be negative, got %s", cfg.Timeout)
	}
	return d, nil
}

// WalkerSettings returns the file selection part of the config
func (cfg *Config) WalkerSettings() walker.Settings {
	return walker.Settings{
		Hidden:      cfg.Hidden,
		Globs:       append([]string(nil), cfg.Globs...),
		IgnoreGlobs: append([]string(nil), cfg.IgnoreGlobs...),
	}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	engine := cfg.Engine
	if engine == "" {
		engine = string(pattern.EngineRE2)
	}
	return fmt.Sprintf("engine=%s hidden=%t globs=%v ignore_globs=%v jobs=%d ignore_case=%t",
		engine, cfg.Hidden, cfg.Globs, cfg.IgnoreGlobs, cfg.Jobs, cfg.IgnoreCase)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	if len(bytes.TrimSpace(data)) == 0 {
		return &cfg, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
