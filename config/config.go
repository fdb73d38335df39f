/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"dirpx.dev/dfx/apis"
)

const (
	// DefaultIncludeMethods represents the default for IncludeMethods.
	// Only exported fields are discovered unless enabled.
	DefaultIncludeMethods = false
	// DefaultDetectCycles represents the default for DetectCycles.
	DefaultDetectCycles = false
	// DefaultTagKey represents the default for TagKey.
	DefaultTagKey = "dfx"
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return sanitize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		IncludeMethods: DefaultIncludeMethods,
		DetectCycles:   DefaultDetectCycles,
		TagKey:         DefaultTagKey,
		MaxUnwrap:      DefaultMaxUnwrap,
	}
}

// Decode parses a TOML document into a Config. Keys absent from the
// document keep their default values.
func Decode(data []byte) (apis.Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return apis.Config{}, fmt.Errorf("dfx(config): decode: %w", err)
	}
	return sanitize(cfg), nil
}

// LoadFile reads and decodes a TOML config file.
func LoadFile(path string) (apis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("dfx(config): read %s: %w", path, err)
	}
	return Decode(data)
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithIncludeMethods sets the IncludeMethods option.
func WithIncludeMethods(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeMethods = include
	}
}

// WithDetectCycles sets the DetectCycles option.
func WithDetectCycles(detect bool) Option {
	return func(c *apis.Config) {
		c.DetectCycles = detect
	}
}

// WithTagKey sets the TagKey option.
// An empty key resets to the default.
func WithTagKey(key string) Option {
	return func(c *apis.Config) {
		c.TagKey = key
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A non-positive value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		c.MaxUnwrap = max
	}
}

func sanitize(cfg apis.Config) apis.Config {
	if cfg.TagKey == "" {
		cfg.TagKey = DefaultTagKey
	}
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}
