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
	"dirpx.dev/refid/apis"
	"dirpx.dev/refid/cache/policy"
)

const (
	// DefaultMaxDepth represents the default for MaxDepth.
	// A value of 32 should be sufficient for all practical purposes.
	DefaultMaxDepth = 32
	// DefaultRelaxedScan represents the default for RelaxedScan.
	// When true, the manual relaxed-name scan runs after exact lookup fails.
	DefaultRelaxedScan = true
	// DefaultIncludeInherited represents the default for IncludeInherited.
	// When true, member lookup walks the base type chain.
	DefaultIncludeInherited = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxDepth is valid.
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxDepth:         DefaultMaxDepth,
		RelaxedScan:      DefaultRelaxedScan,
		IncludeInherited: DefaultIncludeInherited,
		CachePolicy:      policy.Persistent,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxDepth sets the MaxDepth option.
// A non-positive value resets to the default.
func WithMaxDepth(depth int) Option {
	return func(c *apis.Config) {
		if depth <= 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = depth
	}
}

// WithRelaxedScan sets the RelaxedScan option.
func WithRelaxedScan(enabled bool) Option {
	return func(c *apis.Config) {
		c.RelaxedScan = enabled
	}
}

// WithIncludeInherited sets the IncludeInherited option.
func WithIncludeInherited(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeInherited = include
	}
}

// WithCachePolicy sets the CachePolicy option.
func WithCachePolicy(p policy.Policy) Option {
	return func(c *apis.Config) {
		c.CachePolicy = p
	}
}
