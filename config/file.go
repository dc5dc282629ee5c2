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

	"github.com/pelletier/go-toml/v2"

	"dirpx.dev/refid/apis"
	"dirpx.dev/refid/cache/policy"
)

// fileConfig is the on-disk shape of a refid.toml file. All fields are
// optional; absent fields keep their defaults.
type fileConfig struct {
	MaxDepth         *int    `toml:"max_depth,omitempty"`
	RelaxedScan      *bool   `toml:"relaxed_scan,omitempty"`
	IncludeInherited *bool   `toml:"include_inherited,omitempty"`
	CachePolicy      *string `toml:"cache_policy,omitempty"`
}

// LoadFile reads an apis.Config from a TOML file. Missing files are an
// error; pass defaults explicitly if the file is optional.
func LoadFile(path string) (apis.Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if fc.MaxDepth != nil && *fc.MaxDepth > 0 {
		cfg.MaxDepth = *fc.MaxDepth
	}
	if fc.RelaxedScan != nil {
		cfg.RelaxedScan = *fc.RelaxedScan
	}
	if fc.IncludeInherited != nil {
		cfg.IncludeInherited = *fc.IncludeInherited
	}
	if fc.CachePolicy != nil {
		p, err := policy.Parse(*fc.CachePolicy)
		if err != nil {
			return cfg, fmt.Errorf("config: %s: %w", path, err)
		}
		cfg.CachePolicy = p
	}
	return cfg, nil
}

// SaveFile writes an apis.Config as a TOML file, creating or truncating
// the target.
func SaveFile(path string, cfg apis.Config) error {
	pol := cfg.CachePolicy.String()
	fc := fileConfig{
		MaxDepth:         &cfg.MaxDepth,
		RelaxedScan:      &cfg.RelaxedScan,
		IncludeInherited: &cfg.IncludeInherited,
		CachePolicy:      &pol,
	}

	data, err := toml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
