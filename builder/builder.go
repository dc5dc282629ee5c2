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

package builder

import (
	"dirpx.dev/refid/apis"
	"dirpx.dev/refid/resolver"
	"dirpx.dev/refid/strategy"
	"dirpx.dev/refid/units"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildSource builds and returns a new apis.Source based on the provided
// configuration and pre-existing source. If a pre-existing source is
// provided, its live units are carried over into the new set.
func (b *builder) BuildSource(cfg apis.Config, prev apis.Source, _ any) apis.Source {
	set := units.NewSet()
	if prev != nil {
		for _, u := range prev.Units() {
			set.Add(u)
		}
	}
	return set
}

// BuildSession builds and returns a new apis.Session over the given
// source. The previous session is not reused: a fresh session means
// fresh caches, which makes a rebuild an invalidation point.
func (b *builder) BuildSession(cfg apis.Config, src apis.Source, _ apis.Session, _ any) apis.Session {
	return resolver.New(
		cfg,
		src,
		strategy.NewExactLookup(),
		strategy.NewScanLookup(),
	)
}
