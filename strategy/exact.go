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

// Package strategy provides the ordered lookup chain for base type
// names: an exact index probe followed by a relaxed scan.
package strategy

import "dirpx.dev/refid/apis"

// NewExactLookup creates an apis.Lookup that probes every unit's name
// index for an exact full-name match.
func NewExactLookup() apis.Lookup {
	return exactLookup{}
}

type exactLookup struct{}

var _ apis.Lookup = (*exactLookup)(nil)

// TryLookup probes the units in order and returns the first exact hit.
func (exactLookup) TryLookup(baseName string, units []apis.Unit, cfg apis.Config) (apis.Type, bool) {
	for _, u := range units {
		if t, ok := u.TypeByName(baseName); ok {
			return t, true
		}
	}
	return nil, false
}
