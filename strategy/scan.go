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

package strategy

import (
	"strings"

	"dirpx.dev/refid/apis"
	"dirpx.dev/refid/ident"
)

// NewScanLookup creates an apis.Lookup that enumerates unit types and
// compares full names under nesting-separator equivalence. It runs only
// when relaxed scanning is enabled.
func NewScanLookup() apis.Lookup {
	return scanLookup{}
}

type scanLookup struct{}

var _ apis.Lookup = (*scanLookup)(nil)

// TryLookup scans for a relaxed full-name match. Units whose name
// matches the first name segment are scanned before the rest, so
// identifiers carrying a unit-like prefix hit the likely owner first.
func (scanLookup) TryLookup(baseName string, units []apis.Unit, cfg apis.Config) (apis.Type, bool) {
	if !cfg.RelaxedScan {
		return nil, false
	}
	for _, u := range ordered(baseName, units) {
		for _, t := range u.Types() {
			if ident.NameEqualRelaxed(t.FullName(), baseName) {
				return t, true
			}
		}
	}
	return nil, false
}

// ordered moves units named like the identifier's leading segment to
// the front, keeping relative order otherwise.
func ordered(baseName string, units []apis.Unit) []apis.Unit {
	prefix := baseName
	if i := strings.IndexByte(baseName, '.'); i >= 0 {
		prefix = baseName[:i]
	}
	out := make([]apis.Unit, 0, len(units))
	var rest []apis.Unit
	for _, u := range units {
		if u.Name() == prefix {
			out = append(out, u)
		} else {
			rest = append(rest, u)
		}
	}
	return append(out, rest...)
}
