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

package apis

import "dirpx.dev/refid/cache/policy"

// Config carries read-only resolution knobs that influence sessions.
// It is passed by value and should be treated as immutable by
// implementations.
type Config struct {
	// MaxDepth limits recursion while parsing nested identifiers
	// (generic arguments, array suffixes, by-ref wrappers). Acts as a
	// safety guard against pathological or hand-crafted input.
	MaxDepth int

	// RelaxedScan enables the manual scan of every type in every unit
	// when exact name lookup fails, comparing names with the relaxed
	// equality that treats the nested-type and namespace separators as
	// interchangeable. The scan is O(types-in-unit); results are cached.
	RelaxedScan bool

	// IncludeInherited controls whether member lookup walks the base
	// type chain of the declaring type.
	IncludeInherited bool

	// CachePolicy selects the session cache behavior.
	CachePolicy policy.Policy
}
