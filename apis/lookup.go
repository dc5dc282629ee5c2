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

// Lookup is a pluggable base-type lookup step. A Session chains multiple
// lookups in order (e.g., Exact -> Scan) before consulting its fallback
// handlers.
type Lookup interface {
	// TryLookup attempts to find a type named baseName among the given
	// units according to cfg. It returns (t, true) if handled;
	// otherwise (nil, false) to fall through.
	TryLookup(baseName string, units []Unit, cfg Config) (t Type, handled bool)
}
