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

// Unit is a loaded code unit contributing types to the search space
// (a plugin, an assembly, a registered package).
type Unit interface {
	// Name returns the short unit name. The resolver uses it to order
	// candidate units during the relaxed name scan.
	Name() string

	// TypeByName returns a type by exact full name.
	TypeByName(fullName string) (Type, bool)

	// Types enumerates every type in the unit. This is the slow path
	// behind the relaxed name scan; cost is O(types).
	Types() []Type

	// Disposed reports whether the unit has been unloaded. Disposed
	// units are excluded from resolution.
	Disposed() bool
}

// Source supplies the set of currently active code units. It is provided
// externally and may be empty.
type Source interface {
	// Units returns the active units. Implementations must exclude
	// disposed units.
	Units() []Unit

	// Revision returns a counter that advances whenever the backing
	// unit set mutates (load/unload). Sessions compare revisions to
	// drop caches that would otherwise return stale descriptors.
	Revision() uint64
}

// MutableSource is a Source whose unit set can change at runtime.
type MutableSource interface {
	Source

	// Add appends a unit to the set and advances the revision.
	Add(u Unit)
}
