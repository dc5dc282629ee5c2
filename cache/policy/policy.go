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

package policy

import (
	"fmt"
	"strings"
)

// Policy controls the retention behavior of a resolution cache.
//
// # Overview
//
// Policy is a small enumerated type that describes how a resolution
// cache instance manages its entries over time. Unlike general-purpose
// caches, a resolution cache holds handles whose validity is tied to the
// set of loaded code units, not to recency or frequency of use: an entry
// is either valid (the environment has not mutated) or it is garbage
// (the environment has). Eviction heuristics therefore make no sense
// here, and the policy space is intentionally binary.
//
// # Values
//
// The following policies are defined:
//
//   - Persistent — entries are retained until explicit invalidation.
//   - Disabled   — caching is off (pass-through behavior).
//
// # Contract
//
//   - Cache implementations MUST treat Policy as a stable, public API;
//     adding new values is allowed, but existing values MUST NOT change
//     their semantics in breaking ways.
//   - Policy values MUST be safe to use concurrently across goroutines
//     (they are plain integers).
//   - Policy SHOULD be used as an input to configuration or factory
//     code, not mutated at runtime in performance-critical paths.
type Policy int

const (
	// Persistent retains every entry until the cache is explicitly
	// invalidated.
	//
	// # Semantics
	//
	// Under Persistent, the cache MUST NOT evict entries on its own:
	// no capacity limit, no TTL, no sampling. The only way an entry
	// leaves the cache is a wholesale invalidation triggered by the
	// owner when the backing environment mutates.
	//
	// This is the correct default for resolution caches: repeated
	// resolution of the same identifier is the dominant workload, and
	// partial eviction would silently re-trigger the expensive
	// structural resolution path without any correctness benefit.
	Persistent Policy = iota

	// Disabled turns caching off for the associated cache instance.
	//
	// # Semantics
	//
	// When Disabled is selected, the cache MUST NOT retain entries
	// across calls in a way that affects observable behavior:
	//
	//   - Reads always result in a miss from the perspective of the
	//     caller.
	//   - Writes no-op.
	//
	// Disabled is primarily useful for testing and debugging, to
	// compare behavior with and without caching, and for environments
	// where the unit set mutates so frequently that cached entries
	// would rarely survive to a second read.
	Disabled
)

// String returns a human-readable representation of the Policy value.
//
// For all defined enum values the returned strings are stable and
// suitable for logging, metrics labels, and configuration dumps:
//
//   - Persistent -> "Persistent"
//   - Disabled   -> "Disabled"
//
// For unknown or out-of-range values, String returns a diagnostic form
// "Unknown(<n>)" and never panics, so that corrupted values can still be
// surfaced safely in logs.
func (p Policy) String() string {
	switch p {
	case Persistent:
		return "Persistent"
	case Disabled:
		return "Disabled"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// Parse converts a string token into the corresponding Policy value.
// It accepts the same canonical tokens produced by Policy.String(), with
// case-insensitive matching and surrounding whitespace ignored. Any
// other input results in a non-nil error; callers MUST NOT rely on the
// returned Policy in the error case.
func Parse(s string) (Policy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Persistent, fmt.Errorf("cache: empty policy")
	}

	switch strings.ToUpper(trimmed) {
	case "PERSISTENT":
		return Persistent, nil
	case "DISABLED":
		return Disabled, nil
	default:
		return Persistent, fmt.Errorf("cache: unknown policy %q", s)
	}
}

// MustParse is like Parse but panics on invalid input. It is intended
// for hard-coded configuration in Go code, tests, and initialization
// paths where failing fast is acceptable. Callers MUST NOT use it on
// untrusted input.
func MustParse(s string) Policy {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// MarshalText implements encoding.TextMarshaler. For unknown values it
// returns a non-nil error rather than serializing a diagnostic form, so
// invalid states are never persisted.
func (p Policy) MarshalText() ([]byte, error) {
	switch p {
	case Persistent, Disabled:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("cache: cannot marshal unknown policy %d", p)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the same
// tokens as Parse. On failure the target is left unchanged and a non-nil
// error is returned; it never panics.
func (p *Policy) UnmarshalText(text []byte) error {
	value, err := Parse(string(text))
	if err != nil {
		return err
	}

	*p = value
	return nil
}
