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

import "errors"

// ErrNotFound is the sentinel for identifiers that exhausted structural
// resolution and every fallback handler. Callers must treat unresolved
// references as recoverable (e.g. drop the stale reference), not fatal.
var ErrNotFound = errors.New("refid: identifier not found")

// TypeFallback is a last-resort hook invoked with a base type name that
// failed structural resolution. A nil result falls through to the next
// registered handler.
type TypeFallback interface {
	ResolveType(baseName string) Type
}

// TypeFallbackFunc adapts a plain function to TypeFallback.
type TypeFallbackFunc func(baseName string) Type

// ResolveType implements TypeFallback.
func (f TypeFallbackFunc) ResolveType(baseName string) Type { return f(baseName) }

// MemberFallback is a last-resort hook invoked with the full member
// identifier that failed structural resolution.
type MemberFallback interface {
	ResolveMember(id string) Member
}

// MemberFallbackFunc adapts a plain function to MemberFallback.
type MemberFallbackFunc func(id string) Member

// ResolveMember implements MemberFallback.
func (f MemberFallbackFunc) ResolveMember(id string) Member { return f(id) }

// Session is a resolution context: it owns its cache maps and fallback
// chains, so independent load/save sessions never share hidden state.
//
// Typical flow: encode descriptors to identifier strings for storage,
// later resolve the stored strings back against whatever units are then
// loaded. Both resolve paths consult the session cache before parsing
// and cache structural hits until Invalidate.
type Session interface {
	// ID returns a unique identifier for this session, for diagnostics.
	ID() string

	// EncodeType turns a type descriptor into its canonical identifier.
	EncodeType(t Type) (string, error)

	// EncodeMember turns a member descriptor into its canonical
	// identifier. Member kinds outside the six recognized ones fail.
	EncodeMember(m Member) (string, error)

	// ResolveType turns an identifier back into a live type descriptor.
	// Unresolvable identifiers yield ErrNotFound.
	ResolveType(id string) (Type, error)

	// ResolveMember turns an identifier back into a live member
	// descriptor. Unresolvable identifiers yield ErrNotFound.
	ResolveMember(id string) (Member, error)

	// Invalidate clears both cache maps wholesale. Must be called when
	// the backing unit set mutates; stale descriptors are a correctness
	// hazard, not a staleness nuisance.
	Invalidate()

	// OnTypeFallback appends a type-level fallback handler. Handlers
	// run in registration order; the first non-nil result wins.
	OnTypeFallback(h TypeFallback)

	// OnMemberFallback appends a member-level fallback handler.
	OnMemberFallback(h MemberFallback)
}
