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

// Package refid provides a global, process-wide reference identifier
// codec and resolution service.
//
// refid is responsible for turning "some type or member descriptor"
// into a stable, storage-safe identifier string, and for later turning
// that string back into a live descriptor against whatever code units
// are loaded at that time. The identifier form is byte-stable and is
// meant to be persisted: saved documents, serialized graphs, audit
// records. Examples: "collections.List`1[[core.Int32]]",
// "M:core.Query:Filter(core.Predicate)", "C:core.Buffer:i(core.Int32)".
//
// # Design
//
// The core of refid is a read-mostly global snapshot (state). The
// snapshot holds four things:
//
//   - Config: rules that control resolution (recursion depth limits,
//     whether the relaxed name scan runs, whether member lookup walks
//     base types, the cache policy).
//
//   - Source: the set of currently loaded code units. Each unit exposes
//     its types by name; the source advances a revision counter on
//     every load/unload so dependent caches know when to drop state.
//
//   - Session: a resolution context that owns its cache maps and its
//     fallback chains. Sessions answer four questions: encode a type,
//     encode a member, resolve a type identifier, resolve a member
//     identifier. Resolution walks a structural pipeline (by-ref and
//     array suffixes, generic-parameter references, generic argument
//     lists, base-name lookup) and only falls back to registered
//     last-resort handlers when the structural path is exhausted.
//     Sessions are expected to be concurrency-safe.
//
//   - Builder: a pluggable factory that knows how to construct Source
//     and Session instances for a given Config (and optional extension
//     data). The Builder is also allowed to reuse/migrate state from
//     previous Source/Session instances.
//
// All of these live inside a single immutable struct called state.
// The package holds an atomic pointer to the current state. Readers
// load that pointer, use it, and never mutate it. Writers build a
// brand-new state and atomically swap it in.
//
// This means refid operations are lock-free on the hot path:
//
//	id, err := refid.EncodeMember(m)
//	m2, err := refid.ResolveMember(id)
//
// and concurrent callers always see a consistent snapshot.
//
// # Identifiers
//
// Type identifiers compose from a full type name plus structural
// suffixes: "[]" and "[,]" for arrays, a trailing "&" for by-ref
// types, "`N" arity suffixes on generic definitions, and bracketed
// argument lists on constructed generics where every argument is
// individually wrapped in brackets. Member identifiers prepend a
// single-letter kind tag and the declaring type:
//
//	<tag>:<declaring-type-id>:<member-tail>
//
// with tags T (type reference), F (field), P (property), E (event),
// M (method), and C (constructor). The member tail carries the name,
// generic arity and arguments for methods, the i/s binding marker for
// constructors, and the parameter-type list where one exists.
//
// # Resolution and fallbacks
//
// Resolving runs structurally first: exact unit lookup by full name,
// then (when enabled) a relaxed scan that treats the nested-type and
// namespace separators as interchangeable. Only when the structural
// path fails do the session's fallback chains run, in registration
// order, first non-nil result wins. Fallbacks are how embedding
// binaries survive renames: a handler maps the old persisted name to
// the renamed type. Identifiers that exhaust the chains yield
// apis.ErrNotFound, which callers should treat as "drop the stale
// reference", not as a fatal error.
//
// # Caching and invalidation
//
// Each session memoizes resolved descriptors by identifier string.
// The cache is transparent except for lifetime: descriptors from
// unloaded units must not be served, so the session compares the
// source revision on each resolve and drops its maps when the unit
// set moved. Invalidate() clears the maps explicitly. Identifiers
// resolved under a generic-method parameter context are never cached,
// because the same parameter reference text means different types for
// different candidate methods.
//
// # Global API
//
// The package exposes three groups of operations:
//
//  1. Read helpers:
//
//     EncodeType / EncodeMember
//     ResolveType / ResolveMember
//     Source() apis.Source
//     Session() apis.Session
//
//     These are safe for concurrent use without additional locking.
//     They always read from the latest published snapshot.
//
//  2. Mutation helpers:
//
//     SetConfig(cfg apis.Config)
//     SetBuilder(b apis.Builder)
//     SetExt(ext T)
//     SetSource(src apis.Source)
//     SetSession(ses apis.Session)
//     UnpinSource() / UnpinSession()
//     SetAll(...)
//
//     Each of these acquires an internal build lock, derives a new
//     snapshot (rebuilding or reusing Source / Session as needed),
//     and then atomically publishes that snapshot.
//
//     SetSource() / SetSession() pin their layer: once pinned, refid
//     stops rebuilding that layer automatically until the matching
//     Unpin call. SetAll(...) is the hard-reset API, mainly used by
//     tests to get a clean deterministic state between cases.
//
//  3. Introspection:
//
//     ExtAs[T]() (T, bool)
//     IsSourcePinned() / IsSessionPinned()
//
// # Usage pattern in a binary
//
// A typical component does:
//
//  1. Let refid init with the default builder/config.
//
//  2. Register its units up front:
//
//     refid.AddUnit(myUnit)
//
//  3. Encode descriptors when saving, resolve identifiers when
//     loading, and register fallback handlers for renamed types:
//
//     refid.OnTypeFallback(apis.TypeFallbackFunc(mapOldNames))
//
//  4. In tests, call refid.SetAll(...) to inject a mock Builder and
//     get deterministic snapshots.
//
// # Scope
//
// refid is intentionally small. It does not load code units, walk
// dependency graphs, or implement a type system of its own; concrete
// bindings (see typesys/model and typesys/goreflect) supply the
// descriptors. refid only solves one job:
//
//	"Given a type or member descriptor, produce a stable persisted
//	 identifier; given such an identifier, find the live descriptor
//	 it denotes in the current environment."
//
// Everything else (loading, unloading, persistence formats, migration
// policy) belongs to higher layers.
package refid
