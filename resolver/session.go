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

// Package resolver implements the identifier resolution session: the
// codec entry points, the structural resolve pipeline, the per-session
// cache, and the ordered fallback chains.
package resolver

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"dirpx.dev/refid/apis"
	"dirpx.dev/refid/cache"
	"dirpx.dev/refid/config"
	"dirpx.dev/refid/fallback"
	"dirpx.dev/refid/ident"
)

// ErrDepthExceeded is returned when identifier nesting exceeds the
// configured recursion limit.
var ErrDepthExceeded = errors.New("refid(resolver): identifier nesting exceeds MaxDepth")

// New constructs a Session over the given source. Lookups run in the
// given order for every base-name probe; nil lookups are ignored.
// An invalid MaxDepth falls back to the default, so a zero-value config
// still resolves nested identifiers.
func New(cfg apis.Config, src apis.Source, lookups ...apis.Lookup) apis.Session {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	out := make([]apis.Lookup, 0, len(lookups))
	for _, l := range lookups {
		if l != nil {
			out = append(out, l)
		}
	}
	s := &session{
		id:      uuid.NewString(),
		cfg:     cfg,
		src:     src,
		lookups: out,
		store:   cache.New(cfg.CachePolicy),
		tfb:     fallback.NewTypes(),
		mfb:     fallback.NewMembers(),
	}
	if src != nil {
		s.rev = src.Revision()
	}
	return s
}

// session owns its cache and fallback chains. Two sessions over the
// same source never observe each other's state.
type session struct {
	id      string
	cfg     apis.Config
	src     apis.Source
	lookups []apis.Lookup
	store   *cache.Store
	tfb     *fallback.Types
	mfb     *fallback.Members

	// revMu serializes the staleness check against the source revision.
	revMu sync.Mutex
	rev   uint64
}

var _ apis.Session = (*session)(nil)

func (s *session) ID() string { return s.id }

func (s *session) EncodeType(t apis.Type) (string, error) {
	return ident.EncodeType(t)
}

func (s *session) EncodeMember(m apis.Member) (string, error) {
	return ident.EncodeMember(m)
}

// Invalidate clears the session cache wholesale.
func (s *session) Invalidate() { s.store.Reset() }

func (s *session) OnTypeFallback(h apis.TypeFallback) { s.tfb.Add(h) }

func (s *session) OnMemberFallback(h apis.MemberFallback) { s.mfb.Add(h) }

// ResolveType resolves a type identifier to a live descriptor.
func (s *session) ResolveType(id string) (apis.Type, error) {
	s.checkRevision()
	return s.resolveType(id, nil, 0)
}

// resolveType is the structural pipeline. method carries the candidate
// generic method when resolving its parameter identifiers; results
// computed under a method context are never cached because the same
// text ("``0") means different types for different candidates.
func (s *session) resolveType(id string, method apis.Member, depth int) (apis.Type, error) {
	if id == "" {
		return nil, notFound(id)
	}
	if depth > s.cfg.MaxDepth {
		return nil, fmt.Errorf("%w: %q", ErrDepthExceeded, id)
	}
	if method == nil {
		if t, ok := s.store.Type(id); ok {
			return t, nil
		}
	}

	t, err := s.resolveTypeSlow(id, method, depth)
	if err != nil {
		return nil, err
	}
	if method == nil {
		s.store.PutType(id, t)
	}
	return t, nil
}

func (s *session) resolveTypeSlow(id string, method apis.Member, depth int) (apis.Type, error) {
	// Suffixes first: they wrap whatever the rest of the pipeline finds.
	if id[len(id)-1] == ident.ByRefMarker {
		elem, err := s.resolveType(id[:len(id)-1], method, depth+1)
		if err != nil {
			return nil, err
		}
		return elem.ByRef()
	}
	if elem, rank, ok := ident.ArraySuffix(id); ok {
		et, err := s.resolveType(elem, method, depth+1)
		if err != nil {
			return nil, err
		}
		return et.ArrayOf(rank)
	}

	// "``N" binds to the enclosing method's parameter placeholders.
	if idx, ok := ident.MethodParamIndex(id); ok {
		if method == nil {
			return nil, notFound(id)
		}
		gargs := method.GenericArgs()
		if idx < 0 || idx >= len(gargs) {
			return nil, notFound(id)
		}
		return gargs[idx], nil
	}

	base, args := ident.SplitGeneric(id)
	def, err := s.lookupBase(base)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return def, nil
	}

	// An open-parameter reference among the arguments means the
	// identifier names the definition itself, not an instantiation.
	for _, a := range args {
		if ident.OpenParamRef(a) {
			return def, nil
		}
	}
	resolved := make([]apis.Type, len(args))
	for i, a := range args {
		if resolved[i], err = s.resolveType(a, method, depth+1); err != nil {
			return nil, err
		}
	}
	return def.Instantiate(resolved)
}

// lookupBase probes the lookup chain, then the fallback chain.
func (s *session) lookupBase(base string) (apis.Type, error) {
	var units []apis.Unit
	if s.src != nil {
		units = s.src.Units()
	}
	for _, l := range s.lookups {
		if t, ok := l.TryLookup(base, units, s.cfg); ok {
			return t, nil
		}
	}
	if t := s.tfb.Resolve(base); t != nil {
		return t, nil
	}
	return nil, notFound(base)
}

// ResolveMember resolves a member identifier to a live descriptor.
func (s *session) ResolveMember(id string) (apis.Member, error) {
	s.checkRevision()
	if m, ok := s.store.Member(id); ok {
		return m, nil
	}

	mid, err := ident.ParseMember(id)
	if err != nil {
		return nil, err
	}

	m, err := s.resolveMember(id, mid)
	if err != nil {
		if m := s.mfb.Resolve(id); m != nil {
			s.store.PutMember(id, m)
			return m, nil
		}
		return nil, err
	}
	s.store.PutMember(id, m)
	return m, nil
}

func (s *session) resolveMember(id string, mid *ident.MemberID) (apis.Member, error) {
	decl, err := s.resolveType(mid.DeclaringType, nil, 0)
	if err != nil {
		return nil, err
	}
	if mid.Kind == apis.KindType {
		return apis.TypeMember(decl), nil
	}

	// Concrete generic-method arguments are candidate-independent, so
	// resolve them once up front.
	var gargs []apis.Type
	if mid.Kind == apis.KindMethod && len(mid.GenericArgs) > 0 {
		gargs = make([]apis.Type, len(mid.GenericArgs))
		for i, a := range mid.GenericArgs {
			if gargs[i], err = s.resolveType(a, nil, 0); err != nil {
				return nil, err
			}
		}
	}

	for _, c := range s.candidates(decl) {
		if c.MemberKind() != mid.Kind {
			continue
		}
		switch mid.Kind {
		case apis.KindField, apis.KindEvent:
			if c.Name() == mid.Name {
				return c, nil
			}

		case apis.KindProperty:
			if c.Name() == mid.Name && s.paramsMatch(mid.Params, c.Params(), nil) {
				return c, nil
			}

		case apis.KindConstructor:
			if c.Static() == mid.Static && s.paramsMatch(mid.Params, c.Params(), nil) {
				return c, nil
			}

		case apis.KindMethod:
			if c.Name() != mid.Name || c.GenericArity() != mid.GenericArity {
				continue
			}
			// Concrete arguments: match against the instantiated
			// signature, since the identifier's parameter texts carry
			// the substituted types.
			if gargs != nil {
				inst, ierr := c.Instantiate(gargs)
				if ierr != nil {
					continue
				}
				if s.paramsMatch(mid.Params, inst.Params(), inst) {
					return inst, nil
				}
				continue
			}
			// Open definitions: parameter texts may reference the
			// candidate's own placeholders, so the candidate is the
			// resolution context.
			var ctx apis.Member
			if mid.GenericArity > 0 {
				ctx = c
			}
			if s.paramsMatch(mid.Params, c.Params(), ctx) {
				return c, nil
			}
		}
	}
	return nil, notFound(id)
}

// candidates enumerates the declaring type's members, walking the base
// chain when inherited lookup is enabled. Inherited members keep their
// original descriptor identity. The declared slice is copied before
// appending: descriptors and their backing storage belong to the type
// system, and the resolver must never write into them.
func (s *session) candidates(decl apis.Type) []apis.Member {
	ms := decl.Members()
	if !s.cfg.IncludeInherited {
		return ms
	}
	out := append(make([]apis.Member, 0, len(ms)), ms...)
	for b := decl.Base(); b != nil; b = b.Base() {
		out = append(out, b.Members()...)
	}
	return out
}

// paramsMatch compares an identifier parameter list against a
// candidate's, position by position.
func (s *session) paramsMatch(ids []string, want []apis.Type, method apis.Member) bool {
	if len(ids) != len(want) {
		return false
	}
	for i := range ids {
		if !s.paramMatches(ids[i], want[i], method) {
			return false
		}
	}
	return true
}

// paramMatches accepts either a structurally resolved type equal to the
// candidate's parameter, or a raw-name match. The raw-name path keeps
// identifiers over open generics workable: a type parameter like "`0"
// never resolves structurally but still names the candidate's param.
func (s *session) paramMatches(idText string, want apis.Type, method apis.Member) bool {
	if t, err := s.resolveType(idText, method, 0); err == nil && t.Equal(want) {
		return true
	}
	if idText == want.Name() {
		return true
	}
	if enc, err := ident.EncodeType(want); err == nil && enc == idText {
		return true
	}
	return false
}

// checkRevision drops the cache when the source revision moved since
// the last resolve. Descriptors from a stale unit set are a correctness
// hazard; the cache rebuilds from the live set on demand.
func (s *session) checkRevision() {
	if s.src == nil {
		return
	}
	cur := s.src.Revision()
	s.revMu.Lock()
	if s.rev != cur {
		s.rev = cur
		s.store.Reset()
	}
	s.revMu.Unlock()
}

func notFound(id string) error {
	return fmt.Errorf("%w: %q", apis.ErrNotFound, id)
}
