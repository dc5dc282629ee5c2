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

package resolver_test

import (
	"errors"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/refid/apis"
	"dirpx.dev/refid/cache/policy"
	"dirpx.dev/refid/config"
	"dirpx.dev/refid/resolver"
	"dirpx.dev/refid/strategy"
	"dirpx.dev/refid/typesys/model"
)

// world is the shared resolution fixture: a universe with a core unit
// and the usual suspects declared on it.
type world struct {
	uni     *model.Universe
	core    *model.Unit
	int32T  *model.Type
	stringT *model.Type
	foo     *model.Type
	list    *model.Type
}

func newWorld(t *testing.T) *world {
	t.Helper()
	uni := model.NewUniverse()
	core := uni.NewUnit("core")
	w := &world{
		uni:     uni,
		core:    core,
		int32T:  core.NewType("Int32", model.Namespace("core")),
		stringT: core.NewType("String", model.Namespace("core")),
		foo:     core.NewType("Foo", model.Namespace("core")),
		list:    core.NewType("List", model.Namespace("collections"), model.TypeParams("T")),
	}
	return w
}

func newSession(w *world, opts ...config.Option) apis.Session {
	return resolver.New(
		config.NewConfig(opts...),
		w.uni,
		strategy.NewExactLookup(),
		strategy.NewScanLookup(),
	)
}

func mustEncodeMember(t *testing.T, ses apis.Session, m apis.Member) string {
	t.Helper()
	id, err := ses.EncodeMember(m)
	if err != nil {
		t.Fatalf("EncodeMember: unexpected error: %v", err)
	}
	return id
}

func mustResolveType(t *testing.T, ses apis.Session, id string) apis.Type {
	t.Helper()
	got, err := ses.ResolveType(id)
	if err != nil {
		t.Fatalf("ResolveType(%q): unexpected error: %v", id, err)
	}
	return got
}

func TestResolveType_Structural(t *testing.T) {
	w := newWorld(t)
	ses := newSession(w)

	cases := []struct {
		id   string
		want apis.Type
	}{
		{"core.Int32", w.int32T},
		{"collections.List`1", w.list},
	}
	for _, tc := range cases {
		if got := mustResolveType(t, ses, tc.id); !got.Equal(tc.want) {
			t.Fatalf("ResolveType(%q): got %v, want %v", tc.id, got, tc.want)
		}
	}

	arr := mustResolveType(t, ses, "core.Int32[,]")
	if !arr.IsArray() || arr.Rank() != 2 || !arr.Elem().Equal(w.int32T) {
		t.Fatalf("array: IsArray=%v Rank=%d", arr.IsArray(), arr.Rank())
	}

	ref := mustResolveType(t, ses, "core.Int32&")
	if !ref.IsByRef() || !ref.Elem().Equal(w.int32T) {
		t.Fatalf("by-ref: IsByRef=%v", ref.IsByRef())
	}

	closed := mustResolveType(t, ses, "collections.List`1[[core.Int32]]")
	want, _ := w.list.Instantiate([]apis.Type{w.int32T})
	if !closed.Equal(want) {
		t.Fatalf("constructed: got %v, want %v", closed, want)
	}

	// Array of by-ref-free constructed generic.
	deep := mustResolveType(t, ses, "collections.List`1[[core.Int32]][]")
	if !deep.IsArray() || !deep.Elem().Equal(want) {
		t.Fatalf("array of constructed: IsArray=%v", deep.IsArray())
	}
}

func TestResolveType_OpenArgsYieldDefinition(t *testing.T) {
	w := newWorld(t)
	ses := newSession(w)

	got := mustResolveType(t, ses, "collections.List`1[[`0]]")
	if !got.Equal(w.list) {
		t.Fatalf("open-argument identifier must yield the definition, got %v", got)
	}
}

func TestResolveType_NotFound(t *testing.T) {
	w := newWorld(t)
	ses := newSession(w)

	_, err := ses.ResolveType("core.Missing")
	if !errors.Is(err, apis.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	// Standalone method parameter references have no context.
	if _, err := ses.ResolveType("``0"); !errors.Is(err, apis.ErrNotFound) {
		t.Fatalf("``0 without context: want ErrNotFound, got %v", err)
	}
	if _, err := ses.ResolveType(""); !errors.Is(err, apis.ErrNotFound) {
		t.Fatalf("empty id: want ErrNotFound, got %v", err)
	}
}

func TestResolveType_DepthLimit(t *testing.T) {
	w := newWorld(t)
	ses := newSession(w, config.WithMaxDepth(2))

	id := "collections.List`1[[collections.List`1[[collections.List`1[[core.Int32]]]]]]"
	_, err := ses.ResolveType(id)
	if !errors.Is(err, resolver.ErrDepthExceeded) {
		t.Fatalf("want ErrDepthExceeded, got %v", err)
	}
}

func TestResolveType_RelaxedScan(t *testing.T) {
	w := newWorld(t)
	outer := w.core.NewType("Outer", model.Namespace("core"))
	inner := w.core.NewType("Inner", model.NestedIn(outer))

	ses := newSession(w)
	got := mustResolveType(t, ses, "core.Outer+Inner")
	if !got.Equal(inner) {
		t.Fatalf("relaxed scan: got %v, want nested type", got)
	}

	strict := newSession(w, config.WithRelaxedScan(false))
	if _, err := strict.ResolveType("core.Outer+Inner"); !errors.Is(err, apis.ErrNotFound) {
		t.Fatalf("with scan off: want ErrNotFound, got %v", err)
	}
}

func TestResolveType_FallbackChain(t *testing.T) {
	w := newWorld(t)
	ses := newSession(w)

	var order []int
	ses.OnTypeFallback(apis.TypeFallbackFunc(func(name string) apis.Type {
		order = append(order, 1)
		return nil
	}))
	ses.OnTypeFallback(apis.TypeFallbackFunc(func(name string) apis.Type {
		order = append(order, 2)
		if name == "legacy.Foo" {
			return w.foo
		}
		return nil
	}))

	got := mustResolveType(t, ses, "legacy.Foo")
	if !got.Equal(w.foo) {
		t.Fatalf("fallback substitution: got %v, want Foo", got)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("handlers must run in registration order, got %v", order)
	}

	// Structural hits never reach the chain.
	order = nil
	mustResolveType(t, ses, "core.Int32[]")
	if len(order) != 0 {
		t.Fatalf("fallback ran for a structurally resolvable id: %v", order)
	}
}

func TestResolveType_CachedIdentity(t *testing.T) {
	w := newWorld(t)
	ses := newSession(w)

	first := mustResolveType(t, ses, "collections.List`1[[core.Int32]]")
	second := mustResolveType(t, ses, "collections.List`1[[core.Int32]]")
	if first != second {
		t.Fatalf("repeated resolution must serve the cached descriptor")
	}

	ses.Invalidate()
	third := mustResolveType(t, ses, "collections.List`1[[core.Int32]]")
	if !third.Equal(first) {
		t.Fatalf("post-invalidate resolution must stay equal")
	}
}

func TestResolveType_RevisionDropsCache(t *testing.T) {
	w := newWorld(t)
	ses := newSession(w)

	first := mustResolveType(t, ses, "collections.List`1[[core.Int32]]")

	// Mutating the universe advances the revision; the next resolve
	// must rebuild rather than serve the stale entry.
	w.uni.NewUnit("late")
	second := mustResolveType(t, ses, "collections.List`1[[core.Int32]]")
	if first == second {
		t.Fatalf("cache must drop after a source mutation")
	}
	if !second.Equal(first) {
		t.Fatalf("rebuilt descriptor must stay equal")
	}
}

func TestResolveMember_RoundTripAllKinds(t *testing.T) {
	w := newWorld(t)
	ses := newSession(w)

	members := []apis.Member{
		apis.TypeMember(w.foo),
		w.foo.AddField("count", w.int32T),
		w.foo.AddEvent("Changed", w.stringT),
		w.foo.AddProperty("Length", w.int32T),
		w.foo.AddProperty("Item", w.stringT, w.int32T),
		w.foo.AddConstructor(false, w.int32T, w.stringT),
		w.foo.AddConstructor(true),
		w.foo.AddMethod("Run", w.int32T),
		w.foo.AddMethod("Stop"),
	}
	for _, m := range members {
		id := mustEncodeMember(t, ses, m)
		got, err := ses.ResolveMember(id)
		if err != nil {
			t.Fatalf("ResolveMember(%q): unexpected error: %v", id, err)
		}
		if !got.Equal(m) {
			t.Fatalf("round trip %q: got %v, want original member", id, got)
		}
	}
}

func TestResolveMember_OverloadSelection(t *testing.T) {
	w := newWorld(t)
	ses := newSession(w)

	intRun := w.foo.AddMethod("Run", w.int32T)
	strRun := w.foo.AddMethod("Run", w.stringT)

	id := mustEncodeMember(t, ses, strRun)
	got, err := ses.ResolveMember(id)
	if err != nil {
		t.Fatalf("ResolveMember(%q): unexpected error: %v", id, err)
	}
	if !got.Equal(strRun) || got.Equal(intRun) {
		t.Fatalf("overload selection picked the wrong candidate")
	}
}

func TestResolveMember_GenericMethod(t *testing.T) {
	w := newWorld(t)
	ses := newSession(w)

	def := w.foo.AddGenericMethod("Map", 1, func(tp []apis.Type) []apis.Type {
		return []apis.Type{tp[0]}
	})

	openID := mustEncodeMember(t, ses, def)
	got, err := ses.ResolveMember(openID)
	if err != nil {
		t.Fatalf("ResolveMember(%q): unexpected error: %v", openID, err)
	}
	if !got.Equal(def) {
		t.Fatalf("open definition round trip failed")
	}

	inst, err := def.Instantiate([]apis.Type{w.int32T})
	if err != nil {
		t.Fatalf("Instantiate: unexpected error: %v", err)
	}
	instID := mustEncodeMember(t, ses, inst)
	got, err = ses.ResolveMember(instID)
	if err != nil {
		t.Fatalf("ResolveMember(%q): unexpected error: %v", instID, err)
	}
	if !got.Equal(inst) {
		t.Fatalf("instantiation round trip failed")
	}
}

func TestResolveMember_Inherited(t *testing.T) {
	w := newWorld(t)
	base := w.core.NewType("Base", model.Namespace("core"))
	derived := w.core.NewType("Derived", model.Namespace("core"), model.Extends(base))
	inherited := base.AddField("tag", w.stringT)
	_ = derived

	ses := newSession(w)
	got, err := ses.ResolveMember("F:core.Derived:tag")
	if err != nil {
		t.Fatalf("inherited lookup: unexpected error: %v", err)
	}
	// The inherited member keeps its original identity.
	if !got.Equal(inherited) {
		t.Fatalf("inherited member must be the base's descriptor")
	}

	strict := newSession(w, config.WithIncludeInherited(false))
	if _, err := strict.ResolveMember("F:core.Derived:tag"); !errors.Is(err, apis.ErrNotFound) {
		t.Fatalf("with inheritance off: want ErrNotFound, got %v", err)
	}
}

// TestResolveMember_Inherited_Concurrency_Smoke hammers inherited
// lookup on a shared declaring type. Candidate enumeration must never
// write into the slices the type system hands out, so concurrent
// resolutions over the same type are safe and member lists stay intact.
func TestResolveMember_Inherited_Concurrency_Smoke(t *testing.T) {
	w := newWorld(t)
	base := w.core.NewType("Base", model.Namespace("core"))
	inherited := base.AddField("tag", w.stringT)
	derived := w.core.NewType("Derived", model.Namespace("core"), model.Extends(base))
	derived.AddField("a", w.int32T)
	derived.AddField("b", w.int32T)
	derived.AddMethod("Reset")

	// Disable caching so every resolution re-enumerates candidates.
	ses := newSession(w, config.WithCachePolicy(policy.Disabled))

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				got, err := ses.ResolveMember("F:core.Derived:tag")
				if err != nil {
					t.Errorf("inherited lookup: %v", err)
					return
				}
				if !got.Equal(inherited) {
					t.Errorf("inherited member lost its identity")
					return
				}
			}
		}()
	}
	wg.Wait()

	// The declaring type's own member list must be untouched.
	ms := derived.Members()
	if len(ms) != 3 {
		t.Fatalf("derived member count changed: got %d want 3", len(ms))
	}
	for _, m := range ms {
		if m.Equal(inherited) {
			t.Fatalf("inherited descriptor leaked into the derived member list")
		}
	}
}

func TestResolveMember_NotFoundAndFallback(t *testing.T) {
	w := newWorld(t)
	field := w.foo.AddField("count", w.int32T)
	ses := newSession(w)

	if _, err := ses.ResolveMember("F:core.Foo:missing"); !errors.Is(err, apis.ErrNotFound) {
		t.Fatalf("missing member: want ErrNotFound, got %v", err)
	}
	if _, err := ses.ResolveMember("F:legacy.Foo:count"); !errors.Is(err, apis.ErrNotFound) {
		t.Fatalf("missing declaring type: want ErrNotFound, got %v", err)
	}

	ses.OnMemberFallback(apis.MemberFallbackFunc(func(id string) apis.Member {
		if id == "F:legacy.Foo:count" {
			return field
		}
		return nil
	}))
	got, err := ses.ResolveMember("F:legacy.Foo:count")
	if err != nil {
		t.Fatalf("fallback member: unexpected error: %v", err)
	}
	if !got.Equal(field) {
		t.Fatalf("fallback substitution: got %v, want field", got)
	}

	// The substituted result is cached like any other hit.
	again, err := ses.ResolveMember("F:legacy.Foo:count")
	if err != nil {
		t.Fatalf("fallback member again: unexpected error: %v", err)
	}
	if again != got {
		t.Fatalf("fallback result must be served from cache on repeat")
	}
}

func TestResolveMember_Malformed(t *testing.T) {
	w := newWorld(t)
	ses := newSession(w)
	if _, err := ses.ResolveMember("X:core.Foo:bar"); errors.Is(err, apis.ErrNotFound) || err == nil {
		t.Fatalf("malformed id must fail with a grammar error, got %v", err)
	}
}

// TestNew_ZeroValueConfig verifies that a zero-value config is usable:
// the depth guard normalizes to the default instead of rejecting every
// nested identifier.
func TestNew_ZeroValueConfig(t *testing.T) {
	w := newWorld(t)
	ses := resolver.New(apis.Config{}, w.uni, strategy.NewExactLookup())

	got, err := ses.ResolveType("core.Int32[]&")
	if err != nil {
		t.Fatalf("nested identifier under zero-value config: %v", err)
	}
	if !got.IsByRef() || !got.Elem().IsArray() {
		t.Fatalf("wrong structure: %s", got.FullName())
	}
}

func TestSession_IDsAreUnique(t *testing.T) {
	w := newWorld(t)
	a := newSession(w)
	b := newSession(w)
	if a.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("session ids must be unique and non-empty")
	}
}

func TestSession_IsolatedState(t *testing.T) {
	w := newWorld(t)
	a := newSession(w)
	b := newSession(w)

	a.OnTypeFallback(apis.TypeFallbackFunc(func(name string) apis.Type {
		return w.foo
	}))

	if got := mustResolveType(t, a, "legacy.Anything"); !got.Equal(w.foo) {
		t.Fatalf("session a must use its own fallback")
	}
	if _, err := b.ResolveType("legacy.Anything"); !errors.Is(err, apis.ErrNotFound) {
		t.Fatalf("session b must not observe a's fallback, got %v", err)
	}
}
