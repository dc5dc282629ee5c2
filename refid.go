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

package refid

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/refid/apis"
	"dirpx.dev/refid/builder"
	"dirpx.dev/refid/config"
)

// init initializes the global refid state.
func init() {
	// Initialize state with default cfg, src, and ses.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.src = b.BuildSource(s.cfg, nil, nil)
	s.ses = b.BuildSession(s.cfg, s.src, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilSource is returned when a builder returns a nil source.
	ErrNilSource = errors.New("refid: builder returned nil source")
	// ErrNilSession is returned when a builder returns a nil session.
	ErrNilSession = errors.New("refid: builder returned nil session")
	// ErrImmutableSource is returned when the global source cannot
	// accept units.
	ErrImmutableSource = errors.New("refid: global source is not mutable")
)

// EncodeType encodes a type descriptor using the global refid ses.
// This is a convenience wrapper around the global ses.
func EncodeType(t apis.Type) (string, error) {
	return st.Load().ses.EncodeType(t)
}

// EncodeMember encodes a member descriptor using the global refid ses.
// This is a convenience wrapper around the global ses.
func EncodeMember(m apis.Member) (string, error) {
	return st.Load().ses.EncodeMember(m)
}

// ResolveType resolves a type identifier using the global refid ses.
// This is a convenience wrapper around the global ses.
func ResolveType(id string) (apis.Type, error) {
	return st.Load().ses.ResolveType(id)
}

// ResolveMember resolves a member identifier using the global refid ses.
// This is a convenience wrapper around the global ses.
func ResolveMember(id string) (apis.Member, error) {
	return st.Load().ses.ResolveMember(id)
}

// Invalidate clears the global session cache.
// This is a convenience wrapper around the global ses.
func Invalidate() {
	st.Load().ses.Invalidate()
}

// AddUnit adds a unit to the global refid src.
// It fails when the global source is not mutable.
func AddUnit(u apis.Unit) error {
	ms, ok := st.Load().src.(apis.MutableSource)
	if !ok {
		return ErrImmutableSource
	}
	ms.Add(u)
	return nil
}

// OnTypeFallback appends a type-level fallback handler to the global
// refid ses.
func OnTypeFallback(h apis.TypeFallback) {
	st.Load().ses.OnTypeFallback(h)
}

// OnMemberFallback appends a member-level fallback handler to the global
// refid ses.
func OnMemberFallback(h apis.MemberFallback) {
	st.Load().ses.OnMemberFallback(h)
}

// SetAll explicitly sets all global refid state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, src apis.Source, ses apis.Session, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Source
	nsrc := src
	npsrc := false
	if nsrc == nil {
		nsrc = nbld.BuildSource(ncfg, old.src, next)
	} else {
		npsrc = true
	}

	// Session
	nses := ses
	npses := false
	if nses == nil {
		nses = nbld.BuildSession(ncfg, nsrc, old.ses, next)
	} else {
		npses = true
	}

	// Ensure non-nil src and ses.
	if nsrc == nil {
		panic(ErrNilSource)
	}
	if nses == nil {
		panic(ErrNilSession)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  ncfg,
			ext:  next,
			src:  nsrc,
			ses:  nses,
			bld:  nbld,
			psrc: npsrc,
			pses: npses,
		},
	)
}

// Config returns the global refid configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global refid configuration to cfg.
// It rebuilds the global src and ses using the new configuration.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new src and ses based on the new cfg and old state.
	nsrc := old.src
	if !old.psrc {
		nsrc = b.BuildSource(cfg, old.src, old.ext)
	}
	nses := old.ses
	if !old.pses {
		nses = b.BuildSession(cfg, nsrc, old.ses, old.ext)
	}

	// Ensure non-nil src and ses.
	if nsrc == nil {
		panic(ErrNilSource)
	}
	if nses == nil {
		panic(ErrNilSession)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			ext:  old.ext,
			src:  nsrc,
			ses:  nses,
			bld:  b,
			psrc: old.psrc,
			pses: old.pses,
		},
	)
}

// Source returns the global refid src.
func Source() apis.Source {
	return st.Load().src
}

// SetSource sets the global refid src to src.
// It uses the global refid configuration to rebuild the global ses.
// This is a convenience wrapper around the global state.
func SetSource(src apis.Source) {
	if src == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new ses based on the old cfg and new src.
	nses := old.ses
	if !old.pses {
		nses = b.BuildSession(old.cfg, src, old.ses, old.ext)
	}

	// Ensure non-nil ses.
	if nses == nil {
		panic(ErrNilSession)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			src:  src,
			ses:  nses,
			bld:  b,
			psrc: true,
			pses: old.pses,
		},
	)
}

// Session returns the global refid ses.
func Session() apis.Session {
	return st.Load().ses
}

// SetSession sets the global refid ses to ses.
// It uses the global refid configuration and src.
// This is a convenience wrapper around the global state.
func SetSession(ses apis.Session) {
	if ses == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			src:  old.src,
			ses:  ses,
			bld:  old.bld,
			psrc: old.psrc,
			pses: true,
		},
	)
}

// Builder returns the global refid bld.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global refid bld to b.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new src and ses based on the new bld and old state.
	nsrc := old.src
	if !old.psrc {
		nsrc = b.BuildSource(old.cfg, old.src, old.ext)
	}
	nses := old.ses
	if !old.pses {
		nses = b.BuildSession(old.cfg, nsrc, old.ses, old.ext)
	}

	// Ensure non-nil src and ses.
	if nsrc == nil {
		panic(ErrNilSource)
	}
	if nses == nil {
		panic(ErrNilSession)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			src:  nsrc,
			ses:  nses,
			bld:  b,
			psrc: old.psrc,
			pses: old.pses,
		},
	)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new src and ses based on the new ext and old state.
	nsrc := old.src
	if !old.psrc {
		nsrc = b.BuildSource(old.cfg, old.src, ext)
	}
	nses := old.ses
	if !old.pses {
		nses = b.BuildSession(old.cfg, nsrc, old.ses, ext)
	}

	// Ensure non-nil src and ses.
	if nsrc == nil {
		panic(ErrNilSource)
	}
	if nses == nil {
		panic(ErrNilSession)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  ext,
			src:  nsrc,
			ses:  nses,
			bld:  b,
			psrc: old.psrc,
			pses: old.pses,
		},
	)
}

// ExtAs returns the global refid extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsSourcePinned returns whether the global refid src is pinned (immutable).
func IsSourcePinned() bool {
	return st.Load().psrc
}

// PinSource makes the global refid src immutable.
func PinSource() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			src:  old.src,
			ses:  old.ses,
			bld:  old.bld,
			psrc: true,
			pses: old.pses,
		},
	)
}

// UnpinSource makes the global refid src mutable again.
func UnpinSource() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			src:  old.src,
			ses:  old.ses,
			bld:  old.bld,
			psrc: false,
			pses: old.pses,
		},
	)
}

// IsSessionPinned returns whether the global refid ses is pinned (immutable).
func IsSessionPinned() bool {
	return st.Load().pses
}

// PinSession makes the global refid ses immutable.
func PinSession() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			src:  old.src,
			ses:  old.ses,
			bld:  old.bld,
			psrc: old.psrc,
			pses: true,
		},
	)
}

// UnpinSession makes the global refid ses mutable again.
func UnpinSession() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			src:  old.src,
			ses:  old.ses,
			bld:  old.bld,
			psrc: old.psrc,
			pses: false,
		},
	)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global refid state.
var st atomic.Pointer[state]

// state is the global refid state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global refid configuration.
	cfg apis.Config
	// ext is the global refid extension configuration.
	ext any
	// src is the global refid src.
	src apis.Source
	// ses is the global refid ses.
	ses apis.Session
	// bld is the global refid bld.
	bld apis.Builder
	// psrc indicates whether the src is pinned (immutable).
	psrc bool
	// pses indicates whether the ses is pinned (immutable).
	pses bool
}
