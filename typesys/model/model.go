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

// Package model is an in-memory type system implementing the full
// capability surface of the resolver: namespaces, nested types,
// inheritance, fields, indexed properties, events, generic methods,
// static and instance constructors, generic definitions and
// instantiations, arrays of any rank, and by-ref wrappers.
//
// It backs identifier round-trip tests and serves embedders that
// persist references to schemas not expressible as Go types (plugin
// models, foreign metadata). Units can be disposed to simulate a code
// reload; the universe revision advances on every mutation so sessions
// drop their caches.
package model

import (
	"sync"
	"sync/atomic"

	"dirpx.dev/refid/apis"
)

// Universe owns a mutable set of units and implements apis.Source.
type Universe struct {
	mu    sync.RWMutex
	units []*Unit
	rev   atomic.Uint64
}

// NewUniverse constructs an empty universe.
func NewUniverse() *Universe {
	u := &Universe{}
	u.rev.Store(1)
	return u
}

// NewUnit creates a unit with the given short name and adds it to the
// universe.
func (u *Universe) NewUnit(name string) *Unit {
	unit := &Unit{uni: u, name: name, index: make(map[string]*Type)}
	u.mu.Lock()
	u.units = append(u.units, unit)
	u.mu.Unlock()
	u.rev.Add(1)
	return unit
}

// Units returns the active (non-disposed) units.
func (u *Universe) Units() []apis.Unit {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]apis.Unit, 0, len(u.units))
	for _, unit := range u.units {
		if !unit.Disposed() {
			out = append(out, unit)
		}
	}
	return out
}

// Revision returns the mutation counter of the universe.
func (u *Universe) Revision() uint64 {
	return u.rev.Load()
}

// Unit is a code unit in the model universe.
type Unit struct {
	uni      *Universe
	name     string
	disposed atomic.Bool

	mu    sync.RWMutex
	types []*Type
	index map[string]*Type
}

// Name returns the short unit name.
func (u *Unit) Name() string { return u.name }

// Disposed reports whether the unit has been unloaded.
func (u *Unit) Disposed() bool { return u.disposed.Load() }

// Dispose marks the unit unloaded and advances the universe revision,
// invalidating session caches on their next resolution.
func (u *Unit) Dispose() {
	if u.disposed.CompareAndSwap(false, true) {
		u.uni.rev.Add(1)
	}
}

// TypeByName returns a type by exact full name.
func (u *Unit) TypeByName(fullName string) (apis.Type, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	t, ok := u.index[fullName]
	if !ok {
		return nil, false
	}
	return t, true
}

// Types enumerates every type declared in the unit.
func (u *Unit) Types() []apis.Type {
	u.mu.RLock()
	defer u.mu.RUnlock()
	out := make([]apis.Type, len(u.types))
	for i, t := range u.types {
		out[i] = t
	}
	return out
}

// NewType declares a named type in the unit.
func (u *Unit) NewType(name string, opts ...TypeOption) *Type {
	t := &Type{unit: u, form: formNamed, simple: name}
	for _, opt := range opts {
		opt(t)
	}

	u.mu.Lock()
	u.types = append(u.types, t)
	u.index[t.FullName()] = t
	u.mu.Unlock()
	u.uni.rev.Add(1)
	return t
}

// TypeOption configures a type at declaration time.
type TypeOption func(*Type)

// Namespace places the type in a namespace.
func Namespace(ns string) TypeOption {
	return func(t *Type) { t.ns = ns }
}

// NestedIn declares the type nested inside outer. The namespace is
// inherited from the declaring chain.
func NestedIn(outer *Type) TypeOption {
	return func(t *Type) { t.declaring = outer }
}

// Extends sets the base type.
func Extends(base apis.Type) TypeOption {
	return func(t *Type) { t.base = base }
}

// TypeParams turns the type into a generic definition with the given
// parameter names. The arity suffix becomes part of the type name.
func TypeParams(names ...string) TypeOption {
	return func(t *Type) {
		t.tparams = make([]*Type, len(names))
		for i, n := range names {
			t.tparams[i] = &Type{form: formParam, simple: n, pidx: i}
		}
	}
}
