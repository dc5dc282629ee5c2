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

// Package goreflect bridges Go's reflect package into the unit model so
// identifiers can resolve against live Go types.
package goreflect

import (
	"errors"
	"path"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"dirpx.dev/refid/apis"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("refid(goreflect): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("refid(goreflect): empty name provided")
	// ErrNotNamed is returned when no named type is reachable by
	// unwrapping containers.
	ErrNotNamed = errors.New("refid(goreflect): no named type reachable")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type under a different name.
	ErrConflictingRegistration = errors.New("refid(goreflect): conflicting type registration")
)

// maxUnwrap bounds container unwrapping during normalization.
const maxUnwrap = 8

// Unit is a registry of Go types exposed as a resolution unit.
// Registration is idempotent for the same (type, name) pair.
type Unit struct {
	name string
	// mu guards write-side consistency and the snapshot slice.
	mu sync.Mutex
	// byName maps registered full name to reflect.Type.
	byName sync.Map // map[string]reflect.Type
	// byType maps reflect.Type to registered full name.
	byType sync.Map // map[reflect.Type]string
	// order keeps registration order for Types snapshots.
	order    []reflect.Type
	disposed atomic.Bool
}

var _ apis.Unit = (*Unit)(nil)

// NewUnit constructs an empty unit with the given name.
func NewUnit(name string) *Unit {
	return &Unit{name: name}
}

func (u *Unit) Name() string { return u.name }

// Disposed reports whether the unit has been retired.
func (u *Unit) Disposed() bool { return u.disposed.Load() }

// Dispose retires the unit from resolution.
func (u *Unit) Dispose() { u.disposed.Store(true) }

// Register associates the nearest named type of t with the given full
// name. An empty name derives the default "pkg.Type" form.
func (u *Unit) Register(t reflect.Type, name string) error {
	if t == nil {
		return ErrNilType
	}
	b, err := normalize(t)
	if err != nil {
		return err
	}
	if name == "" {
		name = defaultName(b)
		if name == "" {
			return ErrEmptyName
		}
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := u.byType.Load(b); ok {
		if old.(string) == name {
			return nil
		}
		return ErrConflictingRegistration
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := u.byType.Load(b); ok {
		if old.(string) == name {
			return nil
		}
		return ErrConflictingRegistration
	}
	if _, ok := u.byName.Load(name); ok {
		return ErrConflictingRegistration
	}

	u.byType.Store(b, name)
	u.byName.Store(name, b)
	u.order = append(u.order, b)
	return nil
}

// RegisterValue registers the dynamic type of v under its default name.
func (u *Unit) RegisterValue(v any) error {
	if v == nil {
		return ErrNilType
	}
	return u.Register(reflect.TypeOf(v), "")
}

// TypeByName returns the registered type under the exact full name.
func (u *Unit) TypeByName(fullName string) (apis.Type, bool) {
	if v, ok := u.byName.Load(fullName); ok {
		return &rtype{t: v.(reflect.Type), unit: u}, true
	}
	return nil, false
}

// Types returns a snapshot of all registered types in registration order.
func (u *Unit) Types() []apis.Type {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]apis.Type, len(u.order))
	for i, t := range u.order {
		out[i] = &rtype{t: t, unit: u}
	}
	return out
}

// nameFor reports the registered name of a normalized type.
func (u *Unit) nameFor(t reflect.Type) (string, bool) {
	if v, ok := u.byType.Load(t); ok {
		return v.(string), true
	}
	return "", false
}

// normalize unwraps containers until a named type is reached.
func normalize(t reflect.Type) (reflect.Type, error) {
	for i := 0; i < maxUnwrap; i++ {
		if t == nil {
			return nil, ErrNilType
		}
		if t.Name() != "" {
			return t, nil
		}
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()
		case reflect.Map:
			t = t.Elem()
		default:
			return nil, ErrNotNamed
		}
	}
	return nil, ErrNotNamed
}

// defaultName computes the stable "pkg.Type" form, stripping generic
// instantiation parameters.
func defaultName(t reflect.Type) string {
	name := stripTypeParams(t.Name())
	if p := t.PkgPath(); p != "" {
		return path.Base(p) + "." + name
	}
	return name
}

// stripTypeParams removes generic instantiation suffix: "T[int]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
