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

// Package units provides the default mutable unit collection used as a
// resolution source.
package units

import (
	"sync"
	"sync/atomic"

	"dirpx.dev/refid/apis"
)

// Set is a concurrency-safe ordered collection of units. Adding a unit
// bumps the revision so sessions can detect staleness.
type Set struct {
	mu    sync.RWMutex
	units []apis.Unit
	rev   atomic.Uint64
}

var _ apis.MutableSource = (*Set)(nil)

// NewSet returns an empty set seeded with the given units.
func NewSet(us ...apis.Unit) *Set {
	s := &Set{}
	s.rev.Store(1)
	for _, u := range us {
		s.Add(u)
	}
	return s
}

// Add appends a unit. Nil units are ignored.
func (s *Set) Add(u apis.Unit) {
	if u == nil {
		return
	}
	s.mu.Lock()
	s.units = append(s.units, u)
	s.mu.Unlock()
	s.rev.Add(1)
}

// Units returns the live units in insertion order. Disposed units are
// filtered out.
func (s *Set) Units() []apis.Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]apis.Unit, 0, len(s.units))
	for _, u := range s.units {
		if !u.Disposed() {
			out = append(out, u)
		}
	}
	return out
}

// Revision reports the current mutation counter.
func (s *Set) Revision() uint64 { return s.rev.Load() }
