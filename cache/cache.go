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

package cache

import (
	"sync"

	"dirpx.dev/refid/apis"
	"dirpx.dev/refid/cache/policy"
)

// Store memoizes resolved descriptors by identifier string. It keeps two
// maps, one for types and one for members. Entries are never evicted;
// the owner clears the store wholesale when the backing unit set
// mutates. Reads dominate, so the maps sit behind an RWMutex.
type Store struct {
	pol policy.Policy

	mu      sync.RWMutex
	types   map[string]apis.Type
	members map[string]apis.Member
}

// New constructs a Store with the given policy.
func New(pol policy.Policy) *Store {
	return &Store{
		pol:     pol,
		types:   make(map[string]apis.Type),
		members: make(map[string]apis.Member),
	}
}

// Type returns a cached type descriptor for an identifier, if present.
func (s *Store) Type(id string) (apis.Type, bool) {
	if s.pol == policy.Disabled {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.types[id]
	return t, ok
}

// PutType records a resolved type descriptor.
func (s *Store) PutType(id string, t apis.Type) {
	if s.pol == policy.Disabled || t == nil {
		return
	}
	s.mu.Lock()
	s.types[id] = t
	s.mu.Unlock()
}

// Member returns a cached member descriptor for an identifier, if present.
func (s *Store) Member(id string) (apis.Member, bool) {
	if s.pol == policy.Disabled {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[id]
	return m, ok
}

// PutMember records a resolved member descriptor. Nil results are never
// cached; an identifier that failed once may succeed after a reload.
func (s *Store) PutMember(id string, m apis.Member) {
	if s.pol == policy.Disabled || m == nil {
		return
	}
	s.mu.Lock()
	s.members[id] = m
	s.mu.Unlock()
}

// Reset clears both maps wholesale.
func (s *Store) Reset() {
	s.mu.Lock()
	s.types = make(map[string]apis.Type)
	s.members = make(map[string]apis.Member)
	s.mu.Unlock()
}

// Len returns the combined entry count, for diagnostics.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.types) + len(s.members)
}
