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

// Package fallback holds ordered last-resort handler chains. Handlers
// run in registration order and the first non-nil result wins; later
// handlers are not consulted. This removes the last-writer-wins
// ambiguity of a shared mutable result slot.
package fallback

import (
	"sync"

	"dirpx.dev/refid/apis"
)

// Types is an ordered chain of type-level fallback handlers.
type Types struct {
	mu       sync.RWMutex
	handlers []apis.TypeFallback
}

// NewTypes constructs an empty type-level chain.
func NewTypes() *Types { return &Types{} }

// Add appends a handler. Nil handlers are ignored.
func (c *Types) Add(h apis.TypeFallback) {
	if h == nil {
		return
	}
	c.mu.Lock()
	c.handlers = append(c.handlers, h)
	c.mu.Unlock()
}

// Resolve walks the chain with the unresolved base-type name.
func (c *Types) Resolve(baseName string) apis.Type {
	c.mu.RLock()
	handlers := c.handlers
	c.mu.RUnlock()

	for _, h := range handlers {
		if t := h.ResolveType(baseName); t != nil {
			return t
		}
	}
	return nil
}

// Len returns the number of registered handlers.
func (c *Types) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handlers)
}

// Members is an ordered chain of member-level fallback handlers.
type Members struct {
	mu       sync.RWMutex
	handlers []apis.MemberFallback
}

// NewMembers constructs an empty member-level chain.
func NewMembers() *Members { return &Members{} }

// Add appends a handler. Nil handlers are ignored.
func (c *Members) Add(h apis.MemberFallback) {
	if h == nil {
		return
	}
	c.mu.Lock()
	c.handlers = append(c.handlers, h)
	c.mu.Unlock()
}

// Resolve walks the chain with the full unresolved member identifier.
func (c *Members) Resolve(id string) apis.Member {
	c.mu.RLock()
	handlers := c.handlers
	c.mu.RUnlock()

	for _, h := range handlers {
		if m := h.ResolveMember(id); m != nil {
			return m
		}
	}
	return nil
}

// Len returns the number of registered handlers.
func (c *Members) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handlers)
}
