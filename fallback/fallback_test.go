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

package fallback_test

import (
	"testing"

	"dirpx.dev/refid/apis"
	"dirpx.dev/refid/fallback"
	"dirpx.dev/refid/typesys/model"
)

func TestTypes_OrderedFirstWins(t *testing.T) {
	uni := model.NewUniverse()
	unit := uni.NewUnit("core")
	first := unit.NewType("First")
	second := unit.NewType("Second")

	var calls []string
	c := fallback.NewTypes()
	c.Add(apis.TypeFallbackFunc(func(name string) apis.Type {
		calls = append(calls, "miss")
		return nil
	}))
	c.Add(apis.TypeFallbackFunc(func(name string) apis.Type {
		calls = append(calls, "first")
		return first
	}))
	c.Add(apis.TypeFallbackFunc(func(name string) apis.Type {
		calls = append(calls, "second")
		return second
	}))

	got := c.Resolve("legacy.Name")
	if got != first {
		t.Fatalf("Resolve: got %v, want the first non-nil handler's result", got)
	}
	if len(calls) != 2 || calls[0] != "miss" || calls[1] != "first" {
		t.Fatalf("handler invocation order: got %v", calls)
	}
}

func TestTypes_EmptyChain(t *testing.T) {
	c := fallback.NewTypes()
	if got := c.Resolve("anything"); got != nil {
		t.Fatalf("empty chain: got %v, want nil", got)
	}
}

func TestTypes_NilHandlerIgnored(t *testing.T) {
	c := fallback.NewTypes()
	c.Add(nil)
	if c.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", c.Len())
	}
}

func TestMembers_OrderedFirstWins(t *testing.T) {
	uni := model.NewUniverse()
	unit := uni.NewUnit("core")
	foo := unit.NewType("Foo")
	field := foo.AddField("count", unit.NewType("Int32"))

	c := fallback.NewMembers()
	c.Add(apis.MemberFallbackFunc(func(id string) apis.Member { return nil }))
	c.Add(apis.MemberFallbackFunc(func(id string) apis.Member { return field }))

	if got := c.Resolve("F:legacy.Foo:count"); got != field {
		t.Fatalf("Resolve: got %v, want the registered member", got)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
}
