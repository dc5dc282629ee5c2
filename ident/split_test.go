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

package ident_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"dirpx.dev/refid/ident"
)

func TestSplit_DepthZero(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"[[A]],[[B,C]]", []string{"[[A]]", "[[B,C]]"}},
		{"A,B,C", []string{"A", "B", "C"}},
		{"A", []string{"A"}},
		{"", nil},
		{"List`1[[A,B]],X", []string{"List`1[[A,B]]", "X"}},
		{",", []string{"", ""}},
	}
	for _, tc := range cases {
		got := ident.Split(tc.in, '[', ']', ',', 0)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("Split(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestSplit_NestedSeparatorsIgnored(t *testing.T) {
	// The comma inside the inner group sits at depth 2 and must not cut.
	got := ident.Split("[[Dict`2[[K],[V]]]],[[B]]", '[', ']', ',', 0)
	want := []string{"[[Dict`2[[K],[V]]]]", "[[B]]"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Split mismatch (-want +got):\n%s", diff)
	}
}

func TestSplit_InnerDepth(t *testing.T) {
	got := ident.Split("[A],[B]", '[', ']', ',', 1)
	want := []string{"[A],[B]"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Split at depth 1 mismatch (-want +got):\n%s", diff)
	}
}
