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

package ident

import "strings"

// Grammar characters of the persisted identifier form. These are part of
// the storage format and must remain byte-stable across versions.
const (
	// TagSep separates the kind tag, declaring type id, and member tail.
	TagSep = ':'
	// ByRefMarker is the trailing by-reference marker.
	ByRefMarker = '&'
	// ArgOpen opens a generic-argument or array bracket group.
	ArgOpen = '['
	// ArgClose closes a bracket group.
	ArgClose = ']'
	// ArgSep separates arguments and array rank commas.
	ArgSep = ','
	// NestedSep joins a nested type to its declaring type.
	NestedSep = '.'
	// AltNestedSep is the alternate nested-type separator accepted by
	// the relaxed name scan.
	AltNestedSep = '+'
	// ArityMarker prefixes generic arities and parameter indices. One
	// marker names a type-level parameter, two a method-level one.
	ArityMarker = '`'
	// CtorInstance and CtorStatic mark constructor binding in the
	// member tail.
	CtorInstance = 'i'
	// CtorStatic marks a static constructor.
	CtorStatic = 's'
	// ParamOpen and ParamClose delimit parameter-type lists.
	ParamOpen = '('
	// ParamClose closes a parameter-type list.
	ParamClose = ')'
)

// ArraySuffix reports whether id ends in an array bracket group: one
// final group containing only commas. It returns the element identifier
// and the rank (comma count + 1). Generic argument groups never match
// because they contain nested brackets, not bare commas.
func ArraySuffix(id string) (elem string, rank int, ok bool) {
	if len(id) < 2 || id[len(id)-1] != ArgClose {
		return "", 0, false
	}
	i := len(id) - 2
	commas := 0
	for i >= 0 && id[i] == ArgSep {
		commas++
		i--
	}
	if i < 0 || id[i] != ArgOpen || i == 0 {
		return "", 0, false
	}
	return id[:i], commas + 1, true
}

// MethodParamIndex parses a generic-method parameter reference of the
// form "``N" and returns the zero-based index.
func MethodParamIndex(id string) (int, bool) {
	if len(id) < 3 || id[0] != ArityMarker || id[1] != ArityMarker {
		return 0, false
	}
	n, ok := digits(id[2:])
	return n, ok
}

// OpenParamRef reports whether an argument text names an open generic
// parameter: a single leading backtick not followed by a second one.
func OpenParamRef(arg string) bool {
	return len(arg) > 0 && arg[0] == ArityMarker &&
		(len(arg) == 1 || arg[1] != ArityMarker)
}

// SplitGeneric separates a type identifier into its base name and the
// unwrapped generic-argument texts. Identifiers without a bracket group
// yield (id, nil).
func SplitGeneric(id string) (base string, args []string) {
	open := strings.IndexByte(id, ArgOpen)
	if open < 0 || id[len(id)-1] != ArgClose {
		return id, nil
	}
	parts := Split(id[open+1:len(id)-1], ArgOpen, ArgClose, ArgSep, 0)
	args = make([]string, len(parts))
	for i, p := range parts {
		args[i] = unwrap(p)
	}
	return id[:open], args
}

// unwrap strips one level of wrapping brackets from an argument. The
// encoder always wraps; bare arguments are tolerated for hand-authored
// identifiers.
func unwrap(arg string) string {
	if len(arg) >= 2 && arg[0] == ArgOpen && arg[len(arg)-1] == ArgClose {
		return arg[1 : len(arg)-1]
	}
	return arg
}

// NameEqualRelaxed compares two type names treating the nested-type and
// namespace separators as interchangeable. Case-sensitive, equal length
// required.
func NameEqualRelaxed(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca == cb {
			continue
		}
		if (ca == NestedSep || ca == AltNestedSep) && (cb == NestedSep || cb == AltNestedSep) {
			continue
		}
		return false
	}
	return true
}

// digits parses a run of ASCII digits spanning the whole input.
func digits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
