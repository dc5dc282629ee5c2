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

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/refid/apis"
)

// ErrMalformed is returned for identifiers that do not follow the
// member grammar.
var ErrMalformed = errors.New("refid(ident): malformed identifier")

// MemberID is the structural decomposition of a member identifier. It
// carries only text; resolving the texts to live descriptors is the
// resolver's job.
type MemberID struct {
	// Kind is the decoded kind tag.
	Kind apis.Kind
	// DeclaringType is the declaring-type identifier.
	DeclaringType string
	// Name is the member name. Empty for constructors and type tags.
	Name string
	// Static is the constructor binding marker.
	Static bool
	// GenericArity is the declared generic arity of a method, or 0.
	GenericArity int
	// GenericArgs holds the type-argument identifiers of a concrete
	// generic method instantiation, unwrapped of their brackets.
	GenericArgs []string
	// Params holds the parameter-type identifiers, in order.
	Params []string
}

// ParseMember decomposes a member identifier into its parts. It checks
// grammar only; unknown names resolve to NotFound later, not here.
func ParseMember(id string) (*MemberID, error) {
	parts := strings.SplitN(id, string(TagSep), 3)
	if len(parts[0]) != 1 {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, id)
	}
	kind, ok := apis.KindForTag(parts[0][0])
	if !ok {
		return nil, fmt.Errorf("%w: unknown tag in %q", ErrMalformed, id)
	}

	mid := &MemberID{Kind: kind}
	if len(parts) > 1 {
		mid.DeclaringType = parts[1]
	}
	if kind == apis.KindType {
		if mid.DeclaringType == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformed, id)
		}
		return mid, nil
	}
	if len(parts) < 3 || parts[2] == "" {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, id)
	}

	head := parts[2]
	if open := strings.IndexByte(head, ParamOpen); open >= 0 {
		if head[len(head)-1] != ParamClose {
			return nil, fmt.Errorf("%w: %q", ErrMalformed, id)
		}
		mid.Params = Split(head[open+1:len(head)-1], ArgOpen, ArgClose, ArgSep, 0)
		head = head[:open]
	}

	if kind == apis.KindConstructor {
		switch head {
		case string(rune(CtorStatic)):
			mid.Static = true
		case string(rune(CtorInstance)):
			mid.Static = false
		default:
			return nil, fmt.Errorf("%w: bad constructor marker in %q", ErrMalformed, id)
		}
		return mid, nil
	}

	if kind == apis.KindMethod {
		if i := strings.Index(head, string([]byte{ArityMarker, ArityMarker})); i >= 0 {
			tail := head[i+2:]
			head = head[:i]
			j := 0
			for j < len(tail) && tail[j] >= '0' && tail[j] <= '9' {
				j++
			}
			arity, ok := digits(tail[:j])
			if !ok {
				return nil, fmt.Errorf("%w: bad generic arity in %q", ErrMalformed, id)
			}
			mid.GenericArity = arity
			if j < len(tail) {
				if tail[j] != ArgOpen || tail[len(tail)-1] != ArgClose {
					return nil, fmt.Errorf("%w: bad generic arguments in %q", ErrMalformed, id)
				}
				for _, a := range Split(tail[j+1:len(tail)-1], ArgOpen, ArgClose, ArgSep, 0) {
					mid.GenericArgs = append(mid.GenericArgs, unwrap(a))
				}
			}
		}
	}

	mid.Name = head
	if mid.Name == "" {
		return nil, fmt.Errorf("%w: missing member name in %q", ErrMalformed, id)
	}
	return mid, nil
}
