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

package apis

import "errors"

// ErrNotGenericMethod is returned by Instantiate on members that carry
// no generic parameters.
var ErrNotGenericMethod = errors.New("refid(apis): member is not a generic method")

// Member is a live handle to a field, property, event, method, or
// constructor of a Type. Like Type descriptors, members are owned by the
// type system; the codec/resolver only reads them.
type Member interface {
	// MemberKind classifies the member.
	MemberKind() Kind

	// Name returns the member name. Constructors have no meaningful
	// name; implementations may return an empty string for them.
	Name() string

	// Declaring returns the declaring type. For KindType members this is
	// the described type itself.
	Declaring() Type

	// Params returns the parameter type list of methods, constructors,
	// and indexed properties; nil for fields and events.
	Params() []Type

	// Static reports whether a constructor is static. It is meaningful
	// only for KindConstructor.
	Static() bool

	// GenericArity returns the number of generic parameters of a method,
	// or 0.
	GenericArity() int

	// GenericArgs returns the generic argument list of a method:
	// parameter placeholders for open definitions, concrete arguments
	// for constructed instantiations, nil for non-generic members.
	GenericArgs() []Type

	// Instantiate constructs a concrete generic method instantiation
	// from this open definition and the given type arguments.
	Instantiate(args []Type) (Member, error)

	// Equal reports whether both handles denote the same member: same
	// declaring type and same underlying metadata position, even when
	// retrieved through different code paths. Generic method instances
	// additionally require identical type arguments, compared
	// positionally.
	Equal(Member) bool
}

// TypeMember adapts a Type into member position so that type references
// can flow through the member identifier grammar (tag 'T').
func TypeMember(t Type) Member {
	return typeMember{t: t}
}

type typeMember struct{ t Type }

func (m typeMember) MemberKind() Kind                  { return KindType }
func (m typeMember) Name() string                      { return m.t.Name() }
func (m typeMember) Declaring() Type                   { return m.t }
func (m typeMember) Params() []Type                    { return nil }
func (m typeMember) Static() bool                      { return false }
func (m typeMember) GenericArity() int                 { return 0 }
func (m typeMember) GenericArgs() []Type               { return nil }
func (m typeMember) Instantiate([]Type) (Member, error) { return nil, ErrNotGenericMethod }

func (m typeMember) Equal(o Member) bool {
	if o == nil || o.MemberKind() != KindType {
		return false
	}
	return m.t.Equal(o.Declaring())
}
