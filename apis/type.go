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

// Type is a live handle to a type in a resolving environment.
//
// The codec/resolver never allocates, frees, or mutates descriptors; it
// only reads their structure and asks them to construct derived forms
// (arrays, by-ref wrappers, generic instantiations). A concrete type
// system binding implements this interface; the resolver itself carries
// no dependency on any particular runtime's reflection API.
type Type interface {
	// Name returns the short name without any declaring prefix. Generic
	// definitions carry their arity suffix (e.g. "List`1").
	Name() string

	// FullName returns the namespace/package qualified name. For nested
	// types it includes the declaring chain.
	FullName() string

	// Declaring returns the declaring type for nested types, or nil.
	Declaring() Type

	// Base returns the inherited base type, or nil at the root.
	Base() Type

	// IsArray reports whether the type is an array; Rank and Elem
	// describe it when true.
	IsArray() bool

	// IsByRef reports whether the type is a by-reference wrapper;
	// Elem yields the referent when true.
	IsByRef() bool

	// IsGenericDefinition reports whether the type is an open generic
	// definition (unbound type parameters).
	IsGenericDefinition() bool

	// IsGenericParam reports whether the type is a generic parameter
	// placeholder. ParamIndex and MethodParam describe it when true.
	IsGenericParam() bool

	// MethodParam reports whether a generic parameter belongs to a
	// method rather than to its declaring type.
	MethodParam() bool

	// ParamIndex returns the zero-based position of a generic parameter.
	ParamIndex() int

	// Elem returns the element type of arrays and by-ref wrappers,
	// or nil for other types.
	Elem() Type

	// Rank returns the array rank, or 0 for non-arrays.
	Rank() int

	// GenericArgs returns the generic argument list: parameter
	// placeholders for definitions, concrete arguments for constructed
	// types, nil otherwise.
	GenericArgs() []Type

	// ArrayOf constructs an array type of the given rank over this type.
	ArrayOf(rank int) (Type, error)

	// ByRef constructs a by-reference wrapper over this type.
	ByRef() (Type, error)

	// Instantiate constructs a closed generic type from this definition
	// and the given argument list.
	Instantiate(args []Type) (Type, error)

	// Members returns the members declared directly on this type, in
	// declaration order. Inherited members are reached through Base.
	Members() []Member

	// Equal reports whether both handles denote the same type.
	Equal(Type) bool
}
