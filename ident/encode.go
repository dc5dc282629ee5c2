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
	"strconv"
	"strings"

	"dirpx.dev/refid/apis"
)

var (
	// ErrUnsupportedKind is returned when encoding a member whose kind
	// is outside the six recognized ones. This is a programmer error,
	// surfaced hard rather than silently ignored.
	ErrUnsupportedKind = errors.New("refid(ident): unsupported member kind")
	// ErrNilDescriptor is returned when a nil descriptor is provided.
	ErrNilDescriptor = errors.New("refid(ident): nil descriptor provided")
)

// EncodeType produces the canonical identifier for a type descriptor.
// Encoding is deterministic: the same descriptor always yields the same
// string within one environment.
func EncodeType(t apis.Type) (string, error) {
	var sb strings.Builder
	if err := encodeType(&sb, t); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func encodeType(sb *strings.Builder, t apis.Type) error {
	if t == nil {
		return ErrNilDescriptor
	}
	switch {
	case t.IsByRef():
		if err := encodeType(sb, t.Elem()); err != nil {
			return err
		}
		sb.WriteByte(ByRefMarker)
		return nil

	case t.IsArray():
		if err := encodeType(sb, t.Elem()); err != nil {
			return err
		}
		sb.WriteByte(ArgOpen)
		for i := 1; i < t.Rank(); i++ {
			sb.WriteByte(ArgSep)
		}
		sb.WriteByte(ArgClose)
		return nil

	case t.IsGenericParam():
		sb.WriteByte(ArityMarker)
		if t.MethodParam() {
			sb.WriteByte(ArityMarker)
		}
		sb.WriteString(strconv.Itoa(t.ParamIndex()))
		return nil
	}

	if d := t.Declaring(); d != nil {
		if err := encodeType(sb, d); err != nil {
			return err
		}
		sb.WriteByte(NestedSep)
		sb.WriteString(t.Name())
	} else {
		sb.WriteString(t.FullName())
	}

	// Each argument is individually bracketed so that commas internal to
	// a nested generic never collide with the outer separator.
	if args := t.GenericArgs(); len(args) > 0 && !t.IsGenericDefinition() {
		sb.WriteByte(ArgOpen)
		for i, a := range args {
			if i > 0 {
				sb.WriteByte(ArgSep)
			}
			sb.WriteByte(ArgOpen)
			if err := encodeType(sb, a); err != nil {
				return err
			}
			sb.WriteByte(ArgClose)
		}
		sb.WriteByte(ArgClose)
	}
	return nil
}

// EncodeMember produces the canonical identifier for a member
// descriptor: <tag>:<declaring-type-id>:<tail>.
func EncodeMember(m apis.Member) (string, error) {
	if m == nil {
		return "", ErrNilDescriptor
	}
	kind := m.MemberKind()
	tag := kind.Tag()
	if tag == 0 {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}

	var sb strings.Builder
	sb.WriteByte(tag)
	sb.WriteByte(TagSep)
	if err := encodeType(&sb, m.Declaring()); err != nil {
		return "", err
	}

	switch kind {
	case apis.KindType:
		// The declaring type id is the whole tail.

	case apis.KindField, apis.KindEvent:
		sb.WriteByte(TagSep)
		sb.WriteString(m.Name())

	case apis.KindProperty:
		sb.WriteByte(TagSep)
		sb.WriteString(m.Name())
		if err := encodeParams(&sb, m.Params()); err != nil {
			return "", err
		}

	case apis.KindConstructor:
		sb.WriteByte(TagSep)
		if m.Static() {
			sb.WriteByte(CtorStatic)
		} else {
			sb.WriteByte(CtorInstance)
		}
		if err := encodeParams(&sb, m.Params()); err != nil {
			return "", err
		}

	case apis.KindMethod:
		sb.WriteByte(TagSep)
		sb.WriteString(m.Name())
		if arity := m.GenericArity(); arity > 0 {
			sb.WriteByte(ArityMarker)
			sb.WriteByte(ArityMarker)
			sb.WriteString(strconv.Itoa(arity))
			if args := m.GenericArgs(); len(args) > 0 && !openMethodArgs(args) {
				sb.WriteByte(ArgOpen)
				for i, a := range args {
					if i > 0 {
						sb.WriteByte(ArgSep)
					}
					sb.WriteByte(ArgOpen)
					if err := encodeType(&sb, a); err != nil {
						return "", err
					}
					sb.WriteByte(ArgClose)
				}
				sb.WriteByte(ArgClose)
			}
		}
		if err := encodeParams(&sb, m.Params()); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// encodeParams appends "(P1,P2,...)" when parameters exist.
func encodeParams(sb *strings.Builder, params []apis.Type) error {
	if len(params) == 0 {
		return nil
	}
	sb.WriteByte(ParamOpen)
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(ArgSep)
		}
		if err := encodeType(sb, p); err != nil {
			return err
		}
	}
	sb.WriteByte(ParamClose)
	return nil
}

// openMethodArgs reports whether a generic argument list still consists
// of the method's own parameter placeholders, i.e. the member is the
// open definition rather than a concrete instantiation.
func openMethodArgs(args []apis.Type) bool {
	for _, a := range args {
		if a == nil || !a.IsGenericParam() || !a.MethodParam() {
			return false
		}
	}
	return true
}
