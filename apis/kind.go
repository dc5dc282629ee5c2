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

import "fmt"

// Kind classifies a member descriptor. The six kinds below are the only
// ones the identifier codec recognizes; encoding any other value is a
// programmer error.
type Kind int

const (
	// KindType marks a type used in member position (tag 'T').
	KindType Kind = iota
	// KindField marks a field (tag 'F').
	KindField
	// KindProperty marks a property, possibly indexed (tag 'P').
	KindProperty
	// KindEvent marks an event (tag 'E').
	KindEvent
	// KindMethod marks a method, possibly generic (tag 'M').
	KindMethod
	// KindConstructor marks a static or instance constructor (tag 'C').
	KindConstructor
)

// String returns a human-readable name for the kind.
// Unknown values yield a diagnostic form and never panic.
func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindField:
		return "field"
	case KindProperty:
		return "property"
	case KindEvent:
		return "event"
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Tag returns the single-character identifier tag for the kind,
// or 0 for unknown values.
func (k Kind) Tag() byte {
	switch k {
	case KindType:
		return 'T'
	case KindField:
		return 'F'
	case KindProperty:
		return 'P'
	case KindEvent:
		return 'E'
	case KindMethod:
		return 'M'
	case KindConstructor:
		return 'C'
	default:
		return 0
	}
}

// KindForTag maps an identifier tag back to its Kind.
func KindForTag(tag byte) (Kind, bool) {
	switch tag {
	case 'T':
		return KindType, true
	case 'F':
		return KindField, true
	case 'P':
		return KindProperty, true
	case 'E':
		return KindEvent, true
	case 'M':
		return KindMethod, true
	case 'C':
		return KindConstructor, true
	default:
		return 0, false
	}
}
