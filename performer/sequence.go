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

package performer

import (
	"fmt"
	"reflect"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/outcome"
	uref "dirpx.dev/dfx/utils/reflect"
)

// Sequence compares two ordered sequences (slices, arrays or
// apis.Collection values) position by position.
type Sequence struct {
	element apis.Performer
}

// Ensure Sequence implements apis.Performer.
var _ apis.Performer = (*Sequence)(nil)

// NewSequence returns a Sequence comparing elements with element.
func NewSequence(element apis.Performer) *Sequence {
	mustPerformer(element, "sequence element")
	return &Sequence{element: element}
}

// Compare returns a complex outcome: a single LengthKey child when the
// lengths differ, otherwise one child per index.
func (s *Sequence) Compare(actual, expected any) apis.Outcome {
	if o, ok := shortcut(s, actual, expected); ok {
		return o
	}
	if !sequential(actual) || !sequential(expected) {
		return outcome.NewFailure(s, actual, expected,
			fmt.Errorf("%w: sequence of %T and %T", ErrUnsupported, actual, expected))
	}

	ea, ee := uref.Elements(actual), uref.Elements(expected)
	if len(ea) != len(ee) {
		return outcome.Single(s, actual, expected, outcome.LengthKey, baseline.Compare(len(ea), len(ee)))
	}

	t := indexType(actual)
	children := outcome.NewChildren(len(ea))
	for i := range ea {
		children.Put(outcome.IndexKey(t, i), s.element.Compare(ea[i], ee[i]))
	}
	return outcome.NewComplex(s, actual, expected, children)
}

// Name returns "sequence".
func (*Sequence) Name() string { return "sequence" }

// sequential reports whether v can be compared as an ordered sequence.
func sequential(v any) bool {
	if uref.IsArray(v) {
		return true
	}
	_, ok := v.(apis.Collection)
	return ok
}

var anySliceType = reflect.TypeFor[[]any]()

// indexType returns the declaring type used for index keys.
func indexType(v any) reflect.Type {
	if uref.IsArray(v) {
		return reflect.TypeOf(v)
	}
	return anySliceType
}
