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
	"slices"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/outcome"
	uref "dirpx.dev/dfx/utils/reflect"
)

// Unordered compares two collections as multisets using greedy first-fit
// matching: every expected element consumes the first not yet consumed
// actual element the element performer accepts. This is not a maximum
// bipartite matching; with a non-transitive element performer the result
// can depend on iteration order.
type Unordered struct {
	element apis.Performer
}

// Ensure Unordered implements apis.Performer.
var _ apis.Performer = (*Unordered)(nil)

// NewUnordered returns an Unordered comparing elements with element.
func NewUnordered(element apis.Performer) *Unordered {
	mustPerformer(element, "unordered element")
	return &Unordered{element: element}
}

// Compare returns a plain success when every expected element is matched,
// a single SizeKey child when the sizes differ, or a single ContainsKey
// child naming the first unmatched expected element.
func (u *Unordered) Compare(actual, expected any) apis.Outcome {
	if o, ok := shortcut(u, actual, expected); ok {
		return o
	}
	if !unordered(actual) || !unordered(expected) {
		return outcome.NewFailure(u, actual, expected,
			fmt.Errorf("%w: collection of %T and %T", ErrUnsupported, actual, expected))
	}

	ea, ee := uref.Elements(actual), uref.Elements(expected)
	if len(ea) != len(ee) {
		return outcome.Single(u, actual, expected, outcome.SizeKey, baseline.Compare(len(ea), len(ee)))
	}

	working := slices.Clone(ea)
	for _, want := range ee {
		idx := slices.IndexFunc(working, func(got any) bool {
			return u.element.Compare(got, want).Success()
		})
		if idx < 0 {
			return outcome.Single(u, actual, expected, outcome.ContainsKey, outcome.Failed(u, nil, want))
		}
		working = slices.Delete(working, idx, idx+1)
	}
	return outcome.Succeeded(u, actual, expected)
}

// Name returns "unordered".
func (*Unordered) Name() string { return "unordered" }

// unordered reports whether v can be compared as a multiset.
func unordered(v any) bool {
	return uref.IsArray(v) || uref.IsCollection(v)
}
