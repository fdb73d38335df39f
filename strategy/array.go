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

package strategy

import (
	"reflect"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/performer"
	uref "dirpx.dev/dfx/utils/reflect"
)

// NewArrayStrategy creates an apis.Strategy for two slices or arrays. The
// first provider whose element type both operands' element types are
// assignable to builds the performer; otherwise a generic Sequence is
// used. self is the element comparator handed to the factory.
func NewArrayStrategy(providers *Providers, self apis.Performer) apis.Strategy {
	return &arrayStrategy{providers: providers, self: self}
}

// arrayStrategy instantiates a fresh performer on every call.
type arrayStrategy struct {
	providers *Providers
	self      apis.Performer
}

// Ensure arrayStrategy implements apis.Strategy.
var _ apis.Strategy = (*arrayStrategy)(nil)

// Name returns "array".
func (*arrayStrategy) Name() string { return "array" }

// TryResolve handles pairs of array-shaped operands.
func (s *arrayStrategy) TryResolve(actual, expected any) (apis.Performer, bool) {
	if !uref.IsArray(actual) || !uref.IsArray(expected) {
		return nil, false
	}
	ta, te := reflect.TypeOf(actual).Elem(), reflect.TypeOf(expected).Elem()
	for _, p := range s.providers.Snapshot() {
		if ta.AssignableTo(p.Elem) && te.AssignableTo(p.Elem) {
			return p.Factory(s.self), true
		}
	}
	return performer.NewSequence(s.self), true
}
