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

// NewMapStrategy creates an apis.Strategy for two maps. A provider applies
// when both operands are instances of its container type and every value
// of both maps is an instance of its value type; keys are ignored.
// Otherwise a generic Map performer is used.
func NewMapStrategy(table *Table, self apis.Performer) apis.Strategy {
	return &mapStrategy{table: table, self: self}
}

// mapStrategy instantiates a fresh performer on every call.
type mapStrategy struct {
	table *Table
	self  apis.Performer
}

// Ensure mapStrategy implements apis.Strategy.
var _ apis.Strategy = (*mapStrategy)(nil)

// Name returns "map".
func (*mapStrategy) Name() string { return "map" }

// TryResolve handles pairs of map-shaped operands.
func (s *mapStrategy) TryResolve(actual, expected any) (apis.Performer, bool) {
	if !uref.IsMap(actual) || !uref.IsMap(expected) {
		return nil, false
	}
	var va, ve []any
	for _, row := range s.table.Snapshot() {
		if !uref.Instance(row.Type, actual) || !uref.Instance(row.Type, expected) {
			continue
		}
		if va == nil {
			va, ve = mapValues(actual), mapValues(expected)
		}
		for _, p := range row.Providers {
			if allInstances(p.Elem, va) && allInstances(p.Elem, ve) {
				return p.Factory(s.self), true
			}
		}
	}
	return performer.NewMap(s.self), true
}

func mapValues(m any) []any {
	rv := reflect.ValueOf(m)
	out := make([]any, 0, rv.Len())
	for it := rv.MapRange(); it.Next(); {
		out = append(out, it.Value().Interface())
	}
	return out
}
