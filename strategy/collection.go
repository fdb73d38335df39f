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
	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/performer"
	uref "dirpx.dev/dfx/utils/reflect"
)

// NewCollectionStrategy creates an apis.Strategy for two collections
// (apis.Collection values or set maps). A provider applies when both
// operands are instances of its container type and every element of both
// operands is an instance of its element type; otherwise a generic
// Unordered performer is used.
func NewCollectionStrategy(table *Table, self apis.Performer) apis.Strategy {
	return &collectionStrategy{table: table, self: self}
}

// collectionStrategy instantiates a fresh performer on every call.
type collectionStrategy struct {
	table *Table
	self  apis.Performer
}

// Ensure collectionStrategy implements apis.Strategy.
var _ apis.Strategy = (*collectionStrategy)(nil)

// Name returns "collection".
func (*collectionStrategy) Name() string { return "collection" }

// TryResolve handles pairs of collection-shaped operands.
func (s *collectionStrategy) TryResolve(actual, expected any) (apis.Performer, bool) {
	if !uref.IsCollection(actual) || !uref.IsCollection(expected) {
		return nil, false
	}
	var ea, ee []any
	for _, row := range s.table.Snapshot() {
		if !uref.Instance(row.Type, actual) || !uref.Instance(row.Type, expected) {
			continue
		}
		if ea == nil {
			ea, ee = uref.Elements(actual), uref.Elements(expected)
		}
		for _, p := range row.Providers {
			if allInstances(p.Elem, ea) && allInstances(p.Elem, ee) {
				return p.Factory(s.self), true
			}
		}
	}
	return performer.NewUnordered(s.self), true
}
