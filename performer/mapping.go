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

// Map compares two maps: sizes, then exact key sets, then values of each
// key in sorted key order, stopping at the first differing value.
type Map struct {
	value apis.Performer
}

// Ensure Map implements apis.Performer.
var _ apis.Performer = (*Map)(nil)

// NewMap returns a Map comparing values with value.
func NewMap(value apis.Performer) *Map {
	mustPerformer(value, "map value")
	return &Map{value: value}
}

// Compare returns a plain success when every value matches; otherwise a
// complex outcome with exactly one child: SizeKey, KeySetKey, or the key
// of the first differing value.
func (m *Map) Compare(actual, expected any) apis.Outcome {
	if o, ok := shortcut(m, actual, expected); ok {
		return o
	}
	ra, re := reflect.ValueOf(actual), reflect.ValueOf(expected)
	if ra.Kind() != reflect.Map || re.Kind() != reflect.Map {
		return outcome.NewFailure(m, actual, expected,
			fmt.Errorf("%w: map of %T and %T", ErrUnsupported, actual, expected))
	}

	if ra.Len() != re.Len() {
		return outcome.Single(m, actual, expected, outcome.SizeKey, baseline.Compare(ra.Len(), re.Len()))
	}

	keys := uref.SortKeys(ra.MapKeys())
	if !sameKeys(keys, re) {
		ka, ke := keyList(keys), keyList(uref.SortKeys(re.MapKeys()))
		return outcome.Single(m, actual, expected, outcome.KeySetKey, outcome.Failed(m, ka, ke))
	}

	for _, k := range keys {
		o := m.value.Compare(ra.MapIndex(k).Interface(), re.MapIndex(k).Interface())
		if !o.Success() {
			return outcome.Single(m, actual, expected, outcome.MapKey(ra.Type(), k.Interface()), o)
		}
	}
	return outcome.Succeeded(m, actual, expected)
}

// Name returns "map".
func (*Map) Name() string { return "map" }

// sameKeys reports whether every key of an equally sized map is in re.
func sameKeys(keys []reflect.Value, re reflect.Value) bool {
	kt := re.Type().Key()
	for _, k := range keys {
		if k.Type() != kt {
			return false
		}
		if !re.MapIndex(k).IsValid() {
			return false
		}
	}
	return true
}

func keyList(keys []reflect.Value) []any {
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = k.Interface()
	}
	return out
}
