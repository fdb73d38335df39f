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

package outcome

import (
	"reflect"

	"dirpx.dev/dfx/apis"
)

// Fixed keys used by container and reflective performers.
var (
	// LengthKey reports a length mismatch of two sequences.
	LengthKey = apis.PropertyKey{ID: "length"}
	// SizeKey reports a size mismatch of two collections or maps.
	SizeKey = apis.PropertyKey{ID: "size"}
	// ContainsKey reports an expected element missing from an unordered collection.
	ContainsKey = apis.PropertyKey{ID: "contains"}
	// KeySetKey reports differing key sets of two maps.
	KeySetKey = apis.PropertyKey{ID: "keySet"}
	// ClassKey reports differing dynamic types.
	ClassKey = apis.PropertyKey{ID: "class"}
)

// Key returns the key of a member id declared by t.
func Key(id any, t reflect.Type) apis.PropertyKey {
	return apis.PropertyKey{ID: id, DeclaringType: t}
}

// IndexKey returns the key of position i in a sequence of type t.
func IndexKey(t reflect.Type, i int) apis.PropertyKey {
	return apis.PropertyKey{ID: i, DeclaringType: t}
}

// MapKey returns the key of entry k in a map of type t.
func MapKey(t reflect.Type, k any) apis.PropertyKey {
	return apis.PropertyKey{ID: k, DeclaringType: t}
}
