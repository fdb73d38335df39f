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

package property

import (
	"reflect"
	"slices"
	"strings"

	"dirpx.dev/dfx/apis"
)

// Named accepts properties whose name is one of names.
func Named(names ...string) apis.PropertyFilter {
	return func(p apis.Property) bool {
		return slices.Contains(names, p.Name())
	}
}

// DeclaredBy accepts properties declared by t.
func DeclaredBy(t reflect.Type) apis.PropertyFilter {
	return func(p apis.Property) bool {
		return p.DeclaringType() == t
	}
}

// Tagged accepts field properties carrying the struct tag key. If any
// options are given, the tag must also list one of them after the name,
// e.g. Tagged("dfx", "key") accepts `dfx:"id,key"`.
func Tagged(key string, options ...string) apis.PropertyFilter {
	return func(p apis.Property) bool {
		tag, ok := p.Tag().Lookup(key)
		if !ok {
			return false
		}
		if len(options) == 0 {
			return true
		}
		parts := strings.Split(tag, ",")
		for _, o := range parts[1:] {
			if slices.Contains(options, o) {
				return true
			}
		}
		return false
	}
}

// OfType accepts properties whose type is assignable to t.
func OfType(t reflect.Type) apis.PropertyFilter {
	return func(p apis.Property) bool {
		return p.Type().AssignableTo(t)
	}
}

// Fields accepts struct field properties.
func Fields() apis.PropertyFilter {
	return func(p apis.Property) bool { return !p.IsMethod() }
}

// Methods accepts getter method properties.
func Methods() apis.PropertyFilter {
	return func(p apis.Property) bool { return p.IsMethod() }
}

// Not negates f.
func Not(f apis.PropertyFilter) apis.PropertyFilter {
	return func(p apis.Property) bool { return !f(p) }
}
