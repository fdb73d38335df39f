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

import "reflect"

// PropertyKey identifies a named or indexed member in the context of its
// declaring type. Two keys are equal only when both ID and DeclaringType
// are equal; a nil DeclaringType only matches another nil.
type PropertyKey struct {
	// ID is the member name (string), position (int) or map key.
	ID any
	// DeclaringType is the type declaring the member, or nil.
	DeclaringType reflect.Type
}

// Property is a named, zero-argument value accessor of a type.
type Property interface {
	// Key returns the stable identity of the accessor.
	Key() PropertyKey
	// Name returns the accessor name (the ID of Key).
	Name() string
	// DeclaringType returns the type declaring the accessor.
	DeclaringType() reflect.Type
	// Type returns the static type of the extracted value.
	Type() reflect.Type
	// Tag returns the struct tag of a field accessor ("" for methods).
	Tag() reflect.StructTag
	// IsMethod reports whether the accessor is a method rather than a field.
	IsMethod() bool
	// Extract reads the value from instance. Faults (errors returned by a
	// getter, panics, nil pointers on the access path) are returned as err.
	Extract(instance any) (v any, err error)
}

// PropertyFilter is a predicate over discovered properties.
type PropertyFilter func(Property) bool
