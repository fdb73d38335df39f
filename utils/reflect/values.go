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

package reflect

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"dirpx.dev/dfx/apis"
)

var collectionType = reflect.TypeFor[apis.Collection]()

// IsNil reports whether v is an untyped nil or a nil pointer, map, slice,
// chan, func or interface value.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// Same reports whether a and b are the same reference: equal pointers,
// maps, chans or unsafe pointers of one type, or slices sharing backing
// array and length. Plain values have no identity and never match.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	}
	return false
}

// Instance reports whether v's dynamic type is t, or t is an interface
// type implemented by it.
func Instance(t reflect.Type, v any) bool {
	if t == nil || v == nil {
		return false
	}
	vt := reflect.TypeOf(v)
	if t.Kind() == reflect.Interface {
		return vt.Implements(t)
	}
	return vt == t
}

// IsArray reports whether v is a slice or an array.
func IsArray(v any) bool {
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// IsSet reports whether v is a set map: map[K]struct{} or map[K]bool.
func IsSet(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	if t.Kind() != reflect.Map {
		return false
	}
	e := t.Elem()
	return e.Kind() == reflect.Bool || (e.Kind() == reflect.Struct && e.NumField() == 0)
}

// IsCollection reports whether v implements apis.Collection or is a set map.
func IsCollection(v any) bool {
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Implements(collectionType) || IsSet(v)
}

// IsMap reports whether v is a map that is not a set map.
func IsMap(v any) bool {
	if v == nil {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.Map && !IsSet(v)
}

// Elements returns the elements of an array, a collection or the keys of a
// set map. Set maps with bool values only contribute keys mapped to true.
// Set map keys are returned in SortKeys order.
func Elements(v any) []any {
	if v == nil {
		return nil
	}
	if c, ok := v.(apis.Collection); ok {
		return c.Elements()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	case reflect.Map:
		keys := SortKeys(rv.MapKeys())
		out := make([]any, 0, len(keys))
		for _, k := range keys {
			if e := rv.MapIndex(k); e.Kind() == reflect.Bool && !e.Bool() {
				continue
			}
			out = append(out, k.Interface())
		}
		return out
	}
	return nil
}

// SortKeys sorts map keys into a deterministic order: numbers numerically,
// strings and bools by value, everything else by formatted representation.
func SortKeys(keys []reflect.Value) []reflect.Value {
	slices.SortStableFunc(keys, compareKeys)
	return keys
}

func compareKeys(a, b reflect.Value) int {
	if a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		case reflect.String:
			return cmp.Compare(a.String(), b.String())
		case reflect.Bool:
			switch {
			case a.Bool() == b.Bool():
				return 0
			case !a.Bool():
				return -1
			}
			return 1
		}
	}
	return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}

// IsPrimitive reports whether t is primitive-like: a boolean, numeric or
// string kind, a reflect.Type descriptor, or a pointer, slice or array of
// primitive-like types.
func IsPrimitive(t reflect.Type) bool {
	for t != nil {
		if t.Implements(reflectType) {
			return true
		}
		switch t.Kind() {
		case reflect.Bool, reflect.String,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
			reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
			return true
		case reflect.Ptr, reflect.Slice, reflect.Array:
			t = t.Elem()
		default:
			return false
		}
	}
	return false
}

var reflectType = reflect.TypeFor[reflect.Type]()
