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

// Package property discovers the named, zero-argument value accessors of a
// Go type: exported struct fields (including promoted ones) and, when
// enabled, exported getter methods.
//
// Override resolution follows Go selector rules: a shallower field shadows
// a deeper one of the same name. Where Go would reject an ambiguous
// selector (same name at the same depth from different embedded structs),
// the candidate with the most general type is kept if one exists.
package property

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/dfx/apis"
)

var (
	// ErrNilInstance is returned when extracting from a nil instance or
	// through a nil embedded pointer.
	ErrNilInstance = errors.New("dfx(property): nil instance")
	// ErrTypeMismatch is returned when extracting from a value of another type.
	ErrTypeMismatch = errors.New("dfx(property): instance type mismatch")
	// ErrPanic wraps a panic raised by a getter method.
	ErrPanic = errors.New("dfx(property): getter panicked")
)

var errorType = reflect.TypeFor[error]()

// skipMethods are exported methods that are never treated as accessors.
var skipMethods = map[string]bool{
	"String":        true,
	"GoString":      true,
	"Error":         true,
	"Elements":      true,
	"Clone":         true,
	"MarshalJSON":   true,
	"MarshalText":   true,
	"MarshalBinary": true,
}

// cacheKey ensures memoization respects all config knobs that affect discovery.
type cacheKey struct {
	t       reflect.Type
	methods bool
	tagKey  string
}

// cache memoizes discovered properties.
var cache sync.Map // key: cacheKey, val: []apis.Property

// Of returns the accessors of t (a struct type or a pointer to one) in
// declaration order: fields first, then methods sorted by name. Fields
// tagged `<cfg.TagKey>:"-"` are skipped and `<cfg.TagKey>:"name"` renames
// a field. The returned slice must not be modified.
func Of(t reflect.Type, cfg apis.Config) []apis.Property {
	if t == nil {
		return nil
	}
	key := cacheKey{t: t, methods: cfg.IncludeMethods, tagKey: cfg.TagKey}
	if v, ok := cache.Load(key); ok {
		return v.([]apis.Property)
	}

	base := t
	for base.Kind() == reflect.Ptr {
		base = base.Elem()
	}

	var out []apis.Property
	names := map[string]bool{}
	if base.Kind() == reflect.Struct {
		for _, f := range fieldsOf(base, cfg.TagKey) {
			names[f.name] = true
			out = append(out, f)
		}
	}
	if cfg.IncludeMethods {
		for _, m := range methodsOf(base) {
			if !names[m.name] {
				out = append(out, m)
			}
		}
	}

	v, _ := cache.LoadOrStore(key, out)
	return v.([]apis.Property)
}

// candidate is a field reachable from the root struct.
type candidate struct {
	sf        reflect.StructField
	index     []int
	depth     int
	declaring reflect.Type
}

// fieldsOf walks root and its embedded structs breadth first.
func fieldsOf(root reflect.Type, tagKey string) []*field {
	type level struct {
		t     reflect.Type
		index []int
	}
	byName := map[string][]candidate{}
	var order []string
	visited := map[reflect.Type]bool{root: true}

	current := []level{{t: root}}
	for depth := 0; len(current) > 0; depth++ {
		var next []level
		for _, lv := range current {
			for i := 0; i < lv.t.NumField(); i++ {
				sf := lv.t.Field(i)
				index := append(append([]int(nil), lv.index...), i)
				if sf.Anonymous {
					et := sf.Type
					if et.Kind() == reflect.Ptr {
						et = et.Elem()
					}
					if et.Kind() == reflect.Struct {
						if !visited[et] {
							visited[et] = true
							next = append(next, level{t: et, index: index})
						}
						continue
					}
				}
				if !sf.IsExported() {
					continue
				}
				name, skip := tagName(sf, tagKey)
				if skip {
					continue
				}
				if _, seen := byName[name]; !seen {
					order = append(order, name)
				}
				byName[name] = append(byName[name], candidate{sf: sf, index: index, depth: depth, declaring: lv.t})
			}
		}
		current = next
	}

	out := make([]*field, 0, len(order))
	for _, name := range order {
		c, ok := resolve(byName[name])
		if !ok {
			continue
		}
		out = append(out, &field{
			name:      name,
			owner:     root,
			declaring: c.declaring,
			typ:       c.sf.Type,
			tag:       c.sf.Tag,
			index:     c.index,
		})
	}
	return out
}

// resolve keeps the shallowest candidate; among several at that depth the
// one whose type every other candidate's type is assignable to.
func resolve(cs []candidate) (candidate, bool) {
	shallowest := cs[0].depth
	for _, c := range cs[1:] {
		shallowest = min(shallowest, c.depth)
	}
	var top []candidate
	for _, c := range cs {
		if c.depth == shallowest {
			top = append(top, c)
		}
	}
	if len(top) == 1 {
		return top[0], true
	}
	for _, c := range top {
		general := true
		for _, o := range top {
			if !o.sf.Type.AssignableTo(c.sf.Type) {
				general = false
				break
			}
		}
		if general {
			return c, true
		}
	}
	return candidate{}, false
}

// tagName applies the `<tagKey>:"name"` / `<tagKey>:"-"` convention.
func tagName(sf reflect.StructField, tagKey string) (name string, skip bool) {
	tag, ok := sf.Tag.Lookup(tagKey)
	if !ok {
		return sf.Name, false
	}
	name, _, _ = strings.Cut(tag, ",")
	switch name {
	case "-":
		return "", true
	case "":
		return sf.Name, false
	}
	return name, false
}

// methodsOf returns getter methods of the pointer method set of base.
// Methods returning base or *base are not getters.
func methodsOf(base reflect.Type) []*method {
	pt := reflect.PointerTo(base)
	var out []*method
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		if skipMethods[m.Name] || m.Type.NumIn() != 1 || m.Type.NumOut() == 0 {
			continue
		}
		// Derived copies such as time.Time.UTC would recurse without end.
		if rt := m.Type.Out(0); rt == base || rt == pt {
			continue
		}
		switch {
		case m.Type.NumOut() == 1:
			out = append(out, &method{name: m.Name, owner: base, typ: m.Type.Out(0)})
		case m.Type.NumOut() == 2 && m.Type.Out(1) == errorType:
			out = append(out, &method{name: m.Name, owner: base, typ: m.Type.Out(0), fallible: true})
		}
	}
	return out
}

// receiver dereferences instance down to a value of type owner.
func receiver(owner reflect.Type, instance any) (reflect.Value, error) {
	if instance == nil {
		return reflect.Value{}, ErrNilInstance
	}
	v := reflect.ValueOf(instance)
	for v.Kind() == reflect.Ptr && v.Type() != owner {
		if v.IsNil() {
			return reflect.Value{}, ErrNilInstance
		}
		v = v.Elem()
	}
	if v.Type() != owner {
		return reflect.Value{}, fmt.Errorf("%w: %s from %T", ErrTypeMismatch, owner, instance)
	}
	return v, nil
}

// field is a struct field accessor.
type field struct {
	name      string
	owner     reflect.Type
	declaring reflect.Type
	typ       reflect.Type
	tag       reflect.StructTag
	index     []int
}

// Ensure field implements apis.Property.
var _ apis.Property = (*field)(nil)

func (f *field) Key() apis.PropertyKey       { return apis.PropertyKey{ID: f.name, DeclaringType: f.declaring} }
func (f *field) Name() string                { return f.name }
func (f *field) DeclaringType() reflect.Type { return f.declaring }
func (f *field) Type() reflect.Type          { return f.typ }
func (f *field) Tag() reflect.StructTag      { return f.tag }
func (f *field) IsMethod() bool              { return false }

// Extract reads the field from instance (a value of, or pointer to, the
// owning struct).
func (f *field) Extract(instance any) (any, error) {
	v, err := receiver(f.owner, instance)
	if err != nil {
		return nil, err
	}
	fv, err := v.FieldByIndexErr(f.index)
	if err != nil {
		return nil, fmt.Errorf("%w: %s.%s: %v", ErrNilInstance, f.owner, f.name, err)
	}
	return fv.Interface(), nil
}

func (f *field) String() string { return f.owner.String() + "." + f.name }

// method is a getter method accessor.
type method struct {
	name     string
	owner    reflect.Type
	typ      reflect.Type
	fallible bool
}

// Ensure method implements apis.Property.
var _ apis.Property = (*method)(nil)

func (m *method) Key() apis.PropertyKey       { return apis.PropertyKey{ID: m.name, DeclaringType: m.owner} }
func (m *method) Name() string                { return m.name }
func (m *method) DeclaringType() reflect.Type { return m.owner }
func (m *method) Type() reflect.Type          { return m.typ }
func (m *method) Tag() reflect.StructTag      { return "" }
func (m *method) IsMethod() bool              { return true }

// Extract calls the getter on instance. A non-nil error result or a panic
// is returned as the fault.
func (m *method) Extract(instance any) (v any, err error) {
	rv, err := receiver(m.owner, instance)
	if err != nil {
		return nil, err
	}
	// Value receivers are copied so pointer-receiver getters are callable.
	if !rv.CanAddr() {
		pv := reflect.New(m.owner)
		pv.Elem().Set(rv)
		rv = pv.Elem()
	}

	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("%w: %s.%s: %v", ErrPanic, m.owner, m.name, r)
		}
	}()
	out := rv.Addr().MethodByName(m.name).Call(nil)
	if m.fallible && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

func (m *method) String() string { return m.owner.String() + "." + m.name + "()" }
