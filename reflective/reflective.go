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

// Package reflective provides the zero-configuration structural performer.
//
// A Reflective performer compares two values of the same dynamic type by
// descending into their accessors (see package property): every accessor
// becomes a child outcome keyed by its property key, and nested values are
// compared by the same performer. Primitive-like values and types with no
// accessors are compared with the deep equality baseline.
package reflective

import (
	"reflect"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/outcome"
	"dirpx.dev/dfx/performer"
	"dirpx.dev/dfx/property"
	uref "dirpx.dev/dfx/utils/reflect"
)

// Reflective compares values by enumerating their accessors.
type Reflective struct {
	cfg apis.Config
}

// Ensure Reflective implements apis.Performer.
var _ apis.Performer = (*Reflective)(nil)

// New returns a Reflective performer. cfg selects accessor discovery
// (IncludeMethods, TagKey) and enables the cycle guard (DetectCycles).
func New(cfg apis.Config) *Reflective {
	return &Reflective{cfg: cfg}
}

// Compare walks actual and expected.
//
// The identity and null shortcuts apply first. Values of differing dynamic
// types yield a single ClassKey child comparing the two types. Slices and
// arrays are compared as sequences, maps as maps and pointers by their
// targets, all recursing into this performer.
func (r *Reflective) Compare(actual, expected any) apis.Outcome {
	w := &walker{r: r}
	if r.cfg.DetectCycles {
		w.visited = make(map[visit]bool)
	}
	return w.Compare(actual, expected)
}

// Name returns "reflective".
func (*Reflective) Name() string { return "reflective" }

// Properties enumerates the accessors of t under the performer's config.
func (r *Reflective) Properties(t reflect.Type) []apis.Property {
	return property.Of(t, r.cfg)
}

// opaque reports whether values of t are compared as a whole: t (or *t)
// defines an Equal(t) bool method, or props is empty.
func opaque(t reflect.Type, props []apis.Property) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return hasEqual(t) || len(props) == 0
}

// hasEqual reports whether t or *t has a method Equal(t) bool.
func hasEqual(t reflect.Type) bool {
	m, ok := reflect.PointerTo(t).MethodByName("Equal")
	if !ok {
		return false
	}
	mt := m.Type
	return mt.NumIn() == 2 && t.AssignableTo(mt.In(1)) &&
		mt.NumOut() == 1 && mt.Out(0).Kind() == reflect.Bool
}

// visit identifies a pair of references already being compared.
type visit struct {
	a, e uintptr
	t    reflect.Type
}

// walker carries the per-call state of one Compare.
type walker struct {
	r       *Reflective
	visited map[visit]bool
}

func (w *walker) Name() string { return w.r.Name() }

func (w *walker) Compare(actual, expected any) apis.Outcome {
	r := w.r
	if o, ok := performer.Shortcut(r, actual, expected); ok {
		return o
	}

	ta, te := reflect.TypeOf(actual), reflect.TypeOf(expected)
	if ta != te {
		return outcome.Single(r, actual, expected, outcome.ClassKey, outcome.Failed(r, ta, te))
	}
	if uref.IsPrimitive(ta) {
		return performer.Equality().Compare(actual, expected)
	}
	if w.seen(actual, expected) {
		return outcome.Succeeded(r, actual, expected)
	}

	switch ta.Kind() {
	case reflect.Slice, reflect.Array:
		return performer.NewSequence(w).Compare(actual, expected)
	case reflect.Map:
		return performer.NewMap(w).Compare(actual, expected)
	case reflect.Ptr:
		if ta.Elem().Kind() != reflect.Struct {
			return w.Compare(reflect.ValueOf(actual).Elem().Interface(), reflect.ValueOf(expected).Elem().Interface())
		}
	case reflect.Struct:
	default:
		return performer.Equality().Compare(actual, expected)
	}

	props := property.Of(ta, r.cfg)
	if opaque(ta, props) {
		return performer.Equality().Compare(actual, expected)
	}
	children := outcome.NewChildren(len(props))
	for _, p := range props {
		children.Put(p.Key(), w.compareProperty(p, actual, expected))
	}
	return outcome.NewComplex(r, actual, expected, children)
}

// compareProperty extracts p from both operands and compares the values.
// An extraction fault becomes a failure outcome for this accessor.
func (w *walker) compareProperty(p apis.Property, actual, expected any) apis.Outcome {
	va, err := p.Extract(actual)
	if err != nil {
		return outcome.NewFailure(w.r, actual, expected, err)
	}
	ve, err := p.Extract(expected)
	if err != nil {
		return outcome.NewFailure(w.r, actual, expected, err)
	}
	return w.Compare(va, ve)
}

// seen records a pair of pointers or maps and reports whether it was
// already recorded. Slices are not tracked: a cycle always passes through
// a pointer or a map, and slices sharing a backing array may differ in
// length. It is a no-op without the cycle guard.
func (w *walker) seen(actual, expected any) bool {
	if w.visited == nil {
		return false
	}
	ra, re := reflect.ValueOf(actual), reflect.ValueOf(expected)
	switch ra.Kind() {
	case reflect.Ptr, reflect.Map:
	default:
		return false
	}
	v := visit{a: ra.Pointer(), e: re.Pointer(), t: ra.Type()}
	if w.visited[v] {
		return true
	}
	w.visited[v] = true
	return false
}
