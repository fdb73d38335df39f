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

package builder

import (
	"fmt"
	"reflect"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/performer"
)

// ExplicitBuilder builds a composite from caller-supplied accessors of T.
type ExplicitBuilder[T any] struct {
	base
	entries []performer.Entry
}

// Explicit returns a builder for T registering into owner.
func Explicit[T any](owner Owner) *ExplicitBuilder[T] {
	return &ExplicitBuilder[T]{base: newBase(owner, reflect.TypeFor[T]())}
}

// With adds the accessor fn under name. The optional delegate compares the
// extracted values; without one the owner does. A repeated name replaces
// the earlier entry in place.
func (b *ExplicitBuilder[T]) With(name string, fn func(T) any, delegate ...apis.Performer) *ExplicitBuilder[T] {
	if fn == nil {
		panic(fmt.Errorf("%w: %s.%s", ErrNilExtractor, b.name, name))
	}
	return b.WithErr(name, func(v T) (any, error) { return fn(v), nil }, delegate...)
}

// WithErr adds a fallible accessor. A returned error becomes the cause of
// a failure outcome for this entry.
func (b *ExplicitBuilder[T]) WithErr(name string, fn func(T) (any, error), delegate ...apis.Performer) *ExplicitBuilder[T] {
	b.mustConfigure()
	if fn == nil {
		panic(fmt.Errorf("%w: %s.%s", ErrNilExtractor, b.name, name))
	}
	var d apis.Performer = b.owner
	if len(delegate) > 0 {
		d = delegate[0]
	}
	x := performer.ExtractorFunc(func(instance any) (any, error) {
		v, err := typed[T](instance)
		if err != nil {
			return nil, err
		}
		return fn(v)
	})
	b.entries = append(b.entries, performer.Entry{
		Key:       b.key(name),
		Performer: performer.NewDelegating(b.name+"."+name, x, d),
	})
	return b
}

// Build produces the composite and registers it into the owner.
func (b *ExplicitBuilder[T]) Build() *performer.Composite {
	b.mustConfigure()
	return b.finish(performer.NewComposite(b.name, b.entries...))
}

// typed converts an operand to T, dereferencing a *T.
func typed[T any](instance any) (T, error) {
	switch v := instance.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: want %s, got %T", ErrTypeMismatch, reflect.TypeFor[T](), instance)
}
