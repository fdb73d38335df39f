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

package registry_test

import (
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/performer"
	"dirpx.dev/dfx/registry"
)

type T1 struct{ V int }
type T2 struct{ V int }

type shaper interface{ Area() int }
type sider interface{ Sides() int }

type square struct{ side int }

func (s square) Area() int  { return s.side * s.side }
func (s square) Sides() int { return 4 }

func named(name string) apis.Performer {
	return performer.NewFunc(name, func(a, e any) bool { return true })
}

func TestRegister_IdempotentAndLookup(t *testing.T) {
	reg := registry.New()
	p := named("t1")

	if err := reg.Register(reflect.TypeOf(T1{}), p); err != nil {
		t.Fatalf("Register(T1): unexpected error: %v", err)
	}
	// idempotent re-register with the same performer
	if err := reg.Register(reflect.TypeOf(T1{}), p); err != nil {
		t.Fatalf("Register(T1) idempotent: unexpected error: %v", err)
	}

	if got, ok := reg.Lookup(T1{1}, T1{2}); !ok || got != p {
		t.Fatalf("Lookup(T1, T1): got (%v,%v), want (t1,true)", got, ok)
	}
	if reg.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", reg.Count())
	}
	if !reg.Registered(reflect.TypeOf(T1{})) {
		t.Fatalf("Registered(T1) = false, want true")
	}
}

func TestRegister_Conflict(t *testing.T) {
	reg := registry.New()

	if err := reg.Register(reflect.TypeOf(T1{}), named("a")); err != nil {
		t.Fatalf("Register: unexpected error: %v", err)
	}
	err := reg.Register(reflect.TypeOf(T1{}), named("b"))
	if !errors.Is(err, registry.ErrConflictingRegistration) {
		t.Fatalf("expected ErrConflictingRegistration, got: %v", err)
	}
}

func TestRegister_Errors(t *testing.T) {
	reg := registry.New()

	if err := reg.Register(nil, named("x")); !errors.Is(err, registry.ErrNilType) {
		t.Fatalf("nil type: want ErrNilType, got %v", err)
	}
	if err := reg.Register(reflect.TypeOf(T1{}), nil); !errors.Is(err, registry.ErrNilPerformer) {
		t.Fatalf("nil performer: want ErrNilPerformer, got %v", err)
	}
}

func TestLookup_FirstRegisteredWins(t *testing.T) {
	reg := registry.New()
	first, second := named("shaper"), named("sider")

	_ = reg.Register(reflect.TypeFor[shaper](), first)
	_ = reg.Register(reflect.TypeFor[sider](), second)

	// square satisfies both interfaces: the earlier registration wins.
	for i := 0; i < 10; i++ {
		if got, ok := reg.Lookup(square{1}, square{2}); !ok || got != first {
			t.Fatalf("Lookup(square): got (%v,%v), want (shaper,true)", got, ok)
		}
	}

	// Reversed registration order flips the winner.
	rev := registry.New()
	_ = rev.Register(reflect.TypeFor[sider](), second)
	_ = rev.Register(reflect.TypeFor[shaper](), first)
	if got, _ := rev.Lookup(square{1}, square{2}); got != second {
		t.Fatalf("reversed Lookup(square): got %v, want sider", got)
	}
}

func TestLookup_BothOperandsMustMatch(t *testing.T) {
	reg := registry.New()
	_ = reg.Register(reflect.TypeOf(T1{}), named("t1"))

	if _, ok := reg.Lookup(T1{}, T2{}); ok {
		t.Fatalf("Lookup(T1, T2): want miss")
	}
	if _, ok := reg.Lookup(&T1{}, &T1{}); ok {
		t.Fatalf("Lookup(*T1, *T1): want miss for exact type T1")
	}
}

func TestEntriesAndReset(t *testing.T) {
	reg := registry.New()

	_ = reg.Register(reflect.TypeOf(T1{}), named("t1"))
	_ = reg.Register(reflect.TypeOf(T2{}), named("t2"))

	entries := reg.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries len = %d, want 2", len(entries))
	}
	if entries[0].Type != reflect.TypeOf(T1{}) || entries[1].Type != reflect.TypeOf(T2{}) {
		t.Fatalf("Entries not in registration order: %v", entries)
	}

	reg.Reset()

	if reg.Count() != 0 {
		t.Fatalf("after Reset, Count() = %d, want 0", reg.Count())
	}
	if _, ok := reg.Lookup(T1{}, T1{}); ok {
		t.Fatalf("Lookup after Reset: want miss")
	}
}

func TestLookupNilAndUnknown(t *testing.T) {
	reg := registry.New()
	_ = reg.Register(reflect.TypeFor[any](), named("any"))

	if _, ok := reg.Lookup(nil, T1{}); ok {
		t.Fatalf("Lookup(nil, T1): want miss")
	}
	if _, ok := reg.Lookup(T1{}, nil); ok {
		t.Fatalf("Lookup(T1, nil): want miss")
	}
	if _, ok := registry.New().Lookup(T1{}, T1{}); ok {
		t.Fatalf("Lookup(unknown): want miss")
	}
}
