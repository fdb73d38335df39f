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

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/dfx/apis"
	uref "dirpx.dev/dfx/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("dfx(registry): nil reflect.Type provided")
	// ErrNilPerformer is returned when a nil performer is provided.
	ErrNilPerformer = errors.New("dfx(registry): nil performer provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different performer.
	ErrConflictingRegistration = errors.New("dfx(registry): conflicting type registration")
)

// New constructs an empty, ordered Registry.
func New() apis.Registry {
	return &registry{index: make(map[reflect.Type]int)}
}

// registry is an ordered Registry implementation. Lookup walks entries in
// registration order, so a broad interface type registered early shadows
// narrower types registered later.
type registry struct {
	// mu guards entries and index.
	mu sync.RWMutex
	// entries holds associations in registration order.
	entries []apis.Entry
	// index maps a registered type to its position in entries.
	index map[reflect.Type]int
}

// Register appends t -> p. It is idempotent for the same (type, performer)
// pair.
func (r *registry) Register(t reflect.Type, p apis.Performer) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if p == nil {
		return ErrNilPerformer
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.index[t]; ok {
		if same(r.entries[i].Performer, p) {
			return nil // idempotent re-registration
		}
		return ErrConflictingRegistration
	}

	r.index[t] = len(r.entries)
	r.entries = append(r.entries, apis.Entry{Type: t, Performer: p})
	return nil
}

// Registered reports whether t has an entry.
func (r *registry) Registered(t reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.index[t]
	return ok
}

// Lookup returns the performer of the first entry whose type both
// operands are instances of. Nil operands never match.
func (r *registry) Lookup(actual, expected any) (apis.Performer, bool) {
	if actual == nil || expected == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if uref.Instance(e.Type, actual) && uref.Instance(e.Type, expected) {
			return e.Performer, true
		}
	}
	return nil, false
}

// Entries returns a snapshot in registration order.
func (r *registry) Entries() []apis.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]apis.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.index = make(map[reflect.Type]int)
}

// same compares performers without panicking on uncomparable dynamic types.
func same(a, b apis.Performer) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	return ta == tb && ta.Comparable() && a == b
}
