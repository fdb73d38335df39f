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

// Registry is an ordered list of (type, performer) associations. Lookup
// returns the first registered entry whose type both operands satisfy, so
// registration order is significant.
type Registry interface {
	// Register appends t -> p. Re-registering the same pair is a no-op,
	// registering a different performer for t fails.
	Register(t reflect.Type, p Performer) error
	// Registered reports whether t has an entry.
	Registered(t reflect.Type) bool
	// Lookup returns the performer of the first entry both values satisfy.
	Lookup(actual, expected any) (Performer, bool)
	// Entries returns a snapshot in registration order.
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (type, performer) association in a Registry snapshot.
type Entry struct {
	// Type is the registered reflect.Type.
	Type reflect.Type
	// Performer is the associated performer.
	Performer Performer
}
