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

// Performer is a pluggable equality/diff strategy for a given value shape.
//
// Compare must not panic for well-formed inputs. Callers that need a total
// function regardless of the performers composed underneath should use
// performer.SafeCompare.
type Performer interface {
	// Compare compares actual against expected and returns the outcome.
	Compare(actual, expected any) Outcome
	// Name returns a short diagnostic name of the performer.
	Name() string
}

// Outcome is the immutable result of one comparison.
type Outcome interface {
	// Actual returns the actual operand as it was compared.
	Actual() any
	// Expected returns the expected operand as it was compared.
	Expected() any
	// Success reports whether the operands were considered equal.
	Success() bool
	// Performer returns the performer that produced this outcome.
	Performer() Performer
}

// FailureOutcome is a failed Outcome carrying an optional underlying fault,
// typically the error raised while extracting a value to compare.
type FailureOutcome interface {
	Outcome
	// Cause returns the fault, or nil.
	Cause() error
}

// ComplexOutcome is an Outcome with an insertion-ordered set of keyed
// children. Its Success is the logical AND of all children (true if empty).
type ComplexOutcome interface {
	Outcome
	// Keys returns the child keys in insertion order.
	Keys() []PropertyKey
	// Child returns the child outcome stored under k.
	Child(k PropertyKey) (Outcome, bool)
	// Len returns the number of children.
	Len() int
}

// Collection is implemented by values that want to be compared as an
// unordered collection of elements.
type Collection interface {
	// Elements returns a snapshot of the collection's elements.
	Elements() []any
}
