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

package outcome

import (
	"fmt"

	"dirpx.dev/dfx/apis"
)

// Outcome is a leaf comparison result with no sub-structure.
type Outcome struct {
	actual    any
	expected  any
	success   bool
	performer apis.Performer
}

// Ensure Outcome implements apis.Outcome.
var _ apis.Outcome = (*Outcome)(nil)

// New creates a leaf outcome.
func New(p apis.Performer, actual, expected any, success bool) *Outcome {
	return &Outcome{actual: actual, expected: expected, success: success, performer: p}
}

// Succeeded creates a successful leaf outcome.
func Succeeded(p apis.Performer, actual, expected any) *Outcome {
	return New(p, actual, expected, true)
}

// Failed creates a failed leaf outcome.
func Failed(p apis.Performer, actual, expected any) *Outcome {
	return New(p, actual, expected, false)
}

func (o *Outcome) Actual() any               { return o.actual }
func (o *Outcome) Expected() any             { return o.expected }
func (o *Outcome) Success() bool             { return o.success }
func (o *Outcome) Performer() apis.Performer { return o.performer }

func (o *Outcome) String() string {
	if o.success {
		return fmt.Sprintf("%v == %v", o.actual, o.expected)
	}
	return fmt.Sprintf("%v != %v", o.actual, o.expected)
}

// Failure is a failed outcome raised because a value could not be obtained
// for comparison. Cause holds the underlying fault, if any.
type Failure struct {
	Outcome
	cause error
}

// Ensure Failure implements apis.FailureOutcome.
var _ apis.FailureOutcome = (*Failure)(nil)

// NewFailure creates a failure outcome.
func NewFailure(p apis.Performer, actual, expected any, cause error) *Failure {
	return &Failure{Outcome: Outcome{actual: actual, expected: expected, performer: p}, cause: cause}
}

// Cause returns the fault that produced the failure, or nil.
func (f *Failure) Cause() error { return f.cause }

// String renders the failure with its cause.
func (f *Failure) String() string {
	if f.cause == nil {
		return f.Outcome.String()
	}
	return fmt.Sprintf("%s: %v", f.Outcome.String(), f.cause)
}

// Complex is an outcome with keyed children. Its success is computed on
// read as the AND over all children; an empty Complex is successful.
type Complex struct {
	actual    any
	expected  any
	performer apis.Performer
	children  *Children
}

// Ensure Complex implements apis.ComplexOutcome.
var _ apis.ComplexOutcome = (*Complex)(nil)

// NewComplex freezes children into a complex outcome. The Children value
// must not be modified afterwards.
func NewComplex(p apis.Performer, actual, expected any, children *Children) *Complex {
	if children == nil {
		children = NewChildren(0)
	}
	return &Complex{actual: actual, expected: expected, performer: p, children: children}
}

// Single creates a complex outcome with exactly one child.
func Single(p apis.Performer, actual, expected any, k apis.PropertyKey, child apis.Outcome) *Complex {
	c := NewChildren(1)
	c.Put(k, child)
	return NewComplex(p, actual, expected, c)
}

func (c *Complex) Actual() any               { return c.actual }
func (c *Complex) Expected() any             { return c.expected }
func (c *Complex) Performer() apis.Performer { return c.performer }

// Success reports whether every child succeeded.
func (c *Complex) Success() bool {
	for _, k := range c.children.keys {
		if !c.children.m[k].Success() {
			return false
		}
	}
	return true
}

// Keys returns a copy of the child keys in insertion order.
func (c *Complex) Keys() []apis.PropertyKey {
	out := make([]apis.PropertyKey, len(c.children.keys))
	copy(out, c.children.keys)
	return out
}

// Child returns the child stored under k.
func (c *Complex) Child(k apis.PropertyKey) (apis.Outcome, bool) {
	o, ok := c.children.m[k]
	return o, ok
}

// Len returns the number of children.
func (c *Complex) Len() int { return len(c.children.keys) }

// Children is an insertion-ordered PropertyKey -> Outcome map used to
// assemble a Complex outcome.
type Children struct {
	keys []apis.PropertyKey
	m    map[apis.PropertyKey]apis.Outcome
}

// NewChildren returns an empty Children with capacity for n entries.
func NewChildren(n int) *Children {
	return &Children{
		keys: make([]apis.PropertyKey, 0, n),
		m:    make(map[apis.PropertyKey]apis.Outcome, n),
	}
}

// Put stores o under k. Re-putting a key replaces the value in place.
func (c *Children) Put(k apis.PropertyKey, o apis.Outcome) {
	if _, ok := c.m[k]; !ok {
		c.keys = append(c.keys, k)
	}
	c.m[k] = o
}

// Len returns the number of entries.
func (c *Children) Len() int { return len(c.keys) }
