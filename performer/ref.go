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

package performer

import (
	"errors"
	"fmt"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/outcome"
)

// ErrRefAlreadySet is raised when a Ref is bound twice.
var ErrRefAlreadySet = errors.New("dfx(performer): reference already set")

// Ref is a resolve-later reference cell. It lets a performer be wired to
// another performer that does not exist yet, such as the composite a
// builder is still configuring.
type Ref struct {
	name   string
	target apis.Performer
}

// Ensure Ref implements apis.Performer.
var _ apis.Performer = (*Ref)(nil)

// NewRef returns an unbound Ref.
func NewRef(name string) *Ref {
	return &Ref{name: name}
}

// Set binds the reference. It may be called once.
func (r *Ref) Set(p apis.Performer) {
	mustPerformer(p, "ref "+r.name)
	if r.target != nil {
		panic(fmt.Errorf("%w: %q", ErrRefAlreadySet, r.name))
	}
	r.target = p
}

// Target returns the bound performer, or nil.
func (r *Ref) Target() apis.Performer { return r.target }

// Compare delegates to the bound performer. An unbound reference fails
// with ErrUnresolvedRef.
func (r *Ref) Compare(actual, expected any) apis.Outcome {
	if r.target == nil {
		return outcome.NewFailure(r, actual, expected, fmt.Errorf("%w: %q", ErrUnresolvedRef, r.name))
	}
	return r.target.Compare(actual, expected)
}

// Name returns "ref(<name>)".
func (r *Ref) Name() string { return "ref(" + r.name + ")" }
