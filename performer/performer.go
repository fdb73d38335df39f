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
	uref "dirpx.dev/dfx/utils/reflect"
)

var (
	// ErrNilPerformer is raised when a nil performer is supplied where one is required.
	ErrNilPerformer = errors.New("dfx(performer): nil performer")
	// ErrNilExtractor is raised when a nil extractor is supplied.
	ErrNilExtractor = errors.New("dfx(performer): nil extractor")
	// ErrPanic wraps a panic recovered by SafeCompare or during extraction.
	ErrPanic = errors.New("dfx(performer): panic")
	// ErrUnsupported is the cause of failures for operands a performer cannot handle.
	ErrUnsupported = errors.New("dfx(performer): unsupported operand")
	// ErrUnresolvedRef is the cause of failures produced by an unset Ref.
	ErrUnresolvedRef = errors.New("dfx(performer): unresolved reference")
)

// Func adapts a plain equality function to a Performer producing leaf
// outcomes.
type Func struct {
	name string
	fn   func(actual, expected any) bool
}

// Ensure Func implements apis.Performer.
var _ apis.Performer = (*Func)(nil)

// NewFunc returns a Performer named name that decides equality with fn.
func NewFunc(name string, fn func(actual, expected any) bool) *Func {
	if fn == nil {
		panic(fmt.Errorf("%w: func %q", ErrNilPerformer, name))
	}
	return &Func{name: name, fn: fn}
}

// Compare applies the wrapped function.
func (f *Func) Compare(actual, expected any) apis.Outcome {
	return outcome.New(f, actual, expected, f.fn(actual, expected))
}

// Name returns the name given at construction.
func (f *Func) Name() string { return f.name }

// Predicate returns the pass/fail view of p.
func Predicate(p apis.Performer) func(actual, expected any) bool {
	mustPerformer(p, "predicate")
	return func(actual, expected any) bool {
		return p.Compare(actual, expected).Success()
	}
}

// Equal reports whether p considers actual and expected equal.
func Equal(p apis.Performer, actual, expected any) bool {
	return Predicate(p)(actual, expected)
}

// SafeCompare calls p.Compare and converts any panic escaping it into a
// failure outcome whose cause wraps ErrPanic.
func SafeCompare(p apis.Performer, actual, expected any) (o apis.Outcome) {
	mustPerformer(p, "safe compare")
	defer func() {
		if r := recover(); r != nil {
			o = outcome.NewFailure(p, actual, expected, panicError(r))
		}
	}()
	return p.Compare(actual, expected)
}

// panicError converts a recovered value into an error wrapping ErrPanic.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", ErrPanic, err)
	}
	return fmt.Errorf("%w: %v", ErrPanic, r)
}

// shortcut applies the identity and null shortcuts shared by structural
// performers. It returns (outcome, true) when the pair is decided.
func shortcut(p apis.Performer, actual, expected any) (apis.Outcome, bool) {
	if uref.Same(actual, expected) {
		return outcome.Succeeded(p, actual, expected), true
	}
	an, en := uref.IsNil(actual), uref.IsNil(expected)
	switch {
	case an && en:
		return outcome.Succeeded(p, actual, expected), true
	case an || en:
		return outcome.Failed(p, actual, expected), true
	}
	return nil, false
}

// Shortcut exposes the identity and null shortcuts to performers outside
// this package.
func Shortcut(p apis.Performer, actual, expected any) (apis.Outcome, bool) {
	return shortcut(p, actual, expected)
}

func mustPerformer(p apis.Performer, what string) {
	if p == nil {
		panic(fmt.Errorf("%w: %s", ErrNilPerformer, what))
	}
}
