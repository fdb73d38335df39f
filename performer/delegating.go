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
	"fmt"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/outcome"
)

// Extractor reads one value out of an instance. apis.Property satisfies it.
type Extractor interface {
	Extract(instance any) (any, error)
}

// ExtractorFunc adapts a function to an Extractor.
type ExtractorFunc func(instance any) (any, error)

// Extract calls f.
func (f ExtractorFunc) Extract(instance any) (any, error) { return f(instance) }

// Delegating extracts one value from each operand and hands the pair to a
// delegate performer. It makes accessors usable as Composite entries.
type Delegating struct {
	name      string
	extractor Extractor
	delegate  apis.Performer
}

// Ensure Delegating implements apis.Performer.
var _ apis.Performer = (*Delegating)(nil)

// NewDelegating returns a Delegating performer named name.
func NewDelegating(name string, x Extractor, delegate apis.Performer) *Delegating {
	if x == nil {
		panic(fmt.Errorf("%w: %q", ErrNilExtractor, name))
	}
	mustPerformer(delegate, "delegate of "+name)
	return &Delegating{name: name, extractor: x, delegate: delegate}
}

// Compare extracts from both operands; an extraction fault yields a
// failure carrying it, otherwise the delegate's outcome is returned as is.
func (d *Delegating) Compare(actual, expected any) apis.Outcome {
	va, err := extract(d.extractor, actual)
	if err != nil {
		return outcome.NewFailure(d, actual, expected, err)
	}
	ve, err := extract(d.extractor, expected)
	if err != nil {
		return outcome.NewFailure(d, va, expected, err)
	}
	return d.delegate.Compare(va, ve)
}

// Name returns the name given at construction.
func (d *Delegating) Name() string { return d.name }

// extract calls x.Extract and converts a panic into an error.
func extract(x Extractor, instance any) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, panicError(r)
		}
	}()
	return x.Extract(instance)
}
