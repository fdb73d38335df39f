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
	"reflect"

	"github.com/google/go-cmp/cmp"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/outcome"
	uref "dirpx.dev/dfx/utils/reflect"
)

// defaultCmpOptions make cmp.Equal total over arbitrary values: unexported
// fields are compared, type descriptors compare with ==, and funcs compare
// by code pointer.
var defaultCmpOptions = cmp.Options{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmp.Comparer(func(a, b reflect.Type) bool { return a == b }),
	cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().Type().Kind() == reflect.Func
	}, cmp.Transformer("func.pointer", func(f any) uintptr {
		if f == nil {
			return 0
		}
		return reflect.ValueOf(f).Pointer()
	})),
}

// CmpOptions returns a copy of the go-cmp options used by the equality
// baseline.
func CmpOptions() cmp.Options {
	return append(cmp.Options{}, defaultCmpOptions...)
}

// equality is the deep-value-equality baseline backed by go-cmp.
type equality struct {
	opts cmp.Options
}

// Ensure equality implements apis.Performer.
var _ apis.Performer = (*equality)(nil)

// baseline is the shared default equality performer.
var baseline = &equality{opts: defaultCmpOptions}

// Equality returns the deep-value-equality performer. Extra options are
// appended to the defaults; without options a shared instance is returned.
func Equality(opts ...cmp.Option) apis.Performer {
	if len(opts) == 0 {
		return baseline
	}
	all := append(cmp.Options{}, defaultCmpOptions...)
	for _, o := range opts {
		all = append(all, o)
	}
	return &equality{opts: all}
}

// Compare reports deep equality of actual and expected as a leaf outcome.
func (e *equality) Compare(actual, expected any) apis.Outcome {
	if uref.Same(actual, expected) {
		return outcome.Succeeded(e, actual, expected)
	}
	return outcome.New(e, actual, expected, cmp.Equal(actual, expected, e.opts))
}

// Name returns "equality".
func (*equality) Name() string { return "equality" }
