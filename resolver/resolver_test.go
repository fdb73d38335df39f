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

package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/performer"
	"dirpx.dev/dfx/resolver"
)

// fixed is a strategy that handles every pair whose actual satisfies match.
type fixed struct {
	name  string
	p     apis.Performer
	match func(any) bool
}

func (f fixed) Name() string { return f.name }
func (f fixed) TryResolve(actual, _ any) (apis.Performer, bool) {
	if f.match(actual) {
		return f.p, true
	}
	return nil, false
}

func always(any) bool { return true }

func isInt(v any) bool { _, ok := v.(int); return ok }

func TestResolve_Order(t *testing.T) {
	ints := performer.NewFunc("ints", func(a, e any) bool { return a == e })
	all := performer.NewFunc("all", func(a, e any) bool { return true })

	r := resolver.New(
		fixed{name: "ints", p: ints, match: isInt},
		nil, // ignored
		fixed{name: "all", p: all, match: always},
	)

	p, via, ok := r.Resolve(1, 2)
	assert.True(t, ok)
	assert.Equal(t, "ints", via)
	assert.Same(t, ints, p)

	p, via, ok = r.Resolve("a", "b")
	assert.True(t, ok)
	assert.Equal(t, "all", via)
	assert.Same(t, all, p)
}

func TestResolve_NoStrategies(t *testing.T) {
	_, via, ok := resolver.New().Resolve(1, 1)
	assert.False(t, ok)
	assert.Empty(t, via)
}
