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

package builder

import (
	"fmt"
	"reflect"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/performer"
	"dirpx.dev/dfx/property"
)

// DiscoveryBuilder builds a composite from the discovered accessors of a
// type that pass its filters. Every surviving accessor is compared by the
// owner.
type DiscoveryBuilder struct {
	base
	cfg      apis.Config
	requires []apis.PropertyFilter
	includes []apis.PropertyFilter
	excludes []apis.PropertyFilter
}

// Discover returns a discovery builder for t. cfg selects which accessors
// are discovered.
func Discover(owner Owner, t reflect.Type, cfg apis.Config) *DiscoveryBuilder {
	return &DiscoveryBuilder{base: newBase(owner, t), cfg: cfg}
}

// DiscoverFor is Discover for the type parameter T.
func DiscoverFor[T any](owner Owner, cfg apis.Config) *DiscoveryBuilder {
	return Discover(owner, reflect.TypeFor[T](), cfg)
}

// Require adds filters that must all accept an accessor.
func (b *DiscoveryBuilder) Require(filters ...apis.PropertyFilter) *DiscoveryBuilder {
	b.requires = b.add(b.requires, "require", filters)
	return b
}

// Include adds filters of which at least one must accept an accessor.
func (b *DiscoveryBuilder) Include(filters ...apis.PropertyFilter) *DiscoveryBuilder {
	b.includes = b.add(b.includes, "include", filters)
	return b
}

// Exclude adds filters none of which may accept an accessor.
func (b *DiscoveryBuilder) Exclude(filters ...apis.PropertyFilter) *DiscoveryBuilder {
	b.excludes = b.add(b.excludes, "exclude", filters)
	return b
}

func (b *DiscoveryBuilder) add(dst []apis.PropertyFilter, group string, filters []apis.PropertyFilter) []apis.PropertyFilter {
	b.mustConfigure()
	for i, f := range filters {
		if f == nil {
			panic(fmt.Errorf("%w: %s %s filter #%d", ErrNilFilter, b.name, group, i))
		}
	}
	return append(dst, filters...)
}

// Properties returns the discovered accessors that pass the filters.
func (b *DiscoveryBuilder) Properties() []apis.Property {
	var out []apis.Property
	for _, p := range property.Of(b.t, b.cfg) {
		if b.accept(p) {
			out = append(out, p)
		}
	}
	return out
}

// accept applies requirement, inclusion and exclusion filters in order.
// An empty group accepts.
func (b *DiscoveryBuilder) accept(p apis.Property) bool {
	for _, f := range b.requires {
		if !f(p) {
			return false
		}
	}
	if len(b.includes) > 0 {
		matched := false
		for _, f := range b.includes {
			if f(p) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, f := range b.excludes {
		if f(p) {
			return false
		}
	}
	return true
}

// Build produces the composite and registers it into the owner.
func (b *DiscoveryBuilder) Build() *performer.Composite {
	b.mustConfigure()
	props := b.Properties()
	entries := make([]performer.Entry, len(props))
	for i, p := range props {
		entries[i] = performer.Entry{
			Key:       p.Key(),
			Performer: performer.NewDelegating(b.name+"."+p.Name(), p, b.owner),
		}
	}
	return b.finish(performer.NewComposite(b.name, entries...))
}
