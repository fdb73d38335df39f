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
	"reflect"
	"strings"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/config"
	uref "dirpx.dev/dfx/utils/reflect"
)

// Path is a linked chain of property keys describing a nested access
// route. The zero-depth path is nil; use Push to extend.
type Path struct {
	parent *Path
	key    apis.PropertyKey
	depth  int
}

// Push returns a new path extending p by k. p may be nil.
func (p *Path) Push(k apis.PropertyKey) *Path {
	depth := 1
	if p != nil {
		depth = p.depth + 1
	}
	return &Path{parent: p, key: k, depth: depth}
}

// Key returns the last key of the path.
func (p *Path) Key() apis.PropertyKey { return p.key }

// Parent returns the path without its last key, or nil.
func (p *Path) Parent() *Path { return p.parent }

// Depth returns the number of keys in the path.
func (p *Path) Depth() int {
	if p == nil {
		return 0
	}
	return p.depth
}

// Keys returns the keys from the root to the leaf.
func (p *Path) Keys() []apis.PropertyKey {
	out := make([]apis.PropertyKey, p.Depth())
	for n := p; n != nil; n = n.parent {
		out[n.depth-1] = n.key
	}
	return out
}

// String renders the dotted call path, e.g. `orders[2].items["sku"].price`.
func (p *Path) String() string {
	var b strings.Builder
	for i, k := range p.Keys() {
		switch {
		case isIndexed(k):
			fmt.Fprintf(&b, "[%#v]", k.ID)
		default:
			if i > 0 {
				b.WriteByte('.')
			}
			fmt.Fprint(&b, k.ID)
		}
	}
	return b.String()
}

// Chain renders the full diagnostic chain naming each declaring type,
// e.g. `shop.Order.items -> []shop.Item[2] -> shop.Item.price`.
func (p *Path) Chain() string {
	cfg := config.DefaultConfig()
	keys := p.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		switch {
		case k.DeclaringType == nil:
			parts[i] = fmt.Sprint(k.ID)
		case isIndexed(k):
			parts[i] = fmt.Sprintf("%s[%#v]", k.DeclaringType.String(), k.ID)
		default:
			parts[i] = fmt.Sprintf("%s.%v", uref.TypeName(k.DeclaringType, cfg), k.ID)
		}
	}
	return strings.Join(parts, " -> ")
}

// isIndexed reports whether k addresses a sequence position or map entry.
func isIndexed(k apis.PropertyKey) bool {
	if k.DeclaringType == nil {
		return false
	}
	switch k.DeclaringType.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}
