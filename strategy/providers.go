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

package strategy

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/dfx/apis"
	uref "dirpx.dev/dfx/utils/reflect"
)

var (
	// ErrNilType is returned when a provider is added with a nil type.
	ErrNilType = errors.New("dfx(strategy): nil reflect.Type provided")
	// ErrNilFactory is returned when a provider is added with a nil factory.
	ErrNilFactory = errors.New("dfx(strategy): nil factory provided")
)

// Provider associates an element (or map value) type with a factory.
type Provider struct {
	// Elem is the declared element type.
	Elem reflect.Type
	// Factory builds the specialized performer.
	Factory apis.Factory
}

// Providers is an ordered list of element providers.
type Providers struct {
	mu   sync.RWMutex
	list []Provider
}

// Add appends a provider for element type elem.
func (p *Providers) Add(elem reflect.Type, f apis.Factory) error {
	if elem == nil {
		return ErrNilType
	}
	if f == nil {
		return ErrNilFactory
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.list = append(p.list, Provider{Elem: elem, Factory: f})
	return nil
}

// Snapshot returns the providers in insertion order.
func (p *Providers) Snapshot() []Provider {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Provider, len(p.list))
	copy(out, p.list)
	return out
}

// Len returns the number of providers.
func (p *Providers) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.list)
}

// Container is one row of a Table: a container type and its ordered
// element providers.
type Container struct {
	Type      reflect.Type
	Providers []Provider
}

// Table is a two-level ordered provider table:
// container type -> element type -> factory.
type Table struct {
	mu   sync.RWMutex
	rows []Container
	pos  map[reflect.Type]int
}

// Add appends a provider for elem under container, creating the row on
// first use. Rows keep the order of their first Add.
func (t *Table) Add(container, elem reflect.Type, f apis.Factory) error {
	if container == nil || elem == nil {
		return fmt.Errorf("%w: container=%v elem=%v", ErrNilType, container, elem)
	}
	if f == nil {
		return ErrNilFactory
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pos == nil {
		t.pos = make(map[reflect.Type]int)
	}
	i, ok := t.pos[container]
	if !ok {
		i = len(t.rows)
		t.pos[container] = i
		t.rows = append(t.rows, Container{Type: container})
	}
	t.rows[i].Providers = append(t.rows[i].Providers, Provider{Elem: elem, Factory: f})
	return nil
}

// Snapshot returns the rows in insertion order.
func (t *Table) Snapshot() []Container {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Container, len(t.rows))
	for i, r := range t.rows {
		out[i] = Container{Type: r.Type, Providers: append([]Provider(nil), r.Providers...)}
	}
	return out
}

// Len returns the number of container rows.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// allInstances reports whether every value is an instance of t.
func allInstances(t reflect.Type, values []any) bool {
	for _, v := range values {
		if !uref.Instance(t, v) {
			return false
		}
	}
	return true
}
