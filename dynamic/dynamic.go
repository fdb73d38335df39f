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

// Package dynamic implements the central resolution engine: a performer
// that picks, for every pair of operands, the performer to delegate to.
//
// Resolution order:
//  1. A nil operand skips resolution; the deep equality baseline decides.
//  2. The first registry entry whose type both operands are instances of.
//  3. Array-shaped operands: the first array provider whose element type
//     fits, else a generic Sequence.
//  4. Collection-shaped operands: the first collection provider whose
//     container type and element type fit, else a generic Unordered.
//  5. Map-shaped operands: the first map provider whose container type and
//     value type fit, else a generic Map.
//  6. The default delegate.
//
// Container performers built in steps 3-5 are fresh per call and use the
// Dynamic performer itself as their element comparator.
//
// Registration is a configuration-phase activity. Once configured, a
// Dynamic performer is safe for concurrent Compare calls.
package dynamic

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/config"
	"dirpx.dev/dfx/performer"
	"dirpx.dev/dfx/registry"
	"dirpx.dev/dfx/resolver"
	"dirpx.dev/dfx/strategy"
	uref "dirpx.dev/dfx/utils/reflect"
)

var (
	// ErrSelfDelegate is raised when the default delegate is set to the
	// Dynamic performer itself.
	ErrSelfDelegate = errors.New("dfx(dynamic): default delegate cannot be the dynamic performer itself")
	// ErrNilPerformer is raised when a nil performer is supplied.
	ErrNilPerformer = errors.New("dfx(dynamic): nil performer")
)

// Resolution sources reported by Resolve and logged at debug level.
const (
	ViaNil     = "nil"
	ViaDefault = "default"
)

// Option configures a Dynamic performer at construction.
type Option func(*Dynamic)

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dynamic) {
		if l != nil {
			d.log = l
		}
	}
}

// WithDefault sets the default delegate.
func WithDefault(p apis.Performer) Option {
	return func(d *Dynamic) { d.SetDefault(p) }
}

// WithRegistry replaces the exact-type registry.
func WithRegistry(reg apis.Registry) Option {
	return func(d *Dynamic) {
		if reg != nil {
			d.reg = reg
		}
	}
}

// WithConfig sets the config used for diagnostic names.
func WithConfig(cfg apis.Config) Option {
	return func(d *Dynamic) { d.cfg = cfg }
}

// Dynamic resolves a performer per operand pair and delegates to it.
type Dynamic struct {
	cfg         apis.Config
	reg         apis.Registry
	arrays      *strategy.Providers
	collections *strategy.Table
	maps        *strategy.Table
	def         apis.Performer
	res         apis.Resolver
	log         *zap.Logger
}

// Ensure Dynamic implements apis.Performer.
var _ apis.Performer = (*Dynamic)(nil)

// New constructs a Dynamic performer with an empty registry, empty
// provider tables and the deep equality baseline as default delegate.
func New(opts ...Option) *Dynamic {
	d := &Dynamic{
		cfg:         config.DefaultConfig(),
		reg:         registry.New(),
		arrays:      &strategy.Providers{},
		collections: &strategy.Table{},
		maps:        &strategy.Table{},
		def:         performer.Equality(),
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.res = resolver.New(
		strategy.NewRegistryStrategy(d.reg),
		strategy.NewArrayStrategy(d.arrays, d),
		strategy.NewCollectionStrategy(d.collections, d),
		strategy.NewMapStrategy(d.maps, d),
	)
	return d
}

// Register appends an exact-type registration. Registration order decides
// which performer wins when both operands satisfy several types.
func (d *Dynamic) Register(t reflect.Type, p apis.Performer) error {
	return d.reg.Register(t, p)
}

// Registered reports whether t has a registration.
func (d *Dynamic) Registered(t reflect.Type) bool {
	return d.reg.Registered(t)
}

// Registry returns the exact-type registry.
func (d *Dynamic) Registry() apis.Registry { return d.reg }

// Types enumerates the registered types in registration order.
func (d *Dynamic) Types() []reflect.Type {
	entries := d.reg.Entries()
	out := make([]reflect.Type, len(entries))
	for i, e := range entries {
		out[i] = e.Type
	}
	return out
}

// AddArray appends an array provider for element type elem.
func (d *Dynamic) AddArray(elem reflect.Type, f apis.Factory) error {
	return d.arrays.Add(elem, f)
}

// AddCollection appends a collection provider.
func (d *Dynamic) AddCollection(container, elem reflect.Type, f apis.Factory) error {
	return d.collections.Add(container, elem, f)
}

// AddMap appends a map provider matched on container and value type.
func (d *Dynamic) AddMap(container, value reflect.Type, f apis.Factory) error {
	return d.maps.Add(container, value, f)
}

// Default returns the default delegate.
func (d *Dynamic) Default() apis.Performer { return d.def }

// SetDefault replaces the default delegate. It panics if p is nil or d.
func (d *Dynamic) SetDefault(p apis.Performer) {
	if p == nil {
		panic(fmt.Errorf("%w: default delegate", ErrNilPerformer))
	}
	if q, ok := p.(*Dynamic); ok && q == d {
		panic(ErrSelfDelegate)
	}
	d.def = p
}

// Logger returns the diagnostics logger.
func (d *Dynamic) Logger() *zap.Logger { return d.log }

// Config returns the config given at construction.
func (d *Dynamic) Config() apis.Config { return d.cfg }

// Resolve returns the performer for (actual, expected) and the source that
// selected it: a strategy name, ViaNil or ViaDefault.
func (d *Dynamic) Resolve(actual, expected any) (apis.Performer, string) {
	if uref.IsNil(actual) || uref.IsNil(expected) {
		return performer.Equality(), ViaNil
	}
	if p, via, ok := d.res.Resolve(actual, expected); ok {
		return p, via
	}
	return d.def, ViaDefault
}

// Compare resolves the performer for the pair and delegates to it.
func (d *Dynamic) Compare(actual, expected any) apis.Outcome {
	p, via := d.Resolve(actual, expected)
	if ce := d.log.Check(zap.DebugLevel, "resolved performer"); ce != nil {
		ce.Write(
			zap.String("actual", typeName(actual, d.cfg)),
			zap.String("expected", typeName(expected, d.cfg)),
			zap.String("via", via),
			zap.String("performer", p.Name()),
		)
	}
	return p.Compare(actual, expected)
}

// Name returns "dynamic".
func (*Dynamic) Name() string { return "dynamic" }

// RegisterFor registers p for the type parameter T.
func RegisterFor[T any](d *Dynamic, p apis.Performer) error {
	return d.Register(reflect.TypeFor[T](), p)
}

func typeName(v any, cfg apis.Config) string {
	if v == nil {
		return "<nil>"
	}
	return uref.TypeName(reflect.TypeOf(v), cfg)
}
