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

// Package builder constructs Composite performers for a type and registers
// them into an owning Dynamic performer.
//
// Two flavors exist. Explicit builders take (name, extractor) pairs;
// Discovery builders enumerate the accessors of the type and filter them.
// Both are single-use: Build moves the builder from configuring to built
// and any further use panics with ErrAlreadyBuilt.
//
// Registration is idempotent: Build registers the composite only when the
// owner has no registration for the type yet. Self returns a reference
// that is bound to the built composite, so an entry can delegate to the
// performer of its own type before that performer exists.
package builder

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/performer"
	uref "dirpx.dev/dfx/utils/reflect"
)

var (
	// ErrAlreadyBuilt is raised when a built builder is used again.
	ErrAlreadyBuilt = errors.New("dfx(builder): builder already built")
	// ErrNilOwner is raised when a builder is created without an owner.
	ErrNilOwner = errors.New("dfx(builder): nil owner")
	// ErrNilType is raised when a discovery builder is created for a nil type.
	ErrNilType = errors.New("dfx(builder): nil reflect.Type provided")
	// ErrNilFilter is raised when a nil property filter is supplied.
	ErrNilFilter = errors.New("dfx(builder): nil property filter")
	// ErrNilExtractor is raised when an explicit entry has no extractor.
	ErrNilExtractor = errors.New("dfx(builder): nil extractor")
	// ErrTypeMismatch is the extraction fault for operands of another type.
	ErrTypeMismatch = errors.New("dfx(builder): operand type mismatch")
)

// Owner is the Dynamic performer a builder registers into. Its Compare is
// the default delegate of built entries.
type Owner interface {
	apis.Performer
	Register(t reflect.Type, p apis.Performer) error
	Registered(t reflect.Type) bool
	Config() apis.Config
	Logger() *zap.Logger
}

// state is the builder lifecycle.
type state int

const (
	configuring state = iota
	built
)

// base holds what both builder flavors share.
type base struct {
	owner Owner
	t     reflect.Type
	name  string
	self  *performer.Ref
	state state
}

func newBase(owner Owner, t reflect.Type) base {
	if owner == nil {
		panic(ErrNilOwner)
	}
	if t == nil {
		panic(ErrNilType)
	}
	name := uref.TypeName(t, owner.Config())
	return base{owner: owner, t: t, name: name, self: performer.NewRef(name)}
}

// mustConfigure panics unless the builder is still configuring.
func (b *base) mustConfigure() {
	if b.state != configuring {
		panic(fmt.Errorf("%w: %s", ErrAlreadyBuilt, b.name))
	}
}

// finish binds the self reference and registers c unless the type is
// already registered. A conflicting concurrent registration is logged and
// otherwise ignored; the composite is still returned.
func (b *base) finish(c *performer.Composite) *performer.Composite {
	b.state = built
	b.self.Set(c)

	log := b.owner.Logger().With(zap.String("type", b.name), zap.Int("entries", len(c.Keys())))
	if b.owner.Registered(b.t) {
		log.Debug("type already registered, composite not registered")
		return c
	}
	if err := b.owner.Register(b.t, c); err != nil {
		log.Warn("composite registration failed", zap.Error(err))
		return c
	}
	log.Debug("composite registered")
	return c
}

// Type returns the type the builder configures.
func (b *base) Type() reflect.Type { return b.t }

// Self returns a reference to the composite this builder will produce.
// Comparing through it before Build fails with performer.ErrUnresolvedRef.
func (b *base) Self() apis.Performer { return b.self }

// Built reports whether Build has been called.
func (b *base) Built() bool { return b.state == built }

func (b *base) key(name string) apis.PropertyKey {
	return apis.PropertyKey{ID: name, DeclaringType: b.t}
}
