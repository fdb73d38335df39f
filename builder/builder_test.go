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

package builder_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/builder"
	"dirpx.dev/dfx/config"
	"dirpx.dev/dfx/dynamic"
	"dirpx.dev/dfx/outcome"
	"dirpx.dev/dfx/performer"
	"dirpx.dev/dfx/property"
)

type order struct {
	ID    string
	Total int
	Notes string
}

type link struct {
	V    int
	Next *link
}

type user struct {
	ID       int
	Name     string `dfx:"name"`
	Email    string
	Password string `secret:"true"`
}

// recovered runs fn and returns the error it panicked with.
func recovered(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		e, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		err = e
	}()
	fn()
	return nil
}

func orderKey(name string) apis.PropertyKey {
	return outcome.Key(name, reflect.TypeFor[order]())
}

func TestExplicit_BuildAndRegister(t *testing.T) {
	d := dynamic.New()
	c := builder.Explicit[order](d).
		With("id", func(o order) any { return o.ID }).
		With("total", func(o order) any { return o.Total }).
		Build()

	assert.Equal(t, []apis.PropertyKey{orderKey("id"), orderKey("total")}, c.Keys())
	assert.True(t, d.Registered(reflect.TypeFor[order]()))

	// Notes is not an entry.
	assert.True(t, d.Compare(order{ID: "a", Notes: "x"}, order{ID: "a", Notes: "y"}).Success())

	o := d.Compare(order{ID: "a", Total: 1}, order{ID: "b", Total: 1})
	require.False(t, o.Success())
	co := o.(apis.ComplexOutcome)
	assert.Equal(t, c.Keys(), co.Keys())
	id, _ := co.Child(orderKey("id"))
	assert.False(t, id.Success())
	total, _ := co.Child(orderKey("total"))
	assert.True(t, total.Success())
}

func TestExplicit_PointerOperands(t *testing.T) {
	d := dynamic.New()
	c := builder.Explicit[order](d).With("id", func(o order) any { return o.ID }).Build()

	assert.True(t, c.Compare(&order{ID: "a"}, &order{ID: "a"}).Success())
	assert.False(t, c.Compare(&order{ID: "a"}, &order{ID: "b"}).Success())
}

func TestExplicit_DuplicateOverwrites(t *testing.T) {
	d := dynamic.New()
	c := builder.Explicit[order](d).
		With("id", func(o order) any { return o.Notes }).
		With("total", func(o order) any { return o.Total }).
		With("id", func(o order) any { return o.ID }).
		Build()

	assert.Equal(t, []apis.PropertyKey{orderKey("id"), orderKey("total")}, c.Keys())
	assert.True(t, c.Compare(order{ID: "a", Notes: "x"}, order{ID: "a", Notes: "y"}).Success())
}

func TestExplicit_EntryDelegate(t *testing.T) {
	d := dynamic.New()
	fold := performer.NewFunc("fold", func(a, e any) bool {
		return strings.EqualFold(a.(string), e.(string))
	})
	c := builder.Explicit[order](d).With("id", func(o order) any { return o.ID }, fold).Build()

	assert.True(t, c.Compare(order{ID: "ABC"}, order{ID: "abc"}).Success())
}

func TestExplicit_ExtractionFaults(t *testing.T) {
	d := dynamic.New()
	errNoNotes := errors.New("no notes")
	c := builder.Explicit[order](d).
		WithErr("notes", func(o order) (any, error) {
			if o.Notes == "" {
				return nil, errNoNotes
			}
			return o.Notes, nil
		}).
		Build()

	o := c.Compare(order{}, order{Notes: "x"})
	co := o.(apis.ComplexOutcome)
	notes, _ := co.Child(orderKey("notes"))
	f, ok := notes.(apis.FailureOutcome)
	require.True(t, ok)
	assert.ErrorIs(t, f.Cause(), errNoNotes)

	o = c.Compare(1, 2)
	co = o.(apis.ComplexOutcome)
	notes, _ = co.Child(orderKey("notes"))
	f, ok = notes.(apis.FailureOutcome)
	require.True(t, ok)
	assert.ErrorIs(t, f.Cause(), builder.ErrTypeMismatch)
}

func TestExplicit_Self(t *testing.T) {
	d := dynamic.New()
	b := builder.Explicit[link](d)
	b.With("v", func(l link) any { return l.V }).
		With("next", func(l link) any { return l.Next }, b.Self())

	// unresolved until built
	o := b.Self().Compare(link{}, link{})
	f, ok := o.(apis.FailureOutcome)
	require.True(t, ok)
	assert.ErrorIs(t, f.Cause(), performer.ErrUnresolvedRef)

	c := b.Build()
	a := &link{V: 1, Next: &link{V: 2}}
	e := &link{V: 1, Next: &link{V: 3}}
	fs := outcome.Failures(outcome.Flatten(c.Compare(a, e).(apis.ComplexOutcome)))
	require.Len(t, fs, 1)
	assert.Equal(t, "next.v", fs[0].Path.String())
	assert.True(t, c.Compare(a, &link{V: 1, Next: &link{V: 2}}).Success())
}

func TestExplicit_RegistrationIsIdempotent(t *testing.T) {
	d := dynamic.New()
	first := performer.NewFunc("first", func(a, e any) bool { return true })
	require.NoError(t, dynamic.RegisterFor[order](d, first))

	builder.Explicit[order](d).With("id", func(o order) any { return o.ID }).Build()

	p, _ := d.Resolve(order{}, order{})
	assert.Same(t, first, p)
}

func TestExplicit_SingleUse(t *testing.T) {
	d := dynamic.New()
	b := builder.Explicit[order](d).With("id", func(o order) any { return o.ID })
	b.Build()
	assert.True(t, b.Built())

	assert.ErrorIs(t, recovered(t, func() { b.Build() }), builder.ErrAlreadyBuilt)
	assert.ErrorIs(t, recovered(t, func() { b.With("total", func(o order) any { return o.Total }) }), builder.ErrAlreadyBuilt)
}

func TestExplicit_Preconditions(t *testing.T) {
	assert.ErrorIs(t, recovered(t, func() { builder.Explicit[order](nil) }), builder.ErrNilOwner)

	b := builder.Explicit[order](dynamic.New())
	assert.ErrorIs(t, recovered(t, func() { b.With("id", nil) }), builder.ErrNilExtractor)
}

func TestDiscover_Filters(t *testing.T) {
	d := dynamic.New()
	ut := reflect.TypeFor[user]()
	cfg := config.DefaultConfig()

	c := builder.DiscoverFor[user](d, cfg).Exclude(property.Tagged("secret")).Build()
	assert.Equal(t, []apis.PropertyKey{
		outcome.Key("ID", ut), outcome.Key("name", ut), outcome.Key("Email", ut),
	}, c.Keys())
	assert.True(t, d.Registered(ut))

	o := d.Compare(user{ID: 1, Password: "a"}, user{ID: 1, Password: "b"})
	assert.True(t, o.Success())
	o = d.Compare(user{ID: 1, Email: "a@x"}, user{ID: 1, Email: "b@x"})
	assert.False(t, o.Success())
}

func TestDiscover_FilterGroups(t *testing.T) {
	ut := reflect.TypeFor[user]()
	cfg := config.DefaultConfig()
	names := func(ps []apis.Property) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Name()
		}
		return out
	}

	all := builder.Discover(dynamic.New(), ut, cfg)
	assert.Equal(t, []string{"ID", "name", "Email", "Password"}, names(all.Properties()))

	// requirements: all must accept
	req := builder.Discover(dynamic.New(), ut, cfg).
		Require(property.OfType(reflect.TypeFor[string]()), property.Not(property.Named("Password")))
	assert.Equal(t, []string{"name", "Email"}, names(req.Properties()))

	// inclusions: any must accept
	inc := builder.Discover(dynamic.New(), ut, cfg).Include(property.Named("ID"), property.Named("Email"))
	assert.Equal(t, []string{"ID", "Email"}, names(inc.Properties()))

	// exclusions: none may accept, applied after inclusions
	exc := builder.Discover(dynamic.New(), ut, cfg).
		Include(property.Named("ID"), property.Named("Email")).
		Exclude(property.Named("ID"))
	assert.Equal(t, []string{"Email"}, names(exc.Properties()))
}

func TestDiscover_Preconditions(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.ErrorIs(t, recovered(t, func() { builder.Discover(dynamic.New(), nil, cfg) }), builder.ErrNilType)

	b := builder.DiscoverFor[user](dynamic.New(), cfg)
	assert.ErrorIs(t, recovered(t, func() { b.Include(property.Named("ID"), nil) }), builder.ErrNilFilter)
	assert.ErrorIs(t, recovered(t, func() { b.Exclude(nil) }), builder.ErrNilFilter)

	b.Build()
	assert.ErrorIs(t, recovered(t, func() { b.Require(property.Fields()) }), builder.ErrAlreadyBuilt)
	assert.ErrorIs(t, recovered(t, func() { b.Build() }), builder.ErrAlreadyBuilt)
}

func TestBuild_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d := dynamic.New(dynamic.WithLogger(zap.New(core)))

	builder.DiscoverFor[user](d, config.DefaultConfig()).Build()
	builder.DiscoverFor[user](d, config.DefaultConfig()).Build()

	assert.Equal(t, 1, logs.FilterMessage("composite registered").Len())
	skipped := logs.FilterMessage("type already registered, composite not registered").AllUntimed()
	require.Len(t, skipped, 1)
	assert.Equal(t, "builder_test.user", skipped[0].ContextMap()["type"])
}
