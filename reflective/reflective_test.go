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

package reflective_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/config"
	"dirpx.dev/dfx/outcome"
	"dirpx.dev/dfx/property"
	"dirpx.dev/dfx/reflective"
)

type address struct {
	City string
	Zip  string
}

type person struct {
	Name    string
	Age     int
	Address address
	Tags    []string
}

type Inner struct{ X int }

type outer struct {
	*Inner
	Y int
}

type tagged struct {
	ID    int    `dfx:"-"`
	Label string `dfx:"label"`
}

var errClosed = errors.New("closed")

type account struct {
	balance int
	closed  bool
}

func (a account) Balance() int { return a.balance }

func (a *account) Total() (int, error) {
	if a.closed {
		return 0, errClosed
	}
	return a.balance, nil
}

type node struct {
	V    int
	Next *node
}

type stamped struct {
	At time.Time
}

type money struct {
	Units    int
	Currency string
}

func (m money) Equal(o money) bool { return m.Units == o.Units }

type window struct {
	A, B []Inner
}

func newReflective(opts ...config.Option) *reflective.Reflective {
	return reflective.New(config.NewConfig(opts...))
}

func failures(t *testing.T, o apis.Outcome) []outcome.Entry {
	t.Helper()
	c, ok := o.(apis.ComplexOutcome)
	require.True(t, ok, "want complex outcome, got %T", o)
	return outcome.Failures(outcome.Flatten(c))
}

func TestCompare_RecordOneFailingAccessor(t *testing.T) {
	r := newReflective()
	a := person{Name: "ann", Age: 30, Address: address{City: "Oslo"}, Tags: []string{"x"}}
	e := a
	e.Age = 31

	o := r.Compare(a, e)
	require.False(t, o.Success())

	c := o.(apis.ComplexOutcome)
	pt := reflect.TypeFor[person]()
	assert.Equal(t, []apis.PropertyKey{
		outcome.Key("Name", pt), outcome.Key("Age", pt), outcome.Key("Address", pt), outcome.Key("Tags", pt),
	}, c.Keys())

	var failed []apis.PropertyKey
	for _, k := range c.Keys() {
		if child, _ := c.Child(k); !child.Success() {
			failed = append(failed, k)
		}
	}
	assert.Equal(t, []apis.PropertyKey{outcome.Key("Age", pt)}, failed)

	age, _ := c.Child(outcome.Key("Age", pt))
	assert.Equal(t, 30, age.Actual())
	assert.Equal(t, 31, age.Expected())
}

func TestCompare_NestedPath(t *testing.T) {
	r := newReflective()
	a := person{Address: address{City: "Oslo", Zip: "0150"}}
	e := person{Address: address{City: "Bergen", Zip: "0150"}}

	fs := failures(t, r.Compare(&a, &e))
	require.Len(t, fs, 1)
	assert.Equal(t, "Address.City", fs[0].Path.String())
	assert.Equal(t, "reflective_test.person.Address -> reflective_test.address.City", fs[0].Path.Chain())
}

func TestCompare_Equal(t *testing.T) {
	r := newReflective()
	a := person{Name: "ann", Tags: []string{"a", "b"}}
	e := person{Name: "ann", Tags: []string{"a", "b"}}
	assert.True(t, r.Compare(a, e).Success())
	assert.True(t, r.Compare(&a, &a).Success())
}

func TestCompare_Nulls(t *testing.T) {
	r := newReflective()

	o := r.Compare((*person)(nil), (*person)(nil))
	assert.True(t, o.Success())
	_, complex := o.(apis.ComplexOutcome)
	assert.False(t, complex)

	o = r.Compare(nil, &person{})
	assert.False(t, o.Success())
	_, complex = o.(apis.ComplexOutcome)
	assert.False(t, complex)

	o = r.Compare(&person{}, nil)
	assert.False(t, o.Success())
	_, complex = o.(apis.ComplexOutcome)
	assert.False(t, complex)
}

func TestCompare_ClassMismatch(t *testing.T) {
	r := newReflective()

	o := r.Compare(1, "1")
	require.False(t, o.Success())
	c := o.(apis.ComplexOutcome)
	assert.Equal(t, []apis.PropertyKey{outcome.ClassKey}, c.Keys())
	child, _ := c.Child(outcome.ClassKey)
	assert.Equal(t, reflect.TypeFor[int](), child.Actual())
	assert.Equal(t, reflect.TypeFor[string](), child.Expected())
}

func TestCompare_Primitives(t *testing.T) {
	r := newReflective()
	o := r.Compare(3, 3)
	assert.True(t, o.Success())
	assert.Equal(t, "equality", o.Performer().Name())
	assert.False(t, r.Compare("a", "b").Success())
	assert.True(t, r.Compare([]int{1, 2}, []int{1, 2}).Success())
}

func TestCompare_SliceOfRecords(t *testing.T) {
	r := newReflective()

	o := r.Compare([]person{{Name: "a"}}, []person{{Name: "a"}, {Name: "b"}})
	c := o.(apis.ComplexOutcome)
	assert.Equal(t, []apis.PropertyKey{outcome.LengthKey}, c.Keys())

	fs := failures(t, r.Compare([]person{{Name: "a"}, {Name: "b"}}, []person{{Name: "a"}, {Name: "c"}}))
	require.Len(t, fs, 1)
	assert.Equal(t, "[1].Name", fs[0].Path.String())
}

func TestCompare_MapOfRecords(t *testing.T) {
	r := newReflective()
	a := map[string]address{"home": {City: "Oslo"}, "work": {City: "Rome"}}
	e := map[string]address{"home": {City: "Oslo"}, "work": {City: "Pisa"}}

	fs := failures(t, r.Compare(a, e))
	require.Len(t, fs, 1)
	assert.Equal(t, `["work"].City`, fs[0].Path.String())
}

func TestCompare_OpaqueUsesEquality(t *testing.T) {
	r := newReflective()
	at := time.Unix(0, 0).UTC()
	et := at.In(time.FixedZone("plus1", 3600))

	o := r.Compare(at, et)
	assert.True(t, o.Success())
	assert.Equal(t, "equality", o.Performer().Name())
}

func TestCompare_Tags(t *testing.T) {
	r := newReflective()
	o := r.Compare(tagged{ID: 1, Label: "a"}, tagged{ID: 2, Label: "a"})
	assert.True(t, o.Success())

	c := o.(apis.ComplexOutcome)
	assert.Equal(t, []apis.PropertyKey{outcome.Key("label", reflect.TypeFor[tagged]())}, c.Keys())
}

func TestCompare_Methods(t *testing.T) {
	r := newReflective(config.WithIncludeMethods(true))
	at := reflect.TypeFor[account]()

	o := r.Compare(account{balance: 1}, account{balance: 2})
	require.False(t, o.Success())
	c := o.(apis.ComplexOutcome)
	assert.Equal(t, []apis.PropertyKey{outcome.Key("Balance", at), outcome.Key("Total", at)}, c.Keys())

	o = r.Compare(account{balance: 1, closed: true}, account{balance: 1})
	c = o.(apis.ComplexOutcome)
	total, _ := c.Child(outcome.Key("Total", at))
	f, ok := total.(apis.FailureOutcome)
	require.True(t, ok)
	assert.ErrorIs(t, f.Cause(), errClosed)

	// without methods an account has no accessors
	assert.Empty(t, newReflective().Properties(at))
}

func TestCompare_ExtractionFault(t *testing.T) {
	r := newReflective()
	o := r.Compare(outer{Y: 1}, outer{Inner: &Inner{X: 1}, Y: 1})
	require.False(t, o.Success())

	c := o.(apis.ComplexOutcome)
	x, ok := c.Child(outcome.Key("X", reflect.TypeFor[Inner]()))
	require.True(t, ok)
	f, ok := x.(apis.FailureOutcome)
	require.True(t, ok)
	assert.ErrorIs(t, f.Cause(), property.ErrNilInstance)

	y, _ := c.Child(outcome.Key("Y", reflect.TypeFor[outer]()))
	assert.True(t, y.Success())
}

func TestCompare_CycleGuard(t *testing.T) {
	r := newReflective(config.WithDetectCycles(true))

	a := &node{V: 1}
	a.Next = a
	b := &node{V: 1}
	b.Next = b
	assert.True(t, r.Compare(a, b).Success())

	c := &node{V: 2}
	c.Next = c
	assert.False(t, r.Compare(a, c).Success())
}

func TestCompare_MethodsOnTimeField(t *testing.T) {
	r := newReflective(config.WithIncludeMethods(true))
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	o := r.Compare(stamped{At: at}, stamped{At: at.In(time.FixedZone("plus1", 3600))})
	assert.True(t, o.Success())

	fs := failures(t, r.Compare(stamped{At: at}, stamped{At: at.Add(time.Second)}))
	require.Len(t, fs, 1)
	assert.Equal(t, "At", fs[0].Path.String())
	assert.Equal(t, "equality", fs[0].Outcome.Performer().Name())
}

func TestCompare_EqualMethod(t *testing.T) {
	r := newReflective()

	o := r.Compare(money{Units: 5, Currency: "EUR"}, money{Units: 5, Currency: "USD"})
	assert.True(t, o.Success())
	assert.Equal(t, "equality", o.Performer().Name())

	assert.False(t, r.Compare(&money{Units: 5}, &money{Units: 6}).Success())
}

func TestCompare_SharedBackingSlices(t *testing.T) {
	a := []Inner{{X: 1}, {X: 2}, {X: 3}}
	e := []Inner{{X: 1}, {X: 2}, {X: 4}}

	for _, detect := range []bool{false, true} {
		r := newReflective(config.WithDetectCycles(detect))
		fs := failures(t, r.Compare(window{A: a[:2], B: a[:3]}, window{A: e[:2], B: e[:3]}))
		require.Len(t, fs, 1, "detect cycles: %v", detect)
		assert.Equal(t, "B[2].X", fs[0].Path.String())
	}
}
