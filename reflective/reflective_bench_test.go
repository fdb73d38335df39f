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
	"testing"

	"dirpx.dev/dfx/config"
	"dirpx.dev/dfx/reflective"
)

func benchPeople(n int) []person {
	out := make([]person, n)
	for i := range out {
		out[i] = person{Name: "p", Age: i, Address: address{City: "c", Zip: "z"}, Tags: []string{"a", "b"}}
	}
	return out
}

func BenchmarkCompare_Equal(b *testing.B) {
	r := reflective.New(config.DefaultConfig())
	a, e := benchPeople(64), benchPeople(64)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !r.Compare(a, e).Success() {
			b.Fatal("expected equal")
		}
	}
}

func BenchmarkCompare_CycleGuard(b *testing.B) {
	r := reflective.New(config.NewConfig(config.WithDetectCycles(true)))
	a, e := benchPeople(64), benchPeople(64)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Compare(a, e)
	}
}
