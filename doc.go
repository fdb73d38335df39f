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

// Package dfx provides structural comparison of Go values with a
// process-wide default engine.
//
// A comparison produces an outcome tree rather than a boolean: every
// compared member of a value becomes a child outcome keyed by its property
// key, so a failure can be traced to the exact field, index or map entry
// that differs.
//
//	o := dfx.Compare(got, want)
//	if !o.Success() {
//		t.Error(report.Render(o))
//	}
//
// # Engine
//
// The global performer is a Dynamic performer (package dynamic). For each
// pair of operands it picks a performer in this order: exact-type
// registrations, array providers, collection providers, map providers and
// finally a Reflective performer (package reflective) that descends into
// struct fields, slices, maps and pointers.
//
// Types that need a custom shape are registered with a builder:
//
//	builder.Explicit[Order](dfx.Performer()).
//		With("id", func(o Order) any { return o.ID }).
//		With("lines", func(o Order) any { return o.Lines }).
//		Build()
//
// or by discovering and filtering accessors:
//
//	builder.DiscoverFor[User](dfx.Performer(), dfx.Config()).
//		Exclude(property.Tagged("secret")).
//		Build()
//
// # State
//
// The package holds an atomic pointer to an immutable state made of the
// configuration and the performer. Reads are lock-free. Writers
// (SetConfig, SetPerformer, UnpinPerformer, Reset) take a build mutex,
// assemble a new state and publish it.
//
// SetPerformer pins the given performer: SetConfig then only changes the
// configuration until UnpinPerformer is called. An unpinned performer is
// rebuilt by SetConfig with the previous exact-type registrations.
//
// Registrations and providers are configuration-phase operations. Once
// configured, comparisons may run concurrently.
package dfx
