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

package dfx

import (
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/config"
	"dirpx.dev/dfx/dynamic"
	"dirpx.dev/dfx/performer"
	"dirpx.dev/dfx/reflective"
	"dirpx.dev/dfx/report"
)

// init publishes the initial state built from the default config.
func init() {
	cfg := config.DefaultConfig()
	st.Store(&state{cfg: cfg, perf: New(cfg)})
}

// New returns a Dynamic performer whose default delegate is a Reflective
// performer for cfg.
func New(cfg apis.Config, opts ...dynamic.Option) *dynamic.Dynamic {
	opts = append([]dynamic.Option{
		dynamic.WithConfig(cfg),
		dynamic.WithDefault(reflective.New(cfg)),
	}, opts...)
	return dynamic.New(opts...)
}

// Compare compares actual against expected with the global performer.
// It never panics: a panic escaping a custom performer becomes a failure
// outcome.
func Compare(actual, expected any) apis.Outcome {
	return performer.SafeCompare(st.Load().perf, actual, expected)
}

// Equal reports whether the global performer considers actual and
// expected equal.
func Equal(actual, expected any) bool {
	return Compare(actual, expected).Success()
}

// Diff renders the failing leaves of Compare(actual, expected), or "" when
// they are equal.
func Diff(actual, expected any) string {
	return report.Render(Compare(actual, expected))
}

// Register adds an exact-type registration to the global performer.
func Register(t reflect.Type, p apis.Performer) error {
	return st.Load().perf.Register(t, p)
}

// Performer returns the global performer.
func Performer() *dynamic.Dynamic {
	return st.Load().perf
}

// SetPerformer replaces the global performer and pins it. A nil d is
// ignored.
func SetPerformer(d *dynamic.Dynamic) {
	if d == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: old.cfg, perf: d, pinned: true})
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration. Unless the performer is
// pinned, a new performer is built for cfg and the exact-type
// registrations of the previous one are carried over.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	perf := old.perf
	if !old.pinned {
		perf = New(cfg)
		for _, e := range old.perf.Registry().Entries() {
			_ = perf.Register(e.Type, e.Performer)
		}
	}
	st.Store(&state{cfg: cfg, perf: perf, pinned: old.pinned})
}

// IsPerformerPinned returns whether the global performer is pinned.
func IsPerformerPinned() bool {
	return st.Load().pinned
}

// UnpinPerformer lets SetConfig rebuild the global performer again.
func UnpinPerformer() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: old.cfg, perf: old.perf, pinned: false})
}

// Reset publishes a fresh, unpinned state for cfg with no registrations.
func Reset(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	st.Store(&state{cfg: cfg, perf: New(cfg)})
}

// buildMu serializes writers so partially built snapshots are never
// published.
var buildMu sync.Mutex

// st is the global dfx state.
var st atomic.Pointer[state]

// state is an immutable snapshot published via st.Store. Writers create a
// new state and swap it in.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// perf is the global performer.
	perf *dynamic.Dynamic
	// pinned indicates that perf was set explicitly and is not rebuilt.
	pinned bool
}
