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

// Package report renders comparison outcomes for humans.
//
// Render flattens a complex outcome and prints one block per failing leaf,
// addressed by its path. Multi-line strings are shown as a unified diff and
// composite values as a go-cmp diff.
package report

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/pmezard/go-difflib/difflib"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/outcome"
	"dirpx.dev/dfx/performer"
)

// Root is the path label of a failing outcome that is not complex.
const Root = "<root>"

type options struct {
	context int
	chain   bool
}

// Option configures Render.
type Option func(*options)

// WithContext sets the number of context lines of unified diffs.
func WithContext(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.context = n
		}
	}
}

// WithChain labels entries with the full declaring-type chain instead of
// the dotted path.
func WithChain() Option {
	return func(o *options) { o.chain = true }
}

// Render describes every failing leaf of o. A successful outcome renders
// as the empty string.
func Render(o apis.Outcome, opts ...Option) string {
	if o == nil || o.Success() {
		return ""
	}
	cfg := options{context: 3}
	for _, opt := range opts {
		opt(&cfg)
	}

	var b strings.Builder
	c, ok := o.(apis.ComplexOutcome)
	if !ok || c.Len() == 0 {
		writeEntry(&b, Root, o, cfg)
		return b.String()
	}
	for _, e := range outcome.Failures(outcome.Flatten(c)) {
		label := e.Path.String()
		if cfg.chain {
			label = e.Path.Chain()
		}
		writeEntry(&b, label, e.Outcome, cfg)
	}
	return b.String()
}

// Summary returns a one-line count of failing leaves.
func Summary(o apis.Outcome) string {
	if o == nil || o.Success() {
		return "ok"
	}
	c, ok := o.(apis.ComplexOutcome)
	if !ok || c.Len() == 0 {
		return "1 of 1 comparisons failed"
	}
	all := outcome.Flatten(c)
	return fmt.Sprintf("%d of %d comparisons failed", len(outcome.Failures(all)), len(all))
}

func writeEntry(b *strings.Builder, label string, o apis.Outcome, cfg options) {
	a, e := o.Actual(), o.Expected()
	if f, ok := o.(apis.FailureOutcome); ok && f.Cause() != nil {
		fmt.Fprintf(b, "%s: %v\n", label, f.Cause())
		return
	}
	if sa, se, ok := multiline(a, e); ok {
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(se),
			B:        difflib.SplitLines(sa),
			FromFile: "expected",
			ToFile:   "actual",
			Context:  cfg.context,
		})
		if err == nil {
			fmt.Fprintf(b, "%s:\n%s", label, indent(diff))
			return
		}
	}
	if composite(a) && composite(e) && reflect.TypeOf(a) == reflect.TypeOf(e) {
		if diff := cmp.Diff(e, a, performer.CmpOptions()); diff != "" {
			fmt.Fprintf(b, "%s: (-expected +actual)\n%s", label, indent(diff))
			return
		}
	}
	fmt.Fprintf(b, "%s: got %#v, want %#v\n", label, a, e)
}

// multiline reports whether both values are strings and one spans lines.
func multiline(a, e any) (string, string, bool) {
	sa, ok := a.(string)
	if !ok {
		return "", "", false
	}
	se, ok := e.(string)
	if !ok {
		return "", "", false
	}
	return sa, se, strings.Contains(sa, "\n") || strings.Contains(se, "\n")
}

func composite(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Ptr:
		return true
	}
	return false
}

func indent(s string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, l := range lines {
		if l == "" {
			continue
		}
		b.WriteString("\t")
		b.WriteString(l)
	}
	if !strings.HasSuffix(s, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}
