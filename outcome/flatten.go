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

import "dirpx.dev/dfx/apis"

// Entry is one flattened (path, outcome) pair.
type Entry struct {
	Path    *Path
	Outcome apis.Outcome
}

// Flatten descends into nested complex outcomes and records the deepest
// non-complex outcome of every branch at its full path, in insertion
// order. A nested complex outcome without children is recorded as is.
func Flatten(o apis.ComplexOutcome) []Entry {
	var out []Entry
	flatten(o, nil, &out)
	return out
}

func flatten(o apis.ComplexOutcome, at *Path, out *[]Entry) {
	for _, k := range o.Keys() {
		child, _ := o.Child(k)
		p := at.Push(k)
		if c, ok := child.(apis.ComplexOutcome); ok && c.Len() > 0 {
			flatten(c, p, out)
			continue
		}
		*out = append(*out, Entry{Path: p, Outcome: child})
	}
}

// Failures keeps the entries whose outcome failed.
func Failures(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if !e.Outcome.Success() {
			out = append(out, e)
		}
	}
	return out
}
