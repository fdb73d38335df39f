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

package performer

import (
	"fmt"

	"dirpx.dev/dfx/apis"
	"dirpx.dev/dfx/outcome"
)

// Entry is one named sub-performer of a Composite.
type Entry struct {
	Key       apis.PropertyKey
	Performer apis.Performer
}

// Composite applies a fixed, ordered set of keyed sub-performers to the
// same (actual, expected) pair. Each sub-performer is expected to extract
// its own slice of the operands, typically through a Delegating performer.
type Composite struct {
	name       string
	keys       []apis.PropertyKey
	performers map[apis.PropertyKey]apis.Performer
}

// Ensure Composite implements apis.Performer.
var _ apis.Performer = (*Composite)(nil)

// NewComposite returns a Composite over entries. A repeated key replaces
// the earlier performer and keeps the earlier position.
func NewComposite(name string, entries ...Entry) *Composite {
	c := &Composite{
		name:       name,
		keys:       make([]apis.PropertyKey, 0, len(entries)),
		performers: make(map[apis.PropertyKey]apis.Performer, len(entries)),
	}
	for _, e := range entries {
		if e.Performer == nil {
			panic(fmt.Errorf("%w: composite %q entry %v", ErrNilPerformer, name, e.Key.ID))
		}
		if _, ok := c.performers[e.Key]; !ok {
			c.keys = append(c.keys, e.Key)
		}
		c.performers[e.Key] = e.Performer
	}
	return c
}

// Compare invokes every entry and records every result. The key set of the
// returned complex outcome is always exactly the registered key set.
func (c *Composite) Compare(actual, expected any) apis.Outcome {
	if o, ok := shortcut(c, actual, expected); ok {
		return o
	}
	children := outcome.NewChildren(len(c.keys))
	for _, k := range c.keys {
		children.Put(k, c.performers[k].Compare(actual, expected))
	}
	return outcome.NewComplex(c, actual, expected, children)
}

// Name returns the name given at construction.
func (c *Composite) Name() string { return c.name }

// Keys returns the registered keys in order.
func (c *Composite) Keys() []apis.PropertyKey {
	out := make([]apis.PropertyKey, len(c.keys))
	copy(out, c.keys)
	return out
}
