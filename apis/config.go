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

package apis

// Config carries read-only comparison knobs that influence performers and
// property discovery. It is passed by value and should be treated as
// immutable by implementations.
type Config struct {
	// IncludeMethods controls whether property discovery returns exported
	// getter methods (no arguments; one result, or a result and an error)
	// in addition to exported struct fields.
	IncludeMethods bool `toml:"include_methods"`

	// DetectCycles enables a visited-pairs guard in the reflective performer.
	// A pair of pointers already under comparison is treated as equal.
	DetectCycles bool `toml:"detect_cycles"`

	// TagKey is the struct tag consulted by property discovery. A field
	// tagged `<TagKey>:"-"` is ignored, `<TagKey>:"name"` renames it.
	TagKey string `toml:"tag_key"`

	// MaxUnwrap limits pointer/container unwrapping when rendering
	// diagnostic type names.
	MaxUnwrap int `toml:"max_unwrap"`
}
