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

// Package outcome implements the immutable result tree produced by
// performers: leaf outcomes, failures carrying an extraction fault, and
// complex outcomes with insertion-ordered keyed children.
//
// A tree is built once per comparison and never mutated afterwards.
// Flatten turns it into an ordered list of (path, leaf) entries for
// reporting; pass/fail decisions always use Success on the root.
package outcome
