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

// Resolver selects the performer for a pair of operands.
type Resolver interface {
	// Resolve returns the performer for (actual, expected) and the name of
	// the strategy that produced it, or ok=false if none applies.
	Resolve(actual, expected any) (p Performer, via string, ok bool)
}
