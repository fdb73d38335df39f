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

// Strategy is a pluggable resolution step. A Resolver chains strategies in
// order (registry -> array -> collection -> map).
type Strategy interface {
	// Name identifies the strategy in diagnostics ("registry", "array", ...).
	Name() string
	// TryResolve returns (performer, true) if the strategy handles the pair;
	// otherwise (nil, false) to fall through.
	TryResolve(actual, expected any) (p Performer, handled bool)
}

// Factory instantiates a specialized container performer around the given
// element performer.
type Factory func(element Performer) Performer
