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

package strategy

import (
	"dirpx.dev/dfx/apis"
)

// NewRegistryStrategy creates an apis.Strategy that consults reg.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy returns the performer of the first registry entry both
// operands are instances of.
type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// Name returns "registry".
func (*registryStrategy) Name() string { return "registry" }

// TryResolve looks the pair up in the registry.
func (s *registryStrategy) TryResolve(actual, expected any) (apis.Performer, bool) {
	if actual == nil || expected == nil || s.reg == nil {
		return nil, false
	}
	return s.reg.Lookup(actual, expected)
}
