// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package representation

// Preference is a client preference for a value with a quality in [0, 1].
type Preference[T any] struct {
	Value   T
	Quality float64
}

// NewPreference returns a preference with the quality clamped to [0, 1].
func NewPreference[T any](value T, quality float64) Preference[T] {
	switch {
	case quality < 0:
		quality = 0
	case quality > 1:
		quality = 1
	}
	return Preference[T]{Value: value, Quality: quality}
}

// Preferences groups the client preferences used for negotiation.
type Preferences struct {
	Languages  []Preference[Language]
	MediaTypes []Preference[MediaType]
}
