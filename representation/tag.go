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

import (
	"fmt"
	"strings"
)

// Tag is an entity tag. Opaque holds the value without quotes.
type Tag struct {
	Opaque string
	Weak   bool
}

// AnyTag is the "*" entity tag used by If-Match and If-None-Match.
var AnyTag = Tag{Opaque: Wildcard}

// ParseTag parses `"v1"`, `W/"v1"` or `*`.
func ParseTag(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	if s == Wildcard {
		return AnyTag, nil
	}

	var t Tag
	if strings.HasPrefix(s, "W/") {
		t.Weak = true
		s = s[2:]
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return Tag{}, fmt.Errorf("%w: %q", ErrInvalidTag, s)
	}
	t.Opaque = s[1 : len(s)-1]
	return t, nil
}

// NewTag returns a strong or weak tag for the given opaque value.
func NewTag(opaque string, weak bool) Tag {
	return Tag{Opaque: opaque, Weak: weak}
}

// IsAny reports whether the tag is the "*" wildcard.
func (t Tag) IsAny() bool {
	return !t.Weak && t.Opaque == Wildcard
}

// Equal compares two tags. With weak set, the weak comparison of RFC 9110
// applies and only the opaque values must match; otherwise both tags must
// also be strong. The wildcard is not special here.
func (t Tag) Equal(other Tag, weak bool) bool {
	if !weak && (t.Weak || other.Weak) {
		return false
	}
	return t.Opaque == other.Opaque
}

// String formats the tag as it would appear in an ETag header.
func (t Tag) String() string {
	if t.IsAny() {
		return Wildcard
	}
	if t.Weak {
		return `W/"` + t.Opaque + `"`
	}
	return `"` + t.Opaque + `"`
}
