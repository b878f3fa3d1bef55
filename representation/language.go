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

// Language is a language tag split into its primary tag and ordered
// sub-tags, e.g. "en-GB" is {Primary: "en", SubTags: ["GB"]}.
type Language struct {
	Primary string
	SubTags []string
}

// AllLanguages is the "*" language range.
var AllLanguages = Language{Primary: Wildcard}

// ParseLanguage parses a hyphen separated language tag.
func ParseLanguage(s string) (Language, error) {
	start, end := trimWhitespace(s)
	if start >= end {
		return Language{}, ErrEmptyLanguage
	}

	parts := strings.Split(s[start:end], "-")
	for _, p := range parts {
		if p == "" {
			return Language{}, fmt.Errorf("%w: %q", ErrInvalidLanguage, s)
		}
	}

	lang := Language{Primary: parts[0]}
	if len(parts) > 1 {
		lang.SubTags = parts[1:]
	}
	return lang, nil
}

// MustParseLanguage is like ParseLanguage but panics on error.
func MustParseLanguage(s string) Language {
	lang, err := ParseLanguage(s)
	if err != nil {
		panic(err)
	}
	return lang
}

// IsWildcard reports whether the language is the "*" range.
func (l Language) IsWildcard() bool {
	return l.Primary == Wildcard
}

// Parent returns the language reduced to its primary tag.
func (l Language) Parent() Language {
	return Language{Primary: l.Primary}
}

// Equal compares two languages case-insensitively.
func (l Language) Equal(other Language) bool {
	if !strings.EqualFold(l.Primary, other.Primary) || len(l.SubTags) != len(other.SubTags) {
		return false
	}
	for i := range l.SubTags {
		if !strings.EqualFold(l.SubTags[i], other.SubTags[i]) {
			return false
		}
	}
	return true
}

// String formats the language as it would appear in a Content-Language header.
func (l Language) String() string {
	if len(l.SubTags) == 0 {
		return l.Primary
	}
	return l.Primary + "-" + strings.Join(l.SubTags, "-")
}
