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

// Package score computes the numeric affinity between a representation
// variant and a single client preference, and between a route template and
// the remaining part of a request path.
//
// Scores are only comparable with other scores of the same kind. A score of
// [Incompatible] means the variant can never satisfy the preference.
package score

import (
	"math"
	"strings"

	"rivaas.dev/resource/representation"
)

// Incompatible is returned when a variant cannot satisfy a preference.
const Incompatible = -1.0

const (
	languagePrimaryMatch = 100
	languageWildcard     = 1
	languageNoSubTags    = 10

	mediaMainMatch  = 1000
	mediaSubMatch   = 100
	mediaParamMatch = 1
)

// Language scores a variant language against a preferred language range.
//
// Equal primary tags add 100, a bare "*" preference adds 1 and anything
// else is incompatible. When neither side has sub-tags 10 is added;
// otherwise sub-tags are compared positionally and a match at index i adds
// 10^(1-i). Any mismatching sub-tag makes the pair incompatible.
func Language(variant, pref representation.Language) float64 {
	var result float64

	switch {
	case strings.EqualFold(pref.Primary, variant.Primary):
		result += languagePrimaryMatch
	case pref.IsWildcard() && len(pref.SubTags) == 0:
		result += languageWildcard
	default:
		return Incompatible
	}

	if len(pref.SubTags) == 0 && len(variant.SubTags) == 0 {
		return result + languageNoSubTags
	}
	if len(pref.SubTags) == 0 || len(variant.SubTags) == 0 {
		return result
	}

	n := min(len(pref.SubTags), len(variant.SubTags))
	for i := range n {
		if !strings.EqualFold(pref.SubTags[i], variant.SubTags[i]) {
			return Incompatible
		}
		result += math.Pow(10, float64(1-i))
	}

	return result
}

// MediaType scores a variant media type against a preferred media range.
//
// Equal main types add 1000 and "*/*" is compatible without bonus. A
// wildcard main type with a concrete sub type ("*/html") is not a valid
// range and is incompatible. Equal sub types add 100, a "*" sub type is
// compatible without bonus. Each variant parameter also present with the
// same value on the preference adds 1.
func MediaType(variant, pref representation.MediaType) float64 {
	var result float64

	switch {
	case strings.EqualFold(pref.Main, variant.Main):
		result += mediaMainMatch
	case pref.Main == representation.Wildcard && pref.Sub == representation.Wildcard:
	default:
		return Incompatible
	}

	switch {
	case strings.EqualFold(pref.Sub, variant.Sub):
		result += mediaSubMatch
	case pref.Sub == representation.Wildcard:
	default:
		return Incompatible
	}

	for _, vp := range variant.Params {
		if value, ok := pref.Param(vp.Name); ok && value == vp.Value {
			result += mediaParamMatch
		}
	}

	return result
}

// Matcher is implemented by route templates. Match returns the number of
// leading characters of path the template consumes, or -1 when it does not
// match.
type Matcher interface {
	Match(path string) int
}

// DefaultRequired is the default minimum score contributed by a partial
// route match.
const DefaultRequired = 0.5

// Route scores a route template against the remaining request path.
//
// A non-matching template scores 0 and a template consuming the whole path
// scores 1. A partial match scores
// required + (1 - required) * matched / total.
func Route(remaining string, m Matcher, required float64) float64 {
	matched := m.Match(remaining)
	if matched < 0 {
		return 0
	}

	total := len(remaining)
	if matched >= total {
		return 1.0
	}

	return required + (1.0-required)*float64(matched)/float64(total)
}
