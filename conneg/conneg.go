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

// Package conneg selects the representation variant that best matches a
// client's language and media type preferences.
//
// Selection is a pure function of its inputs: the caller's preference
// slices are never modified, and a nil result is the normal way of saying
// that no variant is acceptable.
//
// # Algorithm
//
// For every variant, each declared language is scored against the enriched
// language preferences (see [EnrichLanguages]) and the preference with the
// highest score wins. The media type is scored the same way against the
// media type preferences, which default to "*/*". A compatible variant
// gets the quality
//
//	bestLanguageQuality*10 + bestMediaTypeQuality
//
// and the variant with the strictly highest quality is returned. The first
// variant wins ties.
//
// # Example
//
//	best := conneg.BestVariant(prefs.Languages, prefs.MediaTypes, variants,
//	    conneg.WithDefaultLanguage(representation.MustParseLanguage("en")),
//	)
//	if best == nil {
//	    // 406 Not Acceptable
//	}
package conneg

import (
	"rivaas.dev/resource/representation"
	"rivaas.dev/resource/score"
)

// languageWeight makes the language quality dominate the media type quality.
const languageWeight = 10

// Option configures a negotiation.
type Option func(*options)

type options struct {
	defaultLanguage *representation.Language
}

// WithDefaultLanguage appends a preference for lang with quality 0.001 to
// the client's language preferences.
func WithDefaultLanguage(lang representation.Language) Option {
	return func(o *options) {
		o.defaultLanguage = &lang
	}
}

// candidate is the fold accumulator used while ranking variants.
type candidate struct {
	variant *representation.Variant
	quality float64
}

// BestVariant returns the variant that best matches the preferences, or nil
// when no variant is acceptable.
func BestVariant(
	langs []representation.Preference[representation.Language],
	types []representation.Preference[representation.MediaType],
	variants []*representation.Variant,
	opts ...Option,
) *representation.Variant {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	enriched := EnrichLanguages(langs, o.defaultLanguage)
	if len(types) == 0 {
		types = []representation.Preference[representation.MediaType]{
			representation.NewPreference(representation.All, 1.0),
		}
	}

	best := candidate{quality: -1}
	for _, v := range variants {
		quality, ok := Quality(v, enriched, types)
		if ok && quality > best.quality {
			best = candidate{variant: v, quality: quality}
		}
	}

	return best.variant
}

// Quality computes the negotiated quality of a single variant. The language
// preferences are used as given; callers normally pass the result of
// [EnrichLanguages]. The second result is false when the variant is not
// compatible with the preferences.
func Quality(
	v *representation.Variant,
	langs []representation.Preference[representation.Language],
	types []representation.Preference[representation.MediaType],
) (float64, bool) {
	if v == nil {
		return 0, false
	}

	langQuality, langOK := bestLanguage(v.Languages, langs)
	if !langOK {
		return 0, false
	}

	var mediaQuality float64
	if v.MediaType != nil {
		pref, _, found := bestPreference(types, func(p representation.MediaType) float64 {
			return score.MediaType(*v.MediaType, p)
		})
		if !found {
			return 0, false
		}
		mediaQuality = pref.Quality
	}

	return langQuality*languageWeight + mediaQuality, true
}

// bestLanguage returns the quality of the winning language preference over
// all declared languages, and whether the variant is language compatible.
// A variant without languages is compatible and contributes nothing.
func bestLanguage(
	declared []representation.Language,
	prefs []representation.Preference[representation.Language],
) (float64, bool) {
	if len(declared) == 0 {
		return 0, true
	}

	var (
		quality   float64
		bestScore = score.Incompatible
		found     bool
	)
	for _, lang := range declared {
		pref, s, ok := bestPreference(prefs, func(p representation.Language) float64 {
			return score.Language(lang, p)
		})
		if ok && s > bestScore {
			quality, bestScore, found = pref.Quality, s, true
		}
	}

	return quality, found
}

// bestPreference returns the preference with the highest compatible score
// and that score. The first preference wins ties.
func bestPreference[T any](
	prefs []representation.Preference[T],
	scoreFn func(T) float64,
) (representation.Preference[T], float64, bool) {
	var (
		best      representation.Preference[T]
		bestScore = score.Incompatible
		found     bool
	)
	for _, p := range prefs {
		s := scoreFn(p.Value)
		if s != score.Incompatible && s > bestScore {
			best, bestScore, found = p, s, true
		}
	}
	return best, bestScore, found
}
