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

package conneg

import (
	"strings"

	"rivaas.dev/resource/representation"
)

// Qualities of the synthesized language preferences. They sit far below
// anything a client would send so they only break otherwise hopeless cases.
const (
	parentLanguageQuality  = 0.002
	anyLanguageQuality     = 0.004
	defaultLanguageQuality = 0.001
)

// EnrichLanguages returns a new preference list built from prefs:
//
//   - an empty list becomes a single "*" preference with quality 1
//   - every sub-tagged preference ("en-GB") adds its primary tag ("en")
//     at quality 0.002, once per primary tag
//   - "*" is appended at quality 0.004
//   - defaultLang, when set, is appended at quality 0.001
//
// prefs is never modified.
func EnrichLanguages(
	prefs []representation.Preference[representation.Language],
	defaultLang *representation.Language,
) []representation.Preference[representation.Language] {
	if len(prefs) == 0 {
		prefs = []representation.Preference[representation.Language]{
			representation.NewPreference(representation.AllLanguages, 1.0),
		}
	}

	out := make([]representation.Preference[representation.Language], len(prefs), len(prefs)+4)
	copy(out, prefs)

	seen := make(map[string]struct{})
	for _, p := range prefs {
		if len(p.Value.SubTags) == 0 {
			continue
		}
		parent := p.Value.Parent()
		key := strings.ToLower(parent.Primary)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, representation.NewPreference(parent, parentLanguageQuality))
	}

	out = append(out, representation.NewPreference(representation.AllLanguages, anyLanguageQuality))
	if defaultLang != nil {
		out = append(out, representation.NewPreference(*defaultLang, defaultLanguageQuality))
	}

	return out
}
