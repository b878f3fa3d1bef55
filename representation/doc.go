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

// Package representation defines the value types shared by the negotiation,
// precondition and dispatch packages: media types, language tags, entity
// tags, client preferences and the representation variants a resource can
// produce.
//
// All types are plain values. A [Variant] describes metadata only; the
// bytes of a representation are never seen by this package.
//
// # Parsing
//
// The parsers are lenient in the same way HTTP header parsers usually are:
// surrounding whitespace is ignored, media type and language names are
// compared case-insensitively and quoted parameter values are unquoted.
//
//	mt, err := representation.ParseMediaType("text/html; charset=utf-8")
//	lang, err := representation.ParseLanguage("en-GB")
//	tag, err := representation.ParseTag(`W/"v1"`)
//
// # Preferences
//
// A [Preference] pairs a value with a quality in [0, 1]:
//
//	prefs := []representation.Preference[representation.Language]{
//	    representation.NewPreference(lang, 0.8),
//	}
package representation
