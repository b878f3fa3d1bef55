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

package httpbridge

import (
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/vfaronov/httpheader"

	"rivaas.dev/resource/conditions"
	"rivaas.dev/resource/dispatch"
	"rivaas.dev/resource/representation"
)

// ReadRequest builds the dispatch view of r. Malformed preference and
// condition values are skipped rather than rejected.
func ReadRequest(r *http.Request) *dispatch.Request {
	req := &dispatch.Request{
		Method:      r.Method,
		Header:      r.Header,
		Preferences: readPreferences(r.Header),
		Conditions:  readConditions(r.Header),
	}
	if r.URL != nil {
		req.Path = r.URL.Path
	}
	if r.Body != nil && r.Body != http.NoBody {
		req.Entity = &dispatch.Entity{
			Body:    r.Body,
			Variant: readEntityVariant(r.Header),
		}
	}
	return req
}

func readPreferences(h http.Header) representation.Preferences {
	var prefs representation.Preferences

	for _, elem := range httpheader.Accept(h) {
		main, sub, ok := strings.Cut(elem.Type, "/")
		if !ok || main == "" || sub == "" {
			continue
		}
		mt := representation.NewMediaType(main, sub, sortedParams(elem.Params)...)
		prefs.MediaTypes = append(prefs.MediaTypes, representation.NewPreference(mt, quality(elem.Q)))
	}

	for _, elem := range parseAcceptLanguage(h) {
		lang, err := representation.ParseLanguage(elem.tag)
		if err != nil {
			continue
		}
		prefs.Languages = append(prefs.Languages, representation.NewPreference(lang, elem.quality))
	}

	return prefs
}

// quality rounds the header's float32 weight to the three decimals
// allowed on the wire.
func quality(q float32) float64 {
	return math.Round(float64(q)*1000) / 1000
}

func sortedParams(params map[string]string) []representation.Param {
	if len(params) == 0 {
		return nil
	}
	out := make([]representation.Param, 0, len(params))
	for name, value := range params {
		out = append(out, representation.Param{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func readConditions(h http.Header) conditions.Conditions {
	c := conditions.Conditions{
		Match:           readTags(h, "If-Match", httpheader.IfMatch),
		NoneMatch:       readTags(h, "If-None-Match", httpheader.IfNoneMatch),
		ModifiedSince:   readDate(h.Get("If-Modified-Since")),
		UnmodifiedSince: readDate(h.Get("If-Unmodified-Since")),
	}

	if v := strings.TrimSpace(h.Get("If-Range")); v != "" {
		if strings.HasPrefix(v, `"`) || strings.HasPrefix(v, "W/") {
			if tag, err := representation.ParseTag(v); err == nil {
				c.RangeTag = &tag
			}
		} else {
			c.RangeDate = readDate(v)
		}
	}
	return c
}

func readTags(h http.Header, name string, parse func(http.Header) []httpheader.EntityTag) []representation.Tag {
	if strings.TrimSpace(h.Get(name)) == representation.Wildcard {
		return []representation.Tag{representation.AnyTag}
	}
	elems := parse(h)
	if len(elems) == 0 {
		return nil
	}
	tags := make([]representation.Tag, 0, len(elems))
	for _, e := range elems {
		tags = append(tags, representation.NewTag(e.Opaque, e.Weak))
	}
	return tags
}

// readDate returns the zero time for absent or unparsable dates.
func readDate(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := http.ParseTime(v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func readEntityVariant(h http.Header) *representation.Variant {
	v := &representation.Variant{}
	if ct := h.Get("Content-Type"); ct != "" {
		if mt, err := representation.ParseMediaType(ct); err == nil {
			if cs, ok := mt.Param("charset"); ok {
				v.CharacterSet = cs
			}
			v.MediaType = &mt
		}
	}
	for _, field := range h.Values("Content-Language") {
		for _, part := range strings.Split(field, ",") {
			if lang, err := representation.ParseLanguage(part); err == nil {
				v.Languages = append(v.Languages, lang)
			}
		}
	}
	return v
}
