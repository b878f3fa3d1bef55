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
	"net/http"
	"strings"
)

// languageRange is one element of an Accept-Language header.
type languageRange struct {
	tag     string
	quality float64
}

// parseAcceptLanguage reads every Accept-Language line of h. Elements with
// an empty range or a malformed q value are skipped.
func parseAcceptLanguage(h http.Header) []languageRange {
	var out []languageRange
	for _, line := range h.Values("Accept-Language") {
		for _, part := range strings.Split(line, ",") {
			if r, ok := parseLanguagePart(part); ok {
				out = append(out, r)
			}
		}
	}
	return out
}

func parseLanguagePart(part string) (languageRange, bool) {
	tag, params, _ := strings.Cut(part, ";")
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return languageRange{}, false
	}

	r := languageRange{tag: tag, quality: 1}
	for _, param := range strings.Split(params, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "q") {
			continue
		}
		q := parseQuality(strings.TrimSpace(value))
		if q < 0 {
			return languageRange{}, false
		}
		r.quality = float64(q) / 1000
	}
	return r, true
}

// parseQuality parses a qvalue into thousandths, or -1 when s is not a
// valid qvalue ("0" to "1" with at most three decimals).
func parseQuality(s string) int {
	if len(s) == 0 || len(s) > 5 {
		return -1
	}
	switch s[0] {
	case '1':
		if len(s) == 1 {
			return 1000
		}
		if len(s) < 3 || s[1] != '.' {
			return -1
		}
		for i := 2; i < len(s); i++ {
			if s[i] != '0' {
				return -1
			}
		}
		return 1000
	case '0':
		if len(s) == 1 {
			return 0
		}
		if len(s) < 3 || s[1] != '.' {
			return -1
		}
		result, multiplier := 0, 100
		for i := 2; i < len(s); i++ {
			if s[i] < '0' || s[i] > '9' {
				return -1
			}
			result += int(s[i]-'0') * multiplier
			multiplier /= 10
		}
		return result
	default:
		return -1
	}
}
