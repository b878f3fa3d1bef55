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

package conditions

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rivaas.dev/resource/representation"
)

var (
	modified = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	earlier  = modified.Add(-time.Hour)
	later    = modified.Add(time.Hour)
)

func tag(s string) representation.Tag {
	t, err := representation.ParseTag(s)
	if err != nil {
		panic(err)
	}
	return t
}

func tags(ss ...string) []representation.Tag {
	out := make([]representation.Tag, len(ss))
	for i, s := range ss {
		out[i] = tag(s)
	}
	return out
}

func rep(etag string, modifiedAt time.Time) *representation.Variant {
	v := &representation.Variant{ModifiedAt: modifiedAt}
	if etag != "" {
		t := tag(etag)
		v.Tag = &t
	}
	return v
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		conds    Conditions
		method   string
		rep      *representation.Variant
		expected Result
	}{
		{
			name:     "no conditions",
			method:   http.MethodGet,
			rep:      rep(`"abc"`, modified),
			expected: Proceed,
		},
		// If-Match
		{
			name:     "if-match strong equal",
			conds:    Conditions{Match: tags(`"xyz"`, `"abc"`)},
			method:   http.MethodPut,
			rep:      rep(`"abc"`, modified),
			expected: Proceed,
		},
		{
			name:     "if-match differs",
			conds:    Conditions{Match: tags(`"xyz"`)},
			method:   http.MethodPut,
			rep:      rep(`"abc"`, modified),
			expected: PreconditionFailed,
		},
		{
			name:     "if-match never matches weak tags",
			conds:    Conditions{Match: tags(`W/"abc"`)},
			method:   http.MethodPut,
			rep:      rep(`W/"abc"`, modified),
			expected: PreconditionFailed,
		},
		{
			name:     "if-match wildcard on absent representation",
			conds:    Conditions{Match: tags(`*`)},
			method:   http.MethodPut,
			rep:      nil,
			expected: Proceed,
		},
		{
			name:     "if-match tag on absent representation",
			conds:    Conditions{Match: tags(`"abc"`)},
			method:   http.MethodPut,
			rep:      nil,
			expected: PreconditionFailed,
		},
		{
			name:     "if-match wildcard on present representation without tag",
			conds:    Conditions{Match: tags(`*`)},
			method:   http.MethodDelete,
			rep:      rep("", modified),
			expected: Proceed,
		},
		{
			name:     "if-match tag on representation without tag",
			conds:    Conditions{Match: tags(`"abc"`)},
			method:   http.MethodDelete,
			rep:      rep("", modified),
			expected: PreconditionFailed,
		},
		// If-None-Match
		{
			name:     "if-none-match weak comparison on GET",
			conds:    Conditions{NoneMatch: tags(`"abc"`)},
			method:   http.MethodGet,
			rep:      rep(`W/"abc"`, modified),
			expected: NotModified,
		},
		{
			name:     "if-none-match weak comparison on HEAD",
			conds:    Conditions{NoneMatch: tags(`W/"abc"`)},
			method:   http.MethodHead,
			rep:      rep(`"abc"`, modified),
			expected: NotModified,
		},
		{
			name:     "if-none-match strong comparison on PUT",
			conds:    Conditions{NoneMatch: tags(`"abc"`)},
			method:   http.MethodPut,
			rep:      rep(`W/"abc"`, modified),
			expected: Proceed,
		},
		{
			name:     "if-none-match strong match on PUT",
			conds:    Conditions{NoneMatch: tags(`"abc"`)},
			method:   http.MethodPut,
			rep:      rep(`"abc"`, modified),
			expected: PreconditionFailed,
		},
		{
			name:     "if-none-match no match",
			conds:    Conditions{NoneMatch: tags(`"xyz"`)},
			method:   http.MethodGet,
			rep:      rep(`"abc"`, modified),
			expected: Proceed,
		},
		{
			name:     "if-none-match wildcard on present representation",
			conds:    Conditions{NoneMatch: tags(`*`)},
			method:   http.MethodPut,
			rep:      rep(`"abc"`, modified),
			expected: PreconditionFailed,
		},
		{
			name:     "if-none-match tag on absent representation",
			conds:    Conditions{NoneMatch: tags(`"abc"`)},
			method:   http.MethodPut,
			rep:      nil,
			expected: Proceed,
		},
		{
			name:     "if-none-match wildcard on absent representation",
			conds:    Conditions{NoneMatch: tags(`*`)},
			method:   http.MethodPut,
			rep:      nil,
			expected: PreconditionFailed,
		},
		{
			name:     "if-none-match is evaluated after if-match",
			conds:    Conditions{Match: tags(`"xyz"`), NoneMatch: tags(`"abc"`)},
			method:   http.MethodGet,
			rep:      rep(`"abc"`, modified),
			expected: PreconditionFailed,
		},
		// If-Modified-Since
		{
			name:     "if-modified-since modified",
			conds:    Conditions{ModifiedSince: earlier},
			method:   http.MethodGet,
			rep:      rep("", modified),
			expected: Proceed,
		},
		{
			name:     "if-modified-since not modified",
			conds:    Conditions{ModifiedSince: later},
			method:   http.MethodGet,
			rep:      rep("", modified),
			expected: NotModified,
		},
		{
			name:     "if-modified-since equal date is not modified",
			conds:    Conditions{ModifiedSince: modified},
			method:   http.MethodGet,
			rep:      rep("", modified.Add(500*time.Millisecond)),
			expected: NotModified,
		},
		{
			name:     "if-modified-since unknown date counts as modified",
			conds:    Conditions{ModifiedSince: later},
			method:   http.MethodGet,
			rep:      rep("", time.Time{}),
			expected: Proceed,
		},
		// If-Unmodified-Since
		{
			name:     "if-unmodified-since unmodified",
			conds:    Conditions{UnmodifiedSince: later},
			method:   http.MethodPut,
			rep:      rep("", modified),
			expected: Proceed,
		},
		{
			name:     "if-unmodified-since same second",
			conds:    Conditions{UnmodifiedSince: modified},
			method:   http.MethodPut,
			rep:      rep("", modified.Add(999*time.Millisecond)),
			expected: Proceed,
		},
		{
			name:     "if-unmodified-since modified",
			conds:    Conditions{UnmodifiedSince: earlier},
			method:   http.MethodPut,
			rep:      rep("", modified),
			expected: PreconditionFailed,
		},
		{
			name:     "if-unmodified-since ignored without date",
			conds:    Conditions{UnmodifiedSince: earlier},
			method:   http.MethodPut,
			rep:      rep(`"abc"`, time.Time{}),
			expected: Proceed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.conds.Evaluate(tt.method, tt.rep)
			assert.Equal(t, tt.expected, got, "got %s", got)
		})
	}
}

// If-None-Match falls back to If-Modified-Since when no tag matches. RFC
// 9110 would ignore If-Modified-Since here; the fallback is intentional.
func TestEvaluateNoneMatchFallsBackToModifiedSince(t *testing.T) {
	t.Parallel()

	unmodified := Conditions{NoneMatch: tags(`"xyz"`), ModifiedSince: later}
	assert.Equal(t, NotModified, unmodified.Evaluate(http.MethodGet, rep(`"abc"`, modified)))
	assert.Equal(t, PreconditionFailed, unmodified.Evaluate(http.MethodPost, rep(`"abc"`, modified)))

	changed := Conditions{NoneMatch: tags(`"xyz"`), ModifiedSince: earlier}
	assert.Equal(t, Proceed, changed.Evaluate(http.MethodGet, rep(`"abc"`, modified)))

	// The If-Modified-Since step is not run again once If-None-Match decided.
	tagMatchOnly := Conditions{NoneMatch: tags(`"xyz"`), ModifiedSince: earlier}
	assert.Equal(t, Proceed, tagMatchOnly.Evaluate(http.MethodGet, rep("", modified)))
}

func TestEvaluateNilConditions(t *testing.T) {
	t.Parallel()

	var c *Conditions
	assert.Equal(t, Proceed, c.Evaluate(http.MethodGet, nil))
	assert.False(t, c.HasSome())
	assert.False(t, c.HasRange())
	assert.True(t, c.RangeSatisfied(nil))
}

func TestHasSome(t *testing.T) {
	t.Parallel()

	assert.False(t, (&Conditions{}).HasSome())
	assert.True(t, (&Conditions{Match: tags(`*`)}).HasSome())
	assert.True(t, (&Conditions{NoneMatch: tags(`"a"`)}).HasSome())
	assert.True(t, (&Conditions{ModifiedSince: modified}).HasSome())
	assert.True(t, (&Conditions{UnmodifiedSince: modified}).HasSome())

	rt := tag(`"a"`)
	assert.False(t, (&Conditions{RangeTag: &rt}).HasSome())
	assert.True(t, (&Conditions{RangeTag: &rt}).HasRange())
	assert.True(t, (&Conditions{RangeDate: modified}).HasRange())
}

func TestRangeSatisfied(t *testing.T) {
	t.Parallel()

	strong := tag(`"abc"`)
	weak := tag(`W/"abc"`)
	other := tag(`"xyz"`)
	anyTag := representation.AnyTag

	tests := []struct {
		name     string
		conds    Conditions
		rep      *representation.Variant
		expected bool
	}{
		{name: "no condition", rep: rep(`"abc"`, modified), expected: true},
		{name: "tag matches", conds: Conditions{RangeTag: &strong}, rep: rep(`"abc"`, modified), expected: true},
		{name: "weak tag never matches", conds: Conditions{RangeTag: &weak}, rep: rep(`W/"abc"`, modified), expected: false},
		{name: "tag differs", conds: Conditions{RangeTag: &other}, rep: rep(`"abc"`, modified), expected: false},
		{name: "wildcard", conds: Conditions{RangeTag: &anyTag}, rep: rep(`"abc"`, modified), expected: true},
		{name: "representation without tag", conds: Conditions{RangeTag: &strong}, rep: rep("", modified), expected: false},
		{name: "date equal", conds: Conditions{RangeDate: modified}, rep: rep("", modified), expected: true},
		{name: "date differs", conds: Conditions{RangeDate: earlier}, rep: rep("", modified), expected: false},
		{name: "absent representation", conds: Conditions{RangeDate: modified}, rep: nil, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.conds.RangeSatisfied(tt.rep))
		})
	}
}

func TestResultStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Proceed.Status())
	assert.Equal(t, http.StatusNotModified, NotModified.Status())
	assert.Equal(t, http.StatusPreconditionFailed, PreconditionFailed.Status())
	assert.Equal(t, "not-modified", NotModified.String())
	assert.Equal(t, "unknown", Result(42).String())
}
