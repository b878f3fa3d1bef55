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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMediaType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected MediaType
		wantErr  error
	}{
		{
			name:     "simple",
			input:    "text/html",
			expected: MediaType{Main: "text", Sub: "html"},
		},
		{
			name:     "upper case is lowered",
			input:    " Application/JSON ",
			expected: MediaType{Main: "application", Sub: "json"},
		},
		{
			name:  "parameters keep order",
			input: `text/html; level=1; charset="utf-8"`,
			expected: MediaType{Main: "text", Sub: "html", Params: []Param{
				{Name: "level", Value: "1"},
				{Name: "charset", Value: "utf-8"},
			}},
		},
		{
			name:     "malformed parameter skipped",
			input:    "text/plain; novalue; a=b",
			expected: MediaType{Main: "text", Sub: "plain", Params: []Param{{Name: "a", Value: "b"}}},
		},
		{
			name:     "wildcard",
			input:    "*/*",
			expected: All,
		},
		{name: "empty", input: "  ", wantErr: ErrEmptyMediaType},
		{name: "no slash", input: "html", wantErr: ErrInvalidMediaType},
		{name: "missing sub", input: "text/", wantErr: ErrInvalidMediaType},
		{name: "missing main", input: "/html", wantErr: ErrInvalidMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseMediaType(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMediaTypeString(t *testing.T) {
	t.Parallel()

	mt := MustParseMediaType(`text/html; charset=utf-8; title="a b"`)
	assert.Equal(t, `text/html; charset=utf-8; title="a b"`, mt.String())
	assert.Empty(t, MediaType{}.String())

	v, ok := mt.Param("CHARSET")
	assert.True(t, ok)
	assert.Equal(t, "utf-8", v)
	_, ok = mt.Param("level")
	assert.False(t, ok)
}

func TestParseLanguage(t *testing.T) {
	t.Parallel()

	lang, err := ParseLanguage("en-GB")
	require.NoError(t, err)
	assert.Equal(t, "en", lang.Primary)
	assert.Equal(t, []string{"GB"}, lang.SubTags)
	assert.Equal(t, "en-GB", lang.String())
	assert.Equal(t, Language{Primary: "en"}, lang.Parent())
	assert.True(t, lang.Equal(MustParseLanguage("EN-gb")))
	assert.False(t, lang.Equal(MustParseLanguage("en")))

	_, err = ParseLanguage("")
	require.ErrorIs(t, err, ErrEmptyLanguage)

	_, err = ParseLanguage("en--GB")
	require.ErrorIs(t, err, ErrInvalidLanguage)

	star := MustParseLanguage("*")
	assert.True(t, star.IsWildcard())
	assert.Nil(t, star.SubTags)
}

func TestParseTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected Tag
		wantErr  bool
	}{
		{name: "strong", input: `"abc"`, expected: Tag{Opaque: "abc"}},
		{name: "weak", input: `W/"abc"`, expected: Tag{Opaque: "abc", Weak: true}},
		{name: "any", input: `*`, expected: AnyTag},
		{name: "empty opaque", input: `""`, expected: Tag{}},
		{name: "unquoted", input: `abc`, wantErr: true},
		{name: "weak unquoted", input: `W/abc`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseTag(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTag)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestTagEqual(t *testing.T) {
	t.Parallel()

	strong := NewTag("abc", false)
	weak := NewTag("abc", true)
	other := NewTag("xyz", false)

	assert.True(t, strong.Equal(strong, false))
	assert.False(t, strong.Equal(weak, false), "weak tags never match strongly")
	assert.False(t, weak.Equal(weak, false))
	assert.True(t, strong.Equal(weak, true))
	assert.True(t, weak.Equal(weak, true))
	assert.False(t, strong.Equal(other, true))
	assert.True(t, AnyTag.IsAny())
	assert.False(t, NewTag("*", true).IsAny())
}

func TestNewPreferenceClampsQuality(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, NewPreference(TextHTML, 1.5).Quality, 0)
	assert.InDelta(t, 0.0, NewPreference(TextHTML, -0.5).Quality, 0)
	assert.InDelta(t, 0.4, NewPreference(TextHTML, 0.4).Quality, 0)
}

func TestVariantClone(t *testing.T) {
	t.Parallel()

	mt := MustParseMediaType("text/html; level=1")
	tag := NewTag("v1", false)
	v := &Variant{
		MediaType:  &mt,
		Languages:  []Language{MustParseLanguage("en-GB")},
		Tag:        &tag,
		ModifiedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	c := v.Clone()
	require.NotNil(t, c)
	assert.Equal(t, v, c)

	c.MediaType.Params[0].Value = "2"
	c.Languages[0].SubTags[0] = "US"
	c.Tag.Opaque = "v2"
	assert.Equal(t, "1", v.MediaType.Params[0].Value)
	assert.Equal(t, "GB", v.Languages[0].SubTags[0])
	assert.Equal(t, "v1", v.Tag.Opaque)

	assert.True(t, v.HasModifiedAt())
	assert.False(t, (&Variant{}).HasModifiedAt())
	assert.Nil(t, (*Variant)(nil).Clone())
}
