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


package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRFC9457Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		formatter  *RFC9457
		err        error
		wantStatus int
		wantType   string
		wantDetail string
	}{
		{
			name:       "plain error",
			formatter:  NewRFC9457("https://example.com/problems"),
			err:        plainError("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   "about:blank",
			wantDetail: "boom",
		},
		{
			name:       "coded error",
			formatter:  NewRFC9457("https://example.com/problems"),
			err:        &codedError{message: "no match", code: "not-acceptable"},
			wantStatus: http.StatusInternalServerError,
			wantType:   "https://example.com/problems/not-acceptable",
			wantDetail: "no match",
		},
		{
			name:       "coded error without base URL",
			formatter:  NewRFC9457(""),
			err:        &codedError{message: "no match", code: "not-acceptable"},
			wantStatus: http.StatusInternalServerError,
			wantType:   "not-acceptable",
			wantDetail: "no match",
		},
		{
			name:       "explicit status",
			formatter:  NewRFC9457(""),
			err:        WithStatus(plainError("gone"), http.StatusNotFound),
			wantStatus: http.StatusNotFound,
			wantType:   "about:blank",
			wantDetail: "gone",
		},
		{
			name:       "wrapped typed error",
			formatter:  NewRFC9457(""),
			err:        fmt.Errorf("outer: %w", &problemError{message: "inner", code: "c", status: http.StatusConflict}),
			wantStatus: http.StatusConflict,
			wantType:   "c",
			wantDetail: "outer: inner",
		},
		{
			name: "resolvers",
			formatter: &RFC9457{
				TypeResolver:   func(error) string { return "urn:custom" },
				StatusResolver: func(error) int { return http.StatusTeapot },
			},
			err:        plainError("x"),
			wantStatus: http.StatusTeapot,
			wantType:   "urn:custom",
			wantDetail: "x",
		},
		{
			name:       "hidden server detail",
			formatter:  &RFC9457{HideServerDetail: true},
			err:        plainError("db password rejected"),
			wantStatus: http.StatusInternalServerError,
			wantType:   "about:blank",
			wantDetail: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/documents/1", nil)
			resp := tt.formatter.Format(req, tt.err)

			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "application/problem+json; charset=utf-8", resp.ContentType)

			p, ok := resp.Body.(ProblemDetail)
			require.True(t, ok, "body is %T", resp.Body)
			assert.Equal(t, tt.wantType, p.Type)
			assert.Equal(t, tt.wantStatus, p.Status)
			assert.Equal(t, http.StatusText(tt.wantStatus), p.Title)
			assert.Equal(t, tt.wantDetail, p.Detail)
			assert.Equal(t, "/documents/1", p.Instance)
		})
	}
}

func TestRFC9457ErrorID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	p := NewRFC9457("").Format(req, plainError("x")).Body.(ProblemDetail)
	id, ok := p.Extensions["error_id"].(string)
	require.True(t, ok)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	p = (&RFC9457{ErrorIDGenerator: func() string { return "fixed" }}).Format(req, plainError("x")).Body.(ProblemDetail)
	assert.Equal(t, "fixed", p.Extensions["error_id"])

	p = (&RFC9457{DisableErrorID: true}).Format(req, plainError("x")).Body.(ProblemDetail)
	assert.NotContains(t, p.Extensions, "error_id")
}

func TestRFC9457Extensions(t *testing.T) {
	t.Parallel()

	err := &problemError{
		message: "method not allowed",
		code:    "method-not-allowed",
		status:  http.StatusMethodNotAllowed,
		details: []string{"GET", "HEAD"},
		headers: http.Header{"Allow": []string{"GET, HEAD"}},
	}

	resp := NewRFC9457("").Format(httptest.NewRequest(http.MethodPut, "/", nil), err)
	p := resp.Body.(ProblemDetail)

	assert.Equal(t, []string{"GET", "HEAD"}, p.Extensions["errors"])
	assert.Equal(t, "method-not-allowed", p.Extensions["code"])
	assert.Equal(t, "GET, HEAD", resp.Headers.Get("Allow"))
}

func TestProblemDetailMarshalJSON(t *testing.T) {
	t.Parallel()

	p := ProblemDetail{
		Type:   "about:blank",
		Title:  "Not Acceptable",
		Status: http.StatusNotAcceptable,
		Extensions: map[string]any{
			"type":     "overwritten",
			"variants": []string{"/a", "/b"},
		},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "about:blank", got["type"])
	assert.Equal(t, []any{"/a", "/b"}, got["variants"])
	assert.NotContains(t, got, "detail")
	assert.NotContains(t, got, "instance")
}
