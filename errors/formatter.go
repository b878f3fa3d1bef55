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
	"errors"
	"net/http"
)

// Formatter turns an error into the parts of an HTTP error response.
type Formatter interface {
	Format(req *http.Request, err error) Response
}

// Response is a formatted error response.
type Response struct {
	Status      int
	ContentType string

	// Body is encoded as JSON by the caller.
	Body any

	// Headers are added to the response when set.
	Headers http.Header
}

// ErrorType lets an error choose its HTTP status.
type ErrorType interface {
	error
	HTTPStatus() int
}

// ErrorDetails lets an error expose structured details.
type ErrorDetails interface {
	error
	Details() any
}

// ErrorCode lets an error expose a machine readable code.
type ErrorCode interface {
	error
	Code() string
}

// ErrorHeaders lets an error contribute response headers, for example the
// Allow header of a 405 response.
type ErrorHeaders interface {
	error
	Headers() http.Header
}

// NewRFC9457 creates a problem details formatter. baseURL is prepended to
// error codes to build the problem type URI.
func NewRFC9457(baseURL string) *RFC9457 {
	return &RFC9457{BaseURL: baseURL}
}

// NewSimple creates a Simple formatter.
func NewSimple() *Simple {
	return &Simple{}
}

// WithStatus wraps err so that it reports status. A nil err uses the
// status text as its message.
func WithStatus(err error, status int) error {
	return &statusError{err: err, status: status}
}

type statusError struct {
	err    error
	status int
}

func (e *statusError) Error() string {
	if e.err == nil {
		return http.StatusText(e.status)
	}
	return e.err.Error()
}

func (e *statusError) Unwrap() error {
	return e.err
}

func (e *statusError) HTTPStatus() int {
	return e.status
}

// statusOf resolves the status of err, falling back to 500.
func statusOf(err error, resolver func(error) int) int {
	if resolver != nil {
		return resolver(err)
	}
	var typed ErrorType
	if errors.As(err, &typed) {
		return typed.HTTPStatus()
	}
	return http.StatusInternalServerError
}

func headersOf(err error) http.Header {
	var h ErrorHeaders
	if errors.As(err, &h) {
		return h.Headers()
	}
	return nil
}
