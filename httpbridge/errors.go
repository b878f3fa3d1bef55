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
	"errors"
	"net/http"

	"github.com/vfaronov/httpheader"

	"rivaas.dev/resource/dispatch"
)

// ErrIdle is reported when the dispatcher is not started.
var ErrIdle = errors.New("dispatcher is not started")

// OutcomeError presents a rejected outcome to an error formatter. The
// problem code is the outcome kind, e.g. "method-not-allowed".
type OutcomeError struct {
	Outcome dispatch.Outcome
}

func (e *OutcomeError) Error() string {
	if e.Outcome.Message != "" {
		return e.Outcome.Message
	}
	return http.StatusText(e.HTTPStatus())
}

// HTTPStatus returns the outcome status, or the kind's default status.
func (e *OutcomeError) HTTPStatus() int {
	if e.Outcome.Status != 0 {
		return e.Outcome.Status
	}
	if s := e.Outcome.Kind.Status(); s != 0 {
		return s
	}
	return http.StatusInternalServerError
}

// Code returns the outcome kind.
func (e *OutcomeError) Code() string {
	return e.Outcome.Kind.String()
}

// Headers carries Allow for method-not-allowed outcomes.
func (e *OutcomeError) Headers() http.Header {
	if len(e.Outcome.AllowedMethods) == 0 {
		return nil
	}
	h := http.Header{}
	httpheader.SetAllow(h, methodNames(e.Outcome.AllowedMethods))
	return h
}

func methodNames(methods []dispatch.Method) []string {
	out := make([]string, len(methods))
	for i, m := range methods {
		out[i] = m.String()
	}
	return out
}
