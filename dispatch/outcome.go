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

package dispatch

import (
	"net/http"

	"rivaas.dev/resource/conneg"
	"rivaas.dev/resource/representation"
)

// Kind classifies an outcome.
type Kind uint8

const (
	// KindIdle means no outcome was produced because the dispatcher is
	// not started. The caller decides how to respond.
	KindIdle Kind = iota
	KindDispatched
	KindNotFound
	KindBadRequest
	KindMethodNotAllowed
	KindNotAcceptable
	KindMultipleChoices
	KindNotModified
	KindPreconditionFailed
	KindNotImplemented
)

var kindNames = [...]string{
	KindIdle:               "idle",
	KindDispatched:         "dispatched",
	KindNotFound:           "not-found",
	KindBadRequest:         "bad-request",
	KindMethodNotAllowed:   "method-not-allowed",
	KindNotAcceptable:      "not-acceptable",
	KindMultipleChoices:    "multiple-choices",
	KindNotModified:        "not-modified",
	KindPreconditionFailed: "precondition-failed",
	KindNotImplemented:     "not-implemented",
}

// String returns the kebab-case name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Status returns the default HTTP status of the kind. Dispatched and Idle
// return 0 because their status depends on the operation.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindNotAcceptable:
		return http.StatusNotAcceptable
	case KindMultipleChoices:
		return http.StatusMultipleChoices
	case KindNotModified:
		return http.StatusNotModified
	case KindPreconditionFailed:
		return http.StatusPreconditionFailed
	case KindNotImplemented:
		return http.StatusNotImplemented
	default:
		return 0
	}
}

// IsClientIssue reports whether the kind is a 4xx outcome.
func (k Kind) IsClientIssue() bool {
	s := k.Status()
	return s >= 400 && s < 500
}

// Outcome is the single result of dispatching a call.
type Outcome struct {
	Kind   Kind
	Status int

	// Redirect is the reference for Location, if any.
	Redirect string

	// Entity is the response entity. It is nil for rejected calls except
	// listings.
	Entity *Entity

	// Variant is the representation selected by negotiation. It is kept
	// on not-modified outcomes so validators can still be sent.
	Variant *representation.Variant

	// AllowedMethods is set on method-not-allowed, OPTIONS and successful
	// PUT outcomes.
	AllowedMethods []Method

	// Dimensions lists the negotiation axes considered.
	Dimensions conneg.Dimensions

	// Listing holds variant identifiers for multiple-choices and
	// not-acceptable outcomes.
	Listing []string

	// RangeAllowed is false when an If-Range condition failed and the full
	// representation must be sent instead of a range. It is read by
	// range-serving layers outside this module; httpbridge always writes the
	// full representation.
	RangeAllowed bool

	// Message is a short human readable explanation of a rejection.
	Message string
}

// IsIdle reports whether no outcome was produced.
func (o Outcome) IsIdle() bool {
	return o.Kind == KindIdle
}

func reject(kind Kind, message string) Outcome {
	return Outcome{Kind: kind, Status: kind.Status(), Message: message}
}
