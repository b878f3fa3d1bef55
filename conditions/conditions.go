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

// Package conditions evaluates conditional request headers (If-Match,
// If-None-Match, If-Modified-Since, If-Unmodified-Since and If-Range)
// against the current representation of a resource.
//
// The four precondition checks run in a fixed order and stop at the first
// one that fails:
//
//  1. If-Match        fails with 412 Precondition Failed
//  2. If-None-Match   fails with 304 Not Modified on GET and HEAD, 412 otherwise
//  3. If-Modified-Since fails with 304 Not Modified
//  4. If-Unmodified-Since fails with 412 Precondition Failed
//
// When If-None-Match is present and none of its tags match, the result is
// decided by the If-Modified-Since date instead: an unmodified
// representation counts as matched. This differs from RFC 9110, which
// ignores If-Modified-Since in that case, and is kept for compatibility with
// existing clients of the engine.
//
// Dates are compared at the one second resolution of HTTP dates.
package conditions

import (
	"net/http"
	"time"

	"rivaas.dev/resource/representation"
)

// Result is the outcome of a precondition evaluation.
type Result int

const (
	// Proceed means every present precondition is satisfied.
	Proceed Result = iota

	// NotModified means the client's cached copy is current.
	NotModified

	// PreconditionFailed means the request must not be applied.
	PreconditionFailed
)

// String returns a human readable name for the result.
func (r Result) String() string {
	switch r {
	case Proceed:
		return "proceed"
	case NotModified:
		return "not-modified"
	case PreconditionFailed:
		return "precondition-failed"
	default:
		return "unknown"
	}
}

// Status returns the HTTP status code of the result, or 0 for Proceed.
func (r Result) Status() int {
	switch r {
	case NotModified:
		return http.StatusNotModified
	case PreconditionFailed:
		return http.StatusPreconditionFailed
	default:
		return 0
	}
}

// Conditions holds the conditional headers of a single request. Zero times
// mean the corresponding header was absent.
type Conditions struct {
	Match           []representation.Tag
	NoneMatch       []representation.Tag
	ModifiedSince   time.Time
	UnmodifiedSince time.Time

	// RangeTag and RangeDate come from If-Range; at most one is set.
	RangeTag  *representation.Tag
	RangeDate time.Time
}

// HasSome reports whether any of the four preconditions is present.
func (c *Conditions) HasSome() bool {
	return c != nil && (len(c.Match) > 0 ||
		len(c.NoneMatch) > 0 ||
		!c.ModifiedSince.IsZero() ||
		!c.UnmodifiedSince.IsZero())
}

// HasRange reports whether an If-Range condition is present.
func (c *Conditions) HasRange() bool {
	return c != nil && (c.RangeTag != nil || !c.RangeDate.IsZero())
}

// Evaluate checks the preconditions for a request with the given method
// against rep, which is nil when the resource has no current
// representation.
func (c *Conditions) Evaluate(method string, rep *representation.Variant) Result {
	if c == nil {
		return Proceed
	}

	if len(c.Match) > 0 && !c.matchSatisfied(rep) {
		return PreconditionFailed
	}

	modifiedSinceResolved := false
	if len(c.NoneMatch) > 0 {
		modifiedSinceResolved = true
		if c.noneMatchMatched(method, rep) {
			if isSafe(method) {
				return NotModified
			}
			return PreconditionFailed
		}
	}

	if !modifiedSinceResolved && !c.ModifiedSince.IsZero() && !modifiedSince(rep, c.ModifiedSince) {
		return NotModified
	}

	if !c.UnmodifiedSince.IsZero() && rep.HasModifiedAt() && after(rep.ModifiedAt, c.UnmodifiedSince) {
		return PreconditionFailed
	}

	return Proceed
}

// matchSatisfied evaluates If-Match using strong comparison.
func (c *Conditions) matchSatisfied(rep *representation.Variant) bool {
	if rep == nil {
		return len(c.Match) == 1 && c.Match[0].IsAny()
	}
	for _, t := range c.Match {
		if t.IsAny() {
			return true
		}
		if rep.Tag != nil && t.Equal(*rep.Tag, false) {
			return true
		}
	}
	return false
}

// noneMatchMatched evaluates If-None-Match. GET and HEAD use weak
// comparison, every other method strong comparison.
func (c *Conditions) noneMatchMatched(method string, rep *representation.Variant) bool {
	if rep == nil {
		return c.NoneMatch[0].IsAny()
	}

	weak := isSafe(method)
	for _, t := range c.NoneMatch {
		if t.IsAny() {
			return true
		}
		if rep.Tag != nil && t.Equal(*rep.Tag, weak) {
			return true
		}
	}

	if !c.ModifiedSince.IsZero() {
		return !modifiedSince(rep, c.ModifiedSince)
	}
	return false
}

// RangeSatisfied evaluates If-Range. A tag validator must match the
// representation's tag strongly (or be "*"), a date validator must equal
// its modification date. Without an If-Range condition it returns true.
func (c *Conditions) RangeSatisfied(rep *representation.Variant) bool {
	if !c.HasRange() {
		return true
	}
	if rep == nil {
		return false
	}

	if c.RangeTag != nil {
		if rep.Tag == nil {
			return false
		}
		return c.RangeTag.IsAny() || c.RangeTag.Equal(*rep.Tag, false)
	}

	return rep.HasModifiedAt() && rep.ModifiedAt.Unix() == c.RangeDate.Unix()
}

// modifiedSince reports whether rep changed after since. An unknown
// modification date counts as modified.
func modifiedSince(rep *representation.Variant, since time.Time) bool {
	if !rep.HasModifiedAt() {
		return true
	}
	return after(rep.ModifiedAt, since)
}

// after compares at HTTP date resolution.
func after(a, b time.Time) bool {
	return a.Unix() > b.Unix()
}

func isSafe(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}
