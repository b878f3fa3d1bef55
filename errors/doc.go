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


// Package errors formats failures as HTTP error bodies.
//
// Two formatters are provided:
//   - RFC9457: problem details (application/problem+json)
//   - Simple: a flat JSON object (application/json)
//
// Errors steer the result through optional interfaces. ErrorType sets the
// status, ErrorCode adds a machine readable code, ErrorDetails adds
// structured details and ErrorHeaders adds response headers such as Allow.
//
//	formatter := errors.NewRFC9457("https://example.com/problems")
//	resp := formatter.Format(r, err)
//	for k, vs := range resp.Headers {
//		w.Header()[k] = vs
//	}
//	w.Header().Set("Content-Type", resp.ContentType)
//	w.WriteHeader(resp.Status)
//	_ = json.NewEncoder(w).Encode(resp.Body)
package errors
