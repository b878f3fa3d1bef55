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

// Package httpbridge connects a dispatcher to net/http.
//
// [ReadRequest] turns an *http.Request into a dispatch request: Accept and
// Accept-Language become negotiation preferences and the conditional
// headers become preconditions. [Handler] runs the dispatcher and writes
// the outcome back:
//
//   - dispatched calls get their status, entity and the metadata of the
//     selected variant (Content-Type, Content-Language, ETag,
//     Last-Modified)
//   - not-modified responses keep only the validators
//   - multiple-choices and not-acceptable responses carry the
//     text/uri-list listing of variants
//   - every other rejection, idle dispatchers, target failures and panics
//     are rendered by an [errors.Formatter], RFC 9457 problem details by
//     default
//
// Vary, Allow and Location are set whenever the outcome calls for them.
//
//	h := httpbridge.New(dispatcher, httpbridge.WithLogger(logger))
//	http.ListenAndServe(":8080", h)
package httpbridge
