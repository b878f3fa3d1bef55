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

// Package dispatch drives a call through target resolution, method
// checking, content negotiation and precondition evaluation before running
// the target's operation.
//
// # State machine
//
// Every call walks the same states:
//
//	Initialized -> TargetResolved -> MethodChecked
//	    -> Negotiated | SkipNegotiation
//	    -> PreconditionChecked -> Dispatched | Rejected
//
// Any step may end the call early with a rejection. The outcome kinds are:
//
//   - not-found: no target, or a GET target without representations
//   - bad-request: missing method, or POST/PUT without an entity
//   - method-not-allowed: the method is not allowed; the outcome lists
//     every allowed method
//   - not-implemented: PUT with a Content-Range header
//   - not-acceptable: no variant matches the client preferences; the
//     outcome carries a text/uri-list of variant identifiers
//   - multiple-choices: negotiation is disabled and several variants exist
//   - not-modified, precondition-failed: a precondition failed
//
// A stopped dispatcher produces an idle outcome and leaves the response to
// the caller. Failures raised by targets are returned as *TargetError and
// never turned into an outcome here.
//
// # Capabilities
//
// Which methods a resource supports is described by a [Table], built once
// per resource type:
//
//	var documents = dispatch.NewTable[*Document]().
//	    Allow(http.MethodPut, func(d *Document) bool { return !d.ReadOnly }).
//	    Handle("PURGE", func(ctx context.Context, d *Document, req *dispatch.Request) (dispatch.Result, error) {
//	        return dispatch.Result{Status: http.StatusNoContent}, d.Purge(ctx)
//	    })
//
//	func (d *Document) Capabilities() dispatch.Capabilities {
//	    return documents.Bind(d)
//	}
//
// Standard operations are found through the [Getter], [Poster], [Putter]
// and [Deleter] interfaces.
//
// # Example
//
//	router := routing.MustNew[dispatch.Factory]()
//	_, _ = router.Attach("/documents/{id}", newDocument)
//
//	d := dispatch.MustNew(
//	    dispatch.WithResolver(dispatch.NewRouterResolver(router)),
//	    dispatch.WithLogger(logger),
//	)
//	d.Start()
//
//	outcome, err := d.Dispatch(ctx, req)
package dispatch
