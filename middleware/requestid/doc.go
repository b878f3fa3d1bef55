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


// Package requestid tags every request with a correlation id.
//
// The id is taken from the X-Request-ID header when the client sent one,
// otherwise a UUID v7 is generated. It is echoed in the response header
// and stored in the request context:
//
//	handler = requestid.New()(handler)
//
//	func (n *note) Get(ctx context.Context, req *dispatch.Request) (dispatch.Result, error) {
//	    slog.InfoContext(ctx, "reading note", "request_id", requestid.FromContext(ctx))
//	    ...
//	}
package requestid
