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


// Package accesslog writes one structured log record per HTTP request.
//
//	handler = accesslog.New(
//	    accesslog.WithLogger(logger),
//	    accesslog.WithExcludePaths("/metrics"),
//	)(handler)
//
// Records carry the method, path, status, response size, duration, client
// address, user agent and, when the requestid middleware runs first, the
// request id. Server errors are logged at error level and client errors
// at warn level.
package accesslog
