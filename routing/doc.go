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

// Package routing matches request paths against URI templates and ranks
// the candidates by how much of the path they consume.
//
// A [Template] matches a prefix of the remaining path by default, so a
// template attached at "/users/{id}" also accepts "/users/42/orders". The
// route score grows with the consumed share of the path:
//
//	score = required + (1 - required) * matched / total
//
// and a route is accepted only when its score is strictly above the
// router's required score (0.5 by default). The matched length is reported
// so that nested routers can continue with the rest of the path.
//
// # Example
//
//	r := routing.MustNew[string]()
//	_, _ = r.Attach("/users/{id:digit}", "user")
//
//	m, ok := r.Next("/users/42/orders")
//	// ok == true, m.Variables["id"] == "42", m.Remaining == "/orders"
package routing
