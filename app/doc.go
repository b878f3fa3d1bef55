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


// Package app wires the resource engine into a runnable HTTP service.
//
// An App owns the route table, the dispatcher, the HTTP bridge and the
// observability stack (logging, metrics, tracing). Resources are attached
// to URI templates and the App serves them with graceful shutdown:
//
//	a := app.MustNew(app.WithLogger(logger))
//	a.MustHandle("/documents/{id}", newDocument)
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := a.Serve(ctx, ":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Settings
//
// [LoadSettings] reads a [Settings] value through the config package. Keys
// map one to one onto the struct tags; environment variables use the
// RESOURCE_ prefix and a double underscore for nesting:
//
//	RESOURCE_ROUTING__MODE=best
//	RESOURCE_METRICS__PROVIDER=none
//
// [FromSettings] turns a loaded Settings value into an App.
package app
