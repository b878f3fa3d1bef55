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


// Package metrics records dispatch outcomes with OpenTelemetry.
//
// A [Recorder] is a dispatch.Observer. Register it on the dispatcher and
// every call is counted by method, outcome and status, timed, and
// classified as a negotiation miss, precondition rejection or target
// failure when applicable.
//
//	recorder := metrics.MustNew(
//	    metrics.WithPrometheus(),
//	    metrics.WithServiceName("documents"),
//	)
//	defer recorder.Shutdown(context.Background())
//
//	d := dispatch.MustNew(
//	    dispatch.WithResolver(resolver),
//	    dispatch.WithObserver(recorder),
//	)
//
//	handler, _ := recorder.Handler()
//	mux.Handle("/metrics", handler)
//
// # Providers
//
//   - [PrometheusProvider] (default): a private registry served by [Recorder.Handler]
//   - [OTLPProvider]: periodic export over OTLP/HTTP
//   - [StdoutProvider]: periodic export to stdout
//
// [WithMeterProvider] bypasses the built-in providers, which is how tests
// attach a manual reader.
//
// The global OpenTelemetry meter provider is left alone unless
// [WithGlobalMeterProvider] is given.
package metrics
