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


// Package tracing configures the OpenTelemetry tracer provider used by the
// dispatcher and wraps HTTP handlers in server spans.
//
//	tracer := tracing.MustNew(
//	    tracing.WithProvider(tracing.StdoutProvider),
//	    tracing.WithServiceName("documents"),
//	)
//	defer tracer.Shutdown(context.Background())
//
//	d := dispatch.MustNew(dispatch.WithTracer(tracer.Tracer()), ...)
//	handler := tracing.Middleware(tracer)(bridge)
//
// The middleware extracts W3C trace context from the request, so the
// dispatch span of a call becomes a child of the caller's span.
//
// The default provider is noop: spans are created and propagated but never
// exported.
package tracing
