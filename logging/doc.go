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


// Package logging builds the structured slog logger used by the engine.
//
// Output is JSON or key=value text. Service metadata is attached to every
// record, sensitive keys are redacted and, when trace correlation is on,
// records logged with a context carrying an OpenTelemetry span get trace_id
// and span_id attributes.
//
//	logger := logging.MustNew(
//	    logging.WithServiceName("documents"),
//	    logging.WithLevel(logging.LevelDebug),
//	)
//	d := dispatch.MustNew(dispatch.WithLogger(logger.Logger()), ...)
//
// Packages that log accept a plain *slog.Logger; this package only builds
// one.
package logging
