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

package dispatch

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/resource/representation"
)

// Observer is notified once per dispatched call. err is the target error,
// if any. Implementations must be safe for concurrent use.
type Observer interface {
	ObserveDispatch(ctx context.Context, method string, outcome Outcome, err error, elapsed time.Duration)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, method string, outcome Outcome, err error, elapsed time.Duration)

// ObserveDispatch calls f.
func (f ObserverFunc) ObserveDispatch(ctx context.Context, method string, outcome Outcome, err error, elapsed time.Duration) {
	f(ctx, method, outcome, err, elapsed)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithResolver sets the resolver used to find targets. Required.
func WithResolver(r Resolver) Option {
	return func(d *Dispatcher) {
		d.resolver = r
	}
}

// WithNegotiateContent enables or disables content negotiation. It is
// enabled by default.
func WithNegotiateContent(enabled bool) Option {
	return func(d *Dispatcher) {
		d.negotiate = enabled
	}
}

// WithDefaultLanguage sets the server's default language used during
// negotiation.
func WithDefaultLanguage(lang representation.Language) Option {
	return func(d *Dispatcher) {
		d.defaultLanguage = &lang
	}
}

// WithLogger sets the logger. Nothing is logged by default.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithTracer sets the tracer used to create a span per call.
func WithTracer(tracer trace.Tracer) Option {
	return func(d *Dispatcher) {
		if tracer != nil {
			d.tracer = tracer
		}
	}
}

// WithObserver adds an observer.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		if o != nil {
			d.observers = append(d.observers, o)
		}
	}
}
