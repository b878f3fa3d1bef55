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


package app

import (
	"time"

	"rivaas.dev/resource/dispatch"
	"rivaas.dev/resource/httpbridge"
	"rivaas.dev/resource/logging"
	"rivaas.dev/resource/metrics"
	"rivaas.dev/resource/routing"
	"rivaas.dev/resource/tracing"
)

const (
	defaultAddress         = ":8080"
	defaultShutdownTimeout = 10 * time.Second
	defaultMetricsPath     = "/metrics"
)

// Option configures an App.
type Option func(*options)

type options struct {
	logger      *logging.Logger
	loggingOpts []logging.Option

	recorder        *metrics.Recorder
	metricsOpts     []metrics.Option
	metricsOff      bool
	metricsPath     string
	tracer          *tracing.Tracer
	tracingOpts     []tracing.Option
	routerOpts      []routing.Option
	dispatchOpts    []dispatch.Option
	bridgeOpts      []httpbridge.Option
	accessLogOff    bool
	address         string
	shutdownTimeout time.Duration
}

func defaultOptions() *options {
	return &options{
		metricsPath:     defaultMetricsPath,
		address:         defaultAddress,
		shutdownTimeout: defaultShutdownTimeout,
	}
}

// WithLogger uses a logger built by the caller. It takes precedence over
// WithLoggingOptions.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithLoggingOptions builds the logger from opts.
func WithLoggingOptions(opts ...logging.Option) Option {
	return func(o *options) { o.loggingOpts = append(o.loggingOpts, opts...) }
}

// WithMetrics records dispatch metrics into r. The App shuts r down when
// Serve returns.
func WithMetrics(r *metrics.Recorder) Option {
	return func(o *options) {
		o.recorder = r
		o.metricsOff = false
	}
}

// WithMetricsOptions builds the recorder from opts.
func WithMetricsOptions(opts ...metrics.Option) Option {
	return func(o *options) {
		o.metricsOpts = append(o.metricsOpts, opts...)
		o.metricsOff = false
	}
}

// WithoutMetrics disables dispatch metrics and the scrape endpoint.
func WithoutMetrics() Option {
	return func(o *options) {
		o.recorder = nil
		o.metricsOpts = nil
		o.metricsOff = true
	}
}

// WithMetricsPath mounts the Prometheus scrape endpoint at path. Defaults
// to "/metrics".
func WithMetricsPath(path string) Option {
	return func(o *options) { o.metricsPath = path }
}

// WithTracing uses a tracer built by the caller.
func WithTracing(t *tracing.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithTracingOptions builds the tracer from opts.
func WithTracingOptions(opts ...tracing.Option) Option {
	return func(o *options) { o.tracingOpts = append(o.tracingOpts, opts...) }
}

// WithRouterOptions configures the route table.
func WithRouterOptions(opts ...routing.Option) Option {
	return func(o *options) { o.routerOpts = append(o.routerOpts, opts...) }
}

// WithDispatchOptions configures the dispatcher. The resolver, logger,
// tracer and observer are set by the App; options given here override them.
func WithDispatchOptions(opts ...dispatch.Option) Option {
	return func(o *options) { o.dispatchOpts = append(o.dispatchOpts, opts...) }
}

// WithBridgeOptions configures the HTTP bridge.
func WithBridgeOptions(opts ...httpbridge.Option) Option {
	return func(o *options) { o.bridgeOpts = append(o.bridgeOpts, opts...) }
}

// WithoutAccessLog disables the per-request log record.
func WithoutAccessLog() Option {
	return func(o *options) { o.accessLogOff = true }
}

// WithAddress sets the address used by Serve when none is given.
func WithAddress(addr string) Option {
	return func(o *options) { o.address = addr }
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) { o.shutdownTimeout = d }
}
