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


package metrics

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Option configures a Recorder.
type Option func(*Recorder)

// WithProvider selects a built-in provider by name.
func WithProvider(p Provider) Option {
	return func(r *Recorder) {
		r.provider = p
		r.providerSetCount++
	}
}

// WithPrometheus exports to a private Prometheus registry.
func WithPrometheus() Option {
	return WithProvider(PrometheusProvider)
}

// WithOTLP exports over OTLP/HTTP. An empty endpoint uses the exporter
// defaults and the OTEL_EXPORTER_OTLP_* environment variables.
func WithOTLP(endpoint string) Option {
	return func(r *Recorder) {
		WithProvider(OTLPProvider)(r)
		r.otlpEndpoint = endpoint
	}
}

// WithStdout exports to stdout.
func WithStdout() Option {
	return WithProvider(StdoutProvider)
}

// WithMeterProvider records into mp instead of a built-in provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(r *Recorder) {
		r.meterProvider = mp
		r.custom = true
	}
}

// WithGlobalMeterProvider registers the built-in provider globally.
func WithGlobalMeterProvider() Option {
	return func(r *Recorder) { r.registerGlobal = true }
}

// WithServiceName sets the service.name attribute.
func WithServiceName(name string) Option {
	return func(r *Recorder) { r.serviceName = name }
}

// WithServiceVersion sets the service.version attribute.
func WithServiceVersion(version string) Option {
	return func(r *Recorder) { r.serviceVersion = version }
}

// WithExportInterval sets the push interval of the OTLP and stdout
// providers.
func WithExportInterval(interval time.Duration) Option {
	return func(r *Recorder) { r.exportInterval = interval }
}

// WithDurationBuckets overrides DefaultDurationBuckets.
func WithDurationBuckets(buckets ...float64) Option {
	return func(r *Recorder) { r.durationBuckets = buckets }
}

// WithLogger sets the logger for provider lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}
