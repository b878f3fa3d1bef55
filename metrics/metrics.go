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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "rivaas.dev/resource/metrics"

// DefaultDurationBuckets are the dispatch duration histogram boundaries in
// seconds.
var DefaultDurationBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

var (
	// ErrNoHandler is returned by Handler when the provider does not
	// serve a scrape endpoint.
	ErrNoHandler = errors.New("metrics handler only available with the prometheus provider")

	// ErrUnknownProvider indicates an unsupported provider name.
	ErrUnknownProvider = errors.New("unsupported metrics provider")

	// ErrConflictingProviders indicates that more than one provider
	// option was given.
	ErrConflictingProviders = errors.New("only one of WithPrometheus, WithOTLP or WithStdout can be used")
)

// Provider names a metrics exporter.
type Provider string

const (
	PrometheusProvider Provider = "prometheus"
	OTLPProvider       Provider = "otlp"
	StdoutProvider     Provider = "stdout"
)

// ParseProvider parses a provider name. The empty string selects
// Prometheus.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PrometheusProvider, nil
	case PrometheusProvider, OTLPProvider, StdoutProvider:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
}

// Recorder owns a meter provider and the dispatch instruments. It is safe
// for concurrent use.
type Recorder struct {
	provider         Provider
	providerSetCount int
	otlpEndpoint     string
	exportInterval   time.Duration
	durationBuckets  []float64
	serviceName      string
	serviceVersion   string
	registerGlobal   bool
	logger           *slog.Logger

	meterProvider metric.MeterProvider
	custom        bool
	sdkProvider   *sdkmetric.MeterProvider
	registry      *promclient.Registry
	handler       http.Handler

	serviceAttrs []attribute.KeyValue

	calls         metric.Int64Counter
	duration      metric.Float64Histogram
	misses        metric.Int64Counter
	preconditions metric.Int64Counter
	targetErrors  metric.Int64Counter
}

// New creates a Recorder.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		provider:        PrometheusProvider,
		exportInterval:  30 * time.Second,
		durationBuckets: DefaultDurationBuckets,
		serviceName:     "rivaas-resource",
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.providerSetCount > 1 {
		return nil, ErrConflictingProviders
	}
	if r.serviceName == "" {
		return nil, errors.New("service name cannot be empty")
	}

	if err := r.initProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	if err := r.initInstruments(); err != nil {
		return nil, fmt.Errorf("failed to create instruments: %w", err)
	}

	r.serviceAttrs = []attribute.KeyValue{attribute.String("service.name", r.serviceName)}
	if r.serviceVersion != "" {
		r.serviceAttrs = append(r.serviceAttrs, attribute.String("service.version", r.serviceVersion))
	}
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize metrics: %v", err))
	}
	return r
}

func (r *Recorder) initProvider() error {
	if r.custom {
		if r.meterProvider == nil {
			return errors.New("custom meter provider is nil")
		}
		r.logger.Debug("using custom meter provider")
		return nil
	}

	var reader sdkmetric.Reader
	switch r.provider {
	case PrometheusProvider:
		r.registry = promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(r.registry))
		if err != nil {
			return fmt.Errorf("create prometheus exporter: %w", err)
		}
		reader = exporter
		r.handler = promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
	case OTLPProvider:
		var opts []otlpmetrichttp.Option
		if r.otlpEndpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpointURL(r.otlpEndpoint))
		}
		exporter, err := otlpmetrichttp.New(context.Background(), opts...)
		if err != nil {
			return fmt.Errorf("create otlp exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(r.exportInterval))
	case StdoutProvider:
		exporter, err := stdoutmetric.New()
		if err != nil {
			return fmt.Errorf("create stdout exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(r.exportInterval))
	default:
		return fmt.Errorf("%w: %s", ErrUnknownProvider, r.provider)
	}

	r.sdkProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	r.meterProvider = r.sdkProvider

	if r.registerGlobal {
		otel.SetMeterProvider(r.meterProvider)
	}
	r.logger.Debug("metrics provider initialized", "provider", string(r.provider))
	return nil
}

func (r *Recorder) initInstruments() error {
	meter := r.meterProvider.Meter(meterName)

	var err error
	if r.calls, err = meter.Int64Counter("resource.dispatch.calls",
		metric.WithDescription("Dispatched calls by method, outcome and status"),
		metric.WithUnit("{call}"),
	); err != nil {
		return err
	}
	if r.duration, err = meter.Float64Histogram("resource.dispatch.duration",
		metric.WithDescription("Time spent dispatching a call"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	); err != nil {
		return err
	}
	if r.misses, err = meter.Int64Counter("resource.negotiation.misses",
		metric.WithDescription("Calls for which no single variant could be selected"),
		metric.WithUnit("{call}"),
	); err != nil {
		return err
	}
	if r.preconditions, err = meter.Int64Counter("resource.precondition.rejections",
		metric.WithDescription("Calls rejected by a conditional header"),
		metric.WithUnit("{call}"),
	); err != nil {
		return err
	}
	if r.targetErrors, err = meter.Int64Counter("resource.target.errors",
		metric.WithDescription("Failures raised by resources"),
		metric.WithUnit("{error}"),
	); err != nil {
		return err
	}
	return nil
}

// Provider returns the configured provider. It is empty when a custom
// meter provider is used.
func (r *Recorder) Provider() Provider {
	if r.custom {
		return ""
	}
	return r.provider
}

// Handler returns the Prometheus scrape handler.
func (r *Recorder) Handler() (http.Handler, error) {
	if r.handler == nil {
		return nil, ErrNoHandler
	}
	return r.handler, nil
}

// Shutdown flushes and stops the built-in meter provider. A custom meter
// provider is owned by the caller and left running.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r.sdkProvider == nil {
		return nil
	}
	if err := r.sdkProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown meter provider: %w", err)
	}
	return nil
}
