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


package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "rivaas.dev/resource"

const (
	DefaultServiceName = "rivaas-resource"
	DefaultSampleRate  = 1.0
)

var (
	// ErrUnknownProvider indicates an unsupported provider name.
	ErrUnknownProvider = errors.New("unsupported tracing provider")

	// ErrInvalidSampleRate indicates a sample rate outside [0, 1].
	ErrInvalidSampleRate = errors.New("sample rate must be between 0 and 1")
)

// Provider names a span exporter.
type Provider string

const (
	// NoopProvider records spans without exporting them.
	NoopProvider Provider = "noop"
	// StdoutProvider writes spans as JSON.
	StdoutProvider Provider = "stdout"
	// OTLPProvider exports over OTLP/HTTP.
	OTLPProvider Provider = "otlp"
)

// ParseProvider parses a provider name. The empty string selects noop.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return NoopProvider, nil
	case NoopProvider, StdoutProvider, OTLPProvider:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
}

// Tracer owns a tracer provider and the propagator used by Middleware.
type Tracer struct {
	provider       Provider
	otlpEndpoint   string
	output         io.Writer
	serviceName    string
	serviceVersion string
	sampleRate     float64
	registerGlobal bool
	logger         *slog.Logger
	propagator     propagation.TextMapPropagator
	processors     []sdktrace.SpanProcessor

	sdkProvider *sdktrace.TracerProvider
	tracer      trace.Tracer
}

// New creates a Tracer.
func New(opts ...Option) (*Tracer, error) {
	t := &Tracer{
		provider:    NoopProvider,
		output:      os.Stdout,
		serviceName: DefaultServiceName,
		sampleRate:  DefaultSampleRate,
		logger:      slog.New(slog.DiscardHandler),
		propagator: propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.sampleRate < 0 || t.sampleRate > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, t.sampleRate)
	}

	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(t.serviceName),
			semconv.ServiceVersion(t.serviceVersion),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(t.sampleRate))),
	}

	switch t.provider {
	case NoopProvider:
	case StdoutProvider:
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(t.output))
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))
	case OTLPProvider:
		var exOpts []otlptracehttp.Option
		if t.otlpEndpoint != "" {
			exOpts = append(exOpts, otlptracehttp.WithEndpointURL(t.otlpEndpoint))
		}
		exporter, err := otlptracehttp.New(context.Background(), exOpts...)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, t.provider)
	}
	for _, p := range t.processors {
		tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(p))
	}

	t.sdkProvider = sdktrace.NewTracerProvider(tpOpts...)
	t.tracer = t.sdkProvider.Tracer(instrumentationName)

	if t.registerGlobal {
		otel.SetTracerProvider(t.sdkProvider)
		otel.SetTextMapPropagator(t.propagator)
	}

	t.logger.Debug("tracing initialized",
		"provider", string(t.provider),
		"service", t.serviceName,
		"sample_rate", t.sampleRate,
	)
	return t, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Tracer {
	t, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize tracing: %v", err))
	}
	return t
}

// Tracer returns the tracer to hand to the dispatcher.
func (t *Tracer) Tracer() trace.Tracer {
	return t.tracer
}

// TracerProvider returns the underlying SDK provider.
func (t *Tracer) TracerProvider() *sdktrace.TracerProvider {
	return t.sdkProvider
}

// Provider returns the configured provider.
func (t *Tracer) Provider() Provider {
	return t.provider
}

// ServiceName returns the service.name resource attribute.
func (t *Tracer) ServiceName() string {
	return t.serviceName
}

// Propagator returns the propagator used to extract incoming trace context.
func (t *Tracer) Propagator() propagation.TextMapPropagator {
	return t.propagator
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if err := t.sdkProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown tracer provider: %w", err)
	}
	return nil
}
