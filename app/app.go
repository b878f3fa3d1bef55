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
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"rivaas.dev/resource/dispatch"
	"rivaas.dev/resource/httpbridge"
	"rivaas.dev/resource/logging"
	"rivaas.dev/resource/metrics"
	"rivaas.dev/resource/middleware/accesslog"
	"rivaas.dev/resource/middleware/requestid"
	"rivaas.dev/resource/routing"
	"rivaas.dev/resource/tracing"
)

// App is a resource service: a route table of resource factories served
// through the dispatcher and the HTTP bridge.
type App struct {
	logger     *logging.Logger
	recorder   *metrics.Recorder
	tracer     *tracing.Tracer
	router     *routing.Router[dispatch.Factory]
	dispatcher *dispatch.Dispatcher
	bridge     *httpbridge.Handler

	metricsPath     string
	accessLog       bool
	address         string
	shutdownTimeout time.Duration

	hooks       hooks
	handlerOnce sync.Once
	handler     http.Handler
}

// New creates an App. Unless overridden the App logs JSON to stdout,
// records metrics into a private Prometheus registry and creates spans
// that are never exported.
func New(opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	a := &App{
		metricsPath:     o.metricsPath,
		accessLog:       !o.accessLogOff,
		address:         o.address,
		shutdownTimeout: o.shutdownTimeout,
	}

	var err error
	if a.logger = o.logger; a.logger == nil {
		if a.logger, err = logging.New(o.loggingOpts...); err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
	}
	slogger := a.logger.Logger()

	if !o.metricsOff {
		if a.recorder = o.recorder; a.recorder == nil {
			mopts := append([]metrics.Option{metrics.WithLogger(slogger)}, o.metricsOpts...)
			if a.recorder, err = metrics.New(mopts...); err != nil {
				return nil, fmt.Errorf("app: %w", err)
			}
		}
	}

	if a.tracer = o.tracer; a.tracer == nil {
		topts := append([]tracing.Option{tracing.WithLogger(slogger)}, o.tracingOpts...)
		if a.tracer, err = tracing.New(topts...); err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
	}

	if a.router, err = routing.New[dispatch.Factory](o.routerOpts...); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	dopts := []dispatch.Option{
		dispatch.WithResolver(dispatch.NewRouterResolver(a.router)),
		dispatch.WithLogger(slogger),
		dispatch.WithTracer(a.tracer.Tracer()),
	}
	if a.recorder != nil {
		dopts = append(dopts, dispatch.WithObserver(a.recorder))
	}
	if a.dispatcher, err = dispatch.New(append(dopts, o.dispatchOpts...)...); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	bopts := append([]httpbridge.Option{httpbridge.WithLogger(slogger)}, o.bridgeOpts...)
	a.bridge = httpbridge.New(a.dispatcher, bopts...)

	return a, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *App {
	a, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// FromSettings creates an App configured by s. Options given here are
// applied after the ones derived from s.
func FromSettings(s Settings, opts ...Option) (*App, error) {
	base, err := s.Options()
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return New(append(base, opts...)...)
}

// Handle attaches a resource factory to a URI template. Routes can only be
// attached before the first request is routed.
func (a *App) Handle(pattern string, f dispatch.Factory, opts ...routing.TemplateOption) (*routing.Route[dispatch.Factory], error) {
	route, err := a.router.Attach(pattern, f, opts...)
	if err != nil {
		return nil, fmt.Errorf("app: attach %q: %w", pattern, err)
	}
	a.logger.Logger().Debug("route attached", "pattern", pattern)
	return route, nil
}

// MustHandle is like Handle but panics on error.
func (a *App) MustHandle(pattern string, f dispatch.Factory, opts ...routing.TemplateOption) *routing.Route[dispatch.Factory] {
	route, err := a.Handle(pattern, f, opts...)
	if err != nil {
		panic(err)
	}
	return route
}

// HandleResource attaches a single shared resource to a URI template.
func (a *App) HandleResource(pattern string, r dispatch.Resource, opts ...routing.TemplateOption) (*routing.Route[dispatch.Factory], error) {
	return a.Handle(pattern, dispatch.Singleton(r), opts...)
}

// Handler returns the HTTP handler of the App: the traced bridge plus the
// scrape endpoint when metrics are exported to Prometheus. Every request
// gets a request id and, unless disabled, an access log record.
func (a *App) Handler() http.Handler {
	a.handlerOnce.Do(func() {
		var h http.Handler = tracing.Middleware(a.tracer)(a.bridge)
		if scrape, err := a.MetricsHandler(); err == nil {
			mux := http.NewServeMux()
			mux.Handle(a.metricsPath, scrape)
			mux.Handle("/", h)
			h = mux
		}
		if a.accessLog {
			h = accesslog.New(
				accesslog.WithLogger(a.logger.Logger()),
				accesslog.WithExcludePaths(a.metricsPath),
			)(h)
		}
		a.handler = requestid.New()(h)
	})
	return a.handler
}

// MetricsHandler returns the Prometheus scrape handler.
func (a *App) MetricsHandler() (http.Handler, error) {
	if a.recorder == nil {
		return nil, ErrMetricsDisabled
	}
	h, err := a.recorder.Handler()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMetricsDisabled, err)
	}
	return h, nil
}

// Router returns the route table.
func (a *App) Router() *routing.Router[dispatch.Factory] { return a.router }

// Dispatcher returns the dispatcher.
func (a *App) Dispatcher() *dispatch.Dispatcher { return a.dispatcher }

// Logger returns the structured logger.
func (a *App) Logger() *slog.Logger { return a.logger.Logger() }

// Metrics returns the recorder, or nil when metrics are disabled.
func (a *App) Metrics() *metrics.Recorder { return a.recorder }

// Tracing returns the tracer.
func (a *App) Tracing() *tracing.Tracer { return a.tracer }
