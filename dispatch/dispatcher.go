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
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"rivaas.dev/resource/conditions"
	"rivaas.dev/resource/conneg"
	"rivaas.dev/resource/representation"
)

// State is a step of the dispatch state machine.
type State uint8

const (
	StateInitialized State = iota
	StateTargetResolved
	StateMethodChecked
	StateNegotiated
	StateSkipNegotiation
	StatePreconditionChecked
	StateDispatched
	StateRejected
)

var stateNames = [...]string{
	StateInitialized:         "initialized",
	StateTargetResolved:      "target-resolved",
	StateMethodChecked:       "method-checked",
	StateNegotiated:          "negotiated",
	StateSkipNegotiation:     "skip-negotiation",
	StatePreconditionChecked: "precondition-checked",
	StateDispatched:          "dispatched",
	StateRejected:            "rejected",
}

// String returns the state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Terminal reports whether the state ends the call.
func (s State) Terminal() bool {
	return s == StateDispatched || s == StateRejected
}

// Dispatcher routes calls to resources, negotiates the response
// representation and evaluates preconditions. It holds no per-call state
// and is safe for concurrent use.
type Dispatcher struct {
	resolver        Resolver
	negotiate       bool
	defaultLanguage *representation.Language
	logger          *slog.Logger
	tracer          trace.Tracer
	observers       []Observer

	started atomic.Bool
}

// New creates a stopped dispatcher.
func New(opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		negotiate: true,
		logger:    slog.New(slog.DiscardHandler),
		tracer:    noop.NewTracerProvider().Tracer("rivaas.dev/resource/dispatch"),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.resolver == nil {
		return nil, ErrNoResolver
	}
	return d, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Dispatcher {
	d, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Start activates the dispatcher.
func (d *Dispatcher) Start() {
	d.started.Store(true)
}

// Stop deactivates the dispatcher. Calls made while stopped produce an
// idle outcome.
func (d *Dispatcher) Stop() {
	d.started.Store(false)
}

// IsStarted reports whether the dispatcher is active.
func (d *Dispatcher) IsStarted() bool {
	return d.started.Load()
}

// NegotiateContent reports whether content negotiation is enabled.
func (d *Dispatcher) NegotiateContent() bool {
	return d.negotiate
}

// call carries the per-call state through the state machine.
type call struct {
	req      *Request
	method   Method
	target   Resource
	caps     Capabilities
	variants []*representation.Variant
	selected *representation.Variant
	outcome  Outcome
}

// Dispatch processes a single call and returns exactly one outcome. A
// non-nil error is always a *TargetError raised by the target; the
// outcome is then meaningless and the caller reports a server error.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) (Outcome, error) {
	if !d.started.Load() {
		return Outcome{Kind: KindIdle}, nil
	}

	start := time.Now()
	ctx, span := d.tracer.Start(ctx, "resource.dispatch",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("resource.path", req.Path),
		),
	)
	defer span.End()

	c := &call{req: req, method: ParseMethod(req.Method)}
	state := StateInitialized
	var err error
	for !state.Terminal() {
		var next State
		next, err = d.step(ctx, c, state)
		if err != nil {
			break
		}
		span.AddEvent("state", trace.WithAttributes(attribute.String("resource.state", next.String())))
		state = next
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.logger.DebugContext(ctx, "target failed",
			"method", req.Method,
			"path", req.BasePath+req.Path,
			"error", err,
		)
	} else {
		span.SetAttributes(
			attribute.String("resource.outcome", c.outcome.Kind.String()),
			attribute.Int("http.response.status_code", c.outcome.Status),
		)
		d.logger.DebugContext(ctx, "call dispatched",
			"method", req.Method,
			"path", req.BasePath+req.Path,
			"outcome", c.outcome.Kind.String(),
			"status", c.outcome.Status,
		)
	}

	elapsed := time.Since(start)
	for _, o := range d.observers {
		o.ObserveDispatch(ctx, req.Method, c.outcome, err, elapsed)
	}

	if err != nil {
		return Outcome{}, err
	}
	return c.outcome, nil
}

func (d *Dispatcher) step(ctx context.Context, c *call, state State) (State, error) {
	switch state {
	case StateInitialized:
		return d.resolve(ctx, c)
	case StateTargetResolved:
		return d.checkMethod(ctx, c), nil
	case StateMethodChecked:
		return d.negotiateIfNeeded(ctx, c)
	case StateNegotiated, StateSkipNegotiation:
		return d.checkPreconditions(c, state), nil
	case StatePreconditionChecked:
		return d.invoke(ctx, c)
	default:
		return StateRejected, nil
	}
}

func (d *Dispatcher) resolve(ctx context.Context, c *call) (State, error) {
	target, err := d.resolver.FindTarget(ctx, c.req)
	if err != nil {
		return StateRejected, &TargetError{Method: c.method, Op: "find target", Err: err}
	}
	if target == nil {
		c.outcome = reject(KindNotFound, "no resource matches the request")
		return StateRejected, nil
	}

	c.target = target
	c.caps = target.Capabilities()
	if c.caps == nil {
		c.caps = DefaultCapabilities(target)
	}
	return StateTargetResolved, nil
}

func (d *Dispatcher) checkMethod(ctx context.Context, c *call) State {
	if c.method == "" {
		c.outcome = reject(KindBadRequest, "request method is missing")
		return StateRejected
	}

	allowed, declared := c.caps.Allowed(c.method)
	if !declared {
		d.logger.WarnContext(ctx, "capability absent",
			"method", c.method.String(),
			"check", c.method.CheckName(),
		)
	}
	if !allowed {
		c.outcome = reject(KindMethodNotAllowed, "method not allowed")
		c.outcome.AllowedMethods = c.caps.Methods()
		return StateRejected
	}

	if c.method == MethodPut && c.req.Header.Get("Content-Range") != "" {
		c.outcome = reject(KindNotImplemented, "partial PUT is not supported")
		return StateRejected
	}

	return StateMethodChecked
}

func (d *Dispatcher) negotiateIfNeeded(ctx context.Context, c *call) (State, error) {
	switch c.method {
	case MethodOptions:
		c.outcome = Outcome{
			Kind:           KindDispatched,
			Status:         http.StatusOK,
			AllowedMethods: c.caps.Methods(),
		}
		return StateDispatched, nil
	case MethodGet, MethodHead:
		return d.negotiateRead(ctx, c)
	case MethodPut, MethodDelete:
		if c.req.Conditions.HasSome() {
			return d.negotiateWrite(ctx, c)
		}
	}
	return StateSkipNegotiation, nil
}

func (d *Dispatcher) variants(ctx context.Context, c *call) error {
	variants, err := c.target.Variants(ctx, c.req)
	if err != nil {
		return &TargetError{Method: c.method, Op: "list variants", Err: err}
	}
	c.variants = lo.Compact(variants)
	return nil
}

func (d *Dispatcher) best(c *call) *representation.Variant {
	var opts []conneg.Option
	if d.defaultLanguage != nil {
		opts = append(opts, conneg.WithDefaultLanguage(*d.defaultLanguage))
	}
	prefs := c.req.Preferences
	return conneg.BestVariant(prefs.Languages, prefs.MediaTypes, c.variants, opts...)
}

func (d *Dispatcher) negotiateRead(ctx context.Context, c *call) (State, error) {
	if err := d.variants(ctx, c); err != nil {
		return StateRejected, err
	}

	if len(c.variants) == 0 {
		c.outcome = reject(KindNotFound, "resource has no representation")
		return StateRejected, nil
	}

	if d.negotiate {
		dims := conneg.DimensionsOf(c.variants)
		c.selected = d.best(c)
		if c.selected == nil {
			listing := conneg.Listing(c.variants)
			c.outcome = reject(KindNotAcceptable, "no representation matches the client preferences")
			c.outcome.Dimensions = dims
			c.outcome.Listing = listing
			c.outcome.Entity = NewListingEntity(listing)
			return StateRejected, nil
		}
		c.outcome.Dimensions = dims
		return StateNegotiated, nil
	}

	if len(c.variants) == 1 {
		c.selected = c.variants[0]
		return StateNegotiated, nil
	}

	listing := conneg.Listing(c.variants)
	if len(listing) < len(c.variants) {
		d.logger.WarnContext(ctx, "variants without identifier cannot be listed",
			"path", c.req.BasePath+c.req.Path,
			"variants", len(c.variants),
			"identified", len(listing),
		)
	}
	if len(listing) == 0 {
		c.outcome = reject(KindNotFound, "no variant can be referenced")
		return StateRejected, nil
	}
	c.outcome = reject(KindMultipleChoices, "several representations are available")
	c.outcome.Listing = listing
	c.outcome.Entity = NewListingEntity(listing)
	return StateRejected, nil
}

func (d *Dispatcher) negotiateWrite(ctx context.Context, c *call) (State, error) {
	if err := d.variants(ctx, c); err != nil {
		return StateRejected, err
	}

	if d.negotiate {
		c.selected = d.best(c)
		return StateNegotiated, nil
	}

	if len(c.variants) != 1 {
		c.outcome = reject(KindPreconditionFailed, "the current representation cannot be determined")
		return StateRejected, nil
	}
	c.selected = c.variants[0]
	return StateNegotiated, nil
}

func (d *Dispatcher) checkPreconditions(c *call, state State) State {
	if state == StateSkipNegotiation || !c.req.Conditions.HasSome() {
		return d.markRange(c)
	}

	switch c.req.Conditions.Evaluate(c.method.String(), c.selected) {
	case conditions.NotModified:
		dims := c.outcome.Dimensions
		c.outcome = reject(KindNotModified, "")
		c.outcome.Variant = c.selected
		c.outcome.Dimensions = dims
		return StateRejected
	case conditions.PreconditionFailed:
		c.outcome = reject(KindPreconditionFailed, "precondition failed")
		return StateRejected
	}

	return d.markRange(c)
}

func (d *Dispatcher) markRange(c *call) State {
	c.outcome.RangeAllowed = c.req.Conditions.RangeSatisfied(c.selected)
	return StatePreconditionChecked
}

func (d *Dispatcher) invoke(ctx context.Context, c *call) (State, error) {
	switch c.method {
	case MethodPost, MethodPut:
		if !c.req.Entity.Available() {
			c.outcome = reject(KindBadRequest, "request entity is missing")
			return StateRejected, nil
		}
	case MethodGet, MethodHead:
		c.req.Variant = c.selected
	}

	res, err := c.caps.Invoke(ctx, c.method, c.req)
	if errors.Is(err, ErrCapabilityAbsent) {
		d.logger.WarnContext(ctx, "capability absent",
			"method", c.method.String(),
			"handler", c.method.HandlerName(),
		)
		c.outcome = reject(KindMethodNotAllowed, "method not implemented by resource")
		c.outcome.AllowedMethods = c.caps.Methods()
		return StateRejected, nil
	}
	if err != nil {
		return StateRejected, &TargetError{Method: c.method, Op: "invoke", Err: err}
	}

	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}
	entity := res.Entity
	if entity != nil && entity.Variant == nil {
		entity.Variant = c.selected
	}

	c.outcome = Outcome{
		Kind:         KindDispatched,
		Status:       status,
		Redirect:     res.Redirect,
		Entity:       entity,
		Variant:      c.selected,
		Dimensions:   c.outcome.Dimensions,
		RangeAllowed: c.outcome.RangeAllowed,
	}
	if c.method == MethodPut {
		c.outcome.AllowedMethods = c.caps.Methods()
	}
	return StateDispatched, nil
}
