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
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"rivaas.dev/resource/dispatch"
)

var _ dispatch.Observer = (*Recorder)(nil)

// ObserveDispatch implements dispatch.Observer. Idle outcomes are not
// recorded.
func (r *Recorder) ObserveDispatch(ctx context.Context, method string, outcome dispatch.Outcome, err error, elapsed time.Duration) {
	if err == nil && outcome.IsIdle() {
		return
	}

	kind := outcome.Kind.String()
	status := outcome.Status
	if err != nil {
		kind = "error"
		status = http.StatusInternalServerError
	}

	attrs := make([]attribute.KeyValue, 0, len(r.serviceAttrs)+3)
	attrs = append(attrs, r.serviceAttrs...)
	attrs = append(attrs,
		attribute.String("http.request.method", methodAttr(method)),
		attribute.String("resource.outcome", kind),
	)
	r.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))

	attrs = append(attrs, attribute.Int("http.response.status_code", status))
	r.calls.Add(ctx, 1, metric.WithAttributes(attrs...))

	if err != nil {
		op := "unknown"
		var te *dispatch.TargetError
		if errors.As(err, &te) {
			op = te.Op
		}
		r.targetErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("http.request.method", methodAttr(method)),
			attribute.String("resource.operation", op),
		))
		return
	}

	switch outcome.Kind {
	case dispatch.KindNotAcceptable, dispatch.KindMultipleChoices:
		r.misses.Add(ctx, 1, metric.WithAttributes(attribute.String("resource.outcome", kind)))
	case dispatch.KindNotModified, dispatch.KindPreconditionFailed:
		r.preconditions.Add(ctx, 1, metric.WithAttributes(attribute.String("resource.outcome", kind)))
	}
}

// methodAttr keeps the attribute cardinality bounded by folding extension
// methods into "_OTHER".
func methodAttr(method string) string {
	m := dispatch.ParseMethod(method)
	if m.IsStandard() {
		return m.String()
	}
	return "_OTHER"
}
