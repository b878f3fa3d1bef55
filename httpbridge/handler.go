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

package httpbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"rivaas.dev/resource/dispatch"
	riverrors "rivaas.dev/resource/errors"
)

// Dispatcher runs a single call. *dispatch.Dispatcher implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *dispatch.Request) (dispatch.Outcome, error)
}

// Handler serves HTTP requests through a Dispatcher.
type Handler struct {
	dispatcher Dispatcher
	formatter  riverrors.Formatter
	logger     *slog.Logger
	stackTrace bool
	stackSize  int
	idleStatus int
}

// New returns a handler for d. Problems are formatted as RFC 9457 with
// server details hidden unless WithFormatter says otherwise.
func New(d Dispatcher, opts ...Option) *Handler {
	h := &Handler{
		dispatcher: d,
		formatter:  &riverrors.RFC9457{HideServerDetail: true},
		logger:     slog.New(slog.DiscardHandler),
		stackTrace: true,
		stackSize:  defaultStackSize,
		idleStatus: http.StatusServiceUnavailable,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tw := &trackingWriter{ResponseWriter: w}
	defer h.recover(tw, r)

	outcome, err := h.dispatcher.Dispatch(r.Context(), ReadRequest(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "target failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		h.writeProblem(tw, r, err)
		return
	}

	if outcome.IsIdle() {
		h.writeProblem(tw, r, riverrors.WithStatus(ErrIdle, h.idleStatus))
		return
	}

	written, err := WriteOutcome(tw, r, outcome)
	if err != nil {
		h.logger.WarnContext(r.Context(), "response body copy failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	if written {
		return
	}

	writeCommonHeaders(tw.Header(), outcome)
	h.writeProblem(tw, r, &OutcomeError{Outcome: outcome})
}

func (h *Handler) writeProblem(w http.ResponseWriter, r *http.Request, err error) {
	resp := h.formatter.Format(r, err)
	for name, values := range resp.Headers {
		w.Header()[name] = values
	}
	w.Header().Set("Content-Type", resp.ContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(resp.Status)

	if r.Method == http.MethodHead {
		return
	}
	if encErr := json.NewEncoder(w).Encode(resp.Body); encErr != nil {
		h.logger.WarnContext(r.Context(), "problem encoding failed", "error", encErr)
	}
}

func (h *Handler) recover(w *trackingWriter, r *http.Request) {
	rec := recover()
	if rec == nil {
		return
	}
	if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value
		panic(rec)
	}

	attrs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"panic", fmt.Sprint(rec),
	}
	if h.stackTrace {
		stack := debug.Stack()
		if len(stack) > h.stackSize {
			stack = stack[:h.stackSize]
		}
		attrs = append(attrs, "stack", string(stack))
	}
	h.logger.ErrorContext(r.Context(), "panic recovered", attrs...)

	if w.wroteHeader {
		return
	}
	err, ok := rec.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", rec)
	}
	h.writeProblem(w, r, riverrors.WithStatus(errors.Join(errPanic, err), http.StatusInternalServerError))
}

var errPanic = errors.New("handler panicked")

// trackingWriter remembers whether the status line was sent.
type trackingWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *trackingWriter) WriteHeader(status int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *trackingWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *trackingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
