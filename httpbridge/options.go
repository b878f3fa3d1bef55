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
	"log/slog"

	riverrors "rivaas.dev/resource/errors"
)

const defaultStackSize = 4 << 10

// Option configures a Handler.
type Option func(*Handler)

// WithFormatter replaces the problem formatter.
func WithFormatter(f riverrors.Formatter) Option {
	return func(h *Handler) {
		if f != nil {
			h.formatter = f
		}
	}
}

// WithLogger sets the logger for target failures and recovered panics.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithStackTrace controls whether recovered panics log a stack trace.
// Default: true.
func WithStackTrace(enabled bool) Option {
	return func(h *Handler) {
		h.stackTrace = enabled
	}
}

// WithStackSize caps the logged stack trace in bytes. Default: 4KB.
func WithStackSize(size int) Option {
	return func(h *Handler) {
		if size > 0 {
			h.stackSize = size
		}
	}
}

// WithIdleStatus sets the status sent while the dispatcher is stopped.
// Default: 503.
func WithIdleStatus(status int) Option {
	return func(h *Handler) {
		h.idleStatus = status
	}
}
