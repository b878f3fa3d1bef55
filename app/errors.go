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

import "errors"

var (
	// ErrHooksFrozen is returned when a hook is registered after Start.
	ErrHooksFrozen = errors.New("app: hooks cannot be registered after start")
	// ErrAlreadyStarted is returned by Start on a running App.
	ErrAlreadyStarted = errors.New("app: already started")
	// ErrMetricsDisabled is returned by MetricsHandler when no recorder is
	// configured or the provider does not expose a scrape endpoint.
	ErrMetricsDisabled = errors.New("app: metrics endpoint not available")
)
