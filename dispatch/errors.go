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
	"errors"
	"fmt"
)

var (
	// ErrNoResolver indicates that a dispatcher was created without a resolver.
	ErrNoResolver = errors.New("dispatcher requires a resolver")

	// ErrCapabilityAbsent indicates that a target has no handler for a method.
	ErrCapabilityAbsent = errors.New("capability absent")
)

// TargetError wraps a failure raised by a target while resolving, listing
// variants or running an operation. The dispatcher never maps these to an
// outcome; the caller turns them into a server error.
type TargetError struct {
	Method Method
	Op     string
	Err    error
}

// Error implements the error interface.
func (e *TargetError) Error() string {
	return fmt.Sprintf("dispatch %s: %s: %v", e.Method, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TargetError) Unwrap() error {
	return e.Err
}
