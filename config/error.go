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

package config

import "fmt"

// Error reports which stage of loading failed.
type Error struct {
	// Source is the stage, such as "file:app.yaml", "json-schema" or "binding".
	Source string
	// Field is the offending key, when known.
	Field string
	// Operation is what the stage was doing: load, merge, validate or bind.
	Operation string
	Err       error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config: %s %s (%s): %v", e.Operation, e.Source, e.Field, e.Err)
	}
	return fmt.Sprintf("config: %s %s: %v", e.Operation, e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an Error without a field.
func NewError(source, operation string, err error) *Error {
	return &Error{Source: source, Operation: operation, Err: err}
}

// NewFieldError builds an Error for a single key.
func NewFieldError(source, field, operation string, err error) *Error {
	return &Error{Source: source, Field: field, Operation: operation, Err: err}
}
