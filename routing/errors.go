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

package routing

import "errors"

var (
	// ErrUnbalancedBrace indicates a template with a "{" or "}" that has no partner.
	ErrUnbalancedBrace = errors.New("unbalanced brace in template")

	// ErrEmptyVariable indicates a "{}" variable without a name.
	ErrEmptyVariable = errors.New("template variable has no name")

	// ErrUnknownVariableKind indicates a "{name:kind}" variable with an unsupported kind.
	ErrUnknownVariableKind = errors.New("unknown template variable kind")

	// ErrDuplicateVariable indicates a variable name declared twice in one template.
	ErrDuplicateVariable = errors.New("duplicate template variable")

	// ErrRouterFrozen indicates that routes cannot be attached after the router was first used.
	ErrRouterFrozen = errors.New("cannot attach routes after first use")

	// ErrInvalidRequiredScore indicates a required score outside [0, 1].
	ErrInvalidRequiredScore = errors.New("required score must be within [0, 1]")

	// ErrUnknownMode indicates an unsupported routing mode name.
	ErrUnknownMode = errors.New("unknown routing mode")
)
