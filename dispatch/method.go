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
	"net/http"
	"strings"
)

// Method is an upper-case request method name.
type Method string

// Methods with built-in handling.
const (
	MethodGet     Method = http.MethodGet
	MethodHead    Method = http.MethodHead
	MethodPost    Method = http.MethodPost
	MethodPut     Method = http.MethodPut
	MethodDelete  Method = http.MethodDelete
	MethodOptions Method = http.MethodOptions
)

// standardMethods is also the order of the allowed-method set.
var standardMethods = []Method{
	MethodGet,
	MethodHead,
	MethodPost,
	MethodPut,
	MethodDelete,
	MethodOptions,
}

// ParseMethod normalizes a method token. Method names are matched
// case-insensitively.
func ParseMethod(s string) Method {
	return Method(strings.ToUpper(strings.TrimSpace(s)))
}

// IsStandard reports whether m has built-in handling.
func (m Method) IsStandard() bool {
	for _, s := range standardMethods {
		if s == m {
			return true
		}
	}
	return false
}

// CheckName is the name of the capability check for m, e.g. "allowGet"
// or "allowPropfind". It is used in diagnostics.
func (m Method) CheckName() string {
	return "allow" + capitalize(string(m))
}

// HandlerName is the name of the handler for m, e.g. "handlePropfind".
func (m Method) HandlerName() string {
	return "handle" + capitalize(string(m))
}

// String returns the method token.
func (m Method) String() string {
	return string(m)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
