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

package representation

import (
	"fmt"
	"strings"
)

// Wildcard is the value matching any main type, sub type or language.
const Wildcard = "*"

// Param is a single media type parameter such as charset=utf-8.
type Param struct {
	Name  string
	Value string
}

// MediaType is a main/sub type pair with ordered parameters.
// Main and Sub are always lower case.
type MediaType struct {
	Main   string
	Sub    string
	Params []Param
}

// Well-known media types.
var (
	All             = MediaType{Main: Wildcard, Sub: Wildcard}
	TextHTML        = MediaType{Main: "text", Sub: "html"}
	TextPlain       = MediaType{Main: "text", Sub: "plain"}
	TextURIList     = MediaType{Main: "text", Sub: "uri-list"}
	ApplicationJSON = MediaType{Main: "application", Sub: "json"}
	ApplicationXML  = MediaType{Main: "application", Sub: "xml"}
)

// NewMediaType builds a media type from its parts, lower-casing main and sub.
func NewMediaType(main, sub string, params ...Param) MediaType {
	return MediaType{
		Main:   strings.ToLower(main),
		Sub:    strings.ToLower(sub),
		Params: params,
	}
}

// ParseMediaType parses a media type such as "text/html; level=1".
// A "q" parameter is kept like any other; callers parsing Accept headers
// are expected to strip it.
func ParseMediaType(s string) (MediaType, error) {
	start, end := trimWhitespace(s)
	if start >= end {
		return MediaType{}, ErrEmptyMediaType
	}

	semicolon := strings.IndexByte(s[start:end], ';')
	value := s[start:end]
	if semicolon != -1 {
		value = s[start : start+semicolon]
	}

	slash := strings.IndexByte(value, '/')
	if slash <= 0 {
		return MediaType{}, fmt.Errorf("%w: %q", ErrInvalidMediaType, s)
	}

	mainStart, mainEnd := trimWhitespace(value[:slash])
	subStart, subEnd := trimWhitespace(value[slash+1:])
	mt := MediaType{
		Main: strings.ToLower(value[mainStart:mainEnd]),
		Sub:  strings.ToLower(value[slash+1+subStart : slash+1+subEnd]),
	}
	if mt.Main == "" || mt.Sub == "" {
		return MediaType{}, fmt.Errorf("%w: %q", ErrInvalidMediaType, s)
	}

	if semicolon == -1 {
		return mt, nil
	}

	rest := s[start+semicolon+1 : end]
	paramStart := 0
	for i := 0; i <= len(rest); i++ {
		if i == len(rest) || rest[i] == ';' {
			if p, ok := parseParam(rest[paramStart:i]); ok {
				mt.Params = append(mt.Params, p)
			}
			paramStart = i + 1
		}
	}

	return mt, nil
}

// MustParseMediaType is like ParseMediaType but panics on error.
func MustParseMediaType(s string) MediaType {
	mt, err := ParseMediaType(s)
	if err != nil {
		panic(err)
	}
	return mt
}

// parseParam parses a single name=value pair. Names are lower-cased and
// quoted values are unquoted.
func parseParam(param string) (Param, bool) {
	start, end := trimWhitespace(param)
	if start >= end {
		return Param{}, false
	}

	equals := strings.IndexByte(param[start:end], '=')
	if equals <= 0 {
		return Param{}, false
	}
	equals += start

	keyStart, keyEnd := trimWhitespace(param[start:equals])
	key := param[start+keyStart : start+keyEnd]
	if key == "" {
		return Param{}, false
	}

	valStart, valEnd := trimWhitespace(param[equals+1 : end])
	value := param[equals+1+valStart : equals+1+valEnd]
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = value[1 : len(value)-1]
	}

	return Param{Name: strings.ToLower(key), Value: value}, true
}

// Param returns the value of the named parameter.
func (m MediaType) Param(name string) (string, bool) {
	for _, p := range m.Params {
		if strings.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return "", false
}

// IsWildcard reports whether the main or sub type is "*".
func (m MediaType) IsWildcard() bool {
	return m.Main == Wildcard || m.Sub == Wildcard
}

// Equal reports whether both media types have the same main and sub type,
// ignoring parameters.
func (m MediaType) Equal(other MediaType) bool {
	return m.Main == other.Main && m.Sub == other.Sub
}

// String formats the media type as it would appear in a Content-Type header.
func (m MediaType) String() string {
	if m.Main == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.Main)
	b.WriteByte('/')
	b.WriteString(m.Sub)
	for _, p := range m.Params {
		b.WriteString("; ")
		b.WriteString(p.Name)
		b.WriteByte('=')
		if needsQuoting(p.Value) {
			b.WriteByte('"')
			b.WriteString(p.Value)
			b.WriteByte('"')
		} else {
			b.WriteString(p.Value)
		}
	}
	return b.String()
}

func needsQuoting(v string) bool {
	if v == "" {
		return true
	}
	return strings.ContainsAny(v, " \t\"(),/:;<=>?@[\\]{}")
}

// trimWhitespace returns start and end indices of non-whitespace content.
func trimWhitespace(s string) (start, end int) {
	for start < len(s) && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	end = len(s)
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return start, end
}
