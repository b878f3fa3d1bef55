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

import (
	"fmt"
	"regexp"
	"strings"
)

// VariableKind restricts the characters a template variable accepts.
type VariableKind uint8

const (
	// KindSegment matches one path segment. It is the default.
	KindSegment VariableKind = iota
	// KindDigit matches one or more decimal digits.
	KindDigit
	// KindAlpha matches ASCII letters.
	KindAlpha
	// KindAlnum matches ASCII letters and digits.
	KindAlnum
	// KindWord matches letters, digits and underscores.
	KindWord
	// KindUUID matches an RFC 4122 UUID.
	KindUUID
	// KindDate matches an RFC 3339 full-date.
	KindDate
	// KindAll matches anything, including slashes.
	KindAll
)

var kindNames = map[string]VariableKind{
	"segment": KindSegment,
	"digit":   KindDigit,
	"int":     KindDigit,
	"alpha":   KindAlpha,
	"alnum":   KindAlnum,
	"word":    KindWord,
	"uuid":    KindUUID,
	"date":    KindDate,
	"all":     KindAll,
}

func (k VariableKind) pattern() string {
	switch k {
	case KindDigit:
		return `\d+`
	case KindAlpha:
		return `[A-Za-z]+`
	case KindAlnum:
		return `[A-Za-z0-9]+`
	case KindWord:
		return `\w+`
	case KindUUID:
		return `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}`
	case KindDate:
		return `\d{4}-\d{2}-\d{2}`
	case KindAll:
		return `.*`
	default:
		return `[^/?#]+`
	}
}

// String returns the name used in templates, e.g. "digit".
func (k VariableKind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindAlpha:
		return "alpha"
	case KindAlnum:
		return "alnum"
	case KindWord:
		return "word"
	case KindUUID:
		return "uuid"
	case KindDate:
		return "date"
	case KindAll:
		return "all"
	default:
		return "segment"
	}
}

// MatchMode controls whether a template must consume the whole path.
type MatchMode uint8

const (
	// MatchStartsWith matches a prefix of the path. Unconsumed characters
	// are left for nested routers.
	MatchStartsWith MatchMode = iota
	// MatchEquals matches only when the whole path is consumed.
	MatchEquals
)

// Variable is a named capture declared in a template.
type Variable struct {
	Name string
	Kind VariableKind
}

// Template is a compiled URI template such as "/users/{id}" or
// "/files/{path:all}". It is immutable and safe for concurrent use.
type Template struct {
	pattern   string
	mode      MatchMode
	variables []Variable
	re        *regexp.Regexp
}

// TemplateOption configures template compilation.
type TemplateOption func(*Template)

// WithMatchMode sets how much of the path a template must consume.
func WithMatchMode(mode MatchMode) TemplateOption {
	return func(t *Template) {
		t.mode = mode
	}
}

// Compile parses a template. Literal text is matched verbatim; variables
// are written "{name}" or "{name:kind}" where kind is one of segment,
// digit (or int), alpha, alnum, word, uuid, date or all.
func Compile(pattern string, opts ...TemplateOption) (*Template, error) {
	t := &Template{pattern: pattern}
	for _, opt := range opts {
		opt(t)
	}

	var expr strings.Builder
	expr.WriteString("^")

	seen := make(map[string]struct{})
	rest := pattern
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if open == -1 {
			if strings.IndexByte(rest, '}') != -1 {
				return nil, fmt.Errorf("%w: %q", ErrUnbalancedBrace, pattern)
			}
			expr.WriteString(regexp.QuoteMeta(rest))
			break
		}
		if strings.IndexByte(rest[:open], '}') != -1 {
			return nil, fmt.Errorf("%w: %q", ErrUnbalancedBrace, pattern)
		}
		expr.WriteString(regexp.QuoteMeta(rest[:open]))

		end := strings.IndexByte(rest[open:], '}')
		if end == -1 {
			return nil, fmt.Errorf("%w: %q", ErrUnbalancedBrace, pattern)
		}
		v, err := parseVariable(rest[open+1 : open+end])
		if err != nil {
			return nil, fmt.Errorf("%w in %q", err, pattern)
		}
		if _, dup := seen[v.Name]; dup {
			return nil, fmt.Errorf("%w: %q in %q", ErrDuplicateVariable, v.Name, pattern)
		}
		seen[v.Name] = struct{}{}
		t.variables = append(t.variables, v)

		expr.WriteString("(")
		expr.WriteString(v.Kind.pattern())
		expr.WriteString(")")
		rest = rest[open+end+1:]
	}

	if t.mode == MatchEquals {
		expr.WriteString("$")
	}

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("compile template %q: %w", pattern, err)
	}
	t.re = re

	return t, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string, opts ...TemplateOption) *Template {
	t, err := Compile(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

func parseVariable(decl string) (Variable, error) {
	name, kindName, hasKind := strings.Cut(decl, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return Variable{}, ErrEmptyVariable
	}
	if !hasKind {
		return Variable{Name: name, Kind: KindSegment}, nil
	}

	kind, ok := kindNames[strings.ToLower(strings.TrimSpace(kindName))]
	if !ok {
		return Variable{}, fmt.Errorf("%w: %q", ErrUnknownVariableKind, kindName)
	}
	return Variable{Name: name, Kind: kind}, nil
}

// Pattern returns the source text of the template.
func (t *Template) Pattern() string {
	return t.pattern
}

// Mode returns the match mode.
func (t *Template) Mode() MatchMode {
	return t.mode
}

// Variables returns the declared variables in order.
func (t *Template) Variables() []Variable {
	out := make([]Variable, len(t.variables))
	copy(out, t.variables)
	return out
}

// Match returns the number of leading characters of path consumed by the
// template, or -1 if it does not match.
func (t *Template) Match(path string) int {
	loc := t.re.FindStringIndex(path)
	if loc == nil {
		return -1
	}
	return loc[1]
}

// Parse matches path and returns the variable values with the matched
// length. The map is nil and the length -1 when the template does not match.
func (t *Template) Parse(path string) (map[string]string, int) {
	loc := t.re.FindStringSubmatchIndex(path)
	if loc == nil {
		return nil, -1
	}

	values := make(map[string]string, len(t.variables))
	for i, v := range t.variables {
		start, end := loc[2*(i+1)], loc[2*(i+1)+1]
		if start >= 0 {
			values[v.Name] = path[start:end]
		}
	}
	return values, loc[1]
}

// String returns the template pattern.
func (t *Template) String() string {
	return t.pattern
}
