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

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"rivaas.dev/resource/config/codec"
	"rivaas.dev/resource/config/source"
)

var (
	// ErrNilSource is returned by WithSource for a nil source.
	ErrNilSource = errors.New("config: source cannot be nil")
	// ErrInvalidBinding is returned when the binding target is not a
	// non-nil pointer to a struct.
	ErrInvalidBinding = errors.New("config: binding target must be a non-nil pointer to a struct")
	// ErrEmptyTag is returned by WithTag for an empty tag name.
	ErrEmptyTag = errors.New("config: tag name cannot be empty")
)

// Option configures a Config.
type Option func(c *Config) error

// WithSource appends a custom source.
func WithSource(s Source) Option {
	return func(c *Config) error {
		if s == nil {
			return ErrNilSource
		}
		c.sources = append(c.sources, s)
		return nil
	}
}

// WithFile reads a document whose format is detected from the extension.
// Environment references in path are expanded.
func WithFile(path string) Option {
	return func(c *Config) error {
		path = os.ExpandEnv(path)
		t, err := detectFormat(path)
		if err != nil {
			return NewError("file:"+path, "detect-format", err)
		}
		return WithFileAs(path, t)(c)
	}
}

// WithFileAs reads a document in an explicit format.
func WithFileAs(path string, t codec.Type) Option {
	return func(c *Config) error {
		path = os.ExpandEnv(path)
		dec, err := codec.Lookup(t)
		if err != nil {
			return NewError("file:"+path, "get-decoder", err)
		}
		c.sources = append(c.sources, source.NewFile(path, dec))
		return nil
	}
}

// WithContent decodes an in-memory document.
func WithContent(data []byte, t codec.Type) Option {
	return func(c *Config) error {
		dec, err := codec.Lookup(t)
		if err != nil {
			return NewError("content", "get-decoder", err)
		}
		c.sources = append(c.sources, source.NewContent(data, dec))
		return nil
	}
}

// WithEnv reads environment variables starting with prefix.
func WithEnv(prefix string) Option {
	return func(c *Config) error {
		c.sources = append(c.sources, source.NewEnv(prefix))
		return nil
	}
}

// WithBinding decodes the merged settings into v on every Load.
func WithBinding(v any) Option {
	return func(c *Config) error {
		rv := reflect.ValueOf(v)
		if v == nil || rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return ErrInvalidBinding
		}
		c.binding = v
		return nil
	}
}

// WithTag changes the struct tag used for binding. Defaults to "config".
func WithTag(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return ErrEmptyTag
		}
		c.tagName = name
		return nil
	}
}

var schemaSeq atomic.Uint64

// WithJSONSchema validates the merged settings against a JSON schema.
func WithJSONSchema(schema []byte) Option {
	return func(c *Config) error {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
		if err != nil {
			return NewError("json-schema", "parse", err)
		}

		name := fmt.Sprintf("settings-%d.json", schemaSeq.Add(1))
		compiler := jsonschema.NewCompiler()
		if err = compiler.AddResource(name, doc); err != nil {
			return NewError("json-schema", "compile", err)
		}
		compiled, err := compiler.Compile(name)
		if err != nil {
			return NewError("json-schema", "compile", err)
		}
		c.schema = compiled
		return nil
	}
}

// WithValidator adds a check over the merged settings map. Checks run
// after schema validation and before binding.
func WithValidator(fn func(map[string]any) error) Option {
	return func(c *Config) error {
		if fn != nil {
			c.checks = append(c.checks, fn)
		}
		return nil
	}
}

// WithStructValidator replaces the validator used for "validate" tags on
// the bound struct.
func WithStructValidator(v *validator.Validate) Option {
	return func(c *Config) error {
		if v != nil {
			c.validate = v
		}
		return nil
	}
}
