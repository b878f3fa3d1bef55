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
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/cast"
)

const defaultTag = "config"

// Config holds merged settings and optionally keeps a struct in sync with
// them. It is safe for concurrent use.
type Config struct {
	mu      sync.RWMutex
	values  map[string]any
	sources []Source
	binding any
	tagName string

	schema   *jsonschema.Schema
	checks   []func(map[string]any) error
	validate *validator.Validate
}

// New applies options in order and returns every option error joined.
// The returned Config is usable even when err is non-nil.
func New(opts ...Option) (*Config, error) {
	c := &Config{
		values:  map[string]any{},
		tagName: defaultTag,
	}

	var errs error
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		errs = errors.Join(errs, opt(c))
	}

	if c.validate == nil {
		c.validate = newStructValidator(c.tagName)
	}
	return c, errs //nolint:nilnil // partial config is returned alongside option errors
}

// MustNew is New that panics on option errors.
func MustNew(opts ...Option) *Config {
	c, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return c
}

// newStructValidator reports field names by their settings key rather than
// the Go field name.
func newStructValidator(tag string) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// Load reads every source, merges them, validates the result and, when a
// binding is configured, decodes it into the bound struct. State only
// changes when every step succeeds.
func (c *Config) Load(ctx context.Context) error {
	if ctx == nil {
		return errors.New("config: nil context")
	}

	merged, err := c.merge(ctx)
	if err != nil {
		return err
	}

	if c.schema != nil {
		if err = c.schema.Validate(merged); err != nil {
			return NewError("json-schema", "validate", err)
		}
	}

	for i, check := range c.checks {
		if err = runCheck(check, merged); err != nil {
			return NewError(fmt.Sprintf("validator[%d]", i), "validate", err)
		}
	}

	var bound reflect.Value
	if c.binding != nil {
		if bound, err = c.decode(merged); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = merged
	if bound.IsValid() {
		reflect.ValueOf(c.binding).Elem().Set(bound)
	}
	return nil
}

// MustLoad is Load that panics on error.
func (c *Config) MustLoad(ctx context.Context) {
	if err := c.Load(ctx); err != nil {
		panic(err)
	}
}

func (c *Config) merge(ctx context.Context) (map[string]any, error) {
	merged := map[string]any{}
	for i, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		layer, err := src.Load(ctx)
		if err != nil {
			return nil, NewError(sourceName(i, src), "load", err)
		}
		if len(layer) == 0 {
			continue
		}

		if err = mergo.Merge(&merged, lowerKeys(layer), mergo.WithOverride); err != nil {
			return nil, NewError(sourceName(i, src), "merge", err)
		}
	}
	return merged, nil
}

func sourceName(i int, src Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("source[%d]", i)
}

func runCheck(check func(map[string]any) error, values map[string]any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validator panic: %v", r)
		}
	}()
	return check(values)
}

// lowerKeys copies m with every key lower-cased, recursing into nested
// maps.
func lowerKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch nested := v.(type) {
		case map[string]any:
			v = lowerKeys(nested)
		case map[any]any:
			v = lowerKeys(cast.ToStringMap(nested))
		}
		out[strings.ToLower(k)] = v
	}
	return out
}

// decode builds a fresh value of the bound type: defaults first, then the
// merged settings, then validation.
func (c *Config) decode(values map[string]any) (reflect.Value, error) {
	target := reflect.New(reflect.TypeOf(c.binding).Elem())

	if err := applyDefaults(target.Elem()); err != nil {
		return reflect.Value{}, NewError("binding", "defaults", err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          c.tagName,
		Squash:           true,
		WeaklyTypedInput: true,
		Result:           target.Interface(),
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return reflect.Value{}, NewError("binding", "bind", err)
	}
	if err = dec.Decode(values); err != nil {
		return reflect.Value{}, NewError("binding", "bind", err)
	}

	if err = c.validate.Struct(target.Interface()); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return reflect.Value{}, NewFieldError("binding", fieldKey(fieldErrs[0]), "validate", err)
		}
		return reflect.Value{}, NewError("binding", "validate", err)
	}

	if v, ok := target.Interface().(Validator); ok {
		if err = v.Validate(); err != nil {
			return reflect.Value{}, NewError("binding", "validate", err)
		}
	}
	return target.Elem(), nil
}

// fieldKey turns "Settings.routing.required_score" into
// "routing.required_score".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

// Values returns a copy of the top level of the merged settings.
func (c *Config) Values() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// lookup resolves a dotted, case-insensitive key.
func (c *Config) lookup(key string) any {
	if c == nil || key == "" {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	key = strings.ToLower(key)
	if v, ok := c.values[key]; ok {
		return v
	}

	node := c.values
	segments := strings.Split(key, ".")
	for i, seg := range segments {
		v, ok := node[seg]
		if !ok {
			return nil
		}
		if i == len(segments)-1 {
			return v
		}
		if node, ok = v.(map[string]any); !ok {
			return nil
		}
	}
	return nil
}

// Get returns the raw value at key, or nil.
func (c *Config) Get(key string) any { return c.lookup(key) }

// String returns the value at key as a string.
func (c *Config) String(key string) string { return cast.ToString(c.lookup(key)) }

// Bool returns the value at key as a bool.
func (c *Config) Bool(key string) bool { return cast.ToBool(c.lookup(key)) }

// Int returns the value at key as an int.
func (c *Config) Int(key string) int { return cast.ToInt(c.lookup(key)) }

// Float64 returns the value at key as a float64.
func (c *Config) Float64(key string) float64 { return cast.ToFloat64(c.lookup(key)) }

// Duration returns the value at key as a duration. Bare numbers are
// nanoseconds.
func (c *Config) Duration(key string) time.Duration { return cast.ToDuration(c.lookup(key)) }

// StringSlice returns the value at key as a string slice.
func (c *Config) StringSlice(key string) []string { return cast.ToStringSlice(c.lookup(key)) }

// StringOr returns the value at key, or def when the key is missing.
func (c *Config) StringOr(key, def string) string { return GetOr(c, key, def) }

// BoolOr returns the value at key, or def when the key is missing.
func (c *Config) BoolOr(key string, def bool) bool { return GetOr(c, key, def) }

// DurationOr returns the value at key, or def when the key is missing.
func (c *Config) DurationOr(key string, def time.Duration) time.Duration {
	return GetOr(c, key, def)
}
