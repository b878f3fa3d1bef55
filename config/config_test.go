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
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/resource/config/codec"
	"rivaas.dev/resource/config/source"
)

type sourceFunc func(ctx context.Context) (map[string]any, error)

func (f sourceFunc) Load(ctx context.Context) (map[string]any, error) { return f(ctx) }

type routingSettings struct {
	Mode          string  `config:"mode" default:"first" validate:"oneof=first best last"`
	RequiredScore float64 `config:"required_score" default:"0.5" validate:"gte=0,lte=1"`
}

type testSettings struct {
	Negotiate bool            `config:"negotiate_content" default:"true"`
	Language  string          `config:"default_language"`
	Timeout   time.Duration   `config:"shutdown_timeout" default:"5s"`
	Tags      []string        `config:"tags"`
	Routing   routingSettings `config:"routing"`
}

type selfChecked struct {
	Name string `config:"name"`
}

func (s *selfChecked) Validate() error {
	if s.Name == "forbidden" {
		return errors.New("name is forbidden")
	}
	return nil
}

const baseYAML = `
negotiate_content: false
default_language: en
tags: a,b
routing:
  mode: best
  required_score: 0.8
`

func TestLoad_MergesAndBinds(t *testing.T) {
	t.Parallel()

	var s testSettings
	cfg, err := New(
		WithContent([]byte(baseYAML), codec.TypeYAML),
		WithSource(source.NewEnvFrom("APP_", []string{
			"APP_ROUTING__MODE=last",
			"APP_SHUTDOWN_TIMEOUT=30s",
			"OTHER_ROUTING__MODE=first",
		})),
		WithBinding(&s),
	)
	require.NoError(t, err)
	require.NoError(t, cfg.Load(context.Background()))

	assert.False(t, s.Negotiate, "explicit false must survive the default")
	assert.Equal(t, "en", s.Language)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Equal(t, []string{"a", "b"}, s.Tags)
	assert.Equal(t, "last", s.Routing.Mode)
	assert.InDelta(t, 0.8, s.Routing.RequiredScore, 1e-9)

	assert.Equal(t, "last", cfg.String("routing.mode"))
	assert.Equal(t, "last", cfg.String("ROUTING.Mode"))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	var s testSettings
	cfg := MustNew(WithBinding(&s))
	require.NoError(t, cfg.Load(context.Background()))

	assert.True(t, s.Negotiate)
	assert.Equal(t, 5*time.Second, s.Timeout)
	assert.Equal(t, "first", s.Routing.Mode)
	assert.InDelta(t, 0.5, s.Routing.RequiredScore, 1e-9)
	assert.Empty(t, cfg.Values())
}

func TestLoad_StructValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		field   string
		wantErr bool
	}{
		{name: "valid", doc: `{"routing":{"mode":"best"}}`},
		{name: "unknown mode", doc: `{"routing":{"mode":"random"}}`, field: "routing.mode", wantErr: true},
		{name: "score above one", doc: `{"routing":{"required_score":1.5}}`, field: "routing.required_score", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var s testSettings
			cfg := MustNew(WithContent([]byte(tt.doc), codec.TypeJSON), WithBinding(&s))
			err := cfg.Load(context.Background())
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			var cfgErr *Error
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "binding", cfgErr.Source)
			assert.Equal(t, "validate", cfgErr.Operation)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestLoad_SelfValidation(t *testing.T) {
	t.Parallel()

	var s selfChecked
	cfg := MustNew(WithContent([]byte(`name: forbidden`), codec.TypeYAML), WithBinding(&s))

	err := cfg.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is forbidden")
	assert.Empty(t, s.Name)
}

func TestLoad_FailureKeepsPreviousState(t *testing.T) {
	t.Parallel()

	var (
		s    testSettings
		mode atomic.Value
	)
	mode.Store("best")
	src := sourceFunc(func(context.Context) (map[string]any, error) {
		return map[string]any{"routing": map[string]any{"mode": mode.Load()}}, nil
	})

	cfg := MustNew(WithSource(src), WithBinding(&s))
	require.NoError(t, cfg.Load(context.Background()))
	require.Equal(t, "best", s.Routing.Mode)

	mode.Store("bogus")
	require.Error(t, cfg.Load(context.Background()))
	assert.Equal(t, "best", s.Routing.Mode)
	assert.Equal(t, "best", cfg.String("routing.mode"))
}

func TestLoad_JSONSchema(t *testing.T) {
	t.Parallel()

	schema := []byte(`{
		"type": "object",
		"properties": {
			"routing": {
				"type": "object",
				"properties": {"mode": {"enum": ["first", "best", "last"]}}
			}
		}
	}`)

	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{name: "accepted", doc: `{"routing":{"mode":"first"}}`},
		{name: "rejected", doc: `{"routing":{"mode":"other"}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := New(WithContent([]byte(tt.doc), codec.TypeJSON), WithJSONSchema(schema))
			require.NoError(t, err)

			err = cfg.Load(context.Background())
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var cfgErr *Error
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "json-schema", cfgErr.Source)
		})
	}
}

func TestLoad_CustomValidators(t *testing.T) {
	t.Parallel()

	t.Run("rejects", func(t *testing.T) {
		t.Parallel()
		cfg := MustNew(
			WithContent([]byte(`a: 1`), codec.TypeYAML),
			WithValidator(func(m map[string]any) error {
				if _, ok := m["b"]; !ok {
					return errors.New("b is required")
				}
				return nil
			}),
		)
		err := cfg.Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validator[0]")
		assert.Contains(t, err.Error(), "b is required")
	})

	t.Run("recovers panics", func(t *testing.T) {
		t.Parallel()
		cfg := MustNew(WithValidator(func(map[string]any) error { panic("boom") }))
		err := cfg.Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validator panic: boom")
	})
}

func TestLoad_SourceErrors(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	cfg := MustNew(WithFile(missing))

	err := cfg.Load(context.Background())
	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "file:"+missing, cfgErr.Source)
	assert.Equal(t, "load", cfgErr.Operation)
	require.ErrorIs(t, err, os.ErrNotExist)

	boom := errors.New("boom")
	cfg = MustNew(WithSource(sourceFunc(func(context.Context) (map[string]any, error) { return nil, boom })))
	err = cfg.Load(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "source[0]")
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := MustNew(WithContent([]byte(`a: 1`), codec.TypeYAML))
	require.ErrorIs(t, cfg.Load(ctx), context.Canceled)
}

func TestLoad_FileFormats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{
		"settings.yaml": "server:\n  address: \":8080\"\n",
		"settings.toml": "[server]\naddress = \":8080\"\n",
		"settings.json": `{"server":{"address":":8080"}}`,
		"settings.env":  "SERVER__ADDRESS=:8080\n",
	}

	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := MustNew(WithFile(path))
			require.NoError(t, cfg.Load(context.Background()))
			assert.Equal(t, ":8080", cfg.String("server.address"))
		})
	}
}

func TestNew_OptionErrors(t *testing.T) {
	t.Parallel()

	var n int
	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{name: "nil source", opt: WithSource(nil), want: ErrNilSource},
		{name: "binding not a pointer", opt: WithBinding(testSettings{}), want: ErrInvalidBinding},
		{name: "binding to non-struct", opt: WithBinding(&n), want: ErrInvalidBinding},
		{name: "binding nil pointer", opt: WithBinding((*testSettings)(nil)), want: ErrInvalidBinding},
		{name: "empty tag", opt: WithTag(""), want: ErrEmptyTag},
		{name: "unknown codec", opt: WithContent(nil, codec.Type("ini")), want: codec.ErrUnknownType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := New(tt.opt)
			require.ErrorIs(t, err, tt.want)
			assert.NotNil(t, cfg)
		})
	}

	t.Run("undetectable extension", func(t *testing.T) {
		t.Parallel()
		_, err := New(WithFile("settings.ini"))
		var cfgErr *Error
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "detect-format", cfgErr.Operation)
	})

	t.Run("bad schema", func(t *testing.T) {
		t.Parallel()
		_, err := New(WithJSONSchema([]byte(`{`)))
		require.Error(t, err)
	})

	t.Run("MustNew panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { MustNew(WithTag("")) })
	})
}

func TestWithTag(t *testing.T) {
	t.Parallel()

	var s struct {
		Address string `env:"addr"`
	}
	cfg := MustNew(WithContent([]byte(`addr: ":9000"`), codec.TypeYAML), WithTag("env"), WithBinding(&s))
	require.NoError(t, cfg.Load(context.Background()))
	assert.Equal(t, ":9000", s.Address)
}

func TestGetters(t *testing.T) {
	t.Parallel()

	cfg := MustNew(WithContent([]byte(`
server:
  address: ":8080"
  shutdown_timeout: 15s
negotiate_content: "true"
routing:
  required_score: 0.75
tags: [a, b]
"metrics.provider": stdout
`), codec.TypeYAML))
	require.NoError(t, cfg.Load(context.Background()))

	assert.Equal(t, ":8080", cfg.String("server.address"))
	assert.Equal(t, 15*time.Second, cfg.Duration("server.shutdown_timeout"))
	assert.True(t, cfg.Bool("negotiate_content"))
	assert.InDelta(t, 0.75, cfg.Float64("routing.required_score"), 1e-9)
	assert.Equal(t, []string{"a", "b"}, cfg.StringSlice("tags"))
	assert.Equal(t, "stdout", cfg.String("metrics.provider"), "literal dotted keys win")
	assert.Equal(t, 0, cfg.Int("missing"))
	assert.Nil(t, cfg.Get(""))
	assert.Nil(t, cfg.Get("server.address.port"))

	assert.Equal(t, "fallback", cfg.StringOr("server.host", "fallback"))
	assert.False(t, cfg.BoolOr("missing", false))
	assert.Equal(t, time.Minute, cfg.DurationOr("missing", time.Minute))

	assert.Equal(t, 15*time.Second, Get[time.Duration](cfg, "server.shutdown_timeout"))
	assert.InDelta(t, 0.75, GetOr(cfg, "routing.required_score", 0.5), 1e-9)
	assert.Equal(t, 3, GetOr(cfg, "routing.missing", 3))

	_, err := GetE[string](cfg, "nope")
	require.ErrorIs(t, err, ErrKeyNotFound)

	_, err = GetE[int](cfg, "server.address")
	require.Error(t, err)

	_, err = GetE[struct{}](cfg, "server")
	require.Error(t, err)

	var nilCfg *Config
	assert.Equal(t, "x", GetOr(nilCfg, "a", "x"))
}

func TestError(t *testing.T) {
	t.Parallel()

	inner := errors.New("bad value")
	e := NewFieldError("binding", "routing.mode", "validate", inner)
	assert.Equal(t, "config: validate binding (routing.mode): bad value", e.Error())
	require.ErrorIs(t, e, inner)

	e = NewError("file:a.yaml", "load", inner)
	assert.Equal(t, "config: load file:a.yaml: bad value", e.Error())
}
