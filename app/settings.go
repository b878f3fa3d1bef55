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

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rivaas.dev/resource/config"
	"rivaas.dev/resource/dispatch"
	"rivaas.dev/resource/logging"
	"rivaas.dev/resource/metrics"
	"rivaas.dev/resource/representation"
	"rivaas.dev/resource/routing"
	"rivaas.dev/resource/tracing"
)

// EnvPrefix is the environment prefix read by [LoadSettings] callers that
// pass config.WithEnv(EnvPrefix).
const EnvPrefix = "RESOURCE_"

// metricsDisabled turns the recorder off in [MetricsSettings.Provider].
const metricsDisabled = "none"

// Settings is the bound configuration of an App.
type Settings struct {
	Service          string          `config:"service" default:"rivaas-resource" validate:"required"`
	NegotiateContent bool            `config:"negotiate_content" default:"true"`
	DefaultLanguage  string          `config:"default_language"`
	Routing          RoutingSettings `config:"routing"`
	Logging          LoggingSettings `config:"logging"`
	Metrics          MetricsSettings `config:"metrics"`
	Tracing          TracingSettings `config:"tracing"`
	Server           ServerSettings  `config:"server"`
}

// RoutingSettings configures the route table.
type RoutingSettings struct {
	RequiredScore float64 `config:"required_score" default:"0.5" validate:"gte=0,lte=1"`
	Mode          string  `config:"mode" default:"first" validate:"oneof=first best last"`
}

// LoggingSettings configures the structured logger.
type LoggingSettings struct {
	Level  string `config:"level" default:"info"`
	Format string `config:"format" default:"json" validate:"oneof=json text"`
}

// MetricsSettings configures the dispatch recorder. Provider "none"
// disables it.
type MetricsSettings struct {
	Provider string `config:"provider" default:"prometheus" validate:"oneof=prometheus otlp stdout none"`
	Endpoint string `config:"endpoint"`
	Path     string `config:"path" default:"/metrics" validate:"startswith=/"`
}

// TracingSettings configures span export.
type TracingSettings struct {
	Provider   string  `config:"provider" default:"noop" validate:"oneof=noop stdout otlp"`
	Endpoint   string  `config:"endpoint"`
	SampleRate float64 `config:"sample_rate" default:"1" validate:"gte=0,lte=1"`
}

// ServerSettings configures the listener.
type ServerSettings struct {
	Address         string        `config:"address" default:":8080" validate:"required"`
	ShutdownTimeout time.Duration `config:"shutdown_timeout" default:"10s" validate:"gt=0"`
}

// Validate checks the values struct tags cannot express.
func (s Settings) Validate() error {
	if s.DefaultLanguage != "" {
		if _, err := representation.ParseLanguage(s.DefaultLanguage); err != nil {
			return fmt.Errorf("default_language: %w", err)
		}
	}
	if _, err := logging.ParseLevel(s.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// settingsSchema guards the enumerated keys before binding so a bad value
// is reported against the raw document.
var settingsSchema = []byte(`{
  "type": "object",
  "properties": {
    "routing": {
      "type": "object",
      "properties": {
        "mode": {"enum": ["first", "best", "last"]}
      }
    },
    "logging": {
      "type": "object",
      "properties": {
        "format": {"enum": ["json", "text"]}
      }
    },
    "metrics": {
      "type": "object",
      "properties": {
        "provider": {"enum": ["prometheus", "otlp", "stdout", "none"]}
      }
    },
    "tracing": {
      "type": "object",
      "properties": {
        "provider": {"enum": ["noop", "stdout", "otlp"]}
      }
    }
  }
}`)

// LoadSettings reads settings from the given sources, later sources
// overriding earlier ones. Without sources every field takes its default.
//
//	s, err := app.LoadSettings(ctx,
//	    config.WithFile("resource.yaml"),
//	    config.WithEnv(app.EnvPrefix),
//	)
func LoadSettings(ctx context.Context, sources ...config.Option) (Settings, error) {
	var s Settings
	opts := append([]config.Option{
		config.WithJSONSchema(settingsSchema),
		config.WithBinding(&s),
	}, sources...)

	cfg, err := config.New(opts...)
	if err != nil {
		return Settings{}, err
	}
	if err = cfg.Load(ctx); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	s, err := LoadSettings(context.Background())
	if err != nil {
		panic(fmt.Sprintf("app: default settings: %v", err))
	}
	return s
}

// Options translates the settings into App options.
func (s Settings) Options() ([]Option, error) {
	level, err := logging.ParseLevel(s.Logging.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseHandlerType(s.Logging.Format)
	if err != nil {
		return nil, err
	}
	mode, err := routing.ParseMode(s.Routing.Mode)
	if err != nil {
		return nil, err
	}

	dispatchOpts := []dispatch.Option{dispatch.WithNegotiateContent(s.NegotiateContent)}
	if s.DefaultLanguage != "" {
		lang, err := representation.ParseLanguage(s.DefaultLanguage)
		if err != nil {
			return nil, err
		}
		dispatchOpts = append(dispatchOpts, dispatch.WithDefaultLanguage(lang))
	}

	opts := []Option{
		WithLoggingOptions(
			logging.WithLevel(level),
			logging.WithHandlerType(format),
			logging.WithServiceName(s.Service),
		),
		WithRouterOptions(
			routing.WithRequiredScore(s.Routing.RequiredScore),
			routing.WithMode(mode),
		),
		WithDispatchOptions(dispatchOpts...),
		WithAddress(s.Server.Address),
		WithShutdownTimeout(s.Server.ShutdownTimeout),
	}

	metricOpts, err := s.Metrics.options(s.Service)
	if err != nil {
		return nil, err
	}
	if metricOpts == nil {
		opts = append(opts, WithoutMetrics())
	} else {
		opts = append(opts, WithMetricsOptions(metricOpts...))
	}
	if s.Metrics.Path != "" {
		opts = append(opts, WithMetricsPath(s.Metrics.Path))
	}

	traceOpts, err := s.Tracing.options(s.Service)
	if err != nil {
		return nil, err
	}
	return append(opts, WithTracingOptions(traceOpts...)), nil
}

// options returns nil when metrics are disabled.
func (m MetricsSettings) options(service string) ([]metrics.Option, error) {
	if strings.EqualFold(strings.TrimSpace(m.Provider), metricsDisabled) {
		return nil, nil
	}
	p, err := metrics.ParseProvider(m.Provider)
	if err != nil {
		return nil, err
	}
	opts := []metrics.Option{metrics.WithServiceName(service)}
	if p == metrics.OTLPProvider {
		return append(opts, metrics.WithOTLP(m.Endpoint)), nil
	}
	return append(opts, metrics.WithProvider(p)), nil
}

func (t TracingSettings) options(service string) ([]tracing.Option, error) {
	p, err := tracing.ParseProvider(t.Provider)
	if err != nil {
		return nil, err
	}
	opts := []tracing.Option{
		tracing.WithServiceName(service),
		tracing.WithSampleRate(t.SampleRate),
	}
	if p == tracing.OTLPProvider {
		return append(opts, tracing.WithOTLP(t.Endpoint)), nil
	}
	return append(opts, tracing.WithProvider(p)), nil
}
