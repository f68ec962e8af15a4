// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package analyzer

import (
	"log/slog"

	"fillmore-labs.com/fixpoint/internal/config"
	"fillmore-labs.com/fixpoint/internal/escalation"
	"fillmore-labs.com/fixpoint/internal/run"
)

// Option configures specific behavior of a [New] fixpoint analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option {
	return behaviorOption{"generated", config.IncludeGenerated, generated}
}

// WithImmutable is an [Option] to report immutable types.
func WithImmutable(immutable bool) Option {
	return behaviorOption{"immutable", config.ReportImmutable, immutable}
}

// WithModifying is an [Option] to report methods modifying their receiver.
func WithModifying(modifying bool) Option {
	return behaviorOption{"modifying", config.ReportModifying, modifying}
}

// WithApproximate is an [Option] to include results of forced resolution in the reports.
func WithApproximate(approximate bool) Option {
	return behaviorOption{"approximate", config.ReportApproximate, approximate}
}

type behaviorOption struct {
	name  string
	flag  config.Behavior
	value bool
}

func (o behaviorOption) apply(r *run.Options) {
	r.Behavior.Set(o.flag, o.value)
}

func (o behaviorOption) LogAttr() slog.Attr {
	return slog.Bool(o.name, o.value)
}

// WithMaxLevel is an [Option] capping the break-delay ladder.
// Cycles that need a higher level are reported as undetermined.
func WithMaxLevel(level escalation.Level) Option { return maxLevelOption{level: level} }

type maxLevelOption struct{ level escalation.Level }

func (o maxLevelOption) apply(r *run.Options) {
	r.MaxLevel = o.level
}

func (o maxLevelOption) LogAttr() slog.Attr {
	return slog.String("max-level", o.level.String())
}

// WithWorkers is an [Option] to configure the number of concurrent evaluations.
func WithWorkers(workers int) Option { return workersOption{workers: workers} }

type workersOption struct{ workers int }

func (o workersOption) apply(r *run.Options) {
	r.Workers = o.workers
}

func (o workersOption) LogAttr() slog.Attr {
	return slog.Int("workers", o.workers)
}

// WithLogger is an [Option] to receive round and escalation events at debug level.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(r *run.Options) {
	r.Logger = o.logger
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}
