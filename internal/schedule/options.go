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

package schedule

import (
	"log/slog"

	"fillmore-labs.com/fixpoint/internal/escalation"
)

// Option configures a [Scheduler].
type Option interface {
	apply(s *Scheduler)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

func (o Options) apply(s *Scheduler) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(s)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	as := make([]slog.Attr, 0, len(o))
	for _, opt := range o {
		if opt == nil {
			continue
		}

		as = append(as, opt.LogAttr())
	}

	return slog.Attr{Key: "options", Value: slog.GroupValue(as...)}
}

// WithWorkers is an [Option] setting the number of concurrent evaluations per round.
// Values below one evaluate sequentially.
func WithWorkers(workers int) Option { return workersOption{workers: workers} }

type workersOption struct{ workers int }

func (o workersOption) apply(s *Scheduler) { s.workers = max(o.workers, 1) }

func (o workersOption) LogAttr() slog.Attr { return slog.Int("workers", o.workers) }

// WithLogger is an [Option] setting the logger for round and escalation events.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(s *Scheduler) {
	if o.logger != nil {
		s.logger = o.logger
	}
}

func (o loggerOption) LogAttr() slog.Attr { return slog.Bool("logger", o.logger != nil) }

// WithMaxLevel is an [Option] capping the break-delay ladder.
func WithMaxLevel(level escalation.Level) Option { return maxLevelOption{level: level} }

type maxLevelOption struct{ level escalation.Level }

func (o maxLevelOption) apply(s *Scheduler) { s.policy = escalation.CappedAt(o.level) }

func (o maxLevelOption) LogAttr() slog.Attr { return slog.String("max-level", o.level.String()) }

// WithMaxRounds is an [Option] limiting the number of rounds, zero means no limit.
func WithMaxRounds(rounds int) Option { return maxRoundsOption{rounds: rounds} }

type maxRoundsOption struct{ rounds int }

func (o maxRoundsOption) apply(s *Scheduler) { s.maxRounds = max(o.rounds, 0) }

func (o maxRoundsOption) LogAttr() slog.Attr { return slog.Int("max-rounds", o.rounds) }
