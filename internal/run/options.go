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

package run

import (
	"log/slog"
	"runtime"

	"fillmore-labs.com/fixpoint/internal/config"
	"fillmore-labs.com/fixpoint/internal/escalation"
)

// Options represent the configuration of the fixpoint analyzer.
type Options struct {
	// Behavior holds reporting options.
	Behavior config.Flags

	// MaxLevel caps the break-delay ladder.
	MaxLevel escalation.Level

	// Workers is the number of concurrent evaluations per round.
	Workers int

	// Logger receives round and escalation events, nil discards them.
	Logger *slog.Logger
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Behavior: config.DefaultFlags(),
		MaxLevel: escalation.MethodOverride,
		Workers:  runtime.GOMAXPROCS(0),
	}
}
