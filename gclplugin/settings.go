// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package gclplugin

import (
	"fmt"

	"fillmore-labs.com/fixpoint/analyzer"
	"fillmore-labs.com/fixpoint/internal/escalation"
)

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Immutable enables reports of immutable types.
	Immutable *bool `json:"immutable,omitzero"`
	// Modifying enables reports of methods modifying their receiver.
	Modifying *bool `json:"modifying,omitzero"`
	// Approximate includes results of forced cycle resolution in reports.
	Approximate *bool `json:"approximate,omitzero"`
	// MaxLevel caps the break-delay ladder.
	MaxLevel *string `json:"max-level,omitzero"`
	// Workers sets the number of concurrent evaluations.
	Workers *int `json:"workers,omitzero"`
}

// Options converts [Settings] into a list of [analyzer.Option] for the fixpoint analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() ([]analyzer.Option, error) {
	var opts []analyzer.Option

	opts = appendOption(opts, s.Immutable, analyzer.WithImmutable)
	opts = appendOption(opts, s.Modifying, analyzer.WithModifying)
	opts = appendOption(opts, s.Approximate, analyzer.WithApproximate)
	opts = appendOption(opts, s.Workers, analyzer.WithWorkers)

	if s.MaxLevel != nil {
		var level escalation.Level
		if err := level.UnmarshalText([]byte(*s.MaxLevel)); err != nil {
			return nil, fmt.Errorf("max-level: %w", err)
		}

		opts = append(opts, analyzer.WithMaxLevel(level))
	}

	return opts, nil
}

// appendOption appends a non-nil setting to an [analyzer.Option] list.
func appendOption[T any](opts []analyzer.Option, value *T, constructor func(T) analyzer.Option) []analyzer.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
