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

package property

import (
	"fillmore-labs.com/fixpoint/internal/element"
	"fillmore-labs.com/fixpoint/internal/lattice"
)

// Rule evaluates one property kind for one element.
//
// Rules read other values through the [Input] only and must be deterministic in the
// values they produce.
type Rule interface {
	Evaluate(e element.ID, in *Input) Outcome
}

// RuleFunc adapts a function to the [Rule] interface.
type RuleFunc func(e element.ID, in *Input) Outcome

// Evaluate implements [Rule].
func (f RuleFunc) Evaluate(e element.ID, in *Input) Outcome { return f(e, in) }

// Status classifies an [Outcome].
type Status uint8

const (
	// StatusDelayed means a dependency was not yet determined.
	StatusDelayed Status = iota

	// StatusFinal means the value was derived from final values only.
	StatusFinal

	// StatusForced means the value was derived under forced resolution.
	StatusForced
)

// Outcome is the result of a [Rule] evaluation.
type Outcome struct {
	status   Status
	value    lattice.Value
	blocking []Key
}

// Final returns an [Outcome] with the final value v.
func Final(v lattice.Value) Outcome { return Outcome{status: StatusFinal, value: v} }

// Forced returns an [Outcome] committing to the best value derivable under forced resolution.
func Forced(v lattice.Value) Outcome { return Outcome{status: StatusForced, value: v} }

// Delayed returns an [Outcome] waiting for the delayed values read through the [Input] plus
// the explicitly given keys.
func Delayed(blocking ...Key) Outcome { return Outcome{status: StatusDelayed, blocking: blocking} }

// Status returns the status of o.
func (o Outcome) Status() Status { return o.status }

// Value returns the value of a final or forced outcome.
func (o Outcome) Value() lattice.Value { return o.value }
