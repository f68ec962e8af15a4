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
	"errors"
	"fmt"
	"strings"

	"fillmore-labs.com/fixpoint/internal/delay"
	"fillmore-labs.com/fixpoint/internal/element"
	"fillmore-labs.com/fixpoint/internal/escalation"
	"fillmore-labs.com/fixpoint/internal/lattice"
	"fillmore-labs.com/fixpoint/internal/property"
)

// ErrUnresolvedCycle is returned when the break-delay ladder is exhausted with cyclic computations left.
// It also covers a stall without a cycle, where computations wait on values that never change.
var ErrUnresolvedCycle = errors.New("unresolved cycle")

// ErrRoundLimit is returned when a run exceeds the configured number of rounds.
var ErrRoundLimit = errors.New("round limit exceeded")

// Status tells whether a value is determined.
type Status uint8

//go:generate go tool stringer -type Status -linecomment
const (
	// Undetermined means no final value is known.
	Undetermined Status = iota // undetermined

	// Proven means the value was derived from proven values only.
	Proven // proven

	// Approximate means the value depends on an assumption made under forced resolution.
	Approximate // approximate
)

// Escalation records a change of the break-delay level.
type Escalation struct {
	Round    int              // the stalled round
	From, To escalation.Level // levels before and after
	Required escalation.Level // combined granularity of the cycles found
	Cycles   int              // number of cycles found
}

// Result is the state of a completed run.
type Result struct {
	graph       *element.Graph
	registry    *property.Registry
	table       *Table
	level       escalation.Level
	rounds      int
	escalations []Escalation
	unresolved  []delay.Cycle
	waiting     []property.Key
}

// Lookup returns the value of key and whether it is determined.
func (r *Result) Lookup(key property.Key) (lattice.Value, Status) {
	if r.registry.Kind(key.Kind) == nil || !r.graph.Valid(key.Element) || !r.table.Final(key) {
		return lattice.Delayed, Undetermined
	}

	if r.table.Approximate(key) {
		return r.table.Value(key), Approximate
	}

	return r.table.Value(key), Proven
}

// Graph returns the analyzed element graph.
func (r *Result) Graph() *element.Graph { return r.graph }

// Registry returns the property kinds of the run.
func (r *Result) Registry() *property.Registry { return r.registry }

// Level returns the final break-delay level.
func (r *Result) Level() escalation.Level { return r.level }

// Rounds returns the number of rounds run.
func (r *Result) Rounds() int { return r.rounds }

// Escalations returns the level changes of the run in order.
func (r *Result) Escalations() []Escalation { return r.escalations }

// Unresolved returns the cycles left when the ladder was exhausted.
func (r *Result) Unresolved() []delay.Cycle { return r.unresolved }

// Pending returns the computations for elements of the given kind that are not determined, in ascending order.
func (r *Result) Pending(kind element.Kind) []property.Key { return r.table.Pending(kind) }

// Waiting returns the undetermined computations that are not members of an unresolved cycle.
func (r *Result) Waiting() []property.Key { return r.waiting }

// Err returns an [*UnresolvedError] when computations were left undetermined,
// whether or not they form a cycle.
func (r *Result) Err() error {
	if len(r.unresolved) == 0 && len(r.waiting) == 0 {
		return nil
	}

	return &UnresolvedError{result: r}
}

// UnresolvedError describes an [ErrUnresolvedCycle].
type UnresolvedError struct {
	result *Result
}

// Result returns the partial result of the run.
func (e *UnresolvedError) Result() *Result { return e.result }

func (e *UnresolvedError) Error() string {
	r := e.result

	var b strings.Builder

	fmt.Fprintf(&b, "%v at level %s", ErrUnresolvedCycle, r.level)

	if len(r.unresolved) == 0 {
		b.WriteString(": stalled without a cycle")
	}

	for _, c := range r.unresolved {
		b.WriteString(": [")

		for i, m := range c.Members {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(r.registry.Describe(r.graph, m))
		}

		b.WriteString("]")
	}

	if n := len(r.waiting); n > 0 {
		fmt.Fprintf(&b, " (%d waiting)", n)
	}

	return b.String()
}

// Is reports whether target is [ErrUnresolvedCycle].
func (e *UnresolvedError) Is(target error) bool { return target == ErrUnresolvedCycle }
