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
	"errors"
	"fmt"
	"slices"

	"fillmore-labs.com/fixpoint/internal/element"
	"fillmore-labs.com/fixpoint/internal/escalation"
	"fillmore-labs.com/fixpoint/internal/lattice"
)

// ErrMalformedDependency signals a rule reading a value unknown to the element graph or registry.
var ErrMalformedDependency = errors.New("malformed dependency")

// DependencyError describes an [ErrMalformedDependency].
type DependencyError struct {
	From, To string
	Reason   string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%v: %s depends on %s: %s", ErrMalformedDependency, e.From, e.To, e.Reason)
}

// Is reports whether target is [ErrMalformedDependency].
func (e *DependencyError) Is(target error) bool { return target == ErrMalformedDependency }

// Reader gives access to committed values.
type Reader interface {
	// Value returns the committed value of key, [lattice.Delayed] if not yet final.
	Value(key Key) lattice.Value

	// Approximate reports whether the committed value of key was derived under forced resolution.
	Approximate(key Key) bool
}

// Input is the read-only view a [Rule] evaluates against.
//
// Reads of delayed values are recorded as the blocking set of the evaluation.
type Input struct {
	graph    *element.Graph
	registry *Registry
	reader   Reader
	key      Key
	level    escalation.Level
	forced   bool

	blocking    []Key
	approximate bool
	err         error
}

// NewInput prepares the evaluation of key.
//
// forced permits resolution with declared fallbacks for still delayed dependencies.
func NewInput(g *element.Graph, r *Registry, reader Reader, key Key, level escalation.Level, forced bool) *Input {
	return &Input{
		graph:    g,
		registry: r,
		reader:   reader,
		key:      key,
		level:    level,
		forced:   forced,
	}
}

// Graph returns the program element graph.
func (in *Input) Graph() *element.Graph { return in.graph }

// Key returns the evaluated key.
func (in *Input) Key() Key { return in.key }

// Level returns the current break-delay level.
func (in *Input) Level() escalation.Level { return in.level }

// Forced reports whether forced resolution is permitted for this evaluation.
func (in *Input) Forced() bool { return in.forced }

// Get returns the value of kind for e.
//
// ok is false when the value is still delayed; the key is then recorded as blocking. Under forced
// resolution a delayed value is replaced by its declared fallback, when there is one.
func (in *Input) Get(kind KindID, e element.ID) (v lattice.Value, ok bool) {
	key := Key{Kind: kind, Element: e}

	k := in.check(key)
	if k == nil {
		return lattice.Delayed, false
	}

	if v := in.reader.Value(key); v != lattice.Delayed {
		if in.reader.Approximate(key) {
			in.approximate = true
		}

		return v, true
	}

	if in.forced {
		if v, ok := k.Fallback(k.Granularity(in.graph, e)); ok {
			in.approximate = true

			return v, true
		}
	}

	in.blocking = append(in.blocking, key)

	return lattice.Delayed, false
}

// check validates a dependency and returns its kind, recording the first error.
func (in *Input) check(key Key) *Kind {
	var reason string

	k := in.registry.Kind(key.Kind)

	switch {
	case k == nil:
		reason = "unknown property kind"

	case !in.graph.Valid(key.Element):
		reason = "unknown element"

	case !k.Applies(in.graph.Kind(key.Element)):
		reason = fmt.Sprintf("%s does not apply to %s elements", k.name, in.graph.Kind(key.Element))

	case key == in.key:
		reason = "self dependency"

	default:
		return k
	}

	if in.err == nil {
		to := fmt.Sprintf("kind(%d) of element(%d)", key.Kind, key.Element)
		if k != nil && in.graph.Valid(key.Element) {
			to = in.registry.Describe(in.graph, key)
		}

		in.err = &DependencyError{
			From:   in.registry.Describe(in.graph, in.key),
			To:     to,
			Reason: reason,
		}
	}

	return nil
}

// Resolution is the validated result of an evaluation.
type Resolution struct {
	Value       lattice.Value // lattice.Delayed for delayed evaluations
	Approximate bool          // the value depends on an assumption made under forced resolution
	Blocking    []Key         // ascending, for delayed evaluations
}

// Evaluate runs the rule of the evaluated kind and validates the outcome against the evaluation contract.
func (in *Input) Evaluate() (Resolution, error) {
	k := in.registry.Kind(in.key.Kind)
	if k == nil || !in.graph.Valid(in.key.Element) {
		return Resolution{}, fmt.Errorf("%w: no computation for kind %d element %d", ErrMalformedDependency, in.key.Kind, in.key.Element)
	}

	o := k.rule.Evaluate(in.key.Element, in)

	for _, key := range o.blocking {
		in.check(key)
	}

	if in.err != nil {
		return Resolution{}, in.err
	}

	violation := func(reason string) error {
		return &lattice.MonotonicityError{
			Lattice: k.lattice.Name(),
			Subject: in.registry.Describe(in.graph, in.key),
			New:     k.lattice.String(o.value),
			Reason:  reason,
		}
	}

	switch o.status {
	case StatusFinal:
		if !k.lattice.IsFinal(o.value) {
			return Resolution{}, violation("rule returned a non-final value")
		}

		return Resolution{Value: o.value, Approximate: in.approximate}, nil

	case StatusForced:
		if !in.forced {
			return Resolution{}, violation("forced result without permission")
		}

		if !k.lattice.IsFinal(o.value) {
			return Resolution{}, violation("rule has no fallback for a forced result")
		}

		if len(in.blocking) > 0 {
			return Resolution{}, violation("forced result with a delayed dependency without fallback")
		}

		return Resolution{Value: o.value, Approximate: true}, nil

	default:
		if in.forced {
			return Resolution{}, violation("delayed under forced resolution, no fallback for a dependency")
		}

		blocking := append(in.blocking, o.blocking...)
		slices.SortFunc(blocking, Key.Compare)
		blocking = slices.Compact(blocking)

		if len(blocking) == 0 {
			return Resolution{}, violation("delayed without a blocking dependency")
		}

		return Resolution{Blocking: blocking}, nil
	}
}
