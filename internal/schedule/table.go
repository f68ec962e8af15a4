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

	"fillmore-labs.com/fixpoint/internal/element"
	"fillmore-labs.com/fixpoint/internal/lattice"
	"fillmore-labs.com/fixpoint/internal/property"
)

// Table holds the current value of every (kind, element) slot of a run.
//
// Slots are written only between rounds, so concurrent evaluations read a stable state.
type Table struct {
	graph    *element.Graph
	registry *property.Registry
	values   []lattice.Value
	approx   []bool
}

func newTable(g *element.Graph, r *property.Registry) *Table {
	n := g.Len() * r.Len()

	return &Table{
		graph:    g,
		registry: r,
		values:   make([]lattice.Value, n),
		approx:   make([]bool, n),
	}
}

func (t *Table) slot(key property.Key) int {
	return int(key.Kind)*t.graph.Len() + int(key.Element)
}

// Value implements [property.Reader].
func (t *Table) Value(key property.Key) lattice.Value {
	return t.values[t.slot(key)]
}

// Final reports whether the slot of key holds a final value.
func (t *Table) Final(key property.Key) bool {
	return t.values[t.slot(key)] != lattice.Delayed
}

// Approximate reports whether the value of key was assumed under forced resolution.
func (t *Table) Approximate(key property.Key) bool {
	return t.approx[t.slot(key)]
}

// Pending returns the keys of the given element kind that are not yet final, in ascending order.
func (t *Table) Pending(kind element.Kind) []property.Key {
	var keys []property.Key

	for e := range t.graph.All(kind) {
		for k := range t.registry.All() {
			if !k.Applies(kind) {
				continue
			}

			key := property.Key{Kind: k.ID(), Element: e}
			if !t.Final(key) {
				keys = append(keys, key)
			}
		}
	}

	return keys
}

// commit writes a final value, which must not lower or replace an earlier one.
func (t *Table) commit(key property.Key, v lattice.Value, approximate bool) error {
	i := t.slot(key)
	old := t.values[i]

	l := t.registry.Kind(key.Kind).Lattice()
	if err := l.Advance(old, v); err != nil {
		var merr *lattice.MonotonicityError
		if errors.As(err, &merr) {
			merr.Subject = t.registry.Describe(t.graph, key)
		}

		return err
	}

	if old != lattice.Delayed && old != v {
		return &lattice.MonotonicityError{
			Lattice: l.Name(),
			Subject: t.registry.Describe(t.graph, key),
			Old:     l.String(old),
			New:     l.String(v),
			Reason:  "final value rewritten",
		}
	}

	t.values[i] = v
	t.approx[i] = t.approx[i] || approximate

	return nil
}
