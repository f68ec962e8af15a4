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

package delay

import (
	"maps"
	"slices"

	"fillmore-labs.com/fixpoint/internal/escalation"
	"fillmore-labs.com/fixpoint/internal/property"
)

// Tracker records the blocking sets of delayed computations.
//
// The zero value is ready to use. A Tracker is not safe for concurrent use, the scheduler
// updates it between rounds only.
type Tracker struct {
	blocking   map[property.Key][]property.Key
	dependents map[property.Key]map[property.Key]struct{}
}

// Block replaces the blocking set of key.
func (t *Tracker) Block(key property.Key, blocking []property.Key) {
	if t.blocking == nil {
		t.blocking = make(map[property.Key][]property.Key)
		t.dependents = make(map[property.Key]map[property.Key]struct{})
	}

	t.unlink(key)

	t.blocking[key] = blocking

	for _, b := range blocking {
		deps, ok := t.dependents[b]
		if !ok {
			deps = make(map[property.Key]struct{})
			t.dependents[b] = deps
		}

		deps[key] = struct{}{}
	}
}

// Clear removes key once its value is final.
func (t *Tracker) Clear(key property.Key) {
	t.unlink(key)
	delete(t.blocking, key)
}

func (t *Tracker) unlink(key property.Key) {
	for _, b := range t.blocking[key] {
		deps := t.dependents[b]
		delete(deps, key)

		if len(deps) == 0 {
			delete(t.dependents, b)
		}
	}
}

// Len returns the number of delayed computations.
func (t *Tracker) Len() int { return len(t.blocking) }

// Delayed reports whether key is recorded as delayed.
func (t *Tracker) Delayed(key property.Key) bool {
	_, ok := t.blocking[key]

	return ok
}

// Blocking returns the latest blocking set of key. The result must not be modified.
func (t *Tracker) Blocking(key property.Key) []property.Key { return t.blocking[key] }

// Dependents returns the delayed computations waiting for key, in ascending order.
func (t *Tracker) Dependents(key property.Key) []property.Key {
	return slices.SortedFunc(maps.Keys(t.dependents[key]), property.Key.Compare)
}

// Keys returns the delayed computations in ascending order.
func (t *Tracker) Keys() []property.Key {
	return slices.SortedFunc(maps.Keys(t.blocking), property.Key.Compare)
}

// Cycle is a set of delayed computations reachable from each other through blocking sets.
type Cycle struct {
	Members     []property.Key   // ascending
	Granularity escalation.Level // finest granularity of the members
}

// Contains reports whether key is a member of c.
func (c Cycle) Contains(key property.Key) bool {
	_, ok := slices.BinarySearchFunc(c.Members, key, property.Key.Compare)

	return ok
}

// Cycles finds the strongly connected components of the waits-for relation
// restricted to delayed computations, ignoring trivial components.
func (t *Tracker) Cycles(granularity func(property.Key) escalation.Level) []Cycle {
	s := scc{
		tracker: t,
		index:   make(map[property.Key]int, len(t.blocking)),
		low:     make(map[property.Key]int, len(t.blocking)),
		onStack: make(map[property.Key]bool, len(t.blocking)),
	}

	for _, key := range t.Keys() {
		if _, visited := s.index[key]; !visited {
			s.connect(key)
		}
	}

	cycles := make([]Cycle, 0, len(s.components))
	for _, members := range s.components {
		slices.SortFunc(members, property.Key.Compare)

		grains := func(yield func(escalation.Level) bool) {
			for _, m := range members {
				if !yield(granularity(m)) {
					return
				}
			}
		}

		cycles = append(cycles, Cycle{Members: members, Granularity: escalation.Finest(grains)})
	}

	slices.SortFunc(cycles, func(a, b Cycle) int { return a.Members[0].Compare(b.Members[0]) })

	return cycles
}

// scc implements Tarjan's strongly connected components algorithm.
type scc struct {
	tracker    *Tracker
	counter    int
	index, low map[property.Key]int
	onStack    map[property.Key]bool
	stack      []property.Key
	components [][]property.Key
}

func (s *scc) connect(v property.Key) {
	s.index[v] = s.counter
	s.low[v] = s.counter
	s.counter++

	s.stack = append(s.stack, v)
	s.onStack[v] = true

	for _, w := range s.tracker.blocking[v] {
		if !s.tracker.Delayed(w) {
			continue
		}

		if _, visited := s.index[w]; !visited {
			s.connect(w)
			s.low[v] = min(s.low[v], s.low[w])
		} else if s.onStack[w] {
			s.low[v] = min(s.low[v], s.index[w])
		}
	}

	if s.low[v] != s.index[v] {
		return
	}

	i := len(s.stack) - 1
	for s.stack[i] != v {
		i--
	}

	component := slices.Clone(s.stack[i:])
	s.stack = s.stack[:i]

	for _, w := range component {
		s.onStack[w] = false
	}

	if len(component) > 1 {
		s.components = append(s.components, component)
	}
}
