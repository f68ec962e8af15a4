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

package lattice

import (
	"errors"
	"fmt"
	"iter"
	"math/bits"
)

// Value is an element of a property [Lattice].
//
// Values are small indices into the lattice they belong to, comparing values of
// different lattices is meaningless.
type Value uint8

// Delayed is the bottom element of every [Lattice].
const Delayed Value = 0

// maxValues is the maximum number of elements, including [Delayed].
const maxValues = 64

// ErrNotLattice is returned when a declared partial order has pairs without a unique least upper bound.
var ErrNotLattice = errors.New("not a join semilattice")

// set is a bit set of lattice values.
type set uint64

func (s set) has(v Value) bool { return s&(1<<v) != 0 }

func (s set) values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for rest := s; rest != 0; rest &= rest - 1 {
			if !yield(Value(bits.TrailingZeros64(uint64(rest)))) {
				return
			}
		}
	}
}

// Lattice is a finite join semilattice with [Delayed] as bottom element and a declared set of final values.
type Lattice struct {
	name  string
	names []string // names[v] is the text form of v, names[Delayed] is "delayed"
	up    []set    // up[v] holds every w with v ≤ w
	join  [][]Value
	final set
}

// New builds a [Lattice] from named proper values and [Option]s declaring the order and final values.
//
// Without [WithOrder] all proper values are incomparable, which only forms a join semilattice
// for a single proper value.
func New(name string, values []string, opts ...Option) (*Lattice, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("lattice %s: no values", name)
	}

	if len(values) >= maxValues {
		return nil, fmt.Errorf("lattice %s: %d values exceed maximum of %d", name, len(values), maxValues-1)
	}

	b := builder{
		index: make(map[string]Value, len(values)),
	}

	l := &Lattice{
		name:  name,
		names: append(make([]string, 0, len(values)+1), "delayed"),
	}

	for _, n := range values {
		if n == "" || n == l.names[Delayed] {
			return nil, fmt.Errorf("lattice %s: invalid value name %q", name, n)
		}

		if _, ok := b.index[n]; ok {
			return nil, fmt.Errorf("lattice %s: duplicate value %q", name, n)
		}

		b.index[n] = Value(len(l.names))
		l.names = append(l.names, n)
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt.apply(&b)
	}

	if b.err != nil {
		return nil, fmt.Errorf("lattice %s: %w", name, b.err)
	}

	if err := l.closeOrder(b.covers); err != nil {
		return nil, fmt.Errorf("lattice %s: %w", name, err)
	}

	if err := l.buildJoin(); err != nil {
		return nil, fmt.Errorf("lattice %s: %w", name, err)
	}

	l.final = l.finalSet(&b)

	return l, nil
}

// NewChain builds a totally ordered [Lattice], values are given in ascending order.
func NewChain(name string, values []string, opts ...Option) (*Lattice, error) {
	order := make(Options, 0, len(values)+len(opts))
	for i := 1; i < len(values); i++ {
		order = append(order, WithOrder(values[i-1], values[i]))
	}

	return New(name, values, append(order, opts...)...)
}

// closeOrder computes the reflexive transitive closure of the covering relation.
func (l *Lattice) closeOrder(covers [][2]Value) error {
	n := len(l.names)

	succ := make([]set, n)
	for _, c := range covers {
		succ[c[0]] |= 1 << c[1]
	}

	l.up = make([]set, n)

	for v := range Value(n) {
		reach := set(1) << v

		for frontier := succ[v]; frontier&^reach != 0; {
			next := frontier &^ reach
			reach |= next
			frontier = 0

			for w := range next.values() {
				frontier |= succ[w]
			}
		}

		l.up[v] = reach
	}

	all := set(1)<<n - 1
	l.up[Delayed] = all

	for v := Value(1); v < Value(n); v++ {
		for w := range l.up[v].values() {
			if w != v && l.up[w].has(v) {
				return fmt.Errorf("cyclic order between %s and %s", l.names[v], l.names[w])
			}
		}
	}

	return nil
}

// buildJoin tabulates least upper bounds for all pairs.
func (l *Lattice) buildJoin() error {
	n := len(l.names)

	l.join = make([][]Value, n)
	for a := range Value(n) {
		l.join[a] = make([]Value, n)

		for b := range Value(n) {
			bounds := l.up[a] & l.up[b]

			lub, found := Delayed, false
			for u := range bounds.values() {
				if bounds&^l.up[u] == 0 {
					lub, found = u, true

					break
				}
			}

			if !found {
				return fmt.Errorf("%w: %s and %s have no least upper bound", ErrNotLattice, l.names[a], l.names[b])
			}

			l.join[a][b] = lub
		}
	}

	return nil
}

func (l *Lattice) finalSet(b *builder) set {
	if b.allFinal {
		return set(1)<<len(l.names) - 2 // everything but Delayed
	}

	if b.final != 0 {
		return b.final
	}

	var maximal set

	for v := Value(1); v < Value(len(l.names)); v++ {
		if l.up[v] == 1<<v {
			maximal |= 1 << v
		}
	}

	return maximal
}

// Name returns the name of the lattice.
func (l *Lattice) Name() string { return l.name }

// Len returns the number of elements including [Delayed].
func (l *Lattice) Len() int { return len(l.names) }

// Initial is the value of every slot before evaluation.
func (l *Lattice) Initial() Value { return Delayed }

// Valid reports whether v is an element of this lattice.
func (l *Lattice) Valid(v Value) bool { return int(v) < len(l.names) }

// Leq reports whether a ≤ b.
func (l *Lattice) Leq(a, b Value) bool {
	if !l.Valid(a) || !l.Valid(b) {
		return false
	}

	return l.up[a].has(b)
}

// Join returns the least upper bound of a and b.
//
// Both values must be [Lattice.Valid]; Join panics otherwise.
func (l *Lattice) Join(a, b Value) Value {
	return l.join[a][b]
}

// JoinAll folds [Lattice.Join] over values, starting with [Delayed].
//
// Like Join, it panics on a value outside the lattice.
func (l *Lattice) JoinAll(values iter.Seq[Value]) Value {
	acc := Delayed
	for v := range values {
		acc = l.join[acc][v]
	}

	return acc
}

// IsFinal reports whether v is a declared final value.
func (l *Lattice) IsFinal(v Value) bool {
	return l.Valid(v) && l.final.has(v)
}

// IsDelayed reports whether v is not final.
func (l *Lattice) IsDelayed(v Value) bool {
	return !l.IsFinal(v)
}

// Advance checks that replacing old by next is a non-decreasing step.
func (l *Lattice) Advance(old, next Value) error {
	if l.Leq(old, next) {
		return nil
	}

	return &MonotonicityError{
		Lattice: l.name,
		Old:     l.String(old),
		New:     l.String(next),
		Reason:  "value decreased",
	}
}

// Values yields all proper values in declaration order.
func (l *Lattice) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for v := Value(1); v < Value(len(l.names)); v++ {
			if !yield(v) {
				return
			}
		}
	}
}

// Finals yields the declared final values.
func (l *Lattice) Finals() iter.Seq[Value] {
	return l.final.values()
}

// Parse returns the value with the given name.
func (l *Lattice) Parse(name string) (Value, bool) {
	for v, n := range l.names {
		if n == name {
			return Value(v), true
		}
	}

	return Delayed, false
}

// String returns the name of v.
func (l *Lattice) String(v Value) string {
	if !l.Valid(v) {
		return fmt.Sprintf("%s(%d)", l.name, v)
	}

	return l.names[v]
}
