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

package rules_test

import (
	"testing"

	"fillmore-labs.com/fixpoint/internal/element"
	"fillmore-labs.com/fixpoint/internal/escalation"
	"fillmore-labs.com/fixpoint/internal/lattice"
	"fillmore-labs.com/fixpoint/internal/model"
	"fillmore-labs.com/fixpoint/internal/property"
	. "fillmore-labs.com/fixpoint/internal/rules"
	"fillmore-labs.com/fixpoint/internal/schedule"
	"fillmore-labs.com/fixpoint/internal/testsource"
)

const src = `
type Point struct{ x, y int }

func (p Point) Len() int { return p.x + p.y }

type Line struct{ a, b Point }

type Counter struct{ n int }

func (c *Counter) Inc() { c.n++ }

func (c *Counter) Twice() {
	c.Inc()
	c.Inc()
}

func (c *Counter) Get() int { return c.n }

type Holder struct{ c *Counter }

type Num int

func (n *Num) Inc() { *n++ }

type Area interface{ Area() int }

type Square struct{ s int }

func (q Square) Area() int { return q.s * q.s }

type Even struct{ n int }

func (e *Even) A(k int) {
	if k > 0 {
		e.B(k - 1)
	}
}

func (e *Even) B(k int) {
	if k > 0 {
		e.A(k - 1)
	}
}

type Ping struct {
	n    int
	pong *Pong
}

type Pong struct{ ping *Ping }
`

type fixture struct {
	catalogue *Catalogue
	graph     *element.Graph
	result    *schedule.Result
}

func run(t *testing.T, opts ...schedule.Option) (*fixture, error) {
	t.Helper()

	pkg, info, file := testsource.Load(t, src)

	c := model.NewCollector(pkg, info)
	c.AddFile(file)

	m, err := c.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var r property.Registry

	cat, err := Register(&r, m)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	res, err := schedule.New(m.Graph(), &r, opts...).Run(t.Context())

	return &fixture{catalogue: cat, graph: m.Graph(), result: res}, err
}

func (f *fixture) lookup(t *testing.T, kind property.KindID, name string) (lattice.Value, schedule.Status) {
	t.Helper()

	for e := range element.ID(f.graph.Len()) {
		if f.graph.QualifiedName(e) == name {
			return f.result.Lookup(property.Key{Kind: kind, Element: e})
		}
	}

	t.Fatalf("Element %s not found", name)

	return lattice.Delayed, schedule.Undetermined
}

func TestCatalogue(t *testing.T) {
	t.Parallel()

	f, err := run(t, schedule.WithWorkers(4))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	c := f.catalogue

	tests := []struct {
		kind   property.KindID
		name   string
		value  lattice.Value
		status schedule.Status
	}{
		{c.Immutability, "Point", Immutable, schedule.Proven},
		{c.Immutability, "Line", Immutable, schedule.Proven},
		{c.Modifying, "Point.Len", Unmodified, schedule.Proven},
		{c.Modified, "Counter.Inc.#1", Modified, schedule.Proven},
		{c.Modifying, "Counter.Twice", Modified, schedule.Proven},
		{c.Modifying, "Counter.Get", Unmodified, schedule.Proven},
		{c.Assignment, "Counter.n", Assigned, schedule.Proven},
		{c.Immutability, "Counter", Mutable, schedule.Proven},
		{c.Assignment, "Holder.c", Unassigned, schedule.Proven},
		{c.Content, "Holder.c", Mutable, schedule.Proven},
		{c.Immutability, "Holder", FinalFields, schedule.Proven},
		{c.Immutability, "Num", Mutable, schedule.Proven},
		{c.Contract, "Area.Area", Unmodified, schedule.Proven},
		{c.Immutability, "Area", FinalFields, schedule.Proven},
		{c.Immutability, "Square", Immutable, schedule.Proven},
		{c.Modifying, "Even.A", Modified, schedule.Approximate},
		{c.Immutability, "Even", Mutable, schedule.Approximate},
		{c.Content, "Ping.pong", Mutable, schedule.Approximate},
		{c.Immutability, "Ping", FinalFields, schedule.Approximate},
	}

	for _, tt := range tests {
		v, st := f.lookup(t, tt.kind, tt.name)
		if v != tt.value || st != tt.status {
			t.Errorf("Got %d (%s) for %s, expected %d (%s)", v, st, tt.name, tt.value, tt.status)
		}
	}

	if got := f.result.Level(); got != escalation.Field {
		t.Errorf("Got level %s, expected %s", got, escalation.Field)
	}
}

func TestCatalogueCapped(t *testing.T) {
	t.Parallel()

	f, err := run(t, schedule.WithMaxLevel(escalation.Statement))
	if err == nil {
		t.Fatal("Expected unresolved cycle")
	}

	if v, st := f.lookup(t, f.catalogue.Modifying, "Even.A"); v != Modified || st != schedule.Approximate {
		t.Errorf("Got %d (%s) for Even.A, expected modified (approximate)", v, st)
	}

	if _, st := f.lookup(t, f.catalogue.Immutability, "Ping"); st != schedule.Undetermined {
		t.Errorf("Got %s for Ping, expected undetermined", st)
	}

	if got := len(f.result.Unresolved()); got != 1 {
		t.Errorf("Got %d unresolved cycles, expected 1", got)
	}
}
