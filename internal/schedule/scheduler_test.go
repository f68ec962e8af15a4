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

package schedule_test

import (
	"context"
	"errors"
	"go/token"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"testing"

	"fillmore-labs.com/fixpoint/internal/element"
	"fillmore-labs.com/fixpoint/internal/escalation"
	"fillmore-labs.com/fixpoint/internal/lattice"
	"fillmore-labs.com/fixpoint/internal/property"
	. "fillmore-labs.com/fixpoint/internal/schedule"
)

// network is a single property kind where each element joins the values of its dependencies.
type network struct {
	builder  element.Builder
	deps     map[element.ID][]element.ID
	options  property.Options
	graph    *element.Graph
	registry *property.Registry
	lat      *lattice.Lattice
	kind     property.KindID
}

func newNetwork(opts ...property.Option) *network {
	return &network{deps: make(map[element.ID][]element.ID), options: opts}
}

func (n *network) dependsOn(e element.ID, deps ...element.ID) {
	n.deps[e] = append(n.deps[e], deps...)
}

func (n *network) rule(e element.ID, in *property.Input) property.Outcome {
	acc, _ := n.lat.Parse("low")
	delayed := false

	for _, d := range n.deps[e] {
		v, ok := in.Get(n.kind, d)
		if !ok {
			delayed = true

			continue
		}

		acc = n.lat.Join(acc, v)
	}

	switch {
	case delayed && in.Forced():
		return property.Forced(n.high())

	case delayed:
		return property.Delayed()

	case in.Forced():
		return property.Forced(acc)

	default:
		return property.Final(acc)
	}
}

func (n *network) build(t *testing.T) {
	t.Helper()

	g, err := n.builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	lat, err := lattice.NewChain("level", []string{"low", "high"}, lattice.WithAllFinal())
	if err != nil {
		t.Fatalf("Can't build lattice: %v", err)
	}

	var r property.Registry

	n.graph, n.registry, n.lat = g, &r, lat

	n.kind, err = r.Register("level", lat, property.RuleFunc(n.rule), n.options...)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}

func (n *network) key(e element.ID) property.Key { return property.Key{Kind: n.kind, Element: e} }

func (n *network) run(t *testing.T, opts ...Option) (*Result, error) {
	t.Helper()

	if n.graph == nil {
		n.build(t)
	}

	return New(n.graph, n.registry, opts...).Run(t.Context())
}

func (n *network) high() lattice.Value {
	v, _ := n.lat.Parse("high")

	return v
}

func (n *network) low() lattice.Value {
	v, _ := n.lat.Parse("low")

	return v
}

func levels(escalations []Escalation) []escalation.Level {
	to := make([]escalation.Level, 0, len(escalations))
	for _, e := range escalations {
		to = append(to, e.To)
	}

	return to
}

func TestNoCycles(t *testing.T) {
	t.Parallel()

	n := newNetwork()
	typ := n.builder.AddType("T", token.NoPos)
	m := n.builder.AddMethod(typ, "m", token.NoPos)
	s := n.builder.AddStatement(m, "s", token.NoPos)
	n.dependsOn(s, m)
	n.dependsOn(m, typ)

	res, err := n.run(t)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := res.Level(); got != escalation.None {
		t.Errorf("Got level %s, expected %s", got, escalation.None)
	}

	if got := res.Rounds(); got != 3 {
		t.Errorf("Got %d rounds, expected 3", got)
	}

	for _, e := range []element.ID{typ, m, s} {
		if v, st := res.Lookup(n.key(e)); v != n.low() || st != Proven {
			t.Errorf("Got %s (%s) for %s, expected low (proven)", n.lat.String(v), st, n.graph.QualifiedName(e))
		}
	}
}

func TestStatementCycle(t *testing.T) {
	t.Parallel()

	n := newNetwork(property.WithFallback(escalation.Statement, 2))
	typ := n.builder.AddType("T", token.NoPos)
	m := n.builder.AddMethod(typ, "m", token.NoPos)
	s1 := n.builder.AddStatement(m, "s1", token.NoPos)
	s2 := n.builder.AddStatement(m, "s2", token.NoPos)
	n.dependsOn(s1, s2)
	n.dependsOn(s2, s1)

	res, err := n.run(t)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got, want := levels(res.Escalations()), []escalation.Level{escalation.Statement}; !slices.Equal(got, want) {
		t.Errorf("Got escalations %v, expected %v", got, want)
	}

	for _, e := range []element.ID{s1, s2} {
		if v, st := res.Lookup(n.key(e)); v != n.high() || st != Approximate {
			t.Errorf("Got %s (%s) for %s, expected high (approximate)", n.lat.String(v), st, n.graph.QualifiedName(e))
		}
	}

	if _, st := res.Lookup(n.key(m)); st != Proven {
		t.Errorf("Got %s for method, expected proven", st)
	}
}

func TestNoForcing(t *testing.T) {
	t.Parallel()

	n := newNetwork(property.WithFallback(escalation.Statement, 2))
	typ := n.builder.AddType("T", token.NoPos)
	m := n.builder.AddMethod(typ, "m", token.NoPos)
	s1 := n.builder.AddStatement(m, "s1", token.NoPos)
	s2 := n.builder.AddStatement(m, "s2", token.NoPos)
	n.dependsOn(s1, s2)
	n.dependsOn(s2, s1)

	res, err := n.run(t, WithMaxLevel(escalation.None))
	if !errors.Is(err, ErrUnresolvedCycle) {
		t.Fatalf("Got error %v, expected %v", err, ErrUnresolvedCycle)
	}

	if res == nil {
		t.Fatal("Expected partial result")
	}

	if got := res.Level(); got != escalation.None {
		t.Errorf("Got level %s, expected %s", got, escalation.None)
	}

	if got := res.Escalations(); len(got) != 0 {
		t.Errorf("Got escalations %v, expected none", levels(got))
	}

	for _, e := range []element.ID{s1, s2} {
		if _, st := res.Lookup(n.key(e)); st != Undetermined {
			t.Errorf("Got %s for %s, expected undetermined", st, n.graph.QualifiedName(e))
		}
	}
}

func TestMethodCycle(t *testing.T) {
	t.Parallel()

	build := func() (*network, element.ID, element.ID) {
		n := newNetwork(property.WithFallback(escalation.Method, 2))
		t1 := n.builder.AddType("T1", token.NoPos)
		t2 := n.builder.AddType("T2", token.NoPos)
		m1 := n.builder.AddMethod(t1, "m1", token.NoPos)
		m2 := n.builder.AddMethod(t2, "m2", token.NoPos)
		n.dependsOn(m1, m2)
		n.dependsOn(m2, m1)

		return n, m1, m2
	}

	t.Run("resolved", func(t *testing.T) {
		t.Parallel()

		n, m1, m2 := build()

		res, err := n.run(t)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		want := []escalation.Level{escalation.Statement, escalation.Field, escalation.Method}
		if got := levels(res.Escalations()); !slices.Equal(got, want) {
			t.Errorf("Got escalations %v, expected %v", got, want)
		}

		for _, e := range res.Escalations() {
			if e.Required != escalation.Method || e.Cycles != 1 {
				t.Errorf("Got escalation %+v, expected one cycle requiring %s", e, escalation.Method)
			}
		}

		for _, e := range []element.ID{m1, m2} {
			if v, st := res.Lookup(n.key(e)); v != n.high() || st != Approximate {
				t.Errorf("Got %s (%s) for %s, expected high (approximate)", n.lat.String(v), st, n.graph.QualifiedName(e))
			}
		}
	})

	t.Run("capped", func(t *testing.T) {
		t.Parallel()

		n, m1, m2 := build()

		res, err := n.run(t, WithMaxLevel(escalation.Field))
		if !errors.Is(err, ErrUnresolvedCycle) {
			t.Fatalf("Got error %v, expected %v", err, ErrUnresolvedCycle)
		}

		if res == nil {
			t.Fatal("Expected partial result")
		}

		if got := res.Level(); got != escalation.Field {
			t.Errorf("Got level %s, expected %s", got, escalation.Field)
		}

		if _, st := res.Lookup(n.key(m1)); st != Undetermined {
			t.Errorf("Got %s for m1, expected undetermined", st)
		}

		cycles := res.Unresolved()
		if len(cycles) != 1 || !slices.Equal(cycles[0].Members, []property.Key{n.key(m1), n.key(m2)}) {
			t.Errorf("Got unresolved %v, expected cycle of m1 and m2", cycles)
		}

		if got := res.Pending(element.Method); !slices.Equal(got, []property.Key{n.key(m1), n.key(m2)}) {
			t.Errorf("Got pending methods %v, expected m1 and m2", got)
		}

		if got := res.Pending(element.Type); len(got) != 0 {
			t.Errorf("Got pending types %v, expected none", got)
		}
	})
}

func TestOverrideCycle(t *testing.T) {
	t.Parallel()

	build := func(opts ...property.Option) (*network, []element.ID, element.ID) {
		n := newNetwork(append(property.Options{property.WithOverrideScope()}, opts...)...)

		var methods []element.ID
		for i := range 3 {
			typ := n.builder.AddType("T"+strconv.Itoa(i+1), token.NoPos)
			methods = append(methods, n.builder.AddMethod(typ, "m", token.NoPos))
		}

		n.builder.Override(methods[0], methods[1])
		n.builder.Override(methods[1], methods[2])

		for _, m := range methods {
			for _, o := range methods {
				if o != m {
					n.dependsOn(m, o)
				}
			}
		}

		// The type of the first method waits for it.
		n.dependsOn(0, methods[0])

		return n, methods, 0
	}

	t.Run("no fallback", func(t *testing.T) {
		t.Parallel()

		n, methods, typ := build(property.WithFallback(escalation.Method, 2))

		res, err := n.run(t)
		if !errors.Is(err, ErrUnresolvedCycle) {
			t.Fatalf("Got error %v, expected %v", err, ErrUnresolvedCycle)
		}

		var uerr *UnresolvedError
		if !errors.As(err, &uerr) || uerr.Result() != res {
			t.Errorf("Expected %T carrying the result", uerr)
		}

		want := []escalation.Level{
			escalation.Statement, escalation.Field, escalation.Method, escalation.Type, escalation.MethodOverride,
		}
		if got := levels(res.Escalations()); !slices.Equal(got, want) {
			t.Errorf("Got escalations %v, expected %v", got, want)
		}

		keys := make([]property.Key, 0, len(methods))
		for _, m := range methods {
			keys = append(keys, n.key(m))
		}

		cycles := res.Unresolved()
		if len(cycles) != 1 || !slices.Equal(cycles[0].Members, keys) {
			t.Errorf("Got unresolved %v, expected %v", cycles, keys)
		}

		if got := cycles[0].Granularity; got != escalation.MethodOverride {
			t.Errorf("Got granularity %s, expected %s", got, escalation.MethodOverride)
		}

		if got := res.Waiting(); !slices.Equal(got, []property.Key{n.key(typ)}) {
			t.Errorf("Got waiting %v, expected the first type", got)
		}
	})

	t.Run("fallback", func(t *testing.T) {
		t.Parallel()

		n, methods, typ := build(property.WithFallback(escalation.MethodOverride, 2))

		res, err := n.run(t)
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		if got := res.Level(); got != escalation.MethodOverride {
			t.Errorf("Got level %s, expected %s", got, escalation.MethodOverride)
		}

		for _, e := range append(methods, typ) {
			if v, st := res.Lookup(n.key(e)); v != n.high() || st != Approximate {
				t.Errorf("Got %s (%s) for %s, expected high (approximate)", n.lat.String(v), st, n.graph.QualifiedName(e))
			}
		}
	})
}

func TestRuleDefects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule property.RuleFunc
		want error
	}{
		{"self", func(e element.ID, in *property.Input) property.Outcome {
			in.Get(0, e)

			return property.Delayed()
		}, property.ErrMalformedDependency},
		{"unknown", func(_ element.ID, _ *property.Input) property.Outcome {
			return property.Delayed(property.Key{Kind: 0, Element: 99})
		}, property.ErrMalformedDependency},
		{"no blocking", func(_ element.ID, _ *property.Input) property.Outcome {
			return property.Delayed()
		}, lattice.ErrMonotonicity},
		{"not final", func(_ element.ID, _ *property.Input) property.Outcome {
			return property.Final(lattice.Delayed)
		}, lattice.ErrMonotonicity},
		{"unpermitted force", func(_ element.ID, _ *property.Input) property.Outcome {
			return property.Forced(1)
		}, lattice.ErrMonotonicity},
		{"out of range", func(_ element.ID, _ *property.Input) property.Outcome {
			return property.Final(7)
		}, lattice.ErrMonotonicity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var b element.Builder
			b.AddType("T", token.NoPos)

			g, err := b.Build()
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}

			lat, err := lattice.NewChain("level", []string{"low", "high"})
			if err != nil {
				t.Fatalf("Can't build lattice: %v", err)
			}

			var r property.Registry
			if _, err := r.Register("level", lat, tc.rule); err != nil {
				t.Fatalf("Register failed: %v", err)
			}

			res, err := New(g, &r).Run(t.Context())
			if !errors.Is(err, tc.want) {
				t.Errorf("Got error %v, expected %v", err, tc.want)
			}

			if res != nil {
				t.Errorf("Got result %v for aborted run", res)
			}
		})
	}

	t.Run("forced without fallback", func(t *testing.T) {
		t.Parallel()

		var b element.Builder
		typ := b.AddType("T", token.NoPos)
		m := b.AddMethod(typ, "m", token.NoPos)

		g, err := b.Build()
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}

		lat, err := lattice.NewChain("level", []string{"low", "high"}, lattice.WithAllFinal())
		if err != nil {
			t.Fatalf("Can't build lattice: %v", err)
		}

		low, _ := lat.Parse("low")

		var (
			r      property.Registry
			km, kt property.KindID
		)

		method := func(_ element.ID, in *property.Input) property.Outcome {
			v, ok := in.Get(kt, typ)
			switch {
			case ok:
				return property.Final(v)

			case in.Forced():
				return property.Forced(low)

			default:
				return property.Delayed()
			}
		}

		typeRule := func(_ element.ID, in *property.Input) property.Outcome {
			if v, ok := in.Get(km, m); ok {
				return property.Final(v)
			}

			return property.Delayed()
		}

		km, err = r.Register("km", lat, property.RuleFunc(method),
			property.WithApplies(element.Method), property.WithFallback(escalation.Method, low))
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		kt, err = r.Register("kt", lat, property.RuleFunc(typeRule), property.WithApplies(element.Type))
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		res, err := New(g, &r).Run(t.Context())
		if !errors.Is(err, lattice.ErrMonotonicity) {
			t.Errorf("Got error %v, expected %v", err, lattice.ErrMonotonicity)
		}

		if res != nil {
			t.Errorf("Got result %v for aborted run", res)
		}
	})
}

func TestStallWithoutCycle(t *testing.T) {
	t.Parallel()

	var b element.Builder
	typ := b.AddType("T", token.NoPos)
	m := b.AddMethod(typ, "m", token.NoPos)

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	lat, err := lattice.NewChain("level", []string{"low", "high"}, lattice.WithAllFinal())
	if err != nil {
		t.Fatalf("Can't build lattice: %v", err)
	}

	low, _ := lat.Parse("low")

	var (
		r    property.Registry
		kind property.KindID
	)

	// The type keeps waiting for the method, even after its value is final.
	rule := func(e element.ID, _ *property.Input) property.Outcome {
		if e == typ {
			return property.Delayed(property.Key{Kind: kind, Element: m})
		}

		return property.Final(low)
	}

	kind, err = r.Register("level", lat, property.RuleFunc(rule))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	res, err := New(g, &r).Run(t.Context())
	if !errors.Is(err, ErrUnresolvedCycle) {
		t.Fatalf("Got error %v, expected %v", err, ErrUnresolvedCycle)
	}

	if msg := err.Error(); !strings.Contains(msg, "stalled without a cycle") {
		t.Errorf("Got message %q, expected a stall without a cycle", msg)
	}

	if got := res.Unresolved(); len(got) != 0 {
		t.Errorf("Got unresolved %v, expected none", got)
	}

	want := []property.Key{{Kind: kind, Element: typ}}
	if got := res.Waiting(); !slices.Equal(got, want) {
		t.Errorf("Got waiting %v, expected %v", got, want)
	}

	if got := res.Escalations(); len(got) != 0 {
		t.Errorf("Got escalations %v, expected none", levels(got))
	}
}

func TestRunLimits(t *testing.T) {
	t.Parallel()

	n := newNetwork()
	typ := n.builder.AddType("T", token.NoPos)
	m := n.builder.AddMethod(typ, "m", token.NoPos)
	n.dependsOn(m, typ)
	n.build(t)

	t.Run("rounds", func(t *testing.T) {
		t.Parallel()

		if _, err := n.run(t, WithMaxRounds(1)); !errors.Is(err, ErrRoundLimit) {
			t.Errorf("Got error %v, expected %v", err, ErrRoundLimit)
		}
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		if _, err := New(n.graph, n.registry).Run(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Got error %v, expected %v", err, context.Canceled)
		}
	})
}

// randomNetwork builds a network of types with fields, methods and statements and random dependencies.
func randomNetwork(t *testing.T, seed uint64, opts ...property.Option) *network {
	t.Helper()

	rnd := rand.New(rand.NewPCG(seed, 0))
	n := newNetwork(opts...)

	var (
		all     []element.ID
		methods []element.ID
	)

	for i := range 6 {
		typ := n.builder.AddType("T"+strconv.Itoa(i), token.NoPos)
		all = append(all, typ)

		for j := range 2 {
			all = append(all, n.builder.AddField(typ, "f"+strconv.Itoa(j), token.NoPos))

			m := n.builder.AddMethod(typ, "m"+strconv.Itoa(j), token.NoPos)
			all = append(all, m)
			methods = append(methods, m)

			for k := range 2 {
				all = append(all, n.builder.AddStatement(m, "s"+strconv.Itoa(k), token.NoPos))
			}
		}
	}

	for i := 0; i+2 < len(methods); i += 3 {
		n.builder.Override(methods[i], methods[i+2])
	}

	for _, e := range all {
		for range rnd.IntN(3) {
			if d := all[rnd.IntN(len(all))]; d != e {
				n.dependsOn(e, d)
			}
		}
	}

	n.build(t)

	return n
}

func TestDeterministic(t *testing.T) {
	t.Parallel()

	for seed := range uint64(10) {
		n := randomNetwork(t, seed, property.WithFallback(escalation.Field, 2), property.WithFallback(escalation.Method, 2))

		seq, errSeq := n.run(t)
		par, errPar := n.run(t, WithWorkers(8))

		if (errSeq == nil) != (errPar == nil) {
			t.Fatalf("Seed %d: got errors %v and %v", seed, errSeq, errPar)
		}

		if seq.Rounds() != par.Rounds() || seq.Level() != par.Level() {
			t.Errorf("Seed %d: got %d rounds at %s and %d rounds at %s",
				seed, seq.Rounds(), seq.Level(), par.Rounds(), par.Level())
		}

		for e := range element.ID(n.graph.Len()) {
			key := n.key(e)
			v1, s1 := seq.Lookup(key)
			v2, s2 := par.Lookup(key)

			if v1 != v2 || s1 != s2 {
				t.Errorf("Seed %d: %s differs: %s (%s) and %s (%s)",
					seed, n.graph.QualifiedName(e), n.lat.String(v1), s1, n.lat.String(v2), s2)
			}
		}
	}
}

func TestTerminates(t *testing.T) {
	t.Parallel()

	var opts property.Options
	for _, g := range []escalation.Level{
		escalation.Statement, escalation.Field, escalation.Method, escalation.Type, escalation.MethodOverride,
	} {
		opts = append(opts, property.WithFallback(g, 2))
	}

	for seed := range uint64(20) {
		n := randomNetwork(t, seed, opts)

		res, err := n.run(t, WithWorkers(4))
		if err != nil {
			t.Fatalf("Seed %d: Run failed: %v", seed, err)
		}

		for e := range element.ID(n.graph.Len()) {
			if _, st := res.Lookup(n.key(e)); st == Undetermined {
				t.Errorf("Seed %d: %s undetermined", seed, n.graph.QualifiedName(e))
			}
		}

		for i, esc := range res.Escalations() {
			if esc.To <= esc.From || (i > 0 && esc.From < res.Escalations()[i-1].To) {
				t.Errorf("Seed %d: escalation %+v decreases the level", seed, esc)
			}
		}
	}
}
