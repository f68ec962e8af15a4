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

package property_test

import (
	"errors"
	"go/token"
	"slices"
	"testing"

	"fillmore-labs.com/fixpoint/internal/element"
	"fillmore-labs.com/fixpoint/internal/escalation"
	"fillmore-labs.com/fixpoint/internal/lattice"
	. "fillmore-labs.com/fixpoint/internal/property"
)

type values map[Key]lattice.Value

func (v values) Value(key Key) lattice.Value { return v[key] }

func (v values) Approximate(Key) bool { return false }

type fixture struct {
	graph        *element.Graph
	registry     *Registry
	lat          *lattice.Lattice
	low, high    lattice.Value
	typ, m1, m2  element.ID
	kind, scoped KindID
}

func newFixture(t *testing.T, rule Rule) *fixture {
	t.Helper()

	var b element.Builder

	typ := b.AddType("T", token.NoPos)
	m1 := b.AddMethod(typ, "m1", token.NoPos)
	m2 := b.AddMethod(typ, "m2", token.NoPos)
	b.Override(m1, m2)

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	lat, err := lattice.NewChain("level", []string{"low", "high"}, lattice.WithAllFinal())
	if err != nil {
		t.Fatalf("Can't build lattice: %v", err)
	}

	low, _ := lat.Parse("low")
	high, _ := lat.Parse("high")

	var r Registry

	kind, err := r.Register("prop", lat, rule,
		WithApplies(element.Method),
		WithFallback(escalation.Method, high))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	scoped, err := r.Register("scoped", lat, rule, WithApplies(element.Method), WithOverrideScope())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	return &fixture{g, &r, lat, low, high, typ, m1, m2, kind, scoped}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	var f *fixture

	readOther := RuleFunc(func(e element.ID, in *Input) Outcome {
		other := f.m1
		if e == f.m1 {
			other = f.m2
		}

		if v, ok := in.Get(f.kind, other); ok {
			return Final(v)
		}

		return Delayed()
	})

	f = newFixture(t, readOther)

	tests := []struct {
		name   string
		values values
		forced bool
		want   Resolution
	}{
		{
			name:   "Final",
			values: values{{f.kind, f.m2}: f.low},
			want:   Resolution{Value: f.low},
		},
		{
			name: "Delayed",
			want: Resolution{Blocking: []Key{{f.kind, f.m2}}},
		},
		{
			name:   "Forced",
			forced: true,
			want:   Resolution{Value: f.high, Approximate: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			key := Key{Kind: f.kind, Element: f.m1}
			in := NewInput(f.graph, f.registry, tt.values, key, escalation.Method, tt.forced)

			got, err := in.Evaluate()
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}

			if got.Value != tt.want.Value || got.Approximate != tt.want.Approximate || !slices.Equal(got.Blocking, tt.want.Blocking) {
				t.Errorf("Got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rule   func(f *fixture) RuleFunc
		forced bool
		want   error
	}{
		{
			name: "SelfDependency",
			rule: func(f *fixture) RuleFunc {
				return func(e element.ID, in *Input) Outcome {
					in.Get(f.kind, e)

					return Delayed()
				}
			},
			want: ErrMalformedDependency,
		},
		{
			name: "NotApplicable",
			rule: func(f *fixture) RuleFunc {
				return func(_ element.ID, in *Input) Outcome {
					in.Get(f.kind, f.typ)

					return Delayed()
				}
			},
			want: ErrMalformedDependency,
		},
		{
			name: "UnknownElement",
			rule: func(f *fixture) RuleFunc {
				return func(_ element.ID, _ *Input) Outcome {
					return Delayed(Key{Kind: f.kind, Element: 99})
				}
			},
			want: ErrMalformedDependency,
		},
		{
			name: "UnknownKind",
			rule: func(f *fixture) RuleFunc {
				return func(_ element.ID, in *Input) Outcome {
					in.Get(42, f.m2)

					return Delayed()
				}
			},
			want: ErrMalformedDependency,
		},
		{
			name: "NonFinal",
			rule: func(*fixture) RuleFunc {
				return func(element.ID, *Input) Outcome { return Final(lattice.Delayed) }
			},
			want: lattice.ErrMonotonicity,
		},
		{
			name: "ForcedWithoutPermission",
			rule: func(f *fixture) RuleFunc {
				return func(element.ID, *Input) Outcome { return Forced(f.low) }
			},
			want: lattice.ErrMonotonicity,
		},
		{
			name: "DelayedUnderForce",
			rule: func(f *fixture) RuleFunc {
				return func(_ element.ID, in *Input) Outcome {
					in.Get(f.scoped, f.m2) // no fallback

					return Delayed()
				}
			},
			forced: true,
			want:   lattice.ErrMonotonicity,
		},
		{
			name: "ForcedOverDelayed",
			rule: func(f *fixture) RuleFunc {
				return func(_ element.ID, in *Input) Outcome {
					if _, ok := in.Get(f.scoped, f.m2); !ok { // no fallback
						return Forced(f.low)
					}

					return Final(f.high)
				}
			},
			forced: true,
			want:   lattice.ErrMonotonicity,
		},
		{
			name: "NoBlocker",
			rule: func(*fixture) RuleFunc {
				return func(element.ID, *Input) Outcome { return Delayed() }
			},
			want: lattice.ErrMonotonicity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var f *fixture
			f = newFixture(t, RuleFunc(func(e element.ID, in *Input) Outcome { return tt.rule(f)(e, in) }))

			key := Key{Kind: f.kind, Element: f.m1}
			in := NewInput(f.graph, f.registry, values{}, key, escalation.Method, tt.forced)

			if _, err := in.Evaluate(); !errors.Is(err, tt.want) {
				t.Errorf("Got error %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGranularity(t *testing.T) {
	t.Parallel()

	f := newFixture(t, RuleFunc(func(element.ID, *Input) Outcome { return Delayed() }))

	if got, want := f.registry.Kind(f.kind).Granularity(f.graph, f.m1), escalation.Method; got != want {
		t.Errorf("Got granularity %s, want %s", got, want)
	}

	if got, want := f.registry.Kind(f.scoped).Granularity(f.graph, f.m1), escalation.MethodOverride; got != want {
		t.Errorf("Got granularity %s, want %s", got, want)
	}

	if got, want := f.registry.Kind(f.scoped).Granularity(f.graph, f.typ), escalation.Type; got != want {
		t.Errorf("Got granularity %s, want %s", got, want)
	}
}

func TestRegisterErrors(t *testing.T) {
	t.Parallel()

	lat, err := lattice.NewChain("level", []string{"low", "high"})
	if err != nil {
		t.Fatalf("Can't build lattice: %v", err)
	}

	low, _ := lat.Parse("low")
	rule := RuleFunc(func(element.ID, *Input) Outcome { return Delayed() })

	var r Registry
	if _, err := r.Register("prop", lat, rule); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := r.Register("prop", lat, rule); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("Got error %v for duplicate, want %v", err, ErrInvalidKind)
	}

	// low is not final in a chain without WithAllFinal
	if _, err := r.Register("other", lat, rule, WithFallback(escalation.Field, low)); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("Got error %v for non-final fallback, want %v", err, ErrInvalidKind)
	}
}
