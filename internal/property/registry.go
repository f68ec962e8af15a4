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
	"iter"
	"slices"

	"fillmore-labs.com/fixpoint/internal/element"
	"fillmore-labs.com/fixpoint/internal/escalation"
	"fillmore-labs.com/fixpoint/internal/lattice"
)

// ErrInvalidKind is returned when a property kind can't be registered.
var ErrInvalidKind = errors.New("invalid property kind")

// Scope describes which elements a property kind is computed over.
type Scope uint8

const (
	// ElementScope computes the property for each element separately.
	ElementScope Scope = iota

	// OverrideScope computes the property of a method jointly over its override group.
	OverrideScope
)

// Kind is a registered property axis with its lattice and rule.
type Kind struct {
	id       KindID
	name     string
	lattice  *lattice.Lattice
	rule     Rule
	scope    Scope
	applies  [len(element.Kinds)]bool
	fallback [escalation.MethodOverride + 1]lattice.Value
}

// ID returns the identifier of k.
func (k *Kind) ID() KindID { return k.id }

// Name returns the name of k.
func (k *Kind) Name() string { return k.name }

// Lattice returns the value lattice of k.
func (k *Kind) Lattice() *lattice.Lattice { return k.lattice }

// Scope returns the scope of k.
func (k *Kind) Scope() Scope { return k.scope }

// Applies reports whether elements of the given kind carry this property.
func (k *Kind) Applies(kind element.Kind) bool {
	return int(kind) < len(k.applies) && k.applies[kind]
}

// Fallback returns the declared value substituted for a delayed value of granularity g under forced resolution.
func (k *Kind) Fallback(g escalation.Level) (lattice.Value, bool) {
	if g > escalation.MethodOverride {
		return lattice.Delayed, false
	}

	v := k.fallback[g]

	return v, v != lattice.Delayed
}

// Granularity returns the granularity of the computation of k for e.
func (k *Kind) Granularity(g *element.Graph, e element.ID) escalation.Level {
	switch g.Kind(e) {
	case element.Statement:
		return escalation.Statement

	case element.Field:
		return escalation.Field

	case element.Method:
		if k.scope == OverrideScope && len(g.Members(g.Group(e))) > 1 {
			return escalation.MethodOverride
		}

		return escalation.Method

	default:
		return escalation.Type
	}
}

// Registry maps property kinds to their rules.
//
// Kinds are registered before a run and do not change during it.
type Registry struct {
	kinds  []*Kind
	byName map[string]KindID
}

// Register adds a property kind.
func (r *Registry) Register(name string, l *lattice.Lattice, rule Rule, opts ...Option) (KindID, error) {
	if name == "" || l == nil || rule == nil {
		return 0, fmt.Errorf("%w: %q needs a name, a lattice and a rule", ErrInvalidKind, name)
	}

	if _, ok := r.byName[name]; ok {
		return 0, fmt.Errorf("%w: duplicate kind %q", ErrInvalidKind, name)
	}

	k := &Kind{
		id:      KindID(len(r.kinds)),
		name:    name,
		lattice: l,
		rule:    rule,
	}

	Options(opts).apply(k)

	if k.applies == [len(element.Kinds)]bool{} {
		for i := range k.applies {
			k.applies[i] = true
		}
	}

	for g, v := range k.fallback {
		if v != lattice.Delayed && !l.IsFinal(v) {
			return 0, fmt.Errorf("%w: %q fallback %s at %s is not final", ErrInvalidKind, name, l.String(v), escalation.Level(g))
		}
	}

	if r.byName == nil {
		r.byName = make(map[string]KindID)
	}

	r.byName[name] = k.id
	r.kinds = append(r.kinds, k)

	return k.id, nil
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int { return len(r.kinds) }

// Kind returns the registered kind with the given id, or nil.
func (r *Registry) Kind(id KindID) *Kind {
	if int(id) >= len(r.kinds) {
		return nil
	}

	return r.kinds[id]
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (*Kind, bool) {
	id, ok := r.byName[name]
	if !ok {
		return nil, false
	}

	return r.kinds[id], true
}

// All yields the registered kinds in registration order.
func (r *Registry) All() iter.Seq[*Kind] {
	return slices.Values(r.kinds)
}

// Describe returns a human-readable form of key.
func (r *Registry) Describe(g *element.Graph, key Key) string {
	name := fmt.Sprintf("kind(%d)", key.Kind)
	if k := r.Kind(key.Kind); k != nil {
		name = k.name
	}

	return name + " of " + g.QualifiedName(key.Element)
}

// Option configures a property [Kind] on [Registry.Register].
type Option interface {
	apply(k *Kind)
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

func (o Options) apply(k *Kind) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(k)
	}
}

// WithFallback is an [Option] declaring the value assumed for a still delayed computation of
// granularity g under forced resolution.
func WithFallback(g escalation.Level, v lattice.Value) Option {
	return fallbackOption{granularity: g, value: v}
}

type fallbackOption struct {
	granularity escalation.Level
	value       lattice.Value
}

func (o fallbackOption) apply(k *Kind) {
	if o.granularity > escalation.MethodOverride {
		return
	}

	k.fallback[o.granularity] = o.value
}

// WithOverrideScope is an [Option] to compute a method property jointly over its override group.
func WithOverrideScope() Option { return scopeOption{scope: OverrideScope} }

type scopeOption struct{ scope Scope }

func (o scopeOption) apply(k *Kind) { k.scope = o.scope }

// WithApplies is an [Option] restricting the element kinds carrying the property. By default, all do.
func WithApplies(kinds ...element.Kind) Option { return appliesOption{kinds: kinds} }

type appliesOption struct{ kinds []element.Kind }

func (o appliesOption) apply(k *Kind) {
	for _, kind := range o.kinds {
		if int(kind) < len(k.applies) {
			k.applies[kind] = true
		}
	}
}
