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

package rules

import (
	"fillmore-labs.com/fixpoint/internal/element"
	"fillmore-labs.com/fixpoint/internal/lattice"
	"fillmore-labs.com/fixpoint/internal/model"
	"fillmore-labs.com/fixpoint/internal/property"
)

// accumulator joins dependency values for one evaluation.
type accumulator struct {
	in      *property.Input
	lattice *lattice.Lattice
	value   lattice.Value
	top     lattice.Value
	delayed bool
}

func accumulate(in *property.Input, l *lattice.Lattice, initial, top lattice.Value) *accumulator {
	return &accumulator{in: in, lattice: l, value: initial, top: top}
}

// add joins v into the accumulated value and reports whether it reached the top.
func (a *accumulator) add(v lattice.Value) bool {
	a.value = a.lattice.Join(a.value, v)

	return a.value == a.top
}

// read joins the value of kind for e, mapped by f, and reports whether the accumulated value reached the top.
func (a *accumulator) read(kind property.KindID, e element.ID, f func(lattice.Value) lattice.Value) bool {
	v, ok := a.in.Get(kind, e)
	if !ok {
		a.delayed = true

		return false
	}

	if f != nil {
		v = f(v)
	}

	return a.add(v)
}

// outcome is the accumulated value when no dependency is delayed, forced under forced resolution,
// and delayed otherwise. A value at the top is final regardless of delayed dependencies.
//
// Every kind of the catalogue declares a fallback at each of its granularities, so under forced
// resolution no dependency stays delayed.
func (a *accumulator) outcome() property.Outcome {
	switch {
	case a.value == a.top:
		return property.Final(a.value)

	case a.delayed:
		return property.Delayed()

	case a.in.Forced():
		return property.Forced(a.value)

	default:
		return property.Final(a.value)
	}
}

// statementModified: a statement writing the receiver is modified, calls inherit the modification of the callee.
func (c *Catalogue) statementModified(s element.ID, in *property.Input) property.Outcome {
	if c.model.SelfWrite(s) || len(c.model.Writes(s)) > 0 {
		return property.Final(Modified)
	}

	a := accumulate(in, c.modification, Unmodified, Modified)
	for _, m := range c.model.Calls(s) {
		if a.read(c.Modifying, m, nil) {
			break
		}
	}

	return a.outcome()
}

// methodModifying joins the statements of a method body. Interface methods follow their contract.
func (c *Catalogue) methodModifying(m element.ID, in *property.Input) property.Outcome {
	a := accumulate(in, c.modification, Unmodified, Modified)

	if c.model.Abstract(m) {
		a.read(c.Contract, m, nil)

		return a.outcome()
	}

	for s := range in.Graph().ChildrenOf(m, element.Statement) {
		if a.read(c.Modified, s, nil) {
			break
		}
	}

	return a.outcome()
}

// groupContract joins the modification of all implementations in the override group.
func (c *Catalogue) groupContract(m element.ID, in *property.Input) property.Outcome {
	impls := c.model.Implementations(m)
	if len(impls) == 0 && !c.model.Abstract(m) {
		impls = []element.ID{m}
	}

	a := accumulate(in, c.modification, Unmodified, Modified)
	for _, impl := range impls {
		if a.read(c.Modifying, impl, nil) {
			break
		}
	}

	return a.outcome()
}

// fieldAssignment: a field is assigned when written outside of construction.
func (c *Catalogue) fieldAssignment(f element.ID, in *property.Input) property.Outcome {
	if c.model.External(f) {
		return property.Final(Assigned)
	}

	a := accumulate(in, c.assignment, Unassigned, Assigned)
	for _, s := range c.model.Writers(f) {
		if a.read(c.Modified, s, assignedBy) {
			break
		}
	}

	return a.outcome()
}

func assignedBy(v lattice.Value) lattice.Value {
	if v == Modified {
		return Assigned
	}

	return Unassigned
}

// fieldContent is the immutability of the value held by a field.
func (c *Catalogue) fieldContent(f element.ID, in *property.Input) property.Outcome {
	switch c.model.Shape(f) {
	case model.Value:
		return property.Final(Immutable)

	case model.Ref:
		a := accumulate(in, c.immutability, Immutable, Mutable)
		a.read(c.Immutability, c.model.Ref(f), nil)

		return a.outcome()

	default:
		return property.Final(Mutable)
	}
}

// typeImmutability joins field assignment, field content and method modification of a type.
func (c *Catalogue) typeImmutability(t element.ID, in *property.Input) property.Outcome {
	g := in.Graph()

	switch c.model.Shape(t) {
	case model.Struct:
		a := accumulate(in, c.immutability, Immutable, Mutable)

		for f := range g.ChildrenOf(t, element.Field) {
			if a.read(c.Assignment, f, mutableIfAssigned) || a.read(c.Content, f, shallow) {
				return a.outcome()
			}
		}

		c.readMethods(a, t, c.Modifying)

		return a.outcome()

	case model.Interface:
		a := accumulate(in, c.immutability, FinalFields, Mutable)
		c.readMethods(a, t, c.Contract)

		return a.outcome()

	case model.Value:
		a := accumulate(in, c.immutability, Immutable, Mutable)
		c.readMethods(a, t, c.Modifying)

		return a.outcome()

	case model.Ref:
		if c.model.Ref(t) == t {
			return property.Final(Mutable)
		}

		a := accumulate(in, c.immutability, Immutable, Mutable)
		if !a.read(c.Immutability, c.model.Ref(t), nil) {
			c.readMethods(a, t, c.Modifying)
		}

		return a.outcome()

	default:
		return property.Final(Mutable)
	}
}

func (c *Catalogue) readMethods(a *accumulator, t element.ID, kind property.KindID) {
	for m := range a.in.Graph().ChildrenOf(t, element.Method) {
		if a.read(kind, m, mutableIfModified) {
			return
		}
	}
}

func mutableIfAssigned(v lattice.Value) lattice.Value {
	if v == Assigned {
		return Mutable
	}

	return Immutable
}

func mutableIfModified(v lattice.Value) lattice.Value {
	if v == Modified {
		return Mutable
	}

	return Immutable
}

// shallow caps the content of an unassigned field: the field itself never changes.
func shallow(v lattice.Value) lattice.Value {
	return min(v, FinalFields)
}
