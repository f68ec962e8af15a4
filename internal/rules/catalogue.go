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
	"fillmore-labs.com/fixpoint/internal/escalation"
	"fillmore-labs.com/fixpoint/internal/lattice"
	"fillmore-labs.com/fixpoint/internal/model"
	"fillmore-labs.com/fixpoint/internal/property"
)

// Catalogue holds the property kinds inferred for a [model.Model].
type Catalogue struct {
	model *model.Model
	lattices

	// Modified tells whether a statement modifies the receiver of its method.
	Modified property.KindID

	// Modifying tells whether a method modifies its receiver.
	Modifying property.KindID

	// Contract is the modification of a method joined over its override group.
	Contract property.KindID

	// Assignment tells whether a field is assigned after construction.
	Assignment property.KindID

	// Content is the immutability of the value a field holds.
	Content property.KindID

	// Immutability tells whether values of a type can change.
	Immutability property.KindID
}

// Register adds the property kinds of the catalogue to r.
func Register(r *property.Registry, m *model.Model) (*Catalogue, error) {
	l, err := newLattices()
	if err != nil {
		return nil, err
	}

	c := &Catalogue{model: m, lattices: l}

	kinds := []struct {
		id      *property.KindID
		name    string
		lattice *lattice.Lattice
		rule    property.RuleFunc
		opts    property.Options
	}{
		{&c.Modified, "modified", l.modification, c.statementModified, property.Options{
			property.WithApplies(element.Statement),
			property.WithFallback(escalation.Statement, Modified),
		}},
		{&c.Modifying, "modifying", l.modification, c.methodModifying, property.Options{
			property.WithApplies(element.Method),
			property.WithFallback(escalation.Method, Modified),
		}},
		{&c.Contract, "contract", l.modification, c.groupContract, property.Options{
			property.WithApplies(element.Method),
			property.WithOverrideScope(),
			property.WithFallback(escalation.Method, Modified),
			property.WithFallback(escalation.MethodOverride, Modified),
		}},
		{&c.Assignment, "assignment", l.assignment, c.fieldAssignment, property.Options{
			property.WithApplies(element.Field),
			property.WithFallback(escalation.Field, Assigned),
		}},
		{&c.Content, "content", l.immutability, c.fieldContent, property.Options{
			property.WithApplies(element.Field),
			property.WithFallback(escalation.Field, Mutable),
		}},
		{&c.Immutability, "immutability", l.immutability, c.typeImmutability, property.Options{
			property.WithApplies(element.Type),
			property.WithFallback(escalation.Type, Mutable),
		}},
	}

	for _, k := range kinds {
		if *k.id, err = r.Register(k.name, k.lattice, k.rule, k.opts); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Model returns the model the catalogue was registered for.
func (c *Catalogue) Model() *model.Model { return c.model }
