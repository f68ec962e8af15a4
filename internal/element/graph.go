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

package element

import (
	"go/token"
	"iter"
	"slices"
	"strings"
)

// ID identifies a program element within its [Graph].
type ID int32

// NoID is the parent of top-level elements.
const NoID ID = -1

// GroupID identifies an override group within its [Graph].
type GroupID int32

// NoGroup is the group of elements not linked by overrides.
const NoGroup GroupID = -1

// Graph is an immutable table of program elements.
//
// All relations are stored as ID pairs in flat tables, so elements never reference each other directly.
type Graph struct {
	kinds    []Kind
	parents  []ID
	names    []string
	pos      []token.Pos
	groups   []GroupID
	members  [][]ID // members of each override group, ascending
	children [][]ID
	byKind   [numKinds][]ID
}

// Len returns the number of elements.
func (g *Graph) Len() int { return len(g.kinds) }

// Valid reports whether id is an element of g.
func (g *Graph) Valid(id ID) bool { return id >= 0 && int(id) < len(g.kinds) }

// Kind returns the element kind of id.
func (g *Graph) Kind(id ID) Kind { return g.kinds[id] }

// Parent returns the structural parent of id, or [NoID] for types.
func (g *Graph) Parent(id ID) ID { return g.parents[id] }

// Name returns the local name of id.
func (g *Graph) Name(id ID) string { return g.names[id] }

// Pos returns the source position of id.
func (g *Graph) Pos(id ID) token.Pos { return g.pos[id] }

// Group returns the override group of id, or [NoGroup].
func (g *Graph) Group(id ID) GroupID { return g.groups[id] }

// Groups returns the number of override groups.
func (g *Graph) Groups() int { return len(g.members) }

// Members returns the methods of an override group in ascending order. The result must not be modified.
func (g *Graph) Members(group GroupID) []ID {
	if group < 0 || int(group) >= len(g.members) {
		return nil
	}

	return g.members[group]
}

// Overrides returns the other members of the override group of id.
func (g *Graph) Overrides(id ID) iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for _, m := range g.Members(g.groups[id]) {
			if m == id {
				continue
			}

			if !yield(m) {
				return
			}
		}
	}
}

// Children returns the elements with parent id in ascending order. The result must not be modified.
func (g *Graph) Children(id ID) []ID { return g.children[id] }

// ChildrenOf yields the children of id with the given kind.
func (g *Graph) ChildrenOf(id ID, kind Kind) iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for _, c := range g.children[id] {
			if g.kinds[c] != kind {
				continue
			}

			if !yield(c) {
				return
			}
		}
	}
}

// All yields the elements of the given kind in ascending order.
func (g *Graph) All(kind Kind) iter.Seq[ID] {
	return slices.Values(g.byKind[kind])
}

// Count returns the number of elements of the given kind.
func (g *Graph) Count(kind Kind) int { return len(g.byKind[kind]) }

// Owner returns the type containing id, or id itself for types.
func (g *Graph) Owner(id ID) ID {
	for g.kinds[id] != Type {
		id = g.parents[id]
	}

	return id
}

// QualifiedName returns the names from the owning type down to id, joined by dots.
func (g *Graph) QualifiedName(id ID) string {
	if !g.Valid(id) {
		return "<invalid>"
	}

	var path []string
	for e := id; e != NoID; e = g.parents[e] {
		path = append(path, g.names[e])
	}

	slices.Reverse(path)

	return strings.Join(path, ".")
}
