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

package model

import (
	"slices"

	"fillmore-labs.com/fixpoint/internal/element"
)

// Model is the element graph of a package together with the syntactic facts rules are derived from.
type Model struct {
	graph *element.Graph

	shapes    []Shape        // per element, for types and fields
	refs      []element.ID   // per field or type, the referenced package type or [element.NoID]
	writes    [][]element.ID // per statement, the receiver fields written
	self      []bool         // per statement, assigns the entire receiver
	calls     [][]element.ID // per statement, the receiver methods called
	writers   [][]element.ID // per field, the statements writing it
	external  []bool         // per field, written outside the methods of its type
	abstract  []bool         // per method, declared by an interface
	receivers []bool         // per method, has a pointer receiver
}

// Graph returns the element graph.
func (m *Model) Graph() *element.Graph { return m.graph }

// Shape returns the shape of a type or field.
func (m *Model) Shape(e element.ID) Shape { return m.shapes[e] }

// Ref returns the package type referenced by a type or field, or [element.NoID].
func (m *Model) Ref(e element.ID) element.ID { return m.refs[e] }

// Writes returns the receiver fields a statement assigns to, in ascending order.
func (m *Model) Writes(stmt element.ID) []element.ID { return m.writes[stmt] }

// SelfWrite reports whether a statement assigns the entire receiver.
func (m *Model) SelfWrite(stmt element.ID) bool { return m.self[stmt] }

// Calls returns the receiver methods a statement calls, in ascending order.
func (m *Model) Calls(stmt element.ID) []element.ID { return m.calls[stmt] }

// Writers returns the statements assigning to a field, in ascending order.
func (m *Model) Writers(field element.ID) []element.ID { return m.writers[field] }

// External reports whether a field is written outside of the methods of its type.
func (m *Model) External(field element.ID) bool { return m.external[field] }

// Abstract reports whether a method is declared by an interface.
func (m *Model) Abstract(method element.ID) bool { return m.abstract[method] }

// PointerReceiver reports whether a method has a pointer receiver.
func (m *Model) PointerReceiver(method element.ID) bool { return m.receivers[method] }

// Implementations returns the concrete methods in the override group of method, in ascending order.
func (m *Model) Implementations(method element.ID) []element.ID {
	return slices.DeleteFunc(slices.Clone(m.graph.Members(m.graph.Group(method))), m.Abstract)
}
