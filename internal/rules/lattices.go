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
	"fmt"

	"fillmore-labs.com/fixpoint/internal/lattice"
)

// Values of the modification lattice.
const (
	Unmodified lattice.Value = iota + 1
	Modified
)

// Values of the assignment lattice.
const (
	Unassigned lattice.Value = iota + 1
	Assigned
)

// Values of the immutability lattice.
const (
	Immutable lattice.Value = iota + 1
	FinalFields
	Mutable
)

// lattices are the value lattices of the catalogue.
type lattices struct {
	modification, assignment, immutability *lattice.Lattice
}

func newLattices() (lattices, error) {
	var (
		l   lattices
		err error
	)

	if l.modification, err = lattice.NewChain("modification", []string{"unmodified", "modified"}, lattice.WithAllFinal()); err != nil {
		return lattices{}, fmt.Errorf("modification: %w", err)
	}

	if l.assignment, err = lattice.NewChain("assignment", []string{"unassigned", "assigned"}, lattice.WithAllFinal()); err != nil {
		return lattices{}, fmt.Errorf("assignment: %w", err)
	}

	if l.immutability, err = lattice.NewChain("immutability", []string{"immutable", "finalfields", "mutable"}, lattice.WithAllFinal()); err != nil {
		return lattices{}, fmt.Errorf("immutability: %w", err)
	}

	return l, nil
}
