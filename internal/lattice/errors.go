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
	"strings"
)

// ErrMonotonicity signals a defect in a property rule: a value was lowered, or a
// result could not be produced where the contract requires one.
var ErrMonotonicity = errors.New("monotonicity violation")

// MonotonicityError describes a [ErrMonotonicity] violation.
type MonotonicityError struct {
	Lattice  string // name of the property lattice
	Subject  string // the offending slot, if known
	Old, New string // text form of the values involved, if any
	Reason   string
}

func (e *MonotonicityError) Error() string {
	var b strings.Builder

	b.WriteString(ErrMonotonicity.Error())
	b.WriteString(" in ")
	b.WriteString(e.Lattice)

	if e.Subject != "" {
		b.WriteString(" of ")
		b.WriteString(e.Subject)
	}

	if e.Old != "" || e.New != "" {
		b.WriteString(" (")
		b.WriteString(e.Old)
		b.WriteString(" -> ")
		b.WriteString(e.New)
		b.WriteString(")")
	}

	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}

	return b.String()
}

// Is reports whether target is [ErrMonotonicity].
func (e *MonotonicityError) Is(target error) bool { return target == ErrMonotonicity }
