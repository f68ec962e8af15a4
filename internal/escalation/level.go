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

package escalation

import (
	"fmt"
	"iter"
	"strings"
)

// Level is the break-delay level of a run.
//
// Levels double as the granularity of a computation: an element of granularity g may be
// resolved by force once the level reaches g.
type Level uint8

//go:generate go tool stringer -type Level -linecomment
const (
	// None permits no forced resolution.
	None Level = iota // NONE

	// Statement permits forced resolution of statements.
	Statement // STATEMENT

	// Field additionally permits forced resolution of fields.
	Field // FIELD

	// Method additionally permits forced resolution of methods.
	Method // METHOD

	// Type additionally permits forced resolution of types.
	Type // TYPE

	// MethodOverride additionally permits forced resolution of override groups. This is the terminal level.
	MethodOverride // METHOD_OVERRIDE
)

// Next returns the following level, saturating at [MethodOverride].
func (l Level) Next() Level {
	if l >= MethodOverride {
		return MethodOverride
	}

	return l + 1
}

// Terminal reports whether l is the last level of the ladder.
func (l Level) Terminal() bool { return l >= MethodOverride }

// Max returns the larger of l and o.
func (l Level) Max(o Level) Level { return max(l, o) }

// Accepts reports whether forced resolution of granularity g is permitted at level l.
func (l Level) Accepts(g Level) bool { return g != None && l >= g }

// AcceptStatement reports whether statements may be resolved by force.
func (l Level) AcceptStatement() bool { return l.Accepts(Statement) }

// AcceptField reports whether fields may be resolved by force.
func (l Level) AcceptField() bool { return l.Accepts(Field) }

// AcceptMethod reports whether methods may be resolved by force.
func (l Level) AcceptMethod() bool { return l.Accepts(Method) }

// AcceptType reports whether types may be resolved by force.
func (l Level) AcceptType() bool { return l.Accepts(Type) }

// AcceptMethodOverride reports whether override groups may be resolved by force.
func (l Level) AcceptMethodOverride() bool { return l.Accepts(MethodOverride) }

// Finest returns the smallest granularity in grains, or [None] when there is none.
func Finest(grains iter.Seq[Level]) Level {
	finest := None
	for g := range grains {
		if finest == None || g < finest {
			finest = g
		}
	}

	return finest
}

// Required combines the levels needed by concurrently stuck computations.
func Required(levels iter.Seq[Level]) Level {
	required := None
	for l := range levels {
		required = required.Max(l)
	}

	return required
}

// MarshalText implements [encoding.TextMarshaler].
func (l Level) MarshalText() ([]byte, error) {
	if l > MethodOverride {
		return nil, fmt.Errorf("unknown break-delay level %d", l)
	}

	return []byte(strings.ToLower(l.String())), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (l *Level) UnmarshalText(text []byte) error {
	name := strings.ToUpper(strings.ReplaceAll(string(text), "-", "_"))

	for c := None; c <= MethodOverride; c++ {
		if c.String() == name {
			*l = c

			return nil
		}
	}

	switch name {
	case "", "MAX", "ALL":
		*l = MethodOverride

		return nil
	}

	return fmt.Errorf("unknown break-delay level %q", string(text))
}
