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

import "go/types"

// Shape classifies the underlying type of a type or field.
type Shape uint8

//go:generate go tool stringer -type Shape -linecomment
const (
	// Value is a type without references, like numbers, strings and arrays of them.
	Value Shape = iota // value

	// Struct is a struct type.
	Struct // struct

	// Interface is an interface type.
	Interface // interface

	// Ref is a package type, possibly behind a pointer.
	Ref // ref

	// Mutable is any other type that may reference shared memory.
	Mutable // mutable
)

// classify returns the shape of t and the referenced named type, if any.
func classify(t types.Type, local func(*types.Named) bool) (Shape, *types.Named) {
	t = types.Unalias(t)

	if ptr, ok := t.(*types.Pointer); ok {
		if n, ok := types.Unalias(ptr.Elem()).(*types.Named); ok && local(n) {
			return Ref, n
		}

		return Mutable, nil
	}

	if n, ok := t.(*types.Named); ok && local(n) {
		return Ref, n
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		return Value, nil

	case *types.Array:
		if s, _ := classify(u.Elem(), local); s == Value {
			return Value, nil
		}

		return Mutable, nil

	case *types.Struct:
		return Struct, nil

	case *types.Interface:
		return Interface, nil

	default:
		return Mutable, nil
	}
}
