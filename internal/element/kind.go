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

// Kind is the structural kind of a program element.
type Kind uint8

//go:generate go tool stringer -type Kind -linecomment
const (
	// Statement is a statement of a method body.
	Statement Kind = iota // statement

	// Field is a field of a type.
	Field // field

	// Method is a method of a type.
	Method // method

	// Type is a declared type.
	Type // type

	numKinds = iota
)

// Kinds lists all element kinds, finest first.
var Kinds = [...]Kind{Statement, Field, Method, Type}

// parentKind returns the required parent kind for k and whether k has a parent.
func (k Kind) parentKind() (Kind, bool) {
	switch k {
	case Statement:
		return Method, true

	case Field, Method:
		return Type, true

	default:
		return 0, false
	}
}
