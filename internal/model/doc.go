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

// Package model builds the program element graph of a type-checked Go package.
//
// Named package types become type elements, struct fields become field elements and methods,
// including interface methods, become method elements. Every top-level statement of a method
// body is a statement element. An interface method forms an override group with all methods
// of package types implementing it.
//
// Besides the graph, a [Model] records the syntactic facts property rules start from: which
// receiver fields a statement writes, which receiver methods it calls and which package type
// a field refers to.
package model
