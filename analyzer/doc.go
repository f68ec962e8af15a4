// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

// Package analyzer implements the fixpoint static analysis pass.
//
// # Overview
//
// fixpoint infers, for every type and method declared in a package, whether methods modify
// their receiver and whether values of a type can change after construction. Properties depend
// on each other: a method is modifying when one of its statements calls a modifying method, a
// struct is immutable when its fields hold immutable values. Recursive types and mutually
// recursive methods make these dependencies cyclic.
//
// # Cycles
//
// Computations are repeated until no value changes. When a cycle blocks progress, the analyzer
// resolves it by assuming the weakest value for one granularity of program elements at a time:
// statements first, then fields, methods, types and finally override groups. Results derived
// from such an assumption are marked "(assumed)". Cycles that remain below the level configured
// with -max-level are reported:
//
//	type Ping struct { // immutability of Ping is undetermined: cyclic dependency (fp:cyc)
//	    next *Pong
//	}
//
// # Reports
//
// With -immutable, types whose values never change are reported (fp:imm). With -modifying,
// methods writing their receiver are reported (fp:mod). Diagnostics are suppressed by a
// //nolint:fixpoint comment on the declaration line.
package analyzer
