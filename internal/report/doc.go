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

// Package report turns the result of a fixpoint run into analysis diagnostics.
//
// Every diagnostic message ends with a short code:
//
//   - fp:cyc a computation in a cycle that could not be resolved at the permitted break-delay level
//   - fp:dep a computation waiting on an unresolved cycle
//   - fp:imm an immutable type, or a type with only final fields
//   - fp:mod a method modifying its receiver
//
// Results derived from forced resolution are marked "(assumed)".
package report
