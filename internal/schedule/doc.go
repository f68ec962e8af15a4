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

// Package schedule computes the fixpoint of a set of property kinds over an element graph.
//
// # Rounds
//
// Every computation, a pair of property kind and element, is evaluated in rounds. All
// evaluations of a round read the values committed by earlier rounds, so the outcome does not
// depend on the number of workers. Computations blocked on values that are not final yet are
// delayed and requeued once a blocker becomes final.
//
// # Break-delay escalation
//
// A round without progress means the delayed computations wait on each other. The scheduler
// finds the cycles among them and raises the break-delay level one step at a time. At each level
// cycle members of an accepted granularity are resolved by force with the fallback value of
// their kind. Values depending on forced results are reported as approximate. When the highest
// permitted level is reached without resolving a cycle, the run ends with [ErrUnresolvedCycle]
// and a partial [Result].
package schedule
