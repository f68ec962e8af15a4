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

// Decision is the outcome of [Policy.Decide] after a completed round.
type Decision uint8

//go:generate go tool stringer -type Decision -linecomment
const (
	// Continue means the round made progress, the next round runs at the same level.
	Continue Decision = iota // continue

	// Done means no computation is pending.
	Done // done

	// Force means the round stalled, but some cycle members may already be resolved by force at the current level.
	Force // force

	// Escalate means the round stalled and the level advances.
	Escalate // escalate

	// Unresolved means the round stalled at the highest permitted level.
	Unresolved // unresolved
)

// Round summarizes a completed round for the [Policy].
type Round struct {
	Pending  int  // computations still delayed after the round
	Progress int  // computations that became final in the round
	Cycles   int  // closed cycles among the delayed computations
	Forcible bool // some cycle member may be resolved by force at the current level
}

// Policy is the break-delay escalation state machine.
//
// The zero value escalates up to [MethodOverride].
type Policy struct {
	// Limit caps the ladder when Capped is set. A cap at [None] permits no forcing at all.
	Limit  Level
	Capped bool
}

// CappedAt returns a policy that escalates up to limit.
func CappedAt(limit Level) Policy { return Policy{Limit: limit, Capped: true} }

// Ceiling returns the highest level the policy may reach.
func (p Policy) Ceiling() Level {
	if !p.Capped || p.Limit > MethodOverride {
		return MethodOverride
	}

	return p.Limit
}

// Decide returns the level for the next round and what to do with it.
//
// The level never decreases.
func (p Policy) Decide(current Level, r Round) (Level, Decision) {
	switch {
	case r.Pending == 0:
		return current, Done

	case r.Progress > 0:
		return current, Continue

	case r.Cycles == 0:
		// Stalled without a cycle, no amount of forcing helps.
		return current, Unresolved

	case r.Forcible:
		return current, Force

	case current >= p.Ceiling():
		return current, Unresolved

	default:
		return current.Next(), Escalate
	}
}
