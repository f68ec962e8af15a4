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

package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/trace"
	"slices"

	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/fixpoint/internal/delay"
	"fillmore-labs.com/fixpoint/internal/element"
	"fillmore-labs.com/fixpoint/internal/escalation"
	"fillmore-labs.com/fixpoint/internal/lattice"
	"fillmore-labs.com/fixpoint/internal/property"
)

// Scheduler drives all computations of a registry over an element graph to a fixpoint.
type Scheduler struct {
	graph     *element.Graph
	registry  *property.Registry
	workers   int
	maxRounds int
	policy    escalation.Policy
	logger    *slog.Logger
}

// New creates a [Scheduler] for the given graph and property kinds.
func New(g *element.Graph, r *property.Registry, opts ...Option) *Scheduler {
	s := &Scheduler{
		graph:    g,
		registry: r,
		workers:  1,
		logger:   slog.New(slog.DiscardHandler),
	}

	Options(opts).apply(s)

	return s
}

// run is the state of a single [Scheduler.Run]. Nothing outlives the run.
type run struct {
	*Scheduler
	table       *Table
	tracker     delay.Tracker
	level       escalation.Level
	rounds      int
	escalations []Escalation
}

// Run computes all property values.
//
// Computations are evaluated in rounds. Within a round every computation reads the values
// committed by previous rounds only, values computed in a round are committed after all
// evaluations of the round have finished. When a round makes no progress, the break-delay
// level is raised until cycles can be resolved by force.
//
// Run returns a non-nil [*Result] and an error matching [ErrUnresolvedCycle] when the ladder
// is exhausted. Rule defects abort the run with an error matching [lattice.ErrMonotonicity]
// or [property.ErrMalformedDependency]. The run can be canceled between rounds.
func (s *Scheduler) Run(ctx context.Context) (*Result, error) {
	ctx, task := trace.NewTask(ctx, "Fixpoint")
	defer task.End()

	r := &run{
		Scheduler: s,
		table:     newTable(s.graph, s.registry),
	}

	queue := r.units()
	forcible := make(map[property.Key]bool)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if s.maxRounds > 0 && r.rounds >= s.maxRounds {
			return nil, fmt.Errorf("%w after %d rounds", ErrRoundLimit, r.rounds)
		}

		r.rounds++

		progress, next, err := r.round(ctx, queue, forcible)
		if err != nil {
			return nil, err
		}

		round := escalation.Round{Pending: r.tracker.Len(), Progress: progress}

		var cycles []delay.Cycle
		if round.Pending > 0 && round.Progress == 0 {
			cycles = r.tracker.Cycles(r.granularity)
			round.Cycles = len(cycles)
		}

		clear(forcible)
		r.collectForcible(forcible, r.level, cycles)
		round.Forcible = len(forcible) > 0

		level, decision := s.policy.Decide(r.level, round)

		s.logger.LogAttrs(ctx, slog.LevelDebug, "Round",
			slog.Int("round", r.rounds),
			slog.String("level", r.level.String()),
			slog.Int("evaluated", len(queue)),
			slog.Int("final", progress),
			slog.Int("pending", round.Pending),
			slog.Int("cycles", round.Cycles),
			slog.String("decision", decision.String()),
		)

		switch decision {
		case escalation.Done:
			return r.result(nil), nil

		case escalation.Continue:
			queue = next

		case escalation.Force:
			queue = members(cycles)

		case escalation.Escalate:
			r.escalate(ctx, level, cycles)
			r.collectForcible(forcible, level, cycles)
			queue = members(cycles)

		default: // escalation.Unresolved
			res := r.result(cycles)

			return res, res.Err()
		}
	}
}

// units returns all computations in ascending order.
func (r *run) units() []property.Key {
	keys := make([]property.Key, 0, r.graph.Len()*r.registry.Len())

	for e := range element.ID(r.graph.Len()) {
		kind := r.graph.Kind(e)

		for k := range r.registry.All() {
			if k.Applies(kind) {
				keys = append(keys, property.Key{Kind: k.ID(), Element: e})
			}
		}
	}

	return keys
}

// round evaluates queue against the committed values, then commits the results.
// It returns the number of new final values and the computations to evaluate next.
func (r *run) round(ctx context.Context, queue []property.Key, forcible map[property.Key]bool) (int, []property.Key, error) {
	defer trace.StartRegion(ctx, "Round").End()

	results, err := r.evaluate(queue, forcible)
	if err != nil {
		return 0, nil, err
	}

	return r.commit(queue, results)
}

// evaluate runs the rules for all queued computations.
func (r *run) evaluate(queue []property.Key, forcible map[property.Key]bool) ([]property.Resolution, error) {
	results := make([]property.Resolution, len(queue))
	errs := make([]error, len(queue))

	eval := func(i int) {
		key := queue[i]
		in := property.NewInput(r.graph, r.registry, r.table, key, r.level, forcible[key])
		results[i], errs[i] = in.Evaluate()
	}

	if r.workers <= 1 || len(queue) <= 1 {
		for i := range queue {
			eval(i)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(r.workers)

		for i := range queue {
			g.Go(func() error {
				eval(i)

				return nil
			})
		}

		_ = g.Wait()
	}

	// Report the first error in queue order, independent of scheduling.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// commit stores the results of a round in queue order.
func (r *run) commit(queue []property.Key, results []property.Resolution) (int, []property.Key, error) {
	var finals, delayed []property.Key

	for i, key := range queue {
		res := results[i]

		if res.Value == lattice.Delayed {
			r.tracker.Block(key, res.Blocking)
			delayed = append(delayed, key)

			continue
		}

		if err := r.table.commit(key, res.Value, res.Approximate); err != nil {
			return 0, nil, err
		}

		r.tracker.Clear(key)
		finals = append(finals, key)
	}

	next := make(map[property.Key]struct{})

	for _, key := range finals {
		for _, d := range r.tracker.Dependents(key) {
			next[d] = struct{}{}
		}
	}

	// Blocking sets may name values committed earlier in this round.
	for _, key := range delayed {
		if slices.ContainsFunc(r.tracker.Blocking(key), r.table.Final) {
			next[key] = struct{}{}
		}
	}

	queue = make([]property.Key, 0, len(next))
	for key := range next {
		if r.tracker.Delayed(key) {
			queue = append(queue, key)
		}
	}

	slices.SortFunc(queue, property.Key.Compare)

	return len(finals), queue, nil
}

// granularity returns the granularity of a computation.
func (r *run) granularity(key property.Key) escalation.Level {
	return r.registry.Kind(key.Kind).Granularity(r.graph, key.Element)
}

// collectForcible adds the cycle members that may be resolved by force at level.
func (r *run) collectForcible(forcible map[property.Key]bool, level escalation.Level, cycles []delay.Cycle) {
	for _, c := range cycles {
		for _, m := range c.Members {
			g := r.granularity(m)
			if !level.Accepts(g) {
				continue
			}

			if _, ok := r.registry.Kind(m.Kind).Fallback(g); ok {
				forcible[m] = true
			}
		}
	}
}

// escalate raises the break-delay level.
func (r *run) escalate(ctx context.Context, level escalation.Level, cycles []delay.Cycle) {
	required := escalation.Required(func(yield func(escalation.Level) bool) {
		for _, c := range cycles {
			if !yield(c.Granularity) {
				return
			}
		}
	})

	r.escalations = append(r.escalations, Escalation{
		Round:    r.rounds,
		From:     r.level,
		To:       level,
		Required: required,
		Cycles:   len(cycles),
	})

	trace.Log(ctx, "level", level.String())

	r.logger.LogAttrs(ctx, slog.LevelDebug, "Escalate",
		slog.Int("round", r.rounds),
		slog.String("from", r.level.String()),
		slog.String("to", level.String()),
		slog.String("required", required.String()),
	)

	r.level = level
}

// result captures the state of the run. Delayed computations outside of cycles are reported as waiting.
func (r *run) result(cycles []delay.Cycle) *Result {
	res := &Result{
		graph:       r.graph,
		registry:    r.registry,
		table:       r.table,
		level:       r.level,
		rounds:      r.rounds,
		escalations: r.escalations,
		unresolved:  cycles,
	}

	for _, key := range r.tracker.Keys() {
		if !slices.ContainsFunc(cycles, func(c delay.Cycle) bool { return c.Contains(key) }) {
			res.waiting = append(res.waiting, key)
		}
	}

	return res
}

// members returns all cycle members in ascending order.
func members(cycles []delay.Cycle) []property.Key {
	var keys []property.Key
	for _, c := range cycles {
		keys = append(keys, c.Members...)
	}

	slices.SortFunc(keys, property.Key.Compare)

	return slices.Compact(keys)
}
