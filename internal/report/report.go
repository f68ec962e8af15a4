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

package report

import (
	"context"
	"fmt"
	"go/token"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/fixpoint/internal/astutil"
	"fillmore-labs.com/fixpoint/internal/config"
	"fillmore-labs.com/fixpoint/internal/element"
	"fillmore-labs.com/fixpoint/internal/lattice"
	"fillmore-labs.com/fixpoint/internal/property"
	"fillmore-labs.com/fixpoint/internal/rules"
	"fillmore-labs.com/fixpoint/internal/schedule"
)

// Reporter emits the diagnostics of a completed run.
type Reporter struct {
	pass     *analysis.Pass
	files    []astutil.CurrentFile
	behavior config.Flags
}

// New creates a [Reporter] for the files of a pass.
func New(p *analysis.Pass, files []astutil.CurrentFile, behavior config.Flags) *Reporter {
	return &Reporter{pass: p, files: files, behavior: behavior}
}

// Report emits diagnostics for the unresolved computations of res and, when enabled,
// for immutable types and modifying methods.
func (r *Reporter) Report(ctx context.Context, c *rules.Catalogue, res *schedule.Result) {
	defer trace.StartRegion(ctx, "Report").End()

	r.reportCycles(res)
	r.reportWaiting(res)

	if r.behavior.Enabled(config.ReportImmutable) {
		r.reportImmutable(c, res)
	}

	if r.behavior.Enabled(config.ReportModifying) {
		r.reportModifying(c, res)
	}
}

// reportCycles emits one diagnostic per member of an unresolved cycle.
func (r *Reporter) reportCycles(res *schedule.Result) {
	g, reg := res.Graph(), res.Registry()

	for _, cycle := range res.Unresolved() {
		for _, key := range cycle.Members {
			pos := g.Pos(key.Element)
			if r.suppressed(pos) {
				continue
			}

			related := make([]analysis.RelatedInformation, 0, len(cycle.Members)-1)
			for _, other := range cycle.Members {
				if other == key {
					continue
				}

				related = append(related, analysis.RelatedInformation{
					Pos:     g.Pos(other.Element),
					Message: "Depends on " + reg.Describe(g, other),
				})
			}

			r.pass.Report(analysis.Diagnostic{
				Pos:     pos,
				Message: fmt.Sprintf("%s is undetermined: cyclic dependency (fp:cyc)", reg.Describe(g, key)),
				Related: related,
			})
		}
	}
}

// reportWaiting emits diagnostics for computations blocked by an unresolved cycle.
func (r *Reporter) reportWaiting(res *schedule.Result) {
	g, reg := res.Graph(), res.Registry()

	for _, key := range res.Waiting() {
		pos := g.Pos(key.Element)
		if r.suppressed(pos) {
			continue
		}

		r.pass.Report(analysis.Diagnostic{
			Pos:     pos,
			Message: fmt.Sprintf("%s is undetermined: depends on a cyclic dependency (fp:dep)", reg.Describe(g, key)),
		})
	}
}

func (r *Reporter) reportImmutable(c *rules.Catalogue, res *schedule.Result) {
	g := res.Graph()

	for t := range g.All(element.Type) {
		v, suffix, ok := r.lookup(res, property.Key{Kind: c.Immutability, Element: t})
		if !ok {
			continue
		}

		var format string

		switch v {
		case rules.Immutable:
			format = "Type %s is immutable%s (fp:imm)"

		case rules.FinalFields:
			format = "Type %s has only final fields%s (fp:imm)"

		default:
			continue
		}

		r.report(g.Pos(t), format, g.Name(t), suffix)
	}
}

func (r *Reporter) reportModifying(c *rules.Catalogue, res *schedule.Result) {
	g, m := res.Graph(), c.Model()

	for e := range g.All(element.Method) {
		if m.Abstract(e) || !m.PointerReceiver(e) {
			continue
		}

		v, suffix, ok := r.lookup(res, property.Key{Kind: c.Modifying, Element: e})
		if !ok || v != rules.Modified {
			continue
		}

		r.report(g.Pos(e), "Method %s modifies its receiver%s (fp:mod)", g.QualifiedName(e), suffix)
	}
}

// lookup returns the determined value of key with a suffix marking approximate values.
func (r *Reporter) lookup(res *schedule.Result, key property.Key) (v lattice.Value, suffix string, ok bool) {
	v, status := res.Lookup(key)

	switch status {
	case schedule.Proven:
		return v, "", true

	case schedule.Approximate:
		if !r.behavior.Enabled(config.ReportApproximate) {
			return v, "", false
		}

		return v, " (assumed)", true

	default:
		return v, "", false
	}
}

func (r *Reporter) report(pos token.Pos, format string, args ...any) {
	if r.suppressed(pos) {
		return
	}

	r.pass.Report(analysis.Diagnostic{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// suppressed reports whether diagnostics at pos are excluded by a nolint comment or a generated file.
func (r *Reporter) suppressed(pos token.Pos) bool {
	for _, f := range r.files {
		if !f.Contains(pos) {
			continue
		}

		if f.Generated() && !r.behavior.Enabled(config.IncludeGenerated) {
			return true
		}

		return f.NoLint() || f.NoLintComment(pos)
	}

	return false
}
