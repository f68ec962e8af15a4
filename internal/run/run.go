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

package run

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/fixpoint/internal/astutil"
	"fillmore-labs.com/fixpoint/internal/model"
	"fillmore-labs.com/fixpoint/internal/property"
	"fillmore-labs.com/fixpoint/internal/report"
	"fillmore-labs.com/fixpoint/internal/rules"
	"fillmore-labs.com/fixpoint/internal/schedule"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// Run executes the fixpoint analyzer's pipeline.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("fixpoint: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	ctx, task := trace.NewTask(context.Background(), "Analyze")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	collector := model.NewCollector(p.Pkg, p.TypesInfo)

	var (
		files []astutil.CurrentFile
		first *ast.File
	)

	// Stage 1: Collect declarations of all files, reports are filtered later
	for f := range in.Root().Children() {
		file := f.Node().(*ast.File)

		currentFile := astutil.NewCurrentFile(p.Fset, file)
		if !currentFile.Valid() {
			astutil.InternalError(p, file, "File %s without valid info", file.Name.Name)

			continue
		}

		if first == nil {
			first = file
		}

		files = append(files, currentFile)
		collector.AddFile(f)
	}

	if first == nil {
		return nil, nil
	}

	m, err := buildModel(ctx, collector)
	if err != nil {
		astutil.InternalError(p, first, "Can't build model: %v", err)

		return nil, nil
	}

	// Stage 2: Register the property catalogue and compute the fixpoint
	var registry property.Registry

	c, err := rules.Register(&registry, m)
	if err != nil {
		return nil, fmt.Errorf("fixpoint: %w", err)
	}

	s := schedule.New(m.Graph(), &registry,
		schedule.WithWorkers(r.Workers),
		schedule.WithMaxLevel(r.MaxLevel),
		schedule.WithLogger(r.Logger),
	)

	res, err := s.Run(ctx)
	if err != nil && !errors.Is(err, schedule.ErrUnresolvedCycle) {
		astutil.InternalError(p, first, "Fixpoint computation failed: %v", err)

		return nil, nil
	}

	// Stage 3: Generate diagnostics
	report.New(p, files, r.Behavior).Report(ctx, c, res)

	return nil, nil
}

func buildModel(ctx context.Context, c *model.Collector) (*model.Model, error) {
	defer trace.StartRegion(ctx, "Model").End()

	return c.Build()
}
