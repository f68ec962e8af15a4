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

package analyzer

import (
	"flag"

	"fillmore-labs.com/fixpoint/internal/config"
	"fillmore-labs.com/fixpoint/internal/run"
)

// registerFlags binds the [run.Options] values to command line flag values.
// A nil flag set value defaults to the program's command line.
func registerFlags(flags *flag.FlagSet, r *run.Options) {
	if flags == nil {
		flags = flag.CommandLine
	}

	behavior := []struct {
		name  string
		flag  config.Behavior
		usage string
	}{
		{"generated", config.IncludeGenerated, "check generated files"},
		{"immutable", config.ReportImmutable, "report immutable types"},
		{"modifying", config.ReportModifying, "report methods modifying their receiver"},
		{"approximate", config.ReportApproximate, "include results of forced cycle resolution in reports"},
	}

	for _, b := range behavior {
		flags.Var(boolValue[config.Behavior, *config.Flags]{&r.Behavior, b.flag}, b.name, b.usage)
	}

	flags.TextVar(&r.MaxLevel, "max-level", r.MaxLevel, "highest break-delay level (none, statement, field, method, type, method_override)")
	flags.IntVar(&r.Workers, "workers", r.Workers, "number of concurrent evaluations")
}
