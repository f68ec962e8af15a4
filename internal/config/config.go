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

package config

// Behavior represents reporting options of the analyzer.
type Behavior uint8

const (
	// IncludeGenerated reports diagnostics in generated files.
	IncludeGenerated Behavior = 1 << iota

	// ReportImmutable reports types that are immutable or have only final fields.
	ReportImmutable

	// ReportModifying reports methods that modify their receiver.
	ReportModifying

	// ReportApproximate includes results derived from forced resolution in the optional reports.
	ReportApproximate
)

// Flags is a set of [Behavior] options.
type Flags = BitMask[Behavior]

// DefaultFlags returns the default reporting options.
func DefaultFlags() Flags {
	return NewBitMask(ReportApproximate)
}
