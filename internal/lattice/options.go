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

package lattice

import "fmt"

// Option configures the order and final values of a [New] lattice.
type Option interface {
	apply(b *builder)
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

func (o Options) apply(b *builder) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(b)
	}
}

// builder collects the declarations of [Option]s.
type builder struct {
	index    map[string]Value
	covers   [][2]Value
	final    set
	allFinal bool
	err      error
}

func (b *builder) lookup(name string) (Value, bool) {
	v, ok := b.index[name]
	if !ok && b.err == nil {
		b.err = fmt.Errorf("unknown value %q", name)
	}

	return v, ok
}

// WithOrder is an [Option] declaring lower < upper.
func WithOrder(lower, upper string) Option { return orderOption{lower: lower, upper: upper} }

type orderOption struct{ lower, upper string }

func (o orderOption) apply(b *builder) {
	lower, ok1 := b.lookup(o.lower)
	upper, ok2 := b.lookup(o.upper)

	if !ok1 || !ok2 {
		return
	}

	b.covers = append(b.covers, [2]Value{lower, upper})
}

// WithFinal is an [Option] declaring the final values. Without it, the maximal elements are final.
func WithFinal(names ...string) Option { return finalOption{names: names} }

type finalOption struct{ names []string }

func (o finalOption) apply(b *builder) {
	for _, name := range o.names {
		if v, ok := b.lookup(name); ok {
			b.final |= 1 << v
		}
	}
}

// WithAllFinal is an [Option] declaring every proper value final.
func WithAllFinal() Option { return allFinalOption{} }

type allFinalOption struct{}

func (allFinalOption) apply(b *builder) { b.allFinal = true }
