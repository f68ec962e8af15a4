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

package element_test

import (
	"errors"
	"go/token"
	"slices"
	"testing"

	. "fillmore-labs.com/fixpoint/internal/element"
)

func TestGraph(t *testing.T) {
	t.Parallel()

	var b Builder

	iface := b.AddType("Shape", token.NoPos)
	area := b.AddMethod(iface, "Area", token.NoPos)

	square := b.AddType("Square", token.NoPos)
	side := b.AddField(square, "side", token.NoPos)
	squareArea := b.AddMethod(square, "Area", token.NoPos)
	stmt := b.AddStatement(squareArea, "0", token.NoPos)

	circle := b.AddType("Circle", token.NoPos)
	circleArea := b.AddMethod(circle, "Area", token.NoPos)
	grow := b.AddMethod(circle, "Grow", token.NoPos)

	b.Override(circleArea, area)
	b.Override(area, squareArea)

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got, want := g.Len(), 9; got != want {
		t.Errorf("Got %d elements, want %d", got, want)
	}

	if got, want := g.Kind(stmt), Statement; got != want {
		t.Errorf("Got kind %s, want %s", got, want)
	}

	if got, want := g.Owner(stmt), square; got != want {
		t.Errorf("Got owner %d, want %d", got, want)
	}

	if got, want := g.QualifiedName(stmt), "Square.Area.0"; got != want {
		t.Errorf("Got name %q, want %q", got, want)
	}

	if got, want := g.Groups(), 1; got != want {
		t.Fatalf("Got %d groups, want %d", got, want)
	}

	group := g.Group(squareArea)
	if got, want := g.Members(group), []ID{area, squareArea, circleArea}; !slices.Equal(got, want) {
		t.Errorf("Got members %v, want %v", got, want)
	}

	if got, want := slices.Collect(g.Overrides(area)), []ID{squareArea, circleArea}; !slices.Equal(got, want) {
		t.Errorf("Got overrides %v, want %v", got, want)
	}

	if got := g.Group(grow); got != NoGroup {
		t.Errorf("Got group %d for unlinked method, want none", got)
	}

	if got, want := g.Children(square), []ID{side, squareArea}; !slices.Equal(got, want) {
		t.Errorf("Got children %v, want %v", got, want)
	}

	if got, want := slices.Collect(g.ChildrenOf(circle, Method)), []ID{circleArea, grow}; !slices.Equal(got, want) {
		t.Errorf("Got methods %v, want %v", got, want)
	}

	if got, want := slices.Collect(g.All(Type)), []ID{iface, square, circle}; !slices.Equal(got, want) {
		t.Errorf("Got types %v, want %v", got, want)
	}
}

func TestBuilderErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func(b *Builder)
		want  error
	}{
		{
			name: "StatementInType",
			build: func(b *Builder) {
				typ := b.AddType("T", token.NoPos)
				b.AddStatement(typ, "0", token.NoPos)
			},
			want: ErrInvalidParent,
		},
		{
			name: "FieldWithoutParent",
			build: func(b *Builder) {
				b.AddField(NoID, "f", token.NoPos)
			},
			want: ErrInvalidParent,
		},
		{
			name: "OverrideField",
			build: func(b *Builder) {
				typ := b.AddType("T", token.NoPos)
				f := b.AddField(typ, "f", token.NoPos)
				m := b.AddMethod(typ, "m", token.NoPos)
				b.Override(f, m)
			},
			want: ErrInvalidOverride,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var b Builder
			tt.build(&b)

			if _, err := b.Build(); !errors.Is(err, tt.want) {
				t.Errorf("Got error %v, want %v", err, tt.want)
			}
		})
	}
}
