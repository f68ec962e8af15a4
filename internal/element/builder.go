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

package element

import (
	"errors"
	"fmt"
	"go/token"
	"slices"
)

// ErrInvalidParent is returned by [Builder.Build] when an element was attached to a parent of the wrong kind.
var ErrInvalidParent = errors.New("invalid parent element")

// ErrInvalidOverride is returned by [Builder.Build] when an override link does not connect two methods.
var ErrInvalidOverride = errors.New("invalid override link")

// Builder constructs an immutable [Graph].
//
// The zero value is ready to use.
type Builder struct {
	kinds   []Kind
	parents []ID
	names   []string
	pos     []token.Pos
	link    []ID // union-find parents for override links, NoID for unlinked elements
	err     error
}

// AddType registers a type.
func (b *Builder) AddType(name string, pos token.Pos) ID {
	return b.add(Type, NoID, name, pos)
}

// AddField registers a field of the type parent.
func (b *Builder) AddField(parent ID, name string, pos token.Pos) ID {
	return b.add(Field, parent, name, pos)
}

// AddMethod registers a method of the type parent.
func (b *Builder) AddMethod(parent ID, name string, pos token.Pos) ID {
	return b.add(Method, parent, name, pos)
}

// AddStatement registers a statement of the method parent.
func (b *Builder) AddStatement(parent ID, name string, pos token.Pos) ID {
	return b.add(Statement, parent, name, pos)
}

func (b *Builder) add(kind Kind, parent ID, name string, pos token.Pos) ID {
	id := ID(len(b.kinds))

	if want, ok := kind.parentKind(); ok && (!b.valid(parent) || b.kinds[parent] != want) {
		b.fail(fmt.Errorf("%w: %s %q needs a %s parent, got %d", ErrInvalidParent, kind, name, want, parent))
	}

	b.kinds = append(b.kinds, kind)
	b.parents = append(b.parents, parent)
	b.names = append(b.names, name)
	b.pos = append(b.pos, pos)
	b.link = append(b.link, NoID)

	return id
}

// Override records that the methods a and b override one another, directly or through a common interface.
func (b *Builder) Override(x, y ID) {
	if !b.valid(x) || !b.valid(y) || b.kinds[x] != Method || b.kinds[y] != Method {
		b.fail(fmt.Errorf("%w: %d and %d", ErrInvalidOverride, x, y))

		return
	}

	rx, ry := b.root(x), b.root(y)
	if rx == ry {
		return
	}

	// Lower id becomes the representative, keeping group numbering independent of link order.
	if ry < rx {
		rx, ry = ry, rx
	}

	b.link[ry] = rx
}

func (b *Builder) root(id ID) ID {
	if b.link[id] == NoID {
		b.link[id] = id
	}

	for b.link[id] != id {
		b.link[id] = b.link[b.link[id]] // path halving
		id = b.link[id]
	}

	return id
}

func (b *Builder) valid(id ID) bool {
	return id >= 0 && int(id) < len(b.kinds)
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build freezes the registered elements into a [Graph].
func (b *Builder) Build() (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}

	n := len(b.kinds)

	g := &Graph{
		kinds:    slices.Clone(b.kinds),
		parents:  slices.Clone(b.parents),
		names:    slices.Clone(b.names),
		pos:      slices.Clone(b.pos),
		groups:   make([]GroupID, n),
		children: make([][]ID, n),
	}

	index := make(map[ID]GroupID)

	for i := range n {
		id := ID(i)

		kind := b.kinds[id]
		g.byKind[kind] = append(g.byKind[kind], id)

		if parent := b.parents[id]; parent != NoID {
			g.children[parent] = append(g.children[parent], id)
		}

		g.groups[id] = NoGroup
		if b.link[id] == NoID {
			continue
		}

		r := b.root(id)

		group, ok := index[r]
		if !ok {
			group = GroupID(len(g.members))
			index[r] = group
			g.members = append(g.members, nil)
		}

		g.groups[id] = group
		g.members[group] = append(g.members[group], id)
	}

	return g, nil
}
