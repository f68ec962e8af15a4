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

package model

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"slices"
	"strconv"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/fixpoint/internal/element"
)

// Collector gathers the declarations of a package into a [Model].
type Collector struct {
	pkg   *types.Package
	info  *types.Info
	specs []*ast.TypeSpec
	funcs []inspector.Cursor
}

// NewCollector creates a [Collector] for a type-checked package.
func NewCollector(pkg *types.Package, info *types.Info) *Collector {
	return &Collector{pkg: pkg, info: info}
}

// AddFile adds the top-level type and function declarations of a file.
func (c *Collector) AddFile(file inspector.Cursor) {
	for decl := range file.Children() {
		switch d := decl.Node().(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}

			for _, spec := range d.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok {
					c.specs = append(c.specs, ts)
				}
			}

		case *ast.FuncDecl:
			if d.Body != nil {
				c.funcs = append(c.funcs, decl)
			}
		}
	}
}

// collection is the state of [Collector.Build].
type collection struct {
	*Collector
	builder element.Builder

	named   []*types.Named // per type element
	types   map[*types.TypeName]element.ID
	fields  map[*types.Var]element.ID
	methods map[*types.Func]element.ID

	shapes    map[element.ID]Shape
	refs      map[element.ID]element.ID
	abstract  map[element.ID]bool
	pointer   map[element.ID]bool
	bodies    []body
	writes    map[element.ID][]element.ID
	calls     map[element.ID][]element.ID
	self      map[element.ID]bool
	external  map[element.ID]bool
	overrides [][2]element.ID
}

// body is a function declaration with its method element, if any.
type body struct {
	decl    inspector.Cursor
	method  element.ID
	recv    *types.Var
	named   *types.Named
	pointer bool
}

// Build creates the [Model] of all added declarations.
func (c *Collector) Build() (*Model, error) {
	s := collection{
		Collector: c,
		types:     make(map[*types.TypeName]element.ID),
		fields:    make(map[*types.Var]element.ID),
		methods:   make(map[*types.Func]element.ID),
		shapes:    make(map[element.ID]Shape),
		refs:      make(map[element.ID]element.ID),
		abstract:  make(map[element.ID]bool),
		pointer:   make(map[element.ID]bool),
		writes:    make(map[element.ID][]element.ID),
		calls:     make(map[element.ID][]element.ID),
		self:      make(map[element.ID]bool),
		external:  make(map[element.ID]bool),
	}

	s.addTypes()
	s.addMembers()
	s.addMethods()
	s.addStatements()
	s.addOverrides()

	g, err := s.builder.Build()
	if err != nil {
		return nil, fmt.Errorf("package %s: %w", c.pkg.Path(), err)
	}

	return s.model(g), nil
}

func (s *collection) local(n *types.Named) bool {
	_, ok := s.types[n.Origin().Obj()]

	return ok
}

func (s *collection) addTypes() {
	for _, spec := range s.specs {
		obj, ok := s.info.Defs[spec.Name].(*types.TypeName)
		if !ok || obj.IsAlias() {
			continue
		}

		named, ok := obj.Type().(*types.Named)
		if !ok {
			continue
		}

		id := s.builder.AddType(obj.Name(), spec.Name.Pos())
		s.types[obj] = id
		s.named = append(s.named, named)
	}
}

// addMembers adds struct fields and interface methods and classifies all types.
func (s *collection) addMembers() {
	for i, named := range s.named {
		id := element.ID(i)

		switch u := named.Underlying().(type) {
		case *types.Struct:
			s.shapes[id] = Struct

			for f := range u.Fields() {
				fid := s.builder.AddField(id, f.Name(), f.Pos())
				s.fields[f] = fid

				shape, ref := classify(f.Type(), s.local)
				s.shapes[fid] = shape
				s.refs[fid] = s.ref(ref)
			}

		case *types.Interface:
			s.shapes[id] = Interface

			for m := range u.ExplicitMethods() {
				mid := s.builder.AddMethod(id, m.Name(), m.Pos())
				s.methods[m] = mid
				s.abstract[mid] = true
			}

		default:
			shape, ref := classify(u, s.local)
			s.shapes[id] = shape
			s.refs[id] = s.ref(ref)
		}
	}
}

func (s *collection) ref(n *types.Named) element.ID {
	if n == nil {
		return element.NoID
	}

	return s.types[n.Origin().Obj()]
}

func (s *collection) addMethods() {
	for _, decl := range s.funcs {
		fn := decl.Node().(*ast.FuncDecl)

		b := body{decl: decl, method: element.NoID}

		if obj, ok := s.info.Defs[fn.Name].(*types.Func); ok && fn.Recv != nil {
			named, pointer := receiver(obj.Signature().Recv().Type())

			if named != nil {
				if tid, ok := s.types[named.Origin().Obj()]; ok {
					b.method = s.builder.AddMethod(tid, obj.Name(), fn.Name.Pos())
					b.named = named.Origin()
					b.recv = receiverVar(s.info, fn)
					b.pointer = pointer
					s.methods[obj] = b.method
					s.pointer[b.method] = pointer
				}
			}
		}

		s.bodies = append(s.bodies, b)
	}
}

// receiver returns the named receiver type and whether it is a pointer.
func receiver(t types.Type) (*types.Named, bool) {
	t = types.Unalias(t)

	ptr, pointer := t.(*types.Pointer)
	if pointer {
		t = types.Unalias(ptr.Elem())
	}

	named, _ := t.(*types.Named)

	return named, pointer
}

func receiverVar(info *types.Info, fn *ast.FuncDecl) *types.Var {
	if len(fn.Recv.List) == 0 || len(fn.Recv.List[0].Names) == 0 {
		return nil
	}

	v, _ := info.Defs[fn.Recv.List[0].Names[0]].(*types.Var)

	return v
}

// addStatements adds the top-level statements of method bodies and records their facts.
func (s *collection) addStatements() {
	for _, b := range s.bodies {
		f := facts{collection: s, recv: b.recv, pointer: b.pointer}
		if b.named != nil {
			f.own, _ = b.named.Underlying().(*types.Struct)
		}

		block := b.decl.ChildAt(edge.FuncDecl_Body, -1)

		i := 0
		for stmt := range block.Children() {
			if b.method == element.NoID {
				f.collect(stmt) // writes outside of methods are external

				continue
			}

			i++
			id := s.builder.AddStatement(b.method, "#"+strconv.Itoa(i), stmt.Node().Pos())

			f.collect(stmt)
			s.writes[id], s.calls[id], s.self[id] = f.flush()
		}
	}
}

// addOverrides links interface methods with the methods implementing them.
func (s *collection) addOverrides() {
	for i, iface := range s.named {
		it, ok := iface.Underlying().(*types.Interface)
		if !ok || it.NumMethods() == 0 || iface.TypeParams().Len() > 0 {
			continue
		}

		for j, impl := range s.named {
			if i == j || impl.TypeParams().Len() > 0 {
				continue
			}

			var t types.Type = impl
			if !types.IsInterface(impl) {
				t = types.NewPointer(impl)
			}

			if !types.Implements(t, it) {
				continue
			}

			mset := types.NewMethodSet(t)

			for m := range it.Methods() {
				im, ok := s.methods[m.Origin()]
				if !ok {
					continue
				}

				sel := mset.Lookup(m.Pkg(), m.Name())
				if sel == nil {
					continue
				}

				fn, ok := sel.Obj().(*types.Func)
				if !ok {
					continue
				}

				if cm, ok := s.methods[fn.Origin()]; ok && cm != im {
					s.overrides = append(s.overrides, [2]element.ID{im, cm})
				}
			}
		}
	}

	for _, o := range s.overrides {
		s.builder.Override(o[0], o[1])
	}
}

func (s *collection) model(g *element.Graph) *Model {
	n := g.Len()

	m := &Model{
		graph:     g,
		shapes:    make([]Shape, n),
		refs:      make([]element.ID, n),
		writes:    make([][]element.ID, n),
		calls:     make([][]element.ID, n),
		self:      make([]bool, n),
		writers:   make([][]element.ID, n),
		external:  make([]bool, n),
		abstract:  make([]bool, n),
		receivers: make([]bool, n),
	}

	for e := range element.ID(n) {
		m.shapes[e] = s.shapes[e]
		m.external[e] = s.external[e]
		m.abstract[e] = s.abstract[e]
		m.receivers[e] = s.pointer[e]

		m.refs[e] = element.NoID
		if ref, ok := s.refs[e]; ok {
			m.refs[e] = ref
		}
	}

	for stmt := range g.All(element.Statement) {
		m.writes[stmt] = s.writes[stmt]
		m.calls[stmt] = s.calls[stmt]
		m.self[stmt] = s.self[stmt]

		for _, f := range s.writes[stmt] {
			m.writers[f] = append(m.writers[f], stmt)
		}
	}

	for f := range g.All(element.Field) {
		slices.Sort(m.writers[f])
	}

	return m
}
