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
	"go/ast"
	"go/token"
	"go/types"
	"maps"
	"slices"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/fixpoint/internal/element"
)

// facts collects the field writes and method calls of statements.
//
// Only a pointer receiver is tracked, writes through a value receiver modify a copy.
type facts struct {
	*collection
	recv    *types.Var
	pointer bool
	own     *types.Struct // receiver struct, or nil

	written map[element.ID]struct{}
	called  map[element.ID]struct{}
	self    bool
}

// collect records the facts of stmt, including nested function literals.
func (f *facts) collect(stmt inspector.Cursor) {
	filter := []ast.Node{
		(*ast.AssignStmt)(nil),
		(*ast.IncDecStmt)(nil),
		(*ast.RangeStmt)(nil),
		(*ast.UnaryExpr)(nil),
		(*ast.SelectorExpr)(nil),
	}

	for c := range stmt.Preorder(filter...) {
		switch n := c.Node().(type) {
		case *ast.AssignStmt:
			if n.Tok == token.DEFINE {
				continue
			}

			for _, lhs := range n.Lhs {
				f.write(lhs)
			}

		case *ast.IncDecStmt:
			f.write(n.X)

		case *ast.RangeStmt:
			if n.Tok == token.ASSIGN {
				f.write(n.Key)
				f.write(n.Value)
			}

		case *ast.UnaryExpr:
			if n.Op == token.AND {
				f.write(n.X)
			}

		case *ast.SelectorExpr:
			f.call(n)
		}
	}
}

// flush returns and resets the facts collected since the last call.
func (f *facts) flush() (writes, calls []element.ID, self bool) {
	writes = slices.Sorted(maps.Keys(f.written))
	calls = slices.Sorted(maps.Keys(f.called))
	self = f.self

	clear(f.written)
	clear(f.called)
	f.self = false

	return writes, calls, self
}

// write records the fields assigned by the target expression.
func (f *facts) write(expr ast.Expr) {
	for expr != nil {
		switch e := expr.(type) {
		case *ast.ParenExpr:
			expr = e.X

		case *ast.StarExpr:
			if f.receiver(e.X) {
				f.whole()
			}

			return

		case *ast.IndexExpr:
			if f.indirect(e.X) {
				return
			}

			expr = e.X

		case *ast.SelectorExpr:
			if f.receiver(e.X) {
				f.field(e)

				return
			}

			f.foreign(e)

			if f.indirect(e.X) {
				return
			}

			expr = e.X

		default:
			return
		}
	}
}

// receiver reports whether expr is the receiver of the current method.
func (f *facts) receiver(expr ast.Expr) bool {
	id, ok := ast.Unparen(expr).(*ast.Ident)

	return ok && f.recv != nil && f.info.Uses[id] == f.recv
}

// indirect reports whether writing into expr modifies memory outside of expr.
func (f *facts) indirect(expr ast.Expr) bool {
	t := f.info.TypeOf(expr)
	if t == nil {
		return true
	}

	switch t.Underlying().(type) {
	case *types.Pointer, *types.Slice, *types.Map:
		return true

	default:
		return false
	}
}

// whole records an assignment to the entire receiver.
func (f *facts) whole() {
	if !f.pointer {
		return
	}

	f.self = true

	if f.own == nil {
		return
	}

	for v := range f.own.Fields() {
		if id, ok := f.fields[v]; ok {
			f.record(&f.written, id)
		}
	}
}

// field records a write to a receiver field, directly or promoted through embedded structs.
func (f *facts) field(sel *ast.SelectorExpr) {
	if !f.pointer || f.own == nil {
		return
	}

	s, ok := f.info.Selections[sel]
	if !ok || s.Kind() != types.FieldVal {
		return
	}

	path := s.Index()
	if !f.direct(path) {
		f.foreign(sel)

		return
	}

	if id, ok := f.fields[f.own.Field(path[0])]; ok {
		f.record(&f.written, id)
	}

	if len(path) > 1 {
		f.foreign(sel)
	}
}

// direct reports whether all embedded fields on path are held by value.
func (f *facts) direct(path []int) bool {
	st := f.own
	for _, i := range path[:len(path)-1] {
		next, ok := st.Field(i).Type().Underlying().(*types.Struct)
		if !ok {
			return false
		}

		st = next
	}

	return true
}

// foreign records a write to a package field outside of a method of its own type.
func (f *facts) foreign(sel *ast.SelectorExpr) {
	if f.receiver(sel.X) && !f.pointer {
		return // copy
	}

	v, ok := f.info.Uses[sel.Sel].(*types.Var)
	if !ok || !v.IsField() {
		return
	}

	if id, ok := f.fields[v.Origin()]; ok {
		f.collection.external[id] = true
	}
}

// call records a reference to a method of the receiver.
func (f *facts) call(sel *ast.SelectorExpr) {
	if !f.pointer || f.own == nil || !f.receiver(sel.X) {
		return
	}

	s, ok := f.info.Selections[sel]
	if !ok || s.Kind() != types.MethodVal || !f.direct(s.Index()) {
		return
	}

	fn, ok := s.Obj().(*types.Func)
	if !ok {
		return
	}

	if id, ok := f.methods[fn.Origin()]; ok {
		f.record(&f.called, id)
	}
}

func (f *facts) record(set *map[element.ID]struct{}, id element.ID) {
	if *set == nil {
		*set = make(map[element.ID]struct{})
	}

	(*set)[id] = struct{}{}
}
