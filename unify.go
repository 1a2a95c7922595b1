// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package lfparse

import (
	"github.com/wdamron/lfparse/types"
)

// Assert child <: parent, binding inference variables along the way.
//
// Function types are contravariant in their argument and covariant in their result;
// list types are covariant. An unbound inference variable is bound to the other side.
func (ti *InferenceContext) unifySubtype(parent, child types.Type) error {
	parent, child = types.RealType(parent), types.RealType(child)
	if parent == child {
		return nil
	}
	if pv, ok := parent.(*types.InferVar); ok {
		return ti.bindVar(pv, child)
	}
	if cv, ok := child.(*types.InferVar); ok {
		return ti.bindVar(cv, parent)
	}

	switch p := parent.(type) {
	case *types.Atom:
		if c, ok := child.(*types.Atom); ok && ti.hierarchy.IsSubtype(c.Name, p.Name) {
			return nil
		}

	case *types.Arrow:
		if c, ok := child.(*types.Arrow); ok {
			if err := ti.unifySubtype(c.From, p.From); err != nil {
				return err
			}
			return ti.unifySubtype(p.To, c.To)
		}

	case *types.List:
		if c, ok := child.(*types.List); ok {
			return ti.unifySubtype(p.Elem, c.Elem)
		}

	case *types.Var:
		if c, ok := child.(*types.Var); ok && c.Id() == p.Id() {
			return nil
		}
	}
	return mismatch(parent, child)
}

func (ti *InferenceContext) bindVar(v *types.InferVar, t types.Type) error {
	if occursIn(v, t) {
		return &TypeError{Kind: Occurs, Msg: "Recursive type: " + types.TypeString(v) + " occurs in " + types.TypeString(t)}
	}
	v.Instance = t
	return nil
}

func occursIn(v *types.InferVar, t types.Type) bool {
	switch t := types.RealType(t).(type) {
	case *types.InferVar:
		return t == v
	case *types.Arrow:
		return occursIn(v, t.From) || occursIn(v, t.To)
	case *types.List:
		return occursIn(v, t.Elem)
	}
	return false
}

func occursInAny(v *types.InferVar, ts []types.Type) bool {
	for _, t := range ts {
		if occursIn(v, t) {
			return true
		}
	}
	return false
}
