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

// Copy t with fresh inference variables for each generic variable. Declared type-variables
// are always generic; inference variables are generic unless they occur in the type of an
// enclosing abstraction binding.
func (ti *InferenceContext) fresh(t types.Type) types.Type {
	clear(ti.varLookup)
	clear(ti.instLookup)
	return ti.freshRec(t)
}

func (ti *InferenceContext) freshRec(t types.Type) types.Type {
	switch t := types.RealType(t).(type) {
	case *types.InferVar:
		if occursInAny(t, ti.nonGeneric) {
			return t
		}
		if tv, ok := ti.instLookup[t]; ok {
			return tv
		}
		tv := ti.newVar()
		ti.instLookup[t] = tv
		return tv

	case *types.Var:
		if tv, ok := ti.varLookup[t.Id()]; ok {
			return tv
		}
		tv := ti.newVar()
		ti.varLookup[t.Id()] = tv
		return tv

	case *types.Arrow:
		return &types.Arrow{From: ti.freshRec(t.From), To: ti.freshRec(t.To)}

	case *types.List:
		return &types.List{Elem: ti.freshRec(t.Elem)}

	default:
		return t
	}
}

// Replace type-variables within a type annotation of the expression being inferred.
// Repeated type-variables share one inference variable across the whole expression.
func (ti *InferenceContext) instantiateAnnotation(t types.Type) types.Type {
	switch t := types.RealType(t).(type) {
	case *types.Var:
		if tv, ok := ti.annotLookup[t.Id()]; ok {
			return tv
		}
		tv := ti.newVar()
		ti.annotLookup[t.Id()] = tv
		return tv

	case *types.Arrow:
		return &types.Arrow{From: ti.instantiateAnnotation(t.From), To: ti.instantiateAnnotation(t.To)}

	case *types.List:
		return &types.List{Elem: ti.instantiateAnnotation(t.Elem)}

	default:
		return t
	}
}
