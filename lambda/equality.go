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

package lambda

import "github.com/wdamron/lfparse/types"

// StructEq reports whether two terms are structurally identical. Atomic constants compare
// name and type, predicate constants compare only the name. Abstractions must bind the
// same variable name; there is no implicit alpha-renaming.
func StructEq(a, b Expr) bool {
	switch a := a.(type) {
	case *Variable:
		b, ok := b.(*Variable)
		return ok && a.Name == b.Name

	case *Constant:
		b, ok := b.(*Constant)
		if !ok || a.Name != b.Name {
			return false
		}
		return a.IsComplex() || types.Equal(a.T, b.T)

	case *Application:
		b, ok := b.(*Application)
		if !ok || len(a.Args) != len(b.Args) || !StructEq(a.Pred, b.Pred) {
			return false
		}
		for i := range a.Args {
			if !StructEq(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true

	case *Lambda:
		b, ok := b.(*Lambda)
		return ok && a.Var.Name == b.Var.Name && StructEq(a.Body, b.Body)
	}
	return false
}

// VarMapping pairs bound variable names of two terms during semantic comparison.
type VarMapping struct {
	left, right map[string]string
}

// NewVarMapping returns an empty mapping.
func NewVarMapping() *VarMapping {
	return &VarMapping{left: make(map[string]string), right: make(map[string]string)}
}

func (m *VarMapping) bind(a, b string) (restore func()) {
	prevA, hadA := m.left[a]
	prevB, hadB := m.right[b]
	m.left[a], m.right[b] = b, a
	return func() {
		if hadA {
			m.left[a] = prevA
		} else {
			delete(m.left, a)
		}
		if hadB {
			m.right[b] = prevB
		} else {
			delete(m.right, b)
		}
	}
}

func (m *VarMapping) match(a, b string) bool {
	mappedA, boundA := m.left[a]
	mappedB, boundB := m.right[b]
	switch {
	case boundA && boundB:
		return mappedA == b && mappedB == a
	case !boundA && !boundB:
		return a == b
	}
	return false
}

// SemanticEq reports whether two terms are equal up to renaming of bound variables, with
// `and`, `or` and `equals` applications compared as unordered argument multisets.
func SemanticEq(a, b Expr) bool { return SemanticEqWith(a, b, NewVarMapping()) }

// SemanticEqWith compares a and b under an existing variable mapping.
func SemanticEqWith(a, b Expr, m *VarMapping) bool {
	switch a := a.(type) {
	case *Variable:
		b, ok := b.(*Variable)
		return ok && m.match(a.Name, b.Name)

	case *Constant:
		b, ok := b.(*Constant)
		if !ok || a.Name != b.Name {
			return false
		}
		return a.IsComplex() || b.IsComplex() || types.Equal(a.T, b.T)

	case *Application:
		b, ok := b.(*Application)
		if !ok || len(a.Args) != len(b.Args) || !SemanticEqWith(a.Pred, b.Pred, m) {
			return false
		}
		if name, _ := PredicateName(a); name == And || name == Or || name == Equals {
			return unorderedEq(a.Args, b.Args, m)
		}
		for i := range a.Args {
			if !SemanticEqWith(a.Args[i], b.Args[i], m) {
				return false
			}
		}
		return true

	case *Lambda:
		b, ok := b.(*Lambda)
		if !ok {
			return false
		}
		restore := m.bind(a.Var.Name, b.Var.Name)
		eq := SemanticEqWith(a.Body, b.Body, m)
		restore()
		return eq
	}
	return false
}

func unorderedEq(as, bs []Expr, m *VarMapping) bool {
	used := make([]bool, len(bs))
	var match func(i int) bool
	match = func(i int) bool {
		if i == len(as) {
			return true
		}
		for j, b := range bs {
			if used[j] || !SemanticEqWith(as[i], b, m) {
				continue
			}
			used[j] = true
			if match(i + 1) {
				return true
			}
			used[j] = false
		}
		return false
	}
	return match(0)
}
