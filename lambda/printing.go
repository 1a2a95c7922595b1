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

import (
	"strings"

	"github.com/wdamron/lfparse/types"
)

// ExprString returns the textual form of a term, which Parse reads back. Constants
// and free variables carry their type (`texas:state`, `#P:<e,t>`); bound variables are
// typed at their binder (`(lambda $0:e ...)`).
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, e, map[string]int{})
	return sb.String()
}

func exprString(sb *strings.Builder, e Expr, bound map[string]int) {
	switch e := e.(type) {
	case *Variable:
		sb.WriteString(e.Name)
		if bound[e.Name] == 0 {
			sb.WriteByte(':')
			sb.WriteString(types.TypeString(e.T))
		}

	case *Constant:
		sb.WriteString(e.Name)
		sb.WriteByte(':')
		sb.WriteString(types.TypeString(e.T))

	case *Application:
		sb.WriteByte('(')
		exprString(sb, e.Pred, bound)
		for _, arg := range e.Args {
			sb.WriteByte(' ')
			exprString(sb, arg, bound)
		}
		sb.WriteByte(')')

	case *Lambda:
		sb.WriteString("(lambda ")
		sb.WriteString(e.Var.Name)
		sb.WriteByte(':')
		sb.WriteString(types.TypeString(e.Var.T))
		sb.WriteByte(' ')
		bound[e.Var.Name]++
		exprString(sb, e.Body, bound)
		bound[e.Var.Name]--
		sb.WriteByte(')')

	case nil:
		sb.WriteString("<nil>")
	}
}

// CanonicalString prints e with the bindings of env applied. Bound variables and
// type-variables are renumbered by order of occurrence, so terms which differ only in
// fresh ids print identically.
func CanonicalString(e Expr, env types.Env) string {
	d := NewDuplicator(&VarPool{}, types.NewSystem(nil))
	return ExprString(Duplicate(ResolveTypes(e, env), d))
}
