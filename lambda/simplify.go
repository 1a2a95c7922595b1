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

// Simplify eta-reduces trivial abstractions (`λx.(P x)` to `P`) and flattens nested
// applications of the same connective (`(and (and a b) c)` to `(and a b c)`).
func Simplify(e Expr) Expr {
	switch e := e.(type) {
	case *Application:
		pred := Simplify(e.Pred)
		args := make([]Expr, 0, len(e.Args))
		name, isConn := connectiveName(pred)
		for _, arg := range e.Args {
			arg = Simplify(arg)
			if isConn {
				if inner, ok := arg.(*Application); ok {
					if innerName, ok := connectiveName(inner.Pred); ok && innerName == name {
						args = append(args, inner.Args...)
						continue
					}
				}
			}
			args = append(args, arg)
		}
		return &Application{Pred: pred, Args: args, T: e.T}

	case *Lambda:
		body := Simplify(e.Body)
		if app, ok := body.(*Application); ok && len(app.Args) == 1 {
			if v, ok := app.Args[0].(*Variable); ok && v.Name == e.Var.Name && !FreeVars(app.Pred).Contains(v.Name) {
				if !takesList(app.Pred.Type()) {
					return app.Pred
				}
			}
		}
		return &Lambda{Var: e.Var, Body: body, T: e.T}
	}
	return e
}

func connectiveName(e Expr) (string, bool) {
	c, ok := e.(*Constant)
	if !ok || (c.Name != And && c.Name != Or) {
		return "", false
	}
	return c.Name, true
}

func takesList(t types.Type) bool {
	args := types.ArgTypes(t)
	if len(args) == 0 {
		return false
	}
	_, ok := types.RealType(args[0]).(*types.List)
	return ok
}
