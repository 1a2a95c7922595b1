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

// Substitute replaces free occurrences of v (by name) within e with the given term.
//
// Substitution does not rename bound variables; the caller must ensure that variables
// bound within e do not capture free variables of with, usually by duplicating first.
// Abstractions which rebind v's name shadow it and are left untouched.
func Substitute(e Expr, v *Variable, with Expr) Expr {
	switch e := e.(type) {
	case *Variable:
		if e.Name == v.Name {
			return with
		}
		return e

	case *Constant:
		return e

	case *Application:
		args := make([]Expr, len(e.Args))
		for i, arg := range e.Args {
			args[i] = Substitute(arg, v, with)
		}
		return &Application{Pred: Substitute(e.Pred, v, with), Args: args, T: e.T}

	case *Lambda:
		if e.Var.Name == v.Name {
			return e
		}
		return &Lambda{Var: e.Var, Body: Substitute(e.Body, v, with), T: e.T}
	}
	panic("unknown expression type: " + e.ExprName())
}

// ReduceWith applies an abstraction to a single argument (one beta-reduction step).
func ReduceWith(l *Lambda, arg Expr) Expr { return Substitute(l.Body, l.Var, arg) }

// Reduce beta-reduces e. Leftover arguments which cannot be consumed by an abstraction
// yield a residual application typed by skipping the consumed argument types.
func Reduce(e Expr) Expr {
	switch e := e.(type) {
	case *Application:
		pred := Reduce(e.Pred)
		args := make([]Expr, len(e.Args))
		for i, arg := range e.Args {
			args[i] = Reduce(arg)
		}
		for len(args) > 0 {
			l, ok := pred.(*Lambda)
			if !ok {
				break
			}
			pred, args = Reduce(ReduceWith(l, args[0])), args[1:]
		}
		if len(args) == 0 {
			return pred
		}
		t, ok := types.SkipArgs(pred.Type(), len(args))
		if !ok {
			t = e.T
		}
		return &Application{Pred: pred, Args: args, T: t}

	case *Lambda:
		return &Lambda{Var: e.Var, Body: Reduce(e.Body), T: e.T}
	}
	return e
}
