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
	set "github.com/hashicorp/go-set/v3"

	"github.com/wdamron/lfparse/types"
)

// WalkExpr calls f for e and every sub-term of e, in pre-order.
func WalkExpr(e Expr, f func(Expr)) {
	switch e := e.(type) {
	case *Variable, *Constant:
		f(e)

	case *Application:
		f(e)
		WalkExpr(e.Pred, f)
		for _, arg := range e.Args {
			WalkExpr(arg, f)
		}

	case *Lambda:
		f(e)
		WalkExpr(e.Body, f)

	case nil:

	default:
		panic("unknown expression type: " + e.ExprName())
	}
}

// FreeVars returns the names of variables which occur free in e.
func FreeVars(e Expr) *set.Set[string] {
	free := set.New[string](4)
	freeVars(e, set.New[string](4), free)
	return free
}

func freeVars(e Expr, bound, free *set.Set[string]) {
	switch e := e.(type) {
	case *Variable:
		if !bound.Contains(e.Name) {
			free.Insert(e.Name)
		}
	case *Application:
		freeVars(e.Pred, bound, free)
		for _, arg := range e.Args {
			freeVars(arg, bound, free)
		}
	case *Lambda:
		if bound.Contains(e.Var.Name) {
			freeVars(e.Body, bound, free)
			return
		}
		bound.Insert(e.Var.Name)
		freeVars(e.Body, bound, free)
		bound.Remove(e.Var.Name)
	}
}

// MapTypes rebuilds e with f applied to every type annotation. Occurrences of a bound
// variable share the rebuilt binder.
func MapTypes(e Expr, f func(types.Type) types.Type) Expr {
	return mapTypes(e, f, map[string]*Variable{})
}

func mapTypes(e Expr, f func(types.Type) types.Type, bound map[string]*Variable) Expr {
	switch e := e.(type) {
	case *Variable:
		if v, ok := bound[e.Name]; ok {
			return v
		}
		return &Variable{Name: e.Name, T: f(e.T), Id: e.Id, gen: e.gen}
	case *Constant:
		return &Constant{Name: e.Name, T: f(e.T)}
	case *Application:
		args := make([]Expr, len(e.Args))
		for i, arg := range e.Args {
			args[i] = mapTypes(arg, f, bound)
		}
		return &Application{Pred: mapTypes(e.Pred, f, bound), Args: args, T: f(e.T)}
	case *Lambda:
		v := &Variable{Name: e.Var.Name, T: f(e.Var.T), Id: e.Var.Id, gen: e.Var.gen}
		prev, shadowed := bound[e.Var.Name]
		bound[e.Var.Name] = v
		body := mapTypes(e.Body, f, bound)
		if shadowed {
			bound[e.Var.Name] = prev
		} else {
			delete(bound, e.Var.Name)
		}
		return &Lambda{Var: v, Body: body, T: f(e.T)}
	}
	return e
}

// ResolveTypes applies the bindings of env to every type annotation within e.
func ResolveTypes(e Expr, env types.Env) Expr {
	return MapTypes(e, func(t types.Type) types.Type {
		if t == nil {
			return nil
		}
		return env.Resolve(t)
	})
}

// RetypeBinders rebuilds e with the abstractions binding the named variables retyped.
// Occurrences share the rebuilt binder, and the types of enclosing abstractions are
// recomputed.
func RetypeBinders(e Expr, retype map[string]types.Type) Expr {
	return retypeBinders(e, retype, map[string]*Variable{})
}

func retypeBinders(e Expr, retype map[string]types.Type, bound map[string]*Variable) Expr {
	switch e := e.(type) {
	case *Variable:
		if v, ok := bound[e.Name]; ok {
			return v
		}
		return e
	case *Constant:
		return e
	case *Application:
		args := make([]Expr, len(e.Args))
		for i, arg := range e.Args {
			args[i] = retypeBinders(arg, retype, bound)
		}
		return &Application{Pred: retypeBinders(e.Pred, retype, bound), Args: args, T: e.T}
	case *Lambda:
		v := e.Var
		if t, ok := retype[v.Name]; ok {
			v = &Variable{Name: v.Name, T: t, Id: v.Id, gen: v.gen}
		}
		prev, shadowed := bound[v.Name]
		bound[v.Name] = v
		body := retypeBinders(e.Body, retype, bound)
		if shadowed {
			bound[v.Name] = prev
		} else {
			delete(bound, v.Name)
		}
		return NewLambda(v, body)
	}
	return e
}
