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

// Duplicator produces structurally fresh copies of terms. Bound variables receive fresh
// ids from Pool; placeholder variables keep their name. Type-variables are duplicated
// through TypeVars, so repeated occurrences within one duplicated term (and its
// environment, see types.System.DuplicateEnv) stay linked.
type Duplicator struct {
	Pool     *VarPool
	Sys      *types.System
	Vars     map[string]*Variable
	TypeVars map[int]*types.Var
	// Fresh holds the variables allocated from Pool.
	Fresh []*Variable
}

// Create a duplicator with empty mappings.
func NewDuplicator(pool *VarPool, sys *types.System) *Duplicator {
	return &Duplicator{
		Pool:     pool,
		Sys:      sys,
		Vars:     make(map[string]*Variable),
		TypeVars: make(map[int]*types.Var),
	}
}

// Duplicate copies e with fresh bound variables and type-variables.
func Duplicate(e Expr, d *Duplicator) Expr { return d.expr(e) }

// Release returns the variables and type-variables allocated by d to their pools. Terms
// duplicated through d must no longer be in use.
func (d *Duplicator) Release() {
	if d.Pool != nil {
		for _, v := range d.Fresh {
			d.Pool.Release(v)
		}
	}
	if d.Sys != nil {
		for _, tv := range d.TypeVars {
			d.Sys.Release(tv)
		}
	}
	d.Fresh = d.Fresh[:0]
	clear(d.TypeVars)
}

func (d *Duplicator) typ(t types.Type) types.Type {
	if d.Sys == nil || t == nil {
		return t
	}
	return d.Sys.Duplicate(t, d.TypeVars)
}

func (d *Duplicator) expr(e Expr) Expr {
	switch e := e.(type) {
	case *Variable:
		if v, ok := d.Vars[e.Name]; ok {
			return v
		}
		return &Variable{Name: e.Name, T: d.typ(e.T), Id: e.Id, gen: e.gen}

	case *Constant:
		return &Constant{Name: e.Name, T: d.typ(e.T)}

	case *Application:
		args := make([]Expr, len(e.Args))
		for i, arg := range e.Args {
			args[i] = d.expr(arg)
		}
		return &Application{Pred: d.expr(e.Pred), Args: args, T: d.typ(e.T)}

	case *Lambda:
		var v *Variable
		if e.Var.IsPlaceholder() || d.Pool == nil {
			v = &Variable{Name: e.Var.Name, T: d.typ(e.Var.T), Id: -1}
		} else {
			v = d.Pool.NewVar(d.typ(e.Var.T))
			d.Fresh = append(d.Fresh, v)
		}
		prev, shadowed := d.Vars[e.Var.Name]
		d.Vars[e.Var.Name] = v
		body := d.expr(e.Body)
		if shadowed {
			d.Vars[e.Var.Name] = prev
		} else {
			delete(d.Vars, e.Var.Name)
		}
		return &Lambda{Var: v, Body: body, T: d.typ(e.T)}
	}
	panic("unknown expression type: " + e.ExprName())
}
