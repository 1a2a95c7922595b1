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
	"errors"

	"github.com/wdamron/lfparse/internal/typeutil"
	"github.com/wdamron/lfparse/lambda"
	"github.com/wdamron/lfparse/types"
)

// InferenceContext is a re-usable context for type inference.
type InferenceContext struct {
	hierarchy   *types.Hierarchy
	varTracker  typeutil.SlotAllocator
	envStash    []stashedType             // shadowed abstraction bindings
	scope       map[string]types.Type     // types of variables bound by enclosing abstractions
	nonGeneric  []types.Type              // types of enclosing abstraction bindings
	annotLookup map[int]*types.InferVar   // instantiation lookup for annotated type-variables
	varLookup   map[int]*types.InferVar   // instantiation lookup for a single declared type
	instLookup  map[*types.InferVar]*types.InferVar
	exprTypes   map[lambda.Expr]types.Type
	binders     map[*lambda.Variable]types.Type
	err         error
	invalid     lambda.Expr
	needsReset  bool

	// initial space:
	_envStash [16]stashedType
}

type stashedType struct {
	Name string
	Type types.Type
	Had  bool
}

// Create a new type-inference context over a hierarchy of atomic types. A nil hierarchy
// only relates `e` and `t` to themselves. A context may be re-used across calls of Infer.
func NewContext(h *types.Hierarchy) *InferenceContext {
	if h == nil {
		h = types.NewHierarchy()
	}
	ti := &InferenceContext{
		hierarchy:   h,
		scope:       make(map[string]types.Type),
		annotLookup: make(map[int]*types.InferVar),
		varLookup:   make(map[int]*types.InferVar),
		instLookup:  make(map[*types.InferVar]*types.InferVar),
		exprTypes:   make(map[lambda.Expr]types.Type),
		binders:     make(map[*lambda.Variable]types.Type),
	}
	ti.envStash = ti._envStash[:0]
	return ti
}

// Infer the type of expr within env. Type-variables left unbound by inference are returned
// as generic type-variables (types.Var) numbered by their inference id.
func (ti *InferenceContext) Infer(expr lambda.Expr, env *TypeEnv) (types.Type, error) {
	t, err := ti.inferRoot(expr, env)
	if err != nil {
		return nil, err
	}
	return generalize(t, make(map[int]*types.Var)), nil
}

// Infer the type of expr within env. A copy of expr is returned in which every binder,
// constant and application carries its inferred type.
func (ti *InferenceContext) Annotate(expr lambda.Expr, env *TypeEnv) (lambda.Expr, error) {
	if _, err := ti.inferRoot(expr, env); err != nil {
		return nil, err
	}
	return ti.annotate(expr, make(map[string]*lambda.Variable), make(map[int]*types.Var)), nil
}

// Get the error which caused inference to fail.
func (ti *InferenceContext) Error() error { return ti.err }

// Get the expression which caused inference to fail.
func (ti *InferenceContext) InvalidExpr() lambda.Expr { return ti.invalid }

// Reset the state of the context. The context will be reset automatically between calls of Infer.
func (ti *InferenceContext) Reset() {
	if !ti.needsReset {
		return
	}
	ti.reset()
}

func (ti *InferenceContext) reset() {
	clear(ti.scope)
	clear(ti.annotLookup)
	clear(ti.varLookup)
	clear(ti.instLookup)
	clear(ti.exprTypes)
	clear(ti.binders)
	for i := range ti._envStash {
		ti._envStash[i] = stashedType{}
	}
	ti.varTracker.Reset()
	ti.envStash, ti.nonGeneric, ti.err, ti.invalid, ti.needsReset =
		ti._envStash[:0], ti.nonGeneric[:0], nil, nil, false
}

func (ti *InferenceContext) inferRoot(root lambda.Expr, env *TypeEnv) (types.Type, error) {
	if root == nil {
		return nil, errors.New("Empty expression")
	}
	if env == nil {
		env = NewTypeEnv(nil)
	}
	if ti.needsReset {
		ti.reset()
	}
	ti.needsReset = true
	t, err := ti.infer(env, root)
	if err != nil {
		var terr *TypeError
		if errors.As(err, &terr) && terr.Expr == nil {
			terr.Expr = ti.invalid
		}
		ti.err = err
		return nil, err
	}
	return t, nil
}

func (ti *InferenceContext) newVar() *types.InferVar {
	return types.NewInferVar(ti.varTracker.Alloc().Index)
}

func (ti *InferenceContext) bind(name string, t types.Type) {
	prev, had := ti.scope[name]
	ti.envStash = append(ti.envStash, stashedType{name, prev, had})
	ti.scope[name] = t
	ti.nonGeneric = append(ti.nonGeneric, t)
}

func (ti *InferenceContext) unbind() {
	last := ti.envStash[len(ti.envStash)-1]
	ti.envStash = ti.envStash[:len(ti.envStash)-1]
	ti.nonGeneric = ti.nonGeneric[:len(ti.nonGeneric)-1]
	if last.Had {
		ti.scope[last.Name] = last.Type
	} else {
		delete(ti.scope, last.Name)
	}
}

func (ti *InferenceContext) annotate(e lambda.Expr, bound map[string]*lambda.Variable, generic map[int]*types.Var) lambda.Expr {
	switch e := e.(type) {
	case *lambda.Variable:
		if v, ok := bound[e.Name]; ok {
			return v
		}
		return &lambda.Variable{Name: e.Name, T: generalize(ti.exprTypes[e], generic), Id: -1}

	case *lambda.Constant:
		return &lambda.Constant{Name: e.Name, T: generalize(ti.exprTypes[e], generic)}

	case *lambda.Application:
		args := make([]lambda.Expr, len(e.Args))
		for i, arg := range e.Args {
			args[i] = ti.annotate(arg, bound, generic)
		}
		return &lambda.Application{Pred: ti.annotate(e.Pred, bound, generic), Args: args, T: generalize(ti.exprTypes[e], generic)}

	case *lambda.Lambda:
		v := &lambda.Variable{Name: e.Var.Name, T: generalize(ti.binders[e.Var], generic), Id: -1}
		prev, shadowed := bound[v.Name]
		bound[v.Name] = v
		body := ti.annotate(e.Body, bound, generic)
		if shadowed {
			bound[v.Name] = prev
		} else {
			delete(bound, v.Name)
		}
		return lambda.NewLambda(v, body)
	}
	return e
}
