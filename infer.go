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
	"strconv"

	"github.com/wdamron/lfparse/lambda"
	"github.com/wdamron/lfparse/types"
)

func (ti *InferenceContext) fail(e lambda.Expr, err error) error {
	if ti.invalid == nil {
		ti.invalid = e
	}
	return err
}

func (ti *InferenceContext) infer(env *TypeEnv, e lambda.Expr) (types.Type, error) {
	switch e := e.(type) {
	case *lambda.Variable:
		var t types.Type
		if bound, ok := ti.scope[e.Name]; ok {
			t = ti.fresh(bound)
		} else if declared, ok := env.Lookup(e.Name); ok {
			t = ti.fresh(declared)
		} else if e.T != nil {
			t = ti.instantiateAnnotation(e.T)
		} else {
			return nil, ti.fail(e, &TypeError{Kind: Unbound, Msg: "Variable " + e.Name + " not found"})
		}
		ti.exprTypes[e] = t
		return t, nil

	case *lambda.Constant:
		if e.T == nil {
			return nil, ti.fail(e, &TypeError{Kind: Untyped, Msg: "Constant " + e.Name + " has no type"})
		}
		t := ti.instantiateAnnotation(e.T)
		ti.exprTypes[e] = t
		return t, nil

	case *lambda.Application:
		ft, err := ti.infer(env, e.Pred)
		if err != nil {
			return nil, err
		}
		for i := 0; i < len(e.Args); i++ {
			ft = types.RealType(ft)
			switch fn := ft.(type) {
			case *types.Arrow:
				// A list-typed argument position absorbs every remaining argument:
				if list, ok := types.RealType(fn.From).(*types.List); ok {
					for _, arg := range e.Args[i:] {
						at, err := ti.infer(env, arg)
						if err != nil {
							return nil, err
						}
						if err := ti.unifySubtype(list.Elem, at); err != nil {
							return nil, ti.fail(arg, err)
						}
					}
					ft, i = fn.To, len(e.Args)
					continue
				}
			case *types.InferVar:
			default:
				return nil, ti.fail(e, &TypeError{
					Kind: Arity,
					Msg:  "Cannot apply " + types.TypeString(ft) + " to " + strconv.Itoa(len(e.Args)-i) + " more argument(s)",
				})
			}
			at, err := ti.infer(env, e.Args[i])
			if err != nil {
				return nil, err
			}
			ret := ti.newVar()
			if err := ti.unifySubtype(&types.Arrow{From: at, To: ret}, ft); err != nil {
				return nil, ti.fail(e.Args[i], err)
			}
			ft = ret
		}
		t := ti.newVar()
		if err := ti.unifySubtype(t, ft); err != nil {
			return nil, ti.fail(e, err)
		}
		ti.exprTypes[e] = t
		return t, nil

	case *lambda.Lambda:
		var argType types.Type
		if e.Var.T != nil {
			argType = ti.instantiateAnnotation(e.Var.T)
		} else {
			argType = ti.newVar()
		}
		ti.binders[e.Var] = argType
		ti.bind(e.Var.Name, argType)
		bodyType, err := ti.infer(env, e.Body)
		ti.unbind()
		if err != nil {
			return nil, err
		}
		t := &types.Arrow{From: types.RealType(argType), To: bodyType}
		ti.exprTypes[e] = t
		return t, nil
	}
	return nil, ti.fail(e, &TypeError{Kind: Mismatch, Msg: "Unknown expression type"})
}
