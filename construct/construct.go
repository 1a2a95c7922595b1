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

package construct

import (
	"github.com/wdamron/lfparse/lambda"
	"github.com/wdamron/lfparse/types"
)

// Types

// Create a new type-variable with the given id.
func TVar(id int) *types.Var {
	return types.NewVar(id)
}

// Atomic type: `e`, `t`, `city`, etc
func TAtom(name string) *types.Atom {
	switch name {
	case types.Entity.Name:
		return types.Entity
	case types.Truth.Name:
		return types.Truth
	}
	return &types.Atom{Name: name}
}

// List type: `[e]`
func TList(elem types.Type) *types.List {
	return &types.List{Elem: elem}
}

// Function type: `<e,t>`
func TArrow(from, to types.Type) *types.Arrow {
	return &types.Arrow{From: from, To: to}
}

// Curried function type: `<e,<e,t>>`
func TArrowN(ret types.Type, args ...types.Type) types.Type {
	t := ret
	for i := len(args) - 1; i >= 0; i-- {
		t = &types.Arrow{From: args[i], To: t}
	}
	return t
}

// Predicate type: `<e,t>`, `<e,<e,t>>`, etc
func TPred(args ...types.Type) types.Type {
	return TArrowN(types.Truth, args...)
}

// Expressions:

// Named variable: `$0:e`
func Var(name string, t types.Type) *lambda.Variable {
	return lambda.NewVariable(name, t)
}

// Constant: `texas:state`
func Const(name string, t types.Type) *lambda.Constant {
	return &lambda.Constant{Name: name, T: t}
}

// Application: `(capital:<e,e> texas:state)`
func App(pred lambda.Expr, args ...lambda.Expr) *lambda.Application {
	return lambda.NewApplication(pred, args...)
}

// Abstraction: `(lambda $0:e (city:<e,t> $0))`
func Lambda(v *lambda.Variable, body lambda.Expr) *lambda.Lambda {
	return lambda.NewLambda(v, body)
}

// Nested abstraction over each variable in turn: `(lambda $0:e (lambda $1:e ...))`
func LambdaN(vars []*lambda.Variable, body lambda.Expr) lambda.Expr {
	e := body
	for i := len(vars) - 1; i >= 0; i-- {
		e = lambda.NewLambda(vars[i], e)
	}
	return e
}

// Conjunction: `(and:<[t],t> a b ...)`
func And(args ...lambda.Expr) *lambda.Application {
	return lambda.NewApplication(&lambda.Constant{Name: lambda.And, T: lambda.ConnectiveType}, args...)
}

// Disjunction: `(or:<[t],t> a b ...)`
func Or(args ...lambda.Expr) *lambda.Application {
	return lambda.NewApplication(&lambda.Constant{Name: lambda.Or, T: lambda.ConnectiveType}, args...)
}
