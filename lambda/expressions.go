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

// lambda provides an immutable typed lambda-calculus term model: variables, constants,
// applications and abstractions, with substitution, beta-reduction, duplication and
// structural/semantic equality.
package lambda

import (
	"strings"

	"github.com/wdamron/lfparse/types"
)

// Expr is the base for all terms. Terms are immutable; every transformation returns a new term.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	// Type returns the declared or computed type of the expression.
	Type() types.Type
}

var (
	_ Expr = (*Variable)(nil)
	_ Expr = (*Constant)(nil)
	_ Expr = (*Application)(nil)
	_ Expr = (*Lambda)(nil)
)

// Variables whose name starts with PlaceholderPrefix stand for a predicate which is
// grounded against the knowledge-base during parsing. Duplication keeps their name.
const PlaceholderPrefix = "#"

// Connective and relation names which compare as unordered during semantic equality.
const (
	And    = "and"
	Or     = "or"
	Equals = "equals"
)

// ConnectiveType is the type of `and` and `or`: `<[t],t>`.
var ConnectiveType types.Type = &types.Arrow{From: &types.List{Elem: types.Truth}, To: types.Truth}

// IsPlaceholder reports whether a variable name carries the placeholder prefix.
func IsPlaceholder(name string) bool { return strings.HasPrefix(name, PlaceholderPrefix) }

// Variable: `$0`
type Variable struct {
	Name string
	T    types.Type
	// Id is the pool slot of a fresh variable, or -1 for named variables.
	Id  int
	gen uint32
}

// "Variable"
func (e *Variable) ExprName() string { return "Variable" }

// Get the declared type of e.
func (e *Variable) Type() types.Type { return e.T }

// IsPlaceholder reports whether e stands for a predicate to be grounded.
func (e *Variable) IsPlaceholder() bool { return IsPlaceholder(e.Name) }

// Constant: `texas:state`
type Constant struct {
	Name string
	T    types.Type
}

// "Constant"
func (e *Constant) ExprName() string { return "Constant" }

// Get the declared type of e.
func (e *Constant) Type() types.Type { return e.T }

// IsComplex reports whether e is a predicate (function-typed) constant.
func (e *Constant) IsComplex() bool {
	_, ok := types.RealType(e.T).(*types.Arrow)
	return ok
}

// Application: `(capital texas:state)`
type Application struct {
	Pred Expr
	Args []Expr
	T    types.Type
}

// "Application"
func (e *Application) ExprName() string { return "Application" }

// Get the type of e, computed by skipping the applied arguments off the predicate's type.
func (e *Application) Type() types.Type { return e.T }

// Abstraction: `(lambda $0:e (city:<e,t> $0))`
type Lambda struct {
	Var  *Variable
	Body Expr
	T    types.Type
}

// "Lambda"
func (e *Lambda) ExprName() string { return "Lambda" }

// Get the type of e.
func (e *Lambda) Type() types.Type { return e.T }

// Create a named variable.
func NewVariable(name string, t types.Type) *Variable {
	return &Variable{Name: name, T: t, Id: -1}
}

// Create an application. The type is nil when the predicate's type cannot absorb the arguments.
func NewApplication(pred Expr, args ...Expr) *Application {
	t, _ := types.SkipArgs(pred.Type(), len(args))
	return &Application{Pred: pred, Args: args, T: t}
}

// Create an abstraction over v.
func NewLambda(v *Variable, body Expr) *Lambda {
	return &Lambda{Var: v, Body: body, T: &types.Arrow{From: v.T, To: body.Type()}}
}

// PredicateName returns the constant name in predicate position of an application, if any.
func PredicateName(e Expr) (string, bool) {
	app, ok := e.(*Application)
	if !ok {
		return "", false
	}
	c, ok := app.Pred.(*Constant)
	if !ok {
		return "", false
	}
	return c.Name, true
}
