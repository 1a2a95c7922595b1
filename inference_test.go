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
	"testing"

	"github.com/wdamron/lfparse/lambda"
	"github.com/wdamron/lfparse/types"
)

func geoHierarchy(t testing.TB) *types.Hierarchy {
	h := types.NewHierarchy()
	for _, decl := range [][2]string{{"location", "e"}, {"city", "location"}, {"state", "location"}, {"river", "e"}} {
		if err := h.Declare(decl[0], decl[1]); err != nil {
			t.Fatal(err)
		}
	}
	return h
}

func parseTerm(t testing.TB, sys *types.System, src string) lambda.Expr {
	e, err := lambda.Parse(src, sys, nil)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestInferPredicateAbstraction(t *testing.T) {
	ctx := NewContext(nil)
	x := lambda.NewVariable("x", nil)
	P := &lambda.Constant{Name: "P", T: &types.Arrow{From: types.Entity, To: types.Truth}}
	expr := lambda.NewLambda(x, lambda.NewApplication(P, x))

	// Infer twice to ensure state is properly reset between calls:
	for i := 0; i < 2; i++ {
		ty, err := ctx.Infer(expr, nil)
		if err != nil {
			t.Fatal(err)
		}
		if s := types.TypeString(ty); s != "<e,t>" {
			t.Fatalf("type: %s", s)
		}
		t.Logf("type: %s", types.TypeString(ty))
	}

	annotated, err := ctx.Annotate(expr, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(annotated.(*lambda.Lambda).Var.T); s != "e" {
		t.Fatalf("x: %s", s)
	}
	if s := lambda.ExprString(annotated); s != "(lambda x:e (P:<e,t> x))" {
		t.Fatalf("annotated: %s", s)
	}
}

func TestInferMismatch(t *testing.T) {
	sys := types.NewSystem(nil)
	ctx := NewContext(geoHierarchy(t))

	expr := parseTerm(t, sys, "(capital:<state,t> mississippi:river)")
	_, err := ctx.Infer(expr, nil)
	if err == nil {
		t.Fatalf("expected mismatch")
	}
	var terr *TypeError
	if !errors.As(err, &terr) || terr.Kind != Mismatch {
		t.Fatalf("expected mismatch, found %v", err)
	}
	if terr.Expr == nil || lambda.ExprString(terr.Expr) != "mississippi:river" {
		t.Fatalf("unexpected invalid expression: %v", terr.Expr)
	}
	if ctx.Error() != err {
		t.Fatalf("expected the context to retain the error")
	}
}

func TestInferSubtypes(t *testing.T) {
	sys := types.NewSystem(nil)
	ctx := NewContext(geoHierarchy(t))

	// city <: location, so a city may be passed where a location is expected:
	ty, err := ctx.Infer(parseTerm(t, sys, "(loc:<e,<location,t>> austin:city texas:state)"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(ty); s != "t" {
		t.Fatalf("type: %s", s)
	}

	// location is not a subtype of city:
	if _, err := ctx.Infer(parseTerm(t, sys, "(lambda $0:location (city:<city,t> $0))"), nil); err == nil {
		t.Fatalf("expected mismatch")
	}
}

func TestInferListArguments(t *testing.T) {
	sys := types.NewSystem(nil)
	ctx := NewContext(geoHierarchy(t))

	ty, err := ctx.Infer(parseTerm(t, sys, "(lambda $0:e (and:<[t],t> (city:<e,t> $0) (major:<e,t> $0) (river:<e,t> $0)))"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(ty); s != "<e,t>" {
		t.Fatalf("type: %s", s)
	}

	if _, err := ctx.Infer(parseTerm(t, sys, "(and:<[t],t> a:t b:e)"), nil); err == nil {
		t.Fatalf("expected mismatch for a non-truth list element")
	}
}

func TestInferErrors(t *testing.T) {
	ctx := NewContext(nil)

	var terr *TypeError
	_, err := ctx.Infer(lambda.NewVariable("y", nil), nil)
	if !errors.As(err, &terr) || terr.Kind != Unbound {
		t.Fatalf("expected unbound variable, found %v", err)
	}

	_, err = ctx.Infer(&lambda.Constant{Name: "texas"}, nil)
	if !errors.As(err, &terr) || terr.Kind != Untyped {
		t.Fatalf("expected untyped constant, found %v", err)
	}

	texas := &lambda.Constant{Name: "texas", T: types.Entity}
	_, err = ctx.Infer(&lambda.Application{Pred: texas, Args: []lambda.Expr{texas}}, nil)
	if !errors.As(err, &terr) || terr.Kind != Arity {
		t.Fatalf("expected arity error, found %v", err)
	}

	// λx.(x x) requires a type containing itself:
	x := lambda.NewVariable("x", nil)
	_, err = ctx.Infer(lambda.NewLambda(x, &lambda.Application{Pred: x, Args: []lambda.Expr{x}}), nil)
	if !errors.As(err, &terr) || terr.Kind != Occurs {
		t.Fatalf("expected occurs-check failure, found %v", err)
	}
}

func TestInferDeclaredPolymorphism(t *testing.T) {
	env := NewTypeEnv(nil)
	A := types.NewVar(0)
	env.Declare("id", &types.Arrow{From: A, To: A})
	ctx := NewContext(nil)

	id := lambda.NewVariable("id", nil)
	both := &lambda.Constant{Name: "both", T: &types.Arrow{From: types.Entity, To: &types.Arrow{From: types.Truth, To: types.Truth}}}
	expr := lambda.NewApplication(both,
		lambda.NewApplication(id, &lambda.Constant{Name: "texas", T: types.Entity}),
		lambda.NewApplication(id, &lambda.Constant{Name: "yes", T: types.Truth}))

	ty, err := ctx.Infer(expr, env)
	if err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(ty); s != "t" {
		t.Fatalf("type: %s", s)
	}

	// Abstraction-bound variables are not generalized:
	f := lambda.NewVariable("f", nil)
	expr2 := lambda.NewLambda(f, lambda.NewApplication(both,
		lambda.NewApplication(f, &lambda.Constant{Name: "texas", T: types.Entity}),
		lambda.NewApplication(f, &lambda.Constant{Name: "yes", T: types.Truth})))
	if _, err := ctx.Infer(expr2, env); err == nil {
		t.Fatalf("expected mismatch for a non-generic binding")
	}
}

func TestInferSharedAnnotations(t *testing.T) {
	sys := types.NewSystem(nil)
	ctx := NewContext(nil)

	ty, err := ctx.Infer(parseTerm(t, sys, "(lambda $0:?0 (lambda $1:?0 (equals:<e,<e,t>> $0 $1)))"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := types.TypeString(ty); s != "<e,<e,t>>" {
		t.Fatalf("type: %s", s)
	}

	ty, err = ctx.Infer(parseTerm(t, sys, "(lambda $0:?1 $0)"), nil)
	if err != nil {
		t.Fatal(err)
	}
	arrow := ty.(*types.Arrow)
	if arrow.From != arrow.To {
		t.Fatalf("expected a shared generic variable: %s", types.TypeString(ty))
	}
}
