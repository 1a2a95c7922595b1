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

package types

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, sys *System, vars map[string]*Var, src string) Type {
	t.Helper()
	ty, err := ParseType(src, sys, vars)
	if err != nil {
		t.Fatal(err)
	}
	return ty
}

func cityHierarchy(t *testing.T) *Hierarchy {
	h := NewHierarchy()
	for _, decl := range [][2]string{{"location", "e"}, {"city", "location"}, {"state", "location"}, {"river", "e"}} {
		if err := h.Declare(decl[0], decl[1]); err != nil {
			t.Fatal(err)
		}
	}
	return h
}

func TestTypeStringRoundTrip(t *testing.T) {
	sys := NewSystem(nil)
	for _, src := range []string{"e", "<e,t>", "<e,<e,t>>", "[t]", "<[t],t>", "<<e,t>,<e,t>>"} {
		ty := mustParse(t, sys, nil, src)
		if s := TypeString(ty); s != src {
			t.Fatalf("round trip: %s != %s", s, src)
		}
	}
	vars := map[string]*Var{}
	ty := mustParse(t, sys, vars, "<?7,<?7,t>>")
	arrow := ty.(*Arrow)
	if arrow.From != arrow.To.(*Arrow).From {
		t.Fatalf("expected shared type-variable")
	}
	if _, err := ParseType("<e,t", sys, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestHierarchy(t *testing.T) {
	h := cityHierarchy(t)
	if !h.IsSubtype("city", "e") || !h.IsSubtype("city", "city") || h.IsSubtype("location", "city") {
		t.Fatalf("unexpected subtype relation")
	}
	if err := h.Declare("e", "city"); err == nil {
		t.Fatalf("expected cycle error")
	}
	if err := h.Declare("x", "missing"); err == nil {
		t.Fatalf("expected undeclared parent error")
	}
}

func TestUnifySubtype(t *testing.T) {
	sys := NewSystem(cityHierarchy(t))
	city, location := &Atom{Name: "city"}, &Atom{Name: "location"}

	if _, err := sys.UnifySubtype(EmptyEnv, location, city); err != nil {
		t.Fatal(err)
	}
	if _, err := sys.UnifySubtype(EmptyEnv, city, location); !errors.Is(err, ErrNotSubtype) {
		t.Fatalf("expected ErrNotSubtype, got %v", err)
	}

	// <location,t> <: <city,t> by contravariance, not the other way around
	locPred, cityPred := &Arrow{From: location, To: Truth}, &Arrow{From: city, To: Truth}
	if _, err := sys.UnifySubtype(EmptyEnv, cityPred, locPred); err != nil {
		t.Fatal(err)
	}
	if _, err := sys.UnifySubtype(EmptyEnv, locPred, cityPred); err == nil {
		t.Fatalf("expected contravariance failure")
	}

	v := sys.NewVar()
	env, err := sys.UnifySubtype(EmptyEnv, &Arrow{From: v, To: Truth}, cityPred)
	if err != nil {
		t.Fatal(err)
	}
	if s := EnvTypeString(env, v); s != "city" {
		t.Fatalf("binding: %s", s)
	}
	if _, ok := EmptyEnv.Lookup(v); ok {
		t.Fatalf("environment must be persistent")
	}

	if _, err := sys.UnifySubtype(EmptyEnv, v, &Arrow{From: v, To: Truth}); err == nil {
		t.Fatalf("expected occurs-check failure")
	}
}

func TestEnvMerge(t *testing.T) {
	sys := NewSystem(nil)
	a, b := sys.NewVar(), sys.NewVar()
	left := EmptyEnv.Bind(a, Entity)
	right := EmptyEnv.Bind(b, Truth).Bind(a, Entity)
	merged, err := left.Merge(right)
	if err != nil {
		t.Fatal(err)
	}
	if merged.Len() != 2 {
		t.Fatalf("merged bindings: %d", merged.Len())
	}
	conflict := EmptyEnv.Bind(a, Truth)
	_, err = left.Merge(conflict)
	var mergeErr *MergeError
	if !errors.As(err, &mergeErr) || mergeErr.Var != a {
		t.Fatalf("expected merge error, got %v", err)
	}
}

func TestDuplicateSharesMapping(t *testing.T) {
	sys := NewSystem(nil)
	v := sys.NewVar()
	env := EmptyEnv.Bind(v, Entity)
	mapping := map[int]*Var{}
	dup := sys.Duplicate(&Arrow{From: v, To: v}, mapping).(*Arrow)
	if dup.From != dup.To || dup.From == Type(v) {
		t.Fatalf("expected one fresh variable for repeated occurrences")
	}
	denv := sys.DuplicateEnv(env, mapping)
	if s := EnvTypeString(denv, dup.From); s != "e" {
		t.Fatalf("duplicated binding: %s", s)
	}
}

func TestSkipArgs(t *testing.T) {
	sys := NewSystem(nil)
	ty := mustParse(t, sys, nil, "<e,<e,t>>")
	rest, ok := SkipArgs(ty, 1)
	if !ok || TypeString(rest) != "<e,t>" {
		t.Fatalf("skip 1: %v", rest)
	}
	if _, ok := SkipArgs(ty, 3); ok {
		t.Fatalf("expected failure when over-applied")
	}
	conj := mustParse(t, sys, nil, "<[t],t>")
	rest, ok = SkipArgs(conj, 4)
	if !ok || TypeString(rest) != "t" {
		t.Fatalf("list argument should absorb all arguments: %v", rest)
	}
	if !IsPredicate(ty) || IsPredicate(Entity) || Arity(ty) != 2 {
		t.Fatalf("predicate helpers")
	}
}
