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
	"strconv"

	"github.com/benbjohnson/immutable"
)

var emptyMap = immutable.NewSortedMap(nil)

// EmptyEnv contains no bindings.
var EmptyEnv = Env{emptyMap}

type binding struct {
	v *Var
	t Type
}

// Env is a persistent type-environment mapping type-variables to the types they are
// bound to. Binding or merging returns a new Env and leaves the receiver untouched,
// so failed (speculative) unification never needs to be rolled back.
type Env struct {
	m *immutable.SortedMap
}

func (e Env) imm() *immutable.SortedMap {
	if e.m == nil {
		return emptyMap
	}
	return e.m
}

// Get the number of bindings in the environment.
func (e Env) Len() int { return e.imm().Len() }

// Lookup returns the type bound to v, if any.
func (e Env) Lookup(v *Var) (Type, bool) {
	b, ok := e.imm().Get(v.id)
	if !ok {
		return nil, false
	}
	return b.(binding).t, true
}

// Bind returns a copy of the environment with v bound to t.
func (e Env) Bind(v *Var, t Type) Env {
	return Env{e.imm().Set(v.id, binding{v, t})}
}

// Iterate over bindings in the environment, ordered by variable id.
// If f returns false, iteration will be stopped.
func (e Env) Range(f func(*Var, Type) bool) {
	iter := e.imm().Iterator()
	for !iter.Done() {
		_, b := iter.Next()
		if !f(b.(binding).v, b.(binding).t) {
			return
		}
	}
}

// Walk follows bindings for a type-variable until an unbound variable or a
// non-variable type is reached.
func (e Env) Walk(t Type) Type {
	for {
		t = RealType(t)
		v, ok := t.(*Var)
		if !ok {
			return t
		}
		bound, ok := e.Lookup(v)
		if !ok {
			return t
		}
		t = bound
	}
}

// Resolve substitutes all bound type-variables within t.
func (e Env) Resolve(t Type) Type {
	switch t := e.Walk(t).(type) {
	case *Arrow:
		return &Arrow{From: e.Resolve(t.From), To: e.Resolve(t.To)}
	case *List:
		return &List{Elem: e.Resolve(t.Elem)}
	default:
		return t
	}
}

// MergeError is returned when two environments bind the same type-variable to
// incompatible types.
type MergeError struct {
	Var         *Var
	Left, Right Type
}

func (err *MergeError) Error() string {
	return "Cannot merge type-environments: ?" + strconv.Itoa(err.Var.id) + " is bound to both " +
		TypeString(err.Left) + " and " + TypeString(err.Right)
}

// Merge combines the bindings of two environments. A variable bound in both must
// resolve to the same type in the merged environment.
func (e Env) Merge(other Env) (Env, error) {
	if other.Len() == 0 {
		return e, nil
	}
	if e.Len() == 0 {
		return other, nil
	}
	b := immutable.NewSortedMapBuilder(e.imm())
	var conflicts []binding
	other.Range(func(v *Var, t Type) bool {
		if _, exists := b.Get(v.id); exists {
			conflicts = append(conflicts, binding{v, t})
			return true
		}
		b.Set(v.id, binding{v, t})
		return true
	})
	merged := Env{b.Map()}
	for _, c := range conflicts {
		mine, _ := e.Lookup(c.v)
		if !Equal(merged.Resolve(mine), merged.Resolve(c.t)) {
			return e, &MergeError{Var: c.v, Left: mine, Right: c.t}
		}
	}
	return merged, nil
}
