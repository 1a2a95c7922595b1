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
	"fmt"

	"github.com/wdamron/lfparse/internal/typeutil"
)

// ErrNotSubtype is wrapped by every failure of System.UnifySubtype.
var ErrNotSubtype = errors.New("Failed to unify subtype")

// Hierarchy is a single-inheritance subtype relation over atomic types. A Hierarchy
// must not be modified while it is shared by Systems in use.
type Hierarchy struct {
	parents map[string]string
}

// Create a hierarchy containing the predeclared types `e` and `t`.
func NewHierarchy() *Hierarchy {
	h := &Hierarchy{parents: make(map[string]string)}
	h.parents[Entity.Name] = ""
	h.parents[Truth.Name] = ""
	return h
}

// Declare an atomic type with an optional parent (supertype). An empty parent declares a root type.
func (h *Hierarchy) Declare(name, parent string) error {
	if parent != "" {
		if _, ok := h.parents[parent]; !ok {
			return errors.New("Undeclared parent type " + parent + " for " + name)
		}
		for p := parent; p != ""; p = h.parents[p] {
			if p == name {
				return errors.New("Cyclic subtype declaration for " + name)
			}
		}
	}
	h.parents[name] = parent
	return nil
}

// Declared reports whether name is a known atomic type.
func (h *Hierarchy) Declared(name string) bool {
	_, ok := h.parents[name]
	return ok
}

// Parent returns the supertype of an atomic type, or "" for a root type.
func (h *Hierarchy) Parent(name string) string { return h.parents[name] }

// IsSubtype reports whether child <: parent for atomic type names.
func (h *Hierarchy) IsSubtype(child, parent string) bool {
	for c := child; ; {
		if c == parent {
			return true
		}
		next, ok := h.parents[c]
		if !ok || next == "" {
			return false
		}
		c = next
	}
}

// System allocates type-variables and unifies types with subtyping against a
// persistent Env. A System is not safe for concurrent use; each parse owns one.
type System struct {
	Hierarchy *Hierarchy
	vars      typeutil.SlotAllocator
}

// Create a type-system over the given hierarchy. A nil hierarchy uses NewHierarchy().
func NewSystem(h *Hierarchy) *System {
	if h == nil {
		h = NewHierarchy()
	}
	return &System{Hierarchy: h}
}

// NewVar allocates a fresh type-variable.
func (s *System) NewVar() *Var { return newSlotVar(s.vars.Alloc()) }

// Release returns a type-variable's id to the pool.
func (s *System) Release(v *Var) { s.vars.Release(v.Slot()) }

// Reset releases every type-variable allocated by the system.
func (s *System) Reset() { s.vars.Reset() }

// LiveVars returns the number of allocated type-variables.
func (s *System) LiveVars() int { return s.vars.Len() }

// Duplicate copies t with fresh type-variables. Repeated occurrences of a variable
// map to the same fresh variable through mapping, which may be shared across calls.
func (s *System) Duplicate(t Type, mapping map[int]*Var) Type {
	switch t := RealType(t).(type) {
	case *Var:
		if fresh, ok := mapping[t.id]; ok {
			return fresh
		}
		fresh := s.NewVar()
		mapping[t.id] = fresh
		return fresh
	case *Arrow:
		return &Arrow{From: s.Duplicate(t.From, mapping), To: s.Duplicate(t.To, mapping)}
	case *List:
		return &List{Elem: s.Duplicate(t.Elem, mapping)}
	default:
		return t
	}
}

// DuplicateEnv copies every binding of env with fresh type-variables, sharing mapping with
// Duplicate so that duplicated expressions and environments stay linked.
func (s *System) DuplicateEnv(env Env, mapping map[int]*Var) Env {
	out := EmptyEnv
	env.Range(func(v *Var, t Type) bool {
		fresh := s.Duplicate(v, mapping).(*Var)
		out = out.Bind(fresh, s.Duplicate(t, mapping))
		return true
	})
	return out
}

// IsSubtype reports whether child <: parent holds without binding any variables.
func (s *System) IsSubtype(env Env, child, parent Type) bool {
	_, err := s.unify(env, parent, child, false)
	return err == nil
}

// UnifySubtype asserts child <: parent, binding unbound type-variables as needed. The
// returned environment extends env; env itself is never modified.
func (s *System) UnifySubtype(env Env, parent, child Type) (Env, error) {
	return s.unify(env, parent, child, true)
}

func (s *System) unify(env Env, parent, child Type, bind bool) (Env, error) {
	p, c := env.Walk(parent), env.Walk(child)
	pv, pIsVar := p.(*Var)
	cv, cIsVar := c.(*Var)
	switch {
	case pIsVar && cIsVar && pv.id == cv.id:
		return env, nil
	case pIsVar:
		if !bind {
			return env, nil
		}
		if occurs(env, pv, c) {
			return env, fmt.Errorf("%w: recursive type ?%d in %s", ErrNotSubtype, pv.id, TypeString(env.Resolve(c)))
		}
		return env.Bind(pv, c), nil
	case cIsVar:
		if !bind {
			return env, nil
		}
		if occurs(env, cv, p) {
			return env, fmt.Errorf("%w: recursive type ?%d in %s", ErrNotSubtype, cv.id, TypeString(env.Resolve(p)))
		}
		return env.Bind(cv, p), nil
	}

	switch p := p.(type) {
	case *Atom:
		if c, ok := c.(*Atom); ok && s.Hierarchy.IsSubtype(c.Name, p.Name) {
			return env, nil
		}
	case *Arrow:
		if c, ok := c.(*Arrow); ok {
			// arguments are contravariant
			env, err := s.unify(env, c.From, p.From, bind)
			if err != nil {
				return env, err
			}
			return s.unify(env, p.To, c.To, bind)
		}
	case *List:
		if c, ok := c.(*List); ok {
			return s.unify(env, p.Elem, c.Elem, bind)
		}
	}
	return env, fmt.Errorf("%w: %s is not a subtype of %s", ErrNotSubtype, TypeString(env.Resolve(c)), TypeString(env.Resolve(p)))
}

func occurs(env Env, v *Var, t Type) bool {
	switch t := env.Walk(t).(type) {
	case *Var:
		return t.id == v.id
	case *Arrow:
		return occurs(env, v, t.From) || occurs(env, v, t.To)
	case *List:
		return occurs(env, v, t.Elem)
	}
	return false
}

// Related reports whether a <: b or b <: a, returning the more specific type.
func (s *System) Related(env Env, a, b Type) (Type, Env, bool) {
	if next, err := s.UnifySubtype(env, b, a); err == nil {
		return a, next, true
	}
	if next, err := s.UnifySubtype(env, a, b); err == nil {
		return b, next, true
	}
	return nil, env, false
}
