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

// Type is the base interface for all types.
type Type interface {
	TypeName() string
}

func (t *Atom) TypeName() string     { return "Atom" }
func (t *Arrow) TypeName() string    { return "Arrow" }
func (t *List) TypeName() string     { return "List" }
func (t *Var) TypeName() string      { return "Var" }
func (t *InferVar) TypeName() string { return "InferVar" }

var (
	_ Type = (*Atom)(nil)
	_ Type = (*Arrow)(nil)
	_ Type = (*List)(nil)
	_ Type = (*Var)(nil)
	_ Type = (*InferVar)(nil)
)

// Atomic type: `e`, `t`, `city`
type Atom struct {
	Name string
}

// Function type: `<e,t>`
type Arrow struct {
	From Type
	To   Type
}

// List type: `[e]`
type List struct {
	Elem Type
}

// Predeclared atomic types.
var (
	Entity = &Atom{Name: "e"}
	Truth  = &Atom{Name: "t"}
)

// Returns the final result type of a curried function type, or t itself.
func Returns(t Type) Type {
	for {
		a, ok := RealType(t).(*Arrow)
		if !ok {
			return RealType(t)
		}
		t = a.To
	}
}

// Arity returns the number of curried argument positions of t.
func Arity(t Type) int {
	n := 0
	for {
		a, ok := RealType(t).(*Arrow)
		if !ok {
			return n
		}
		t, n = a.To, n+1
	}
}

// ArgTypes returns the curried argument types of t.
func ArgTypes(t Type) []Type {
	var args []Type
	for {
		a, ok := RealType(t).(*Arrow)
		if !ok {
			return args
		}
		args, t = append(args, a.From), a.To
	}
}

// SkipArgs drops n applied arguments off a curried function type. A list-typed
// argument position absorbs every remaining argument.
func SkipArgs(t Type, n int) (Type, bool) {
	for n > 0 {
		a, ok := RealType(t).(*Arrow)
		if !ok {
			return nil, false
		}
		if _, isList := RealType(a.From).(*List); isList {
			return a.To, true
		}
		t, n = a.To, n-1
	}
	return t, true
}

// IsPredicate reports whether t is a function type whose final result is the truth type.
func IsPredicate(t Type) bool {
	if _, ok := RealType(t).(*Arrow); !ok {
		return false
	}
	r, ok := Returns(t).(*Atom)
	return ok && r.Name == Truth.Name
}

// Equal reports whether two types are structurally identical. Type-variables are
// compared by id; inference variables are pruned first.
func Equal(a, b Type) bool {
	a, b = RealType(a), RealType(b)
	switch a := a.(type) {
	case *Atom:
		b, ok := b.(*Atom)
		return ok && a.Name == b.Name
	case *Arrow:
		b, ok := b.(*Arrow)
		return ok && Equal(a.From, b.From) && Equal(a.To, b.To)
	case *List:
		b, ok := b.(*List)
		return ok && Equal(a.Elem, b.Elem)
	case *Var:
		b, ok := b.(*Var)
		return ok && a.id == b.id
	case *InferVar:
		b, ok := b.(*InferVar)
		return ok && a.id == b.id
	case nil:
		return b == nil
	}
	return false
}

// Get the underlying type for a chain of instantiated inference variables, when applicable.
// Chains are compressed along the way.
func RealType(t Type) Type {
	tv, ok := t.(*InferVar)
	if !ok || tv.Instance == nil {
		return t
	}
	real := RealType(tv.Instance)
	tv.Instance = real
	return real
}
