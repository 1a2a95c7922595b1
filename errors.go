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

// TypeErrorKind classifies inference failures.
type TypeErrorKind int

const (
	// Two types could not be unified with the required subtype direction.
	Mismatch TypeErrorKind = iota
	// A type-variable would be bound to a type containing itself.
	Occurs
	// A variable is neither bound by an enclosing abstraction nor declared.
	Unbound
	// A constant carries no type.
	Untyped
	// An application supplies arguments to a non-function type.
	Arity
)

func (k TypeErrorKind) String() string {
	switch k {
	case Mismatch:
		return "mismatch"
	case Occurs:
		return "occurs"
	case Unbound:
		return "unbound"
	case Untyped:
		return "untyped"
	case Arity:
		return "arity"
	}
	return "TypeErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// TypeError is returned when inference fails.
type TypeError struct {
	Kind TypeErrorKind
	Msg  string
	// Expr is the sub-expression which caused inference to fail, if known.
	Expr lambda.Expr
}

func (err *TypeError) Error() string { return err.Msg }

func mismatch(parent, child types.Type) *TypeError {
	return &TypeError{
		Kind: Mismatch,
		Msg:  "Failed to unify " + types.TypeString(child) + " as a subtype of " + types.TypeString(parent),
	}
}
