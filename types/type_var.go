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

import "github.com/wdamron/lfparse/internal/typeutil"

// Type-variable. Bindings for type-variables are held in an Env, never in the
// variable itself.
type Var struct {
	id  int
	gen uint32
}

// Create a type-variable with the given id.
func NewVar(id int) *Var { return &Var{id: id} }

func newSlotVar(s typeutil.Slot) *Var { return &Var{id: s.Index, gen: s.Gen} }

// Id returns the identifier of the type-variable within its System.
func (tv *Var) Id() int { return tv.id }

// Slot returns the allocator slot of the type-variable.
func (tv *Var) Slot() typeutil.Slot { return typeutil.Slot{Index: tv.id, Gen: tv.gen} }

// Inference variable. Inference variables are only created during type-inference;
// Instance links form a union-find forest which RealType compresses.
type InferVar struct {
	Instance Type
	id       int
}

// Create an unbound inference variable with the given id.
func NewInferVar(id int) *InferVar { return &InferVar{id: id} }

// Id returns the identifier of the inference variable.
func (tv *InferVar) Id() int { return tv.id }

func (tv *InferVar) IsBound() bool { return tv.Instance != nil }
