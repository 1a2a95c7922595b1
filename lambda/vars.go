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

package lambda

import (
	"strconv"

	"github.com/wdamron/lfparse/internal/typeutil"
	"github.com/wdamron/lfparse/types"
)

// VarPool allocates fresh variables named `$<slot>`. Ids are recycled on Release or Reset.
// A VarPool is not safe for concurrent use.
type VarPool struct {
	slots typeutil.SlotAllocator
}

// NewVar allocates a fresh variable of type t.
func (p *VarPool) NewVar(t types.Type) *Variable {
	s := p.slots.Alloc()
	return &Variable{Name: "$" + strconv.Itoa(s.Index), T: t, Id: s.Index, gen: s.Gen}
}

// Release returns a fresh variable's id to the pool. Named variables are ignored.
func (p *VarPool) Release(v *Variable) bool {
	if v.Id < 0 {
		return false
	}
	return p.slots.Release(typeutil.Slot{Index: v.Id, Gen: v.gen})
}

// Reset releases every variable allocated by the pool.
func (p *VarPool) Reset() { p.slots.Reset() }

// Live returns the number of allocated variables.
func (p *VarPool) Live() int { return p.slots.Len() }
