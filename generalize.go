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
	"github.com/wdamron/lfparse/types"
)

// Resolve all inference variables within t. Unbound inference variables become generic
// type-variables, shared through the given lookup.
func generalize(t types.Type, generic map[int]*types.Var) types.Type {
	switch t := types.RealType(t).(type) {
	case *types.InferVar:
		if tv, ok := generic[t.Id()]; ok {
			return tv
		}
		tv := types.NewVar(t.Id())
		generic[t.Id()] = tv
		return tv

	case *types.Arrow:
		return &types.Arrow{From: generalize(t.From, generic), To: generalize(t.To, generic)}

	case *types.List:
		return &types.List{Elem: generalize(t.Elem, generic)}

	default:
		return t
	}
}
