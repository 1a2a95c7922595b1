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

// model provides sparse linear models for the parser: action-conjoined feature vectors,
// averaged-perceptron weights, and SQLite checkpoints.
package model

import (
	"math"
	"sort"
)

// Sentinel symbols for feature templates which look past either end of the input or the stack.
const (
	NoneSym  = "<none>"
	StartSym = "<s>"
	EndSym   = "</s>"
)

// Key identifies a feature conjoined with a parser action.
type Key struct {
	Action  string
	Feature string
}

// Vector is a sparse vector over action-conjoined features. The zero value is not usable;
// create vectors with NewVector or make.
type Vector map[Key]float64

// Create an empty vector.
func NewVector() Vector { return make(Vector) }

// IAddL adds v to every feature in feats under action.
func (w Vector) IAddL(action string, feats []string, v float64) {
	for _, f := range feats {
		w[Key{action, f}] += v
	}
}

// IAdd adds other to w.
func (w Vector) IAdd(other Vector) {
	for k, v := range other {
		w[k] += v
	}
}

// IAddC adds c times other to w.
func (w Vector) IAddC(other Vector, c float64) {
	for k, v := range other {
		w[k] += c * v
	}
}

// Times scales every weight by c.
func (w Vector) Times(c float64) {
	for k, v := range w {
		w[k] = v * c
	}
}

// Trim removes weights whose magnitude is below eps.
func (w Vector) Trim(eps float64) {
	for k, v := range w {
		if math.Abs(v) < eps {
			delete(w, k)
		}
	}
}

// Dot returns the sum of weights for feats under action. Repeated features count repeatedly.
func (w Vector) Dot(action string, feats []string) float64 {
	s := 0.0
	for _, f := range feats {
		s += w[Key{action, f}]
	}
	return s
}

// DotVector returns the inner product of two vectors.
func (w Vector) DotVector(other Vector) float64 {
	if len(other) > len(w) {
		w, other = other, w
	}
	s := 0.0
	for k, v := range other {
		s += w[k] * v
	}
	return s
}

// EvalFeats scores feats under action.
func (w Vector) EvalFeats(action string, feats []string) float64 { return w.Dot(action, feats) }

// Clone returns a copy of w.
func (w Vector) Clone() Vector {
	c := make(Vector, len(w))
	for k, v := range w {
		c[k] = v
	}
	return c
}

// Keys returns the keys of w ordered by action, then feature.
func (w Vector) Keys() []Key {
	keys := make([]Key, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Action != keys[j].Action {
			return keys[i].Action < keys[j].Action
		}
		return keys[i].Feature < keys[j].Feature
	})
	return keys
}
