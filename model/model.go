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

package model

// Scorer scores the features of a parser action.
type Scorer interface {
	EvalFeats(action string, feats []string) float64
}

var (
	_ Scorer = Vector(nil)
	_ Scorer = (*Weights)(nil)
)

// Weights is an averaged-perceptron weight vector.
//
// Each update at step c adds delta to W and c*delta to U; the average of W after each of
// steps 1..T is then W - (U - W)/T, which SetAvg installs without per-step snapshots.
type Weights struct {
	W     Vector
	U     Vector
	saved Vector
}

// Create zero weights.
func NewWeights() *Weights {
	return &Weights{W: NewVector(), U: NewVector()}
}

// IAddWStep applies delta at the given (1-based, increasing) step.
func (w *Weights) IAddWStep(delta Vector, step int) {
	w.W.IAdd(delta)
	w.U.IAddC(delta, float64(step))
}

// SetAvg replaces W by the average of all updates up to step. ResetAvg restores W.
func (w *Weights) SetAvg(step int) {
	if w.saved != nil || step <= 0 {
		return
	}
	w.saved = w.W
	avg := w.W.Clone()
	avg.IAddC(w.U, -1/float64(step))
	avg.IAddC(w.W, 1/float64(step))
	avg.Trim(1e-12)
	w.W = avg
}

// ResetAvg restores the weights replaced by SetAvg.
func (w *Weights) ResetAvg() {
	if w.saved == nil {
		return
	}
	w.W, w.saved = w.saved, nil
}

// Averaged reports whether SetAvg is in effect.
func (w *Weights) Averaged() bool { return w.saved != nil }

func (w *Weights) EvalFeats(action string, feats []string) float64 { return w.W.Dot(action, feats) }

// Clone returns a deep copy of the weights.
func (w *Weights) Clone() *Weights {
	c := &Weights{W: w.W.Clone(), U: w.U.Clone()}
	if w.saved != nil {
		c.saved = w.saved.Clone()
	}
	return c
}

// Model pairs weights with the global update step.
type Model struct {
	Weights *Weights
	Step    int
}

// Create a model with zero weights.
func NewModel() *Model { return &Model{Weights: NewWeights()} }

// NewWeights returns a zero delta vector.
func (m *Model) NewWeights() Vector { return NewVector() }

func (m *Model) EvalFeats(action string, feats []string) float64 {
	return m.Weights.EvalFeats(action, feats)
}

// Update applies delta at the next step.
func (m *Model) Update(delta Vector) {
	m.Step++
	m.Weights.IAddWStep(delta, m.Step)
}

// SetAvg installs the averaged weights; ResetAvg restores the live weights.
func (m *Model) SetAvg() { m.Weights.SetAvg(m.Step) }

func (m *Model) ResetAvg() { m.Weights.ResetAvg() }
