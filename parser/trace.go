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

package parser

import "github.com/wdamron/lfparse/model"

// Trace returns the derivation of s from the initial state (excluding it), following the
// best incoming edge of every state. Each state's edge is visited once, so the summed
// costs of the trace equal s.Score.
func (c *Chart) Trace(s *State) []*State {
	if s.Action.Kind == Init {
		return nil
	}
	e := s.Incomings[0]
	parent := c.States[e.Parent]
	if s.Action.Kind == Reduce {
		return append(append(c.Trace(c.States[e.Left]), c.insideTrace(parent)...), s)
	}
	return append(c.Trace(parent), s)
}

// The derivation of s's top stack item alone. Summed costs equal s.Inside + s.ShiftCost.
func (c *Chart) insideTrace(s *State) []*State {
	switch s.Action.Kind {
	case Init:
		return nil
	case Shift:
		return []*State{s}
	}
	e := s.Incomings[0]
	parent := c.States[e.Parent]
	if s.Action.Kind == Skip {
		return append(c.insideTrace(parent), s)
	}
	return append(append(c.insideTrace(c.States[e.Left]), c.insideTrace(parent)...), s)
}

// TraceFeats sums the features along a trace into a vector.
func TraceFeats(trace []*State) model.Vector {
	v := model.NewVector()
	for _, s := range trace {
		v.IAddL(s.Action.String(), s.Incomings[0].Feats, 1)
	}
	return v
}

// TraceCost sums the action costs along a trace.
func TraceCost(trace []*State) float64 {
	var cost float64
	for _, s := range trace {
		cost += s.Incomings[0].Cost
	}
	return cost
}
