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

import (
	"fmt"

	"github.com/wdamron/lfparse/lambda"
)

// Transition is one step of a reference derivation. Parent and Left are positions within
// the derivation, where 0 is the initial state and step k is at position k; Left is -1
// unless the action is a reduce.
type Transition struct {
	Action Action `yaml:"action"`
	Match  string `yaml:"match,omitempty"`
	RuleID int    `yaml:"rule"`
	KB     int    `yaml:"kb"`
	Lex    string `yaml:"lex,omitempty"`
	Parent int    `yaml:"parent"`
	Left   int    `yaml:"left"`
}

// Derivation returns the transitions which reproduce the best derivation of s. Each
// transition's parent is the previous position of the derivation; a merged state's first
// incoming edge may come from a parent outside the derivation.
func (c *Chart) Derivation(s *State) ([]Transition, error) {
	trace := c.Trace(s)
	pos := map[int]int{c.Init().ID: 0}
	for i, st := range trace {
		pos[st.ID] = i + 1
	}
	deriv := make([]Transition, len(trace))
	for i, st := range trace {
		e := st.Incomings[0]
		t := Transition{
			Action: st.Action,
			Match:  st.Match,
			RuleID: st.RuleID,
			KB:     st.KB,
			Lex:    st.LexKey,
			Parent: i,
			Left:   -1,
		}
		if e.Left >= 0 {
			left, ok := pos[e.Left]
			if !ok || left >= i {
				return nil, &ConsistencyError{Step: st.Step, Reason: fmt.Sprintf("left state %d of %d is not on the derivation", e.Left, st.ID)}
			}
			t.Left = left
		}
		deriv[i] = t
	}
	return deriv, nil
}

// ForcedProceed reproduces transition t from the last state of path. Exactly one distinct
// successor must match t; the successor is added to the chart and returned.
func (ctx *ParseContext) ForcedProceed(c *Chart, path []*State, t Transition) (*State, error) {
	cur := path[len(path)-1]
	step := cur.Step + 1
	fail := func(format string, args ...interface{}) (*State, error) {
		return nil, &ConsistencyError{Step: step, Reason: fmt.Sprintf(format, args...)}
	}
	if t.Parent != len(path)-1 {
		return fail("parent %d is not the previous state %d", t.Parent, len(path)-1)
	}

	var cands []*State
	switch t.Action.Kind {
	case Shift, Skip:
		if cur.J >= len(c.Tokens) {
			return fail("%s past the end of the input", t.Action)
		}
		if t.Action.Kind == Shift {
			cands = ctx.shift(c, cur)
		} else {
			cands = []*State{ctx.skip(c, cur)}
		}
	case Reduce:
		if t.Left < 0 || t.Left >= len(path) {
			return fail("missing left state %d", t.Left)
		}
		left := path[t.Left]
		if !containsId(cur.LeftPtrs, left.ID) {
			return fail("state %d is not a left pointer of %d", t.Left, t.Parent)
		}
		if left.Empty() {
			return fail("reduce against an empty stack")
		}
		cands = ctx.reduceWith(c, cur, left)
	default:
		return fail("unexpected action %s", t.Action)
	}

	var matched []*State
	seen := make(map[string]bool, len(cands))
	for _, s := range cands {
		if s.Action != t.Action || s.Match != t.Match {
			continue
		}
		if t.Action.Kind == Shift && (s.RuleID != t.RuleID || s.KB != t.KB || s.LexKey != t.Lex) {
			continue
		}
		if seen[s.sig] {
			continue
		}
		seen[s.sig] = true
		matched = append(matched, s)
	}
	if len(matched) != 1 {
		return fail("%d successors match %s", len(matched), t.Action)
	}
	c.add(matched[0])
	return matched[0], nil
}

// ForcedReplay reproduces a reference derivation. The returned chart holds a single state
// per step and one final state.
func (ctx *ParseContext) ForcedReplay(tokens []Token, deriv []Transition) (*Chart, error) {
	c := NewChart(tokens)
	path := []*State{c.Init()}
	for _, t := range deriv {
		next, err := ctx.ForcedProceed(c, path, t)
		if err != nil {
			return nil, err
		}
		path = append(path, next)
		c.Beams = append(c.Beams, []int{next.ID})
	}
	last := path[len(path)-1]
	if !c.IsFinal(last) {
		return nil, &ConsistencyError{Step: last.Step, Reason: "derivation does not reach a final state"}
	}
	c.Finals = []int{last.ID}
	if err := c.Validate(); err != nil {
		return nil, &ConsistencyError{Step: last.Step, Reason: err.Error()}
	}
	return c, nil
}

// Oracle searches for a derivation of gold. Shifts are restricted to lexical terms whose
// constants all occur in gold, and the first maxFinals finals (by score) are checked for
// semantic equality. Nothing is returned when no final matches; an error is returned when
// the matching final's derivation cannot be read off the chart.
func (ctx *ParseContext) Oracle(tokens []Token, gold lambda.Expr, maxFinals int) ([]Transition, bool, error) {
	gold = lambda.Simplify(gold)
	want, _ := lambda.CollectConstants(gold)
	admit := ctx.Admit
	ctx.Admit = func(s *State) bool {
		have, _ := lambda.CollectConstants(s.Lex)
		for _, name := range have.Slice() {
			if !want.Contains(name) {
				return false
			}
		}
		return admit == nil || admit(s)
	}
	defer func() { ctx.Admit = admit }()

	c := ctx.Parse(tokens)
	for i, final := range c.FinalsByScore() {
		if maxFinals > 0 && i >= maxFinals {
			break
		}
		e, err := ctx.Recover(c, final)
		if err != nil {
			return nil, false, err
		}
		if lambda.SemanticEq(e, gold) {
			deriv, err := c.Derivation(final)
			if err != nil {
				return nil, false, err
			}
			return deriv, true, nil
		}
	}
	return nil, false, nil
}
