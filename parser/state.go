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
	"sort"
	"strconv"
	"strings"

	"github.com/wdamron/lfparse/lambda"
	"github.com/wdamron/lfparse/types"
)

// Edge is a hyperedge into a state: the state was produced from Parent, reduced against
// Left (or -1). Features and cost are those of the action along this edge.
type Edge struct {
	Parent int
	Left   int
	Feats  []string
	Cost   float64
}

// State is a hypernode: a partial derivation whose top stack item covers tokens [I,J).
type State struct {
	ID     int
	Step   int
	I, J   int
	Action Action
	// Type of the top stack item, or nil for an empty stack.
	Type types.Type
	Env  types.Env
	// S1 is the type key of the item below the top, or "" for an empty stack.
	S1 string

	// Shift states carry the lexical term they pushed.
	Lex    lambda.Expr
	LexKey string
	Match  string
	RuleID int
	KB     int

	// Content words of the skip run ending at this state, and the state the run started from.
	Skipped   []string
	SkipStart int

	LeftPtrs  []int
	Incomings []Edge

	Score, Inside, ShiftCost float64

	sig string
}

// Empty reports whether the state has an empty stack.
func (s *State) Empty() bool { return s.Type == nil }

// TypeKey returns the canonical type of the top stack item.
func (s *State) TypeKey() string {
	if s.Type == nil {
		return ""
	}
	return types.CanonicalTypeString(s.Env, s.Type)
}

func (s *State) signature() string {
	var sb strings.Builder
	for _, part := range []string{
		strconv.Itoa(s.Step), strconv.Itoa(s.I), strconv.Itoa(s.J), s.Action.String(),
		s.TypeKey(), s.S1, s.Match, strconv.Itoa(s.KB), strconv.Itoa(s.RuleID),
		strings.Join(s.Skipped, " "), s.LexKey,
	} {
		sb.WriteString(part)
		sb.WriteByte('|')
	}
	return sb.String()
}

// Chart is the arena of states for one sentence.
type Chart struct {
	Tokens []Token
	States []*State
	// Beams lists the surviving states of each step, best first.
	Beams [][]int
	// Finals lists complete derivations in the order they were reached.
	Finals []int
}

// Create an empty chart containing only the initial state.
func NewChart(tokens []Token) *Chart {
	c := &Chart{Tokens: tokens}
	init := c.add(&State{
		I: -1, J: 0, Action: InitAction, Env: types.EmptyEnv,
		RuleID: -1, KB: -1, SkipStart: -1,
	})
	c.Beams = [][]int{{init}}
	return c
}

func (c *Chart) add(s *State) int {
	s.ID = len(c.States)
	c.States = append(c.States, s)
	return s.ID
}

// State returns the state with the given id.
func (c *Chart) State(id int) *State { return c.States[id] }

// Init returns the initial state.
func (c *Chart) Init() *State { return c.States[c.Beams[0][0]] }

// IsFinal reports whether s covers the whole input with a single stack item.
func (c *Chart) IsFinal(s *State) bool {
	if s.J != len(c.Tokens) || s.Empty() {
		return false
	}
	for _, id := range s.LeftPtrs {
		if !c.States[id].Empty() {
			return false
		}
	}
	return true
}

// FinalsByScore returns final states ordered by descending score.
func (c *Chart) FinalsByScore() []*State {
	finals := make([]*State, len(c.Finals))
	for i, id := range c.Finals {
		finals[i] = c.States[id]
	}
	sort.SliceStable(finals, func(i, j int) bool { return finals[i].Score > finals[j].Score })
	return finals
}

// Best returns the highest-scoring final state.
func (c *Chart) Best() (*State, bool) {
	finals := c.FinalsByScore()
	if len(finals) == 0 {
		return nil, false
	}
	return finals[0], true
}

// Viterbi returns the best state of each step's beam.
func (c *Chart) Viterbi() []*State {
	best := make([]*State, len(c.Beams))
	for i, beam := range c.Beams {
		best[i] = c.States[beam[0]]
	}
	return best
}

// Merge candidate states into the chart. Candidates are ordered by score, so the first
// candidate with a given signature provides the merged state's scores; later candidates
// only contribute hyperedges (and, unless they were reduced, left pointers). At most
// beamSize distinct states are kept when beamSize is positive. The ids of kept states are
// returned, best first.
func (c *Chart) merge(cands []*State, beamSize int) []int {
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Score > cands[j].Score })
	bySig := make(map[string]*State, len(cands))
	var kept []*State
	for _, s := range cands {
		if s.sig == "" {
			s.sig = s.signature()
		}
		if existing, ok := bySig[s.sig]; ok {
			existing.Incomings = append(existing.Incomings, s.Incomings...)
			if s.Action.Kind != Reduce {
				existing.LeftPtrs = unionIds(existing.LeftPtrs, s.LeftPtrs)
			}
			continue
		}
		if beamSize > 0 && len(kept) >= beamSize {
			continue
		}
		bySig[s.sig] = s
		kept = append(kept, s)
	}
	ids := make([]int, len(kept))
	for i, s := range kept {
		ids[i] = c.add(s)
	}
	return ids
}

// unionIds never modifies a.
func unionIds(a, b []int) []int {
	out := a
	copied := false
	for _, id := range b {
		if containsId(out, id) {
			continue
		}
		if !copied {
			out = append(make([]int, 0, len(a)+len(b)), a...)
			copied = true
		}
		out = append(out, id)
	}
	return out
}

func containsId(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
