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
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/lfparse"
	"github.com/wdamron/lfparse/kb"
	"github.com/wdamron/lfparse/lambda"
	"github.com/wdamron/lfparse/model"
	"github.com/wdamron/lfparse/types"
)

const testLexicon = `
types:
  - {name: location, parent: e}
  - {name: city, parent: location}
  - {name: state, parent: location}
  - {name: river, parent: e}
nnp:
  texas: ["texas:state"]
patterns:
  capital: ["(lambda $0:state (capital:<state,city> $0))"]
  of: ["(lambda $0:state $0)"]
  major: ["major:<e,t>"]
  river: ["river:<river,t>"]
postags:
  NN: ["(lambda #P:<e,t> (lambda $0:e (#P $0)))"]
predicates:
  - {words: [major, city], term: "major_city:<city,t>"}
`

func testContext(t *testing.T, scorer model.Scorer) *ParseContext {
	t.Helper()
	lex, err := kb.ParseLexicon([]byte(testLexicon))
	require.NoError(t, err)
	return NewContext(lex.Hierarchy(), scorer, 64, lex)
}

func tokens(t *testing.T, s string) []Token {
	t.Helper()
	toks, err := ParseTokens(s)
	require.NoError(t, err)
	return toks
}

func hasSkip(trace []*State) bool {
	for _, s := range trace {
		if s.Action == SkipAction {
			return true
		}
	}
	return false
}

func TestParseTokens(t *testing.T) {
	toks := tokens(t, "capital/NN of/IN a/b/NNP")
	assert.Equal(t, []Token{{"capital", "NN"}, {"of", "IN"}, {"a/b", "NNP"}}, toks)

	_, err := ParseTokens("capital")
	assert.Error(t, err)
	_, err = ParseTokens("capital/")
	assert.Error(t, err)
}

func TestParseAction(t *testing.T) {
	for _, a := range []Action{ShiftAction, SkipAction, ReduceLeft, ReduceRight, ReduceAnd, ReduceOr} {
		parsed, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
	_, err := ParseAction("REDUCE")
	assert.Error(t, err)
}

func TestTransitionSpans(t *testing.T) {
	ctx := testContext(t, nil)
	c := NewChart(tokens(t, "capital/NN of/IN texas/NNP"))
	init := c.Init()

	shifts := ctx.shift(c, init)
	require.NotEmpty(t, shifts)
	for _, s := range shifts {
		assert.Equal(t, init.J+1, s.J)
		assert.Equal(t, init.J, s.I)
		assert.Equal(t, []int{init.ID}, s.LeftPtrs)
	}

	skip := ctx.skip(c, init)
	assert.Equal(t, init.J+1, skip.J)
	assert.True(t, skip.Empty())

	c.add(shifts[0])
	assert.Empty(t, ctx.reduceWith(c, shifts[0], init))
	assert.Empty(t, ctx.reduceWith(c, init, shifts[0]))
}

func TestSkipSpans(t *testing.T) {
	ctx := testContext(t, nil)
	c := NewChart(tokens(t, "the/DT major/JJ big/JJ city/NN"))
	s := c.Init()
	for i := 0; i < 3; i++ {
		next := ctx.skip(c, s)
		c.add(next)
		assert.Equal(t, s.J+1, next.J)
		assert.Equal(t, c.Init().ID, next.SkipStart)
		s = next
	}
	assert.Equal(t, []string{"major", "big"}, s.Skipped)
}

func TestShiftGroundsPlaceholders(t *testing.T) {
	ctx := testContext(t, nil)
	c := NewChart(tokens(t, "major/JJ city/NN texas/NNP"))
	init := c.Init()

	// Without the skipped word, the two-word predicate is not covered:
	direct := NewChart(c.Tokens[1:])
	assert.Empty(t, ctx.shift(direct, direct.Init()))

	skip := ctx.skip(c, init)
	c.add(skip)
	shifts := ctx.shift(c, skip)
	require.Len(t, shifts, 1)
	s := shifts[0]
	c.add(s)
	assert.Equal(t, "major_city", s.Match)
	assert.Equal(t, "(lambda $0:city (major_city:<city,t> $0))", s.LexKey)
	assert.Equal(t, "<city,t>", types.TypeString(s.Env.Resolve(s.Type)))
	assert.Equal(t, []int{skip.ID}, s.LeftPtrs)

	// The grounded predicate only accepts cities:
	texas := ctx.shift(c, s)
	require.Len(t, texas, 1)
	c.add(texas[0])
	assert.Empty(t, ctx.reduceWith(c, texas[0], s))
}

func TestGroundedFinalsTypeCheck(t *testing.T) {
	ctx := testContext(t, nil)
	c := ctx.Parse(tokens(t, "major/JJ city/NN texas/NNP"))
	require.NotEmpty(t, c.Finals)
	infer := lfparse.NewContext(ctx.Sys.Hierarchy)
	for _, final := range c.FinalsByScore() {
		e, err := ctx.Recover(c, final)
		require.NoError(t, err)
		_, err = infer.Infer(e, nil)
		assert.NoError(t, err, lambda.ExprString(e))
	}
}

func TestShiftReleasesRejectedVars(t *testing.T) {
	ctx := testContext(t, nil)
	c := NewChart(tokens(t, "capital/NN major/JJ city/NN"))

	// The placeholder entry finds no predicate for "capital":
	shifts := ctx.shift(c, c.Init())
	require.Len(t, shifts, 1)
	assert.Equal(t, 1, ctx.Pool.Live())

	ctx.Pool.Reset()
	ctx.Sys.Reset()
	ctx.Admit = func(*State) bool { return false }
	c.add(shifts[0])
	skip := ctx.skip(c, shifts[0])
	c.add(skip)
	assert.Empty(t, ctx.shift(c, skip))
	assert.Empty(t, ctx.shift(c, c.Init()))
	assert.Zero(t, ctx.Pool.Live())
	assert.Zero(t, ctx.Sys.LiveVars())
}

func TestParseEndToEnd(t *testing.T) {
	ctx := testContext(t, nil)
	c := ctx.Parse(tokens(t, "capital/NN of/IN texas/NNP"))
	require.NoError(t, c.Validate())

	var full []*State
	for _, id := range c.Finals {
		final := c.States[id]
		if !hasSkip(c.Trace(final)) {
			full = append(full, final)
		}
	}
	require.Len(t, full, 1)
	final := full[0]
	require.Len(t, final.Incomings, 1)
	assert.Equal(t, "city", types.TypeString(final.Env.Resolve(final.Type)))

	actions := []Action{}
	for _, s := range c.Trace(final) {
		actions = append(actions, s.Action)
	}
	assert.Equal(t, []Action{ShiftAction, ShiftAction, ShiftAction, ReduceLeft, ReduceLeft}, actions)

	e, err := ctx.Recover(c, final)
	require.NoError(t, err)
	printed := lambda.ExprString(e)
	assert.Equal(t, "(capital:<state,city> texas:state)", printed)

	reparsed, err := lambda.Parse(printed, types.NewSystem(ctx.Sys.Hierarchy), nil)
	require.NoError(t, err)
	assert.True(t, lambda.SemanticEq(e, reparsed))
}

func TestReduceUnion(t *testing.T) {
	ctx := testContext(t, nil)
	c := ctx.Parse(tokens(t, "major/JJ river/NN"))

	byAction := map[Action]*State{}
	for _, id := range c.Finals {
		final := c.States[id]
		if !hasSkip(c.Trace(final)) {
			byAction[final.Action] = final
		}
	}
	require.Len(t, byAction, 2)
	for action, conn := range map[Action]string{ReduceAnd: "and", ReduceOr: "or"} {
		final, ok := byAction[action]
		require.True(t, ok, action.String())
		e, err := ctx.Recover(c, final)
		require.NoError(t, err)
		want := lambda.MustParse("(lambda $0:river ("+conn+":<[t],t> (river:<river,t> $0) (major:<e,t> $0)))", types.NewSystem(nil))
		assert.True(t, lambda.SemanticEq(want, e), lambda.ExprString(e))
	}
}

func TestTraceFeatsMatchScore(t *testing.T) {
	w := model.NewVector()
	w.IAddL("SHIFT", []string{"bias", "w0=of"}, 0.5)
	w.IAddL("SKIP", []string{"bias", "skw=of"}, -0.25)
	w.IAddL("REDUCE-L", []string{"bias", "res=city"}, 1.5)
	w.IAddL("REDUCE-AND", []string{"bias"}, 0.75)
	ctx := testContext(t, w)

	for _, sent := range []string{"capital/NN of/IN texas/NNP", "major/JJ river/NN"} {
		c := ctx.Parse(tokens(t, sent))
		require.NotEmpty(t, c.Finals)
		for _, s := range c.States[1:] {
			trace := c.Trace(s)
			assert.InDelta(t, s.Score, TraceFeats(trace).DotVector(w), 1e-9)
			assert.InDelta(t, s.Score, TraceCost(trace), 1e-9)
			inside := c.insideTrace(s)
			if !s.Empty() {
				assert.InDelta(t, s.Inside+s.ShiftCost, TraceCost(inside), 1e-9)
			}
		}
	}
}

func TestForcedReplay(t *testing.T) {
	ctx := testContext(t, nil)
	toks := tokens(t, "capital/NN of/IN texas/NNP")
	c := ctx.Parse(toks)
	best, ok := c.Best()
	require.True(t, ok)
	deriv, err := c.Derivation(best)
	require.NoError(t, err)
	require.NotEmpty(t, deriv)

	gold, err := testContext(t, nil).ForcedReplay(toks, deriv)
	require.NoError(t, err)
	require.NoError(t, gold.Validate())
	final, ok := gold.Best()
	require.True(t, ok)
	replayed, err := gold.Derivation(final)
	require.NoError(t, err)
	assert.Equal(t, deriv, replayed)
	assert.Len(t, gold.Beams, len(deriv)+1)

	want, err := ctx.Recover(c, best)
	require.NoError(t, err)
	got, err := ctx.Recover(gold, final)
	require.NoError(t, err)
	assert.True(t, lambda.SemanticEq(want, got))

	corrupt := append([]Transition(nil), deriv...)
	for i := range corrupt {
		if corrupt[i].Action == ShiftAction {
			corrupt[i].RuleID = 99
			break
		}
	}
	_, err = ctx.ForcedReplay(toks, corrupt)
	var consistency *ConsistencyError
	require.True(t, errors.As(err, &consistency), "%v", err)

	_, err = ctx.ForcedReplay(toks, deriv[:len(deriv)-1])
	require.True(t, errors.As(err, &consistency), "%v", err)
}

func TestOracle(t *testing.T) {
	ctx := testContext(t, nil)
	toks := tokens(t, "capital/NN of/IN texas/NNP")
	gold := lambda.MustParse("(capital:<state,city> texas:state)", types.NewSystem(nil))

	deriv, ok, err := ctx.Oracle(toks, gold, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, ctx.Admit)

	c, err := ctx.ForcedReplay(toks, deriv)
	require.NoError(t, err)
	final, _ := c.Best()
	e, err := ctx.Recover(c, final)
	require.NoError(t, err)
	assert.True(t, lambda.SemanticEq(gold, e))

	_, ok, err = ctx.Oracle(toks, lambda.MustParse("(capital:<state,city> austin:state)", types.NewSystem(nil)), 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReferences(t *testing.T) {
	ctx := testContext(t, nil)
	toks := tokens(t, "capital/NN of/IN texas/NNP")
	c := ctx.Parse(toks)
	best, _ := c.Best()
	deriv, err := c.Derivation(best)
	require.NoError(t, err)
	refs := References{"geo-1": deriv}

	path := filepath.Join(t.TempDir(), "refs.yaml")
	require.NoError(t, refs.Save(path))
	loaded, err := LoadReferences(path)
	require.NoError(t, err)
	assert.Equal(t, refs, loaded)

	_, err = ctx.ForcedReplay(toks, loaded["geo-1"])
	require.NoError(t, err)

	empty, err := LoadReferences(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

const ambiguousLexicon = `
patterns:
  a: ["y:e"]
  b: ["y:e"]
  c: ["f:<e,t>"]
`

func TestDerivationsThroughMergedStates(t *testing.T) {
	lex, err := kb.ParseLexicon([]byte(ambiguousLexicon))
	require.NoError(t, err)
	ctx := NewContext(lex.Hierarchy(), nil, 64, lex)
	toks := tokens(t, "a/DT b/DT c/DT")
	c := ctx.Parse(toks)
	require.NotEmpty(t, c.Finals)
	require.NoError(t, c.Validate())

	merged := false
	for _, final := range c.FinalsByScore() {
		trace := c.Trace(final)
		prev := c.Init().ID
		for _, s := range trace {
			if s.Action.Kind != Reduce && s.Incomings[0].Parent != prev {
				merged = true
			}
			prev = s.ID
		}

		deriv, err := c.Derivation(final)
		require.NoError(t, err)
		for i, tr := range deriv {
			assert.Equal(t, i, tr.Parent)
			assert.Less(t, tr.Left, i)
		}
		gold, err := NewContext(lex.Hierarchy(), nil, 64, lex).ForcedReplay(toks, deriv)
		require.NoError(t, err, "%v", deriv)

		want, err := ctx.Recover(c, final)
		require.NoError(t, err)
		last, _ := gold.Best()
		got, err := ctx.Recover(gold, last)
		require.NoError(t, err)
		assert.True(t, lambda.SemanticEq(want, got), lambda.ExprString(got))
	}
	assert.True(t, merged, "no derivation passes through a merged state")
}

func TestValidateRejectsCycles(t *testing.T) {
	ctx := testContext(t, nil)
	toks := tokens(t, "texas/NNP")
	c := ctx.Parse(toks)
	best, ok := c.Best()
	require.True(t, ok)
	deriv, err := c.Derivation(best)
	require.NoError(t, err)
	gold, err := ctx.ForcedReplay(toks, deriv)
	require.NoError(t, err)

	// A back edge from the final state to the initial state closes a cycle.
	final, _ := gold.Best()
	gold.Init().Incomings = []Edge{{Parent: final.ID, Left: -1}}
	assert.Error(t, gold.Validate())
}

func TestMergeKeepsBeam(t *testing.T) {
	c := NewChart(tokens(t, "a/DT"))
	mk := func(score float64, sig string, left int) *State {
		return &State{Step: 1, Score: score, sig: sig, LeftPtrs: []int{left}, Action: SkipAction,
			Incomings: []Edge{{Parent: 0, Left: -1}}}
	}
	shared := []int{0}
	a := mk(1, "x", 0)
	a.LeftPtrs = shared
	ids := c.merge([]*State{mk(0.5, "y", 0), a, mk(0.75, "x", 7), mk(0.25, "z", 0)}, 2)
	require.Len(t, ids, 2)
	top := c.States[ids[0]]
	assert.Equal(t, 1.0, top.Score)
	assert.Len(t, top.Incomings, 2)
	assert.Equal(t, []int{0, 7}, top.LeftPtrs)
	assert.Equal(t, []int{0}, shared)
	assert.Equal(t, 0.5, c.States[ids[1]].Score)
}
