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
	"strings"

	"github.com/wdamron/lfparse/lambda"
	"github.com/wdamron/lfparse/types"
)

// Successors of p at the next step, scored but not yet merged.
func (ctx *ParseContext) successors(c *Chart, p *State) []*State {
	var next []*State
	if p.J < len(c.Tokens) {
		next = append(next, ctx.shift(c, p)...)
		next = append(next, ctx.skip(c, p))
	}
	for _, id := range p.LeftPtrs {
		next = append(next, ctx.reduceWith(c, p, c.States[id])...)
	}
	return next
}

// Compute features, cost and scores for s, reached from p (and q for reduces), and set its
// single incoming edge.
func (ctx *ParseContext) score(c *Chart, p, q, s *State) {
	feats := features(c, p, q, s)
	cost := ctx.Scorer.EvalFeats(s.Action.String(), feats)
	left := -1
	switch s.Action.Kind {
	case Shift:
		s.Score, s.Inside, s.ShiftCost = p.Score+cost, 0, cost
	case Skip:
		s.Score, s.Inside, s.ShiftCost = p.Score+cost, p.Inside+cost, p.ShiftCost
	case Reduce:
		left = q.ID
		s.Score = q.Score + p.Inside + p.ShiftCost + cost
		s.Inside = q.Inside + p.Inside + p.ShiftCost + cost
		s.ShiftCost = q.ShiftCost
	}
	s.Incomings = []Edge{{Parent: p.ID, Left: left, Feats: feats, Cost: cost}}
	s.sig = s.signature()
}

func (ctx *ParseContext) shift(c *Chart, p *State) []*State {
	tok := c.Tokens[p.J]
	covered := []string{strings.ToLower(tok.Word)}
	if p.Action.Kind == Skip {
		covered = append(append([]string(nil), p.Skipped...), covered[0])
	}
	s1 := p.TypeKey()
	var next []*State
	for kbIndex, base := range ctx.KBs {
		for _, cand := range ctx.lookup(base, tok) {
			d := lambda.NewDuplicator(ctx.Pool, ctx.Sys)
			expr := lambda.Duplicate(cand.Expr, d)
			env := ctx.Sys.DuplicateEnv(cand.Env, d.TypeVars)
			used := make(map[*lambda.Duplicator]bool)
			var rejected []*lambda.Duplicator
			for _, g := range ctx.ground(expr, env, covered, nil) {
				if g.expr.Type() == nil {
					rejected = append(rejected, g.dups...)
					continue
				}
				s := &State{
					Step:      p.Step + 1,
					I:         p.J,
					J:         p.J + 1,
					Action:    ShiftAction,
					Type:      g.expr.Type(),
					Env:       g.env,
					S1:        s1,
					Lex:       g.expr,
					LexKey:    lambda.CanonicalString(g.expr, g.env),
					Match:     strings.Join(g.matches, "+"),
					RuleID:    cand.RuleID,
					KB:        kbIndex,
					SkipStart: -1,
					LeftPtrs:  []int{p.ID},
				}
				if ctx.Admit != nil && !ctx.Admit(s) {
					rejected = append(rejected, g.dups...)
					continue
				}
				used[d] = true
				for _, gd := range g.dups {
					used[gd] = true
				}
				ctx.score(c, p, nil, s)
				next = append(next, s)
			}
			// Duplicates reached by no successor give their ids back.
			for _, rd := range append(rejected, d) {
				if !used[rd] {
					used[rd] = true
					rd.Release()
				}
			}
		}
	}
	return next
}

type grounded struct {
	expr    lambda.Expr
	env     types.Env
	matches []string
	// dups holds the duplicators of the grounded predicates.
	dups []*lambda.Duplicator
}

// Apply leading placeholder abstractions of e to predicates matching the covered words.
// Variables passed to a placeholder take the argument types of the grounding predicate
// when those are more specific. A placeholder without any matching predicate yields no
// results.
func (ctx *ParseContext) ground(e lambda.Expr, env types.Env, covered, matches []string) []grounded {
	l, ok := e.(*lambda.Lambda)
	if !ok || !l.Var.IsPlaceholder() {
		return []grounded{{expr: e, env: env, matches: matches}}
	}
	var out []grounded
	for _, base := range ctx.KBs {
		for _, pred := range base.FetchPredicates(l.Var.T, env, covered) {
			d := lambda.NewDuplicator(ctx.Pool, ctx.Sys)
			pe := lambda.Duplicate(pred.Expr, d)
			merged, err := env.Merge(ctx.Sys.DuplicateEnv(pred.Env, d.TypeVars))
			if err != nil {
				d.Release()
				continue
			}
			_, merged, related := ctx.Sys.Related(merged, l.Var.T, pe.Type())
			if !related {
				d.Release()
				continue
			}
			retype, merged, ok := ctx.narrowBinders(merged, l, pe.Type())
			if !ok {
				d.Release()
				continue
			}
			gl := l
			if len(retype) > 0 {
				gl = lambda.RetypeBinders(l, retype).(*lambda.Lambda)
			}
			reduced := lambda.Reduce(lambda.ReduceWith(gl, pe))
			rest := ctx.ground(reduced, merged, covered, append(matches[:len(matches):len(matches)], pred.Match))
			if len(rest) == 0 {
				d.Release()
				continue
			}
			for i := range rest {
				rest[i].dups = append(rest[i].dups, d)
			}
			out = append(out, rest...)
		}
	}
	return out
}

// Binder types for the variables passed directly to the placeholder bound by l, narrowed
// to the parameter types of pred. Unrelated types reject the predicate.
func (ctx *ParseContext) narrowBinders(env types.Env, l *lambda.Lambda, pred types.Type) (map[string]types.Type, types.Env, bool) {
	params := types.ArgTypes(env.Resolve(pred))
	binders := make(map[string]types.Type)
	retype := make(map[string]types.Type)
	ok := true
	var visit func(e lambda.Expr)
	visit = func(e lambda.Expr) {
		switch e := e.(type) {
		case *lambda.Application:
			if v, isVar := e.Pred.(*lambda.Variable); isVar && v.Name == l.Var.Name {
				for i, arg := range e.Args {
					av, isVar := arg.(*lambda.Variable)
					if !isVar || i >= len(params) {
						continue
					}
					t, bound := retype[av.Name]
					if !bound {
						if t, bound = binders[av.Name]; !bound {
							continue
						}
					}
					if t == nil {
						retype[av.Name] = params[i]
						continue
					}
					narrow, next, related := ctx.Sys.Related(env, t, params[i])
					if !related {
						ok = false
						return
					}
					retype[av.Name], env = narrow, next
				}
			}
			visit(e.Pred)
			for _, arg := range e.Args {
				visit(arg)
			}
		case *lambda.Lambda:
			if e.Var.Name == l.Var.Name {
				return
			}
			prev, had := binders[e.Var.Name]
			binders[e.Var.Name] = e.Var.T
			visit(e.Body)
			if had {
				binders[e.Var.Name] = prev
			} else {
				delete(binders, e.Var.Name)
			}
		}
	}
	visit(l.Body)
	return retype, env, ok
}

func (ctx *ParseContext) skip(c *Chart, p *State) *State {
	tok := c.Tokens[p.J]
	s := &State{
		Step:      p.Step + 1,
		I:         p.I,
		J:         p.J + 1,
		Action:    SkipAction,
		Type:      p.Type,
		Env:       p.Env,
		S1:        p.S1,
		RuleID:    -1,
		KB:        -1,
		SkipStart: p.ID,
		LeftPtrs:  p.LeftPtrs,
	}
	if p.Action.Kind == Skip {
		s.Skipped, s.SkipStart = p.Skipped, p.SkipStart
	}
	if isContentPOS(tok.POS) {
		s.Skipped = append(s.Skipped[:len(s.Skipped):len(s.Skipped)], strings.ToLower(tok.Word))
	}
	ctx.score(c, p, nil, s)
	return s
}

// Reduce p against the left state q. Left and right application are tried independently;
// the and/or pair is only produced when neither applies. Type failures yield no successors.
func (ctx *ParseContext) reduceWith(c *Chart, p, q *State) []*State {
	if p.Empty() || q.Empty() {
		return nil
	}
	env, err := q.Env.Merge(p.Env)
	if err != nil {
		return nil
	}
	var next []*State
	emit := func(a Action, t types.Type, env types.Env) {
		s := &State{
			Step:      p.Step + 1,
			I:         q.I,
			J:         p.J,
			Action:    a,
			Type:      t,
			Env:       env,
			S1:        q.S1,
			RuleID:    -1,
			KB:        -1,
			SkipStart: -1,
			LeftPtrs:  q.LeftPtrs,
		}
		ctx.score(c, p, q, s)
		next = append(next, s)
	}
	if t, env, ok := ctx.apply(env, q.Type, p.Type); ok {
		emit(ReduceLeft, t, env)
	}
	if t, env, ok := ctx.apply(env, p.Type, q.Type); ok {
		emit(ReduceRight, t, env)
	}
	if len(next) == 0 {
		if t, env, ok := ctx.union(env, q.Type, p.Type); ok {
			emit(ReduceAnd, t, env)
			emit(ReduceOr, t, env)
		}
	}
	return next
}

// Apply a function of type fn to an argument of type arg. A list-typed parameter accepts
// a single element.
func (ctx *ParseContext) apply(env types.Env, fn, arg types.Type) (types.Type, types.Env, bool) {
	arrow, ok := env.Walk(fn).(*types.Arrow)
	if !ok {
		return nil, env, false
	}
	from := arrow.From
	if list, ok := env.Walk(from).(*types.List); ok {
		from = list.Elem
	}
	next, err := ctx.Sys.UnifySubtype(env, from, arg)
	if err != nil {
		return nil, env, false
	}
	return arrow.To, next, true
}

// Type of the conjunction or disjunction of two predicates: both must have the same arity
// with pairwise related argument types. The more specific argument types are kept.
func (ctx *ParseContext) union(env types.Env, a, b types.Type) (types.Type, types.Env, bool) {
	a, b = env.Resolve(a), env.Resolve(b)
	if !types.IsPredicate(a) || !types.IsPredicate(b) || types.Arity(a) != types.Arity(b) {
		return nil, env, false
	}
	argsA, argsB := types.ArgTypes(a), types.ArgTypes(b)
	args := make([]types.Type, len(argsA))
	for i := range argsA {
		t, next, ok := ctx.Sys.Related(env, argsA[i], argsB[i])
		if !ok {
			return nil, env, false
		}
		args[i], env = t, next
	}
	var t types.Type = types.Truth
	for i := len(args) - 1; i >= 0; i-- {
		t = &types.Arrow{From: args[i], To: t}
	}
	return t, env, true
}
