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
	"github.com/wdamron/lfparse/lambda"
	"github.com/wdamron/lfparse/types"
)

// ExtraInfoGen builds a semantic object while a derivation is replayed.
type ExtraInfoGen interface {
	// Shift receives the lexical term pushed by s.
	Shift(s *State, lex lambda.Expr) lambda.Expr
	// Reduce applies fn to arg.
	Reduce(s *State, fn, arg lambda.Expr) lambda.Expr
	// Union joins two predicates with connective, producing a predicate of type t.
	Union(s *State, connective string, t types.Type, left, right lambda.Expr) lambda.Expr
}

// ExprBuilder builds the logical form of a derivation.
type ExprBuilder struct {
	Pool *lambda.VarPool
}

var _ ExtraInfoGen = ExprBuilder{}

func (b ExprBuilder) Shift(s *State, lex lambda.Expr) lambda.Expr { return lex }

func (b ExprBuilder) Reduce(s *State, fn, arg lambda.Expr) lambda.Expr {
	return lambda.Reduce(lambda.NewApplication(fn, arg))
}

// Union builds `(lambda x1 ... (lambda xn (connective (left x1 ... xn) (right x1 ... xn))))`.
func (b ExprBuilder) Union(s *State, connective string, t types.Type, left, right lambda.Expr) lambda.Expr {
	argTypes := types.ArgTypes(s.Env.Resolve(t))
	vars := make([]*lambda.Variable, len(argTypes))
	args := make([]lambda.Expr, len(argTypes))
	for i, at := range argTypes {
		vars[i] = b.Pool.NewVar(at)
		args[i] = vars[i]
	}
	conn := &lambda.Constant{Name: connective, T: lambda.ConnectiveType}
	var body lambda.Expr = lambda.NewApplication(conn,
		lambda.Reduce(lambda.NewApplication(left, args...)),
		lambda.Reduce(lambda.NewApplication(right, args...)))
	for i := len(vars) - 1; i >= 0; i-- {
		body = lambda.NewLambda(vars[i], body)
	}
	return body
}

// Replay runs the derivation of s as a stack machine, combining items with gen.
func (c *Chart) Replay(s *State, gen ExtraInfoGen) (lambda.Expr, error) {
	var stack []lambda.Expr
	for _, st := range c.Trace(s) {
		switch st.Action.Kind {
		case Shift:
			stack = append(stack, gen.Shift(st, st.Lex))
		case Reduce:
			if len(stack) < 2 {
				return nil, &ConsistencyError{Step: st.Step, Reason: "reduce with fewer than two stack items"}
			}
			left, right := stack[len(stack)-2], stack[len(stack)-1]
			stack = stack[:len(stack)-2]
			var e lambda.Expr
			switch st.Action.Side {
			case Left:
				e = gen.Reduce(st, left, right)
			case Right:
				e = gen.Reduce(st, right, left)
			case And:
				e = gen.Union(st, lambda.And, st.Type, left, right)
			case Or:
				e = gen.Union(st, lambda.Or, st.Type, left, right)
			}
			stack = append(stack, e)
		}
	}
	if len(stack) != 1 {
		return nil, &ConsistencyError{Step: s.Step, Reason: "derivation does not end with a single stack item"}
	}
	return stack[0], nil
}

// Recover replays the derivation of s into a simplified logical form with resolved types.
func (ctx *ParseContext) Recover(c *Chart, s *State) (lambda.Expr, error) {
	e, err := c.Replay(s, ExprBuilder{Pool: ctx.Pool})
	if err != nil {
		return nil, err
	}
	return lambda.Simplify(lambda.ResolveTypes(e, s.Env)), nil
}
