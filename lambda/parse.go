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
	"errors"
	"strconv"
	"strings"

	"github.com/wdamron/lfparse/types"
)

// Parse reads a term in the form produced by ExprString. Type-variables (`?n`) are
// allocated from sys and shared through typeVars, which may be nil.
func Parse(src string, sys *types.System, typeVars map[string]*types.Var) (Expr, error) {
	if typeVars == nil {
		typeVars = make(map[string]*types.Var)
	}
	p := &exprParser{toks: tokenize(src), sys: sys, typeVars: typeVars, scope: map[string][]*Variable{}}
	e, err := p.parse()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, errors.New("Unexpected trailing input in " + strconv.Quote(src))
	}
	return e, nil
}

// MustParse is like Parse but panics on error. It is meant for tests and static lexicons.
func MustParse(src string, sys *types.System) Expr {
	e, err := Parse(src, sys, nil)
	if err != nil {
		panic(err)
	}
	return e
}

func tokenize(src string) []string {
	var toks []string
	start := -1
	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '(', ')', ' ', '\t', '\n', '\r':
			if start >= 0 {
				toks = append(toks, src[start:i])
				start = -1
			}
			if c == '(' || c == ')' {
				toks = append(toks, string(c))
			}
		default:
			if start < 0 {
				start = i
			}
		}
	}
	if start >= 0 {
		toks = append(toks, src[start:])
	}
	return toks
}

type exprParser struct {
	toks     []string
	pos      int
	sys      *types.System
	typeVars map[string]*types.Var
	scope    map[string][]*Variable
}

func (p *exprParser) next() (string, error) {
	if p.pos >= len(p.toks) {
		return "", errors.New("Unexpected end of term")
	}
	tok := p.toks[p.pos]
	p.pos++
	return tok, nil
}

func (p *exprParser) splitTyped(tok string) (string, types.Type, error) {
	i := strings.IndexByte(tok, ':')
	if i < 0 {
		return tok, nil, nil
	}
	t, err := types.ParseType(tok[i+1:], p.sys, p.typeVars)
	if err != nil {
		return "", nil, err
	}
	return tok[:i], t, nil
}

func isVarName(name string) bool {
	return strings.HasPrefix(name, "$") || IsPlaceholder(name)
}

func (p *exprParser) parse() (Expr, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok {
	case ")":
		return nil, errors.New("Unexpected ')'")
	case "(":
		return p.parseCompound()
	}
	name, t, err := p.splitTyped(tok)
	if err != nil {
		return nil, err
	}
	if isVarName(name) {
		if binders := p.scope[name]; len(binders) > 0 {
			return binders[len(binders)-1], nil
		}
		if t == nil {
			return nil, errors.New("Unbound variable " + name + " has no type")
		}
		return NewVariable(name, t), nil
	}
	if t == nil {
		return nil, errors.New("Constant " + name + " has no type")
	}
	return &Constant{Name: name, T: t}, nil
}

func (p *exprParser) parseCompound() (Expr, error) {
	if p.pos < len(p.toks) && p.toks[p.pos] == "lambda" {
		p.pos++
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		name, t, err := p.splitTyped(tok)
		if err != nil {
			return nil, err
		}
		if !isVarName(name) || t == nil {
			return nil, errors.New("Invalid lambda binder " + strconv.Quote(tok))
		}
		v := NewVariable(name, t)
		p.scope[name] = append(p.scope[name], v)
		body, err := p.parse()
		p.scope[name] = p.scope[name][:len(p.scope[name])-1]
		if err != nil {
			return nil, err
		}
		if tok, err := p.next(); err != nil || tok != ")" {
			return nil, errors.New("Expected ')' after lambda body")
		}
		return NewLambda(v, body), nil
	}

	pred, err := p.parse()
	if err != nil {
		return nil, err
	}
	var args []Expr
	for {
		if p.pos >= len(p.toks) {
			return nil, errors.New("Unterminated application")
		}
		if p.toks[p.pos] == ")" {
			p.pos++
			break
		}
		arg, err := p.parse()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if len(args) == 0 {
		return nil, errors.New("Application without arguments")
	}
	app := NewApplication(pred, args...)
	if app.T == nil {
		switch types.RealType(pred.Type()).(type) {
		case *types.Var, *types.InferVar, nil:
		default:
			return nil, errors.New("Cannot apply " + ExprString(pred) + " to " + strconv.Itoa(len(args)) + " arguments")
		}
	}
	return app, nil
}
