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

package types

import (
	"errors"
	"strconv"
)

// ParseType reads the textual form produced by TypeString: atoms (`e`), functions
// (`<e,t>`), lists (`[e]`) and type-variables (`?0`). Type-variables with the same
// number share a fresh variable from sys through vars, which may be shared across calls.
func ParseType(src string, sys *System, vars map[string]*Var) (Type, error) {
	if vars == nil {
		vars = make(map[string]*Var)
	}
	p := typeParser{src: src, sys: sys, vars: vars}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		return nil, errors.New("Unexpected trailing input in type " + strconv.Quote(src))
	}
	return t, nil
}

type typeParser struct {
	src  string
	pos  int
	sys  *System
	vars map[string]*Var
}

func (p *typeParser) errorf(msg string) error {
	return errors.New(msg + " at offset " + strconv.Itoa(p.pos) + " in type " + strconv.Quote(p.src))
}

func (p *typeParser) expect(c byte) error {
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return p.errorf("Expected '" + string(c) + "'")
	}
	p.pos++
	return nil
}

func isAtomByte(c byte) bool {
	return c == '_' || c == '.' || c == '-' || c == '/' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *typeParser) parse() (Type, error) {
	if p.pos >= len(p.src) {
		return nil, p.errorf("Unexpected end of input")
	}
	switch p.src[p.pos] {
	case '<':
		p.pos++
		from, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
		to, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return &Arrow{From: from, To: to}, nil

	case '[':
		p.pos++
		elem, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		return &List{Elem: elem}, nil

	case '?':
		p.pos++
		start := p.pos
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}
		if start == p.pos {
			return nil, p.errorf("Expected type-variable number")
		}
		name := p.src[start:p.pos]
		if v, ok := p.vars[name]; ok {
			return v, nil
		}
		if p.sys == nil {
			return nil, p.errorf("Type-variable without a type-system")
		}
		v := p.sys.NewVar()
		p.vars[name] = v
		return v, nil
	}

	start := p.pos
	for p.pos < len(p.src) && isAtomByte(p.src[p.pos]) {
		p.pos++
	}
	if start == p.pos {
		return nil, p.errorf("Unexpected character")
	}
	name := p.src[start:p.pos]
	switch name {
	case Entity.Name:
		return Entity, nil
	case Truth.Name:
		return Truth, nil
	}
	return &Atom{Name: name}, nil
}
