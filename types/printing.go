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
	"strconv"
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} { return &typePrinter{} },
}

type typePrinter struct {
	sb    strings.Builder
	canon map[int]int
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	p.sb.Reset()
	p.canon = nil
	printerPool.Put(p)
}

// TypeString returns a string representation of a Type. The output can be read back by ParseType.
func TypeString(t Type) string {
	p := newTypePrinter()
	typeString(p, t)
	s := p.sb.String()
	p.Release()
	return s
}

// EnvTypeString returns the string representation of t with the bindings of env applied.
func EnvTypeString(env Env, t Type) string { return TypeString(env.Resolve(t)) }

// CanonicalTypeString is like EnvTypeString, but numbers unbound type-variables by order of
// first occurrence. Types equal up to renaming of variables print identically.
func CanonicalTypeString(env Env, t Type) string {
	p := newTypePrinter()
	p.canon = make(map[int]int)
	typeString(p, env.Resolve(t))
	s := p.sb.String()
	p.Release()
	return s
}

func typeString(p *typePrinter, t Type) {
	switch t := RealType(t).(type) {
	case nil:
		p.sb.WriteString("<nil>")

	case *Atom:
		p.sb.WriteString(t.Name)

	case *Arrow:
		p.sb.WriteByte('<')
		typeString(p, t.From)
		p.sb.WriteByte(',')
		typeString(p, t.To)
		p.sb.WriteByte('>')

	case *List:
		p.sb.WriteByte('[')
		typeString(p, t.Elem)
		p.sb.WriteByte(']')

	case *Var:
		id := t.id
		if p.canon != nil {
			n, ok := p.canon[id]
			if !ok {
				n = len(p.canon)
				p.canon[id] = n
			}
			id = n
		}
		p.sb.WriteByte('?')
		p.sb.WriteString(strconv.Itoa(id))

	case *InferVar:
		p.sb.WriteString("?_")
		p.sb.WriteString(strconv.Itoa(t.id))
	}
}
