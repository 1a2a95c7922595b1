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
	"strings"

	"gopkg.in/yaml.v3"
)

// ActionKind is the kind of a parser transition.
type ActionKind uint8

const (
	Init ActionKind = iota
	Shift
	Reduce
	Skip
)

// Side distinguishes the ways two stack items may be reduced.
type Side uint8

const (
	NoSide Side = iota
	// The left item is applied to the right item.
	Left
	// The right item is applied to the left item.
	Right
	// Both items are conjoined.
	And
	// Both items are disjoined.
	Or
)

// Action is a parser transition. Only Reduce actions carry a Side.
type Action struct {
	Kind ActionKind
	Side Side
}

var (
	InitAction   = Action{Kind: Init}
	ShiftAction  = Action{Kind: Shift}
	SkipAction   = Action{Kind: Skip}
	ReduceLeft   = Action{Kind: Reduce, Side: Left}
	ReduceRight  = Action{Kind: Reduce, Side: Right}
	ReduceAnd    = Action{Kind: Reduce, Side: And}
	ReduceOr     = Action{Kind: Reduce, Side: Or}
	actionByName = map[string]Action{}
)

func init() {
	for _, a := range []Action{InitAction, ShiftAction, SkipAction, ReduceLeft, ReduceRight, ReduceAnd, ReduceOr} {
		actionByName[a.String()] = a
	}
}

func (a Action) String() string {
	switch a.Kind {
	case Init:
		return "INIT"
	case Shift:
		return "SHIFT"
	case Skip:
		return "SKIP"
	case Reduce:
		switch a.Side {
		case Left:
			return "REDUCE-L"
		case Right:
			return "REDUCE-R"
		case And:
			return "REDUCE-AND"
		case Or:
			return "REDUCE-OR"
		}
	}
	return "INVALID"
}

// ParseAction reads the form produced by Action.String.
func ParseAction(s string) (Action, error) {
	if a, ok := actionByName[strings.ToUpper(s)]; ok {
		return a, nil
	}
	return Action{}, errors.New("Unknown parser action " + s)
}

func (a Action) MarshalYAML() (interface{}, error) { return a.String(), nil }

func (a *Action) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseAction(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
