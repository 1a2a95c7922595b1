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
	"strconv"

	"github.com/wdamron/lfparse/model"
)

func wordAt(tokens []Token, i int) (string, string) {
	switch {
	case i < 0:
		return model.StartSym, model.StartSym
	case i >= len(tokens):
		return model.EndSym, model.EndSym
	}
	return tokens[i].Word, tokens[i].POS
}

func orNone(s string) string {
	if s == "" {
		return model.NoneSym
	}
	return s
}

// Local features of a new state s reached from parent p (and, for reduces, left state q).
// Context features are shared by every action; the remaining features depend on the action.
func features(c *Chart, p, q, s *State) []string {
	s0, s1 := orNone(s.TypeKey()), orNone(s.S1)
	w0, p0 := wordAt(c.Tokens, s.J)
	w1, p1 := wordAt(c.Tokens, s.J-1)
	feats := []string{
		"bias",
		"s0=" + s0,
		"s1=" + s1,
		"s0|s1=" + s0 + "|" + s1,
		"w0=" + w0,
		"p0=" + p0,
		"w-1=" + w1,
		"p-1=" + p1,
		"p-1|s0=" + p1 + "|" + s0,
	}

	switch s.Action.Kind {
	case Shift:
		match := orNone(s.Match)
		parentMatch := model.NoneSym
		if p.Action.Kind == Shift {
			parentMatch = orNone(p.Match)
		}
		feats = append(feats,
			"rule="+ruleKey(s),
			"lex="+s.LexKey,
			"match="+match,
			"mm="+parentMatch+"|"+match,
			"w-1|rule="+w1+"|"+ruleKey(s),
		)
	case Skip:
		feats = append(feats,
			"skw="+w1,
			"skp="+p1,
			"skp|s0="+p1+"|"+s0,
		)
	case Reduce:
		left, right := orNone(q.TypeKey()), orNone(p.TypeKey())
		feats = append(feats,
			"l|r="+left+"|"+right,
			"res="+s0,
			"l|r|res="+left+"|"+right+"|"+s0,
		)
		if q.Action.Kind == Shift && p.Action.Kind == Shift {
			feats = append(feats, "lm|rm="+orNone(q.Match)+"|"+orNone(p.Match))
		}
	}
	return feats
}

func ruleKey(s *State) string {
	return strconv.Itoa(s.KB) + ":" + strconv.Itoa(s.RuleID)
}
