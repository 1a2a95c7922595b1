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
)

// Token is a POS-tagged input word.
type Token struct {
	Word string
	POS  string
}

func (t Token) String() string { return t.Word + "/" + t.POS }

// ParseTokens reads space-separated `word/POS` tokens. The POS tag follows the last slash.
func ParseTokens(s string) ([]Token, error) {
	fields := strings.Fields(s)
	toks := make([]Token, len(fields))
	for i, f := range fields {
		slash := strings.LastIndexByte(f, '/')
		if slash <= 0 || slash == len(f)-1 {
			return nil, errors.New("Token " + f + " is not of the form word/POS")
		}
		toks[i] = Token{Word: f[:slash], POS: f[slash+1:]}
	}
	return toks, nil
}

// Content-bearing words (verbs, adjectives, adverbs, nouns, prepositions) are kept in skip spans.
func isContentPOS(pos string) bool {
	for _, prefix := range []string{"VB", "JJ", "RB", "NN"} {
		if strings.HasPrefix(pos, prefix) {
			return true
		}
	}
	return pos == "IN"
}

func isProperNoun(pos string) bool { return pos == "NNP" || pos == "NNPS" }
