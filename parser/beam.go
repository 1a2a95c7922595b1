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

// Parse runs beam search over tokens. Every derivation takes at most 2n steps (n shifts or
// skips and fewer than n reduces); search stops early when a step has no successors.
func (ctx *ParseContext) Parse(tokens []Token) *Chart {
	c := NewChart(tokens)
	maxSteps := 2 * len(tokens)
	for step := 0; step < maxSteps; step++ {
		var cands []*State
		for _, id := range c.Beams[step] {
			cands = append(cands, ctx.successors(c, c.States[id])...)
		}
		if len(cands) == 0 {
			break
		}
		beam := c.merge(cands, ctx.BeamSize)
		c.Beams = append(c.Beams, beam)
		for _, id := range beam {
			if c.IsFinal(c.States[id]) {
				c.Finals = append(c.Finals, id)
			}
		}
	}
	return c
}
