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
	"fmt"

	"github.com/wdamron/lfparse/internal/util"
)

// Validate checks that every hyperedge refers to a state of the chart and that the chart
// is acyclic.
func (c *Chart) Validate() error {
	g := util.NewGraph(len(c.States))
	for _, s := range c.States {
		for _, e := range s.Incomings {
			from := []int{e.Parent}
			if e.Left >= 0 {
				from = append(from, e.Left)
			}
			for _, id := range from {
				if id < 0 || id >= len(c.States) {
					return fmt.Errorf("state %d: edge from missing state %d", s.ID, id)
				}
				g.AddEdge(id, s.ID)
			}
		}
	}
	if !g.Acyclic() {
		return errors.New("Chart contains a cycle")
	}
	return nil
}
