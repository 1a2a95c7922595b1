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

package util

import "testing"

func TestSCC(t *testing.T) {
	g := NewGraph(5)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 1)
	g.AddEdge(2, 3)
	g.AddEdge(3, 4)
	g.AddEdge(3, 4)
	if len(g[3]) != 1 {
		t.Fatalf("Expected duplicate edges to be ignored, found %v", g[3])
	}

	sccs := g.SCC()
	if len(sccs) != 4 {
		t.Fatalf("Expected 4 components, found %v", sccs)
	}
	if len(sccs[0]) != 1 || sccs[0][0] != 0 {
		t.Fatalf("Expected {0} first, found %v", sccs)
	}
	if len(sccs[1]) != 2 {
		t.Fatalf("Expected {1, 2} second, found %v", sccs)
	}
	if g.Acyclic() {
		t.Fatalf("Expected a cycle through 1 and 2")
	}

	dag := NewGraph(3)
	dag.AddEdge(0, 1)
	dag.AddEdge(0, 2)
	dag.AddEdge(1, 2)
	if !dag.Acyclic() {
		t.Fatalf("Expected no cycles in %v", dag)
	}
	dag.AddEdge(2, 2)
	if dag.Acyclic() {
		t.Fatalf("Expected a self-loop to be a cycle")
	}
}
