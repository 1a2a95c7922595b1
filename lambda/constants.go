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
	set "github.com/hashicorp/go-set/v3"
)

// Bigram pairs a predicate constant with a constant found directly among its arguments.
type Bigram struct {
	Pred string
	Arg  string
}

func (b Bigram) String() string { return b.Pred + "|" + b.Arg }

// CollectConstants returns the names of all constants in e, and predicate-argument
// bigrams.
//
// Bigrams look exactly one level into the arguments of each application: a constant
// argument, or the predicate constant of an argument which is itself an application.
// Deeper argument structure is not paired with the outer predicate. Scoring heuristics
// built on these bigrams depend on this truncation.
func CollectConstants(e Expr) (unigrams *set.Set[string], bigrams *set.Set[Bigram]) {
	unigrams, bigrams = set.New[string](8), set.New[Bigram](8)
	WalkExpr(e, func(sub Expr) {
		switch sub := sub.(type) {
		case *Constant:
			unigrams.Insert(sub.Name)
		case *Application:
			pred, ok := sub.Pred.(*Constant)
			if !ok {
				return
			}
			for _, arg := range sub.Args {
				switch arg := arg.(type) {
				case *Constant:
					bigrams.Insert(Bigram{pred.Name, arg.Name})
				case *Application:
					if name, ok := PredicateName(arg); ok {
						bigrams.Insert(Bigram{pred.Name, name})
					}
				}
			}
		}
	})
	return unigrams, bigrams
}
