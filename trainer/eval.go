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

package trainer

import (
	"context"
	"fmt"

	set "github.com/hashicorp/go-set/v3"

	"github.com/wdamron/lfparse/lambda"
	"github.com/wdamron/lfparse/model"
	"github.com/wdamron/lfparse/parser"
)

// Evaluation counts exact matches and unigram-constant overlap against gold forms.
type Evaluation struct {
	Examples int
	// Parsed counts examples with at least one complete derivation.
	Parsed int
	Exact  int
	// Unigram constants: matched, predicted and gold totals.
	Matched, Predicted, Gold int
}

func (e Evaluation) Accuracy() float64 { return ratio(e.Exact, e.Examples) }

func (e Evaluation) Precision() float64 { return ratio(e.Matched, e.Predicted) }

func (e Evaluation) Recall() float64 { return ratio(e.Matched, e.Gold) }

func (e Evaluation) F1() float64 {
	p, r := e.Precision(), e.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func (e Evaluation) String() string {
	return fmt.Sprintf("exact %d/%d (%.2f%%), parsed %d, unigram P %.2f%% R %.2f%% F1 %.2f%%",
		e.Exact, e.Examples, 100*e.Accuracy(), e.Parsed, 100*e.Precision(), 100*e.Recall(), 100*e.F1())
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

func (e *Evaluation) add(other Evaluation) {
	e.Examples += other.Examples
	e.Parsed += other.Parsed
	e.Exact += other.Exact
	e.Matched += other.Matched
	e.Predicted += other.Predicted
	e.Gold += other.Gold
}

// Evaluate parses every example with w in parallel. Weights are only read. A sentence
// without any parse counts as unparsed; replay errors abort the evaluation.
func (t *Trainer) Evaluate(ctx context.Context, w model.Scorer, examples []*Example) (Evaluation, error) {
	results := make([]Evaluation, len(examples))
	err := t.forEach(ctx, examples, func(i int, ex *Example) error {
		pred, err := t.Predict(w, ex.Tokens)
		if err != nil {
			return err
		}
		results[i] = Score(pred, ex.Gold)
		return nil
	})
	var total Evaluation
	for _, r := range results {
		total.add(r)
	}
	return total, err
}

// Predict returns the logical form of the best derivation of tokens under w.
func (t *Trainer) Predict(w model.Scorer, tokens []parser.Token) (lambda.Expr, error) {
	ctx := parser.NewContext(t.Hierarchy, w, t.Config.BeamSize, t.KBs...)
	return recoverBest(ctx, ctx.Parse(tokens))
}

// Logical form of the best final state of c, or nil when c has no final state.
func recoverBest(ctx *parser.ParseContext, c *parser.Chart) (lambda.Expr, error) {
	best, ok := c.Best()
	if !ok {
		return nil, nil
	}
	return ctx.Recover(c, best)
}

// Score compares one prediction (nil if nothing parsed) with its gold form.
func Score(pred, gold lambda.Expr) Evaluation {
	goldConsts, _ := lambda.CollectConstants(gold)
	eval := Evaluation{Examples: 1, Gold: goldConsts.Size()}
	if pred == nil {
		return eval
	}
	eval.Parsed = 1
	if lambda.SemanticEq(pred, gold) {
		eval.Exact = 1
	}
	predConsts, _ := lambda.CollectConstants(pred)
	eval.Predicted = predConsts.Size()
	eval.Matched = overlap(predConsts, goldConsts)
	return eval
}

func overlap(a, b *set.Set[string]) int {
	n := 0
	for _, name := range a.Slice() {
		if b.Contains(name) {
			n++
		}
	}
	return n
}
