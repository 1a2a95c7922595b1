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
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/lfparse/kb"
	"github.com/wdamron/lfparse/lambda"
	"github.com/wdamron/lfparse/model"
	"github.com/wdamron/lfparse/parser"
	"github.com/wdamron/lfparse/types"
)

const testLexicon = `
types:
  - {name: location, parent: e}
  - {name: city, parent: location}
  - {name: state, parent: location}
nnp:
  texas: ["texas:state"]
  ohio: ["ohio:state"]
patterns:
  capital: ["(lambda $0:state (capital:<state,city> $0))"]
  of: ["(lambda $0:state $0)"]
`

const testCorpus = `
- id: geo-1
  tokens: "capital/NN of/IN texas/NNP"
  gold: "(capital:<state,city> texas:state)"
- id: geo-2
  tokens: "capital/NN of/IN ohio/NNP"
  gold: "(capital:<state,city> ohio:state)"
- id: geo-3
  tokens: "the/DT capital/NN of/IN texas/NNP"
  gold: "(capital:<state,city> texas:state)"
`

func testTrainer(t *testing.T, cfg Config) (*Trainer, []*Example) {
	t.Helper()
	lex, err := kb.ParseLexicon([]byte(testLexicon))
	require.NoError(t, err)
	examples, err := ParseCorpus([]byte(testCorpus), lex.Hierarchy())
	require.NoError(t, err)
	return New(cfg, lex.Hierarchy(), nil, lex), examples
}

func TestParseCorpus(t *testing.T) {
	tr, examples := testTrainer(t, Config{})
	require.Len(t, examples, 3)
	assert.Equal(t, "geo-1", examples[0].ID)
	assert.Len(t, examples[2].Tokens, 4)
	assert.Equal(t, "(capital:<state,city> texas:state)", lambda.ExprString(examples[0].Gold))

	_, err := ParseCorpus([]byte(`
- {id: a, tokens: "capital/NN", gold: "(capital:<state,city> austin:city)"}
`), tr.Hierarchy)
	require.Error(t, err)

	_, err = ParseCorpus([]byte(`
- {id: a, tokens: "texas/NNP", gold: "texas:state"}
- {id: a, tokens: "ohio/NNP", gold: "ohio:state"}
`), tr.Hierarchy)
	require.Error(t, err)

	_, err = ParseCorpus([]byte(`
- {id: a, tokens: "texas", gold: "texas:state"}
`), tr.Hierarchy)
	require.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.yaml")
	require.NoError(t, os.WriteFile(path, []byte("epochs: 3\nworkers: 2\nmin_task_time: 5ms\n"), 0o644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Epochs)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 5*time.Millisecond, cfg.MinTaskTime)
	assert.Equal(t, DefaultConfig.BatchSize, cfg.BatchSize)
	assert.Equal(t, DefaultConfig.BeamSize, cfg.BeamSize)
}

func TestMaxViolationDelta(t *testing.T) {
	tr, examples := testTrainer(t, Config{})
	ex := examples[0]

	deriv, ok, err := parser.NewContext(tr.Hierarchy, nil, 64, tr.KBs...).Oracle(ex.Tokens, ex.Gold, 0)
	require.NoError(t, err)
	require.True(t, ok)

	w := model.NewVector()
	w.IAddL("SKIP", []string{"bias"}, 1.0)
	w.IAddL("SHIFT", []string{"w-1=capital", "p0=IN"}, -0.5)
	w.IAddL("REDUCE-L", []string{"res=city"}, 0.25)

	ctx := parser.NewContext(tr.Hierarchy, w, 4, tr.KBs...)
	pred := ctx.Parse(ex.Tokens)
	gold, err := ctx.ForcedReplay(ex.Tokens, deriv)
	require.NoError(t, err)

	delta, step, ok := MaxViolation(pred, gold)
	require.True(t, ok)
	v, g := pred.Viterbi()[step], gold.Viterbi()[step]
	assert.GreaterOrEqual(t, v.Score, g.Score)
	assert.InDelta(t, g.Score-v.Score, delta.DotVector(w), 1e-8)
}

func TestUpdate(t *testing.T) {
	tr, examples := testTrainer(t, Config{})
	for _, ex := range examples {
		r, err := tr.Update(model.Vector(nil), ex)
		require.NoError(t, err)
		assert.False(t, r.NoOracle, ex.ID)
		if !r.Correct {
			assert.NotNil(t, r.Delta, ex.ID)
			assert.GreaterOrEqual(t, r.Violation, 0.0)
			_, cached := tr.References()[ex.ID]
			assert.True(t, cached, ex.ID)
		}
	}
}

func TestReplayErrorsPropagate(t *testing.T) {
	tr, examples := testTrainer(t, Config{})
	ex := examples[0]
	ctx := parser.NewContext(tr.Hierarchy, nil, tr.Config.BeamSize, tr.KBs...)

	pred := ctx.Parse(ex.Tokens)
	var corrupt *parser.State
	for _, final := range pred.FinalsByScore() {
		if final.Action.Kind == parser.Reduce {
			corrupt = final
			break
		}
	}
	require.NotNil(t, corrupt)
	// A reduce read back as a shift leaves an extra stack item.
	corrupt.Action = parser.ShiftAction
	corrupt.Score = 1e9

	var consistency *parser.ConsistencyError
	_, err := recoverBest(ctx, pred)
	require.True(t, errors.As(err, &consistency), "%v", err)

	r, err := tr.update(model.Vector(nil), ctx, pred, ex)
	require.True(t, errors.As(err, &consistency), "%v", err)
	assert.Equal(t, Result{}, r)

	unknown, err := parser.ParseTokens("the/DT")
	require.NoError(t, err)
	e, err := recoverBest(ctx, ctx.Parse(unknown))
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestEpochStepsEveryBatch(t *testing.T) {
	tr, examples := testTrainer(t, Config{BatchSize: 1, Workers: 1})

	stats, err := tr.Epoch(context.Background(), 1, examples)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Examples)
	assert.Equal(t, 3, tr.Model.Step)

	// Batches without any update still advance the step.
	_, err = tr.Epoch(context.Background(), 2, []*Example{{ID: "empty", Gold: examples[0].Gold}})
	require.NoError(t, err)
	assert.Equal(t, 4, tr.Model.Step)
}

const ambiguousLexicon = `
patterns:
  a: ["y:e"]
  b: ["y:e"]
  c: ["f:<e,t>"]
`

func TestTrainMergedDerivations(t *testing.T) {
	lex, err := kb.ParseLexicon([]byte(ambiguousLexicon))
	require.NoError(t, err)
	examples, err := ParseCorpus([]byte(`
- {id: s1, tokens: "a/DT b/DT c/DT", gold: "(f:<e,t> y:e)"}
`), lex.Hierarchy())
	require.NoError(t, err)

	tr := New(Config{Epochs: 2, BatchSize: 1, Workers: 1}, lex.Hierarchy(), nil, lex)
	require.NoError(t, tr.Train(context.Background(), examples, nil))
	_, cached := tr.References()["s1"]
	assert.True(t, cached)
	assert.Equal(t, 2, tr.Model.Step)
}

func TestTrain(t *testing.T) {
	dir := t.TempDir()
	tr, examples := testTrainer(t, Config{
		Epochs:     2,
		BatchSize:  2,
		Workers:    2,
		References: filepath.Join(dir, "refs.yaml"),
	})
	ctx := context.Background()
	store, err := model.OpenStore(ctx, ":memory:")
	require.NoError(t, err)
	defer store.Close()
	tr.Store = store

	require.NoError(t, tr.Train(ctx, examples[:2], examples[2:]))
	assert.False(t, tr.Model.Weights.Averaged())

	checkpoints, err := store.Epochs(ctx)
	require.NoError(t, err)
	require.Len(t, checkpoints, 2)
	assert.Equal(t, tr.RunID, checkpoints[0].RunID)

	refs, err := parser.LoadReferences(filepath.Join(dir, "refs.yaml"))
	require.NoError(t, err)
	assert.Equal(t, tr.References(), refs)

	eval, err := tr.Evaluate(ctx, tr.Model.Weights.W, examples)
	require.NoError(t, err)
	assert.Equal(t, 3, eval.Examples)
	assert.Positive(t, eval.Parsed)
}

func TestScore(t *testing.T) {
	sys := types.NewSystem(nil)
	gold := lambda.MustParse("(loc:<e,<e,t>> austin:city texas:state)", sys)
	pred := lambda.MustParse("(loc:<e,<e,t>> austin:city ohio:state)", sys)

	eval := Score(pred, gold)
	assert.Equal(t, Evaluation{Examples: 1, Parsed: 1, Matched: 2, Predicted: 3, Gold: 3}, eval)
	assert.InDelta(t, 2.0/3, eval.F1(), 1e-12)

	eval.add(Score(gold, gold))
	eval.add(Score(nil, gold))
	assert.Equal(t, 3, eval.Examples)
	assert.Equal(t, 1, eval.Exact)
	assert.Equal(t, 2, eval.Parsed)
	assert.InDelta(t, 5.0/9, eval.Recall(), 1e-12)
}

func TestWorkerErrors(t *testing.T) {
	tr := New(Config{Workers: 2}, nil, nil)
	examples := []*Example{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	err := tr.forEach(context.Background(), examples, func(i int, ex *Example) error {
		if ex.ID == "b" {
			panic("corrupt state")
		}
		return nil
	})
	var werr *WorkerError
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, "b", werr.ExampleID)
	assert.NotEmpty(t, werr.Stack)

	sentinel := errors.New("inconsistent")
	err = tr.forEach(context.Background(), examples, func(i int, ex *Example) error {
		if ex.ID == "c" {
			return sentinel
		}
		return nil
	})
	require.ErrorIs(t, err, sentinel)
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, "c", werr.ExampleID)
	assert.Nil(t, werr.Stack)
}

func TestMinTaskTime(t *testing.T) {
	tr := New(Config{Workers: 1, MinTaskTime: 10 * time.Millisecond}, nil, nil)
	var calls atomic.Int32
	start := time.Now()
	err := tr.forEach(context.Background(), []*Example{{ID: "a"}, {ID: "b"}, {ID: "c"}}, func(i int, ex *Example) error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}
