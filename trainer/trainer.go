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
	"io"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wdamron/lfparse/kb"
	"github.com/wdamron/lfparse/lambda"
	"github.com/wdamron/lfparse/model"
	"github.com/wdamron/lfparse/parser"
	"github.com/wdamron/lfparse/types"
)

// Trainer holds the live model and the cache of reference derivations.
type Trainer struct {
	Config    Config
	Hierarchy *types.Hierarchy
	KBs       []kb.KnowledgeBase
	Model     *model.Model
	// Store receives averaged weights after every epoch, when set.
	Store *model.Store
	Log   *log.Logger
	RunID string

	mu   sync.Mutex
	refs parser.References
}

// Create a trainer with zero weights. A nil logger discards output.
func New(cfg Config, h *types.Hierarchy, logger *log.Logger, kbs ...kb.KnowledgeBase) *Trainer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Trainer{
		Config:    cfg.withDefaults(),
		Hierarchy: h,
		KBs:       kbs,
		Model:     model.NewModel(),
		Log:       logger,
		RunID:     uuid.NewString(),
		refs:      parser.References{},
	}
}

// SetReferences replaces the cached reference derivations.
func (t *Trainer) SetReferences(refs parser.References) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.refs = refs
}

// References returns a copy of the cached reference derivations.
func (t *Trainer) References() parser.References {
	t.mu.Lock()
	defer t.mu.Unlock()
	refs := make(parser.References, len(t.refs))
	for id, deriv := range t.refs {
		refs[id] = deriv
	}
	return refs
}

// Result of one per-sentence update.
type Result struct {
	// Delta is nil unless the prediction was wrong and a reference derivation was found.
	Delta   model.Vector
	Correct bool
	// NoOracle is set when no reference derivation could be found.
	NoOracle bool
	// Step of the maximal violation, when Delta is set.
	Step      int
	Violation float64
}

// Update parses ex with the weights w and computes a max-violation update against the
// reference derivation of ex. Consistency errors from replay, oracle search and forced
// replay are returned as-is.
func (t *Trainer) Update(w model.Scorer, ex *Example) (Result, error) {
	ctx := parser.NewContext(t.Hierarchy, w, t.Config.BeamSize, t.KBs...)
	return t.update(w, ctx, ctx.Parse(ex.Tokens), ex)
}

func (t *Trainer) update(w model.Scorer, ctx *parser.ParseContext, pred *parser.Chart, ex *Example) (Result, error) {
	e, err := recoverBest(ctx, pred)
	if err != nil {
		return Result{}, err
	}
	if e != nil && lambda.SemanticEq(e, ex.Gold) {
		return Result{Correct: true}, nil
	}

	deriv, ok, err := t.reference(w, ex)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{NoOracle: true}, nil
	}
	gold, err := ctx.ForcedReplay(ex.Tokens, deriv)
	if err != nil {
		return Result{}, err
	}
	delta, step, ok := MaxViolation(pred, gold)
	if !ok {
		return Result{}, nil
	}
	v, g := pred.Viterbi()[step], gold.Viterbi()[step]
	return Result{Delta: delta, Step: step, Violation: v.Score - g.Score}, nil
}

// Find the cached reference derivation of ex, or search for one with a bounded forced
// decoder over w.
func (t *Trainer) reference(w model.Scorer, ex *Example) ([]parser.Transition, bool, error) {
	t.mu.Lock()
	deriv, ok := t.refs[ex.ID]
	t.mu.Unlock()
	if ok {
		return deriv, true, nil
	}
	ctx := parser.NewContext(t.Hierarchy, w, t.Config.OracleBeamSize, t.KBs...)
	deriv, ok, err := ctx.Oracle(ex.Tokens, ex.Gold, t.Config.OracleFinals)
	if err != nil || !ok {
		return nil, false, err
	}
	t.mu.Lock()
	t.refs[ex.ID] = deriv
	t.mu.Unlock()
	return deriv, true, nil
}

// MaxViolation finds the step where the best predicted state outscores the gold state by
// the largest (non-negative) margin, and returns the gold-minus-predicted feature delta of
// the two derivations at that step.
func MaxViolation(pred, gold *parser.Chart) (model.Vector, int, bool) {
	vs, gs := pred.Viterbi(), gold.Viterbi()
	n := min(len(vs), len(gs))
	step, margin := -1, 0.0
	for i := 1; i < n; i++ {
		diff := vs[i].Score - gs[i].Score
		if diff >= 0 && (step < 0 || diff > margin) {
			step, margin = i, diff
		}
	}
	if step < 0 {
		return nil, -1, false
	}
	delta := parser.TraceFeats(gold.Trace(gs[step]))
	delta.IAddC(parser.TraceFeats(pred.Trace(vs[step])), -1)
	delta.Trim(1e-12)
	return delta, step, true
}

// Stats summarizes one epoch.
type Stats struct {
	Examples int
	Correct  int
	Updates  int
	NoOracle int
	Elapsed  time.Duration
}

// Epoch runs one pass over train in shuffled minibatches.
func (t *Trainer) Epoch(ctx context.Context, epoch int, train []*Example) (Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(t.Config.Seed + int64(epoch)))
	order := rng.Perm(len(train))
	shuffled := make([]*Example, len(train))
	for i, j := range order {
		shuffled[i] = train[j]
	}

	var stats Stats
	for lo := 0; lo < len(shuffled); lo += t.Config.BatchSize {
		batch := shuffled[lo:min(lo+t.Config.BatchSize, len(shuffled))]
		snapshot := t.Model.Weights.W.Clone()
		results := make([]Result, len(batch))
		err := t.forEach(ctx, batch, func(i int, ex *Example) error {
			r, err := t.Update(snapshot, ex)
			results[i] = r
			return err
		})
		if err != nil {
			return stats, err
		}

		delta, updates := model.NewVector(), 0
		for _, r := range results {
			stats.Examples++
			switch {
			case r.Correct:
				stats.Correct++
			case r.NoOracle:
				stats.NoOracle++
			case r.Delta != nil:
				delta.IAdd(r.Delta)
				updates++
			}
		}
		// Every minibatch is an averaging step, including those without updates.
		delta.Times(1 / float64(len(batch)))
		t.Model.Update(delta)
		stats.Updates += updates
	}
	stats.Elapsed = time.Since(start)
	return stats, nil
}

// Train runs the configured number of epochs. After each epoch the averaged weights are
// evaluated on dev (when non-empty) and checkpointed (when a store is set). The live
// weights are restored before the next epoch.
//
// When a references file is configured, its derivations seed the cache and the file is
// rewritten with every derivation known at the end of training.
func (t *Trainer) Train(ctx context.Context, train, dev []*Example) error {
	if path := t.Config.References; path != "" {
		refs, err := parser.LoadReferences(path)
		if err != nil {
			return err
		}
		t.SetReferences(refs)
		t.Log.Printf("loaded %d reference derivations from %s", len(refs), path)
	}
	t.Log.Printf("run %s: %d training examples, %d dev examples", t.RunID, len(train), len(dev))
	t.Log.Printf("epochs %d, batch size %d, workers %d, beam %d", t.Config.Epochs, t.Config.BatchSize, t.Config.Workers, t.Config.BeamSize)
	for epoch := 1; epoch <= t.Config.Epochs; epoch++ {
		stats, err := t.Epoch(ctx, epoch, train)
		if err != nil {
			return err
		}
		t.Log.Printf("epoch %d: %d/%d correct, %d updates, %d without reference, %d features, %v",
			epoch, stats.Correct, stats.Examples, stats.Updates, stats.NoOracle, len(t.Model.Weights.W), stats.Elapsed.Round(time.Millisecond))

		if err := t.endEpoch(ctx, epoch, dev); err != nil {
			return err
		}
	}
	if path := t.Config.References; path != "" {
		refs := t.References()
		if err := refs.Save(path); err != nil {
			return err
		}
		t.Log.Printf("saved %d reference derivations to %s", len(refs), path)
	}
	return nil
}

func (t *Trainer) endEpoch(ctx context.Context, epoch int, dev []*Example) error {
	t.Model.SetAvg()
	defer t.Model.ResetAvg()
	avg := t.Model.Weights.W
	if len(dev) > 0 {
		eval, err := t.Evaluate(ctx, avg, dev)
		if err != nil {
			return err
		}
		t.Log.Printf("epoch %d dev: %s", epoch, eval)
	}
	if t.Store != nil {
		if err := t.Store.Save(ctx, t.RunID, epoch, avg); err != nil {
			return err
		}
	}
	return nil
}
