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

package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorOps(t *testing.T) {
	w := NewVector()
	w.IAddL("SHIFT", []string{"a", "b", "a"}, 1)
	assert.Equal(t, 2.0, w[Key{"SHIFT", "a"}])
	assert.Equal(t, 5.0, w.Dot("SHIFT", []string{"a", "b", "a"}))
	assert.Equal(t, 0.0, w.Dot("SKIP", []string{"a"}))

	d := NewVector()
	d.IAddL("SHIFT", []string{"a"}, -2)
	d.IAddL("SKIP", []string{"c"}, 1)
	w.IAdd(d)
	assert.Equal(t, 0.0, w[Key{"SHIFT", "a"}])
	w.Trim(1e-9)
	_, ok := w[Key{"SHIFT", "a"}]
	assert.False(t, ok)

	w.IAddC(d, 0.5)
	assert.Equal(t, 1.5, w[Key{"SKIP", "c"}])
	w.Times(2)
	assert.Equal(t, 3.0, w[Key{"SKIP", "c"}])

	c := w.Clone()
	c.IAddL("SKIP", []string{"c"}, 1)
	assert.Equal(t, 3.0, w[Key{"SKIP", "c"}])
	assert.Equal(t, []Key{{"SHIFT", "a"}, {"SHIFT", "b"}, {"SKIP", "c"}}, c.Keys())
	assert.Equal(t, 4.0*3+(-2.0)*2, c.DotVector(Vector{{"SKIP", "c"}: 3, {"SHIFT", "a"}: 2}))
}

func TestAveragedWeights(t *testing.T) {
	m := NewModel()
	d1 := Vector{{"SHIFT", "f"}: 1}
	d2 := Vector{{"SHIFT", "g"}: 2}
	m.Update(d1)
	m.Update(d2)

	assert.Equal(t, 1.0, m.EvalFeats("SHIFT", []string{"f"}))
	assert.Equal(t, 2.0, m.EvalFeats("SHIFT", []string{"g"}))

	// Averages of W after step 1 ({f:1}) and step 2 ({f:1, g:2}):
	m.SetAvg()
	assert.True(t, m.Weights.Averaged())
	assert.InDelta(t, 1.0, m.EvalFeats("SHIFT", []string{"f"}), 1e-12)
	assert.InDelta(t, 1.0, m.EvalFeats("SHIFT", []string{"g"}), 1e-12)

	m.ResetAvg()
	assert.False(t, m.Weights.Averaged())
	assert.Equal(t, 2.0, m.EvalFeats("SHIFT", []string{"g"}))
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	s, err := OpenStore(ctx, ":memory:")
	require.NoError(t, err)
	defer s.Close()

	w := Vector{{"SHIFT", "bias"}: 0.5, {"REDUCE-L", "s0=<e,t>"}: -1.25}
	require.NoError(t, s.Save(ctx, "run-1", 1, w))
	require.NoError(t, s.Save(ctx, "run-1", 2, Vector{{"SKIP", "bias"}: 1}))

	loaded, err := s.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, w, loaded)

	// Saving an epoch again replaces it:
	require.NoError(t, s.Save(ctx, "run-2", 1, Vector{{"SKIP", "bias"}: 2}))
	loaded, err = s.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, Vector{{"SKIP", "bias"}: 2}, loaded)

	cps, err := s.Epochs(ctx)
	require.NoError(t, err)
	require.Len(t, cps, 2)
	assert.Equal(t, "run-2", cps[0].RunID)
	assert.Equal(t, 1, cps[1].Features)

	cp, latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, cp.Epoch)
	assert.Equal(t, 1.0, latest[Key{"SKIP", "bias"}])

	_, err = s.Load(ctx, 9)
	assert.ErrorIs(t, err, ErrNoCheckpoint)
}
