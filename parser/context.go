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

// parser implements an incremental shift-reduce-skip parser from POS-tagged tokens to typed
// lambda-calculus terms.
//
// Parser states form a hypergraph: each state is a partial derivation over a span of the
// input, reached through one or more hyperedges (parent, left). States are stored in a
// per-sentence arena (Chart) and refer to each other by index. Beam search keeps the best
// states at each step, merging states with equal signatures in the manner of Huang and
// Sagae (2010), which keeps the derivations needed for oracle search and forced replay.
package parser

import (
	"github.com/wdamron/lfparse/kb"
	"github.com/wdamron/lfparse/lambda"
	"github.com/wdamron/lfparse/model"
	"github.com/wdamron/lfparse/types"
)

// DefaultBeamSize is used when a context's BeamSize is not positive.
const DefaultBeamSize = 16

// ParseContext holds everything a parse reads or allocates from. A context is owned by a
// single parse at a time; knowledge-bases and scorers may be shared across contexts.
type ParseContext struct {
	KBs    []kb.KnowledgeBase
	Scorer model.Scorer
	// Sys allocates type-variables for lexical candidates.
	Sys *types.System
	// Pool allocates fresh variables for duplicated terms.
	Pool     *lambda.VarPool
	BeamSize int
	// Admit, if set, filters shift successors before they are scored.
	Admit func(*State) bool
}

// Create a context for parsing with the given scorer and knowledge-bases. A nil scorer
// scores every action 0.
func NewContext(h *types.Hierarchy, scorer model.Scorer, beamSize int, kbs ...kb.KnowledgeBase) *ParseContext {
	if scorer == nil {
		scorer = model.Vector(nil)
	}
	if beamSize <= 0 {
		beamSize = DefaultBeamSize
	}
	return &ParseContext{
		KBs:      kbs,
		Scorer:   scorer,
		Sys:      types.NewSystem(h),
		Pool:     &lambda.VarPool{},
		BeamSize: beamSize,
	}
}

func (ctx *ParseContext) lookup(base kb.KnowledgeBase, tok Token) []kb.Candidate {
	var cands []kb.Candidate
	if isProperNoun(tok.POS) {
		cands = append(cands, base.FetchNNP(tok.Word)...)
	}
	cands = append(cands, base.FetchPattern(tok.Word)...)
	if base.POSTags().Contains(tok.POS) {
		cands = append(cands, base.FetchPOSTag(tok.POS)...)
	}
	return cands
}
