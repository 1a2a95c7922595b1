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

// kb provides lexical lookup for the parser: candidate terms for tokens, and predicates
// for grounding placeholder variables against the words a token covers.
package kb

import (
	set "github.com/hashicorp/go-set/v3"

	"github.com/wdamron/lfparse/lambda"
	"github.com/wdamron/lfparse/types"
)

// Candidate is a lexical entry for a token.
//
// Type-variables within Expr and Env belong to the knowledge-base; callers must duplicate
// both (sharing one mapping) into their own type-system before unifying.
type Candidate struct {
	Expr   lambda.Expr
	Env    types.Env
	RuleID int
}

// Predicate is a grounding candidate for a placeholder variable. Match labels the lexical
// match which produced it.
type Predicate struct {
	Expr  lambda.Expr
	Env   types.Env
	Match string
}

// Rule describes the lexical entry behind a rule id.
type Rule struct {
	ID int
	// Kind of lookup which produces the rule: "nnp", "pattern" or "postag".
	Kind string
	// Key is the word or POS tag the rule is indexed by.
	Key  string
	Term string
}

// KnowledgeBase supplies lexical candidates to the parser. Implementations must be safe
// for concurrent reads; parses running in parallel share one knowledge-base.
type KnowledgeBase interface {
	// Candidates for a proper noun.
	FetchNNP(word string) []Candidate
	// Candidates for a word, independent of its POS tag.
	FetchPattern(word string) []Candidate
	// Candidates for any word with the given POS tag.
	FetchPOSTag(pos string) []Candidate
	// Predicates which may ground a placeholder of type varType, matched against covered words.
	FetchPredicates(varType types.Type, env types.Env, covered []string) []Predicate
	// Lookup a rule by id.
	FetchRuleID(id int) (Rule, bool)
	// POS tags supported by FetchPOSTag.
	POSTags() *set.Set[string]
}
