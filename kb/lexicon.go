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

package kb

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	set "github.com/hashicorp/go-set/v3"
	"gopkg.in/yaml.v3"

	"github.com/wdamron/lfparse"
	"github.com/wdamron/lfparse/lambda"
	"github.com/wdamron/lfparse/types"
)

// LexiconFile is the YAML form of a Lexicon.
//
//	types:
//	  - {name: location, parent: e}
//	  - {name: city, parent: location}
//	nnp:
//	  austin: ["austin:city"]
//	patterns:
//	  capital: ["(lambda $0:state (capital:<state,city> $0))"]
//	postags:
//	  WDT: ["(lambda #P:<e,t> (lambda $0:e (#P $0)))"]
//	predicates:
//	  - {words: [river], term: "river:<e,t>"}
type LexiconFile struct {
	Types      []TypeDecl          `yaml:"types"`
	NNP        map[string][]string `yaml:"nnp"`
	Patterns   map[string][]string `yaml:"patterns"`
	POSTags    map[string][]string `yaml:"postags"`
	Predicates []PredicateDecl     `yaml:"predicates"`
}

// TypeDecl declares an atomic type and its supertype.
type TypeDecl struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent"`
}

// PredicateDecl declares a grounding predicate and the words which select it.
type PredicateDecl struct {
	Words []string `yaml:"words"`
	Term  string   `yaml:"term"`
}

type lexPredicate struct {
	words []string
	pred  Predicate
}

// Lexicon is an in-memory KnowledgeBase. A Lexicon is read-only once loaded and may be
// shared by concurrent parses.
type Lexicon struct {
	hierarchy  *types.Hierarchy
	nnp        map[string][]Candidate
	patterns   map[string][]Candidate
	postags    map[string][]Candidate
	predicates []lexPredicate
	rules      []Rule
	tags       *set.Set[string]
}

var _ KnowledgeBase = (*Lexicon)(nil)

// LoadLexicon reads a YAML lexicon file.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := ParseLexicon(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// ParseLexicon decodes a YAML lexicon. Every term is parsed and type-checked.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var f LexiconFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return NewLexicon(&f)
}

// NewLexicon builds a lexicon from its decoded form. Rule ids are assigned in the order
// nnp, patterns, postags, with keys sorted within each section.
func NewLexicon(f *LexiconFile) (*Lexicon, error) {
	h := types.NewHierarchy()
	for _, decl := range f.Types {
		if err := h.Declare(decl.Name, decl.Parent); err != nil {
			return nil, err
		}
	}
	l := &Lexicon{
		hierarchy: h,
		nnp:       make(map[string][]Candidate),
		patterns:  make(map[string][]Candidate),
		postags:   make(map[string][]Candidate),
		tags:      set.New[string](len(f.POSTags)),
	}
	sys, ctx := types.NewSystem(h), lfparse.NewContext(h)

	parse := func(kind, key, src string) (lambda.Expr, error) {
		e, err := lambda.Parse(src, sys, nil)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", kind, key, err)
		}
		if _, err := ctx.Infer(e, nil); err != nil {
			return nil, fmt.Errorf("%s %q: %s: %w", kind, key, src, err)
		}
		return e, nil
	}

	sections := []struct {
		kind    string
		entries map[string][]string
		index   map[string][]Candidate
		fold    func(string) string
	}{
		{"nnp", f.NNP, l.nnp, strings.ToLower},
		{"pattern", f.Patterns, l.patterns, strings.ToLower},
		{"postag", f.POSTags, l.postags, strings.ToUpper},
	}
	for _, sec := range sections {
		for _, key := range slices.Sorted(maps.Keys(sec.entries)) {
			folded := sec.fold(key)
			for _, src := range sec.entries[key] {
				e, err := parse(sec.kind, key, src)
				if err != nil {
					return nil, err
				}
				id := len(l.rules)
				l.rules = append(l.rules, Rule{ID: id, Kind: sec.kind, Key: folded, Term: src})
				sec.index[folded] = append(sec.index[folded], Candidate{Expr: e, Env: types.EmptyEnv, RuleID: id})
			}
			if sec.kind == "postag" {
				l.tags.Insert(folded)
			}
		}
	}

	for _, decl := range f.Predicates {
		if len(decl.Words) == 0 {
			return nil, fmt.Errorf("predicate %q: no words", decl.Term)
		}
		e, err := parse("predicate", strings.Join(decl.Words, " "), decl.Term)
		if err != nil {
			return nil, err
		}
		words := make([]string, len(decl.Words))
		for i, w := range decl.Words {
			words[i] = strings.ToLower(w)
		}
		l.predicates = append(l.predicates, lexPredicate{
			words: words,
			pred:  Predicate{Expr: e, Env: types.EmptyEnv, Match: strings.Join(words, "_")},
		})
	}
	return l, nil
}

// Hierarchy returns the atomic types declared by the lexicon.
func (l *Lexicon) Hierarchy() *types.Hierarchy { return l.hierarchy }

// Rules returns the number of rules in the lexicon.
func (l *Lexicon) Rules() int { return len(l.rules) }

func (l *Lexicon) FetchNNP(word string) []Candidate { return l.nnp[strings.ToLower(word)] }

func (l *Lexicon) FetchPattern(word string) []Candidate { return l.patterns[strings.ToLower(word)] }

func (l *Lexicon) FetchPOSTag(pos string) []Candidate { return l.postags[strings.ToUpper(pos)] }

func (l *Lexicon) FetchRuleID(id int) (Rule, bool) {
	if id < 0 || id >= len(l.rules) {
		return Rule{}, false
	}
	return l.rules[id], true
}

func (l *Lexicon) POSTags() *set.Set[string] { return l.tags }

// FetchPredicates returns predicates whose words all occur within covered and whose type
// may be related to varType (resolved through env). Type-variables match any type.
func (l *Lexicon) FetchPredicates(varType types.Type, env types.Env, covered []string) []Predicate {
	words := set.New[string](len(covered))
	for _, w := range covered {
		words.Insert(strings.ToLower(w))
	}
	want := env.Resolve(varType)
	var preds []Predicate
	for _, p := range l.predicates {
		if !containsAll(words, p.words) {
			continue
		}
		if !compatible(l.hierarchy, want, p.pred.Expr.Type()) {
			continue
		}
		preds = append(preds, p.pred)
	}
	return preds
}

func containsAll(words *set.Set[string], want []string) bool {
	for _, w := range want {
		if !words.Contains(w) {
			return false
		}
	}
	return true
}

func compatible(h *types.Hierarchy, a, b types.Type) bool {
	a, b = types.RealType(a), types.RealType(b)
	switch b.(type) {
	case *types.Var, *types.InferVar, nil:
		return true
	}
	switch a := a.(type) {
	case *types.Var, *types.InferVar, nil:
		return true
	case *types.Atom:
		b, ok := b.(*types.Atom)
		return ok && (h.IsSubtype(a.Name, b.Name) || h.IsSubtype(b.Name, a.Name))
	case *types.Arrow:
		b, ok := b.(*types.Arrow)
		return ok && compatible(h, a.From, b.From) && compatible(h, a.To, b.To)
	case *types.List:
		b, ok := b.(*types.List)
		return ok && compatible(h, a.Elem, b.Elem)
	}
	return false
}
