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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wdamron/lfparse"
	"github.com/wdamron/lfparse/lambda"
	"github.com/wdamron/lfparse/parser"
	"github.com/wdamron/lfparse/types"
)

// Example is a tagged sentence with its gold logical form.
//
//	- id: geo-1
//	  tokens: "capital/NN of/IN texas/NNP"
//	  gold: "(capital:<state,city> texas:state)"
type Example struct {
	ID     string
	Tokens []parser.Token
	// Gold is simplified when loaded.
	Gold lambda.Expr
}

type exampleFile struct {
	ID     string `yaml:"id"`
	Tokens string `yaml:"tokens"`
	Gold   string `yaml:"gold"`
}

// LoadCorpus reads a YAML corpus file.
func LoadCorpus(path string, h *types.Hierarchy) ([]*Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	examples, err := ParseCorpus(data, h)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return examples, nil
}

// ParseCorpus decodes a YAML corpus. Ids must be unique and gold forms must type-check
// against h.
func ParseCorpus(data []byte, h *types.Hierarchy) ([]*Example, error) {
	var entries []exampleFile
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	sys, infer := types.NewSystem(h), lfparse.NewContext(h)
	seen := make(map[string]bool, len(entries))
	examples := make([]*Example, 0, len(entries))
	for i, entry := range entries {
		if entry.ID == "" {
			entry.ID = fmt.Sprintf("#%d", i)
		}
		if seen[entry.ID] {
			return nil, fmt.Errorf("duplicate example %s", entry.ID)
		}
		seen[entry.ID] = true

		toks, err := parser.ParseTokens(entry.Tokens)
		if err != nil {
			return nil, fmt.Errorf("example %s: %w", entry.ID, err)
		}
		gold, err := lambda.Parse(entry.Gold, sys, nil)
		if err != nil {
			return nil, fmt.Errorf("example %s: %w", entry.ID, err)
		}
		if _, err := infer.Infer(gold, nil); err != nil {
			return nil, fmt.Errorf("example %s: %w", entry.ID, err)
		}
		examples = append(examples, &Example{ID: entry.ID, Tokens: toks, Gold: lambda.Simplify(gold)})
	}
	return examples, nil
}
