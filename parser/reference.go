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

package parser

import (
	"os"

	"gopkg.in/yaml.v3"
)

// References maps sentence ids to reference derivations.
type References map[string][]Transition

// LoadReferences reads a YAML reference file. A missing file yields empty references.
func LoadReferences(path string) (References, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return References{}, nil
	}
	if err != nil {
		return nil, err
	}
	refs := References{}
	if err := yaml.Unmarshal(data, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// Save writes refs to path as YAML.
func (refs References) Save(path string) error {
	data, err := yaml.Marshal(refs)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
