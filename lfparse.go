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

// lfparse maps natural-language questions to typed lambda-calculus logical forms.
//
// The root package provides type inference for terms of the lambda package: a variant of
// Hindley-Milner (Algorithm W) with directional subtyping over a hierarchy of atomic types,
// let-polymorphism for declared identifiers, and list-typed argument positions which absorb
// every remaining argument of an application.
//
// Sub-packages provide the type system (types), the term model (lambda), lexical lookup (kb),
// linear models and checkpoints (model), an incremental shift-reduce-skip parser with beam
// search over a hypergraph of states (parser), and a structured-perceptron trainer (trainer).
//
// Links:
//
// Hindley-Milner type system: https://en.wikipedia.org/wiki/Hindley–Milner_type_system
//
// Incremental parsing with dynamic programming (Huang and Sagae, 2010): https://aclanthology.org/P10-1110/
//
// Structured perceptron with inexact search (Huang, Fayong and Guo, 2012): https://aclanthology.org/N12-1015/
package lfparse
