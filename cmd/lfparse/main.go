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

// lfparse trains and runs the semantic parser.
//
//	$ lfparse train -lex geo.yaml -train train.yaml -dev dev.yaml -db model.db
//	$ lfparse parse -lex geo.yaml -db model.db "capital/NN of/IN texas/NNP"
//	$ lfparse eval -lex geo.yaml -db model.db -test test.yaml
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/mattn/go-isatty"

	"github.com/wdamron/lfparse/kb"
	"github.com/wdamron/lfparse/model"
)

var (
	lexiconFile string
	modelFile   string
	epoch       int
	beamSize    int
)

func addCommonFlags(cmd *commander.Command) {
	cmd.Flag.StringVar(&lexiconFile, "lex", "", "Lexicon File (YAML)")
	cmd.Flag.StringVar(&modelFile, "db", "model.db", "Checkpoint Database")
	cmd.Flag.IntVar(&beamSize, "b", 0, "Beam Size (0 for the configured default)")
}

// Terminals get short, coloured output; everything else gets timestamps and plain text.
func newLogger() *log.Logger {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return log.New(os.Stderr, "", log.Ltime)
	}
	color.NoColor = true
	return log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)
}

func loadLexicon() (*kb.Lexicon, error) {
	if lexiconFile == "" {
		return nil, fmt.Errorf("missing -lex lexicon file")
	}
	return kb.LoadLexicon(lexiconFile)
}

// Load weights for the requested epoch, or the latest checkpoint when epoch is 0.
func loadWeights(ctx context.Context, logger *log.Logger) (model.Vector, error) {
	store, err := model.OpenStore(ctx, modelFile)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	if epoch > 0 {
		w, err := store.Load(ctx, epoch)
		if err != nil {
			return nil, err
		}
		logger.Printf("loaded epoch %d from %s (%d features)", epoch, modelFile, len(w))
		return w, nil
	}
	cp, w, err := store.Latest(ctx)
	if err != nil {
		return nil, err
	}
	logger.Printf("loaded epoch %d of run %s from %s (%d features)", cp.Epoch, cp.RunID, modelFile, cp.Features)
	return w, nil
}

func main() {
	app := &commander.Command{
		UsageLine: os.Args[0],
		Short:     "semantic parser for typed lambda-calculus logical forms",
		Subcommands: []*commander.Command{
			trainCmd(),
			parseCmd(),
			evalCmd(),
		},
		Flag: *flag.NewFlagSet("lfparse", flag.ExitOnError),
	}
	if err := app.Dispatch(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}
