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

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/wdamron/lfparse/lambda"
	"github.com/wdamron/lfparse/parser"
	"github.com/wdamron/lfparse/trainer"
)

var testFile string

// Sentences from the command line, or one per line from stdin.
func sentences(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func runParse(cmd *commander.Command, args []string) error {
	logger := newLogger()
	lex, err := loadLexicon()
	if err != nil {
		return err
	}
	w, err := loadWeights(context.Background(), logger)
	if err != nil {
		return err
	}
	cfg := trainer.DefaultConfig
	if beamSize > 0 {
		cfg.BeamSize = beamSize
	}
	t := trainer.New(cfg, lex.Hierarchy(), logger, lex)

	lines, err := sentences(args)
	if err != nil {
		return err
	}
	for _, line := range lines {
		toks, err := parser.ParseTokens(line)
		if err != nil {
			return err
		}
		e, err := t.Predict(w, toks)
		switch {
		case err != nil:
			return err
		case e == nil:
			fmt.Println(color.YellowString("no parse"))
		default:
			fmt.Println(lambda.ExprString(e))
		}
	}
	return nil
}

func runEval(cmd *commander.Command, args []string) error {
	logger := newLogger()
	lex, err := loadLexicon()
	if err != nil {
		return err
	}
	test, err := trainer.LoadCorpus(testFile, lex.Hierarchy())
	if err != nil {
		return err
	}
	ctx := context.Background()
	w, err := loadWeights(ctx, logger)
	if err != nil {
		return err
	}
	cfg := trainer.DefaultConfig
	if beamSize > 0 {
		cfg.BeamSize = beamSize
	}
	eval, err := trainer.New(cfg, lex.Hierarchy(), logger, lex).Evaluate(ctx, w, test)
	if err != nil {
		return err
	}
	fmt.Printf("%s %d/%d (%.2f%%)\n", color.GreenString("exact"), eval.Exact, eval.Examples, 100*eval.Accuracy())
	fmt.Printf("%s %d/%d\n", color.CyanString("parsed"), eval.Parsed, eval.Examples)
	fmt.Printf("%s P %.2f%% R %.2f%% F1 %.2f%%\n", color.CyanString("unigrams"), 100*eval.Precision(), 100*eval.Recall(), 100*eval.F1())
	return nil
}

func parseCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runParse,
		UsageLine: "parse <file options> [sentence ...]",
		Short:     "parses POS-tagged sentences into logical forms",
		Long: `
parses POS-tagged sentences (word/POS ...) into logical forms, reading stdin when no
sentences are given

	$ lfparse parse -lex <lexicon> -db <checkpoints> [-epoch <n>] "capital/NN of/IN texas/NNP"

`,
		Flag: *flag.NewFlagSet("parse", flag.ExitOnError),
	}
	addCommonFlags(cmd)
	cmd.Flag.IntVar(&epoch, "epoch", 0, "Checkpoint Epoch (0 for the latest)")
	return cmd
}

func evalCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runEval,
		UsageLine: "eval <file options>",
		Short:     "evaluates checkpointed weights on a test corpus",
		Long: `
evaluates checkpointed weights on a test corpus (exact match and unigram precision/recall)

	$ lfparse eval -lex <lexicon> -db <checkpoints> -test <corpus> [-epoch <n>]

`,
		Flag: *flag.NewFlagSet("eval", flag.ExitOnError),
	}
	addCommonFlags(cmd)
	cmd.Flag.IntVar(&epoch, "epoch", 0, "Checkpoint Epoch (0 for the latest)")
	cmd.Flag.StringVar(&testFile, "test", "", "Test Corpus File")
	return cmd
}
