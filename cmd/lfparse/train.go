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
	"context"
	"os"
	"os/signal"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/wdamron/lfparse/model"
	"github.com/wdamron/lfparse/trainer"
)

var (
	configFile, trainFile, devFile, refsFile string
	epochs, workers, batchSize              int
)

func runTrain(cmd *commander.Command, args []string) error {
	logger := newLogger()
	cfg := trainer.DefaultConfig
	if configFile != "" {
		loaded, err := trainer.LoadConfig(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if epochs > 0 {
		cfg.Epochs = epochs
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if batchSize > 0 {
		cfg.BatchSize = batchSize
	}
	if beamSize > 0 {
		cfg.BeamSize = beamSize
	}
	if refsFile != "" {
		cfg.References = refsFile
	}
	if cfg.Checkpoints == "" {
		cfg.Checkpoints = modelFile
	}

	lex, err := loadLexicon()
	if err != nil {
		return err
	}
	train, err := trainer.LoadCorpus(trainFile, lex.Hierarchy())
	if err != nil {
		return err
	}
	var dev []*trainer.Example
	if devFile != "" {
		if dev, err = trainer.LoadCorpus(devFile, lex.Hierarchy()); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	t := trainer.New(cfg, lex.Hierarchy(), logger, lex)
	logger.SetPrefix("[" + t.RunID[:8] + "] ")
	store, err := model.OpenStore(ctx, cfg.Checkpoints)
	if err != nil {
		return err
	}
	defer store.Close()
	t.Store = store

	logger.Printf("lexicon %s: %d rules", lexiconFile, lex.Rules())
	logger.Printf("checkpoints: %s", cfg.Checkpoints)
	return t.Train(ctx, train, dev)
}

func trainCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runTrain,
		UsageLine: "train <file options> [options]",
		Short:     "trains parser weights with a max-violation perceptron",
		Long: `
trains parser weights with a max-violation perceptron

	$ lfparse train -lex <lexicon> -train <corpus> [-dev <corpus>] [-db <checkpoints>] [options]

`,
		Flag: *flag.NewFlagSet("train", flag.ExitOnError),
	}
	addCommonFlags(cmd)
	cmd.Flag.StringVar(&configFile, "config", "", "Training Configuration File (YAML)")
	cmd.Flag.StringVar(&trainFile, "train", "", "Training Corpus File")
	cmd.Flag.StringVar(&devFile, "dev", "", "Optional - Dev Corpus File")
	cmd.Flag.StringVar(&refsFile, "refs", "", "Optional - Reference Derivations File")
	cmd.Flag.IntVar(&epochs, "it", 0, "Number of Perceptron Iterations")
	cmd.Flag.IntVar(&workers, "workers", 0, "Number of Parallel Workers")
	cmd.Flag.IntVar(&batchSize, "batch", 0, "Minibatch Size")
	return cmd
}
