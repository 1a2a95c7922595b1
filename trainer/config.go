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

// trainer learns parser weights with a max-violation structured perceptron.
//
// Training proceeds in minibatches. Each batch parses its sentences in parallel against one
// frozen snapshot of the live weights; the per-sentence updates are averaged and applied
// once the whole batch has finished. Weights are averaged over all update steps before
// evaluation and checkpointing.
package trainer

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Config controls training. Zero values are replaced by defaults.
type Config struct {
	Epochs    int `yaml:"epochs"`
	BatchSize int `yaml:"batch_size"`
	// Workers bounds the number of sentences parsed concurrently.
	Workers  int `yaml:"workers"`
	BeamSize int `yaml:"beam_size"`
	// OracleBeamSize and OracleFinals bound the forced decoder used to find reference
	// derivations for sentences without one.
	OracleBeamSize int `yaml:"oracle_beam_size"`
	OracleFinals   int `yaml:"oracle_finals"`
	// Tasks finishing sooner than MinTaskTime are padded.
	MinTaskTime time.Duration `yaml:"min_task_time"`
	// Checkpoints is the path of the SQLite checkpoint database; empty disables checkpoints.
	Checkpoints string `yaml:"checkpoints"`
	// References is the path of a YAML reference-derivation file, loaded before training
	// and updated with derivations found by the forced decoder.
	References string `yaml:"references"`
	Seed       int64  `yaml:"seed"`
}

var DefaultConfig = Config{
	Epochs:         10,
	BatchSize:      32,
	BeamSize:       16,
	OracleBeamSize: 64,
	OracleFinals:   32,
	Seed:           1,
}

func (cfg Config) withDefaults() Config {
	if cfg.Epochs <= 0 {
		cfg.Epochs = DefaultConfig.Epochs
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig.BatchSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.BeamSize <= 0 {
		cfg.BeamSize = DefaultConfig.BeamSize
	}
	if cfg.OracleBeamSize <= 0 {
		cfg.OracleBeamSize = DefaultConfig.OracleBeamSize
	}
	if cfg.OracleFinals <= 0 {
		cfg.OracleFinals = DefaultConfig.OracleFinals
	}
	if cfg.Seed == 0 {
		cfg.Seed = DefaultConfig.Seed
	}
	return cfg
}

// LoadConfig reads a YAML config file. Missing fields take default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.MinTaskTime < 0 {
		return Config{}, errors.New("Negative min_task_time in " + path)
	}
	return cfg.withDefaults(), nil
}
