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
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"
)

// WorkerError is a failure while processing one example. Any worker error aborts the batch.
type WorkerError struct {
	ExampleID string
	Err       error
	// Stack is set when the worker panicked.
	Stack []byte
}

func (err *WorkerError) Error() string {
	if err.Stack != nil {
		return fmt.Sprintf("example %s: %v\n%s", err.ExampleID, err.Err, err.Stack)
	}
	return fmt.Sprintf("example %s: %v", err.ExampleID, err.Err)
}

func (err *WorkerError) Unwrap() error { return err.Err }

// Run task for each example on a bounded pool. The first failure cancels the remaining
// tasks and is returned.
func (t *Trainer) forEach(parent context.Context, examples []*Example, task func(i int, ex *Example) error) error {
	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(t.Config.Workers)
	for i, ex := range examples {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &WorkerError{ExampleID: ex.ID, Err: fmt.Errorf("panic: %v", r), Stack: debug.Stack()}
				}
			}()
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			if err := task(i, ex); err != nil {
				return &WorkerError{ExampleID: ex.ID, Err: err}
			}
			if pad := t.Config.MinTaskTime - time.Since(start); pad > 0 {
				time.Sleep(pad)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return parent.Err()
}
