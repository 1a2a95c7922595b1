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

package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoCheckpoint is returned when a requested checkpoint does not exist.
var ErrNoCheckpoint = errors.New("No checkpoint for epoch")

// Checkpoint describes stored weights.
type Checkpoint struct {
	Epoch    int
	RunID    string
	Created  time.Time
	Features int
}

// Store persists per-epoch weight checkpoints in a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) a checkpoint database. Use ":memory:" for a transient store.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// every connection to :memory: is a distinct database
		db.SetMaxOpenConns(1)
	}
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS checkpoints(
			epoch INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL,
			created INTEGER NOT NULL,
			features INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS weights(
			epoch INTEGER NOT NULL,
			action TEXT NOT NULL,
			feature TEXT NOT NULL,
			value REAL NOT NULL,
			PRIMARY KEY (epoch, action, feature)
		)`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, err
		}
	}
	return &Store{db: db}, nil
}

// Close the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Save stores w as the checkpoint for epoch, replacing any existing checkpoint.
func (s *Store) Save(ctx context.Context, runID string, epoch int, w Vector) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, "DELETE FROM weights WHERE epoch = ?", epoch); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM checkpoints WHERE epoch = ?", epoch); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO weights(epoch, action, feature, value) VALUES(?,?,?,?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, k := range w.Keys() {
		if _, err = stmt.ExecContext(ctx, epoch, k.Action, k.Feature, w[k]); err != nil {
			return fmt.Errorf("saving %s/%s: %w", k.Action, k.Feature, err)
		}
	}
	_, err = tx.ExecContext(ctx, "INSERT INTO checkpoints(epoch, run_id, created, features) VALUES(?,?,?,?)",
		epoch, runID, time.Now().Unix(), len(w))
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Load returns the weights stored for epoch.
func (s *Store) Load(ctx context.Context, epoch int) (Vector, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT features FROM checkpoints WHERE epoch = ?", epoch).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w %d", ErrNoCheckpoint, epoch)
	}
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, "SELECT action, feature, value FROM weights WHERE epoch = ?", epoch)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	w := make(Vector, n)
	for rows.Next() {
		var k Key
		var v float64
		if err := rows.Scan(&k.Action, &k.Feature, &v); err != nil {
			return nil, err
		}
		w[k] = v
	}
	return w, rows.Err()
}

// Epochs lists stored checkpoints ordered by epoch.
func (s *Store) Epochs(ctx context.Context) ([]Checkpoint, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT epoch, run_id, created, features FROM checkpoints ORDER BY epoch")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cps []Checkpoint
	for rows.Next() {
		var cp Checkpoint
		var created int64
		if err := rows.Scan(&cp.Epoch, &cp.RunID, &created, &cp.Features); err != nil {
			return nil, err
		}
		cp.Created = time.Unix(created, 0)
		cps = append(cps, cp)
	}
	return cps, rows.Err()
}

// Latest returns the checkpoint with the highest epoch.
func (s *Store) Latest(ctx context.Context) (Checkpoint, Vector, error) {
	cps, err := s.Epochs(ctx)
	if err != nil {
		return Checkpoint{}, nil, err
	}
	if len(cps) == 0 {
		return Checkpoint{}, nil, fmt.Errorf("%w: store is empty", ErrNoCheckpoint)
	}
	cp := cps[len(cps)-1]
	w, err := s.Load(ctx, cp.Epoch)
	return cp, w, err
}
