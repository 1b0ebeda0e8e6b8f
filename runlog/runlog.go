// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runlog records completed synapse runs in a SQLite database.
package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/emer/ansyn/synapse"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one recorded set of trials
type Entry struct {
	ID          string
	Created     time.Time
	CF          float64
	Spont       float64
	NRep        int
	NTimesteps  int
	Noise       string
	Variant     string
	Trials      int
	NSpikesMean float64
	NSpikesStd  float64
	ElapsedSecs float64
}

// NewEntry fills an entry from the trials config and result.
// ID and Created are set by Record when empty.
func NewEntry(tr *synapse.Trials, res *synapse.Result) Entry {
	cfg := &tr.Config
	return Entry{
		CF:          cfg.CF,
		Spont:       cfg.Spont,
		NRep:        cfg.NRep,
		NTimesteps:  cfg.NTimesteps,
		Noise:       cfg.Noise.String(),
		Variant:     cfg.Variant.String(),
		Trials:      tr.NTrials,
		NSpikesMean: res.MeanSpikes,
		NSpikesStd:  res.StdSpikes,
		ElapsedSecs: res.Elapsed,
	}
}

// Log is an open run log database
type Log struct {
	db *sql.DB
}

// Open opens (creating if needed) the run log at path.
// ":memory:" gives a private in-memory log.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("runlog: open %s: %w", path, err)
	}
	// one connection keeps a :memory: database alive and serializes writes
	db.SetMaxOpenConns(1)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created INTEGER NOT NULL,
			cf REAL NOT NULL,
			spont REAL NOT NULL,
			nrep INTEGER NOT NULL,
			ntimesteps INTEGER NOT NULL,
			noise TEXT NOT NULL,
			variant TEXT NOT NULL,
			trials INTEGER NOT NULL,
			nspikes_mean REAL NOT NULL,
			nspikes_std REAL NOT NULL,
			elapsed_secs REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("runlog: create tables: %w", err)
	}
	return &Log{db: db}, nil
}

// Close closes the database.
func (lg *Log) Close() error {
	return lg.db.Close()
}

// Record inserts entry e and returns it with ID and Created filled in.
func (lg *Log) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Created.IsZero() {
		e.Created = time.Now()
	}
	_, err := lg.db.ExecContext(ctx, `
		INSERT INTO runs (id, created, cf, spont, nrep, ntimesteps, noise, variant, trials, nspikes_mean, nspikes_std, elapsed_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Created.UnixNano(), e.CF, e.Spont, e.NRep, e.NTimesteps, e.Noise, e.Variant,
		e.Trials, e.NSpikesMean, e.NSpikesStd, e.ElapsedSecs)
	if err != nil {
		return e, fmt.Errorf("runlog: record %s: %w", e.ID, err)
	}
	return e, nil
}

// List returns all entries, newest first.
func (lg *Log) List(ctx context.Context) ([]Entry, error) {
	rows, err := lg.db.QueryContext(ctx, `
		SELECT id, created, cf, spont, nrep, ntimesteps, noise, variant, trials, nspikes_mean, nspikes_std, elapsed_secs
		FROM runs ORDER BY created DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("runlog: list: %w", err)
	}
	defer rows.Close()

	var es []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &created, &e.CF, &e.Spont, &e.NRep, &e.NTimesteps, &e.Noise, &e.Variant,
			&e.Trials, &e.NSpikesMean, &e.NSpikesStd, &e.ElapsedSecs); err != nil {
			return nil, fmt.Errorf("runlog: scan: %w", err)
		}
		e.Created = time.Unix(0, created)
		es = append(es, e)
	}
	return es, rows.Err()
}
