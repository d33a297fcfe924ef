// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ckpt implements a sqlite store of committed integration point records
package ckpt

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/google/uuid"
	"github.com/tianhaichen/oofem-1/msolid"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a run or record does not exist
var ErrNotFound = errors.New("checkpoint not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
  id         TEXT PRIMARY KEY,
  label      TEXT NOT NULL,
  matfile    TEXT NOT NULL,
  material   TEXT NOT NULL,
  pathfile   TEXT NOT NULL,
  ndim       INTEGER NOT NULL,
  created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS records (
  run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
  eid    INTEGER NOT NULL,
  ipid   INTEGER NOT NULL,
  step   INTEGER NOT NULL,
  enc    TEXT NOT NULL,
  data   BLOB NOT NULL,
  PRIMARY KEY (run_id, eid, ipid, step)
);
`

// Run holds the description of one simulation
type Run struct {
	Id       string    // run identifier (uuid)
	Label    string    // user label
	Matfile  string    // materials file
	Material string    // material name
	Pathfile string    // strain path file
	Ndim     int       // space dimension
	Created  time.Time // creation time (UTC)
}

// Store holds committed records of integration points in a sqlite database
type Store struct {
	Enc string // encoder type: "gob" or "json"
	db  *sql.DB
}

// Open opens (or creates) a store
func Open(path string) (o *Store, err error) {
	if strings.TrimSpace(path) == "" {
		return nil, chk.Err("ckpt: database path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, chk.Err("ckpt: cannot open database %q\n%v", path, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, chk.Err("ckpt: cannot connect to database %q\n%v", path, err)
	}
	if _, err = db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, chk.Err("ckpt: cannot create tables\n%v", err)
	}
	return &Store{Enc: "gob", db: db}, nil
}

// Close closes the database
func (o *Store) Close() error {
	if o == nil || o.db == nil {
		return nil
	}
	err := o.db.Close()
	o.db = nil
	return err
}

// NewRun registers a new run and returns its identifier
func (o *Store) NewRun(ctx context.Context, run Run) (id string, err error) {
	if o.db == nil {
		return "", chk.Err("ckpt: store is closed")
	}
	if run.Ndim < 1 || run.Ndim > 3 {
		return "", chk.Err("ckpt: ndim must be 1, 2 or 3; %d is incorrect", run.Ndim)
	}
	uid, err := uuid.NewV7()
	if err != nil {
		uid = uuid.New()
	}
	id = uid.String()
	_, err = o.db.ExecContext(ctx,
		`INSERT INTO runs (id, label, matfile, material, pathfile, ndim, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, run.Label, run.Matfile, run.Material, run.Pathfile, run.Ndim, time.Now().UTC().UnixMilli())
	if err != nil {
		return "", chk.Err("ckpt: cannot insert run\n%v", err)
	}
	return
}

// GetRun returns a run
func (o *Store) GetRun(ctx context.Context, id string) (run Run, err error) {
	if o.db == nil {
		return run, chk.Err("ckpt: store is closed")
	}
	var ms int64
	err = o.db.QueryRowContext(ctx,
		`SELECT id, label, matfile, material, pathfile, ndim, created_at FROM runs WHERE id = ?`, id).
		Scan(&run.Id, &run.Label, &run.Matfile, &run.Material, &run.Pathfile, &run.Ndim, &ms)
	if errors.Is(err, sql.ErrNoRows) {
		return run, fmt.Errorf("ckpt: run %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return run, chk.Err("ckpt: cannot read run %q\n%v", id, err)
	}
	run.Created = time.UnixMilli(ms).UTC()
	return
}

// Runs returns all runs ordered by creation
func (o *Store) Runs(ctx context.Context) (runs []Run, err error) {
	if o.db == nil {
		return nil, chk.Err("ckpt: store is closed")
	}
	rows, err := o.db.QueryContext(ctx,
		`SELECT id, label, matfile, material, pathfile, ndim, created_at FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, chk.Err("ckpt: cannot list runs\n%v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var run Run
		var ms int64
		err = rows.Scan(&run.Id, &run.Label, &run.Matfile, &run.Material, &run.Pathfile, &run.Ndim, &ms)
		if err != nil {
			return nil, chk.Err("ckpt: cannot scan run\n%v", err)
		}
		run.Created = time.UnixMilli(ms).UTC()
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Save stores the committed record of one integration point at a step
//  Note: an existing record at the same step is replaced
func (o *Store) Save(ctx context.Context, run string, eid, ipid, step int, sta *msolid.Status) (err error) {
	if o.db == nil {
		return chk.Err("ckpt: store is closed")
	}
	if _, err = o.GetRun(ctx, run); err != nil {
		return
	}
	var buf bytes.Buffer
	err = sta.Encode(msolid.GetEncoder(&buf, o.Enc))
	if err != nil {
		return
	}
	_, err = o.db.ExecContext(ctx,
		`INSERT INTO records (run_id, eid, ipid, step, enc, data) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (run_id, eid, ipid, step) DO UPDATE SET enc = excluded.enc, data = excluded.data`,
		run, eid, ipid, step, o.Enc, buf.Bytes())
	if err != nil {
		return chk.Err("ckpt: cannot save record (eid=%d, ipid=%d, step=%d)\n%v", eid, ipid, step, err)
	}
	return
}

// Load restores the latest committed record of one integration point into sta
//  Note: sta must have been allocated by the model that saved the record
func (o *Store) Load(ctx context.Context, run string, eid, ipid int, sta *msolid.Status) (step int, err error) {
	return o.load(ctx, sta,
		`SELECT step, enc, data FROM records WHERE run_id = ? AND eid = ? AND ipid = ? ORDER BY step DESC LIMIT 1`,
		run, eid, ipid)
}

// LoadStep restores the committed record of one integration point at a given step
func (o *Store) LoadStep(ctx context.Context, run string, eid, ipid, step int, sta *msolid.Status) (err error) {
	_, err = o.load(ctx, sta,
		`SELECT step, enc, data FROM records WHERE run_id = ? AND eid = ? AND ipid = ? AND step = ?`,
		run, eid, ipid, step)
	return
}

// load runs a query returning (step, enc, data) and decodes the record
func (o *Store) load(ctx context.Context, sta *msolid.Status, query string, args ...interface{}) (step int, err error) {
	if o.db == nil {
		return 0, chk.Err("ckpt: store is closed")
	}
	var enc string
	var data []byte
	err = o.db.QueryRowContext(ctx, query, args...).Scan(&step, &enc, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("ckpt: record %v: %w", args, ErrNotFound)
	}
	if err != nil {
		return 0, chk.Err("ckpt: cannot read record %v\n%v", args, err)
	}
	err = sta.Decode(msolid.GetDecoder(bytes.NewReader(data), enc))
	return
}

// Steps returns the sorted steps with records of a run
func (o *Store) Steps(ctx context.Context, run string) (steps []int, err error) {
	if o.db == nil {
		return nil, chk.Err("ckpt: store is closed")
	}
	rows, err := o.db.QueryContext(ctx, `SELECT DISTINCT step FROM records WHERE run_id = ? ORDER BY step`, run)
	if err != nil {
		return nil, chk.Err("ckpt: cannot list steps\n%v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var step int
		if err = rows.Scan(&step); err != nil {
			return nil, chk.Err("ckpt: cannot scan step\n%v", err)
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}
