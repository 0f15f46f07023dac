package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists draw history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across statements.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS draws (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT NOT NULL,
			timestamp      INTEGER NOT NULL,
			source         TEXT,
			tree           TEXT,
			label          TEXT NOT NULL,
			y_label        TEXT,
			cut            TEXT,
			cut_applied    INTEGER,
			entries_before INTEGER,
			entries_after  INTEGER,
			bins           INTEGER,
			x_min          REAL,
			x_max          REAL,
			y_min          REAL,
			y_max          REAL,
			fit_kind       TEXT,
			fit_converged  INTEGER,
			fit_amplitude  REAL,
			fit_mean       REAL,
			fit_sigma      REAL,
			fit_reason     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_draws_ts ON draws(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_draws_run ON draws(run_id)`,

		`CREATE TABLE IF NOT EXISTS saves (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id    TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			label     TEXT,
			path      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_saves_ts ON saves(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordDraw(evt *DrawEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := evt.Result
	var (
		fitKind          string
		fitConverged     bool
		amp, mean, sigma float64
		fitReason        string
	)
	if res.Fit != nil {
		fitKind = string(res.Fit.Kind)
		fitConverged = res.Fit.Converged
		amp, mean, sigma = res.Fit.Amplitude, res.Fit.Mean, res.Fit.Sigma
		fitReason = res.Fit.Reason
	}

	_, err := r.db.Exec(`INSERT INTO draws
		(run_id, timestamp, source, tree, label, y_label, cut, cut_applied,
		 entries_before, entries_after, bins, x_min, x_max, y_min, y_max,
		 fit_kind, fit_converged, fit_amplitude, fit_mean, fit_sigma, fit_reason)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		evt.RunID, time.Now().Unix(), evt.Source, evt.Tree,
		res.Label, res.YLabel, res.Cut, res.CutApplied,
		res.EntriesBefore, res.EntriesAfter, res.Bins,
		res.XRange.Min, res.XRange.Max, res.YRange.Min, res.YRange.Max,
		fitKind, fitConverged, amp, mean, sigma, fitReason,
	)
	return err
}

func (r *SQLiteRecorder) RecordSave(evt *SaveEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO saves (run_id, timestamp, label, path) VALUES (?,?,?,?)`,
		evt.RunID, time.Now().Unix(), evt.Label, evt.Path,
	)
	return err
}

// DrawRecord is one row of the draws table.
type DrawRecord struct {
	RunID         string
	Time          time.Time
	Source        string
	Tree          string
	Label         string
	YLabel        string
	Cut           string
	CutApplied    bool
	EntriesBefore int
	EntriesAfter  int
	FitKind       string
	FitConverged  bool
	FitMean       float64
	FitSigma      float64
}

// RecentDraws returns up to limit draws, newest first.
func (r *SQLiteRecorder) RecentDraws(limit int) ([]DrawRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT run_id, timestamp, source, tree, label, y_label, cut, cut_applied,
		entries_before, entries_after, fit_kind, fit_converged, fit_mean, fit_sigma
		FROM draws ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query draws: %w", err)
	}
	defer rows.Close()

	var out []DrawRecord
	for rows.Next() {
		var (
			d  DrawRecord
			ts int64
		)
		if err := rows.Scan(&d.RunID, &ts, &d.Source, &d.Tree, &d.Label, &d.YLabel, &d.Cut, &d.CutApplied,
			&d.EntriesBefore, &d.EntriesAfter, &d.FitKind, &d.FitConverged, &d.FitMean, &d.FitSigma); err != nil {
			return nil, fmt.Errorf("scan draw: %w", err)
		}
		d.Time = time.Unix(ts, 0)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
