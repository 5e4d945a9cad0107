// Package flowdb persists batch-resampling runs to a local sqlite file so
// pipeline reprocessing jobs can be audited after the fact. Each run
// records its parameters plus one row per input file processed.
package flowdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// Open opens (or creates) the sqlite database at path and applies any
// pending schema migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	db := &DB{sqlDB}
	if err := db.migrateUp(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}
	return db, nil
}

// Run describes one batch invocation.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	TargetWidth  int
	TargetHeight int
	ScaleX       float64
	ScaleY       float64
	InputDir     string
	OutputDir    string
}

// Resample describes the outcome of processing one input file. Err is
// empty on success.
type Resample struct {
	RunID         string
	InputPath     string
	OutputPath    string
	Format        string
	SourceWidth   int
	SourceHeight  int
	MeanMagnitude float64
	MaxMagnitude  float64
	Duration      time.Duration
	Err           string
}

// BeginRun inserts a new run row and returns its generated ID.
func (db *DB) BeginRun(targetWidth, targetHeight int, scaleX, scaleY float64, inputDir, outputDir string) (string, error) {
	runID := uuid.New().String()
	_, err := db.Exec(
		`INSERT INTO runs (run_id, started_at, target_width, target_height, scale_x, scale_y, input_dir, output_dir)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, time.Now().UTC(), targetWidth, targetHeight, scaleX, scaleY, inputDir, outputDir,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}
	return runID, nil
}

// FinishRun stamps the run's completion time.
func (db *DB) FinishRun(runID string) error {
	res, err := db.Exec(`UPDATE runs SET finished_at = ? WHERE run_id = ?`, time.Now().UTC(), runID)
	if err != nil {
		return fmt.Errorf("finishing run %s: %w", runID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("finishing run %s: no such run", runID)
	}
	return nil
}

// RecordResample inserts one per-file outcome row.
func (db *DB) RecordResample(r Resample) error {
	_, err := db.Exec(
		`INSERT INTO resamples (run_id, input_path, output_path, format, source_width, source_height,
		                        mean_magnitude, max_magnitude, duration_ms, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.InputPath, r.OutputPath, r.Format, r.SourceWidth, r.SourceHeight,
		r.MeanMagnitude, r.MaxMagnitude, r.Duration.Milliseconds(), r.Err,
	)
	if err != nil {
		return fmt.Errorf("recording resample of %s: %w", r.InputPath, err)
	}
	return nil
}

// RunResamples returns the per-file rows for a run, oldest first.
func (db *DB) RunResamples(runID string) ([]Resample, error) {
	rows, err := db.Query(
		`SELECT run_id, input_path, output_path, format, source_width, source_height,
		        mean_magnitude, max_magnitude, duration_ms, error
		 FROM resamples WHERE run_id = ? ORDER BY resample_id`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resample
	for rows.Next() {
		var r Resample
		var durationMs int64
		if err := rows.Scan(&r.RunID, &r.InputPath, &r.OutputPath, &r.Format,
			&r.SourceWidth, &r.SourceHeight, &r.MeanMagnitude, &r.MaxMagnitude,
			&durationMs, &r.Err); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}
