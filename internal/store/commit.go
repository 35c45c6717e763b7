package store

import (
	"database/sql"
	"fmt"
	"time"
)

// CommitBatch inserts all buffered records from a BatchedStore into SQLite
// within a single transaction and returns their real IDs in buffer order.
//
// When run is non-nil the batch replaces the script's earlier output:
// rows whose source is run.Path are deleted first and the scripts row is
// upserted with the new hash. Either the whole batch lands or none of it.
func (s *Store) CommitBatch(batch *BatchedStore, run *ScriptRun) ([]int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("commit batch: begin: %w", err)
	}
	defer tx.Rollback()

	batch.mu.Lock()
	records := append([]ShapeRecord(nil), batch.Records...)
	batch.mu.Unlock()

	if run != nil {
		if _, err := tx.Exec("DELETE FROM shapes WHERE source = ?", run.Path); err != nil {
			return nil, fmt.Errorf("commit batch: clear %s: %w", run.Path, err)
		}
	}

	ids := make([]int64, 0, len(records))
	for i := range records {
		if run != nil {
			records[i].Source = run.Path
		}
		realID, err := insertShapeTx(tx, &records[i])
		if err != nil {
			return nil, fmt.Errorf("commit batch: shape %d (%s): %w", i, records[i].Kind, err)
		}
		ids = append(ids, realID)
	}

	if run != nil {
		if run.LoadedAt.IsZero() {
			run.LoadedAt = time.Now().UTC().Truncate(time.Second)
		}
		run.ShapeCount = len(records)
		_, err := tx.Exec(
			`INSERT INTO scripts (path, hash, shape_count, loaded_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT(path) DO UPDATE SET hash = excluded.hash, shape_count = excluded.shape_count, loaded_at = excluded.loaded_at`,
			run.Path, run.Hash, run.ShapeCount, run.LoadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("commit batch: record script %s: %w", run.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit batch: commit: %w", err)
	}
	return ids, nil
}

func insertShapeTx(tx *sql.Tx, r *ShapeRecord) (int64, error) {
	r.fillDefaults()
	res, err := tx.Exec(
		"INSERT INTO shapes (uid, kind, radius, width, height, source, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		r.UID, r.Kind, r.Radius, r.Width, r.Height, r.Source, r.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
