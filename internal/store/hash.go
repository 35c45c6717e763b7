package store

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
)

// ComputeScriptHash returns the hex SHA-256 of a script's source. Loads of
// a script whose hash is unchanged are skipped.
func ComputeScriptHash(src string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(src)))
}

// ScriptRun returns the last recorded load of path, or nil if the script
// was never loaded.
func (s *Store) ScriptRun(path string) (*ScriptRun, error) {
	run := &ScriptRun{}
	err := s.db.QueryRow(
		"SELECT path, hash, shape_count, loaded_at FROM scripts WHERE path = ?", path,
	).Scan(&run.Path, &run.Hash, &run.ShapeCount, &run.LoadedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("script run: %w", err)
	}
	return run, nil
}

// ScriptRuns lists every recorded script load ordered by path.
func (s *Store) ScriptRuns() ([]*ScriptRun, error) {
	rows, err := s.db.Query("SELECT path, hash, shape_count, loaded_at FROM scripts ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("script runs: %w", err)
	}
	defer rows.Close()
	var runs []*ScriptRun
	for rows.Next() {
		run := &ScriptRun{}
		if err := rows.Scan(&run.Path, &run.Hash, &run.ShapeCount, &run.LoadedAt); err != nil {
			return nil, fmt.Errorf("scan script run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
