package store

import (
	"database/sql"
	"fmt"
	"strings"
)

const shapeColumns = "id, uid, kind, radius, width, height, source, created_at"

// InsertShape stores r and sets its ID. A UID and creation time are
// assigned when absent.
func (s *Store) InsertShape(r *ShapeRecord) (int64, error) {
	r.fillDefaults()
	res, err := s.db.Exec(
		"INSERT INTO shapes (uid, kind, radius, width, height, source, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		r.UID, r.Kind, r.Radius, r.Width, r.Height, r.Source, r.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert shape: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	r.ID = id
	return id, nil
}

// Shapes returns every stored shape in insertion order.
func (s *Store) Shapes() ([]*ShapeRecord, error) {
	return s.queryShapes("SELECT " + shapeColumns + " FROM shapes ORDER BY id")
}

// ShapesByKind returns stored shapes of one kind in insertion order.
func (s *Store) ShapesByKind(kind string) ([]*ShapeRecord, error) {
	return s.queryShapes("SELECT "+shapeColumns+" FROM shapes WHERE kind = ? ORDER BY id", strings.ToLower(kind))
}

// ShapeByID returns the shape with the given ID, or nil if none exists.
func (s *Store) ShapeByID(id int64) (*ShapeRecord, error) {
	r := &ShapeRecord{}
	err := s.db.QueryRow("SELECT "+shapeColumns+" FROM shapes WHERE id = ?", id).Scan(
		&r.ID, &r.UID, &r.Kind, &r.Radius, &r.Width, &r.Height, &r.Source, &r.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("shape by id: %w", err)
	}
	return r, nil
}

// DeleteShape removes the shape with the given ID and reports whether a
// row was deleted.
func (s *Store) DeleteShape(id int64) (bool, error) {
	res, err := s.db.Exec("DELETE FROM shapes WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete shape: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteAll removes every stored shape and script record and returns how
// many shapes were removed.
func (s *Store) DeleteAll() (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("delete shapes: begin: %w", err)
	}
	defer tx.Rollback()
	res, err := tx.Exec("DELETE FROM shapes")
	if err != nil {
		return 0, fmt.Errorf("delete shapes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM scripts"); err != nil {
		return 0, fmt.Errorf("delete scripts: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("delete shapes: commit: %w", err)
	}
	return n, nil
}

// CountByKind returns per-kind totals ordered by kind name.
func (s *Store) CountByKind() ([]KindCount, error) {
	rows, err := s.db.Query("SELECT kind, COUNT(*) FROM shapes GROUP BY kind ORDER BY kind")
	if err != nil {
		return nil, fmt.Errorf("count by kind: %w", err)
	}
	defer rows.Close()
	var counts []KindCount
	for rows.Next() {
		var kc KindCount
		if err := rows.Scan(&kc.Kind, &kc.Count); err != nil {
			return nil, fmt.Errorf("scan kind count: %w", err)
		}
		counts = append(counts, kc)
	}
	return counts, rows.Err()
}

func (s *Store) queryShapes(query string, args ...any) ([]*ShapeRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query shapes: %w", err)
	}
	defer rows.Close()
	var out []*ShapeRecord
	for rows.Next() {
		r := &ShapeRecord{}
		if err := rows.Scan(&r.ID, &r.UID, &r.Kind, &r.Radius, &r.Width, &r.Height, &r.Source, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shape: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
