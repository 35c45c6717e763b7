package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { s.Close() })
	return s
}

// insertTestCircle inserts a circle record and returns it with ID set.
func insertTestCircle(t *testing.T, s *Store, radius float64) *ShapeRecord {
	t.Helper()
	r := &ShapeRecord{Kind: "circle", Radius: radius}
	id, err := s.InsertShape(r)
	require.NoError(t, err)
	require.Positive(t, id)
	return r
}

// insertTestRectangle inserts a rectangle record and returns it with ID set.
func insertTestRectangle(t *testing.T, s *Store, width, height float64) *ShapeRecord {
	t.Helper()
	r := &ShapeRecord{Kind: "rectangle", Width: width, Height: height}
	id, err := s.InsertShape(r)
	require.NoError(t, err)
	require.Positive(t, id)
	return r
}

// =============================================================================
// Schema & Lifecycle
// =============================================================================

func TestMigrate_AllTablesExist(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	for _, table := range []string{"shapes", "scripts"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	// Running migrate again should not error.
	require.NoError(t, s.Migrate())
}

func TestMigrate_WALMode(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	var mode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "wal", mode)
}

// =============================================================================
// Shape operations
// =============================================================================

func TestShape_InsertAndRetrieve(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := &ShapeRecord{Kind: "Rectangle", Width: 4, Height: 6, CreatedAt: created}
	id, err := s.InsertShape(r)
	require.NoError(t, err)

	got, err := s.ShapeByID(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "rectangle", got.Kind, "kind is normalized to lower case")
	assert.Equal(t, 4.0, got.Width)
	assert.Equal(t, 6.0, got.Height)
	assert.Zero(t, got.Radius)
	assert.NotEmpty(t, got.UID)
	assert.Equal(t, r.UID, got.UID)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestShape_ByIDNotFound(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	got, err := s.ShapeByID(42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestShape_RejectsUnknownKind(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	_, err := s.InsertShape(&ShapeRecord{Kind: "triangle"})
	assert.Error(t, err)
}

func TestShape_UniqueUIDs(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	a := insertTestCircle(t, s, 1)
	b := insertTestCircle(t, s, 1)
	assert.NotEqual(t, a.UID, b.UID)
}

func TestShapes_InsertionOrder(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	c := insertTestCircle(t, s, 5)
	r := insertTestRectangle(t, s, 4, 6)
	c2 := insertTestCircle(t, s, 1)

	all, err := s.Shapes()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{c.ID, r.ID, c2.ID}, []int64{all[0].ID, all[1].ID, all[2].ID})

	circles, err := s.ShapesByKind("CIRCLE")
	require.NoError(t, err)
	require.Len(t, circles, 2)
	assert.Equal(t, c.ID, circles[0].ID)
	assert.Equal(t, c2.ID, circles[1].ID)
}

func TestShapes_EmptyStore(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	all, err := s.Shapes()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeleteShape(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	c := insertTestCircle(t, s, 2)

	deleted, err := s.DeleteShape(c.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteShape(c.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "second delete finds nothing")

	got, err := s.ShapeByID(c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteAll_ClearsShapesAndScripts(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	insertTestCircle(t, s, 2)
	insertTestRectangle(t, s, 1, 1)

	batch := NewBatchedStore(s)
	_, err := batch.InsertShape(&ShapeRecord{Kind: "circle", Radius: 3})
	require.NoError(t, err)
	_, err = s.CommitBatch(batch, &ScriptRun{Path: "a.risor", Hash: "h1"})
	require.NoError(t, err)

	n, err := s.DeleteAll()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	runs, err := s.ScriptRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestCountByKind(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	insertTestCircle(t, s, 1)
	insertTestCircle(t, s, 2)
	insertTestRectangle(t, s, 1, 2)

	counts, err := s.CountByKind()
	require.NoError(t, err)
	assert.Equal(t, []KindCount{{Kind: "circle", Count: 2}, {Kind: "rectangle", Count: 1}}, counts)
}

// =============================================================================
// Script hashes
// =============================================================================

func TestComputeScriptHash_Deterministic(t *testing.T) {
	t.Parallel()
	a := ComputeScriptHash(`add_shape({"kind": "circle", "radius": 1})`)
	b := ComputeScriptHash(`add_shape({"kind": "circle", "radius": 1})`)
	c := ComputeScriptHash(`add_shape({"kind": "circle", "radius": 2})`)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestScriptRun_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	run, err := s.ScriptRun("missing.risor")
	require.NoError(t, err)
	assert.Nil(t, run)
}
