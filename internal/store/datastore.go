package store

// DataStore is the interface catalog scripts write through. Both Store
// (direct SQLite) and BatchedStore (in-memory buffering until the script
// finishes) implement it.
type DataStore interface {
	InsertShape(r *ShapeRecord) (int64, error)
	Shapes() ([]*ShapeRecord, error)
}

// Compile-time check: *Store satisfies DataStore.
var _ DataStore = (*Store)(nil)
