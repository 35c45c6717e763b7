package store

import "sync"

// BatchedStore buffers shape inserts in memory using fake (negative) IDs.
// It implements DataStore so catalog scripts can write to it without
// knowing whether they're hitting SQLite or an in-memory buffer.
//
// Shapes reads through to the underlying Store and appends buffered rows,
// so a script sees its own inserts before they are committed.
type BatchedStore struct {
	store *Store // for read passthrough
	mu    sync.Mutex

	Records []ShapeRecord

	nextFakeID int64 // starts at -1, decrements
}

// Compile-time check: *BatchedStore satisfies DataStore.
var _ DataStore = (*BatchedStore)(nil)

// NewBatchedStore creates a BatchedStore backed by the given Store for read queries.
func NewBatchedStore(s *Store) *BatchedStore {
	return &BatchedStore{
		store:      s,
		nextFakeID: -1,
	}
}

func (b *BatchedStore) allocFakeID() int64 {
	id := b.nextFakeID
	b.nextFakeID--
	return id
}

func (b *BatchedStore) InsertShape(r *ShapeRecord) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fakeID := b.allocFakeID()
	r.ID = fakeID
	b.Records = append(b.Records, *r)
	return fakeID, nil
}

// Shapes returns committed rows followed by buffered rows.
func (b *BatchedStore) Shapes() ([]*ShapeRecord, error) {
	committed, err := b.store.Shapes()
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*ShapeRecord, 0, len(committed)+len(b.Records))
	out = append(out, committed...)
	for i := range b.Records {
		r := b.Records[i]
		out = append(out, &r)
	}
	return out, nil
}

// Len returns the number of buffered records.
func (b *BatchedStore) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.Records)
}
