package shapes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/jward/shapes/internal/runtime"
	"github.com/jward/shapes/internal/store"
)

// Catalog persists shapes in SQLite and loads them from Risor catalog
// scripts.
type Catalog struct {
	store      *store.Store
	scriptsDir string
	scriptsFS  fs.FS
	logger     *zap.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithScriptsFS configures the Catalog to load Risor scripts from the given
// filesystem instead of from the scriptsDir path on disk. This enables
// embedding scripts via go:embed.
func WithScriptsFS(fsys fs.FS) Option {
	return func(c *Catalog) {
		c.scriptsFS = fsys
	}
}

// WithLogger sets the logger used by the Catalog and its scripts.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// New creates a Catalog backed by a SQLite database at dbPath.
// Script loading priority:
//  1. If WithScriptsFS is set, use the provided fs.FS
//  2. Otherwise, use scriptsDir on disk
//
// The scriptsDir parameter may be empty when WithScriptsFS is used.
func New(dbPath string, scriptsDir string, opts ...Option) (*Catalog, error) {
	s, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("shapes: create store: %w", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("shapes: migrate: %w", err)
	}

	c := &Catalog{
		store:      s,
		scriptsDir: scriptsDir,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases the Catalog's database resources.
func (c *Catalog) Close() error {
	return c.store.Close()
}

// Store returns the underlying Store for direct access.
func (c *Catalog) Store() *Store {
	return c.store
}

// Entry is a stored shape.
type Entry struct {
	ID        int64
	UID       string
	Shape     Shape
	Source    string // script that produced the entry, empty when added directly
	CreatedAt time.Time
}

// Add stores s and returns the new entry. Shapes with invalid dimensions,
// such as the zero Circle, are rejected before anything is written.
func (c *Catalog) Add(s Shape) (Entry, error) {
	s, err := validShape(s)
	if err != nil {
		return Entry{}, fmt.Errorf("shapes: add: %w", err)
	}
	rec := recordOf(s)
	if _, err := c.store.InsertShape(rec); err != nil {
		return Entry{}, fmt.Errorf("shapes: add %s: %w", s.Kind(), err)
	}
	c.logger.Debug("shape added", zap.Int64("id", rec.ID), zap.Stringer("kind", s.Kind()))
	return Entry{ID: rec.ID, UID: rec.UID, Shape: s, CreatedAt: rec.CreatedAt}, nil
}

// AddAll stores shapes in one transaction, in order. Nothing is stored if
// any insert fails.
func (c *Catalog) AddAll(shapes []Shape) ([]Entry, error) {
	batch := store.NewBatchedStore(c.store)
	for i, s := range shapes {
		s, err := validShape(s)
		if err != nil {
			return nil, fmt.Errorf("shapes: add shape %d: %w", i, err)
		}
		if _, err := batch.InsertShape(recordOf(s)); err != nil {
			return nil, fmt.Errorf("shapes: add %s: %w", s.Kind(), err)
		}
	}
	ids, err := c.store.CommitBatch(batch, nil)
	if err != nil {
		return nil, fmt.Errorf("shapes: add all: %w", err)
	}
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		e, err := c.Entry(id)
		if err != nil {
			return nil, err
		}
		if e != nil {
			entries = append(entries, *e)
		}
	}
	c.logger.Debug("shapes added", zap.Int("count", len(entries)))
	return entries, nil
}

// Entries returns every stored shape in insertion order.
func (c *Catalog) Entries() ([]Entry, error) {
	recs, err := c.store.Shapes()
	if err != nil {
		return nil, fmt.Errorf("shapes: list: %w", err)
	}
	out := make([]Entry, 0, len(recs))
	for _, r := range recs {
		e, err := entryOf(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Shapes returns the stored shapes in insertion order.
func (c *Catalog) Shapes() ([]Shape, error) {
	entries, err := c.Entries()
	if err != nil {
		return nil, err
	}
	return lo.Map(entries, func(e Entry, _ int) Shape { return e.Shape }), nil
}

// Entry returns the entry with the given ID, or nil if none exists.
func (c *Catalog) Entry(id int64) (*Entry, error) {
	rec, err := c.store.ShapeByID(id)
	if err != nil {
		return nil, fmt.Errorf("shapes: get %d: %w", id, err)
	}
	if rec == nil {
		return nil, nil
	}
	e, err := entryOf(rec)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Remove deletes the entry with the given ID and reports whether it existed.
func (c *Catalog) Remove(id int64) (bool, error) {
	ok, err := c.store.DeleteShape(id)
	if err != nil {
		return false, fmt.Errorf("shapes: remove %d: %w", id, err)
	}
	return ok, nil
}

// Clear removes every entry and forgets which scripts were loaded.
func (c *Catalog) Clear() (int64, error) {
	n, err := c.store.DeleteAll()
	if err != nil {
		return 0, fmt.Errorf("shapes: clear: %w", err)
	}
	return n, nil
}

// KindStat summarizes the stored shapes of one kind.
type KindStat struct {
	Kind  Kind
	Count int
}

// Stats returns per-kind counts for every kind, including kinds with no
// stored shapes, in Kinds order.
func (c *Catalog) Stats() ([]KindStat, error) {
	counts, err := c.store.CountByKind()
	if err != nil {
		return nil, fmt.Errorf("shapes: stats: %w", err)
	}
	byKind := lo.Associate(counts, func(kc KindCount) (string, int) { return kc.Kind, kc.Count })
	return lo.Map(Kinds, func(k Kind, _ int) KindStat {
		return KindStat{Kind: k, Count: byKind[strings.ToLower(k.String())]}
	}), nil
}

// Report writes the summary line of every stored shape to w.
func (c *Catalog) Report(w io.Writer) error {
	shapes, err := c.Shapes()
	if err != nil {
		return err
	}
	return Report(w, shapes)
}

// Report writes one Summary line per shape to w, in order.
func Report(w io.Writer, shapes []Shape) error {
	for _, s := range shapes {
		if _, err := fmt.Fprintln(w, Summary(s)); err != nil {
			return err
		}
	}
	return nil
}

// LoadResult describes one catalog script load.
type LoadResult struct {
	Path     string
	Hash     string
	Added    int
	Skipped  bool // the script was unchanged since its last load
	Duration time.Duration
}

// LoadScript runs the catalog script at path and commits the shapes it
// adds in a single transaction, replacing the shapes from any earlier load
// of the same path. An unchanged script is skipped unless force is set.
// A script that fails, or adds an invalid shape, leaves the catalog as it
// was.
func (c *Catalog) LoadScript(ctx context.Context, path string, force bool) (LoadResult, error) {
	start := time.Now()
	batch := store.NewBatchedStore(c.store)
	rt := c.newRuntime(batch)

	src, err := rt.LoadScript(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("shapes: %w", err)
	}
	res := LoadResult{Path: path, Hash: store.ComputeScriptHash(src)}

	if !force {
		prev, err := c.store.ScriptRun(path)
		if err != nil {
			return LoadResult{}, fmt.Errorf("shapes: %w", err)
		}
		if prev != nil && prev.Hash == res.Hash {
			res.Skipped = true
			res.Duration = time.Since(start)
			c.logger.Info("script unchanged, skipping", zap.String("path", path))
			return res, nil
		}
	}

	if err := rt.RunNamedSource(ctx, path, src, nil); err != nil {
		return LoadResult{}, fmt.Errorf("shapes: %w", err)
	}
	ids, err := c.store.CommitBatch(batch, &ScriptRun{Path: path, Hash: res.Hash})
	if err != nil {
		return LoadResult{}, fmt.Errorf("shapes: %w", err)
	}

	res.Added = len(ids)
	res.Duration = time.Since(start)
	c.logger.Info("script loaded",
		zap.String("path", path),
		zap.Int("shapes", res.Added),
		zap.Duration("duration", res.Duration))
	return res, nil
}

// LoadAll loads every script returned by Scripts, in order, stopping at
// the first failure.
func (c *Catalog) LoadAll(ctx context.Context, force bool) ([]LoadResult, error) {
	paths, err := c.Scripts()
	if err != nil {
		return nil, err
	}
	results := make([]LoadResult, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := c.LoadScript(ctx, p, force)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Scripts lists the catalog scripts available under catalog/ in the
// configured script source, sorted by path.
func (c *Catalog) Scripts() ([]string, error) {
	var paths []string
	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".risor") {
			paths = append(paths, path)
		}
		return nil
	}

	switch {
	case c.scriptsFS != nil:
		if err := fs.WalkDir(c.scriptsFS, "catalog", walk); err != nil {
			return nil, fmt.Errorf("shapes: list scripts: %w", err)
		}
	case c.scriptsDir != "":
		err := filepath.WalkDir(filepath.Join(c.scriptsDir, "catalog"), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return walk(path, d, err)
			}
			rel, err := filepath.Rel(c.scriptsDir, path)
			if err != nil {
				return err
			}
			return walk(rel, d, nil)
		})
		if err != nil {
			return nil, fmt.Errorf("shapes: list scripts: %w", err)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// ScriptRuns returns the recorded loads of every catalog script.
func (c *Catalog) ScriptRuns() ([]*ScriptRun, error) {
	runs, err := c.store.ScriptRuns()
	if err != nil {
		return nil, fmt.Errorf("shapes: %w", err)
	}
	return runs, nil
}

func (c *Catalog) newRuntime(ds store.DataStore) *runtime.Runtime {
	opts := []runtime.RuntimeOption{
		runtime.WithLogger(c.logger),
		runtime.WithMeasure(measureRecord),
	}
	if c.scriptsFS != nil {
		opts = append(opts, runtime.WithRuntimeFS(c.scriptsFS))
	}
	return runtime.NewRuntime(ds, c.scriptsDir, opts...)
}

// measureRecord validates a record by building its Shape.
func measureRecord(r *store.ShapeRecord) (float64, error) {
	s, err := shapeOf(r)
	if err != nil {
		return 0, err
	}
	return s.Area(), nil
}

// validShape rebuilds s from its spec, so only shapes that pass the
// constructors' checks reach the store.
func validShape(s Shape) (Shape, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil shape", ErrUnknownKind)
	}
	return SpecOf(s).Build()
}

func recordOf(s Shape) *store.ShapeRecord {
	sp := SpecOf(s)
	return &store.ShapeRecord{Kind: sp.Kind, Radius: sp.Radius, Width: sp.Width, Height: sp.Height}
}

func shapeOf(r *store.ShapeRecord) (Shape, error) {
	return Spec{Kind: r.Kind, Radius: r.Radius, Width: r.Width, Height: r.Height}.Build()
}

func entryOf(r *store.ShapeRecord) (Entry, error) {
	s, err := shapeOf(r)
	if err != nil {
		return Entry{}, fmt.Errorf("shapes: stored shape %d: %w", r.ID, err)
	}
	return Entry{ID: r.ID, UID: r.UID, Shape: s, Source: r.Source, CreatedAt: r.CreatedAt}, nil
}
