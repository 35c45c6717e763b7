package runtime

import (
	"context"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/importer"
	"github.com/risor-io/risor/object"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/jward/shapes/internal/store"
)

// MeasureFunc validates a shape record and returns its area. Records that
// fail validation are never written.
type MeasureFunc func(r *store.ShapeRecord) (float64, error)

// Runtime evaluates catalog scripts with the shape host functions and,
// when a DataStore is set, add_shape and shapes.
type Runtime struct {
	store      store.DataStore
	scriptsDir string
	fsys       fs.FS
	logger     *zap.Logger
	measure    MeasureFunc
}

type RuntimeOption func(*Runtime)

// WithRuntimeFS reads scripts, and resolves their imports, from fsys
// rather than the scripts directory.
func WithRuntimeFS(fsys fs.FS) RuntimeOption {
	return func(r *Runtime) {
		r.fsys = fsys
	}
}

// WithLogger routes the script-facing log global to logger.
func WithLogger(logger *zap.Logger) RuntimeOption {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithMeasure installs the validator used by add_shape and area.
func WithMeasure(fn MeasureFunc) RuntimeOption {
	return func(r *Runtime) {
		r.measure = fn
	}
}

// NewRuntime creates a Runtime wired to the given DataStore and scripts
// directory. The store may be nil, in which case only the pure host
// functions are exposed.
func NewRuntime(s store.DataStore, scriptsDir string, opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		store:      s,
		scriptsDir: scriptsDir,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunScript runs the catalog script at scriptPath. extraGlobals are added
// to (and may shadow) the host globals.
func (r *Runtime) RunScript(ctx context.Context, scriptPath string, extraGlobals map[string]any) error {
	src, err := r.LoadScript(scriptPath)
	if err != nil {
		return err
	}
	return r.RunNamedSource(ctx, scriptPath, src, extraGlobals)
}

// RunSource runs inline source under the name "<inline>".
func (r *Runtime) RunSource(ctx context.Context, source string, extraGlobals map[string]any) error {
	return r.RunNamedSource(ctx, "<inline>", source, extraGlobals)
}

// RunNamedSource runs source that was already loaded from name. The name
// labels log lines and errors.
func (r *Runtime) RunNamedSource(ctx context.Context, name, source string, extraGlobals map[string]any) error {
	globals := r.buildGlobals(name, extraGlobals)
	opts := lo.MapToSlice(globals, func(k string, v any) risor.Option { return risor.WithGlobal(k, v) })
	if src := r.source(); src != nil {
		// Imported modules see the same host globals as the importing script.
		opts = append(opts, risor.WithImporter(importer.NewFSImporter(importer.FSImporterOptions{
			GlobalNames: lo.Keys(globals),
			SourceFS:    src,
			Extensions:  []string{".risor"},
		})))
	}

	if _, err := risor.Eval(ctx, source, opts...); err != nil {
		return fmt.Errorf("runtime: script %s: %w", name, err)
	}
	return nil
}

// source is the filesystem scripts and their imports are read from: the
// configured fs.FS, else scriptsDir, else nil.
func (r *Runtime) source() fs.FS {
	switch {
	case r.fsys != nil:
		return r.fsys
	case r.scriptsDir != "":
		return os.DirFS(r.scriptsDir)
	}
	return nil
}

// LoadScript returns the source of the script at scriptPath. Absolute paths are
// read from disk directly; anything else is resolved against the script
// source, with a leading slash ignored.
func (r *Runtime) LoadScript(scriptPath string) (string, error) {
	if filepath.IsAbs(scriptPath) && r.fsys == nil {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return "", fmt.Errorf("runtime: read script: %w", err)
		}
		return string(data), nil
	}

	src := r.source()
	if src == nil {
		return "", fmt.Errorf("runtime: read script %s: no script source configured", scriptPath)
	}
	name := strings.TrimPrefix(path.Clean(filepath.ToSlash(scriptPath)), "/")
	data, err := fs.ReadFile(src, name)
	if err != nil {
		return "", fmt.Errorf("runtime: read script: %w", err)
	}
	return string(data), nil
}

// CatalogScriptPath maps a catalog script name to its path; names that
// already end in .risor are returned unchanged.
func CatalogScriptPath(name string) string {
	if strings.HasSuffix(name, ".risor") {
		return name
	}
	return path.Join("catalog", name+".risor")
}

func (r *Runtime) buildGlobals(label string, extra map[string]any) map[string]any {
	globals := map[string]any{
		"circle":    makeCircleFn(),
		"rectangle": makeRectangleFn(),
		"area":      makeAreaFn(r.measure),
		"log":       mustProxy(&logObject{logger: r.logger.With(zap.String("script", label))}),
	}

	// Pure functions only without a store.
	if r.store != nil {
		globals["add_shape"] = makeAddShapeFn(r.store, r.measure)
		globals["shapes"] = makeShapesFn(r.store)
	}

	maps.Copy(globals, extra)
	return globals
}

func mustProxy(v any) object.Object {
	p, err := object.NewProxy(v)
	if err != nil {
		panic(fmt.Sprintf("runtime: proxy %T: %v", v, err))
	}
	return p
}
