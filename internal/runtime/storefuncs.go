package runtime

import (
	"context"
	"fmt"

	"github.com/risor-io/risor/object"

	"github.com/jward/shapes/internal/store"
)

// Risor scripts cannot construct Go struct pointers, so the store host
// functions accept Risor maps with primitive values and build the structs
// on the Go side.

// makeAddShapeFn creates the "add_shape" host function. The record is
// validated with measure (when set) before it reaches the store.
//
// add_shape(shape_map) → int id
func makeAddShapeFn(s store.DataStore, measure MeasureFunc) *object.Builtin {
	return object.NewBuiltin("add_shape", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("add_shape", 1, len(args))
		}
		m, err := extractMap(args[0])
		if err != nil {
			return object.Errorf("add_shape: %v", err)
		}

		rec := recordFromMap(m)
		if measure != nil {
			if _, err := measure(rec); err != nil {
				return object.Errorf("add_shape: %v", err)
			}
		}

		id, insertErr := s.InsertShape(rec)
		if insertErr != nil {
			return object.Errorf("add_shape: %v", insertErr)
		}
		return object.NewInt(id)
	})
}

// makeShapesFn creates the "shapes" host function. Rows buffered by the
// current script are included.
//
// shapes() → [{"id", "uid", "kind", "radius", "width", "height", "source"}]
func makeShapesFn(s store.DataStore) *object.Builtin {
	return object.NewBuiltin("shapes", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 0 {
			return object.NewArgsError("shapes", 0, len(args))
		}
		recs, err := s.Shapes()
		if err != nil {
			return object.Errorf("shapes: %v", err)
		}
		results := make([]object.Object, 0, len(recs))
		for _, r := range recs {
			results = append(results, object.NewMap(map[string]object.Object{
				"id":     object.NewInt(r.ID),
				"uid":    object.NewString(r.UID),
				"kind":   object.NewString(r.Kind),
				"radius": object.NewFloat(r.Radius),
				"width":  object.NewFloat(r.Width),
				"height": object.NewFloat(r.Height),
				"source": object.NewString(r.Source),
			}))
		}
		return object.NewList(results)
	})
}

// --- Risor value helpers ---

func extractMap(obj object.Object) (map[string]object.Object, error) {
	m, ok := obj.(*object.Map)
	if !ok {
		return nil, fmt.Errorf("expected map, got %s", obj.Type())
	}
	return m.Value(), nil
}

func getString(m map[string]object.Object, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	if s, ok := v.(*object.String); ok {
		return s.Value()
	}
	return ""
}

func getFloat(m map[string]object.Object, key string) float64 {
	v, ok := m[key]
	if !ok {
		return 0
	}
	f, _ := toFloat(v)
	return f
}

func toFloat(obj object.Object) (float64, bool) {
	switch v := obj.(type) {
	case *object.Float:
		return v.Value(), true
	case *object.Int:
		return float64(v.Value()), true
	}
	return 0, false
}
