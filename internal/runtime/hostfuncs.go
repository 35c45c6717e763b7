package runtime

import (
	"context"

	"github.com/risor-io/risor/object"
	"go.uber.org/zap"

	"github.com/jward/shapes/internal/store"
)

// makeCircleFn creates the "circle" host function. It only builds the
// map form of a shape; nothing is validated or stored until add_shape.
//
// circle(radius) → {"kind": "circle", "radius": radius}
func makeCircleFn() *object.Builtin {
	return object.NewBuiltin("circle", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("circle", 1, len(args))
		}
		radius, ok := toFloat(args[0])
		if !ok {
			return object.Errorf("circle: radius must be a number, got %s", args[0].Type())
		}
		return object.NewMap(map[string]object.Object{
			"kind":   object.NewString("circle"),
			"radius": object.NewFloat(radius),
		})
	})
}

// makeRectangleFn creates the "rectangle" host function.
//
// rectangle(width, height) → {"kind": "rectangle", "width": w, "height": h}
func makeRectangleFn() *object.Builtin {
	return object.NewBuiltin("rectangle", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 2 {
			return object.NewArgsError("rectangle", 2, len(args))
		}
		width, ok := toFloat(args[0])
		if !ok {
			return object.Errorf("rectangle: width must be a number, got %s", args[0].Type())
		}
		height, ok := toFloat(args[1])
		if !ok {
			return object.Errorf("rectangle: height must be a number, got %s", args[1].Type())
		}
		return object.NewMap(map[string]object.Object{
			"kind":   object.NewString("rectangle"),
			"width":  object.NewFloat(width),
			"height": object.NewFloat(height),
		})
	})
}

// makeAreaFn creates the "area" host function.
//
// area(shape_map) → float
func makeAreaFn(measure MeasureFunc) *object.Builtin {
	return object.NewBuiltin("area", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("area", 1, len(args))
		}
		if measure == nil {
			return object.Errorf("area: no measure function configured")
		}
		m, err := extractMap(args[0])
		if err != nil {
			return object.Errorf("area: %v", err)
		}
		a, err := measure(recordFromMap(m))
		if err != nil {
			return object.Errorf("area: %v", err)
		}
		return object.NewFloat(a)
	})
}

// logObject provides log.Info/Warn/Error methods for Risor scripts.
type logObject struct {
	logger *zap.Logger
}

func (l *logObject) Info(msg string) {
	l.logger.Info(msg)
}

func (l *logObject) Warn(msg string) {
	l.logger.Warn(msg)
}

func (l *logObject) Error(msg string) {
	l.logger.Error(msg)
}

func recordFromMap(m map[string]object.Object) *store.ShapeRecord {
	return &store.ShapeRecord{
		Kind:   getString(m, "kind"),
		Radius: getFloat(m, "radius"),
		Width:  getFloat(m, "width"),
		Height: getFloat(m, "height"),
	}
}
