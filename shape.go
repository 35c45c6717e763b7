package shapes

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Kind identifies a concrete Shape variant.
type Kind int

const (
	KindCircle Kind = iota + 1
	KindRectangle
)

// Kinds lists every variant in declaration order.
var Kinds = []Kind{KindCircle, KindRectangle}

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "Circle"
	case KindRectangle:
		return "Rectangle"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a case-insensitive variant name to its Kind.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(name, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

var (
	// ErrInvalidDimension is matched by every DimensionError.
	ErrInvalidDimension = errors.New("invalid dimension")
	ErrUnknownKind      = errors.New("unknown shape kind")
)

// DimensionError reports a dimension rejected at construction time.
type DimensionError struct {
	Shape Kind
	Field string
	Value float64
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s %s must be a positive finite number, got %v", e.Shape, e.Field, e.Value)
}

func (e *DimensionError) Unwrap() error { return ErrInvalidDimension }

func checkDimension(kind Kind, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &DimensionError{Shape: kind, Field: field, Value: v}
	}
	return nil
}

// Shape is anything with an area. The set of variants is closed: only
// Circle and Rectangle implement it.
type Shape interface {
	Kind() Kind
	Area() float64
	sealed()
}

// Circle is a Shape defined by its radius.
type Circle struct {
	radius float64
}

// NewCircle returns a Circle, rejecting non-positive or non-finite radii.
func NewCircle(radius float64) (Circle, error) {
	if err := checkDimension(KindCircle, "radius", radius); err != nil {
		return Circle{}, err
	}
	return Circle{radius: radius}, nil
}

// MustCircle is like NewCircle but panics on an invalid radius.
func MustCircle(radius float64) Circle {
	c, err := NewCircle(radius)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Circle) Kind() Kind { return KindCircle }
func (c Circle) Radius() float64 { return c.radius }
func (c Circle) Area() float64 { return math.Pi * (c.radius * c.radius) }
func (c Circle) String() string { return fmt.Sprintf("Circle(radius=%v)", c.radius) }
func (Circle) sealed() {}

// Rectangle is a Shape defined by its width and height.
type Rectangle struct {
	width  float64
	height float64
}

// NewRectangle returns a Rectangle, rejecting non-positive or non-finite
// sides.
func NewRectangle(width, height float64) (Rectangle, error) {
	if err := checkDimension(KindRectangle, "width", width); err != nil {
		return Rectangle{}, err
	}
	if err := checkDimension(KindRectangle, "height", height); err != nil {
		return Rectangle{}, err
	}
	return Rectangle{width: width, height: height}, nil
}

// MustRectangle is like NewRectangle but panics on invalid sides.
func MustRectangle(width, height float64) Rectangle {
	r, err := NewRectangle(width, height)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Rectangle) Kind() Kind { return KindRectangle }
func (r Rectangle) Width() float64 { return r.width }
func (r Rectangle) Height() float64 { return r.height }
func (r Rectangle) Area() float64 { return r.width * r.height }
func (r Rectangle) String() string {
	return fmt.Sprintf("Rectangle(width=%v, height=%v)", r.width, r.height)
}
func (Rectangle) sealed() {}

// Describe returns the description shared by every variant.
func Describe(s Shape) string {
	return fmt.Sprintf("This is a %s.", s.Kind())
}

// Summary is the display line for a shape: its description followed by
// its area.
func Summary(s Shape) string {
	return fmt.Sprintf("%s Area: %v", Describe(s), s.Area())
}

// Areas returns the area of each shape, in input order.
func Areas(shapes []Shape) []float64 {
	out := make([]float64, len(shapes))
	for i, s := range shapes {
		out[i] = s.Area()
	}
	return out
}

// TotalArea sums the areas of shapes.
func TotalArea(shapes []Shape) float64 {
	var total float64
	for _, s := range shapes {
		total += s.Area()
	}
	return total
}

// DefaultShapes returns the reference set used by the report command:
// a circle of radius 5 followed by a 4x6 rectangle.
func DefaultShapes() []Shape {
	return []Shape{MustCircle(5), MustRectangle(4, 6)}
}
