package shapes

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Spec is the serializable form of a Shape. Only the dimensions relevant
// to Kind are set.
type Spec struct {
	Kind   string  `json:"kind" yaml:"kind"`
	Radius float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`
}

// SpecOf returns the Spec describing s. Pointers to a variant are
// described like the value they point to; a nil pointer yields a spec with
// zero dimensions, which Build rejects.
func SpecOf(s Shape) Spec {
	switch v := s.(type) {
	case Circle:
		return Spec{Kind: "circle", Radius: v.radius}
	case *Circle:
		if v == nil {
			return Spec{Kind: "circle"}
		}
		return SpecOf(*v)
	case Rectangle:
		return Spec{Kind: "rectangle", Width: v.width, Height: v.height}
	case *Rectangle:
		if v == nil {
			return Spec{Kind: "rectangle"}
		}
		return SpecOf(*v)
	}
	panic(fmt.Sprintf("shapes: unhandled shape %T", s))
}

// Build validates the spec and constructs the matching Shape.
func (sp Spec) Build() (Shape, error) {
	kind, err := ParseKind(sp.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindCircle:
		return NewCircle(sp.Radius)
	case KindRectangle:
		return NewRectangle(sp.Width, sp.Height)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, sp.Kind)
}

func (sp Spec) String() string {
	switch strings.ToLower(sp.Kind) {
	case "circle":
		return fmt.Sprintf("circle(%v)", sp.Radius)
	case "rectangle":
		return fmt.Sprintf("rectangle(%v, %v)", sp.Width, sp.Height)
	}
	return sp.Kind
}

// MarshalShapes encodes shapes as a JSON array of specs.
func MarshalShapes(shapes []Shape) ([]byte, error) {
	data, err := json.Marshal(lo.Map(shapes, func(s Shape, _ int) Spec { return SpecOf(s) }))
	if err != nil {
		return nil, fmt.Errorf("marshal shapes: %w", err)
	}
	return data, nil
}

// UnmarshalShapes decodes a JSON array of specs. The first invalid spec
// aborts decoding; its index is included in the error.
func UnmarshalShapes(data []byte) ([]Shape, error) {
	var specs []Spec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("unmarshal shapes: %w", err)
	}
	out := make([]Shape, 0, len(specs))
	for i, sp := range specs {
		s, err := sp.Build()
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}
