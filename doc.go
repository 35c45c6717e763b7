// Package shapes models a closed family of plane shapes behind a single
// Shape interface and keeps a persistent catalog of them.
//
// # Shapes
//
// A [Shape] has a [Kind] and an area. Only [Circle] and [Rectangle]
// implement it; construct them with [NewCircle] and [NewRectangle], which
// reject non-positive and non-finite dimensions with an error matching
// [ErrInvalidDimension]. The description shared by every variant comes
// from [Describe]:
//
//	for _, s := range shapes.DefaultShapes() {
//		fmt.Println(shapes.Summary(s))
//	}
//	// This is a Circle. Area: 78.53981633974483
//	// This is a Rectangle. Area: 24
//
// [Spec] is the JSON form of a shape; [MarshalShapes] and [UnmarshalShapes]
// convert whole lists.
//
// # Catalog
//
// A [Catalog] stores shapes in SQLite. Shapes are added directly with
// [Catalog.Add] or by Risor catalog scripts run through
// [Catalog.LoadScript]:
//
//	c, err := shapes.New("shapes.db", "", shapes.WithScriptsFS(scripts.FS))
//	if err != nil { ... }
//	defer c.Close()
//
//	res, err := c.LoadScript(ctx, "catalog/default.risor", false)
//
// Scripts see these globals: circle(r), rectangle(w, h), area(shape),
// add_shape(shape), shapes(), and log. A script's shapes are committed in
// one transaction when it finishes; a failing script adds nothing.
// Reloading a changed script replaces the shapes from its previous load.
//
// # Speakers
//
// [Speaker], [Dog] and [Cat] are a second, open interface family used by
// the demo command.
package shapes
