package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jward/shapes"
	"github.com/jward/shapes/internal/demo"
)

// demoFunc runs one demo and returns its output lines.
type demoFunc func() ([]string, error)

// demoOrder is the order "demo all" runs in.
var demoOrder = []string{"greet", "square", "mutability", "evens", "divide", "file", "json", "animals", "shapes"}

var demos = map[string]demoFunc{
	"greet":      demoGreet,
	"square":     demoSquare,
	"mutability": demoMutability,
	"evens":      demoEvens,
	"divide":     demoDivide,
	"file":       demoFile,
	"json":       demoJSON,
	"animals":    demoAnimals,
	"shapes":     demoShapes,
}

var demoCmd = &cobra.Command{
	Use:       "demo [name]",
	Short:     "Run a language-feature demo",
	Long:      "Runs one demo by name, or all of them when no name (or \"all\") is given. Names: " + strings.Join(demoOrder, ", ") + ".",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: append([]string{"all"}, demoOrder...),
	RunE: func(cmd *cobra.Command, args []string) error {
		names := demoOrder
		if len(args) == 1 && args[0] != "all" {
			names = []string{args[0]}
		}
		results, err := runDemos(names)
		if err != nil {
			return outputError("demo", err)
		}
		return outputResult(cmd.OutOrStdout(), CLIResult{Command: "demo", Results: results})
	},
}

func runDemos(names []string) ([]CLIDemo, error) {
	out := make([]CLIDemo, 0, len(names))
	for _, name := range names {
		fn, ok := demos[name]
		if !ok {
			return nil, fmt.Errorf("unknown demo %q: must be one of %s", name, strings.Join(demoOrder, ", "))
		}
		lines, err := fn()
		if err != nil {
			return nil, fmt.Errorf("demo %s: %w", name, err)
		}
		out = append(out, CLIDemo{Name: name, Output: lines})
	}
	return out, nil
}

func demoGreet() ([]string, error) {
	var buf bytes.Buffer
	if err := demo.Greet(&buf, "Alice", 3); err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n"), nil
}

func demoSquare() ([]string, error) {
	return []string{
		fmt.Sprint(demo.Square(5)),
		fmt.Sprint(demo.SquareAll([]int{1, 2, 3, 4, 5})),
	}, nil
}

func demoMutability() ([]string, error) {
	fixed := [3]int{1, 2, 3}
	changed := demo.ReplaceInArray(fixed, 1, 4)
	list := []int{1, 2, 3}
	demo.ReplaceInSlice(list, 1, 4)
	return []string{
		fmt.Sprintf("array: %v (copy: %v)", fixed, changed),
		fmt.Sprintf("slice: %v", list),
	}, nil
}

func demoEvens() ([]string, error) {
	return []string{fmt.Sprint(demo.EvenSquares([]int{1, 2, 3, 4, 5}))}, nil
}

func demoDivide() ([]string, error) {
	var lines []string
	for _, pair := range [][2]int{{10, 2}, {10, 0}} {
		if _, err := demo.Divide(pair[0], pair[1]); err != nil {
			lines = append(lines, err.Error())
		}
		lines = append(lines, fmt.Sprint(demo.SafeDivide(logger, pair[0], pair[1])))
	}
	return lines, nil
}

func demoFile() ([]string, error) {
	dir, err := os.MkdirTemp("", "shapes-demo-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "sample.txt")
	if err := demo.WriteText(path, "Hello, file!\nThis is a sample text."); err != nil {
		return nil, err
	}
	content, err := demo.ReadText(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(content, "\n"), nil
}

func demoJSON() ([]string, error) {
	data, err := demo.EncodePerson(demo.Person{Name: "Alice", Age: 30, City: "New York"})
	if err != nil {
		return nil, err
	}
	p, err := demo.DecodePerson(data)
	if err != nil {
		return nil, err
	}
	return []string{string(data), fmt.Sprintf("%+v", p)}, nil
}

func demoAnimals() ([]string, error) {
	return shapes.Chorus([]shapes.Speaker{shapes.Dog{Name: "Rex"}, shapes.Cat{Name: "Whiskers"}}), nil
}

func demoShapes() ([]string, error) {
	report, err := cfg.ReportShapes()
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(report))
	for _, s := range report {
		lines = append(lines, shapes.Summary(s))
	}
	return lines, nil
}
