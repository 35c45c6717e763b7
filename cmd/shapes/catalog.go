package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/jward/shapes"
)

var flagStored bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the description and area of each shape",
	Long:  "Prints the configured report shapes (a circle of radius 5 and a 4x6 rectangle by default), or every stored shape with --stored.",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&flagStored, "stored", false, "report the shapes stored in the catalog")
}

func runReport(cmd *cobra.Command, args []string) error {
	var list []CLIShape
	if flagStored {
		c, err := openCatalog()
		if err != nil {
			return outputError("report", err)
		}
		defer c.Close()
		entries, err := c.Entries()
		if err != nil {
			return outputError("report", err)
		}
		// Stored shapes still report as summary lines.
		list = lo.Map(entries, func(e shapes.Entry, _ int) CLIShape { return shapeToCLI(e.Shape) })
	} else {
		report, err := cfg.ReportShapes()
		if err != nil {
			return outputError("report", err)
		}
		list = lo.Map(report, func(s shapes.Shape, _ int) CLIShape { return shapeToCLI(s) })
	}
	return outputResult(cmd.OutOrStdout(), CLIResult{Command: "report", Results: list})
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a shape to the catalog",
}

var addCircleCmd = &cobra.Command{
	Use:   "circle <radius>",
	Short: "Add a circle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := parseFloatArg(args[0], "radius")
		if err != nil {
			return outputError("add", err)
		}
		s, err := shapes.NewCircle(r)
		if err != nil {
			return outputError("add", err)
		}
		return addShape(cmd, s)
	},
}

var addRectangleCmd = &cobra.Command{
	Use:   "rectangle <width> <height>",
	Short: "Add a rectangle",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := parseFloatArg(args[0], "width")
		if err != nil {
			return outputError("add", err)
		}
		h, err := parseFloatArg(args[1], "height")
		if err != nil {
			return outputError("add", err)
		}
		s, err := shapes.NewRectangle(w, h)
		if err != nil {
			return outputError("add", err)
		}
		return addShape(cmd, s)
	},
}

func init() {
	addCmd.AddCommand(addCircleCmd)
	addCmd.AddCommand(addRectangleCmd)
}

func addShape(cmd *cobra.Command, s shapes.Shape) error {
	c, err := openCatalog()
	if err != nil {
		return outputError("add", err)
	}
	defer c.Close()

	e, err := c.Add(s)
	if err != nil {
		return outputError("add", err)
	}
	return outputResult(cmd.OutOrStdout(), CLIResult{Command: "add", Results: []CLIShape{entryToCLI(e)}})
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored shapes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return outputError("list", err)
		}
		defer c.Close()

		entries, err := c.Entries()
		if err != nil {
			return outputError("list", err)
		}
		list := lo.Map(entries, func(e shapes.Entry, _ int) CLIShape { return entryToCLI(e) })
		total := len(list)
		return outputResult(cmd.OutOrStdout(), CLIResult{Command: "list", Results: list, TotalCount: &total})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>...",
	Short: "Remove stored shapes by ID",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]int64, 0, len(args))
		for _, a := range args {
			id, err := parseIDArg(a)
			if err != nil {
				return outputError("remove", err)
			}
			ids = append(ids, id)
		}
		ids = lo.Uniq(ids)

		c, err := openCatalog()
		if err != nil {
			return outputError("remove", err)
		}
		defer c.Close()

		// Nothing is removed unless every ID exists.
		var missing []int64
		for _, id := range ids {
			e, err := c.Entry(id)
			if err != nil {
				return outputError("remove", err)
			}
			if e == nil {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return outputError("remove", fmt.Errorf("no shape with id %v, nothing removed", missing))
		}
		for _, id := range ids {
			if _, err := c.Remove(id); err != nil {
				return outputError("remove", err)
			}
		}
		return outputResult(cmd.OutOrStdout(), CLIResult{
			Command: "remove",
			Results: fmt.Sprintf("removed %d shapes", len(ids)),
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every stored shape",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return outputError("clear", err)
		}
		defer c.Close()

		n, err := c.Clear()
		if err != nil {
			return outputError("clear", err)
		}
		return outputResult(cmd.OutOrStdout(), CLIResult{
			Command: "clear",
			Results: fmt.Sprintf("removed %d shapes", n),
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count stored shapes by kind",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return outputError("stats", err)
		}
		defer c.Close()

		stats, err := c.Stats()
		if err != nil {
			return outputError("stats", err)
		}
		list := lo.Map(stats, func(s shapes.KindStat, _ int) CLIStat {
			return CLIStat{Kind: s.Kind.String(), Count: s.Count}
		})
		return outputResult(cmd.OutOrStdout(), CLIResult{Command: "stats", Results: list})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write stored shapes as a JSON array of specs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return outputError("export", err)
		}
		defer c.Close()

		stored, err := c.Shapes()
		if err != nil {
			return outputError("export", err)
		}
		data, err := shapes.MarshalShapes(stored)
		if err != nil {
			return outputError("export", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Add shapes from a JSON array of specs",
	Long:  "Reads a file written by 'shapes export' (use - for stdin). Every spec is validated before any shape is stored.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return outputError("import", fmt.Errorf("reading %s: %w", args[0], err))
		}

		parsed, err := shapes.UnmarshalShapes(data)
		if err != nil {
			return outputError("import", err)
		}

		c, err := openCatalog()
		if err != nil {
			return outputError("import", err)
		}
		defer c.Close()

		entries, err := c.AddAll(parsed)
		if err != nil {
			return outputError("import", err)
		}
		list := lo.Map(entries, func(e shapes.Entry, _ int) CLIShape { return entryToCLI(e) })
		return outputResult(cmd.OutOrStdout(), CLIResult{Command: "import", Results: list})
	},
}

// --- Helpers ---

// shapeToCLI converts an unstored shape to a CLIShape.
func shapeToCLI(s shapes.Shape) CLIShape {
	sp := shapes.SpecOf(s)
	return CLIShape{
		Kind:        s.Kind().String(),
		Description: shapes.Describe(s),
		Area:        s.Area(),
		Radius:      sp.Radius,
		Width:       sp.Width,
		Height:      sp.Height,
	}
}

// entryToCLI converts a stored entry to a CLIShape.
func entryToCLI(e shapes.Entry) CLIShape {
	out := shapeToCLI(e.Shape)
	out.ID = e.ID
	out.UID = e.UID
	out.Source = e.Source
	if !e.CreatedAt.IsZero() {
		created := e.CreatedAt
		out.CreatedAt = &created
	}
	return out
}

// parseFloatArg parses a positional argument as a number with a clear error.
func parseFloatArg(value, name string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", name, value)
	}
	return f, nil
}

// parseIDArg parses a positional argument as a positive shape ID.
func parseIDArg(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", value)
	}
	return id, nil
}
