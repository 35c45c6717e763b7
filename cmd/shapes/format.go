package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// formatShapesText formats CLIShape results. Unstored shapes print as
// summary lines; stored shapes print as aligned columns. An empty list
// prints nothing.
func formatShapesText(w io.Writer, list []CLIShape) {
	if len(list) == 0 {
		return
	}
	if list[0].ID == 0 {
		for _, s := range list {
			fmt.Fprintf(w, "%s Area: %v\n", s.Description, s.Area)
		}
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tDIMENSIONS\tAREA\tSOURCE")
	for _, s := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%v\t%s\n", s.ID, s.Kind, dimensions(s), s.Area, s.Source)
	}
	tw.Flush()
}

func dimensions(s CLIShape) string {
	if strings.EqualFold(s.Kind, "circle") {
		return fmt.Sprintf("r=%v", s.Radius)
	}
	return fmt.Sprintf("%vx%v", s.Width, s.Height)
}

// formatStatsText formats CLIStat results as aligned columns.
func formatStatsText(w io.Writer, stats []CLIStat) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tCOUNT")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\n", s.Kind, s.Count)
	}
	tw.Flush()
}

// formatLoadResultsText formats CLILoadResult results one per line.
func formatLoadResultsText(w io.Writer, results []CLILoadResult) {
	for _, r := range results {
		if r.Skipped {
			fmt.Fprintf(w, "%s: unchanged, skipped\n", r.Path)
			continue
		}
		fmt.Fprintf(w, "%s: added %d shapes in %dms\n", r.Path, r.Added, r.DurationMS)
	}
}

// formatScriptsText formats CLIScript results as aligned columns.
func formatScriptsText(w io.Writer, list []CLIScript) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tSHAPES\tLOADED\tHASH")
	for _, s := range list {
		loaded := "-"
		if s.LoadedAt != nil {
			loaded = s.LoadedAt.Format("2006-01-02 15:04:05")
		}
		hash := s.Hash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", s.Path, s.ShapeCount, loaded, hash)
	}
	tw.Flush()
}

// formatDemosText prints each demo's output under a heading.
func formatDemosText(w io.Writer, demos []CLIDemo) {
	for i, d := range demos {
		if len(demos) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s\n", d.Name)
		}
		for _, line := range d.Output {
			fmt.Fprintln(w, line)
		}
	}
}

// outputResult writes a CLIResult to w in the selected format.
func outputResult(w io.Writer, result CLIResult) error {
	if cfg.Output.Format == "text" {
		return outputResultText(w, result)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputResultText dispatches a CLIResult to the matching text formatter.
func outputResultText(w io.Writer, result CLIResult) error {
	switch v := result.Results.(type) {
	case []CLIShape:
		formatShapesText(w, v)
	case []CLIStat:
		formatStatsText(w, v)
	case []CLILoadResult:
		formatLoadResultsText(w, v)
	case []CLIScript:
		formatScriptsText(w, v)
	case []CLIDemo:
		formatDemosText(w, v)
	case string:
		fmt.Fprintln(w, v)
	case nil:
		// Nothing to print.
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}
	return nil
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In JSON mode the error is written to stdout as a
// CLIResult envelope. In text mode it goes to stderr.
func outputError(command string, err error) error {
	errorHandled = true
	if cfg.Output.Format == "text" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	result := CLIResult{
		Command: command,
		Error:   err.Error(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
	return err
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
