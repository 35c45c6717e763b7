package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/jward/shapes"
	"github.com/jward/shapes/internal/runtime"
)

var flagForce bool

var loadCmd = &cobra.Command{
	Use:   "load [script...]",
	Short: "Run catalog scripts and store the shapes they add",
	Long: "Runs Risor catalog scripts. A name without the .risor suffix refers to catalog/<name>.risor. " +
		"With no arguments every script under catalog/ is loaded. Unchanged scripts are skipped unless --force is given.",
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().BoolVar(&flagForce, "force", false, "reload scripts even when unchanged")
}

func runLoad(cmd *cobra.Command, args []string) error {
	start := time.Now()

	c, err := openCatalog()
	if err != nil {
		return outputError("load", err)
	}
	defer c.Close()

	ctx := context.Background()
	var results []shapes.LoadResult
	if len(args) == 0 {
		results, err = c.LoadAll(ctx, flagForce)
		if err != nil {
			return outputError("load", err)
		}
	} else {
		for _, name := range args {
			res, err := c.LoadScript(ctx, runtime.CatalogScriptPath(name), flagForce)
			if err != nil {
				return outputError("load", err)
			}
			results = append(results, res)
		}
	}

	// Print timing summary to stderr.
	added := lo.Reduce(results, func(n int, r shapes.LoadResult, _ int) int { return n + r.Added }, 0)
	fmt.Fprintf(os.Stderr, "Loaded %d scripts (%d shapes) in %s\n",
		len(results), added, time.Since(start).Round(time.Millisecond))

	list := lo.Map(results, func(r shapes.LoadResult, _ int) CLILoadResult {
		return CLILoadResult{
			Path:       r.Path,
			Hash:       r.Hash,
			Added:      r.Added,
			Skipped:    r.Skipped,
			DurationMS: r.Duration.Milliseconds(),
		}
	})
	return outputResult(cmd.OutOrStdout(), CLIResult{Command: "load", Results: list})
}

var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "List available catalog scripts and when each was last loaded",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return outputError("scripts", err)
		}
		defer c.Close()

		paths, err := c.Scripts()
		if err != nil {
			return outputError("scripts", err)
		}
		runs, err := c.ScriptRuns()
		if err != nil {
			return outputError("scripts", err)
		}
		byPath := lo.KeyBy(runs, func(r *shapes.ScriptRun) string { return r.Path })

		list := lo.Map(paths, func(p string, _ int) CLIScript {
			out := CLIScript{Path: p}
			if run, ok := byPath[p]; ok {
				loaded := run.LoadedAt
				out.Hash = run.Hash
				out.ShapeCount = run.ShapeCount
				out.LoadedAt = &loaded
			}
			return out
		})
		return outputResult(cmd.OutOrStdout(), CLIResult{Command: "scripts", Results: list})
	},
}
