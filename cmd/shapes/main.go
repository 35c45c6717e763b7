package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jward/shapes"
	"github.com/jward/shapes/internal/config"
	"github.com/jward/shapes/internal/logging"
	"github.com/jward/shapes/scripts"
)

var (
	flagDB         string
	flagFormat     string
	flagConfig     string
	flagScriptsDir string
	flagVerbose    bool
)

var (
	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "shapes",
	Short:         "Describe, measure and catalog plane shapes",
	Long:          "Shapes computes areas for circles and rectangles, keeps a SQLite catalog of them, and loads catalog entries from Risor scripts.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	// No Run; prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database path (default: .shapes/catalog.db relative to repo root)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "output format: json|text (default from config, text)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: .shapes/config.yaml relative to repo root)")
	rootCmd.PersistentFlags().StringVar(&flagScriptsDir, "scripts-dir", "", "load catalog scripts from disk path instead of embedded")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(scriptsCmd)
	rootCmd.AddCommand(demoCmd)
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting cwd: %w", err)
	}
	repoRoot := findRepoRoot(cwd)

	loaded, err := config.Load(resolveConfigPath(repoRoot))
	if err != nil {
		return err
	}
	if flagFormat != "" {
		loaded.Output.Format = flagFormat
	}
	if err := validateFormat(loaded.Output.Format); err != nil {
		return err
	}
	if flagDB != "" {
		loaded.Database.Path = flagDB
	}
	if flagScriptsDir != "" {
		loaded.Scripts.Dir = flagScriptsDir
	}
	if flagVerbose {
		loaded.Logging.Level = "debug"
	}
	loaded.Database.Path = resolveDBPath(repoRoot, loaded.Database.Path)
	cfg = loaded

	l, err := logging.New(cfg.Logging.Level, cfg.Logging.Encoding)
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("configuration loaded",
		zap.String("db", cfg.Database.Path),
		zap.String("scripts_dir", cfg.Scripts.Dir),
		zap.String("format", cfg.Output.Format))
	return nil
}

// openCatalog opens the catalog at the configured path, creating its
// directory when needed.
func openCatalog() (*shapes.Catalog, error) {
	dir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	opts := []shapes.Option{shapes.WithLogger(logger)}
	if cfg.Scripts.Dir == "" {
		opts = append(opts, shapes.WithScriptsFS(scripts.FS))
	}
	c, err := shapes.New(cfg.Database.Path, cfg.Scripts.Dir, opts...)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	return c, nil
}

// findRepoRoot walks up from startDir looking for a .git directory.
// Returns the directory containing .git, or startDir if not found.
func findRepoRoot(startDir string) string {
	dir := startDir
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root without finding .git.
			return startDir
		}
		dir = parent
	}
}

// resolveDBPath anchors a relative database path at the repo root.
func resolveDBPath(repoRoot, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoRoot, path)
}

// resolveConfigPath returns the config path from the --config flag or the default.
func resolveConfigPath(repoRoot string) string {
	if flagConfig != "" {
		if filepath.IsAbs(flagConfig) {
			return flagConfig
		}
		return filepath.Join(repoRoot, flagConfig)
	}
	return filepath.Join(repoRoot, ".shapes", "config.yaml")
}
