package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/arxlang/arxsense"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	flagRoot    string
	flagFormat  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "arxsense",
	Short:         "Language intelligence for ARX library descriptors",
	Long:          "Arxsense loads .map library descriptors from a project's c_map directory and answers completion and signature-help queries over them.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "project root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format: json|text")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(libsCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(signatureCmd)
	rootCmd.AddCommand(watchCmd)
}

// newLogger builds the CLI's diagnostic logger writing to stderr, so
// query output on stdout stays machine-readable.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

// resolveRoot returns the absolute project root from --root or the
// current directory.
func resolveRoot() (string, error) {
	root := flagRoot
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting cwd: %w", err)
		}
		root = cwd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %q: %w", root, err)
	}
	return abs, nil
}

// newEngine creates an Engine for the resolved root and performs the
// initial load.
func newEngine() (*arxsense.Engine, error) {
	root, err := resolveRoot()
	if err != nil {
		return nil, err
	}
	engine, err := arxsense.New(root, arxsense.WithLogger(newLogger()))
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}
	if err := engine.Reload(); err != nil {
		engine.Close()
		return nil, fmt.Errorf("loading descriptors: %w", err)
	}
	return engine, nil
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Load descriptors and reload on every change until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return engine.Watch(ctx)
}
