// Package main provides the bandplan binary entry point.
// bandplan extracts the Australian Table of Frequency Allocations and its
// footnote glossaries into a SQLite database.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ciphernaut/acma-bandplan-db/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "bandplan"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Frequency allocation table extractor",
		Long: `bandplan turns the Australian Radiofrequency Spectrum Plan into
structured records.

It reads a pre-extracted document (JSON or YAML), an HTML export, or
scanned page images, classifies every row of the allocation table,
reconstructs the domestic and international footnote glossaries, and
stores the result in SQLite.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(extractCmd(g))
	cmd.AddCommand(dumpCmd(g))
	cmd.AddCommand(configCmd(g))

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// loadConfig returns the defaults, overlaid with the config file when one
// was given and then with the global flags.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if g.configPath != "" {
		fileCfg, err := config.LoadFromFile(g.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = fileCfg
	}
	cfg.Merge(&config.Config{LogLevel: g.logLevel})
	return cfg, nil
}

// newLogger builds a text logger on w at the configured level and makes it
// the default.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger, nil
}
