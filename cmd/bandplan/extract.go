package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	bandplan "github.com/ciphernaut/acma-bandplan-db"
	"github.com/ciphernaut/acma-bandplan-db/config"
	"github.com/ciphernaut/acma-bandplan-db/internal/metrics"
	"github.com/ciphernaut/acma-bandplan-db/store"
)

type extractFlags struct {
	database           string
	appendRows         bool
	allocationPages    string
	domesticPages      string
	internationalPages string
	headerRows         int
	metricsFile        string
}

func extractCmd(g *globalFlags) *cobra.Command {
	f := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract [source]",
		Short: "Extract allocations and footnotes into SQLite",
		Long: `Extract reads both footnote glossaries and then the allocation table
of the source document and writes them to the database.

The schema is recreated first unless --append is given. Page ranges are
physical, 1-indexed and inclusive, written as first-last.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Source = args[0]
			}
			if err := f.apply(cmd, cfg); err != nil {
				return err
			}
			if cfg.Source == "" {
				return fmt.Errorf("no source document given")
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runExtract(ctx, cmd, cfg, logger)
		},
	}

	cmd.Flags().StringVar(&f.database, "db", "", "SQLite database path")
	cmd.Flags().BoolVar(&f.appendRows, "append", false, "Keep existing rows instead of recreating the schema")
	cmd.Flags().StringVar(&f.allocationPages, "allocation-pages", "", "Pages of the allocation table (first-last)")
	cmd.Flags().StringVar(&f.domesticPages, "domestic-pages", "", "Pages of the domestic footnote glossary (first-last)")
	cmd.Flags().StringVar(&f.internationalPages, "international-pages", "", "Pages of the international footnote glossary (first-last)")
	cmd.Flags().IntVar(&f.headerRows, "header-rows", 0, "Column header rows at the top of every table")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus counters to this file")

	return cmd
}

// apply overlays the flags the user actually set onto cfg.
func (f *extractFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Database = f.database
	}
	if flags.Changed("append") {
		cfg.Append = f.appendRows
	}
	ranges := []struct {
		flag   string
		value  string
		target *config.PageRange
	}{
		{"allocation-pages", f.allocationPages, &cfg.Pages.Allocations},
		{"domestic-pages", f.domesticPages, &cfg.Pages.Domestic},
		{"international-pages", f.internationalPages, &cfg.Pages.International},
	}
	for _, r := range ranges {
		if !flags.Changed(r.flag) {
			continue
		}
		pr, err := config.ParsePageRange(r.value)
		if err != nil {
			return fmt.Errorf("--%s: %w", r.flag, err)
		}
		*r.target = pr
	}
	if flags.Changed("header-rows") {
		cfg.HeaderRows = f.headerRows
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	return nil
}

func runExtract(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	db, err := store.OpenSQLite(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if !cfg.Append {
		if err := db.Reset(ctx); err != nil {
			return err
		}
		logger.Debug("schema recreated", slog.String("database", cfg.Database))
	}

	runID, err := db.BeginRun(ctx, cfg.Source)
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if cfg.MetricsFile != "" {
		m = metrics.New()
	}

	ext := bandplan.Open(cfg.Source).
		AllocationPages(cfg.Pages.Allocations.First, cfg.Pages.Allocations.Last).
		DomesticFootnotePages(cfg.Pages.Domestic.First, cfg.Pages.Domestic.Last).
		InternationalFootnotePages(cfg.Pages.International.First, cfg.Pages.International.Last).
		HeaderRows(cfg.HeaderRows).
		WithLogger(logger.With(slog.String("run_id", runID))).
		WithMetrics(m)

	summary, warnings, err := ext.Run(ctx, db)
	for _, w := range warnings {
		logger.Warn(w.Message,
			slog.String("stage", string(w.Stage)),
			slog.Int("page", w.Page))
	}
	if err != nil {
		return fmt.Errorf("extract %s: %w", cfg.Source, err)
	}

	if err := db.FinishRun(ctx, runID, summary.AllocationsWritten, summary.FootnotesWritten); err != nil {
		return err
	}
	if err := m.WriteFile(cfg.MetricsFile); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"run %s: %d allocations (%d new), %d domestic and %d international footnotes (%d new), %d warnings\n",
		runID,
		summary.Allocations, summary.AllocationsWritten,
		summary.DomesticFootnotes, summary.InternationalFootnotes, summary.FootnotesWritten,
		len(warnings))
	return nil
}
