package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ciphernaut/acma-bandplan-db/model"
	"github.com/ciphernaut/acma-bandplan-db/store"
)

// dumpOutput is what dump prints. Sections not asked for are left out.
type dumpOutput struct {
	Allocations            []model.AllocationRecord `json:"allocations,omitempty" yaml:"allocations,omitempty"`
	DomesticFootnotes      []model.FootnoteRecord   `json:"domestic_footnotes,omitempty" yaml:"domestic_footnotes,omitempty"`
	InternationalFootnotes []model.FootnoteRecord   `json:"international_footnotes,omitempty" yaml:"international_footnotes,omitempty"`
}

func dumpCmd(g *globalFlags) *cobra.Command {
	var (
		database   string
		kind       string
		outputType string
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print stored records",
		Long: `Dump prints the records held in the database.

--kind selects allocations, domestic (aus), international (itu) or all.
CSV output prints one kind at a time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.Database = database
			}
			if _, err := os.Stat(cfg.Database); err != nil {
				return fmt.Errorf("database %s: %w", cfg.Database, err)
			}

			ctx := cmd.Context()
			db, err := store.OpenSQLite(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			var out dumpOutput
			switch kind {
			case "all", "allocations":
			default:
				tax, ok := model.ParseTaxonomy(kind)
				if !ok {
					return fmt.Errorf("unknown kind %q", kind)
				}
				kind = tax.String()
			}
			if outputType == "csv" && kind == "all" {
				return fmt.Errorf("csv output needs a single --kind")
			}

			all := kind == "all"
			if all || kind == "allocations" {
				if out.Allocations, err = db.Allocations(ctx); err != nil {
					return err
				}
			}
			if all || kind == model.Domestic.String() {
				if out.DomesticFootnotes, err = db.Footnotes(ctx, model.Domestic); err != nil {
					return err
				}
			}
			if all || kind == model.International.String() {
				if out.InternationalFootnotes, err = db.Footnotes(ctx, model.International); err != nil {
					return err
				}
			}
			return writeDump(cmd.OutOrStdout(), out, kind, outputType)
		},
	}

	cmd.Flags().StringVar(&database, "db", "", "SQLite database path")
	cmd.Flags().StringVar(&kind, "kind", "all", "Records to print (allocations, domestic, international, all)")
	cmd.Flags().StringVarP(&outputType, "output", "o", "json", "Output format (json, yaml, csv)")

	return cmd
}

func writeDump(w io.Writer, out dumpOutput, kind, outputType string) error {
	switch outputType {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	case "csv":
		_, err := io.WriteString(w, out.table(kind).ToCSV())
		return err
	default:
		return fmt.Errorf("unknown output format %q", outputType)
	}
}

// table lays out the kind section of out as rows with a header.
func (out dumpOutput) table(kind string) *model.Table {
	var rows [][]string
	switch kind {
	case "allocations":
		rows = append(rows, []string{"frequency_range", "unit", "region1", "region2", "region3",
			"australian_table_of_allocations", "common", "footnote_ref"})
		for _, r := range out.Allocations {
			rows = append(rows, []string{r.FrequencyRange, r.Unit.String(), r.Region1, r.Region2, r.Region3,
				r.Description, r.Common, r.FootnoteRefList()})
		}
	default:
		rows = append(rows, []string{"ref", "text"})
		for _, n := range append(out.DomesticFootnotes, out.InternationalFootnotes...) {
			rows = append(rows, []string{n.Reference, n.Text})
		}
	}
	return model.TableFromStrings(rows)
}
