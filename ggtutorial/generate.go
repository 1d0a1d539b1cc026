// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/aclements/ggtutorial/longitudinal"
	"github.com/aclements/go-gg/table"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		format      string
		output      string
		individuals bool
		summary     bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print the synthetic dataset",
		Long: `generate simulates the longitudinal dataset and prints it as an
aligned table or as CSV with the header id,group,time,outcome.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "csv" {
				return fmt.Errorf("unknown format %q (want table or csv)", format)
			}
			cfg, err := datasetConfig(cmd)
			if err != nil {
				return err
			}
			d, err := generate(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			w, err := createOutput(cmd, output, false)
			if err != nil {
				return err
			}
			if err := writeDataset(w, d, format, individuals, summary); err != nil {
				w.Close()
				return err
			}
			return w.Close()
		},
	}
	f := cmd.Flags()
	f.StringVarP(&format, "format", "f", "table", "output `format`: table or csv")
	f.StringVarP(&output, "output", "o", "", "write to `file` instead of stdout")
	f.BoolVar(&individuals, "individuals", false, "also print random effects and per-individual fits (table format)")
	f.BoolVar(&summary, "summary", false, "also print per-time summaries and the population trend (table format)")
	addDatasetFlags(cmd)
	return cmd
}

func writeDataset(w io.Writer, d *longitudinal.Dataset, format string, individuals, summary bool) error {
	if format == "csv" {
		return writeCSV(w, d.Observations)
	}

	table.Fprint(w, observationsToTable(d.Observations))
	if individuals {
		fits, err := longitudinal.FitIndividuals(d.Observations)
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
		table.Fprint(w, individualsToTable(d, fits))
	}
	if summary {
		fmt.Fprintln(w)
		table.Fprint(w, summaryToTable(longitudinal.Summarize(d.Observations)))
		tr := longitudinal.FitTrend(d.Observations)
		fmt.Fprintf(w, "\ntrend: outcome = %.4g + %.4g ln(time)\n", tr.Intercept, tr.Slope)
	}
	return nil
}
