// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/patent-intake/internal/docparse"
	"github.com/pdiddy/patent-intake/internal/store"
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Extract bibliographic fields from patent PDF documents",
	Long: `Parse extracts text from each PDF and pulls out the patent number,
title, parties, dates, classification codes, and abstract. Extraction is
best-effort: fields that cannot be located are left empty.`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().Bool("json", false, "output records as JSON")
	parseCmd.Flags().Bool("save", false, "persist extracted records to the submission store")
	parseCmd.Flags().String("data-dir", "", "base directory for the submission store")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more PDF files")
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	save, _ := cmd.Flags().GetBool("save")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	var subs *store.Store
	if save {
		s, err := store.NewStore(storeConfig(dataDir))
		if err != nil {
			return err
		}
		defer s.Close()
		subs = s
	}

	failed := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed  %s: %v\n", path, err)
			failed++
			continue
		}

		rec, err := docparse.Extract(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed  %s: %v\n", path, err)
			failed++
			continue
		}

		if jsonOutput {
			if err := printJSON(os.Stdout, rec); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(os.Stdout, "== %s ==\n", path)
			printRecord(os.Stdout, rec)
			fmt.Println()
		}

		if subs != nil {
			sub, err := subs.Save(cmd.Context(), rec, filepath.Base(path))
			if err != nil {
				return fmt.Errorf("saving %s: %w", path, err)
			}
			fmt.Fprintf(os.Stderr, "saved %s as submission %s\n", path, sub.ID)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d document(s) failed to parse", failed)
	}
	return nil
}
