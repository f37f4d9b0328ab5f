// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/patent-intake/internal/ops"
	"github.com/pdiddy/patent-intake/internal/store"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [patent numbers...]",
	Short: "Fetch bibliographic records from the patent office API",
	Long: `Fetch validates each patent number, queries the office published-data
API, and prints the normalized record. Numbers are accepted with or
without their country prefix; separators and case are normalized.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("doc-type", "biblio", "document constituent: biblio, abstract, claims, description")
	fetchCmd.Flags().Bool("json", false, "output records as JSON")
	fetchCmd.Flags().Bool("save", false, "persist fetched records to the submission store")
	fetchCmd.Flags().String("data-dir", "", "base directory for the submission store")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more patent numbers")
	}

	docTypeStr, _ := cmd.Flags().GetString("doc-type")
	if !ops.ValidDocType(docTypeStr) {
		return fmt.Errorf("unknown doc-type %q: use biblio, abstract, claims, or description", docTypeStr)
	}
	docType := ops.DocType(docTypeStr)

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

	client := ops.NewClient(newHTTPClient(), opsConfig())

	failed := 0
	for _, number := range args {
		rec, err := client.Fetch(cmd.Context(), number, docType)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed  %s: %v\n", number, err)
			failed++
			continue
		}

		if jsonOutput {
			if err := printJSON(os.Stdout, rec); err != nil {
				return err
			}
		} else {
			printRecord(os.Stdout, rec)
			fmt.Println()
		}

		if subs != nil {
			sub, err := subs.Save(cmd.Context(), rec, "")
			if err != nil {
				return fmt.Errorf("saving %s: %w", rec.PatentNumber, err)
			}
			fmt.Fprintf(os.Stderr, "saved %s as submission %s\n", rec.PatentNumber, sub.ID)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d record(s) failed to fetch", failed)
	}
	return nil
}
