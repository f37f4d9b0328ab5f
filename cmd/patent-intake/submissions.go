// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/patent-intake/internal/store"
	"github.com/pdiddy/patent-intake/pkg/types"
)

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "Inspect the local submission store (list, show, export)",
	Long: `Submissions manages the local SQLite store of saved intake records.
Use subcommands to list or search submissions, show one in full, or
export the whole store as YAML.`,
}

// --- list subcommand ---

var submissionsListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List submissions, optionally filtered by full-text search",
	RunE:  runSubmissionsList,
}

func runSubmissionsList(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	limit, _ := cmd.Flags().GetInt("limit")

	var subs []types.Submission
	if len(args) > 0 {
		subs, err = s.Search(cmd.Context(), strings.Join(args, " "), limit)
	} else {
		subs, err = s.List(cmd.Context(), limit)
	}
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(os.Stdout, subs)
	}

	if len(subs) == 0 {
		fmt.Println("No submissions found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-16s  %-40s  %s\n", "ID", "Number", "Title", "Created")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, sub := range subs {
		title := sub.Record.TitleNative
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-16s  %-40s  %s\n",
			sub.ID, orDash(sub.Record.PatentNumber), orDash(title),
			sub.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(os.Stdout, "\n%d submission(s)\n", len(subs))
	return nil
}

// --- show subcommand ---

var submissionsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one submission with its translations",
	RunE:  runSubmissionsShow,
}

func runSubmissionsShow(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one submission ID")
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	sub, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(os.Stdout, sub)
	}

	fmt.Fprintf(os.Stdout, "Submission:     %s\n", sub.ID)
	if sub.SourceFile != "" {
		fmt.Fprintf(os.Stdout, "Source file:    %s\n", sub.SourceFile)
	}
	fmt.Fprintf(os.Stdout, "Created:        %s\n", sub.CreatedAt.Format("2006-01-02 15:04:05"))
	printRecord(os.Stdout, sub.Record)
	for _, tr := range sub.Translations {
		fmt.Fprintf(os.Stdout, "\nTranslation (%s, %s, quality %.2f):\n%s\n",
			tr.Field, tr.Source, tr.Quality, tr.Text)
	}
	return nil
}

// --- export subcommand ---

var submissionsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all submissions as YAML",
	RunE:  runSubmissionsExport,
}

func runSubmissionsExport(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return s.ExportYAML(cmd.Context(), os.Stdout)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	defer f.Close()

	if err := s.ExportYAML(cmd.Context(), f); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Exported to %s\n", output)
	return nil
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	return store.NewStore(storeConfig(dataDir))
}

func init() {
	submissionsCmd.PersistentFlags().String("data-dir", "", "base directory for the submission store")

	submissionsListCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	submissionsListCmd.Flags().Bool("json", false, "output submissions as JSON")

	submissionsShowCmd.Flags().Bool("json", false, "output the submission as JSON")

	submissionsExportCmd.Flags().String("output", "", "write the export to a file instead of stdout")

	submissionsCmd.AddCommand(submissionsListCmd)
	submissionsCmd.AddCommand(submissionsShowCmd)
	submissionsCmd.AddCommand(submissionsExportCmd)

	rootCmd.AddCommand(submissionsCmd)
}
