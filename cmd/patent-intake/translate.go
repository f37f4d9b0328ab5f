// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/patent-intake/internal/ops"
	"github.com/pdiddy/patent-intake/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate patent text through the fallback chain",
	Long: `Translate runs text through the translation fallback chain: the
patent office's own record first (when a patent number is given and
--prefer-official is set), then a race between the configured machine
engines, and finally the original text unchanged. The command never
fails on translation trouble; the source field reports which rung
answered.`,
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().String("number", "", "patent number for the official-record lookup")
	translateCmd.Flags().Bool("prefer-official", false, "consult the office record before machine engines")
	translateCmd.Flags().Bool("json", false, "output the result as JSON")

	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide text to translate")
	}
	text := strings.Join(args, " ")

	number, _ := cmd.Flags().GetString("number")
	preferOfficial, _ := cmd.Flags().GetBool("prefer-official")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client := newHTTPClient()
	tCfg := translateConfig()

	var official translate.OfficialSource
	oCfg := opsConfig()
	if oCfg.ConsumerKey != "" && oCfg.SecretKey != "" {
		official = ops.NewClient(client, oCfg)
	}

	chain := translate.NewChain(translate.Engines(client, tCfg), official, tCfg)
	result := chain.Translate(cmd.Context(), text, number, preferOfficial)

	if jsonOutput {
		return printJSON(os.Stdout, result)
	}

	fmt.Println(result.Text)
	fmt.Fprintf(os.Stderr, "source: %s (quality %.2f)\n", result.Source, result.Quality)
	return nil
}
