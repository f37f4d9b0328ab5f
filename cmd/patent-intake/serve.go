// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/patent-intake/internal/ops"
	"github.com/pdiddy/patent-intake/internal/server"
	"github.com/pdiddy/patent-intake/internal/store"
	"github.com/pdiddy/patent-intake/internal/translate"
	"github.com/pdiddy/patent-intake/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the intake pipeline as an HTTP JSON API",
	Long: `Serve exposes document upload, office-API fetch, translation, and the
submission store over HTTP. Health probes are at /health/live and
/health/ready; the API routes live under /api.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "TCP port to listen on (default 8080)")
	serveCmd.Flags().Int64("max-upload", 0, "maximum upload size in bytes (default 16 MiB)")
	serveCmd.Flags().String("data-dir", "", "base directory for the submission store")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = viper.GetInt("server.port")
	}
	maxUpload, _ := cmd.Flags().GetInt64("max-upload")
	if maxUpload == 0 {
		maxUpload = viper.GetInt64("server.max_upload_bytes")
	}
	dataDir, _ := cmd.Flags().GetString("data-dir")

	srvCfg := types.ServerConfig{Port: port, MaxUploadBytes: maxUpload}
	if err := srvCfg.Validate(); err != nil {
		return err
	}

	subs, err := store.NewStore(storeConfig(dataDir))
	if err != nil {
		return err
	}
	defer subs.Close()

	client := newHTTPClient()
	tCfg := translateConfig()

	var (
		fetcher  server.PatentFetcher
		official translate.OfficialSource
	)
	oCfg := opsConfig()
	if oCfg.ConsumerKey != "" && oCfg.SecretKey != "" {
		opsClient := ops.NewClient(client, oCfg)
		fetcher = opsClient
		official = opsClient
	} else {
		slog.Warn("office API credentials missing; /api/patents disabled")
	}

	chain := translate.NewChain(translate.Engines(client, tCfg), official, tCfg)

	handler := server.NewHandler(fetcher, chain, subs, srvCfg)
	router := server.NewRouter(handler)

	return server.Run(cmd.Context(), srvCfg, router)
}
