// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the patent-intake CLI.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/patent-intake/internal/secrets"
	"github.com/pdiddy/patent-intake/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "patent-intake/0.1"

	defaultTokenURL = "https://ops.epo.org/3.2/auth/accesstoken"
	defaultAPIBase  = "https://ops.epo.org/3.2/rest-services"
)

// rootCmd is the base command for the patent-intake CLI.
var rootCmd = &cobra.Command{
	Use:   "patent-intake",
	Short: "Patent document intake and translation assistance",
	Long: `patent-intake handles patent document processing: fetching bibliographic
records from the patent office API, extracting fields from uploaded PDF
documents, and translating titles and abstracts through a fallback chain.

Each stage is a subcommand: fetch, parse, translate, and submissions.
The serve subcommand exposes the same pipeline as an HTTP JSON API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; missing files are fine.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./patent-intake.yaml or ~/.config/patent-intake/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("patent-intake")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "patent-intake"))
		}
	}

	viper.SetDefault("ops.token_url", defaultTokenURL)
	viper.SetDefault("ops.api_base", defaultAPIBase)
	viper.SetDefault("store.data_dir", "data")
	viper.SetDefault("server.port", 8080)

	viper.SetEnvPrefix("PATENT_INTAKE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// opsConfig assembles the office API configuration from viper and loaded
// secrets.
func opsConfig() types.OPSConfig {
	return types.OPSConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   defaultTimeout,
			UserAgent: defaultUserAgent,
		},
		TokenURL:    viper.GetString("ops.token_url"),
		APIBase:     viper.GetString("ops.api_base"),
		ConsumerKey: secrets.Value(loadedSecrets, "ops-consumer-key", viper.GetString("ops.consumer_key")),
		SecretKey:   secrets.Value(loadedSecrets, "ops-secret-key", viper.GetString("ops.secret_key")),
	}
}

func translateConfig() types.TranslateConfig {
	return types.TranslateConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   defaultTimeout,
			UserAgent: defaultUserAgent,
		},
		EngineTimeout:        viper.GetDuration("translate.engine_timeout"),
		MaxConcurrentEngines: viper.GetInt("translate.max_concurrent_engines"),
		BaiduAppID:           secrets.Value(loadedSecrets, "baidu-app-id", viper.GetString("translate.baidu_app_id")),
		BaiduSecretKey:       secrets.Value(loadedSecrets, "baidu-secret-key", viper.GetString("translate.baidu_secret_key")),
		From:                 viper.GetString("translate.from"),
		To:                   viper.GetString("translate.to"),
	}
}

func storeConfig(dataDir string) types.StoreConfig {
	if dataDir == "" {
		dataDir = viper.GetString("store.data_dir")
	}
	return types.StoreConfig{
		DataDir:    dataDir,
		MaxResults: viper.GetInt("store.max_results"),
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
