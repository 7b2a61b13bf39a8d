// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the article-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/article-engine/internal/secrets"
	"github.com/pdiddy/article-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the article-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "article-engine",
	Short: "Structured SEO article generation from unreliable model output",
	Long: `article-engine turns a topic plus ranked web-search snippets into a
structured, multi-section SEO article. The generative model's raw output is
repaired and extracted as JSON, section names are normalized against an
alias table, FAQ text is parsed into question/answer pairs, and the result
is rendered as HTML plus a schema.org JSON-LD block.

Each stage is a subcommand: search queries the web API, generate runs the
full pipeline once, and serve exposes the pipeline as an editing HTTP API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./article-engine.yaml or ~/.config/article-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("article-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "article-engine"))
		}
	}

	viper.SetEnvPrefix("ARTICLE_ENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("search.locale", "ja")
	viper.SetDefault("search.top_k", 3)
	viper.SetDefault("search.timeout", 30*time.Second)
	viper.SetDefault("generation.model", "gemini-2.0-flash")
	viper.SetDefault("generation.max_retries", 3)
	viper.SetDefault("manifest.dir", ".")
	viper.SetDefault("store.path", "articles.db")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.mode", "dev")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// searchConfig assembles the search settings from config and secrets. The
// API key is required before any network call.
func searchConfig() (types.SearchConfig, error) {
	key, err := secrets.Require(loadedSecrets, "serper-api-key")
	if err != nil {
		return types.SearchConfig{}, err
	}
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("search.timeout"),
			UserAgent: "article-engine/" + version,
		},
		Locale: viper.GetString("search.locale"),
		TopK:   viper.GetInt("search.top_k"),
		APIKey: key,
	}, nil
}

// generationConfig assembles the model settings from config and secrets.
func generationConfig() (types.GenerationConfig, error) {
	key, err := secrets.Require(loadedSecrets, "gemini-api-key")
	if err != nil {
		return types.GenerationConfig{}, err
	}
	return types.GenerationConfig{
		AIConfig: types.AIConfig{
			Model:      viper.GetString("generation.model"),
			APIKey:     key,
			MaxRetries: viper.GetInt("generation.max_retries"),
		},
		AliasFile: viper.GetString("generation.alias_file"),
	}, nil
}

// manifestConfig assembles the manifest export settings from config.
func manifestConfig() types.ManifestConfig {
	return types.ManifestConfig{Dir: viper.GetString("manifest.dir")}
}

// serverConfig assembles the HTTP API settings from config.
func serverConfig() types.ServerConfig {
	return types.ServerConfig{
		Addr: viper.GetString("server.addr"),
		Mode: viper.GetString("server.mode"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
