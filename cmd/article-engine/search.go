package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-engine/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Query the web-search API for ranked results",
	Long: `Search queries the Serper.dev Google-search API and prints the ranked
hits that would seed a drafting prompt. Results are truncated to the
configured top-K.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		topK, _ := cmd.Flags().GetInt("top-k")
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := searchConfig()
		if err != nil {
			return err
		}
		if topK > 0 {
			cfg.TopK = topK
		}

		provider := search.NewSerper(cfg.Timeout)
		results, err := search.Search(cmd.Context(), provider, query, cfg)
		if err != nil {
			return err
		}

		if asJSON {
			return search.FormatJSON(results, os.Stdout)
		}
		search.FormatTable(results, os.Stdout)
		return nil
	},
}

func init() {
	searchCmd.Flags().String("query", "", "search query (required)")
	searchCmd.Flags().Int("top-k", 0, "number of results to keep (default from config)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(searchCmd)
}
