package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-engine/internal/article"
	"github.com/pdiddy/article-engine/internal/generate"
	"github.com/pdiddy/article-engine/internal/manifest"
	"github.com/pdiddy/article-engine/internal/search"
	"github.com/pdiddy/article-engine/internal/section"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one article end to end",
	Long: `Generate runs the full pipeline once: search the web for the topic,
draft the article with the generative model, repair and normalize the
output, and render HTML plus JSON-LD. The outputs go to stdout unless
--out-html / --out-jsonld are set. A plain-text manifest is written next
to the outputs; manifest failures only warn.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		customData, _ := cmd.Flags().GetString("custom-data")
		outHTML, _ := cmd.Flags().GetString("out-html")
		outJSONLD, _ := cmd.Flags().GetString("out-jsonld")

		searchCfg, err := searchConfig()
		if err != nil {
			return err
		}
		genCfg, err := generationConfig()
		if err != nil {
			return err
		}

		var opts []section.Option
		if genCfg.AliasFile != "" {
			opts = append(opts, section.WithAliasFile(genCfg.AliasFile))
		}
		normalizer, err := section.NewNormalizer(opts...)
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		fmt.Fprintf(os.Stderr, "searching for %q\n", topic)
		provider := search.NewSerper(searchCfg.Timeout)
		results, err := search.Search(ctx, provider, topic, searchCfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "drafting from %d search results\n", len(results))

		generator := &generate.Generator{
			Backend: &generate.GeminiBackend{
				APIKey: genCfg.APIKey,
				Model:  genCfg.Model,
				Client: &http.Client{Timeout: searchCfg.Timeout},
			},
			MaxRetries: genCfg.MaxRetries,
		}

		raw, err := generator.DraftArticle(ctx, topic, results, customData)
		if err != nil {
			return err
		}

		controller := article.NewController(normalizer)
		rendered := controller.Generate(topic, raw, customData)

		if err := writeOutput(outHTML, rendered.HTML); err != nil {
			return err
		}
		if err := writeOutput(outJSONLD, rendered.JSONLD); err != nil {
			return err
		}

		art := controller.Snapshot()
		exporter := &manifest.Exporter{Dir: manifestConfig().Dir}
		if path, err := exporter.Export(art.Topic, art.Sections); err != nil {
			fmt.Fprintf(os.Stderr, "warning: manifest export failed: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "manifest written to %s\n", path)
		}

		return nil
	},
}

// writeOutput writes content to path, or to stdout when path is empty.
func writeOutput(path, content string) error {
	if path == "" {
		fmt.Println(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}

func init() {
	generateCmd.Flags().String("topic", "", "article topic (required)")
	generateCmd.Flags().String("custom-data", "", "publisher-supplied original data for an original_data section")
	generateCmd.Flags().String("out-html", "", "write the HTML output to this file instead of stdout")
	generateCmd.Flags().String("out-jsonld", "", "write the JSON-LD output to this file instead of stdout")
	generateCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(generateCmd)
}
