package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/article-engine/internal/article"
	"github.com/pdiddy/article-engine/internal/generate"
	"github.com/pdiddy/article-engine/internal/manifest"
	"github.com/pdiddy/article-engine/internal/search"
	"github.com/pdiddy/article-engine/internal/section"
	"github.com/pdiddy/article-engine/internal/server"
	"github.com/pdiddy/article-engine/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the article editing HTTP API",
	Long: `Serve exposes the pipeline as a JSON API: POST /api/generate drafts a
new article, /api/edit and /api/regenerate mutate single sections, and
/api/evaluate scores the current article. The article is persisted per
session in a SQLite store so a restart can resume the last state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		sessionID, _ := cmd.Flags().GetString("session")
		srvCfg := serverConfig()
		if addr == "" {
			addr = srvCfg.Addr
		}

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

		store, err := article.NewStore(types.StoreConfig{Path: viper.GetString("store.path")})
		if err != nil {
			return err
		}
		defer store.Close()

		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		controller := article.NewController(normalizer, article.WithStore(store, sessionID))

		// Resume the session's last article when one exists.
		if art, err := store.Load(cmd.Context(), sessionID); err == nil {
			controller.Restore(art)
			fmt.Fprintf(os.Stderr, "resumed session %s (%s)\n", sessionID, art.Topic)
		}

		log, err := server.NewLogger(srvCfg.Mode)
		if err != nil {
			return err
		}
		defer log.Sync()

		srv := server.New(server.Config{
			Controller: controller,
			Provider:   search.NewSerper(searchCfg.Timeout),
			Generator: &generate.Generator{
				Backend: &generate.GeminiBackend{
					APIKey: genCfg.APIKey,
					Model:  genCfg.Model,
					Client: &http.Client{Timeout: searchCfg.Timeout},
				},
				MaxRetries: genCfg.MaxRetries,
			},
			Exporter:  &manifest.Exporter{Dir: manifestConfig().Dir},
			SearchCfg: searchCfg,
			Logger:    log,
			Mode:      srvCfg.Mode,
		})

		log.Infow("session ready", "session_id", sessionID)
		return srv.Run(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().String("session", "", "session identifier to resume (default: new random session)")

	rootCmd.AddCommand(serveCmd)
}
