package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/article-engine/internal/article"
	"github.com/pdiddy/article-engine/pkg/types"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List stored article sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := article.NewStore(types.StoreConfig{Path: viper.GetString("store.path")})
		if err != nil {
			return err
		}
		defer store.Close()

		infos, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Fprintln(os.Stderr, "no stored sessions")
			return nil
		}

		for _, info := range infos {
			fmt.Printf("%s  %s  %s\n", info.SessionID, info.UpdatedAt.Format("2006-01-02 15:04"), info.Topic)
		}
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a stored article session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := article.NewStore(types.StoreConfig{Path: viper.GetString("store.path")})
		if err != nil {
			return err
		}
		defer store.Close()

		return store.Delete(cmd.Context(), args[0])
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}
