package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kylekorndoerfer/inkpress"
)

func syncCmd() *cobra.Command {
	var dir, dbPath string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync Markdown content into the site database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := inkpress.NewStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := store.SyncDir(dir)
			if err != nil {
				return err
			}
			for _, p := range result.Report.Problems {
				fmt.Fprintln(cmd.ErrOrStderr(), p.String())
			}
			cmd.Printf("%d file(s) scanned, %d synced, %d removed", result.Report.Files, result.Upserted, result.Removed)
			if n := len(result.Report.Problems); n > 0 {
				cmd.Printf(", %d skipped with problems", n)
			}
			cmd.Println()
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "content", inkpress.EnvOr("CONTENT_DIR", "content"), "Markdown content directory")
	cmd.Flags().StringVar(&dbPath, "db", inkpress.EnvOr("DATABASE_PATH", "data/blog.db"), "SQLite database path")
	return cmd
}
